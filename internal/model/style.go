package model

import "sort"

// OpeningType tells doors from windows.
type OpeningType string

const (
	OpeningDoor   OpeningType = "door"
	OpeningWindow OpeningType = "window"
)

// CatalogEntry is one size variant of an opening asset.
type CatalogEntry struct {
	File   string  `json:"file" toml:"file"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
	Side   float64 `json:"side" toml:"side"` // Minimum wall between this and a neighbouring opening
	End    float64 `json:"end" toml:"end"`   // Minimum wall between this and a segment border
}

// Catalog is the ordered variant list an opening request indexes into.
// Order matters: it breaks ties between variants of equal size.
type Catalog struct {
	Entries []CatalogEntry `json:"list"`
	Type    OpeningType    `json:"type"`
	Cill    float64        `json:"cill"`
}

// Entry returns the variant at size, clamped into the list.
func (c Catalog) Entry(size int) CatalogEntry {
	if len(c.Entries) == 0 {
		return CatalogEntry{}
	}
	if size < 0 {
		size = 0
	}
	if size >= len(c.Entries) {
		size = len(c.Entries) - 1
	}
	return c.Entries[size]
}

// WidestFirst returns the indices of the variants with the given height,
// widest first. Equal widths are ordered by descending index.
func (c Catalog) WidestFirst(height float64) []int {
	order := make([]int, len(c.Entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return c.Entries[order[a]].Width < c.Entries[order[b]].Width
	})

	result := make([]int, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		if c.Entries[order[i]].Height == height {
			result = append(result, order[i])
		}
	}
	return result
}

// OpeningDef maps a usage name onto an asset list of a style.
type OpeningDef struct {
	Name string      `json:"name" toml:"name"`
	Type OpeningType `json:"type" toml:"type"`
	Cill float64     `json:"cill" toml:"cill"`
}

// Style is the opening part of an architectural style: which asset family
// each usage gets and the variants of each family.
type Style struct {
	Name     string                    `json:"name" toml:"name"`
	Openings map[string]OpeningDef     `json:"openings" toml:"openings"`
	Assets   map[string][]CatalogEntry `json:"assets" toml:"assets"`
}

// Opening resolves a usage name to its catalog. Undefined usages, missing or
// empty asset lists all resolve to ErrorCatalog so callers always have a
// variant to index into.
func (s Style) Opening(usage string) Catalog {
	def, ok := s.Openings[usage]
	if !ok {
		return ErrorCatalog()
	}
	entries, ok := s.Assets[def.Name]
	if !ok || len(entries) == 0 {
		return ErrorCatalog()
	}
	return Catalog{Entries: entries, Type: def.Type, Cill: def.Cill}
}

// ErrorCatalog returns the fallback catalog used for undefined openings.
func ErrorCatalog() Catalog {
	return Catalog{
		Entries: []CatalogEntry{
			{File: "error.dxf", Height: 1.0, Width: 1.0, Side: 0.1, End: 0.0},
			{File: "error.dxf", Height: 2.0, Width: 1.0, Side: 0.1, End: 0.0},
			{File: "error.dxf", Height: 2.0, Width: 2.0, Side: 0.1, End: 0.0},
			{File: "error.dxf", Height: 1.0, Width: 2.0, Side: 0.1, End: 0.0},
		},
		Type: OpeningWindow,
		Cill: 1.0,
	}
}

// UsageNames returns the defined usage names in sorted order.
func (s Style) UsageNames() []string {
	names := make([]string, 0, len(s.Openings))
	for name := range s.Openings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
