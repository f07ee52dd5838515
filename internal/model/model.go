package model

import "github.com/google/uuid"

// WallKind distinguishes walls on the building envelope from partitions.
type WallKind string

const (
	WallExterior WallKind = "exterior" // Envelope wall, openings are spread along each segment
	WallInterior WallKind = "interior" // Partition, its single door stays where it was proposed
)

// Point2D represents a plan coordinate in metres.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point3D represents a model coordinate in metres.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// SegmentContext describes what a wall segment separates.
type SegmentContext struct {
	Usage      string `json:"usage,omitempty"`       // Usage of the space behind the segment, empty if unknown
	OtherUsage string `json:"other_usage,omitempty"` // Usage on the far side (interior walls only)
	Access     bool   `json:"access,omitempty"`      // Segment gives access to the space
}

// Wall is a wall descriptor as handed over by the wall-building collaborator.
// Walls are drawn anti-clockwise around the building, so 'along' runs left to
// right as seen from outside.
type Wall struct {
	ID        string           `json:"id"`
	Kind      WallKind         `json:"kind"`
	Style     string           `json:"style,omitempty"`
	Path      []Point2D        `json:"path"`
	Closed    bool             `json:"closed"`
	Height    float64          `json:"height"`    // Floor to floor, m
	Elevation float64          `json:"elevation"` // Bottom of the wall, m
	Ceiling   float64          `json:"ceiling"`   // Depth of the ceiling recess below Height, m
	Inner     float64          `json:"inner"`     // Thickness inside the axis, m
	Outer     float64          `json:"outer"`     // Thickness outside the axis, m
	Level     int              `json:"level"`     // Storey index, 0 is the ground storey
	Segments  []SegmentContext `json:"segments,omitempty"`
	Openings  [][]Opening      `json:"openings,omitempty"` // Preset requests per segment
	Manual    bool             `json:"manual,omitempty"`   // Only use preset requests
}

// NewWall returns a wall with the default dimensions for its kind.
func NewWall(kind WallKind, path []Point2D, closed bool) Wall {
	w := Wall{
		ID:      uuid.New().String()[:8],
		Kind:    kind,
		Path:    path,
		Closed:  closed,
		Height:  3.0,
		Ceiling: 0.35,
		Inner:   0.08,
		Outer:   0.25,
	}
	if kind == WallInterior {
		w.Ceiling = 0.2
		w.Outer = 0.08
	}
	return w
}

// Soffit returns the height of the ceiling underside above the wall base.
func (w Wall) Soffit() float64 {
	return w.Height - w.Ceiling
}

// Context returns the context of a segment, or the zero context if the
// descriptor does not cover it.
func (w Wall) Context(segment int) SegmentContext {
	if segment < 0 || segment >= len(w.Segments) {
		return SegmentContext{}
	}
	return w.Segments[segment]
}

// Opening is an opening request on a wall segment. Name selects the catalog,
// Size indexes into it, Along is the offset of the left edge from the segment
// start and Up is the sill height above the wall elevation.
type Opening struct {
	Name  string  `json:"name"`
	Along float64 `json:"along"`
	Size  int     `json:"size"`
	Up    float64 `json:"up"`
}

// Openings is the ordered request list of one segment.
type Openings []Opening

// InsertAt returns the list with items inserted before index.
func (o Openings) InsertAt(index int, items ...Opening) Openings {
	if index < 0 {
		index = 0
	}
	if index > len(o) {
		index = len(o)
	}
	result := make(Openings, 0, len(o)+len(items))
	result = append(result, o[:index]...)
	result = append(result, items...)
	return append(result, o[index:]...)
}

// RemoveAt returns the list without the element at index. Out of range
// indices leave the list unchanged.
func (o Openings) RemoveAt(index int) Openings {
	if index < 0 || index >= len(o) {
		return o
	}
	result := make(Openings, 0, len(o)-1)
	result = append(result, o[:index]...)
	return append(result, o[index+1:]...)
}

// Clone returns an independent copy of the list.
func (o Openings) Clone() Openings {
	if o == nil {
		return nil
	}
	return append(Openings(nil), o...)
}

// PlacedOpening is a finalized opening with its catalog variant resolved.
type PlacedOpening struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Size   int         `json:"size"`
	Along  float64     `json:"along"`
	Up     float64     `json:"up"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Type   OpeningType `json:"type"`
	File   string      `json:"file"`
}

// SegmentLayout holds the placements of one segment in ascending Along order.
type SegmentLayout struct {
	Index    int             `json:"index"`
	Length   float64         `json:"length"`
	Border   Border          `json:"border"`
	Openings []PlacedOpening `json:"openings"`
}

// WallLayout is the layout of every segment of a wall.
type WallLayout struct {
	WallID   string          `json:"wall_id"`
	Kind     WallKind        `json:"kind"`
	Segments []SegmentLayout `json:"segments"`
}

// OpeningCount returns the number of placed openings on the wall.
func (wl WallLayout) OpeningCount() int {
	n := 0
	for _, s := range wl.Segments {
		n += len(s.Openings)
	}
	return n
}

// LayoutResult holds the layouts of a whole project.
type LayoutResult struct {
	Project string       `json:"project"`
	Style   string       `json:"style"`
	Walls   []WallLayout `json:"walls"`
}

// OpeningCount returns the number of placed openings in the result.
func (r LayoutResult) OpeningCount() int {
	n := 0
	for _, w := range r.Walls {
		n += w.OpeningCount()
	}
	return n
}

// LayoutSettings tunes the layout engine.
type LayoutSettings struct {
	Tolerance   float64 `json:"tolerance"`    // Lengths closer than this compare equal, m
	SillStep    float64 `json:"sill_step"`    // Sill lowering increment, m
	MaxOpenings int     `json:"max_openings"` // Cap on duplicated windows per segment
	MaxBackoff  int     `json:"max_backoff"`  // Cap on overflow back-off rounds
	Workers     int     `json:"workers"`      // Walls laid out concurrently
}

func DefaultSettings() LayoutSettings {
	return LayoutSettings{
		Tolerance:   0.001,
		SillStep:    0.15,
		MaxOpenings: 64,
		MaxBackoff:  64,
		Workers:     4,
	}
}

// Normalized returns a copy with unset fields replaced by their defaults.
func (s LayoutSettings) Normalized() LayoutSettings {
	d := DefaultSettings()
	if s.Tolerance <= 0 {
		s.Tolerance = d.Tolerance
	}
	if s.SillStep <= 0 {
		s.SillStep = d.SillStep
	}
	if s.MaxOpenings <= 0 {
		s.MaxOpenings = d.MaxOpenings
	}
	if s.MaxBackoff <= 0 {
		s.MaxBackoff = d.MaxBackoff
	}
	if s.Workers <= 0 {
		s.Workers = d.Workers
	}
	return s
}

// Project ties everything together for save/load.
type Project struct {
	Name      string `json:"name"`
	StylePath string `json:"style_path,omitempty"`
	Walls     []Wall `json:"walls"`
}

func NewProject() Project {
	return Project{
		Name:  "Untitled",
		Walls: []Wall{},
	}
}
