package engine

import (
	"sort"

	"github.com/piwi3910/fenestra/internal/model"
)

// FixHeights picks for each request the tallest variant of its width whose
// top clears the ceiling soffit, lowering the sill in SillStep increments
// when even the shortest one is too tall. Requests that cannot be made to
// fit are dropped.
func (e *Engine) FixHeights(w model.Wall, openings model.Openings) model.Openings {
	soffit := w.Soffit()
	kept := make(model.Openings, 0, len(openings))

	for _, o := range openings {
		cat := e.catalog(o.Name)
		o.Up = cat.Cill
		width := cat.Entry(o.Size).Width

		var heights []float64
		for _, v := range cat.Entries {
			if v.Width == width {
				heights = append(heights, v.Height)
			}
		}

		// tallest that fits, or the shortest if none does
		sort.Sort(sort.Reverse(sort.Float64Slice(heights)))
		var best float64
		for _, h := range heights {
			best = h
			if e.fits(o.Up+h, soffit) {
				break
			}
		}
		o.Size = sizeOf(cat, width, best)

		for e.Settings.SillStep > 0 && e.exceeds(o.Up+best, soffit) && e.fits(e.Settings.SillStep, o.Up) {
			o.Up = round(o.Up - e.Settings.SillStep)
		}

		if o.Up < 0 || e.exceeds(o.Up+best, soffit) {
			e.log().Debug("opening dropped", "wall", w.ID, "name", o.Name, "reason", "no variant clears the soffit", "soffit", soffit)
			continue
		}
		kept = append(kept, o)
	}
	return kept
}

// sizeOf returns the first catalog index with the given width and height.
func sizeOf(cat model.Catalog, width, height float64) int {
	for i, v := range cat.Entries {
		if v.Width == width && v.Height == height {
			return i
		}
	}
	return 0
}
