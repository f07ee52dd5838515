package engine

import "github.com/piwi3910/fenestra/internal/model"

// AlignOpenings spaces the openings equally: the segment is cut into one
// module per opening and each opening is centred on its module. Interior
// walls keep their proposed positions.
func (e *Engine) AlignOpenings(w model.Wall, segment int, openings model.Openings) model.Openings {
	if w.Kind == model.WallInterior || len(openings) == 0 {
		return openings
	}
	module := w.SegmentLength(segment) / float64(len(openings))

	for k := range openings {
		width := e.entry(openings[k]).Width
		openings[k].Along = module*(float64(k)+0.5) - width/2
	}
	return openings
}

// FixOverlaps pushes each opening forward until it keeps the larger side
// clearance of itself and its predecessor. Single pass, left to right.
func (e *Engine) FixOverlaps(openings model.Openings) model.Openings {
	for k := 0; k < len(openings)-1; k++ {
		this := e.entry(openings[k])
		gap := max(this.Side, e.entry(openings[k+1]).Side)

		alongOK := openings[k].Along + this.Width + gap
		if e.fits(alongOK, openings[k+1].Along) {
			continue
		}
		openings[k+1].Along = alongOK
	}
	return openings
}

// FixOverrun slides every opening back when the last one runs into the
// right border.
func (e *Engine) FixOverrun(w model.Wall, segment int, openings model.Openings) model.Openings {
	if len(openings) == 0 {
		return openings
	}
	limit := w.SegmentLength(segment) - w.Border(segment).Right

	last := openings[len(openings)-1]
	v := e.entry(last)
	reach := last.Along + v.Width + v.End
	if e.fits(reach, limit) {
		return openings
	}

	overrun := reach - limit
	for k := range openings {
		openings[k].Along -= overrun
	}
	return openings
}

// FixUnderrun fixes a first opening that starts inside the left border by
// sliding all but the last opening forward, each by no more than the
// underrun and the room left before its successor.
func (e *Engine) FixUnderrun(w model.Wall, segment int, openings model.Openings) model.Openings {
	if len(openings) == 0 {
		return openings
	}
	start := w.Border(segment).Left + e.entry(openings[0]).End
	if e.fits(start, openings[0].Along) {
		return openings
	}
	underrun := start - openings[0].Along

	for k := len(openings) - 2; k >= 0; k-- {
		this := e.entry(openings[k])
		gap := max(this.Side, e.entry(openings[k+1]).Side)

		alongOK := openings[k+1].Along - gap - this.Width
		if e.fits(alongOK, openings[k].Along) {
			continue
		}
		openings[k].Along += min(alongOK-openings[k].Along, underrun)
	}
	return openings
}

// OpeningCoor returns the bottom-left and top-right corners of an opening
// on the wall axis, sized by its catalog entry.
func (e *Engine) OpeningCoor(w model.Wall, segment int, o model.Opening) (model.Point3D, model.Point3D) {
	v := e.entry(o)
	return w.OpeningCorners(segment, o.Along, o.Up, v.Width, v.Height)
}
