package engine

import "github.com/piwi3910/fenestra/internal/model"

// FixSegment reduces the requests of a segment to one door and one window,
// sizes them to the usable length, duplicates the window while it still
// fits, and backs off one opening at a time until the set fits. The fitted
// set is then placed and corrected. A segment too short for anything ends
// up with an empty list.
func (e *Engine) FixSegment(w model.Wall, segment int, openings model.Openings) model.Openings {
	if len(openings) == 0 {
		return openings
	}

	// this is the space we can use to fit windows and doors
	usable := w.Usable(segment)

	for round := 0; round < e.Settings.MaxBackoff; round++ {
		openings = e.collapse(openings)
		if len(openings) == 0 {
			return openings
		}
		openings = e.widenDoors(openings, usable)
		openings = e.widenWindows(openings, usable)

		if e.fits(e.LengthOpenings(openings), usable) {
			openings = e.AlignOpenings(w, segment, openings)
			openings = e.FixOverlaps(openings)
			openings = e.FixOverrun(w, segment, openings)
			return e.FixUnderrun(w, segment, openings)
		}

		if len(openings) == 1 {
			e.log().Debug("opening dropped", "wall", w.ID, "segment", segment, "name", openings[0].Name, "reason", "segment too short")
			return model.Openings{}
		}

		// keep the door: drop the first opening when the door is last
		if e.catalog(openings[len(openings)-1].Name).Type == model.OpeningDoor {
			e.log().Debug("opening dropped", "wall", w.ID, "segment", segment, "name", openings[0].Name, "reason", "overflow")
			openings = openings.RemoveAt(0)
		} else {
			e.log().Debug("opening dropped", "wall", w.ID, "segment", segment, "name", openings[len(openings)-1].Name, "reason", "overflow")
			openings = openings.RemoveAt(len(openings) - 1)
		}
	}

	e.log().Warn("back-off limit reached", "wall", w.ID, "segment", segment, "limit", e.Settings.MaxBackoff)
	return model.Openings{}
}

// collapse keeps the first door and the first window in list order, the
// window switched to the widest variant of its height.
func (e *Engine) collapse(openings model.Openings) model.Openings {
	var foundDoor, foundWindow bool
	result := make(model.Openings, 0, 2)

	for _, o := range openings {
		cat := e.catalog(o.Name)
		switch cat.Type {
		case model.OpeningDoor:
			if foundDoor {
				continue
			}
			result = append(result, o)
			foundDoor = true
		case model.OpeningWindow:
			if foundWindow {
				continue
			}
			if order := cat.WidestFirst(cat.Entry(o.Size).Height); len(order) > 0 {
				o.Size = order[0]
			}
			result = append(result, o)
			foundWindow = true
		}
	}
	return result
}

// widenDoors gives each door the widest variant of its height that fits the
// usable length on its own; if none does the narrowest is left assigned.
func (e *Engine) widenDoors(openings model.Openings, usable float64) model.Openings {
	for k := range openings {
		cat := e.catalog(openings[k].Name)
		if cat.Type != model.OpeningDoor {
			continue
		}
		for _, size := range cat.WidestFirst(cat.Entry(openings[k].Size).Height) {
			openings[k].Size = size
			v := cat.Entries[size]
			if e.fits(v.End+v.Width+v.End, usable) {
				break
			}
		}
	}
	return openings
}

// widenWindows sizes each window against the whole set, then tries two more
// copies after the first opening, trimming at index 1 up to twice while the
// set overflows. The scan runs on over the grown list, so copies are sized
// and duplicated in turn until the segment is filled.
func (e *Engine) widenWindows(openings model.Openings, usable float64) model.Openings {
	for k := 0; k < len(openings); k++ {
		cat := e.catalog(openings[k].Name)
		if cat.Type != model.OpeningWindow {
			continue
		}
		for _, size := range cat.WidestFirst(cat.Entry(openings[k].Size).Height) {
			openings[k].Size = size
			if e.fits(e.LengthOpenings(openings), usable) {
				break
			}
		}

		if usable < 0 {
			break
		}
		if len(openings)+2 > e.Settings.MaxOpenings {
			break
		}

		dup := openings[k]
		openings = openings.InsertAt(1, dup, dup)
		if e.exceeds(e.LengthOpenings(openings), usable) {
			openings = openings.RemoveAt(1)
		}
		if e.exceeds(e.LengthOpenings(openings), usable) {
			openings = openings.RemoveAt(1)
		}
	}
	return openings
}

// LengthOpenings returns the wall length the openings need: their widths,
// the end clearance of the first and last, and the larger side clearance of
// each neighbouring pair.
func (e *Engine) LengthOpenings(openings model.Openings) float64 {
	if len(openings) == 0 {
		return 0
	}

	total := e.entry(openings[0]).End + e.entry(openings[len(openings)-1]).End
	for _, o := range openings {
		total += e.entry(o).Width
	}
	for k := 0; k < len(openings)-1; k++ {
		total += max(e.entry(openings[k]).Side, e.entry(openings[k+1]).Side)
	}
	return total
}
