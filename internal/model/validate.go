package model

import "fmt"

// Validate reports descriptor problems the layout engine would otherwise
// quietly turn into empty segments.
func (w Wall) Validate() error {
	switch w.Kind {
	case WallExterior, WallInterior:
	default:
		return fmt.Errorf("%w %s: unknown kind %q", ErrInvalidWall, w.ID, w.Kind)
	}
	if len(w.Path) < 2 {
		return fmt.Errorf("%w %s: path needs at least 2 points, got %d", ErrInvalidWall, w.ID, len(w.Path))
	}
	if w.Closed && len(w.Path) < 3 {
		return fmt.Errorf("%w %s: closed path needs at least 3 points", ErrInvalidWall, w.ID)
	}
	if w.Height <= 0 {
		return fmt.Errorf("%w %s: height must be positive", ErrInvalidWall, w.ID)
	}
	if w.Ceiling < 0 || w.Inner < 0 || w.Outer < 0 {
		return fmt.Errorf("%w %s: ceiling and thicknesses must not be negative", ErrInvalidWall, w.ID)
	}
	if len(w.Segments) > w.SegmentCount() {
		return fmt.Errorf("%w %s: %d segment contexts for %d segments", ErrInvalidWall, w.ID, len(w.Segments), w.SegmentCount())
	}
	return nil
}

// Validate checks that every opening definition points at a usable asset list.
func (s Style) Validate() error {
	for usage, def := range s.Openings {
		if def.Type != OpeningDoor && def.Type != OpeningWindow {
			return fmt.Errorf("%w %s: opening %q has type %q", ErrInvalidStyle, s.Name, usage, def.Type)
		}
		entries, ok := s.Assets[def.Name]
		if !ok {
			return fmt.Errorf("%w %s: opening %q refers to missing assets %q", ErrInvalidStyle, s.Name, usage, def.Name)
		}
		if len(entries) == 0 {
			return fmt.Errorf("%w %s: assets %q: %w", ErrInvalidStyle, s.Name, def.Name, ErrEmptyCatalog)
		}
	}
	for name, entries := range s.Assets {
		for i, e := range entries {
			if e.Width <= 0 || e.Height <= 0 {
				return fmt.Errorf("%w %s: assets %q entry %d needs positive width and height", ErrInvalidStyle, s.Name, name, i)
			}
			if e.Side < 0 || e.End < 0 {
				return fmt.Errorf("%w %s: assets %q entry %d has negative clearance", ErrInvalidStyle, s.Name, name, i)
			}
		}
	}
	return nil
}
