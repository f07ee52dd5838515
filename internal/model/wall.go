package model

import "math"

// Border is the opening-free clearance kept at each end of a segment.
type Border struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// SegmentCount returns the number of straight spans in the path.
func (w Wall) SegmentCount() int {
	n := len(w.Path)
	if n < 2 {
		return 0
	}
	if w.Closed {
		return n
	}
	return n - 1
}

// segmentEnds returns the start and end points of a segment; closed paths
// wrap around so segment -1 is the last one.
func (w Wall) segmentEnds(segment int) (Point2D, Point2D) {
	n := len(w.Path)
	i := ((segment % n) + n) % n
	return w.Path[i], w.Path[(i+1)%n]
}

// SegmentLength returns the distance to the next point of the path.
func (w Wall) SegmentLength(segment int) float64 {
	if len(w.Path) < 2 {
		return 0
	}
	a, b := w.segmentEnds(segment)
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// SegmentDirection returns the unit vector of a segment, or the zero vector
// for a degenerate one.
func (w Wall) SegmentDirection(segment int) Point2D {
	if len(w.Path) < 2 {
		return Point2D{}
	}
	a, b := w.segmentEnds(segment)
	length := math.Hypot(b.X-a.X, b.Y-a.Y)
	if length == 0 {
		return Point2D{}
	}
	return Point2D{X: (b.X - a.X) / length, Y: (b.Y - a.Y) / length}
}

// SegmentAngle returns the bearing of a segment in degrees.
func (w Wall) SegmentAngle(segment int) float64 {
	d := w.SegmentDirection(segment)
	return math.Atan2(d.Y, d.X) * 180 / math.Pi
}

// Border returns the clearances at both ends of a segment. Convex corners
// need the inner thickness, reflex corners the outer one; the free ends of
// an open path always use the inner thickness.
func (w Wall) Border(segment int) Border {
	var b Border

	if !w.Closed && segment == 0 {
		b.Left = w.Inner
	} else {
		b.Left = w.cornerClearance(w.SegmentAngle(segment) - w.SegmentAngle(segment-1))
	}

	if !w.Closed && segment == len(w.Path)-2 {
		b.Right = w.Inner
	} else {
		next := segment + 1
		if next == len(w.Path) {
			next = 0
		}
		b.Right = w.cornerClearance(w.SegmentAngle(next) - w.SegmentAngle(segment))
	}
	return b
}

func (w Wall) cornerClearance(turn float64) float64 {
	if turn < 0 {
		turn += 360
	}
	if turn > 135 && turn < 315 {
		return w.Outer
	}
	return w.Inner
}

// Usable returns the segment length left for openings between the borders.
func (w Wall) Usable(segment int) float64 {
	b := w.Border(segment)
	return w.SegmentLength(segment) - b.Left - b.Right
}

// PointAlong returns the plan point at distance along from the start of a
// segment.
func (w Wall) PointAlong(segment int, along float64) Point2D {
	if len(w.Path) == 0 {
		return Point2D{}
	}
	if len(w.Path) < 2 {
		return w.Path[0]
	}
	start, _ := w.segmentEnds(segment)
	dir := w.SegmentDirection(segment)
	return Point2D{X: start.X + along*dir.X, Y: start.Y + along*dir.Y}
}

// OpeningCorners returns the bottom-left and top-right corners of an
// opening of the given size on the wall axis.
func (w Wall) OpeningCorners(segment int, along, up, width, height float64) (Point3D, Point3D) {
	left := w.PointAlong(segment, along)
	right := w.PointAlong(segment, along+width)
	bottom := w.Elevation + up
	return Point3D{X: left.X, Y: left.Y, Z: bottom}, Point3D{X: right.X, Y: right.Y, Z: bottom + height}
}
