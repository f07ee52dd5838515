package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/fenestra/internal/model"
)

// DXF layer names of the plan drawing.
const (
	LayerWalls    = "WALLS"
	LayerOpenings = "OPENINGS"
)

// planTextHeight is the height of opening labels in drawing units (m).
const planTextHeight = 0.1

// ExportPlanDXF writes a plan drawing: the axis of every wall segment on the
// WALLS layer and each placed opening as a rectangle through the wall
// thickness, labelled with its name, on the OPENINGS layer. Layouts whose
// wall is not in walls are skipped.
func ExportPlanDXF(path string, walls []model.Wall, result model.LayoutResult) error {
	if len(result.Walls) == 0 {
		return fmt.Errorf("no walls to export")
	}
	index := wallIndex(walls)

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerWalls, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerWalls, err)
	}
	if _, err := d.AddLayer(LayerOpenings, color.Cyan, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerOpenings, err)
	}

	for _, wl := range result.Walls {
		w, ok := index[wl.WallID]
		if !ok {
			continue
		}

		if err := d.ChangeLayer(LayerWalls); err != nil {
			return err
		}
		for i := 0; i < w.SegmentCount(); i++ {
			a := w.PointAlong(i, 0)
			b := w.PointAlong(i, w.SegmentLength(i))
			if _, err := d.Line(a.X, a.Y, w.Elevation, b.X, b.Y, w.Elevation); err != nil {
				return fmt.Errorf("wall %s segment %d: %w", w.ID, i, err)
			}
		}

		if err := d.ChangeLayer(LayerOpenings); err != nil {
			return err
		}
		for _, seg := range wl.Segments {
			for _, o := range seg.Openings {
				if err := drawOpening(d, w, seg.Index, o); err != nil {
					return fmt.Errorf("wall %s opening %s: %w", w.ID, o.ID, err)
				}
			}
		}
	}

	return d.SaveAs(path)
}

// drawOpening draws the plan outline of an opening. Walls run
// anti-clockwise, so the outside is to the right of the segment direction.
func drawOpening(d *drawing.Drawing, w model.Wall, segment int, o model.PlacedOpening) error {
	dir := w.SegmentDirection(segment)
	out := model.Point2D{X: dir.Y, Y: -dir.X}

	a, b := w.OpeningCorners(segment, o.Along, o.Up, o.Width, o.Height)
	left, right := model.Point2D{X: a.X, Y: a.Y}, model.Point2D{X: b.X, Y: b.Y}
	offset := func(p model.Point2D, t float64) model.Point2D {
		return model.Point2D{X: p.X + out.X*t, Y: p.Y + out.Y*t}
	}
	corners := []model.Point2D{
		offset(left, -w.Inner),
		offset(right, -w.Inner),
		offset(right, w.Outer),
		offset(left, w.Outer),
	}

	z := a.Z
	for k := range corners {
		a, b := corners[k], corners[(k+1)%len(corners)]
		if _, err := d.Line(a.X, a.Y, z, b.X, b.Y, z); err != nil {
			return err
		}
	}

	label := offset(left, w.Outer+planTextHeight)
	_, err := d.Text(o.Name, label.X, label.Y, z, planTextHeight)
	return err
}
