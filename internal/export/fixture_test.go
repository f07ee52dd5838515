package export

import "github.com/piwi3910/fenestra/internal/model"

func buildTestWalls() []model.Wall {
	w := model.NewWall(model.WallExterior, []model.Point2D{{X: 0, Y: 0}, {X: 6, Y: 0}, {X: 6, Y: 4}, {X: 0, Y: 4}}, true)
	w.ID = "w1"
	return []model.Wall{w}
}

// buildTestResult creates a layout with a door and a window on the first
// segment and a window on the third.
func buildTestResult() model.LayoutResult {
	border := model.Border{Left: 0.08, Right: 0.08}
	return model.LayoutResult{
		Project: "Test House",
		Style:   "default",
		Walls: []model.WallLayout{
			{
				WallID: "w1",
				Kind:   model.WallExterior,
				Segments: []model.SegmentLayout{
					{
						Index: 0, Length: 6, Border: border,
						Openings: []model.PlacedOpening{
							{ID: "o1", Name: "house entrance", Size: 0, Along: 1.0, Up: 0, Width: 1.0, Height: 2.1, Type: model.OpeningDoor, File: "door-entrance-100210.dxf"},
							{ID: "o2", Name: "living outside window", Size: 2, Along: 3.6, Up: 0.9, Width: 1.2, Height: 1.5, Type: model.OpeningWindow, File: "window-living-120150.dxf"},
						},
					},
					{Index: 1, Length: 4, Border: border, Openings: []model.PlacedOpening{}},
					{
						Index: 2, Length: 6, Border: border,
						Openings: []model.PlacedOpening{
							{ID: "o3", Name: "living outside window", Size: 2, Along: 2.4, Up: 0.9, Width: 1.2, Height: 1.5, Type: model.OpeningWindow, File: "window-living-120150.dxf"},
						},
					},
					{Index: 3, Length: 4, Border: border, Openings: []model.PlacedOpening{}},
				},
			},
		},
	}
}
