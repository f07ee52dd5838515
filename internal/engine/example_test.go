package engine_test

import (
	"fmt"

	"github.com/piwi3910/fenestra/internal/engine"
	"github.com/piwi3910/fenestra/internal/model"
)

func ExampleEngine_LayoutWall() {
	style := model.Style{
		Name: "example",
		Openings: map[string]model.OpeningDef{
			engine.LivingOutsideWindow: {Name: "window-living", Type: model.OpeningWindow, Cill: 0.5},
		},
		Assets: map[string][]model.CatalogEntry{
			"window-living": {{File: "window-living-1020.dxf", Width: 1.0, Height: 2.0, Side: 0.5, End: 2.0}},
		},
	}
	e := engine.New(model.DefaultSettings(), style)

	w := model.NewWall(model.WallExterior, []model.Point2D{{X: 0, Y: 0}, {X: 6, Y: 0}}, false)
	w.Inner, w.Outer = 0.08, 0.08
	w.Segments = []model.SegmentContext{{Usage: engine.UsageLiving}}

	for _, seg := range e.LayoutWall(w).Segments {
		for _, o := range seg.Openings {
			fmt.Printf("%s: %s at %.2f m, sill %.2f m\n", o.Name, o.File, o.Along, o.Up)
		}
	}
	// Output:
	// living outside window: window-living-1020.dxf at 2.50 m, sill 0.50 m
}
