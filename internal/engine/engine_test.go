package engine

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/fenestra/internal/model"
	"github.com/piwi3910/fenestra/internal/project"
)

const eps = 1e-6

// testStyle has a single variant per asset so the expected positions can be
// worked out by hand.
func testStyle() model.Style {
	return model.Style{
		Name: "test",
		Openings: map[string]model.OpeningDef{
			LivingOutsideWindow: {Name: "window-a", Type: model.OpeningWindow, Cill: 0.5},
			HouseEntrance:       {Name: "door-a", Type: model.OpeningDoor},
			LivingOutsideDoor:   {Name: "door-a", Type: model.OpeningDoor},
			LivingInsideDoor:    {Name: "door-inside", Type: model.OpeningDoor},
		},
		Assets: map[string][]model.CatalogEntry{
			"window-a":    {{File: "window-a.dxf", Width: 1.0, Height: 2.0, Side: 0.5, End: 2.0}},
			"door-a":      {{File: "door-a.dxf", Width: 1.0, Height: 2.1, Side: 0.3, End: 0.2}},
			"door-inside": {{File: "door-inside.dxf", Width: 0.9, Height: 2.1, Side: 0.1, End: 0.1}},
		},
	}
}

func newTestEngine(style model.Style) *Engine {
	return New(model.DefaultSettings(), style)
}

// straightWall is an open exterior wall along the x axis with equal
// thickness on both sides.
func straightWall(length, thickness float64, usage string) model.Wall {
	w := model.NewWall(model.WallExterior, []model.Point2D{{X: 0, Y: 0}, {X: length, Y: 0}}, false)
	w.ID = "straight"
	w.Inner = thickness
	w.Outer = thickness
	w.Segments = []model.SegmentContext{{Usage: usage}}
	return w
}

func alongs(openings model.Openings) []float64 {
	result := make([]float64, len(openings))
	for i, o := range openings {
		result[i] = o.Along
	}
	return result
}

func names(openings model.Openings) []string {
	result := make([]string, len(openings))
	for i, o := range openings {
		result[i] = o.Name
	}
	return result
}

func TestNew_NormalizesSettings(t *testing.T) {
	e := New(model.LayoutSettings{}, testStyle())
	assert.Equal(t, model.DefaultSettings(), e.Settings)
	assert.Equal(t, "test", e.Style.Name)
}

func TestLayoutWall_SingleWindowCentred(t *testing.T) {
	e := newTestEngine(testStyle())
	w := straightWall(6, 0.08, UsageLiving)

	layout := e.LayoutWall(w)

	assert.Equal(t, "straight", layout.WallID)
	assert.Equal(t, model.WallExterior, layout.Kind)
	require.Len(t, layout.Segments, 1)

	seg := layout.Segments[0]
	assert.Equal(t, 0, seg.Index)
	assert.InDelta(t, 6.0, seg.Length, eps)
	assert.InDelta(t, 0.08, seg.Border.Left, eps)
	assert.InDelta(t, 0.08, seg.Border.Right, eps)

	require.Len(t, seg.Openings, 1)
	o := seg.Openings[0]
	assert.Equal(t, LivingOutsideWindow, o.Name)
	assert.Equal(t, model.OpeningWindow, o.Type)
	assert.Equal(t, "window-a.dxf", o.File)
	assert.InDelta(t, 2.5, o.Along, eps)
	assert.InDelta(t, 0.5, o.Up, eps)
	assert.InDelta(t, 1.0, o.Width, eps)
	assert.InDelta(t, 2.0, o.Height, eps)
	assert.Len(t, o.ID, 8)
}

func TestLayoutWall_InteriorDoorKeepsPosition(t *testing.T) {
	e := newTestEngine(testStyle())
	w := model.NewWall(model.WallInterior, []model.Point2D{{X: 0, Y: 0}, {X: 3, Y: 0}}, false)

	layout := e.LayoutWall(w)

	require.Len(t, layout.Segments, 1)
	require.Len(t, layout.Segments[0].Openings, 1)
	o := layout.Segments[0].Openings[0]
	assert.Equal(t, LivingInsideDoor, o.Name)
	assert.Equal(t, model.OpeningDoor, o.Type)
	assert.InDelta(t, placeholderAlong, o.Along, eps)
	assert.InDelta(t, 0.0, o.Up, eps)
}

func TestLayoutWall_EverySegmentReported(t *testing.T) {
	e := newTestEngine(testStyle())
	w := model.NewWall(model.WallExterior, []model.Point2D{{X: 0, Y: 0}, {X: 0.5, Y: 0}, {X: 0.5, Y: 0.5}}, true)
	w.Segments = []model.SegmentContext{{Usage: UsageLiving}, {Usage: UsageLiving}, {Usage: UsageLiving}}

	layout := e.LayoutWall(w)

	require.Len(t, layout.Segments, 3)
	for i, seg := range layout.Segments {
		assert.Equal(t, i, seg.Index)
		assert.Empty(t, seg.Openings, "segment %d is too short for any opening", i)
		assert.NotNil(t, seg.Openings)
	}
	assert.Equal(t, 0, layout.OpeningCount())
}

func TestLayoutWall_PresetRequests(t *testing.T) {
	e := newTestEngine(testStyle())
	w := straightWall(4, 0, UsageLiving)
	w.Manual = true
	w.Openings = [][]model.Opening{{{Name: HouseEntrance, Along: 1.0}}}

	layout := e.LayoutWall(w)

	require.Len(t, layout.Segments[0].Openings, 1)
	o := layout.Segments[0].Openings[0]
	assert.Equal(t, HouseEntrance, o.Name)
	// aligned to the middle of the segment
	assert.InDelta(t, 1.5, o.Along, eps)
}

func TestLayoutWalls_KeepsInputOrder(t *testing.T) {
	e := newTestEngine(testStyle())
	e.Settings.Workers = 3

	var walls []model.Wall
	for i := 0; i < 20; i++ {
		w := straightWall(float64(3+i%4), 0.08, UsageLiving)
		w.ID = fmt.Sprintf("w%02d", i)
		walls = append(walls, w)
	}

	layouts, err := e.LayoutWalls(context.Background(), walls)
	require.NoError(t, err)
	require.Len(t, layouts, len(walls))
	for i, wl := range layouts {
		assert.Equal(t, walls[i].ID, wl.WallID)
		assert.Len(t, wl.Segments, 1)
	}
}

func TestLayoutWalls_Cancelled(t *testing.T) {
	e := newTestEngine(testStyle())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.LayoutWalls(ctx, []model.Wall{straightWall(6, 0.08, UsageLiving)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLayoutProject(t *testing.T) {
	e := newTestEngine(testStyle())
	p := model.NewProject()
	p.Name = "Test House"
	p.Walls = []model.Wall{straightWall(6, 0.08, UsageLiving)}

	result, err := e.LayoutProject(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "Test House", result.Project)
	assert.Equal(t, "test", result.Style)
	assert.Len(t, result.Walls, 1)
	assert.Equal(t, 1, result.OpeningCount())
}

func TestForWall(t *testing.T) {
	alt := testStyle()
	alt.Name = "alt"
	alt.Assets["window-a"] = []model.CatalogEntry{{File: "window-alt.dxf", Width: 1.2, Height: 2.0, Side: 0.5, End: 2.0}}

	e := newTestEngine(testStyle())
	e.Styles = map[string]model.Style{"alt": alt}

	w := straightWall(6, 0.08, UsageLiving)
	assert.Equal(t, "test", e.ForWall(w).Style.Name)

	w.Style = "unknown"
	assert.Equal(t, "test", e.ForWall(w).Style.Name)

	w.Style = "alt"
	assert.Equal(t, "alt", e.ForWall(w).Style.Name)
	assert.Equal(t, "test", e.Style.Name, "the engine itself is unchanged")

	layout := e.LayoutWall(w)
	require.Len(t, layout.Segments[0].Openings, 1)
	assert.Equal(t, "window-alt.dxf", layout.Segments[0].Openings[0].File)
	assert.InDelta(t, 2.4, layout.Segments[0].Openings[0].Along, eps)
}

func TestLayoutWall_LogsDroppedOpenings(t *testing.T) {
	var buf bytes.Buffer
	e := newTestEngine(testStyle())
	e.Logger = log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	e.LayoutWall(straightWall(2, 0.08, UsageLiving))

	assert.Contains(t, buf.String(), "opening dropped")
	assert.Contains(t, buf.String(), "segment too short")
}

// TestLayoutWall_DefaultStyle runs the shipped style over a small house and
// checks the properties every placed opening must have.
func TestLayoutWall_DefaultStyle(t *testing.T) {
	style, err := project.DefaultStyle()
	require.NoError(t, err)
	e := newTestEngine(style)

	w := model.NewWall(model.WallExterior, []model.Point2D{{X: 0, Y: 0}, {X: 9, Y: 0}, {X: 9, Y: 7}, {X: 0, Y: 7}}, true)
	w.Segments = []model.SegmentContext{
		{Usage: UsageRetail, Access: true},
		{Usage: UsageKitchen},
		{Usage: UsageCirculation},
		{Usage: UsageToilet},
	}

	layout := e.LayoutWall(w)
	require.Len(t, layout.Segments, 4)
	assert.Positive(t, layout.OpeningCount())

	for _, seg := range layout.Segments {
		for _, o := range seg.Openings {
			assert.GreaterOrEqual(t, o.Up, 0.0, "%s sill", o.Name)
			assert.LessOrEqual(t, o.Up+o.Height, w.Soffit()+e.Settings.Tolerance, "%s head", o.Name)
			assert.Contains(t, []model.OpeningType{model.OpeningDoor, model.OpeningWindow}, o.Type)
			assert.NotEmpty(t, o.File)
		}
		assert.LessOrEqual(t, len(seg.Openings), e.Settings.MaxOpenings)
	}
}
