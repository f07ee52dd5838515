package engine

import (
	"context"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/fenestra/internal/model"
)

// Engine lays out windows and doors along wall segments.
// It only reads its styles, so one Engine can serve many goroutines.
type Engine struct {
	Settings model.LayoutSettings
	Style    model.Style            // Used by walls without a known style
	Styles   map[string]model.Style // Keyed by Wall.Style
	Logger   *log.Logger
}

// New returns an engine; zero settings fall back to their defaults.
func New(settings model.LayoutSettings, style model.Style) *Engine {
	return &Engine{Settings: settings.Normalized(), Style: style}
}

var discard = log.New(io.Discard)

func (e *Engine) log() *log.Logger {
	if e.Logger == nil {
		return discard
	}
	return e.Logger
}

// LayoutProject lays out every wall of a project.
func (e *Engine) LayoutProject(ctx context.Context, p model.Project) (model.LayoutResult, error) {
	walls, err := e.LayoutWalls(ctx, p.Walls)
	if err != nil {
		return model.LayoutResult{}, err
	}
	return model.LayoutResult{Project: p.Name, Style: e.Style.Name, Walls: walls}, nil
}

// LayoutWalls lays out walls concurrently, at most Settings.Workers at a
// time. Results are in input order.
func (e *Engine) LayoutWalls(ctx context.Context, walls []model.Wall) ([]model.WallLayout, error) {
	results := make([]model.WallLayout, len(walls))

	g, ctx := errgroup.WithContext(ctx)
	if e.Settings.Workers > 0 {
		g.SetLimit(e.Settings.Workers)
	}
	for i, w := range walls {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.LayoutWall(w)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ForWall returns a view of the engine that resolves catalogs with the
// style of w.
func (e *Engine) ForWall(w model.Wall) *Engine {
	view := *e
	if style, ok := e.Styles[w.Style]; ok && w.Style != "" {
		view.Style = style
	}
	return &view
}

// LayoutWall proposes, fits and places the openings of every segment of w.
func (e *Engine) LayoutWall(w model.Wall) model.WallLayout {
	e = e.ForWall(w)
	layout := model.WallLayout{WallID: w.ID, Kind: w.Kind, Segments: []model.SegmentLayout{}}

	for i := 0; i < w.SegmentCount(); i++ {
		openings := e.proposals(w, i)
		openings = e.FixHeights(w, openings)
		openings = e.FixSegment(w, i, openings)
		layout.Segments = append(layout.Segments, e.place(w, i, openings))
	}

	e.log().Debug("wall laid out", "wall", w.ID, "kind", w.Kind, "segments", len(layout.Segments), "openings", layout.OpeningCount())
	return layout
}

// proposals returns the preset requests of a segment followed by the
// proposals for its usage.
func (e *Engine) proposals(w model.Wall, segment int) model.Openings {
	var openings model.Openings
	if len(w.Openings) == w.SegmentCount() {
		openings = model.Openings(w.Openings[segment]).Clone()
	}
	if w.Manual {
		return openings
	}
	if w.Kind == model.WallInterior {
		return append(openings, e.ProposeInterior(w, segment)...)
	}
	return append(openings, e.ProposeExterior(w, segment)...)
}

// place resolves the catalog variant of each opening.
func (e *Engine) place(w model.Wall, segment int, openings model.Openings) model.SegmentLayout {
	sl := model.SegmentLayout{
		Index:    segment,
		Length:   w.SegmentLength(segment),
		Border:   w.Border(segment),
		Openings: make([]model.PlacedOpening, 0, len(openings)),
	}
	for _, o := range openings {
		cat := e.catalog(o.Name)
		entry := cat.Entry(o.Size)
		sl.Openings = append(sl.Openings, model.PlacedOpening{
			ID:     uuid.New().String()[:8],
			Name:   o.Name,
			Size:   o.Size,
			Along:  o.Along,
			Up:     o.Up,
			Width:  entry.Width,
			Height: entry.Height,
			Type:   cat.Type,
			File:   entry.File,
		})
	}
	return sl
}

func (e *Engine) catalog(name string) model.Catalog {
	return e.Style.Opening(name)
}

func (e *Engine) entry(o model.Opening) model.CatalogEntry {
	return e.catalog(o.Name).Entry(o.Size)
}

// fits reports whether need is at most avail, treating values within the
// tolerance as equal.
func (e *Engine) fits(need, avail float64) bool {
	return need <= avail+e.Settings.Tolerance
}

func (e *Engine) exceeds(need, avail float64) bool {
	return !e.fits(need, avail)
}

// round drops floating point noise below a micrometre.
func round(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
