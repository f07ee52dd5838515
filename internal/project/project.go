// Package project reads and writes fenestra files: projects, layout results,
// TOML styles, the application config and backups.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/fenestra/internal/model"
)

// wallFile is the on-disk form of a wall. Dimensions left out of the file
// take the defaults of model.NewWall for the wall's kind.
type wallFile struct {
	ID        string                 `json:"id,omitempty"`
	Kind      model.WallKind         `json:"kind"`
	Style     string                 `json:"style,omitempty"`
	Path      []model.Point2D        `json:"path"`
	Closed    bool                   `json:"closed"`
	Height    *float64               `json:"height,omitempty"`
	Elevation float64                `json:"elevation"`
	Ceiling   *float64               `json:"ceiling,omitempty"`
	Inner     *float64               `json:"inner,omitempty"`
	Outer     *float64               `json:"outer,omitempty"`
	Level     int                    `json:"level"`
	Segments  []model.SegmentContext `json:"segments,omitempty"`
	Openings  [][]model.Opening      `json:"openings,omitempty"`
	Manual    bool                   `json:"manual,omitempty"`
}

type projectFile struct {
	Name      string     `json:"name"`
	StylePath string     `json:"style_path,omitempty"`
	Walls     []wallFile `json:"walls"`
}

func (f wallFile) toWall() model.Wall {
	if f.Kind == "" {
		f.Kind = model.WallExterior
	}
	w := model.NewWall(f.Kind, f.Path, f.Closed)
	if f.ID != "" {
		w.ID = f.ID
	}
	w.Style = f.Style
	w.Elevation = f.Elevation
	w.Level = f.Level
	w.Segments = f.Segments
	w.Openings = f.Openings
	w.Manual = f.Manual
	if f.Height != nil {
		w.Height = *f.Height
	}
	if f.Ceiling != nil {
		w.Ceiling = *f.Ceiling
	}
	if f.Inner != nil {
		w.Inner = *f.Inner
	}
	if f.Outer != nil {
		w.Outer = *f.Outer
	}
	return w
}

func fromWall(w model.Wall) wallFile {
	return wallFile{
		ID:        w.ID,
		Kind:      w.Kind,
		Style:     w.Style,
		Path:      w.Path,
		Closed:    w.Closed,
		Height:    &w.Height,
		Elevation: w.Elevation,
		Ceiling:   &w.Ceiling,
		Inner:     &w.Inner,
		Outer:     &w.Outer,
		Level:     w.Level,
		Segments:  w.Segments,
		Openings:  w.Openings,
		Manual:    w.Manual,
	}
}

// ParseProject decodes and validates a project. Unknown fields are rejected.
func ParseProject(data []byte) (model.Project, error) {
	var f projectFile
	if err := decodeStrict(data, &f); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project: %w", err)
	}

	p := model.NewProject()
	if f.Name != "" {
		p.Name = f.Name
	}
	p.StylePath = f.StylePath
	for i, wf := range f.Walls {
		w := wf.toWall()
		if err := w.Validate(); err != nil {
			return model.Project{}, fmt.Errorf("wall %d: %w", i+1, err)
		}
		p.Walls = append(p.Walls, w)
	}
	return p, nil
}

// LoadProject reads a project file. A relative style path is resolved
// against the directory of the project file.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	p, err := ParseProject(data)
	if err != nil {
		return model.Project{}, fmt.Errorf("%s: %w", path, err)
	}
	if p.StylePath != "" && !filepath.IsAbs(p.StylePath) {
		p.StylePath = filepath.Join(filepath.Dir(path), p.StylePath)
	}
	return p, nil
}

// SaveProject writes a project as indented JSON.
func SaveProject(path string, p model.Project) error {
	f := projectFile{Name: p.Name, StylePath: p.StylePath, Walls: make([]wallFile, 0, len(p.Walls))}
	for _, w := range p.Walls {
		f.Walls = append(f.Walls, fromWall(w))
	}
	return writeJSON(path, f)
}

// SaveResult writes a layout result as indented JSON.
func SaveResult(path string, result model.LayoutResult) error {
	return writeJSON(path, result)
}

// LoadResult reads a layout result written by SaveResult.
func LoadResult(path string) (model.LayoutResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.LayoutResult{}, fmt.Errorf("failed to read result file: %w", err)
	}
	var result model.LayoutResult
	if err := json.Unmarshal(data, &result); err != nil {
		return model.LayoutResult{}, fmt.Errorf("failed to parse result file: %w", err)
	}
	return result, nil
}

func writeJSON(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
