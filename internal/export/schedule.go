package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/fenestra/internal/model"
)

const (
	scheduleSheet = "Openings"
	quantitySheet = "Quantities"
)

var scheduleHeaders = []string{"ID", "Wall", "Segment", "Name", "Type", "File", "Width (m)", "Height (m)", "Along (m)", "Sill (m)"}

var quantityHeaders = []string{"Name", "Type", "File", "Width (m)", "Height (m)", "Count"}

// QuantityLine is one row of the bill of quantities: identical units
// counted across the whole project.
type QuantityLine struct {
	Name   string
	Type   model.OpeningType
	File   string
	Width  float64
	Height float64
	Count  int
}

// CollectQuantities groups the placed openings by name and variant.
// Lines are sorted by name, then by width and height.
func CollectQuantities(result model.LayoutResult) []QuantityLine {
	type key struct {
		name          string
		file          string
		width, height float64
	}
	counts := map[key]*QuantityLine{}
	for _, wl := range result.Walls {
		for _, seg := range wl.Segments {
			for _, o := range seg.Openings {
				k := key{o.Name, o.File, o.Width, o.Height}
				line, ok := counts[k]
				if !ok {
					line = &QuantityLine{Name: o.Name, Type: o.Type, File: o.File, Width: o.Width, Height: o.Height}
					counts[k] = line
				}
				line.Count++
			}
		}
	}

	lines := make([]QuantityLine, 0, len(counts))
	for _, line := range counts {
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Width != b.Width {
			return a.Width < b.Width
		}
		return a.Height < b.Height
	})
	return lines
}

// ExportScheduleXLSX writes the opening schedule as an Excel workbook with
// one row per placed opening and a second sheet of quantities.
func ExportScheduleXLSX(path string, result model.LayoutResult) error {
	if len(result.Walls) == 0 {
		return fmt.Errorf("no walls to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", scheduleSheet); err != nil {
		return fmt.Errorf("failed to name schedule sheet: %w", err)
	}
	if _, err := f.NewSheet(quantitySheet); err != nil {
		return fmt.Errorf("failed to add quantity sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	var rows [][]any
	for _, wl := range result.Walls {
		for _, seg := range wl.Segments {
			for _, o := range seg.Openings {
				rows = append(rows, []any{o.ID, wl.WallID, seg.Index + 1, o.Name, string(o.Type), o.File, o.Width, o.Height, o.Along, o.Up})
			}
		}
	}
	if err := writeSheet(f, scheduleSheet, scheduleHeaders, rows, bold); err != nil {
		return err
	}

	rows = rows[:0]
	for _, q := range CollectQuantities(result) {
		rows = append(rows, []any{q.Name, string(q.Type), q.File, q.Width, q.Height, q.Count})
	}
	if err := writeSheet(f, quantitySheet, quantityHeaders, rows, bold); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any, headerStyle int) error {
	for j, h := range headers {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to write %s header: %w", sheet, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
			}
		}
	}
	return nil
}
