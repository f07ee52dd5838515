package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/fenestra/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Asset,File,Width,Height\nwindow-small,ws-060.dxf,0.6,0.6\nwindow-small,ws-090.dxf,0.9,0.6\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Asset;File;Width;Height\nwindow-small;ws-060.dxf;0,6;0,6\nwindow-small;ws-090.dxf;0,9;0,6\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Asset\tWidth\tHeight\nwindow-small\t0.6\t0.6\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Asset|Width|Height\nwindow-small|0.6|0.6\n")
	if got := DetectCSVDelimiter(data); got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Asset", "File", "Width", "Height", "Side", "End"})

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Asset: 0, File: 1, Width: 2, Height: 3, Side: 4, End: 5}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_AlternativeNames(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{" FAMILY ", "Drawing", "W", "H", "Gap", "Margin"})

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Asset: 0, File: 1, Width: 2, Height: 3, Side: 4, End: 5}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_ReorderedColumns(t *testing.T) {
	mapping, _ := DetectColumns([]string{"Height", "Width", "Asset"})

	if mapping.Height != 0 || mapping.Width != 1 || mapping.Asset != 2 {
		t.Errorf("wrong mapping for reordered columns: %+v", mapping)
	}
	if mapping.File != -1 || mapping.Side != -1 || mapping.End != -1 {
		t.Errorf("missing columns should map to -1: %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"window-small", "ws.dxf", "0.6", "0.6"})

	if isHeader {
		t.Error("expected no header to be detected")
	}
	if mapping.Asset != 0 || mapping.File != 1 || mapping.Width != 2 || mapping.Height != 3 || mapping.Side != 4 || mapping.End != 5 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCatalogCSVFromReader_WithHeaders(t *testing.T) {
	data := "Asset,File,Width,Height,Side,End\n" +
		"window-living,wl-090.dxf,0.9,1.5,0.4,0.3\n" +
		"door-inside,di-080.dxf,0.8,2.0,0.1,0.05\n" +
		"window-living,wl-120.dxf,1.2,1.5,0.4,0.3\n"
	result := ImportCatalogCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if result.EntryCount() != 3 {
		t.Fatalf("expected 3 entries, got %d", result.EntryCount())
	}
	if len(result.Order) != 2 || result.Order[0] != "window-living" || result.Order[1] != "door-inside" {
		t.Errorf("expected families in first-seen order, got %v", result.Order)
	}

	living := result.Assets["window-living"]
	if len(living) != 2 {
		t.Fatalf("expected 2 window-living variants, got %d", len(living))
	}
	want := model.CatalogEntry{File: "wl-090.dxf", Width: 0.9, Height: 1.5, Side: 0.4, End: 0.3}
	if living[0] != want {
		t.Errorf("expected %+v, got %+v", want, living[0])
	}
	if living[1].Width != 1.2 {
		t.Errorf("expected row order to be kept, got width %.2f second", living[1].Width)
	}
}

func TestImportCatalogCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "window-small,ws-060.dxf,0.6,0.6,0.2,0.1\n"
	result := ImportCatalogCSVFromReader(strings.NewReader(data), ',')

	if result.EntryCount() != 1 {
		t.Fatalf("expected 1 entry, got %d (errors: %v)", result.EntryCount(), result.Errors)
	}
	if result.Assets["window-small"][0].End != 0.1 {
		t.Errorf("expected end clearance 0.1, got %f", result.Assets["window-small"][0].End)
	}
}

func TestImportCatalogCSVFromReader_OptionalColumns(t *testing.T) {
	data := "Asset,Width,Height\nwindow-small,0.6,0.6\n"
	result := ImportCatalogCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	entry := result.Assets["window-small"][0]
	if entry.Side != 0 || entry.End != 0 {
		t.Errorf("expected zero clearances, got side %f end %f", entry.Side, entry.End)
	}
	if entry.File != "window-small-060060.dxf" {
		t.Errorf("expected generated file name, got %q", entry.File)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "No file given") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a warning about the missing file, got %v", result.Warnings)
	}
}

func TestImportCatalogCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCatalogCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

func TestImportCatalogCSVFromReader_InvalidWidth(t *testing.T) {
	data := "Asset,Width,Height\nwindow-small,wide,0.6\n"
	result := ImportCatalogCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Line 2") || !strings.Contains(result.Errors[0], "width") {
		t.Errorf("error should name the line and column: %q", result.Errors[0])
	}
}

func TestImportCatalogCSVFromReader_NegativeValues(t *testing.T) {
	data := "Asset,Width,Height,Side\nwindow-small,-0.6,0.6,0\nwindow-small,0.6,0.6,-0.1\n"
	result := ImportCatalogCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) != 2 {
		t.Errorf("expected 2 errors, got %v", result.Errors)
	}
	if result.EntryCount() != 0 {
		t.Errorf("expected no entries, got %d", result.EntryCount())
	}
}

func TestImportCatalogCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	data := "Asset,Width,Height\nwindow-small,0.6,0.6\n,0.9,0.6\nwindow-small,0.9,\n"
	result := ImportCatalogCSVFromReader(strings.NewReader(data), ',')

	if result.EntryCount() != 1 {
		t.Errorf("expected 1 valid entry, got %d", result.EntryCount())
	}
	if len(result.Errors) != 2 {
		t.Errorf("expected 2 errors, got %v", result.Errors)
	}
}

func TestImportCatalogCSVFromReader_EmptyRows(t *testing.T) {
	data := "Asset,Width,Height\n\nwindow-small,0.6,0.6\n,,\n"
	result := ImportCatalogCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("empty rows should be skipped, got %v", result.Errors)
	}
	if result.EntryCount() != 1 {
		t.Errorf("expected 1 entry, got %d", result.EntryCount())
	}
}

func TestImportCatalogCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	data := "Asset,File,Width\nwindow-small,ws.dxf,0.6\n"
	result := ImportCatalogCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Height") {
		t.Errorf("expected missing Height column error, got %v", result.Errors)
	}
}

func TestImportCatalogCSV_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	content := "Asset;Width;Height;Side;End\nwindow-small;0.6;0.6;0.2;0.1\nwindow-small;0.9;0.6;0.2;0.1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCatalogCSV(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.EntryCount() != 2 {
		t.Errorf("expected 2 entries, got %d", result.EntryCount())
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "semicolon") {
		t.Errorf("expected semicolon detection warning, got %v", result.Warnings)
	}
}

func TestImportCatalogCSV_FileNotFound(t *testing.T) {
	result := ImportCatalogCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCatalogCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	result := ImportCatalogCSV(path)
	if len(result.Errors) != 1 || result.Errors[0] != "File is empty" {
		t.Errorf("expected empty file error, got %v", result.Errors)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportCatalogExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Asset", "File", "Width", "Height", "Side", "End"},
		{"door-inside", "di-080.dxf", 0.8, 2.0, 0.1, 0.05},
		{"door-inside", "di-090.dxf", 0.9, 2.0, 0.1, 0.05},
	})

	result := ImportCatalogExcel(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	doors := result.Assets["door-inside"]
	if len(doors) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(doors))
	}
	if doors[1].File != "di-090.dxf" || doors[1].Width != 0.9 || doors[1].Height != 2.0 {
		t.Errorf("unexpected second variant %+v", doors[1])
	}
}

func TestImportCatalogExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"window-small", "ws-060.dxf", 0.6, 0.6, 0.2, 0.1},
	})

	result := ImportCatalogExcel(path)
	if result.EntryCount() != 1 {
		t.Errorf("expected 1 entry, got %d (errors: %v)", result.EntryCount(), result.Errors)
	}
}

func TestImportCatalogExcel_FileNotFound(t *testing.T) {
	result := ImportCatalogExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCatalogExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Asset", "Width", "Height"},
		{"window-small", "abc", 0.6},
		{"window-small", 0.6, 0.6},
	})

	result := ImportCatalogExcel(path)
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Row 2") {
		t.Errorf("expected one error on row 2, got %v", result.Errors)
	}
	if result.EntryCount() != 1 {
		t.Errorf("expected 1 entry, got %d", result.EntryCount())
	}
}

// ─── MergeIntoStyle Tests ──────────────────────────────────

func TestMergeIntoStyle(t *testing.T) {
	style := model.Style{
		Name:     "base",
		Openings: map[string]model.OpeningDef{"toilet outside window": {Name: "window-small", Type: model.OpeningWindow, Cill: 1.5}},
		Assets: map[string][]model.CatalogEntry{
			"window-small": {{File: "old.dxf", Width: 0.5, Height: 0.5}},
			"door-inside":  {{File: "di.dxf", Width: 0.8, Height: 2.0}},
		},
	}
	data := "Asset,File,Width,Height\nwindow-small,ws-060.dxf,0.6,0.6\nwindow-small,ws-090.dxf,0.9,0.6\n"
	merged := MergeIntoStyle(style, ImportCatalogCSVFromReader(strings.NewReader(data), ','))

	if len(merged.Assets["window-small"]) != 2 || merged.Assets["window-small"][0].File != "ws-060.dxf" {
		t.Errorf("imported family should replace the existing one, got %+v", merged.Assets["window-small"])
	}
	if len(merged.Assets["door-inside"]) != 1 {
		t.Error("untouched families should be kept")
	}
	if len(style.Assets["window-small"]) != 1 || style.Assets["window-small"][0].File != "old.dxf" {
		t.Error("the input style must not be modified")
	}
	if merged.Openings["toilet outside window"].Cill != 1.5 {
		t.Error("opening definitions should be carried over")
	}
}
