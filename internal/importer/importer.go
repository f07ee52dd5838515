// Package importer provides CSV and Excel import functionality for opening
// catalogs. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/fenestra/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation. Assets keeps the
// variants of each asset family in row order; Order lists the families in
// the order they first appeared.
type ImportResult struct {
	Assets   map[string][]model.CatalogEntry
	Order    []string
	Errors   []string
	Warnings []string
}

// EntryCount returns the number of imported variants.
func (r ImportResult) EntryCount() int {
	n := 0
	for _, entries := range r.Assets {
		n += len(entries)
	}
	return n
}

func (r *ImportResult) add(asset string, entry model.CatalogEntry) {
	if r.Assets == nil {
		r.Assets = map[string][]model.CatalogEntry{}
	}
	if _, ok := r.Assets[asset]; !ok {
		r.Order = append(r.Order, asset)
	}
	r.Assets[asset] = append(r.Assets[asset], entry)
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Asset  int
	File   int
	Width  int
	Height int
	Side   int
	End    int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"asset":  {"asset", "assets", "family", "catalog", "catalogue", "name", "type name"},
	"file":   {"file", "filename", "file name", "dxf", "drawing", "path"},
	"width":  {"width", "w", "breadth"},
	"height": {"height", "h"},
	"side":   {"side", "side clearance", "spacing", "gap"},
	"end":    {"end", "end clearance", "border", "margin"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or a default positional
// mapping (asset, file, width, height, side, end) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Asset: -1, File: -1, Width: -1, Height: -1, Side: -1, End: -1}
	roles := map[string]*int{
		"asset":  &mapping.Asset,
		"file":   &mapping.File,
		"width":  &mapping.Width,
		"height": &mapping.Height,
		"side":   &mapping.Side,
		"end":    &mapping.End,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if idx := roles[role]; *idx == -1 {
					*idx = i
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Asset: 0, File: 1, Width: 2, Height: 3, Side: 4, End: 5}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseLength parses a required or optional length in metres.
func parseLength(row []string, idx int, rowLabel, column string, required bool) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		if required {
			return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, column)
		}
		return 0, ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, column, s)
	}
	return v, ""
}

// parseRow extracts an asset name and catalog entry from a row.
// Returns the asset, the entry, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (string, model.CatalogEntry, string, string) {
	asset := getCell(row, mapping.Asset)
	if asset == "" {
		return "", model.CatalogEntry{}, fmt.Sprintf("%s: Missing asset name", rowLabel), ""
	}

	width, errMsg := parseLength(row, mapping.Width, rowLabel, "width", true)
	if errMsg != "" {
		return "", model.CatalogEntry{}, errMsg, ""
	}
	height, errMsg := parseLength(row, mapping.Height, rowLabel, "height", true)
	if errMsg != "" {
		return "", model.CatalogEntry{}, errMsg, ""
	}
	side, errMsg := parseLength(row, mapping.Side, rowLabel, "side", false)
	if errMsg != "" {
		return "", model.CatalogEntry{}, errMsg, ""
	}
	end, errMsg := parseLength(row, mapping.End, rowLabel, "end", false)
	if errMsg != "" {
		return "", model.CatalogEntry{}, errMsg, ""
	}

	if width <= 0 || height <= 0 {
		return "", model.CatalogEntry{}, fmt.Sprintf("%s: Width and height must be positive", rowLabel), ""
	}
	if side < 0 || end < 0 {
		return "", model.CatalogEntry{}, fmt.Sprintf("%s: Clearances must not be negative", rowLabel), ""
	}

	var warning string
	file := getCell(row, mapping.File)
	if file == "" {
		file = fmt.Sprintf("%s-%03.0f%03.0f.dxf", asset, width*100, height*100)
		warning = fmt.Sprintf("%s: No file given, using '%s'", rowLabel, file)
	}

	return asset, model.CatalogEntry{File: file, Width: width, Height: height, Side: side, End: end}, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCatalogCSV imports catalog entries from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCatalogCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", warnings)
}

// ImportCatalogCSVFromReader imports catalog entries from a CSV reader with a
// specific delimiter.
func ImportCatalogCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportCatalogExcel imports catalog entries from the first sheet of an
// Excel workbook.
func ImportCatalogExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Asset == -1 {
			missing = append(missing, "Asset")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		asset, entry, errMsg, warning := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.add(asset, entry)
	}

	return result
}

// MergeIntoStyle adds the imported asset families to a style, replacing
// families of the same name. The style's maps are copied, not modified.
func MergeIntoStyle(style model.Style, result ImportResult) model.Style {
	merged := model.Style{
		Name:     style.Name,
		Openings: make(map[string]model.OpeningDef, len(style.Openings)),
		Assets:   make(map[string][]model.CatalogEntry, len(style.Assets)+len(result.Assets)),
	}
	for k, v := range style.Openings {
		merged.Openings[k] = v
	}
	for k, v := range style.Assets {
		merged.Assets[k] = v
	}
	for _, name := range result.Order {
		merged.Assets[name] = append([]model.CatalogEntry(nil), result.Assets[name]...)
	}
	return merged
}
