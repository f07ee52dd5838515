// Package export provides functionality for exporting opening layouts
// to various file formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/fenestra/internal/model"
)

// openingColor represents an RGB color for a placed opening.
type openingColor struct {
	R, G, B int
}

var (
	doorColor   = openingColor{R: 121, G: 85, B: 72}   // brown
	windowColor = openingColor{R: 33, G: 150, B: 243}  // blue
	wallColor   = openingColor{R: 224, G: 218, B: 206} // plaster
)

func colorFor(t model.OpeningType) openingColor {
	if t == model.OpeningDoor {
		return doorColor
	}
	return windowColor
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// defaultWallHeight is drawn for layouts whose wall descriptor is not known.
const defaultWallHeight = 3.0

// wallIndex maps wall IDs onto their descriptors.
func wallIndex(walls []model.Wall) map[string]model.Wall {
	index := make(map[string]model.Wall, len(walls))
	for _, w := range walls {
		index[w.ID] = w
	}
	return index
}

// ExportElevationPDF generates a PDF document with one elevation drawing per
// wall segment, seen from outside, followed by a summary page.
func ExportElevationPDF(path string, walls []model.Wall, result model.LayoutResult) error {
	if len(result.Walls) == 0 {
		return fmt.Errorf("no walls to export")
	}

	index := wallIndex(walls)
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for wi, wl := range result.Walls {
		w, known := index[wl.WallID]
		for _, seg := range wl.Segments {
			pdf.AddPage()
			renderSegmentPage(pdf, wl, seg, w, known, wi+1)
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// renderSegmentPage draws the elevation of a single segment on the current page.
func renderSegmentPage(pdf *fpdf.Fpdf, wl model.WallLayout, seg model.SegmentLayout, w model.Wall, known bool, wallNum int) {
	height := defaultWallHeight
	if known {
		height = w.Height
	}

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Wall %d (%s) segment %d: %.2f m", wallNum, wl.WallID, seg.Index+1, seg.Length)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Kind: %s | Openings: %d | Border: %.2f / %.2f m | Height: %.2f m",
		wl.Kind, len(seg.Openings), seg.Border.Left, seg.Border.Right, height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	if seg.Length <= 0 || height <= 0 {
		return
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/seg.Length, drawHeight/height)
	canvasW := seg.Length * scale
	canvasH := height * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop
	base := offsetY + canvasH

	// Wall face
	pdf.SetFillColor(wallColor.R, wallColor.G, wallColor.B)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Corner clearances
	if bw := seg.Border.Left * scale; bw > 0 {
		drawHatchPattern(pdf, offsetX, offsetY, bw, canvasH)
	}
	if bw := seg.Border.Right * scale; bw > 0 {
		drawHatchPattern(pdf, offsetX+canvasW-bw, offsetY, bw, canvasH)
	}

	// Soffit
	if known {
		sy := base - w.Soffit()*scale
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.2)
		pdf.SetDashPattern([]float64{2, 1}, 0)
		pdf.Line(offsetX, sy, offsetX+canvasW, sy)
		pdf.SetDashPattern([]float64{}, 0)
	}

	for _, o := range seg.Openings {
		col := colorFor(o.Type)
		ow := o.Width * scale
		oh := o.Height * scale
		ox := offsetX + o.Along*scale
		oy := base - (o.Up+o.Height)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(ox, oy, ow, oh, "FD")

		if ow > 15 && oh > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(ow, oh))
			pdf.SetTextColor(255, 255, 255)
			dims := fmt.Sprintf("%.2fx%.2f", o.Width, o.Height)
			dimsW := pdf.GetStringWidth(dims)
			if dimsW < ow-2 {
				pdf.SetXY(ox+(ow-dimsW)/2, oy+oh/2-2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
			pdf.SetTextColor(0, 0, 0)
		}
	}

	drawDimensionAnnotations(pdf, seg.Length, height, offsetX, offsetY, canvasW, canvasH)
	drawOpeningsLegend(pdf, seg, base+6)
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark a clearance zone.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.15)

	spacing := 3.0
	for d := spacing; d < w+h; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds length and height labels outside the elevation.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, length, height, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	lengthLabel := fmt.Sprintf("%.2f m", length)
	lLabelW := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX+(canvasW-lLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(lLabelW, 4, lengthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.2f m", height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawOpeningsLegend lists the openings of the segment below the drawing.
func drawOpeningsLegend(pdf *fpdf.Fpdf, seg model.SegmentLayout, startY float64) {
	if len(seg.Openings) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Openings:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, o := range seg.Openings {
		col := colorFor(o.Type)
		label := fmt.Sprintf("%s @ %.2f (%.2fx%.2f, sill %.2f)", o.Name, o.Along, o.Width, o.Height, o.Up)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final page with per-wall opening counts.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.LayoutResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Opening Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	doors, windows := countByType(result)
	summaryItems := []struct {
		label string
		value string
	}{
		{"Project", result.Project},
		{"Style", result.Style},
		{"Walls", fmt.Sprintf("%d", len(result.Walls))},
		{"Doors", fmt.Sprintf("%d", doors)},
		{"Windows", fmt.Sprintf("%d", windows)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Wall Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 50, 40, 40, 40}
	headers := []string{"Wall", "ID", "Kind", "Segments", "Openings"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, wl := range result.Walls {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			wl.WallID,
			string(wl.Kind),
			fmt.Sprintf("%d", len(wl.Segments)),
			fmt.Sprintf("%d", wl.OpeningCount()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by Fenestra - Opening Layout Engine", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

// countByType returns the number of placed doors and windows.
func countByType(result model.LayoutResult) (doors, windows int) {
	for _, wl := range result.Walls {
		for _, s := range wl.Segments {
			for _, o := range s.Openings {
				if o.Type == model.OpeningDoor {
					doors++
				} else {
					windows++
				}
			}
		}
	}
	return doors, windows
}
