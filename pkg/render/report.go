package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/bbaird/floorplan/pkg/floorplan"
	"github.com/bbaird/floorplan/pkg/results"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 18.0
	marginRight  = 18.0
	marginTop    = 18.0
	marginBottom = 18.0
)

// Report generates a PDF evaluation report: overall statistics, the root
// shape curve with the selected configuration highlighted, and the
// realized dimensions of every cell.
func Report(res *results.Result, curve floorplan.Curve, selected *floorplan.Point) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Floorplan Evaluation Report", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18.0

	// Summary
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Summary", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Expression", res.NPE},
		{"Minimum Area", fmt.Sprintf("%.6g", res.Area)},
		{"Dimensions", fmt.Sprintf("%.6g x %.6g", res.Width, res.Height)},
		{"Aspect Ratio", fmt.Sprintf("%.4g", res.AspectRatio)},
		{"Cells", fmt.Sprintf("%d", len(res.Cells))},
		{"Curve Size", fmt.Sprintf("%d", res.CurveSize)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(40, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(120, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	y = drawCurveChart(pdf, curve, selected, y)
	y += 8
	y = drawCurveTable(pdf, curve, selected, y)
	y += 8
	drawCellTable(pdf, res.Cells, y)

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by floorplan", "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// drawCurveChart plots the shape curve as a staircase inside a framed box
// and returns the y position below the box.
func drawCurveChart(pdf *fpdf.Fpdf, curve floorplan.Curve, selected *floorplan.Point, y float64) float64 {
	const boxH = 70.0
	boxW := pageWidth - marginLeft - marginRight

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Shape Curve", "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFillColor(250, 250, 250)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.3)
	pdf.Rect(marginLeft, y, boxW, boxH, "FD")

	if len(curve) == 0 {
		return y + boxH
	}

	maxW, maxH := 0.0, 0.0
	for _, p := range curve {
		maxW = math.Max(maxW, p.W)
		maxH = math.Max(maxH, p.H)
	}

	const pad = 8.0
	px := func(w float64) float64 { return marginLeft + pad + w/maxW*(boxW-2*pad) }
	py := func(h float64) float64 { return y + boxH - pad - h/maxH*(boxH-2*pad) }

	// Steps need ascending width; curves carry points in insertion order.
	pts := sortByWidth(curve)

	pdf.SetDrawColor(70, 130, 180)
	pdf.SetLineWidth(0.5)
	for i := 1; i < len(pts); i++ {
		pdf.Line(px(pts[i-1].W), py(pts[i-1].H), px(pts[i].W), py(pts[i-1].H))
		pdf.Line(px(pts[i].W), py(pts[i-1].H), px(pts[i].W), py(pts[i].H))
	}

	for _, p := range pts {
		if selected != nil && p.Equal(*selected) {
			pdf.SetFillColor(220, 20, 60)
			pdf.Circle(px(p.W), py(p.H), 1.4, "F")
		} else {
			pdf.SetFillColor(70, 130, 180)
			pdf.Circle(px(p.W), py(p.H), 1.0, "F")
		}
	}

	return y + boxH
}

// drawCurveTable lists every point of the curve with its area, marking
// the selected configuration, and returns the y position below the table.
func drawCurveTable(pdf *fpdf.Fpdf, curve floorplan.Curve, selected *floorplan.Point, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Configurations", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{15, 40, 40, 45, 30}
	headers := []string{"#", "Width", "Height", "Area", "Selected"}
	y = drawTableHeader(pdf, headers, colWidths, y)

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range sortByWidth(curve) {
		mark := ""
		if selected != nil && p.Equal(*selected) {
			mark = "yes"
		}
		row := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.6g", p.W),
			fmt.Sprintf("%.6g", p.H),
			fmt.Sprintf("%.6g", p.Area()),
			mark,
		}
		y = drawTableRow(pdf, row, colWidths, y, i)
	}
	return y
}

// drawCellTable lists the realized dimensions of every cell.
func drawCellTable(pdf *fpdf.Fpdf, cells []results.CellDims, y float64) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Cell Dimensions", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{25, 45, 45, 45}
	headers := []string{"Cell", "Width", "Height", "Area"}
	y = drawTableHeader(pdf, headers, colWidths, y)

	pdf.SetFont("Helvetica", "", 9)
	for i, c := range cells {
		row := []string{
			c.Name,
			fmt.Sprintf("%.6g", c.W),
			fmt.Sprintf("%.6g", c.H),
			fmt.Sprintf("%.6g", c.W*c.H),
		}
		y = drawTableRow(pdf, row, colWidths, y, i)
	}
}

func drawTableHeader(pdf *fpdf.Fpdf, headers []string, colWidths []float64, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	return y + 6
}

func drawTableRow(pdf *fpdf.Fpdf, row []string, colWidths []float64, y float64, idx int) float64 {
	if idx%2 == 0 {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	x := marginLeft
	for j, cell := range row {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
		x += colWidths[j]
	}
	return y + 6
}
