// Package report renders a completed solution.Solution to the output
// formats a shop floor or CAM pipeline consumes: a PDF cutting diagram
// with a scan-to-verify QR code per bin, an XLSX summary workbook, and a
// DXF export of the cut lines for CAM re-use.
package report

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/guillocut/internal/instance"
	"github.com/piwi3910/guillocut/internal/solution"
)

type binColor struct {
	R, G, B int
}

// binColors cycles through a fixed palette so adjacent placements in a
// crowded diagram stay visually distinguishable.
var binColors = []binColor{
	{R: 76, G: 175, B: 80},
	{R: 33, G: 150, B: 243},
	{R: 255, G: 152, B: 0},
	{R: 156, G: 39, B: 176},
	{R: 0, G: 188, B: 212},
	{R: 244, G: 67, B: 54},
	{R: 255, G: 235, B: 59},
	{R: 121, G: 85, B: 72},
}

const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	qrSize       = 22.0
)

// WritePDF renders one page per bin of sol (a cutting diagram with item
// rectangles and a scan-to-verify QR code) followed by a summary page,
// and writes the result to path.
func WritePDF(path string, inst *instance.Instance, sol solution.Solution) error {
	if len(sol.Bins) == 0 {
		return fmt.Errorf("report: no bins to render")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	digest := sol.Digest()
	for i, bin := range sol.Bins {
		pdf.AddPage()
		if err := renderBinPage(pdf, inst, bin, i+1, digest); err != nil {
			return fmt.Errorf("report: render bin %d: %w", i+1, err)
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, sol)

	return pdf.OutputFileAndClose(path)
}

func renderBinPage(pdf *fpdf.Fpdf, inst *instance.Instance, bin solution.BinSolution, pageNum int, digest string) error {
	bt := inst.BinType(bin.BinTypeID)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Bin %d: %s (%d x %d)", pageNum, bt.Label, bt.Rect.Width, bt.Rect.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight-qrSize, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	eff := 0.0
	if bt.Rect.Area() > 0 {
		eff = 100 * float64(bin.ItemArea) / float64(bt.Rect.Area())
	}
	stats := fmt.Sprintf("Items: %d | Used area: %d | Waste: %d | Efficiency: %.1f%%",
		len(bin.Placements), bin.ItemArea, bin.Waste, eff)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	if err := drawCertificateQR(pdf, pageWidth-marginRight-qrSize, marginTop, digest, pageNum); err != nil {
		return err
	}

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - marginTop - headerHeight - 10 - marginBottom
	scaleX := drawWidth / float64(bt.Rect.Width)
	scaleY := drawHeight / float64(bt.Rect.Height)
	scale := math.Min(scaleX, scaleY)

	canvasW := float64(bt.Rect.Width) * scale
	canvasH := float64(bt.Rect.Height) * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := marginTop + headerHeight + 10

	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, d := range bt.Defects {
		drawDefect(pdf, d, scale, offsetX, offsetY, canvasH)
	}

	for i, p := range bin.Placements {
		col := binColors[i%len(binColors)]
		it := inst.ItemType(p.ItemTypeID)
		drawPlacement(pdf, p, it, col, scale, offsetX, offsetY, canvasH)
	}

	return nil
}

// drawPlacement draws one item's rectangle, flipping Y since guillotine
// coordinates grow upward and PDF coordinates grow downward.
func drawPlacement(pdf *fpdf.Fpdf, p solution.Placement, it instance.ItemType, col binColor, scale float64, offsetX, offsetY, canvasH float64) {
	pw := float64(p.Rect.Width) * scale
	ph := float64(p.Rect.Height) * scale
	px := offsetX + float64(p.Pos.X)*scale
	py := offsetY + canvasH - float64(p.Pos.Y)*scale - ph

	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.3)
	pdf.Rect(px, py, pw, ph, "FD")

	if pw > 14 && ph > 7 {
		pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
		pdf.SetTextColor(0, 0, 0)
		label := it.Label
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label)
		if labelW < pw-2 {
			pdf.SetXY(px+(pw-labelW)/2, py+ph/2-2)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}
	}
}

func drawDefect(pdf *fpdf.Fpdf, d instance.Defect, scale float64, offsetX, offsetY, canvasH float64) {
	dw := float64(d.Rect.Width) * scale
	dh := float64(d.Rect.Height) * scale
	dx := offsetX + float64(d.Pos.X)*scale
	dy := offsetY + canvasH - float64(d.Pos.Y)*scale - dh

	pdf.SetFillColor(255, 200, 200)
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.Rect(dx, dy, dw, dh, "FD")
}

func drawCertificateQR(pdf *fpdf.Fpdf, x, y float64, digest string, binIndex int) error {
	payload := fmt.Sprintf("bin=%d digest=%s", binIndex, digest)
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate certificate qr: %w", err)
	}
	name := fmt.Sprintf("cert_%d_%s", binIndex, digest)
	pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions(name, x, y, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

func renderSummaryPage(pdf *fpdf.Fpdf, sol solution.Solution) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Packing Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	items := []struct{ label, value string }{
		{"Objective", sol.Objective.String()},
		{"Bins used", fmt.Sprintf("%d", len(sol.Bins))},
		{"Items placed", fmt.Sprintf("%d", sol.TotalItems)},
		{"Total profit", fmt.Sprintf("%.2f", float64(sol.TotalProfit))},
		{"Total waste", fmt.Sprintf("%d", sol.TotalWaste)},
		{"Fully packed", fmt.Sprintf("%t", sol.FullyPacked)},
		{"Certificate digest", sol.Digest()},
	}
	pdf.SetFont("Helvetica", "", 11)
	for _, it := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(55, 6, it.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(100, 6, it.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		y += 7
	}
}

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
