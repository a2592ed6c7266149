package report

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/guillocut/internal/instance"
	"github.com/piwi3910/guillocut/internal/solution"
)

// WriteDXF exports sol's cut lines as a DXF drawing: one layer of bin
// outlines, one of item boundaries, and one of guillotine cut lines
// suitable for import into a CAM package. Bins are laid out left to
// right along the X axis so a single drawing covers the whole solution.
func WriteDXF(path string, inst *instance.Instance, sol solution.Solution) error {
	d := dxf.NewDrawing()
	d.AddLayer("BIN_OUTLINE", dxf.DefaultColor, dxf.DefaultLineType, true)
	d.AddLayer("ITEMS", dxf.DefaultColor, dxf.DefaultLineType, true)
	d.AddLayer("CUTS", dxf.DefaultColor, dxf.DefaultLineType, true)

	var xOffset float64
	const gap = 50.0

	for _, bin := range sol.Bins {
		bt := inst.BinType(bin.BinTypeID)
		w := float64(bt.Rect.Width)
		h := float64(bt.Rect.Height)

		d.ChangeLayer("BIN_OUTLINE")
		drawRectOutline(d, xOffset, 0, w, h)

		d.ChangeLayer("ITEMS")
		for _, p := range bin.Placements {
			px := xOffset + float64(p.Pos.X)
			py := float64(p.Pos.Y)
			pw := float64(p.Rect.Width)
			ph := float64(p.Rect.Height)
			drawRectOutline(d, px, py, pw, ph)
		}

		d.ChangeLayer("CUTS")
		drawGuillotineCuts(d, sol, bin, xOffset)

		xOffset += w + gap
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("report: save dxf %s: %w", path, err)
	}
	return nil
}

func drawRectOutline(d *drawing.Drawing, x, y, w, h float64) {
	d.Line(x, y, 0, x+w, y, 0)
	d.Line(x+w, y, 0, x+w, y+h, 0)
	d.Line(x+w, y+h, 0, x, y+h, 0)
	d.Line(x, y+h, 0, x, y, 0)
}

// drawGuillotineCuts draws one horizontal or vertical line per distinct
// item edge inside bin, approximating the guillotine cut lines a shop
// saw would follow to free every placement from the sheet.
func drawGuillotineCuts(d *drawing.Drawing, sol solution.Solution, bin solution.BinSolution, xOffset float64) {
	seen := map[[2]int64]bool{}
	for _, p := range bin.Placements {
		x1 := int64(p.Pos.X)
		x2 := int64(p.Pos.X) + int64(p.Rect.Width)
		y1 := int64(p.Pos.Y)
		y2 := int64(p.Pos.Y) + int64(p.Rect.Height)

		for _, x := range []int64{x1, x2} {
			key := [2]int64{1, x}
			if seen[key] {
				continue
			}
			seen[key] = true
			d.Line(xOffset+float64(x), 0, 0, xOffset+float64(x), float64(y2), 0)
		}
		for _, y := range []int64{y1, y2} {
			key := [2]int64{0, y}
			if seen[key] {
				continue
			}
			seen[key] = true
			d.Line(xOffset+float64(x1), float64(y), 0, xOffset+float64(x2), float64(y), 0)
		}
	}
}
