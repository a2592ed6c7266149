// Package kernel implements the pure geometric feasibility checks the
// branching scheme calls while building insertions: defect overlap,
// cut-through-defect rules, trim offsets and the minimum-waste rule. Every
// function here is total — it returns a bool or a Length, never an error;
// an infeasible candidate is simply rejected by the branching scheme.
package kernel

import (
	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/instance"
)

// RectOverlapsDefects reports whether the axis-aligned rectangle with
// bottom-left corner pos and size rect overlaps any defect of bt.
func RectOverlapsDefects(bt instance.BinType, pos geom.Coord, rect geom.Rectangle) bool {
	x1, x2 := pos.X, pos.X+rect.Width
	y1, y2 := pos.Y, pos.Y+rect.Height
	for _, d := range bt.Defects {
		if d.X2() > x1 && d.X1() < x2 && d.Y2() > y1 && d.Y1() < y2 {
			return true
		}
	}
	return false
}

// VerticalCutCrossesDefect reports whether a vertical cut at x, spanning
// [y1, y2), passes through a defect of bt.
func VerticalCutCrossesDefect(bt instance.BinType, x, y1, y2 geom.Length) bool {
	for _, d := range bt.Defects {
		if x > d.X1() && x < d.X2() && d.Y2() > y1 && d.Y1() < y2 {
			return true
		}
	}
	return false
}

// HorizontalCutCrossesDefect reports whether a horizontal cut at y,
// spanning [x1, x2), passes through a defect of bt.
func HorizontalCutCrossesDefect(bt instance.BinType, y, x1, x2 geom.Length) bool {
	for _, d := range bt.Defects {
		if y > d.Y1() && y < d.Y2() && d.X2() > x1 && d.X1() < x2 {
			return true
		}
	}
	return false
}

// MinimumWasteOK reports whether a gap of the given length either closes
// the subplate exactly (gap == 0) or is at least the instance's minimum
// waste length. A gap strictly between 0 and the minimum is infeasible:
// it can never itself hold an item, and the guillotine rule forbids
// leaving slivers narrower than the minimum waste.
func MinimumWasteOK(gap geom.Length, minWaste geom.Length) bool {
	return gap == 0 || gap >= minWaste
}

// TrimOffset returns the usable-area offset a bin's trim on the given
// edge imposes: a hard trim removes that length from the packable area
// entirely, a soft trim only constrains where the first cut may start
// (callers treat it as a minimum rather than an offset).
func TrimOffset(t geom.Trim) geom.Length {
	if t.Kind == geom.HardTrim {
		return t.Length
	}
	return 0
}

// SoftTrimMinimum returns the minimum coordinate the first cut on an edge
// with a soft trim may use; hard trims are already folded into the usable
// origin, so this returns 0 for them.
func SoftTrimMinimum(t geom.Trim) geom.Length {
	if t.Kind == geom.SoftTrim {
		return t.Length
	}
	return 0
}

// UsableRect returns the bin's usable rectangle after subtracting hard
// trims on all four edges, and the (x, y) origin of that rectangle, both
// in the frame of orientation o (for Horizontal, x runs along the bin's
// height, so the bottom/top trims bound x and the left/right trims bound y).
func UsableRect(bt instance.BinType, o geom.CutOrientation) (origin geom.Coord, size geom.Rectangle) {
	left := TrimOffset(bt.Trims[geom.Left])
	right := TrimOffset(bt.Trims[geom.Right])
	bottom := TrimOffset(bt.Trims[geom.Bottom])
	top := TrimOffset(bt.Trims[geom.Top])
	if o == geom.Horizontal {
		left, bottom = bottom, left
		right, top = top, right
	}
	w := bt.Width(o) - left - right
	h := bt.Height(o) - bottom - top
	return geom.Coord{X: left, Y: bottom}, geom.Rectangle{Width: w, Height: h}
}

// CutThicknessOK reports whether placing a cut at position pos leaves
// enough room (thickness) before the piece boundary at limit; guillotine
// cuts consume material, so the kernel rejects a cut that would not fit
// before running off the edge.
func CutThicknessOK(pos, limit, thickness geom.Length) bool {
	return pos+thickness <= limit || pos == limit
}

// FirstCutDistanceOK reports whether a closed first-stage strip of the
// given width satisfies minimum_distance_1_cuts. minDist <= 0 means no
// bound. Callers check a strip only when the next strip of the same bin
// opens; the last strip of a bin is not checked, whatever the kind of its
// right/top trim.
func FirstCutDistanceOK(width, minDist geom.Length) bool {
	return minDist <= 0 || width >= minDist
}

// MaxFirstCutDistanceOK reports whether a closed first-stage strip of the
// given width satisfies maximum_distance_1_cuts. maxDist <= 0 means no
// bound.
func MaxFirstCutDistanceOK(width, maxDist geom.Length) bool {
	return maxDist <= 0 || width <= maxDist
}

// SecondCutDistanceOK reports whether a closed second-stage strip of the
// given height satisfies minimum_distance_2_cuts. minDist <= 0 means no
// bound.
func SecondCutDistanceOK(height, minDist geom.Length) bool {
	return minDist <= 0 || height >= minDist
}

// MaximumTwoCutsOK reports whether count (Node.Subplate1CurrNumberOf2Cuts)
// still satisfies the Roadef2018 maximum_number_2_cuts cap; max ==
// instance.Unlimited means no cap.
func MaximumTwoCutsOK(count, max int) bool {
	return max == instance.Unlimited || count <= max
}

// EffectiveMaxFirstCut returns the tightest x1 a first-stage strip
// starting at x1Prev may grow to: the bin's own usable bound, narrowed by
// maximum_distance_1_cuts when set, and narrowed again to stop just short
// of any defect spanning [y1, y2) the closing 1-cut would otherwise cross
// when cutThroughDefects is false (§4.3 check 6's tightening).
func EffectiveMaxFirstCut(bt instance.BinType, x1Prev, usableMaxX, maxDist geom.Length, cutThroughDefects bool, y1, y2 geom.Length) geom.Length {
	bound := usableMaxX
	if maxDist > 0 && x1Prev+maxDist < bound {
		bound = x1Prev + maxDist
	}
	if !cutThroughDefects {
		bound = FitsWithinDefectFreeSpan(bt, x1Prev, bound, y1, y2)
	}
	return bound
}

// FitsWithinDefectFreeSpan returns the smallest left edge, within
// [lowerBound, upperBound), of any defect overlapping [y1, y2), or
// upperBound if there is none: a strip starting at lowerBound can grow to
// that x without reaching such a defect. Defects that start left of
// lowerBound are ignored.
func FitsWithinDefectFreeSpan(bt instance.BinType, lowerBound, upperBound, y1, y2 geom.Length) geom.Length {
	best := upperBound
	for _, d := range bt.Defects {
		if d.Y2() <= y1 || d.Y1() >= y2 {
			continue
		}
		if d.X1() < best && d.X1() >= lowerBound {
			best = d.X1()
		}
	}
	return best
}
