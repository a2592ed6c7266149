// Package frontier defines the skyline envelope ("front") of a partial
// solution and the dominance relation between two fronts in the same
// bin type and orientation.
package frontier

import (
	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/instance"
)

// Front is the skyline envelope of a partial solution's last bin: the
// positions of its current and previous first-stage (1-cut) and
// second-stage (2-cut) cuts, and the current third-stage (3-cut)
// position. Two partial solutions with the same bin index and
// orientation can be compared by Dominates without looking at anything
// else in the tree.
type Front struct {
	BinIndex    int
	Orientation geom.CutOrientation
	X1Prev      geom.Length
	X1Curr      geom.Length
	X3Curr      geom.Length
	Y2Prev      geom.Length
	Y2Curr      geom.Length
}

// Dominates reports whether f1 is at least as good as f2: every
// completion available to f2 is also available to f1. It is a preorder
// (reflexive and transitive) restricted to fronts sharing BinIndex and Orientation,
// implemented as the five disjunctive cases of the original guillotine
// branch-and-bound's front comparison, plus the "earlier bin" case.
func Dominates(f1, f2 Front, binHeight func(binIndex int, o geom.CutOrientation) geom.Length) bool {
	if f1.BinIndex < f2.BinIndex {
		return true
	}
	if f1.BinIndex != f2.BinIndex || f1.Orientation != f2.Orientation {
		return false
	}

	if f1.X1Curr <= f2.X1Prev {
		return true
	}
	if f1.X1Prev <= f2.X1Prev && f1.X1Curr <= f2.X1Curr && f1.Y2Curr <= f2.Y2Prev {
		return true
	}

	h := binHeight(f1.BinIndex, f1.Orientation)

	if f1.Y2Curr != h &&
		f1.X1Prev <= f2.X1Prev && f1.X3Curr <= f2.X3Curr && f1.X1Curr <= f2.X1Curr &&
		f1.Y2Prev <= f2.Y2Prev && f1.Y2Curr <= f2.Y2Curr {
		return true
	}
	if f2.Y2Curr == h &&
		f1.X1Prev >= f2.X1Prev && f1.X3Curr <= f2.X3Curr && f1.X1Curr <= f2.X1Curr &&
		f1.Y2Prev <= f2.Y2Prev && f1.Y2Curr <= f2.Y2Curr {
		return true
	}
	if f1.Y2Curr != h && f2.Y2Curr == h &&
		f1.X3Curr <= f2.X3Curr && f1.X1Curr <= f2.X1Curr &&
		f1.Y2Prev <= f2.Y2Prev && f1.Y2Curr <= f2.Y2Curr {
		return true
	}
	return false
}

// BinHeightFunc adapts an instance's bin types into the height lookup
// Dominates needs, given the sequence of bin type IDs used by the
// partial solution so far (one entry per bin index).
func BinHeightFunc(inst *instance.Instance, binTypeIDs []instance.BinTypeID) func(int, geom.CutOrientation) geom.Length {
	return func(binIndex int, o geom.CutOrientation) geom.Length {
		if binIndex < 0 || binIndex >= len(binTypeIDs) {
			return 0
		}
		bt := inst.BinType(binTypeIDs[binIndex])
		return bt.Height(o)
	}
}
