package branching

import (
	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/instance"
)

// Insertion is a candidate move out of a node: placing one item (or two,
// one above the other, in the same third-level subplate) or a pure waste block
// at depth DF, with the cut positions the resulting child node will
// carry forward.
type Insertion struct {
	ItemTypeID1 instance.ItemTypeID // -1 if none
	Rotate1     bool
	Pos1        geom.Coord
	ItemTypeID2 instance.ItemTypeID // -1 if none
	Rotate2     bool
	Pos2        geom.Coord

	DF int

	X1, Y2, X3   geom.Length
	X1Max, Y2Max geom.Length
	Z1, Z2       int

	// NewBinTypeID and NewBinOrientation are set only for DF <= -1 new-bin
	// insertions (DF == -1 for vertical first stage, DF == -2 for
	// horizontal).
	NewBinTypeID    instance.BinTypeID
	NewBinOrientation geom.CutOrientation
}

// NoItem is the sentinel ItemTypeID for "no item" in an Insertion or
// Node placement slot.
const NoItem instance.ItemTypeID = -1
