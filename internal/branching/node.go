// Package branching implements the guillotine tree-search branching
// scheme: the Node/Insertion data model, the two supported cut
// disciplines (staged Bn and staircase B-infinity), and front-based
// dominance between nodes.
package branching

import (
	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/instance"
)

// Placement records one item committed to the solution by a node.
type Placement struct {
	BinIndex   int
	ItemTypeID instance.ItemTypeID
	Rotated    bool
	Pos        geom.Coord
	Rect       geom.Rectangle
}

// Node is one state of the partial solution: the position of the current
// and previous first-, second- and third-stage cuts in the bin being
// filled, the running totals the guides score nodes by, and enough
// bookkeeping (remaining copies, stack cursors) to generate further
// insertions and to test dominance against a sibling node.
type Node struct {
	ID     int64
	Parent *Node

	// Placement1 and Placement2 are the items this node's insertion
	// added (Placement2 is nil unless the insertion packed two items,
	// one above the other, in one third-level subplate); both are nil for a
	// pure waste/defect-skipping insertion or the root.
	Placement1 *Placement
	Placement2 *Placement

	DF int // depth of the insertion that produced this node; 0 for the root

	X1Curr, X1Prev geom.Length
	Y2Curr, Y2Prev geom.Length
	X3Curr         geom.Length
	X1Max, Y2Max   geom.Length
	Z1, Z2         int

	BinIndex              int
	BinTypeIDs            []instance.BinTypeID
	FirstStageOrientation geom.CutOrientation

	PosStack map[instance.StackID]int

	NumberOfItems int
	ItemArea      geom.Area
	CurrentArea   geom.Area
	Waste         geom.Area
	Profit        geom.Profit

	Remaining []int // copies of each item type still available, by ItemTypeID

	Subplate1CurrNumberOf2Cuts int

	// Subplate2ItemType is the item type that opened the current second-
	// level subplate, or NoItem if it was opened without an item. It is
	// recorded for every cut type and checked by the Homogenous cut type,
	// which requires every second-level subplate to hold copies of one
	// item type.
	Subplate2ItemType instance.ItemTypeID

	// Skyline is populated only under the Staircase discipline: the
	// current bin's free-stage frontier, one segment per maximal run of
	// equal height, left to right, covering the whole bin width.
	Skyline []SkylineSegment
}

// SkylineSegment is one flat run of the staircase frontier: it spans
// [X, X+Width) at height Y above the bin's usable origin.
type SkylineSegment struct {
	X      geom.Length
	Width  geom.Length
	Y      geom.Length
}

// IsRoot reports whether n is the tree root (no placements, no bins).
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// NumberOfBins returns how many bins the partial solution has opened.
func (n *Node) NumberOfBins() int {
	return len(n.BinTypeIDs)
}

// Complete reports whether every item type with a finite copy count has
// been placed its full number of times. Item types with Unlimited copies
// never force completion on their own.
func (n *Node) Complete(inst *instance.Instance) bool {
	for id, it := range inst.ItemTypes() {
		if it.Copies == instance.Unlimited {
			continue
		}
		if n.Remaining[id] > 0 {
			return false
		}
	}
	return true
}

// RemainingItemArea is the total area still available to place, given
// each item type's remaining copy count (unlimited items do not
// contribute, since there is no upper bound on how much more area they
// could add).
func (n *Node) RemainingItemArea(inst *instance.Instance) geom.Area {
	var a geom.Area
	for id, it := range inst.ItemTypes() {
		if it.Copies == instance.Unlimited {
			continue
		}
		a += it.Rect.Area() * geom.Area(n.Remaining[id])
	}
	return a
}

// Placements walks the parent chain and returns every item placed in the
// partial solution, in insertion order (oldest first).
func (n *Node) Placements() []Placement {
	var rev []Placement
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Placement2 != nil {
			rev = append(rev, *cur.Placement2)
		}
		if cur.Placement1 != nil {
			rev = append(rev, *cur.Placement1)
		}
	}
	out := make([]Placement, len(rev))
	for i, p := range rev {
		out[len(rev)-1-i] = p
	}
	return out
}
