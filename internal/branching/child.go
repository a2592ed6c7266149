package branching

import (
	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/instance"
)

// Child applies ins to parent and returns the resulting node. Child never
// validates ins: callers must only pass insertions produced by
// Insertions(parent).
func (s *Scheme) Child(parent *Node, ins Insertion) *Node {
	if s.Parameters.Discipline == Staircase {
		return s.staircaseChild(parent, ins)
	}
	return s.stagedChild(parent, ins)
}

func (s *Scheme) stagedChild(parent *Node, ins Insertion) *Node {
	child := &Node{
		ID:        s.nextID,
		Parent:    parent,
		DF:        ins.DF,
		X1Curr:    ins.X1,
		Y2Curr:    ins.Y2,
		X3Curr:    ins.X3,
		X1Max:     ins.X1Max,
		Y2Max:     ins.Y2Max,
		Z1:        ins.Z1,
		Z2:        ins.Z2,
		Remaining: copyRemaining(parent.Remaining),
		PosStack:  copyPosStack(parent.PosStack),
	}
	s.nextID++

	switch {
	case ins.DF <= -1:
		child.BinTypeIDs = append(copyBinTypeIDs(parent.BinTypeIDs), ins.NewBinTypeID)
		child.BinIndex = len(child.BinTypeIDs) - 1
		child.FirstStageOrientation = ins.NewBinOrientation
		child.X1Prev = 0
		child.Y2Prev = 0
	case ins.DF == 0:
		child.BinTypeIDs = parent.BinTypeIDs
		child.BinIndex = parent.BinIndex
		child.FirstStageOrientation = parent.FirstStageOrientation
		child.X1Prev = parent.X1Curr + s.cutThickness()
		child.Y2Prev = 0
	case ins.DF == 1:
		child.BinTypeIDs = parent.BinTypeIDs
		child.BinIndex = parent.BinIndex
		child.FirstStageOrientation = parent.FirstStageOrientation
		child.X1Prev = parent.X1Prev
		child.Y2Prev = parent.Y2Curr + s.cutThickness()
	default: // DF == 2
		child.BinTypeIDs = parent.BinTypeIDs
		child.BinIndex = parent.BinIndex
		child.FirstStageOrientation = parent.FirstStageOrientation
		child.X1Prev = parent.X1Prev
		child.Y2Prev = parent.Y2Prev
	}

	child.NumberOfItems = parent.NumberOfItems
	child.ItemArea = parent.ItemArea
	child.Profit = parent.Profit
	child.Subplate1CurrNumberOf2Cuts = parent.Subplate1CurrNumberOf2Cuts
	child.Subplate2ItemType = parent.Subplate2ItemType
	switch {
	case ins.DF == 1:
		// Only a true partial 2-cut (one that does not span the whole
		// 1-strip) counts against maximum_number_2_cuts.
		if ins.Z1 == 1 {
			child.Subplate1CurrNumberOf2Cuts++
		}
		child.Subplate2ItemType = ins.ItemTypeID1
	case ins.DF == 2:
		// Same second-level subplate continues; item type carries over.
	case ins.DF <= 0:
		child.Subplate1CurrNumberOf2Cuts = 0
		child.Subplate2ItemType = ins.ItemTypeID1
	}

	if ins.ItemTypeID1 != NoItem {
		child.place(s, ins.ItemTypeID1, ins.Rotate1, ins.Pos1)
	}
	if ins.ItemTypeID2 != NoItem {
		child.place(s, ins.ItemTypeID2, ins.Rotate2, ins.Pos2)
	}

	// The committed area of the current bin is its height times the
	// position of its rightmost closed cut; current_area folds in every
	// previously fully closed bin's area plus that running total, and
	// waste is whatever of it no item occupies.
	var committedBins geom.Area
	for i := 0; i < child.BinIndex; i++ {
		bt := s.Instance.BinType(child.BinTypeIDs[i])
		committedBins += bt.Rect.Area()
	}
	bt := s.Instance.BinType(child.BinTypeIDs[child.BinIndex])
	h := bt.Height(child.FirstStageOrientation)
	child.CurrentArea = committedBins + geom.Area(child.X1Curr)*geom.Area(h)
	child.Waste = child.CurrentArea - child.ItemArea

	return child
}

// place commits one item to child: decrements its remaining copies,
// advances its stack cursor, and records the placement for the solution
// materializer.
func (n *Node) place(s *Scheme, id instance.ItemTypeID, rotate bool, pos geom.Coord) {
	it := s.Instance.ItemType(id)
	n.Remaining[id] = decRemaining(n.Remaining[id])
	if it.StackID != instance.NoStack {
		n.PosStack[it.StackID]++
	}
	n.NumberOfItems++
	n.ItemArea += it.Rect.Area()
	n.Profit += it.Profit

	rect := geom.Rectangle{Width: it.Width(rotate), Height: it.Height(rotate)}
	p := Placement{
		BinIndex:   n.BinIndex,
		ItemTypeID: id,
		Rotated:    rotate,
		Pos:        pos,
		Rect:       rect,
	}
	if n.Placement1 == nil {
		n.Placement1 = &p
	} else {
		n.Placement2 = &p
	}
}
