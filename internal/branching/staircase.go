package branching

import (
	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/instance"
	"github.com/piwi3910/guillocut/internal/kernel"
)

// flatSkyline returns the single-segment skyline of a fresh bin of the
// given usable width, at height 0.
func flatSkyline(width geom.Length) []SkylineSegment {
	return []SkylineSegment{{X: 0, Width: width, Y: 0}}
}

// lowestSegment returns the index of the leftmost segment with the
// smallest Y, the classic skyline next-fit-decreasing-height rule.
func lowestSegment(sky []SkylineSegment) int {
	best := 0
	for i, seg := range sky {
		if seg.Y < sky[best].Y {
			best = i
		}
	}
	return best
}

// staircaseInsertions implements the free-stage (B-infinity) discipline:
// items are dropped onto the lowest point of the current bin's skyline,
// as wide or as narrow as they are, with no bound on the number of
// distinct heights the skyline may take on.
func (s *Scheme) staircaseInsertions(n *Node) []Insertion {
	var out []Insertion
	if n.NumberOfBins() == 0 {
		return s.staircaseNewBinInsertions(n)
	}

	bt, origin, usable := s.currentBin(n)
	segIdx := lowestSegment(n.Skyline)
	seg := n.Skyline[segIdx]

	for id, it := range s.Instance.ItemTypes() {
		if !placeable(it, n.Remaining[id]) || !s.stackReady(n, it) {
			continue
		}
		for _, rot := range orientations(it) {
			w, h := it.Width(rot), it.Height(rot)
			if w > seg.Width || seg.Y+h > usable.Height {
				continue
			}
			pos := geom.Coord{X: origin.X + seg.X, Y: origin.Y + seg.Y}
			if kernel.RectOverlapsDefects(bt, pos, geom.Rectangle{Width: w, Height: h}) {
				continue
			}
			out = append(out, Insertion{
				ItemTypeID1: instance.ItemTypeID(id),
				Rotate1:     rot,
				Pos1:        pos,
				ItemTypeID2: NoItem,
				DF:          2,
				X1:          seg.X + w,
				Y2:          seg.Y + h,
				X3:          seg.X + w,
			})
		}
	}
	out = append(out, s.staircaseNewBinInsertions(n)...)
	return out
}

func (s *Scheme) staircaseNewBinInsertions(n *Node) []Insertion {
	binTypeID, ok := s.chooseBinType(n)
	if !ok {
		return nil
	}
	bt := s.Instance.BinType(binTypeID)
	orients := []geom.CutOrientation{geom.Vertical, geom.Horizontal}
	if s.Parameters.FirstStageOrientation != geom.Any {
		orients = []geom.CutOrientation{s.Parameters.FirstStageOrientation}
	}
	var out []Insertion
	for _, o := range orients {
		origin, usable := kernel.UsableRect(bt, o)
		for id, it := range s.Instance.ItemTypes() {
			if !placeable(it, n.Remaining[id]) || !s.stackReady(n, it) {
				continue
			}
			for _, rot := range orientations(it) {
				w, h := it.Width(rot), it.Height(rot)
				if w > usable.Width || h > usable.Height {
					continue
				}
				if kernel.RectOverlapsDefects(bt, origin, geom.Rectangle{Width: w, Height: h}) {
					continue
				}
				df := -1
				if o == geom.Horizontal {
					df = -2
				}
				out = append(out, Insertion{
					ItemTypeID1:       instance.ItemTypeID(id),
					Rotate1:           rot,
					Pos1:              origin,
					ItemTypeID2:       NoItem,
					DF:                df,
					X1:                w,
					Y2:                h,
					X3:                w,
					NewBinTypeID:      binTypeID,
					NewBinOrientation: o,
				})
			}
		}
	}
	return out
}

func (s *Scheme) staircaseChild(parent *Node, ins Insertion) *Node {
	child := &Node{
		ID:        s.nextID,
		Parent:    parent,
		DF:        ins.DF,
		Remaining: copyRemaining(parent.Remaining),
		PosStack:  copyPosStack(parent.PosStack),
	}
	s.nextID++

	if ins.DF <= -1 {
		child.BinTypeIDs = append(copyBinTypeIDs(parent.BinTypeIDs), ins.NewBinTypeID)
		child.BinIndex = len(child.BinTypeIDs) - 1
		child.FirstStageOrientation = ins.NewBinOrientation
		bt := s.Instance.BinType(ins.NewBinTypeID)
		origin, usable := kernel.UsableRect(bt, ins.NewBinOrientation)
		it := s.Instance.ItemType(ins.ItemTypeID1)
		w, h := it.Width(ins.Rotate1), it.Height(ins.Rotate1)
		child.Skyline = updateSkyline(flatSkyline(usable.Width), ins.Pos1.X-origin.X, ins.Pos1.Y-origin.Y+h, w)
	} else {
		child.BinTypeIDs = parent.BinTypeIDs
		child.BinIndex = parent.BinIndex
		child.FirstStageOrientation = parent.FirstStageOrientation
		it := s.Instance.ItemType(ins.ItemTypeID1)
		w, h := it.Width(ins.Rotate1), it.Height(ins.Rotate1)
		_, binOrigin, _ := s.currentBin(parent)
		child.Skyline = updateSkyline(parent.Skyline, ins.Pos1.X-binOrigin.X, ins.Pos1.Y-binOrigin.Y+h, w)
	}

	child.NumberOfItems = parent.NumberOfItems
	child.ItemArea = parent.ItemArea
	child.Profit = parent.Profit
	child.place(s, ins.ItemTypeID1, ins.Rotate1, ins.Pos1)

	var committedBins geom.Area
	for i := 0; i < child.BinIndex; i++ {
		committedBins += s.Instance.BinType(child.BinTypeIDs[i]).Rect.Area()
	}
	bt := s.Instance.BinType(child.BinTypeIDs[child.BinIndex])
	skylineArea := skylineFilledWidth(child.Skyline)
	child.CurrentArea = committedBins + geom.Area(skylineArea)*geom.Area(bt.Height(child.FirstStageOrientation))
	child.Waste = child.CurrentArea - child.ItemArea

	return child
}

// updateSkyline replaces the portion of sky under [x, x+width) with a
// single flat segment at height newY, splitting the segments at its
// boundaries as needed. This is the skyline after an item landing at x
// with top edge newY occupies that span.
func updateSkyline(sky []SkylineSegment, x, newY, width geom.Length) []SkylineSegment {
	x2 := x + width
	var out []SkylineSegment
	inserted := false
	for _, seg := range sky {
		segEnd := seg.X + seg.Width
		switch {
		case segEnd <= x || seg.X >= x2:
			out = append(out, seg)
		default:
			if seg.X < x {
				out = append(out, SkylineSegment{X: seg.X, Width: x - seg.X, Y: seg.Y})
			}
			if !inserted {
				out = append(out, SkylineSegment{X: x, Width: width, Y: newY})
				inserted = true
			}
			if segEnd > x2 {
				out = append(out, SkylineSegment{X: x2, Width: segEnd - x2, Y: seg.Y})
			}
		}
	}
	if !inserted {
		out = append(out, SkylineSegment{X: x, Width: width, Y: newY})
	}
	return mergeSkyline(out)
}

// mergeSkyline coalesces adjacent segments of equal height, keeping the
// skyline's segment count from growing without bound.
func mergeSkyline(sky []SkylineSegment) []SkylineSegment {
	if len(sky) == 0 {
		return sky
	}
	out := []SkylineSegment{sky[0]}
	for _, seg := range sky[1:] {
		last := &out[len(out)-1]
		if last.Y == seg.Y && last.X+last.Width == seg.X {
			last.Width += seg.Width
		} else {
			out = append(out, seg)
		}
	}
	return out
}

// skylineFilledWidth is a coarse proxy for how much of the bin's width
// has risen above zero height, used only for the guide-facing current
// area estimate.
func skylineFilledWidth(sky []SkylineSegment) geom.Length {
	var w geom.Length
	for _, seg := range sky {
		if seg.Y > 0 {
			w += seg.Width
		}
	}
	return w
}
