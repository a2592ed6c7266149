package branching

import (
	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/instance"
	"github.com/piwi3910/guillocut/internal/kernel"
)

// Insertions returns every feasible move out of n, dispatching to the
// staged or staircase discipline per s.Parameters.Discipline.
func (s *Scheme) Insertions(n *Node) []Insertion {
	if s.Parameters.Discipline == Staircase {
		return s.staircaseInsertions(n)
	}
	return s.stagedInsertions(n)
}

// stagedInsertions implements the staged (Bn) discipline: extend the
// current third-level subplate (DF 2), open a new second-level subplate
// (DF 1), open a new first-level subplate (DF 0), or open a new bin with
// a vertical or horizontal first stage (DF -1 / DF -2). The third stage
// (DF 2) is only offered when the instance's number_of_stages allows one;
// a strict 2-stage request must never see a third-level subplate (P5).
func (s *Scheme) stagedInsertions(n *Node) []Insertion {
	var out []Insertion
	out = append(out, s.newBinInsertions(n)...)
	if n.NumberOfBins() > 0 {
		out = append(out, s.newFirstStageInsertions(n)...)
		out = append(out, s.newDefectWasteInsertion(n)...)
		out = append(out, s.newSecondStageInsertions(n)...)
		if s.allowsThirdStage() {
			out = append(out, s.extendThirdStageInsertions(n)...)
			out = append(out, s.twoItemInsertions(n)...)
		}
	}
	return out
}

// allowsThirdStage reports whether number_of_stages permits a DF-2
// third-level subplate. Only an explicit 2-stage request disables it; any
// other NumberOfStages value allows third-level subplates (the CLI, not
// this package, selects the staircase discipline for 0 or negative
// values).
func (s *Scheme) allowsThirdStage() bool {
	return s.Instance.Parameters.NumberOfStages != 2
}

func (s *Scheme) cutThickness() geom.Length {
	return s.Instance.Parameters.CutThickness
}

func (s *Scheme) minWaste() geom.Length {
	return s.Instance.Parameters.MinimumWaste
}

func (s *Scheme) cutThroughDefects() bool {
	return s.Instance.Parameters.CutThroughDefects
}

// verticalCutBlocked reports whether a vertical cut at x crossing
// [y1, y2) should reject the candidate: only when cut_through_defects is
// false, per §4.3 check 12 — with it true, cuts may run through a
// defect's interior freely.
func (s *Scheme) verticalCutBlocked(bt instance.BinType, x, y1, y2 geom.Length) bool {
	return !s.cutThroughDefects() && kernel.VerticalCutCrossesDefect(bt, x, y1, y2)
}

// horizontalCutBlocked is verticalCutBlocked for a horizontal cut.
func (s *Scheme) horizontalCutBlocked(bt instance.BinType, y, x1, x2 geom.Length) bool {
	return !s.cutThroughDefects() && kernel.HorizontalCutCrossesDefect(bt, y, x1, x2)
}

// newBinInsertions proposes placing a single item as the first item of a
// brand new bin of the single bin type chooseBinType picks, for every
// candidate item type, rotation and first-stage orientation the
// instance's parameters allow.
func (s *Scheme) newBinInsertions(n *Node) []Insertion {
	var out []Insertion
	binTypeID, ok := s.chooseBinType(n)
	if !ok {
		return nil
	}
	bt := s.Instance.BinType(binTypeID)

	orients := []geom.CutOrientation{geom.Vertical, geom.Horizontal}
	if s.Parameters.FirstStageOrientation != geom.Any {
		orients = []geom.CutOrientation{s.Parameters.FirstStageOrientation}
	}

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
				if s.verticalCutBlocked(bt, origin.X+w, origin.Y, origin.Y+usable.Height) {
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
					X1Max:             usable.Width,
					Y2Max:             usable.Height,
					Z1:                0,
					Z2:                0,
					NewBinTypeID:      binTypeID,
					NewBinOrientation: o,
				})
			}
		}
	}
	return out
}

func (s *Scheme) currentBin(n *Node) (instance.BinType, geom.Coord, geom.Rectangle) {
	bt := s.Instance.BinType(n.BinTypeIDs[n.BinIndex])
	origin, usable := kernel.UsableRect(bt, n.FirstStageOrientation)
	return bt, origin, usable
}

// newFirstStageInsertions (DF 0) closes the current first-level subplate
// and opens a new one immediately to its right (or above, for a
// horizontal first stage), resetting the second- and third-stage cuts.
// The strip being closed is [n.X1Prev, n.X1Curr]; its width must respect
// minimum_distance_1_cuts and maximum_distance_1_cuts (§4.3 checks 5, 6)
// before any new strip may open.
func (s *Scheme) newFirstStageInsertions(n *Node) []Insertion {
	if !n.IsRoot() {
		closedWidth := n.X1Curr - n.X1Prev
		params := s.Instance.Parameters
		if !kernel.FirstCutDistanceOK(closedWidth, params.MinimumDistance1Cuts) {
			return nil
		}
		if !kernel.MaxFirstCutDistanceOK(closedWidth, params.MaximumDistance1Cuts) {
			return nil
		}
	}

	bt, origin, usable := s.currentBin(n)
	x1Prev := n.X1Curr + s.cutThickness()
	var out []Insertion
	for id, it := range s.Instance.ItemTypes() {
		if !placeable(it, n.Remaining[id]) || !s.stackReady(n, it) {
			continue
		}
		for _, rot := range orientations(it) {
			w, h := it.Width(rot), it.Height(rot)
			x1Curr := x1Prev + w
			if x1Curr > origin.X+usable.Width || h > usable.Height {
				continue
			}
			pos := geom.Coord{X: x1Prev, Y: origin.Y}
			if kernel.RectOverlapsDefects(bt, pos, geom.Rectangle{Width: w, Height: h}) {
				continue
			}
			if s.verticalCutBlocked(bt, x1Prev, origin.Y, origin.Y+usable.Height) {
				continue
			}
			if s.verticalCutBlocked(bt, x1Curr, origin.Y, origin.Y+usable.Height) {
				continue
			}
			out = append(out, Insertion{
				ItemTypeID1: instance.ItemTypeID(id),
				Rotate1:     rot,
				Pos1:        pos,
				ItemTypeID2: NoItem,
				DF:          0,
				X1:          x1Curr,
				Y2:          h,
				X3:          x1Curr,
				X1Max:       origin.X + usable.Width,
				Y2Max:       origin.Y + usable.Height,
				Z1:          0,
				Z2:          0,
			})
		}
	}
	return out
}

// newDefectWasteInsertion offers a pure-waste alternative (item_type_id_1
// = item_type_id_2 = -1) that closes the current first-stage strip right
// where the next defect forces it, instead of abandoning the branch
// outright when no item can be placed across a defect (§4.3 check 11,
// §4.4 "attempt to emit a defect insertion"). Only meaningful when
// cut_through_defects is false — with it true, cuts and items' bounding
// strips are never held back by a defect in the first place.
func (s *Scheme) newDefectWasteInsertion(n *Node) []Insertion {
	if s.cutThroughDefects() {
		return nil
	}
	bt, origin, usable := s.currentBin(n)
	x1Prev := n.X1Curr + s.cutThickness()
	maxX := origin.X + usable.Width
	if x1Prev >= maxX {
		return nil
	}
	y1, y2 := origin.Y, origin.Y+usable.Height

	// Hold back to just short of the nearest defect in this strip's
	// y-span, if there is room to do so.
	x1Curr := kernel.FitsWithinDefectFreeSpan(bt, x1Prev, maxX, y1, y2)
	if x1Curr <= x1Prev {
		// No room before the blocking defect: step past its far edge
		// instead, so the search can resume beyond it.
		far := maxX
		for _, d := range bt.Defects {
			if d.Y2() <= y1 || d.Y1() >= y2 {
				continue
			}
			if d.X1() <= x1Prev && d.X2() > x1Prev && d.X2() < far {
				far = d.X2()
			}
		}
		if far <= x1Prev {
			return nil
		}
		x1Curr = far
	}

	return []Insertion{{
		ItemTypeID1: NoItem,
		ItemTypeID2: NoItem,
		DF:          0,
		X1:          x1Curr,
		Y2:          0,
		X3:          x1Curr,
		X1Max:       maxX,
		Y2Max:       y2,
		Z1:          0,
		Z2:          0,
	}}
}

// newSecondStageInsertions (DF 1) keeps the current first-level subplate
// but opens a new second-level subplate above the last one, possibly
// widening the first-level subplate to fit the new item. The strip being
// closed is [n.Y2Prev, n.Y2Curr]; its height must respect
// minimum_distance_2_cuts (§4.3 check 7) before a new one may open.
func (s *Scheme) newSecondStageInsertions(n *Node) []Insertion {
	if !n.IsRoot() && n.Y2Curr > 0 {
		closedHeight := n.Y2Curr - n.Y2Prev
		if !kernel.SecondCutDistanceOK(closedHeight, s.Instance.Parameters.MinimumDistance2Cuts) {
			return nil
		}
	}

	bt, origin, usable := s.currentBin(n)
	y2Prev := n.Y2Curr + s.cutThickness()
	ct := s.Instance.Parameters.CutType
	maxX := kernel.EffectiveMaxFirstCut(bt, n.X1Prev, origin.X+usable.Width, s.Instance.Parameters.MaximumDistance1Cuts, s.cutThroughDefects(), origin.Y, origin.Y+usable.Height)
	var out []Insertion
	for id, it := range s.Instance.ItemTypes() {
		if !placeable(it, n.Remaining[id]) || !s.stackReady(n, it) {
			continue
		}
		for _, rot := range orientations(it) {
			w, h := it.Width(rot), it.Height(rot)
			y2Curr := y2Prev + h
			if y2Curr > origin.Y+usable.Height {
				continue
			}
			x1Curr := n.X1Curr
			z1 := 1
			if n.X1Prev+w > x1Curr {
				grown := n.X1Prev + w
				if !kernel.MinimumWasteOK(grown-x1Curr, s.minWaste()) && grown != x1Curr {
					continue
				}
				x1Curr = grown
				z1 = 0
			}
			if x1Curr > maxX {
				continue
			}
			if ct == instance.Exact && z1 == 1 {
				// Exact requires every 2-cut to span the full 1-strip;
				// a partial (narrower) 2nd-stage subplate is rejected.
				continue
			}
			pos := geom.Coord{X: n.X1Prev, Y: y2Prev}
			if kernel.RectOverlapsDefects(bt, pos, geom.Rectangle{Width: w, Height: h}) {
				continue
			}
			if s.horizontalCutBlocked(bt, y2Prev, n.X1Prev, n.X1Prev+w) {
				continue
			}
			if s.horizontalCutBlocked(bt, y2Curr, n.X1Prev, n.X1Prev+w) {
				continue
			}
			out = append(out, Insertion{
				ItemTypeID1: instance.ItemTypeID(id),
				Rotate1:     rot,
				Pos1:        pos,
				ItemTypeID2: NoItem,
				DF:          1,
				X1:          x1Curr,
				Y2:          y2Curr,
				X3:          n.X1Prev + w,
				X1Max:       origin.X + usable.Width,
				Y2Max:       origin.Y + usable.Height,
				Z1:          z1,
				Z2:          0,
			})
		}
	}
	return out
}

// extendThirdStageInsertions (DF 2) appends a single item to the current
// second-level subplate along the x3 axis, possibly growing the subplate's
// height to fit a taller item. Under Homogenous, every item sharing a
// 2-strip must share the same item type as the one that opened it.
func (s *Scheme) extendThirdStageInsertions(n *Node) []Insertion {
	if n.Z2 == 2 {
		return nil // the current 2-cut was closed by a two-item insertion
	}
	bt, origin, usable := s.currentBin(n)
	x3Prev := n.X3Curr + s.cutThickness()
	ct := s.Instance.Parameters.CutType
	maxX := kernel.EffectiveMaxFirstCut(bt, n.X1Prev, origin.X+usable.Width, s.Instance.Parameters.MaximumDistance1Cuts, s.cutThroughDefects(), origin.Y, origin.Y+usable.Height)
	var out []Insertion
	for id, it := range s.Instance.ItemTypes() {
		if !placeable(it, n.Remaining[id]) || !s.stackReady(n, it) {
			continue
		}
		if ct == instance.Homogenous && n.Subplate2ItemType != NoItem && instance.ItemTypeID(id) != n.Subplate2ItemType {
			continue
		}
		for _, rot := range orientations(it) {
			w, h := it.Width(rot), it.Height(rot)
			x3Curr := x3Prev + w
			y2Curr := n.Y2Curr
			if n.Y2Prev+h > y2Curr {
				if n.Z2 == 1 {
					continue // height of this subplate may not grow further
				}
				grown := n.Y2Prev + h
				if !kernel.MinimumWasteOK(grown-y2Curr, s.minWaste()) && grown != y2Curr {
					continue
				}
				y2Curr = grown
			}
			x1Curr := n.X1Curr
			if x3Curr > x1Curr {
				if n.Z1 == 0 && !kernel.MinimumWasteOK(x3Curr-x1Curr, s.minWaste()) {
					continue
				}
				x1Curr = x3Curr
			}
			if x1Curr > maxX || y2Curr > origin.Y+usable.Height {
				continue
			}
			pos := geom.Coord{X: x3Prev, Y: n.Y2Prev}
			if kernel.RectOverlapsDefects(bt, pos, geom.Rectangle{Width: w, Height: h}) {
				continue
			}
			if s.verticalCutBlocked(bt, x3Prev, n.Y2Prev, n.Y2Prev+h) {
				continue
			}
			if s.verticalCutBlocked(bt, x3Curr, n.Y2Prev, n.Y2Prev+h) {
				continue
			}
			out = append(out, Insertion{
				ItemTypeID1: instance.ItemTypeID(id),
				Rotate1:     rot,
				Pos1:        pos,
				ItemTypeID2: NoItem,
				DF:          2,
				X1:          x1Curr,
				Y2:          y2Curr,
				X3:          x3Curr,
				X1Max:       origin.X + usable.Width,
				Y2Max:       origin.Y + usable.Height,
				Z1:          n.Z1,
				Z2:          0,
			})
		}
	}
	return out
}

// twoItemInsertions tries stacking two items of equal width in a single
// new third-level subplate: one at the bottom of the new subplate, one
// directly above it. This mirrors the original solver's
// insertion_2_items, which improves dominance by collapsing two
// single-item insertions that would otherwise reach equivalent fronts by
// different paths into one. Under Homogenous both items must share the
// same type, since they occupy the same 2-strip.
func (s *Scheme) twoItemInsertions(n *Node) []Insertion {
	if n.Z2 == 2 {
		return nil // the current 2-cut was already closed by a two-item insertion
	}
	bt, origin, usable := s.currentBin(n)
	x3Prev := n.X3Curr + s.cutThickness()
	ct := s.Instance.Parameters.CutType
	items := s.Instance.ItemTypes()
	var out []Insertion
	for id1, it1 := range items {
		if !placeable(it1, n.Remaining[id1]) || !s.stackReady(n, it1) {
			continue
		}
		if ct == instance.Homogenous && n.Subplate2ItemType != NoItem && instance.ItemTypeID(id1) != n.Subplate2ItemType {
			continue
		}
		for _, rot1 := range orientations(it1) {
			w1, h1 := it1.Width(rot1), it1.Height(rot1)
			for id2, it2 := range items {
				if ct == instance.Homogenous && id2 != id1 {
					continue
				}
				rem2 := n.Remaining[id2]
				if id2 == id1 {
					rem2 = decRemaining(rem2)
				}
				if !placeable(it2, rem2) {
					continue
				}
				for _, rot2 := range orientations(it2) {
					w2, h2 := it2.Width(rot2), it2.Height(rot2)
					if w1 != w2 {
						continue
					}
					x3Curr := x3Prev + w1
					y2Curr := n.Y2Prev + h1 + h2
					if x3Curr > origin.X+usable.Width || y2Curr > origin.Y+usable.Height {
						continue
					}
					pos1 := geom.Coord{X: x3Prev, Y: n.Y2Prev}
					pos2 := geom.Coord{X: x3Prev, Y: n.Y2Prev + h1}
					if kernel.RectOverlapsDefects(bt, pos1, geom.Rectangle{Width: w1, Height: h1}) {
						continue
					}
					if kernel.RectOverlapsDefects(bt, pos2, geom.Rectangle{Width: w2, Height: h2}) {
						continue
					}
					if s.verticalCutBlocked(bt, x3Prev, n.Y2Prev, y2Curr) {
						continue
					}
					if s.verticalCutBlocked(bt, x3Curr, n.Y2Prev, y2Curr) {
						continue
					}
					x1Curr := n.X1Curr
					if x3Curr > x1Curr {
						x1Curr = x3Curr
					}
					out = append(out, Insertion{
						ItemTypeID1: instance.ItemTypeID(id1),
						Rotate1:     rot1,
						Pos1:        pos1,
						ItemTypeID2: instance.ItemTypeID(id2),
						Rotate2:     rot2,
						Pos2:        pos2,
						DF:          2,
						X1:          x1Curr,
						Y2:          y2Curr,
						X3:          x3Curr,
						X1Max:       origin.X + usable.Width,
						Y2Max:       origin.Y + usable.Height,
						Z1:          n.Z1,
						Z2:          2,
					})
				}
			}
		}
	}
	return out
}
