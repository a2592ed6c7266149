// Package solution materializes a branching.Node leaf into a flat,
// serializable Solution: one BinSolution per opened bin, one Placement
// per item, plus the aggregate profit/waste/cost figures the report and
// CLI layers present to the user.
package solution

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/piwi3910/guillocut/internal/branching"
	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/instance"
	"github.com/piwi3910/guillocut/internal/kernel"
)

// Placement is one item committed to a bin.
type Placement struct {
	ItemTypeID instance.ItemTypeID
	Rotated    bool
	Pos        geom.Coord
	Rect       geom.Rectangle
}

// BinSolution is everything placed into one opened bin, in the order the
// search committed it.
type BinSolution struct {
	Index      int
	BinTypeID  instance.BinTypeID
	Placements []Placement
	ItemArea   geom.Area
	Waste      geom.Area
}

// Solution is the materialized result of a completed (or time-limited
// best-effort) search.
type Solution struct {
	Bins         []BinSolution
	TotalProfit  geom.Profit
	TotalCost    geom.Profit
	TotalWaste   geom.Area
	TotalItems   int
	Objective    instance.Objective
	FullyPacked  bool
}

// FromNode walks node's parent chain and groups its placements by bin,
// producing a Solution scored against inst.
func FromNode(inst *instance.Instance, node *branching.Node) Solution {
	placements := node.Placements()

	byBin := map[int][]Placement{}
	for _, p := range placements {
		byBin[p.BinIndex] = append(byBin[p.BinIndex], Placement{
			ItemTypeID: p.ItemTypeID,
			Rotated:    p.Rotated,
			Pos:        p.Pos,
			Rect:       p.Rect,
		})
	}

	var binIndices []int
	for idx := range byBin {
		binIndices = append(binIndices, idx)
	}
	sort.Ints(binIndices)

	sol := Solution{
		Objective:   inst.Parameters.Objective,
		FullyPacked: node.Complete(inst),
	}
	for _, idx := range binIndices {
		btID := node.BinTypeIDs[idx]
		bt := inst.BinType(btID)
		bs := BinSolution{Index: idx, BinTypeID: btID, Placements: byBin[idx]}
		for _, p := range bs.Placements {
			bs.ItemArea += p.Rect.Area()
		}
		bs.Waste = bt.Rect.Area() - bs.ItemArea
		sol.Bins = append(sol.Bins, bs)
		sol.TotalCost += bt.Cost
		sol.TotalWaste += bs.Waste
	}
	sol.TotalItems = len(placements)
	sol.TotalProfit = node.Profit

	return sol
}

// VerifyInvariants walks node's full parent chain and re-checks, independent
// of whatever the search already enforced while building the tree: every
// placement against defect overlap, each strip closed by a following strip
// of the same bin against the first/second-cut distance bounds, third-stage
// subplates against number_of_stages == 2, first-stage cuts against
// cut_through_defects, and the Roadef2018 2-cut cap. It does not check that
// items lie inside the bin or that items do not overlap one another. It
// returns the first violation found, or nil if none of these checks fails. Callers treat a non-nil error as fatal: a search bug
// that let an infeasible node through must never reach a certificate.
func VerifyInvariants(inst *instance.Instance, node *branching.Node) error {
	params := inst.Parameters

	for n := node; n != nil; n = n.Parent {
		if err := verifyPlacement(inst, n, n.Placement1); err != nil {
			return err
		}
		if err := verifyPlacement(inst, n, n.Placement2); err != nil {
			return err
		}

		if n.Parent == nil {
			continue
		}
		p := n.Parent

		switch {
		case n.DF == 0 && !p.IsRoot():
			width := p.X1Curr - p.X1Prev
			if !kernel.FirstCutDistanceOK(width, params.MinimumDistance1Cuts) {
				return fmt.Errorf("solution: first-stage strip width %d violates minimum_distance_1_cuts", width)
			}
			if !kernel.MaxFirstCutDistanceOK(width, params.MaximumDistance1Cuts) {
				return fmt.Errorf("solution: first-stage strip width %d violates maximum_distance_1_cuts", width)
			}
		case n.DF == 1 && p.Y2Curr > 0:
			height := p.Y2Curr - p.Y2Prev
			if !kernel.SecondCutDistanceOK(height, params.MinimumDistance2Cuts) {
				return fmt.Errorf("solution: second-stage strip height %d violates minimum_distance_2_cuts", height)
			}
		case n.DF == 2:
			if params.NumberOfStages == 2 {
				return fmt.Errorf("solution: third-stage subplate present but number_of_stages is 2 (P5 guillotine staging violation)")
			}
		}

		if !params.CutThroughDefects {
			bt := inst.BinType(n.BinTypeIDs[n.BinIndex])
			origin, usable := kernel.UsableRect(bt, n.FirstStageOrientation)
			y1, y2 := origin.Y, origin.Y+usable.Height
			if n.DF <= 0 && kernel.VerticalCutCrossesDefect(bt, p.X1Curr, y1, y2) {
				return fmt.Errorf("solution: first-stage cut at x=%d crosses a defect (cut_through_defects is false)", p.X1Curr)
			}
		}

		if params.CutType == instance.Roadef2018 {
			if !kernel.MaximumTwoCutsOK(n.Subplate1CurrNumberOf2Cuts, params.MaximumNumberOf2Cuts) {
				return fmt.Errorf("solution: first-stage strip has %d partial 2-cuts, exceeding maximum_number_2_cuts", n.Subplate1CurrNumberOf2Cuts)
			}
		}
	}
	return nil
}

func verifyPlacement(inst *instance.Instance, n *branching.Node, p *branching.Placement) error {
	if p == nil {
		return nil
	}
	bt := inst.BinType(n.BinTypeIDs[p.BinIndex])
	if kernel.RectOverlapsDefects(bt, p.Pos, p.Rect) {
		return fmt.Errorf("solution: item type %d at bin %d pos (%d,%d) overlaps a defect (P7 violation)",
			p.ItemTypeID, p.BinIndex, p.Pos.X, p.Pos.Y)
	}
	return nil
}

// Digest returns a short, stable hex fingerprint of the solution: its bin
// count, each bin's index and bin type, and every placement's (item, x, y,
// rotation) tuple in order. Reports encode it in a QR code so a shop-floor scan can confirm
// a physical cut sheet matches the plan that produced it.
func (s Solution) Digest() string {
	h := sha256.New()
	var buf [8]byte
	write := func(v int64) {
		binary.BigEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	write(int64(len(s.Bins)))
	for _, b := range s.Bins {
		write(int64(b.Index))
		write(int64(b.BinTypeID))
		for _, p := range b.Placements {
			write(int64(p.ItemTypeID))
			write(int64(p.Pos.X))
			write(int64(p.Pos.Y))
			if p.Rotated {
				write(1)
			} else {
				write(0)
			}
		}
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Summary returns a short human-readable description, used in CLI output
// and log lines.
func (s Solution) Summary() string {
	return fmt.Sprintf("bins=%d items=%d profit=%.2f waste=%d fully_packed=%t",
		len(s.Bins), s.TotalItems, float64(s.TotalProfit), s.TotalWaste, s.FullyPacked)
}
