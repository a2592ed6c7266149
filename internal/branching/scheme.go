package branching

import (
	"github.com/piwi3910/guillocut/internal/frontier"
	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/instance"
	"github.com/piwi3910/guillocut/internal/kernel"
)

// Discipline selects which of the two cut disciplines a Scheme enforces.
type Discipline int

const (
	// Staged generates 2- or 3-staged patterns (the Roadef2018 / Bn
	// scheme): a bounded number of cut levels, at most two items per
	// third-level subplate.
	Staged Discipline = iota
	// Staircase generates free-stage patterns (the B-infinity scheme):
	// items are placed along an ever-growing skyline with no bound on
	// the number of stages.
	Staircase
)

// Parameters configures a Scheme.
type Parameters struct {
	Discipline            Discipline
	FirstStageOrientation geom.CutOrientation
}

// Scheme generates and compares nodes for a fixed Instance and
// Parameters. Its only mutable state is the counter that numbers the
// nodes it creates; every Node it produces is an independent, immutable
// value reachable from its parent chain.
type Scheme struct {
	Instance   *instance.Instance
	Parameters Parameters
	nextID     int64
}

// NewScheme builds a Scheme over inst using the given parameters.
func NewScheme(inst *instance.Instance, params Parameters) *Scheme {
	return &Scheme{Instance: inst, Parameters: params}
}

// Root returns the empty partial solution: no bins opened, every item
// type at its full copy count, no stack position consumed.
func (s *Scheme) Root() *Node {
	remaining := make([]int, len(s.Instance.ItemTypes()))
	for i, it := range s.Instance.ItemTypes() {
		remaining[i] = it.Copies
	}
	n := &Node{
		ID:                s.nextID,
		Remaining:         remaining,
		PosStack:          map[instance.StackID]int{},
		Subplate2ItemType: NoItem,
	}
	s.nextID++
	return n
}

// Leaf reports whether no further insertion can extend n: either the
// instance is complete, or no item type has a positive remaining copy
// count. The objective is not consulted.
func (s *Scheme) Leaf(n *Node) bool {
	if n.Complete(s.Instance) {
		return true
	}
	for _, r := range n.Remaining {
		if r > 0 {
			return false
		}
	}
	return true
}

// Front extracts n's skyline envelope for dominance comparison.
func (s *Scheme) Front(n *Node) frontier.Front {
	return frontier.Front{
		BinIndex:    n.BinIndex,
		Orientation: n.FirstStageOrientation,
		X1Prev:      n.X1Prev,
		X1Curr:      n.X1Curr,
		X3Curr:      n.X3Curr,
		Y2Prev:      n.Y2Prev,
		Y2Curr:      n.Y2Curr,
	}
}

// Dominates reports whether n1 is at least as good as n2: n1's front
// dominates n2's front (every completion reachable from n2 is reachable
// from n1 at no worse cost), n1 has at least as much remaining capacity
// for every item type, and n1 has consumed no more of any shared stack
// than n2 has.
func (s *Scheme) Dominates(n1, n2 *Node) bool {
	if n1.NumberOfItems < n2.NumberOfItems {
		return false
	}
	if n1.Waste > n2.Waste {
		return false
	}
	for i := range n1.Remaining {
		if n1.Remaining[i] < n2.Remaining[i] {
			return false
		}
	}
	for stack, pos2 := range n2.PosStack {
		pos1 := n1.PosStack[stack]
		if pred, ok := s.Instance.StackPredecessor(stack); ok {
			// A predecessor stack with an identical item sequence lets
			// n1 count its progress on pred toward stack too.
			if p := n1.PosStack[pred]; p > pos1 {
				pos1 = p
			}
		}
		if pos1 > pos2 {
			return false
		}
	}
	binHeight := func(binIndex int, o geom.CutOrientation) geom.Length {
		ids := n1.BinTypeIDs
		if binIndex >= len(ids) {
			ids = n2.BinTypeIDs
		}
		if binIndex < 0 || binIndex >= len(ids) {
			return 0
		}
		return s.Instance.BinType(ids[binIndex]).Height(o)
	}
	return frontier.Dominates(s.Front(n1), s.Front(n2), binHeight)
}

// Valid reports whether n still satisfies the instance-wide rules that
// are cheaper to check after generation than to thread through every
// insertion generator: currently the Roadef2018 maximum_number_2_cuts
// cap on partial 2-cuts within a single first-stage strip.
func (s *Scheme) Valid(n *Node) bool {
	if s.Instance.Parameters.CutType == instance.Roadef2018 {
		if !kernel.MaximumTwoCutsOK(n.Subplate1CurrNumberOf2Cuts, s.Instance.Parameters.MaximumNumberOf2Cuts) {
			return false
		}
	}
	return true
}

// stackReady reports whether item type it may be placed next, i.e. it
// has no stack constraint, or it is the next unplaced item in its own
// stack's sequence. Progress on a predecessor stack is not taken into
// account here.
func (s *Scheme) stackReady(n *Node, it instance.ItemType) bool {
	if it.StackID == instance.NoStack {
		return true
	}
	seq := s.Instance.StackItems(it.StackID)
	pos := n.PosStack[it.StackID]
	if pos >= len(seq) {
		return false
	}
	return seq[pos] == it.ID
}

// chooseBinType returns the first bin type that still has copies
// available, preferring the smallest-cost bin, or false if all bin types
// are exhausted.
func (s *Scheme) chooseBinType(n *Node) (instance.BinTypeID, bool) {
	used := make([]int, len(s.Instance.BinTypes()))
	for _, id := range n.BinTypeIDs {
		used[id]++
	}
	best := -1
	for i, bt := range s.Instance.BinTypes() {
		if bt.Copies != instance.Unlimited && used[i] >= bt.Copies {
			continue
		}
		if best == -1 || s.Instance.BinTypes()[best].Cost > bt.Cost {
			best = i
		}
	}
	if best == -1 {
		return 0, false
	}
	return instance.BinTypeID(best), true
}

func placeable(it instance.ItemType, remaining int) bool {
	return remaining == instance.Unlimited || remaining > 0
}

func orientations(it instance.ItemType) []bool {
	if it.CanRotate() {
		return []bool{false, true}
	}
	return []bool{false}
}

func decRemaining(r int) int {
	if r == instance.Unlimited {
		return r
	}
	return r - 1
}

func copyRemaining(r []int) []int {
	out := make([]int, len(r))
	copy(out, r)
	return out
}

func copyBinTypeIDs(ids []instance.BinTypeID) []instance.BinTypeID {
	out := make([]instance.BinTypeID, len(ids))
	copy(out, ids)
	return out
}

func copyPosStack(m map[instance.StackID]int) map[instance.StackID]int {
	out := make(map[instance.StackID]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// rectFits reports whether placing rect at pos in bin type bt, with
// usable area [origin, origin+size), is free of defect overlap and
// within bounds.
func rectFits(bt instance.BinType, pos geom.Coord, rect geom.Rectangle, usableOrigin geom.Coord, usableSize geom.Rectangle) bool {
	if pos.X < usableOrigin.X || pos.Y < usableOrigin.Y {
		return false
	}
	if pos.X+rect.Width > usableOrigin.X+usableSize.Width {
		return false
	}
	if pos.Y+rect.Height > usableOrigin.Y+usableSize.Height {
		return false
	}
	return !kernel.RectOverlapsDefects(bt, pos, rect)
}
