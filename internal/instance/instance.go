// Package instance holds the immutable problem description the search
// operates on: item types, bin types, defects and the global parameters
// (objective, cut type, trims, minimum waste) that the feasibility kernel
// and guides both read from.
package instance

import (
	"fmt"
	"sort"

	"github.com/piwi3910/guillocut/internal/geom"
)

// Objective selects which quantity the beam search optimizes and which
// bins are considered available, per the packing-literature taxonomy this
// engine follows.
type Objective int

const (
	// Default packs as much profit as possible into the given bins.
	Default Objective = iota
	// BinPacking minimizes the number of bins used to pack all items.
	BinPacking
	// BinPackingWithLeftovers minimizes waste, treating the unused part
	// of the last bin of each type as a sellable leftover rather than a
	// discarded offcut.
	BinPackingWithLeftovers
	// OpenDimensionX packs all items into a single bin of fixed height
	// and minimal width.
	OpenDimensionX
	// OpenDimensionY packs all items into a single bin of fixed width
	// and minimal height.
	OpenDimensionY
	// Knapsack selects the most profitable subset of items that fits in
	// the given bins.
	Knapsack
	// VariableSizedBinPacking chooses among several bin types to
	// minimize total bin cost while packing all items.
	VariableSizedBinPacking
	// SequentialOneDimensionalSub solves the 1D problem induced by
	// cutting only the first stage, ignoring the second and third.
	SequentialOneDimensionalSub
)

func (o Objective) String() string {
	switch o {
	case Default:
		return "default"
	case BinPacking:
		return "bin-packing"
	case BinPackingWithLeftovers:
		return "bin-packing-with-leftovers"
	case OpenDimensionX:
		return "open-dimension-x"
	case OpenDimensionY:
		return "open-dimension-y"
	case Knapsack:
		return "knapsack"
	case VariableSizedBinPacking:
		return "variable-sized-bin-packing"
	case SequentialOneDimensionalSub:
		return "sequential-one-dimensional-sub"
	default:
		return fmt.Sprintf("Objective(%d)", int(o))
	}
}

// CutType constrains how a bin may be subdivided beyond the plain
// guillotine rule.
type CutType int

const (
	// Roadef2018 enforces the exact 3-staged, at-most-2-items-per-third-
	// level-subplate pattern used by the ROADEF/EURO 2018 challenge.
	Roadef2018 CutType = iota
	// NonExact allows partial 2-cuts without a cap on their number; the
	// cut discipline (staged or staircase) is chosen by NumberOfStages,
	// not by the cut type.
	NonExact
	// Exact restricts every cut to run the full width or height of the
	// piece it divides (pure guillotine, no staircase).
	Exact
	// Homogenous additionally requires every second-level subplate to
	// contain copies of a single item type.
	Homogenous
)

func (c CutType) String() string {
	switch c {
	case Roadef2018:
		return "roadef2018"
	case NonExact:
		return "non-exact"
	case Exact:
		return "exact"
	case Homogenous:
		return "homogenous"
	default:
		return fmt.Sprintf("CutType(%d)", int(c))
	}
}

// ItemTypeID identifies an ItemType within an Instance.
type ItemTypeID int

// BinTypeID identifies a BinType within an Instance.
type BinTypeID int

// DefectID identifies a Defect within a BinType.
type DefectID int

// StackID groups item types that must be consumed in a fixed order
// (e.g. items cut from a single pre-printed roll).
type StackID int

// NoStack is the StackID of an item type with no ordering constraint.
const NoStack StackID = -1

// Unlimited marks an ItemType or BinType copy count with no upper bound.
const Unlimited = -1

// ItemType is a rectangle the search may place zero or more times.
type ItemType struct {
	ID       ItemTypeID
	Label    string // the CSV/XLSX row's ID column, or a stamped id if it omitted one
	Rect     geom.Rectangle
	Profit   geom.Profit
	Copies   int // Unlimited for no cap
	Oriented bool
	StackID  StackID
}

// Width returns the item's width under the given rotation.
func (it ItemType) Width(rotate bool) geom.Length {
	if rotate {
		return it.Rect.Height
	}
	return it.Rect.Width
}

// Height returns the item's height under the given rotation.
func (it ItemType) Height(rotate bool) geom.Length {
	if rotate {
		return it.Rect.Width
	}
	return it.Rect.Height
}

// CanRotate reports whether the item may be placed rotated 90 degrees.
func (it ItemType) CanRotate() bool {
	return !it.Oriented
}

// Defect is a rectangular flaw in a bin type's material that no item may
// overlap, and through which no cut may pass unless the cut type permits
// cutting through defects at that edge.
type Defect struct {
	ID    DefectID
	Label string // the CSV/XLSX row's ID column, or a stamped id if it omitted one
	Rect  geom.Rectangle
	Pos   geom.Coord
}

// X1 returns the defect's left edge.
func (d Defect) X1() geom.Length { return d.Pos.X }

// X2 returns the defect's right edge.
func (d Defect) X2() geom.Length { return d.Pos.X + d.Rect.Width }

// Y1 returns the defect's bottom edge.
func (d Defect) Y1() geom.Length { return d.Pos.Y }

// Y2 returns the defect's top edge.
func (d Defect) Y2() geom.Length { return d.Pos.Y + d.Rect.Height }

// BinType is a stock rectangle the search may use zero or more times, up
// to Copies, with a per-use Cost and an optional set of Defects.
type BinType struct {
	ID      BinTypeID
	Label   string // the CSV/XLSX row's ID column, or a stamped id if it omitted one
	Rect    geom.Rectangle
	Cost    geom.Profit
	Copies  int // Unlimited for no cap
	CopiesMin int
	Trims   [4]geom.Trim // indexed by geom.Edge
	Defects []Defect
}

// Width returns the bin's width for the given first-stage orientation.
func (b BinType) Width(o geom.CutOrientation) geom.Length {
	if o == geom.Horizontal {
		return b.Rect.Height
	}
	return b.Rect.Width
}

// Height returns the bin's height for the given first-stage orientation.
func (b BinType) Height(o geom.CutOrientation) geom.Length {
	if o == geom.Horizontal {
		return b.Rect.Width
	}
	return b.Rect.Height
}

// Parameters are the global knobs that apply to every bin and cut.
type Parameters struct {
	Objective             Objective
	CutType               CutType
	FirstStageOrientation geom.CutOrientation
	MinimumWaste          geom.Length
	CutThickness          geom.Length
	NumberOfStages        int // 2 or 3; 0 means "unbounded" (staircase)

	// MinimumDistance1Cuts and MaximumDistance1Cuts bound the width of
	// every first-stage strip; 0 means "no bound" for the maximum, same
	// convention as NumberOfStages.
	MinimumDistance1Cuts geom.Length
	MaximumDistance1Cuts geom.Length
	// MinimumDistance2Cuts bounds the height of every second-stage strip.
	MinimumDistance2Cuts geom.Length
	// MaximumNumberOf2Cuts caps how many partial 2-cuts (Roadef2018 cut
	// type only) a single first-stage strip may contain; Unlimited for no
	// cap, the same sentinel BinType/ItemType Copies use.
	MaximumNumberOf2Cuts int
	// CutThroughDefects permits a 1/2/3-cut to pass through a defect's
	// interior; when false the kernel must hold cuts back to route
	// around every defect they would otherwise cross.
	CutThroughDefects bool
}

// DefaultParameters returns the parameters of a plain 3-stage guillotine
// problem with no minimum waste, zero-thickness cuts, no first/second-cut
// distance bounds, and cuts allowed through defects (the original
// solver's usual default — only explicit instances flip it off).
func DefaultParameters() Parameters {
	return Parameters{
		Objective:             Default,
		CutType:               Roadef2018,
		FirstStageOrientation: geom.Any,
		MinimumWaste:          0,
		CutThickness:          0,
		NumberOfStages:        3,
		MinimumDistance1Cuts:  0,
		MaximumDistance1Cuts:  0,
		MinimumDistance2Cuts:  0,
		MaximumNumberOf2Cuts:  Unlimited,
		CutThroughDefects:     true,
	}
}

// Instance is the immutable problem description: item types, bin types
// and the parameters governing how they may be cut and placed.
type Instance struct {
	Parameters Parameters
	items      []ItemType
	bins       []BinType

	itemArea           geom.Area
	itemProfit         geom.Profit
	binArea            geom.Area
	maxEfficiencyItem  ItemTypeID
	stackItems         map[StackID][]ItemTypeID // in the order items were added
	stackPredecessor   map[StackID]StackID       // s2 -> s1 when s1's sequence is a prefix of s2's
}

// Builder accumulates item types, bin types and defects before producing
// an immutable Instance.
type Builder struct {
	params Parameters
	items  []ItemType
	bins   []BinType
}

// NewBuilder starts a Builder with the given parameters.
func NewBuilder(params Parameters) *Builder {
	return &Builder{params: params}
}

// AddItemType appends an item type, assigning it the next sequential ID.
func (b *Builder) AddItemType(it ItemType) ItemTypeID {
	id := ItemTypeID(len(b.items))
	it.ID = id
	b.items = append(b.items, it)
	return id
}

// AddBinType appends a bin type, assigning it the next sequential ID.
func (b *Builder) AddBinType(bt BinType) BinTypeID {
	id := BinTypeID(len(b.bins))
	bt.ID = id
	b.bins = append(b.bins, bt)
	return id
}

// AddDefect appends a defect to the given bin type, assigning it the next
// sequential ID within that bin.
func (b *Builder) AddDefect(bin BinTypeID, d Defect) (DefectID, error) {
	if int(bin) < 0 || int(bin) >= len(b.bins) {
		return 0, fmt.Errorf("instance: unknown bin type %d", bin)
	}
	d.ID = DefectID(len(b.bins[bin].Defects))
	b.bins[bin].Defects = append(b.bins[bin].Defects, d)
	return d.ID, nil
}

// Build finalizes the Instance, computing the derived aggregates
// (total item/bin area, max-efficiency item, stack predecessor table)
// the guides and feasibility kernel rely on.
func (b *Builder) Build() (*Instance, error) {
	if len(b.items) == 0 {
		return nil, fmt.Errorf("instance: no item types")
	}
	if len(b.bins) == 0 {
		return nil, fmt.Errorf("instance: no bin types")
	}

	inst := &Instance{
		Parameters: b.params,
		items:      append([]ItemType(nil), b.items...),
		bins:       append([]BinType(nil), b.bins...),
		stackItems: map[StackID][]ItemTypeID{},
	}

	var bestEff float64 = -1
	for _, it := range inst.items {
		copies := it.Copies
		if copies == Unlimited {
			copies = 1
		}
		inst.itemArea += it.Rect.Area() * geom.Area(copies)
		inst.itemProfit += it.Profit * geom.Profit(copies)
		if it.Rect.Area() > 0 {
			eff := float64(it.Profit) / float64(it.Rect.Area())
			if eff > bestEff {
				bestEff = eff
				inst.maxEfficiencyItem = it.ID
			}
		}
		if it.StackID != NoStack {
			inst.stackItems[it.StackID] = append(inst.stackItems[it.StackID], it.ID)
		}
	}

	for _, bt := range inst.bins {
		copies := bt.Copies
		if copies == Unlimited {
			copies = 1
		}
		inst.binArea += bt.Rect.Area() * geom.Area(copies)
	}

	inst.stackPredecessor = computeStackPredecessors(inst.items, inst.stackItems)

	return inst, nil
}

// computeStackPredecessors finds, for each pair of stacks s1 < s2, whether
// s1's sequence of item dimensions is a prefix of s2's; when it is, s2 maps to s1
// so the branching scheme can reuse s1's already-explored positions as a
// dominance shortcut (grounded on BranchingScheme::equals in the original
// source).
func computeStackPredecessors(items []ItemType, stackItems map[StackID][]ItemTypeID) map[StackID]StackID {
	ids := make([]StackID, 0, len(stackItems))
	for s := range stackItems {
		ids = append(ids, s)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	seq := func(s StackID) []geom.Rectangle {
		out := make([]geom.Rectangle, len(stackItems[s]))
		for i, id := range stackItems[s] {
			out[i] = items[id].Rect
		}
		return out
	}

	pred := map[StackID]StackID{}
	for i, s2 := range ids {
		seq2 := seq(s2)
		for j := 0; j < i; j++ {
			s1 := ids[j]
			seq1 := seq(s1)
			if len(seq1) > len(seq2) {
				continue
			}
			equal := true
			for k := range seq1 {
				if seq1[k] != seq2[k] {
					equal = false
					break
				}
			}
			if equal {
				pred[s2] = s1
				break
			}
		}
	}
	return pred
}

// ItemTypes returns all item types, indexed by ItemTypeID.
func (inst *Instance) ItemTypes() []ItemType { return inst.items }

// BinTypes returns all bin types, indexed by BinTypeID.
func (inst *Instance) BinTypes() []BinType { return inst.bins }

// ItemType looks up an item type by ID.
func (inst *Instance) ItemType(id ItemTypeID) ItemType { return inst.items[id] }

// BinType looks up a bin type by ID.
func (inst *Instance) BinType(id BinTypeID) BinType { return inst.bins[id] }

// ItemArea is the sum of (area * copies) over all item types, using 1
// copy for unlimited-copy items.
func (inst *Instance) ItemArea() geom.Area { return inst.itemArea }

// ItemProfit is the sum of (profit * copies) over all item types.
func (inst *Instance) ItemProfit() geom.Profit { return inst.itemProfit }

// BinArea is the sum of (area * copies) over all bin types.
func (inst *Instance) BinArea() geom.Area { return inst.binArea }

// MaxEfficiencyItemTypeID returns the item type with the highest
// profit-per-area ratio, used by the knapsack upper bound guide.
func (inst *Instance) MaxEfficiencyItemTypeID() ItemTypeID { return inst.maxEfficiencyItem }

// StackPredecessor returns the stack whose item sequence is a prefix of
// s's, and true, or (0, false) if s has no predecessor.
func (inst *Instance) StackPredecessor(s StackID) (StackID, bool) {
	p, ok := inst.stackPredecessor[s]
	return p, ok
}

// StackItems returns the ordered sequence of item type IDs in stack s.
func (inst *Instance) StackItems(s StackID) []ItemTypeID { return inst.stackItems[s] }

// DefectsIntersectingX returns the defects of bin type bt whose horizontal
// span [x1, x2) overlaps the given x-range.
func DefectsIntersectingX(bt BinType, x1, x2 geom.Length) []Defect {
	var out []Defect
	for _, d := range bt.Defects {
		if d.X2() > x1 && d.X1() < x2 {
			out = append(out, d)
		}
	}
	return out
}

// DefectsIntersectingY returns the defects of bin type bt whose vertical
// span [y1, y2) overlaps the given y-range.
func DefectsIntersectingY(bt BinType, y1, y2 geom.Length) []Defect {
	var out []Defect
	for _, d := range bt.Defects {
		if d.Y2() > y1 && d.Y1() < y2 {
			out = append(out, d)
		}
	}
	return out
}

// DefectsIntersectingRect returns the defects of bin type bt that overlap
// the rectangle [x1,x2) x [y1,y2).
func DefectsIntersectingRect(bt BinType, x1, x2, y1, y2 geom.Length) []Defect {
	var out []Defect
	for _, d := range bt.Defects {
		if d.X2() > x1 && d.X1() < x2 && d.Y2() > y1 && d.Y1() < y2 {
			out = append(out, d)
		}
	}
	return out
}

// DefectAt returns the defect of bin type bt covering point (x, y), or
// false if no defect covers it.
func DefectAt(bt BinType, x, y geom.Length) (Defect, bool) {
	for _, d := range bt.Defects {
		if x >= d.X1() && x < d.X2() && y >= d.Y1() && y < d.Y2() {
			return d, true
		}
	}
	return Defect{}, false
}
