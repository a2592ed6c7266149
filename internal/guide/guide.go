// Package guide implements the priority functions ("guides") the beam
// search orders its frontier by, and the knapsack upper bound used by
// guides 7 and 8.
package guide

import (
	"github.com/piwi3910/guillocut/internal/branching"
	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/instance"
)

// ID selects one of the ten guide formulas, mirroring the original
// solver's guide_id switch.
type ID int

const (
	// AreaRatio orders by current area over item area: smaller is
	// better (less waste relative to what has been placed).
	AreaRatio ID = iota
	// WasteRate orders by waste rate weighted by item count, boosting
	// nodes that are close to zero waste.
	WasteRate
	// AreaRatioSquared is AreaRatio computed on squared areas, biasing
	// more strongly against large open bins.
	AreaRatioSquared
	// WasteRateSquared is WasteRate computed on squared areas.
	WasteRateSquared
	// ProfitDensity orders by current area over profit: smaller is
	// better (more profit for the material consumed).
	ProfitDensity
	// ProfitDensityRate weights ProfitDensity by item count, the
	// profit-aware analogue of WasteRate.
	ProfitDensityRate
	// RawWaste orders directly by the node's waste area.
	RawWaste
	// KnapsackBound orders by the knapsack upper bound ubkp: smaller is
	// explored first so the search proves infeasibility of weak bounds
	// quickly.
	KnapsackBound
	// KnapsackBoundThenWaste breaks KnapsackBound ties by RawWaste.
	KnapsackBoundThenWaste
	// AxleWeight orders by the node's profit directly, for axle-
	// sensitive (heaviest-first) variants of the knapsack objective.
	AxleWeight
)

// Count is the number of defined guide IDs.
const Count = 10

// Names are the display names String returns for each ID.
var Names = [Count]string{
	"area-ratio", "waste-rate", "area-ratio-squared", "waste-rate-squared",
	"profit-density", "profit-density-rate", "raw-waste", "knapsack-bound",
	"knapsack-bound-then-waste", "axle-weight",
}

func (g ID) String() string {
	if int(g) < 0 || int(g) >= Count {
		return "unknown"
	}
	return Names[g]
}

// Less reports whether n1 should be explored before n2 under guide g,
// falling back to insertion order (n1.ID < n2.ID) on an exact tie, so the
// ordering is always a strict weak order.
func Less(inst *instance.Instance, g ID, n1, n2 *branching.Node) bool {
	switch g {
	case AreaRatio:
		a1 := ratio(float64(n1.CurrentArea), float64(n1.ItemArea))
		a2 := ratio(float64(n2.CurrentArea), float64(n2.ItemArea))
		if a1 != a2 {
			return a1 < a2
		}
	case WasteRate:
		w1 := wasteRate(n1)
		w2 := wasteRate(n2)
		g1 := w1 / float64(n1.ItemArea) * float64(n1.NumberOfItems)
		g2 := w2 / float64(n2.ItemArea) * float64(n2.NumberOfItems)
		if g1 != g2 {
			return g1 < g2
		}
	case AreaRatioSquared:
		a1 := ratio(float64(n1.CurrentArea)*float64(n1.CurrentArea), float64(n1.ItemArea)*float64(n1.ItemArea))
		a2 := ratio(float64(n2.CurrentArea)*float64(n2.CurrentArea), float64(n2.ItemArea)*float64(n2.ItemArea))
		if a1 != a2 {
			return a1 < a2
		}
	case WasteRateSquared:
		w1 := wasteRate(n1)
		w2 := wasteRate(n2)
		g1 := w1 * w1 / float64(n1.ItemArea) * float64(n1.NumberOfItems)
		g2 := w2 * w2 / float64(n2.ItemArea) * float64(n2.NumberOfItems)
		if g1 != g2 {
			return g1 < g2
		}
	case ProfitDensity:
		p1 := float64(n1.CurrentArea) / float64(n1.Profit)
		p2 := float64(n2.CurrentArea) / float64(n2.Profit)
		if p1 != p2 {
			return p1 < p2
		}
	case ProfitDensityRate:
		p1 := float64(n1.CurrentArea) / float64(n1.Profit) / float64(n1.ItemArea) * float64(n1.NumberOfItems)
		p2 := float64(n2.CurrentArea) / float64(n2.Profit) / float64(n2.ItemArea) * float64(n2.NumberOfItems)
		if p1 != p2 {
			return p1 < p2
		}
	case RawWaste:
		if n1.Waste != n2.Waste {
			return n1.Waste < n2.Waste
		}
	case KnapsackBound:
		b1, b2 := UpperBoundKnapsack(inst, n1), UpperBoundKnapsack(inst, n2)
		if b1 != b2 {
			return b1 < b2
		}
	case KnapsackBoundThenWaste:
		b1, b2 := UpperBoundKnapsack(inst, n1), UpperBoundKnapsack(inst, n2)
		if b1 != b2 {
			return b1 < b2
		}
		if n1.Waste != n2.Waste {
			return n1.Waste < n2.Waste
		}
	case AxleWeight:
		if n1.Profit != n2.Profit {
			return n1.Profit < n2.Profit
		}
	}
	return n1.ID < n2.ID
}

func ratio(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// wasteRate is (current_area - item_area) / current_area, floored at a
// small positive value the way the original solver does: a node with
// near-zero waste would otherwise tie with one with literally zero
// waste and lose the tie-break signal the guide needs.
func wasteRate(n *branching.Node) float64 {
	if n.CurrentArea == 0 {
		return 0
	}
	rate := float64(n.CurrentArea-n.ItemArea) / float64(n.CurrentArea)
	if rate < 0.02 {
		rate = 0.01 + rate/2
	}
	return rate
}

// UpperBoundKnapsack bounds the profit reachable from n: if the bin area
// still open can hold all remaining item area, the bound is the full
// remaining profit; otherwise it is n's current profit plus the best
// remaining profit density applied to the remaining open area.
func UpperBoundKnapsack(inst *instance.Instance, n *branching.Node) geom.Profit {
	remainingItemArea := inst.ItemArea() - n.ItemArea
	remainingPackableArea := inst.BinArea() - n.CurrentArea
	if remainingPackableArea >= remainingItemArea {
		return inst.ItemProfit()
	}
	j := inst.MaxEfficiencyItemTypeID()
	it := inst.ItemType(j)
	var efficiency float64
	if it.Rect.Area() > 0 {
		efficiency = float64(it.Profit) / float64(it.Rect.Area())
	}
	return n.Profit + geom.Profit(float64(remainingPackableArea)*efficiency)
}
