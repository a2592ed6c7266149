package solution

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/guillocut/internal/branching"
	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/instance"
)

func buildLeaf(t *testing.T) (*instance.Instance, *branching.Node) {
	t.Helper()
	params := instance.DefaultParameters()
	params.FirstStageOrientation = geom.Vertical
	b := instance.NewBuilder(params)
	b.AddItemType(instance.ItemType{Rect: geom.Rectangle{Width: 40, Height: 30}, Profit: 7, Copies: 1, StackID: instance.NoStack})
	b.AddBinType(instance.BinType{Rect: geom.Rectangle{Width: 100, Height: 100}, Cost: 3, Copies: 1})
	inst, err := b.Build()
	require.NoError(t, err)

	scheme := branching.NewScheme(inst, branching.Parameters{Discipline: branching.Staged, FirstStageOrientation: geom.Vertical})
	root := scheme.Root()
	ins := scheme.Insertions(root)
	require.NotEmpty(t, ins)
	leaf := scheme.Child(root, ins[0])
	require.True(t, scheme.Leaf(leaf))
	return inst, leaf
}

func TestFromNodeAggregatesBinsAndTotals(t *testing.T) {
	inst, leaf := buildLeaf(t)
	sol := FromNode(inst, leaf)

	require.Len(t, sol.Bins, 1)
	assert.Equal(t, 1, sol.TotalItems)
	assert.Equal(t, geom.Profit(7), sol.TotalProfit)
	assert.Equal(t, geom.Profit(3), sol.TotalCost)
	assert.True(t, sol.FullyPacked)
	assert.Equal(t, geom.Area(40*30), sol.Bins[0].ItemArea)
	assert.Equal(t, geom.Area(100*100-40*30), sol.Bins[0].Waste)
}

func TestDigestIsStableAndSixteenChars(t *testing.T) {
	inst, leaf := buildLeaf(t)
	sol := FromNode(inst, leaf)

	d1 := sol.Digest()
	d2 := sol.Digest()
	assert.Equal(t, d1, d2)
	assert.Len(t, d1, 16)
}

func TestDigestDiffersWhenPlacementMoves(t *testing.T) {
	inst, leaf := buildLeaf(t)
	sol := FromNode(inst, leaf)

	moved := sol
	moved.Bins = append([]BinSolution(nil), sol.Bins...)
	moved.Bins[0].Placements = append([]Placement(nil), sol.Bins[0].Placements...)
	moved.Bins[0].Placements[0].Pos.X += 1

	assert.NotEqual(t, sol.Digest(), moved.Digest())
}

func TestSummaryContainsKeyFigures(t *testing.T) {
	inst, leaf := buildLeaf(t)
	sol := FromNode(inst, leaf)
	summary := sol.Summary()
	assert.Contains(t, summary, "bins=1")
	assert.Contains(t, summary, "items=1")
	assert.Contains(t, summary, "fully_packed=true")
}

func TestVerifyInvariantsAcceptsAValidLeaf(t *testing.T) {
	inst, leaf := buildLeaf(t)
	assert.NoError(t, VerifyInvariants(inst, leaf))
}

func TestVerifyInvariantsRejectsDefectOverlap(t *testing.T) {
	inst, leaf := buildLeaf(t)

	// Corrupt the leaf's own placement to overlap a defect injected after
	// the fact, simulating a search bug that let an infeasible node
	// through despite the kernel's generation-time checks.
	bt := inst.BinType(leaf.BinTypeIDs[leaf.BinIndex])
	bt.Defects = []instance.Defect{{Pos: leaf.Placement1.Pos, Rect: geom.Rectangle{Width: 5, Height: 5}}}
	inst.BinTypes()[leaf.BinIndex] = bt

	err := VerifyInvariants(inst, leaf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlaps a defect")
}

func TestVerifyInvariantsRejectsThirdStageUnderTwoStageLimit(t *testing.T) {
	inst, leaf := buildLeaf(t)
	inst.Parameters.NumberOfStages = 2
	leaf.DF = 2

	err := VerifyInvariants(inst, leaf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "number_of_stages")
}

func TestVerifyInvariantsRejectsExcessPartialTwoCuts(t *testing.T) {
	inst, leaf := buildLeaf(t)
	inst.Parameters.CutType = instance.Roadef2018
	inst.Parameters.MaximumNumberOf2Cuts = 1
	leaf.Subplate1CurrNumberOf2Cuts = 2

	err := VerifyInvariants(inst, leaf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum_number_2_cuts")
}

func TestWriteCertificateCSVIncludesHeaderAndDefectRows(t *testing.T) {
	inst, leaf := buildLeaf(t)
	var buf strings.Builder
	err := WriteCertificateCSV(&buf, inst, leaf)
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "PLATE_ID,COPIES,NODE_ID,X,Y,WIDTH,HEIGHT,TYPE,CUT,PARENT"))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.GreaterOrEqual(t, len(lines), 2, "at least the header and one placement row")
}
