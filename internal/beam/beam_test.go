package beam

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/guillocut/internal/branching"
	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/guide"
	"github.com/piwi3910/guillocut/internal/instance"
)

func tinyInstance(t *testing.T) *instance.Instance {
	t.Helper()
	b := instance.NewBuilder(instance.DefaultParameters())
	b.AddItemType(instance.ItemType{Rect: geom.Rectangle{Width: 50, Height: 50}, Profit: 1, Copies: 2, StackID: instance.NoStack})
	b.AddBinType(instance.BinType{Rect: geom.Rectangle{Width: 100, Height: 100}, Copies: 1})
	inst, err := b.Build()
	require.NoError(t, err)
	return inst
}

func TestRunFindsAFeasibleLeaf(t *testing.T) {
	inst := tinyInstance(t)
	cfg := Config{
		Discipline:       branching.Staged,
		Guides:           []guide.ID{guide.AreaRatio, guide.RawWaste},
		Orientations:     []geom.CutOrientation{geom.Vertical},
		InitialQueueSize: 2,
		GrowthFactor:     2,
		MaxQueueSize:     100,
		TimeLimit:        5 * time.Second,
	}

	result, err := Run(context.Background(), inst, cfg)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotNil(t, result.Node)
	assert.True(t, result.Node.NumberOfItems > 0)
	assert.GreaterOrEqual(t, result.Nodes, int64(1))
}

func TestBetterPrefersHigherProfit(t *testing.T) {
	a := &Result{Node: &branching.Node{Profit: 10}}
	b := &Result{Node: &branching.Node{Profit: 5}}
	assert.True(t, better(a, b))
	assert.False(t, better(b, a))
}

func TestBetterPrefersFewerBinsOnProfitTie(t *testing.T) {
	a := &Result{Node: &branching.Node{Profit: 10, BinTypeIDs: []instance.BinTypeID{0}}}
	b := &Result{Node: &branching.Node{Profit: 10, BinTypeIDs: []instance.BinTypeID{0, 1}}}
	assert.True(t, better(a, b))
}

func TestBestResultSkipsNilEntries(t *testing.T) {
	results := []*Result{nil, {Node: nil}, {Node: &branching.Node{Profit: 3}}}
	best := bestResult(results)
	require.NotNil(t, best)
	assert.Equal(t, geom.Profit(3), best.Node.Profit)
}

func TestRunRespectsCanceledContext(t *testing.T) {
	inst := tinyInstance(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := DefaultConfig()
	cfg.TimeLimit = 0
	result, err := Run(ctx, inst, cfg)
	if err != nil {
		assert.Nil(t, result)
	} else {
		require.NotNil(t, result)
	}
}
