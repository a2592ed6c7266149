package branching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/instance"
)

func simpleInstance(t *testing.T) *instance.Instance {
	t.Helper()
	params := instance.DefaultParameters()
	params.FirstStageOrientation = geom.Vertical
	b := instance.NewBuilder(params)
	b.AddItemType(instance.ItemType{Rect: geom.Rectangle{Width: 40, Height: 30}, Copies: 2, StackID: instance.NoStack})
	b.AddBinType(instance.BinType{Rect: geom.Rectangle{Width: 100, Height: 100}, Copies: instance.Unlimited})
	inst, err := b.Build()
	require.NoError(t, err)
	return inst
}

func TestSchemeRootHasFullCopiesAndNoBins(t *testing.T) {
	inst := simpleInstance(t)
	s := NewScheme(inst, Parameters{Discipline: Staged, FirstStageOrientation: geom.Vertical})
	root := s.Root()

	assert.True(t, root.IsRoot())
	assert.Equal(t, 0, root.NumberOfBins())
	assert.Equal(t, []int{2}, root.Remaining)
	assert.False(t, s.Leaf(root), "an empty root with unplaced copies is never a leaf")
}

func TestNewBinInsertionsOnlyOffersVerticalWhenPinned(t *testing.T) {
	inst := simpleInstance(t)
	s := NewScheme(inst, Parameters{Discipline: Staged, FirstStageOrientation: geom.Vertical})
	root := s.Root()

	ins := s.Insertions(root)
	require.NotEmpty(t, ins)
	for _, in := range ins {
		assert.Equal(t, geom.Vertical, in.NewBinOrientation)
		assert.Equal(t, instance.ItemTypeID(0), in.ItemTypeID1)
		assert.Equal(t, NoItem, in.ItemTypeID2)
		assert.LessOrEqual(t, int(in.DF), -1)
	}
}

func TestChildCommitsFirstBinPlacement(t *testing.T) {
	inst := simpleInstance(t)
	s := NewScheme(inst, Parameters{Discipline: Staged, FirstStageOrientation: geom.Vertical})
	root := s.Root()

	ins := s.Insertions(root)
	require.NotEmpty(t, ins)
	child := s.Child(root, ins[0])

	assert.Equal(t, 1, child.NumberOfBins())
	assert.Equal(t, 1, child.NumberOfItems)
	assert.Equal(t, []int{1}, child.Remaining)
	require.NotNil(t, child.Placement1)
	assert.Equal(t, instance.ItemTypeID(0), child.Placement1.ItemTypeID)
	assert.Nil(t, child.Placement2)
	assert.Equal(t, 1, len(child.Placements()))
}

func TestNewFirstStageInsertionRequiresAnOpenBin(t *testing.T) {
	inst := simpleInstance(t)
	s := NewScheme(inst, Parameters{Discipline: Staged, FirstStageOrientation: geom.Vertical})
	root := s.Root()

	ins := s.Insertions(root)
	require.NotEmpty(t, ins)
	child := s.Child(root, ins[0])

	follow := s.Insertions(child)
	var sawDF0 bool
	for _, in := range follow {
		if in.DF == 0 {
			sawDF0 = true
		}
	}
	assert.True(t, sawDF0, "once a bin is open, a second first-stage subplate becomes a valid insertion")
}

func TestSchemeDominatesFewerItemsNeverDominates(t *testing.T) {
	inst := simpleInstance(t)
	s := NewScheme(inst, Parameters{Discipline: Staged, FirstStageOrientation: geom.Vertical})

	n1 := &Node{NumberOfItems: 1, Remaining: []int{1}, PosStack: map[instance.StackID]int{}, BinTypeIDs: []instance.BinTypeID{0}}
	n2 := &Node{NumberOfItems: 2, Remaining: []int{1}, PosStack: map[instance.StackID]int{}, BinTypeIDs: []instance.BinTypeID{0}}

	assert.False(t, s.Dominates(n1, n2))
}

func TestSchemeDominatesLessRemainingNeverDominates(t *testing.T) {
	inst := simpleInstance(t)
	s := NewScheme(inst, Parameters{Discipline: Staged, FirstStageOrientation: geom.Vertical})

	n1 := &Node{NumberOfItems: 1, Remaining: []int{0}, PosStack: map[instance.StackID]int{}, BinTypeIDs: []instance.BinTypeID{0}}
	n2 := &Node{NumberOfItems: 1, Remaining: []int{1}, PosStack: map[instance.StackID]int{}, BinTypeIDs: []instance.BinTypeID{0}}

	assert.False(t, s.Dominates(n1, n2))
}

func TestStagedInsertionsOmitThirdStageWhenTwoStages(t *testing.T) {
	params := instance.DefaultParameters()
	params.FirstStageOrientation = geom.Vertical
	params.NumberOfStages = 2
	b := instance.NewBuilder(params)
	b.AddItemType(instance.ItemType{Rect: geom.Rectangle{Width: 40, Height: 30}, Copies: instance.Unlimited, StackID: instance.NoStack})
	b.AddBinType(instance.BinType{Rect: geom.Rectangle{Width: 100, Height: 100}, Copies: instance.Unlimited})
	inst, err := b.Build()
	require.NoError(t, err)

	s := NewScheme(inst, Parameters{Discipline: Staged, FirstStageOrientation: geom.Vertical})
	root := s.Root()
	ins := s.Insertions(root)
	require.NotEmpty(t, ins)
	bin := s.Child(root, ins[0])

	second := s.Insertions(bin)
	var df1 *Insertion
	for i := range second {
		if second[i].DF == 1 {
			df1 = &second[i]
			break
		}
	}
	require.NotNil(t, df1, "a second-stage subplate must be offered")
	subplate := s.Child(bin, *df1)

	for _, in := range s.Insertions(subplate) {
		assert.NotEqual(t, 2, in.DF, "number_of_stages == 2 must never offer a third-level subplate")
	}
}

func TestSchemeValidRejectsExcessPartialTwoCuts(t *testing.T) {
	inst := simpleInstance(t)
	inst.Parameters.CutType = instance.Roadef2018
	inst.Parameters.MaximumNumberOf2Cuts = 1
	s := NewScheme(inst, Parameters{Discipline: Staged, FirstStageOrientation: geom.Vertical})

	n := &Node{Subplate1CurrNumberOf2Cuts: 2}
	assert.False(t, s.Valid(n))

	n.Subplate1CurrNumberOf2Cuts = 1
	assert.True(t, s.Valid(n))
}

func TestNewSecondStageInsertionsRejectsPartialUnderExactCutType(t *testing.T) {
	params := instance.DefaultParameters()
	params.FirstStageOrientation = geom.Vertical
	params.CutType = instance.Exact
	b := instance.NewBuilder(params)
	b.AddItemType(instance.ItemType{Rect: geom.Rectangle{Width: 40, Height: 30}, Copies: instance.Unlimited, StackID: instance.NoStack})
	b.AddItemType(instance.ItemType{Rect: geom.Rectangle{Width: 20, Height: 30}, Copies: instance.Unlimited, StackID: instance.NoStack})
	b.AddBinType(instance.BinType{Rect: geom.Rectangle{Width: 100, Height: 100}, Copies: instance.Unlimited})
	inst, err := b.Build()
	require.NoError(t, err)

	s := NewScheme(inst, Parameters{Discipline: Staged, FirstStageOrientation: geom.Vertical})
	root := s.Root()
	ins := s.Insertions(root)
	require.NotEmpty(t, ins)
	var wideIns Insertion
	for _, in := range ins {
		if in.ItemTypeID1 == 0 {
			wideIns = in
			break
		}
	}
	bin := s.Child(root, wideIns)

	for _, in := range s.Insertions(bin) {
		if in.DF == 1 {
			assert.NotEqual(t, 1, in.Z1, "Exact cut type must never emit a partial (narrower) 2-cut")
		}
	}
}

func TestNewDefectWasteInsertionStepsPastBlockingDefect(t *testing.T) {
	params := instance.DefaultParameters()
	params.FirstStageOrientation = geom.Vertical
	params.CutThroughDefects = false
	b := instance.NewBuilder(params)
	b.AddItemType(instance.ItemType{Rect: geom.Rectangle{Width: 10, Height: 10}, Copies: instance.Unlimited, StackID: instance.NoStack})
	binID := b.AddBinType(instance.BinType{Rect: geom.Rectangle{Width: 100, Height: 50}, Copies: instance.Unlimited})
	_, err := b.AddDefect(binID, instance.Defect{Pos: geom.Coord{X: 0, Y: 0}, Rect: geom.Rectangle{Width: 60, Height: 50}})
	require.NoError(t, err)
	inst, err := b.Build()
	require.NoError(t, err)

	s := NewScheme(inst, Parameters{Discipline: Staged, FirstStageOrientation: geom.Vertical})
	n := &Node{
		BinTypeIDs:            []instance.BinTypeID{binID},
		BinIndex:              0,
		FirstStageOrientation: geom.Vertical,
		X1Curr:                0,
	}

	out := s.newDefectWasteInsertion(n)
	require.Len(t, out, 1)
	assert.Equal(t, NoItem, out[0].ItemTypeID1)
	assert.Equal(t, NoItem, out[0].ItemTypeID2)
	assert.Equal(t, geom.Length(60), out[0].X1, "must step past the defect's far edge since there is no room before it")
}

func TestNewDefectWasteInsertionHoldsBackWhenRoomExists(t *testing.T) {
	params := instance.DefaultParameters()
	params.FirstStageOrientation = geom.Vertical
	params.CutThroughDefects = false
	b := instance.NewBuilder(params)
	b.AddItemType(instance.ItemType{Rect: geom.Rectangle{Width: 10, Height: 10}, Copies: instance.Unlimited, StackID: instance.NoStack})
	binID := b.AddBinType(instance.BinType{Rect: geom.Rectangle{Width: 100, Height: 50}, Copies: instance.Unlimited})
	_, err := b.AddDefect(binID, instance.Defect{Pos: geom.Coord{X: 40, Y: 0}, Rect: geom.Rectangle{Width: 10, Height: 50}})
	require.NoError(t, err)
	inst, err := b.Build()
	require.NoError(t, err)

	s := NewScheme(inst, Parameters{Discipline: Staged, FirstStageOrientation: geom.Vertical})
	n := &Node{
		BinTypeIDs:            []instance.BinTypeID{binID},
		BinIndex:              0,
		FirstStageOrientation: geom.Vertical,
		X1Curr:                0,
	}

	out := s.newDefectWasteInsertion(n)
	require.Len(t, out, 1)
	assert.Equal(t, geom.Length(40), out[0].X1, "must hold back to just short of the defect when there is room before it")
}

func TestFlatSkylineCoversWholeWidth(t *testing.T) {
	sky := flatSkyline(500)
	require.Len(t, sky, 1)
	assert.Equal(t, geom.Length(0), sky[0].X)
	assert.Equal(t, geom.Length(500), sky[0].Width)
	assert.Equal(t, geom.Length(0), sky[0].Y)
}

func TestLowestSegmentPicksMinimumY(t *testing.T) {
	sky := []SkylineSegment{
		{X: 0, Width: 100, Y: 50},
		{X: 100, Width: 100, Y: 10},
		{X: 200, Width: 100, Y: 30},
	}
	assert.Equal(t, 1, lowestSegment(sky))
}

func TestUpdateSkylineRaisesCoveredSpan(t *testing.T) {
	sky := flatSkyline(300)
	updated := updateSkyline(sky, 50, 80, 100)

	var total geom.Length
	for _, seg := range updated {
		total += seg.Width
		if seg.X >= 50 && seg.X < 150 {
			assert.Equal(t, geom.Length(80), seg.Y)
		}
	}
	assert.Equal(t, geom.Length(300), total, "the skyline must still cover the whole bin width")
}

func TestSkylineFilledWidthCountsOnlyRaisedSegments(t *testing.T) {
	sky := []SkylineSegment{{X: 0, Width: 100, Y: 0}, {X: 100, Width: 50, Y: 20}}
	assert.Equal(t, geom.Length(50), skylineFilledWidth(sky))
}
