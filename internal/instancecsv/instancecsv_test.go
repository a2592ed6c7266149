package instancecsv

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/instance"
)

func TestDetectDelimiterPrefersSemicolon(t *testing.T) {
	data := []byte("ID;WIDTH;HEIGHT\n1;100;200\n2;300;400\n")
	assert.Equal(t, ';', DetectDelimiter(data))
}

func TestDetectDelimiterDefaultsToComma(t *testing.T) {
	data := []byte("ID,WIDTH,HEIGHT\n1,100,200\n")
	assert.Equal(t, ',', DetectDelimiter(data))
}

func TestCanonicalHeaderResolvesAliases(t *testing.T) {
	assert.Equal(t, "WIDTH", canonicalHeader("w"))
	assert.Equal(t, "COPIES", canonicalHeader("Qty"))
	assert.Equal(t, "STACK_ID", canonicalHeader("stack"))
	assert.Equal(t, "SOMETHING_ELSE", canonicalHeader("something else"))
}

func TestItemsFromCSVParsesRowsAndAppliesDefaults(t *testing.T) {
	csvData := "ID,WIDTH,HEIGHT,PROFIT,COPIES,STACK_ID\n" +
		"p1,40,30,7,2,1\n" +
		"p2,10,10,,1,\n"

	b := instance.NewBuilder(instance.DefaultParameters())
	err := ItemsFromCSV(strings.NewReader(csvData), b)
	require.NoError(t, err)
	b.AddBinType(instance.BinType{Rect: geom.Rectangle{Width: 100, Height: 100}})
	inst, err := b.Build()
	require.NoError(t, err)

	require.Len(t, inst.ItemTypes(), 2)
	first := inst.ItemTypes()[0]
	assert.Equal(t, geom.Length(40), first.Rect.Width)
	assert.Equal(t, geom.Profit(7), first.Profit)
	assert.Equal(t, instance.StackID(1), first.StackID)

	second := inst.ItemTypes()[1]
	assert.Equal(t, geom.Profit(100), second.Profit, "missing PROFIT defaults to width*height")
	assert.Equal(t, instance.NoStack, second.StackID, "missing STACK_ID defaults to NoStack")
}

func TestItemsFromCSVRejectsMissingWidthColumn(t *testing.T) {
	b := instance.NewBuilder(instance.DefaultParameters())
	err := ItemsFromCSV(strings.NewReader("ID,HEIGHT\n1,10\n"), b)
	assert.Error(t, err)
}

func TestBinsFromCSVParsesTrimsAndCopies(t *testing.T) {
	csvData := "ID,WIDTH,HEIGHT,COST,COPIES,BOTTOM_TRIM,BOTTOM_TRIM_TYPE\n" +
		"b1,1000,500,12,3,10,hard\n"

	b := instance.NewBuilder(instance.DefaultParameters())
	ids, err := BinsFromCSV(strings.NewReader(csvData), b)
	require.NoError(t, err)
	require.Len(t, ids, 1)

	b.AddItemType(instance.ItemType{Rect: geom.Rectangle{Width: 10, Height: 10}, StackID: instance.NoStack})
	inst, err := b.Build()
	require.NoError(t, err)

	bt := inst.BinType(ids[0])
	assert.Equal(t, geom.Profit(12), bt.Cost)
	assert.Equal(t, 3, bt.Copies)
	assert.Equal(t, geom.Length(10), bt.Trims[geom.Bottom].Length)
	assert.Equal(t, geom.HardTrim, bt.Trims[geom.Bottom].Kind)
}

func TestBinsFromCSVRejectsCopiesMinAboveCopies(t *testing.T) {
	csvData := "WIDTH,HEIGHT,COPIES,COPIES_MIN\n100,100,2,5\n"
	b := instance.NewBuilder(instance.DefaultParameters())
	_, err := BinsFromCSV(strings.NewReader(csvData), b)
	assert.Error(t, err)
}

func TestDefectsFromCSVAttachesToReferencedBin(t *testing.T) {
	b := instance.NewBuilder(instance.DefaultParameters())
	ids, err := BinsFromCSV(strings.NewReader("WIDTH,HEIGHT\n1000,500\n1000,500\n"), b)
	require.NoError(t, err)

	csvData := "ID,BIN,X,Y,WIDTH,HEIGHT\nd1,1,100,100,20,20\n"
	err = DefectsFromCSV(strings.NewReader(csvData), b, ids)
	require.NoError(t, err)

	b.AddItemType(instance.ItemType{Rect: geom.Rectangle{Width: 10, Height: 10}, StackID: instance.NoStack})
	inst, err := b.Build()
	require.NoError(t, err)

	bt := inst.BinType(ids[1])
	require.Len(t, bt.Defects, 1)
	assert.Equal(t, geom.Length(100), bt.Defects[0].Pos.X)
}

func TestDefectsFromCSVRejectsUnknownBinIndex(t *testing.T) {
	b := instance.NewBuilder(instance.DefaultParameters())
	ids, err := BinsFromCSV(strings.NewReader("WIDTH,HEIGHT\n1000,500\n"), b)
	require.NoError(t, err)

	err = DefectsFromCSV(strings.NewReader("BIN,X,Y,WIDTH,HEIGHT\n5,0,0,10,10\n"), b, ids)
	assert.Error(t, err)
}

func TestParametersFromCSVOverridesBase(t *testing.T) {
	base := instance.DefaultParameters()
	csvData := "name,value\nobjective,knapsack\nnumber_of_stages,2\n"
	params, err := ParametersFromCSV(strings.NewReader(csvData), base)
	require.NoError(t, err)
	assert.Equal(t, instance.Knapsack, params.Objective)
	assert.Equal(t, 2, params.NumberOfStages)
}

func TestParametersFromCSVAppliesDistanceAndTwoCutBounds(t *testing.T) {
	base := instance.DefaultParameters()
	csvData := "name,value\n" +
		"minimum_distance_1_cuts,50\n" +
		"maximum_distance_1_cuts,900\n" +
		"minimum_distance_2_cuts,40\n" +
		"maximum_number_2_cuts,2\n" +
		"cut_through_defects,false\n"
	params, err := ParametersFromCSV(strings.NewReader(csvData), base)
	require.NoError(t, err)
	assert.Equal(t, geom.Length(50), params.MinimumDistance1Cuts)
	assert.Equal(t, geom.Length(900), params.MaximumDistance1Cuts)
	assert.Equal(t, geom.Length(40), params.MinimumDistance2Cuts)
	assert.Equal(t, 2, params.MaximumNumberOf2Cuts)
	assert.False(t, params.CutThroughDefects)
}

func TestReadParameterPairsSkipsHeaderAndEmptyRows(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/parameters.csv"
	require.NoError(t, os.WriteFile(path, []byte("name,value\nobjective,knapsack\n\ncut_thickness,3\n"), 0o644))

	pairs, err := ReadParameterPairs(path)
	require.NoError(t, err)
	assert.Equal(t, "knapsack", pairs["objective"])
	assert.Equal(t, "3", pairs["cut_thickness"])
}

func TestParseObjectiveCutTypeOrientationNames(t *testing.T) {
	obj, ok := ParseObjectiveName("knapsack")
	assert.True(t, ok)
	assert.Equal(t, instance.Knapsack, obj)

	_, ok = ParseObjectiveName("not-a-real-objective")
	assert.False(t, ok)

	ct, ok := ParseCutTypeName("roadef2018")
	assert.True(t, ok)
	assert.Equal(t, instance.Roadef2018, ct)

	o, ok := ParseOrientationName("horizontal")
	assert.True(t, ok)
	assert.Equal(t, geom.Horizontal, o)
}
