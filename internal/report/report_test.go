package report

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/guillocut/internal/branching"
	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/instance"
	"github.com/piwi3910/guillocut/internal/solution"
)

func sampleSolution(t *testing.T) (*instance.Instance, solution.Solution) {
	t.Helper()
	params := instance.DefaultParameters()
	params.FirstStageOrientation = geom.Vertical
	b := instance.NewBuilder(params)
	b.AddItemType(instance.ItemType{Rect: geom.Rectangle{Width: 40, Height: 30}, Profit: 7, Copies: 1, StackID: instance.NoStack})
	b.AddBinType(instance.BinType{
		Rect: geom.Rectangle{Width: 100, Height: 100}, Cost: 3, Copies: 1,
		Defects: []instance.Defect{{Pos: geom.Coord{X: 60, Y: 60}, Rect: geom.Rectangle{Width: 10, Height: 10}}},
	})
	inst, err := b.Build()
	require.NoError(t, err)

	scheme := branching.NewScheme(inst, branching.Parameters{Discipline: branching.Staged, FirstStageOrientation: geom.Vertical})
	root := scheme.Root()
	ins := scheme.Insertions(root)
	require.NotEmpty(t, ins)
	leaf := scheme.Child(root, ins[0])

	return inst, solution.FromNode(inst, leaf)
}

func TestWritePDFProducesNonEmptyFile(t *testing.T) {
	inst, sol := sampleSolution(t)
	path := t.TempDir() + "/cutting-diagram.pdf"
	require.NoError(t, WritePDF(path, inst, sol))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteXLSXProducesNonEmptyFile(t *testing.T) {
	inst, sol := sampleSolution(t)
	path := t.TempDir() + "/summary.xlsx"
	require.NoError(t, WriteXLSX(path, inst, sol))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteDXFProducesNonEmptyFile(t *testing.T) {
	inst, sol := sampleSolution(t)
	path := t.TempDir() + "/cut-lines.dxf"
	require.NoError(t, WriteDXF(path, inst, sol))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestLabelFontSizeShrinksWithDimension(t *testing.T) {
	assert.Equal(t, 8.0, labelFontSize(100, 50))
	assert.Equal(t, 7.0, labelFontSize(100, 25))
	assert.Equal(t, 6.0, labelFontSize(100, 10))
}
