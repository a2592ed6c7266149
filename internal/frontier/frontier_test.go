package frontier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/guillocut/internal/geom"
)

func constHeight(h geom.Length) func(int, geom.CutOrientation) geom.Length {
	return func(int, geom.CutOrientation) geom.Length { return h }
}

func TestDominatesEarlierBinAlwaysWins(t *testing.T) {
	f1 := Front{BinIndex: 0}
	f2 := Front{BinIndex: 1}
	assert.True(t, Dominates(f1, f2, constHeight(1000)))
	assert.False(t, Dominates(f2, f1, constHeight(1000)))
}

func TestDominatesDifferentOrientationNeverComparable(t *testing.T) {
	f1 := Front{BinIndex: 0, Orientation: geom.Vertical}
	f2 := Front{BinIndex: 0, Orientation: geom.Horizontal}
	assert.False(t, Dominates(f1, f2, constHeight(1000)))
}

func TestDominatesCaseOneX1CurrBeforeX1Prev(t *testing.T) {
	f1 := Front{BinIndex: 0, X1Curr: 100}
	f2 := Front{BinIndex: 0, X1Prev: 200}
	assert.True(t, Dominates(f1, f2, constHeight(1000)))
}

func TestDominatesCaseTwoSameFirstStageBetterSecondStage(t *testing.T) {
	f1 := Front{BinIndex: 0, X1Prev: 100, X1Curr: 300, Y2Curr: 50}
	f2 := Front{BinIndex: 0, X1Prev: 100, X1Curr: 300, Y2Prev: 100}
	assert.True(t, Dominates(f1, f2, constHeight(1000)))
}

func TestDominatesReflexiveWhenNotAtBinHeight(t *testing.T) {
	f := Front{BinIndex: 0, X1Prev: 100, X1Curr: 300, X3Curr: 150, Y2Prev: 20, Y2Curr: 40}
	assert.True(t, Dominates(f, f, constHeight(1000)))
}

func TestDominatesFalseWhenStrictlyWorse(t *testing.T) {
	f1 := Front{BinIndex: 0, X1Prev: 500, X1Curr: 900, X3Curr: 600, Y2Prev: 400, Y2Curr: 800}
	f2 := Front{BinIndex: 0, X1Prev: 100, X1Curr: 300, X3Curr: 150, Y2Prev: 20, Y2Curr: 40}
	assert.False(t, Dominates(f1, f2, constHeight(1000)))
}

func TestBinHeightFuncOutOfRangeReturnsZero(t *testing.T) {
	h := BinHeightFunc(nil, nil)
	assert.Equal(t, geom.Length(0), h(0, geom.Vertical))
}
