package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectangleArea(t *testing.T) {
	r := Rectangle{Width: 100, Height: 40}
	assert.Equal(t, Area(4000), r.Area())
}

func TestCutOrientationOpposite(t *testing.T) {
	assert.Equal(t, Horizontal, Vertical.Opposite())
	assert.Equal(t, Vertical, Horizontal.Opposite())
}

func TestCutOrientationOppositeOfAnyPanics(t *testing.T) {
	assert.Panics(t, func() {
		Any.Opposite()
	})
}

func TestCutOrientationString(t *testing.T) {
	assert.Equal(t, "vertical", Vertical.String())
	assert.Equal(t, "horizontal", Horizontal.String())
	assert.Equal(t, "any", Any.String())
}

func TestTrimKindString(t *testing.T) {
	assert.Equal(t, "hard", HardTrim.String())
	assert.Equal(t, "soft", SoftTrim.String())
}
