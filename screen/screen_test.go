package screen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/explore/geom"
	"github.com/plus3/explore/screen"
)

func apply(t *testing.T, src, dst geom.Rect, rotation float64, x, y float64) geom.Vec2 {
	t.Helper()
	m := screen.Placement(src, dst, rotation)
	px, py := m.Apply(x, y)
	return geom.V(px, py)
}

func TestPlacementScalesAndTranslates(t *testing.T) {
	src := geom.R(32, 0, 32, 32)
	dst := geom.R(100, 50, 64, 128)

	assert.Equal(t, geom.V(100, 50), apply(t, src, dst, 0, 0, 0))
	assert.Equal(t, geom.V(164, 178), apply(t, src, dst, 0, 32, 32))
}

func TestPlacementRotatesAroundCentre(t *testing.T) {
	src := geom.R(0, 0, 10, 10)
	dst := geom.R(0, 0, 10, 10)

	// the centre stays put
	centre := apply(t, src, dst, 90, 5, 5)
	assert.InDelta(t, 5, centre.X, 1e-9)
	assert.InDelta(t, 5, centre.Y, 1e-9)

	// the top-left corner moves to the top-right
	corner := apply(t, src, dst, 90, 0, 0)
	assert.InDelta(t, 10, corner.X, 1e-9)
	assert.InDelta(t, 0, corner.Y, 1e-9)
}

func TestDimensions(t *testing.T) {
	s := screen.New(800, 600)
	w, h := s.Dimensions()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	s.Resize(1024, 768)
	w, h = s.Dimensions()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
}
