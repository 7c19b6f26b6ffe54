package geom_test

import (
	"testing"

	"github.com/plus3/explore/geom"
	"github.com/stretchr/testify/assert"
)

func TestIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b geom.Rect
		want bool
	}{
		{"overlapping corner", geom.R(0, 0, 10, 10), geom.R(5, 5, 10, 10), true},
		{"contained", geom.R(0, 0, 10, 10), geom.R(2, 2, 2, 2), true},
		{"identical", geom.R(1, 1, 4, 4), geom.R(1, 1, 4, 4), true},
		{"x overlap only", geom.R(0, 0, 10, 10), geom.R(5, 20, 10, 10), false},
		{"y overlap only", geom.R(0, 0, 10, 10), geom.R(20, 5, 10, 10), false},
		{"touching edges", geom.R(0, 0, 10, 10), geom.R(10, 0, 10, 10), false},
		{"far apart", geom.R(0, 0, 1, 1), geom.R(100, 100, 1, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Intersects(tt.b))
			assert.Equal(t, tt.want, tt.b.Intersects(tt.a), "intersection must be symmetric")
		})
	}
}

func TestVec2(t *testing.T) {
	a := geom.V(1, 2)
	b := geom.V(3, 5)

	assert.Equal(t, geom.V(4, 7), a.Add(b))
	assert.Equal(t, geom.V(2, 3), b.Sub(a))
	assert.Equal(t, geom.V(2, 4), a.Scale(2))
	assert.Equal(t, geom.V(3, 10), a.Mul(b))
	assert.InDelta(t, 5.0, geom.V(3, 4).Len(), 1e-9)
}

func TestRect(t *testing.T) {
	r := geom.R(1, 2, 3, 4)
	assert.Equal(t, geom.V(1, 2), r.Min())
	assert.Equal(t, geom.V(4, 6), r.Max())
	assert.Equal(t, geom.V(3, 4), r.Size())
	assert.Equal(t, geom.R(0, 0, 3, 4), r.Translate(geom.V(-1, -2)))
	assert.True(t, r.Contains(geom.V(1, 2)))
	assert.False(t, r.Contains(geom.V(4, 2)))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, geom.Clamp(5, 0, 10))
	assert.Equal(t, 0.0, geom.Clamp(-3, 0, 10))
	assert.Equal(t, 10.0, geom.Clamp(12, 0, 10))
	assert.Equal(t, 0.0, geom.Clamp(4, 0, -10))
}
