package vmath

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(cx, cy, cz, dx, dy, dz float64) BBox {
	return NewBBox(V3(cx, cy, cz), V3(dx, dy, dz))
}

func TestIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b BBox
		want bool
	}{
		{"gap of one unit on X", box(0, 0, 0, 2, 2, 2), box(3, 0, 0, 2, 2, 2), false},
		{"touching faces on X", box(0, 0, 0, 2, 2, 2), box(2, 0, 0, 2, 2, 2), true},
		{"overlap", box(0, 0, 0, 2, 2, 2), box(1, 1, 1, 2, 2, 2), true},
		{"separated on Y only", box(0, 0, 0, 2, 2, 2), box(0, 2.5, 0, 2, 2, 2), false},
		{"separated on Z only", box(0, 0, 0, 2, 2, 2), box(1, 1, -5, 2, 2, 2), false},
		{"negative side gap", box(0, 0, 0, 2, 2, 2), box(-3.01, 0, 0, 2, 2, 2), false},
		{"contained", box(0, 0, 0, 10, 10, 10), box(1, 1, 1, 1, 1, 1), true},
		{"degenerate point inside", box(0, 0, 0, 2, 2, 2), box(1, 1, 1, 0, 0, 0), true},
		{"degenerate points apart", box(0, 0, 0, 0, 0, 0), box(0, 0, 0.001, 0, 0, 0), false},
		{"uneven extents touching", box(0, 0, 0, 4, 1, 1), box(2.5, 0, 0, 1, 1, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Intersects(tt.a, tt.b))
			assert.Equal(t, tt.want, Intersects(tt.b, tt.a), "must be symmetric")
			assert.Equal(t, tt.want, tt.a.Intersects(tt.b))
		})
	}
}

func TestIntersectsSameCenter(t *testing.T) {
	centers := []mgl64.Vec3{V3(0, 0, 0), V3(-7, 3.5, 100), V3(1e6, -1e6, 0.25)}
	dims := []mgl64.Vec3{V3(1, 1, 1), V3(0.001, 50, 3), V3(9, 0.5, 0.5)}

	for _, c := range centers {
		for _, da := range dims {
			for _, db := range dims {
				assert.True(t, Intersects(NewBBox(c, da), NewBBox(c, db)))
			}
		}
	}
}

func TestIntersectsSymmetryGrid(t *testing.T) {
	var boxes []BBox
	for x := -3.0; x <= 3; x += 1.5 {
		for d := 0.5; d <= 3; d += 1.25 {
			boxes = append(boxes, box(x, x/2, -x, d, d*2, d))
		}
	}
	for _, a := range boxes {
		for _, b := range boxes {
			require.Equal(t, Intersects(a, b), Intersects(b, a), "a=%v b=%v", a, b)
		}
	}
}

func TestBBoxCorners(t *testing.T) {
	b := box(1, 2, 3, 2, 4, 6)
	assert.Equal(t, V3(0, 0, 0), b.Min())
	assert.Equal(t, V3(2, 4, 6), b.Max())

	round := BBoxFromMinMax(V3(2, 4, 6), V3(0, 0, 0))
	assert.Equal(t, b, round)
}

func TestBBoxValid(t *testing.T) {
	assert.True(t, box(0, 0, 0, 0, 1, 2).Valid())
	assert.False(t, box(0, 0, 0, -1, 1, 1).Valid())
}

func TestBBoxContains(t *testing.T) {
	b := box(0, 0, 0, 2, 2, 2)
	assert.True(t, b.Contains(V3(1, 1, 1)))
	assert.True(t, b.Contains(V3(0, 0, 0)))
	assert.False(t, b.Contains(V3(1.01, 0, 0)))
}

func TestIntersection(t *testing.T) {
	got, ok := Intersection(box(0, 0, 0, 2, 2, 2), box(1, 0, 0, 2, 2, 2))
	require.True(t, ok)
	assert.Equal(t, box(0.5, 0, 0, 1, 2, 2), got)

	_, ok = Intersection(box(0, 0, 0, 2, 2, 2), box(5, 0, 0, 2, 2, 2))
	assert.False(t, ok)
}

func TestPenetration(t *testing.T) {
	tests := []struct {
		name string
		a, b BBox
		want mgl64.Vec3
	}{
		{"apart", box(0, 0, 0, 2, 2, 2), box(5, 0, 0, 2, 2, 2), V3(0, 0, 0)},
		{"a left of b", box(0, 0, 0, 2, 2, 2), box(1.5, 0, 0, 2, 2, 2), V3(-0.5, 0, 0)},
		{"a right of b", box(1.5, 0, 0, 2, 2, 2), box(0, 0, 0, 2, 2, 2), V3(0.5, 0, 0)},
		{"a above b on Y", box(0, 1.75, 0, 2, 2, 2), box(0, 0, 0, 2, 2, 2), V3(0, 0.25, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Penetration(tt.a, tt.b)
			assert.True(t, got.ApproxEqual(tt.want), "got %v want %v", got, tt.want)
			if got != (mgl64.Vec3{}) {
				moved := tt.a.Translate(got)
				assert.False(t, Intersects(moved.Grow(-1e-9), tt.b), "resolved box still overlaps")
			}
		})
	}
}

func TestV3DampDt(t *testing.T) {
	v := V3(2, -4, 8)
	assert.Equal(t, v, V3DampDt(v, 1, 0.016))
	assert.Equal(t, V3(0, 0, 0), V3DampDt(v, 0, 0.5))
	assert.InDelta(t, 0.5, DampFactor(0.25, 0.5), 1e-12)
}

func TestV3Normalize(t *testing.T) {
	assert.Equal(t, mgl64.Vec3{}, V3Normalize(mgl64.Vec3{}))
	assert.InDelta(t, 1.0, V3Normalize(V3(3, 4, 0)).Len(), 1e-12)
}

func TestV3ClampMagnitude(t *testing.T) {
	v := V3ClampMagnitude(V3(30, 40, 0), 5)
	assert.InDelta(t, 5.0, v.Len(), 1e-9)
	assert.Equal(t, V3(1, 0, 0), V3ClampMagnitude(V3(1, 0, 0), 5))
}
