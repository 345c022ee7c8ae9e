package vmath

import "github.com/go-gl/mathgl/mgl64"

// BBox is an axis-aligned box described by its center and full extents
// Dimensions are full widths per axis, not half extents
type BBox struct {
	Center     mgl64.Vec3
	Dimensions mgl64.Vec3
}

// NewBBox creates a box from center and full extents
func NewBBox(center, dimensions mgl64.Vec3) BBox {
	return BBox{Center: center, Dimensions: dimensions}
}

// BBoxFromMinMax creates a box spanning two corners in any order
func BBoxFromMinMax(a, b mgl64.Vec3) BBox {
	lo, hi := V3Min(a, b), V3Max(a, b)
	return BBox{
		Center:     lo.Add(hi).Mul(0.5),
		Dimensions: hi.Sub(lo),
	}
}

// Valid reports whether all dimensions are non-negative and finite
func (b BBox) Valid() bool {
	if !V3IsFinite(b.Center) || !V3IsFinite(b.Dimensions) {
		return false
	}
	return b.Dimensions[0] >= 0 && b.Dimensions[1] >= 0 && b.Dimensions[2] >= 0
}

// HalfExtents returns dimensions / 2
func (b BBox) HalfExtents() mgl64.Vec3 {
	return b.Dimensions.Mul(0.5)
}

// Min returns the lowest corner
func (b BBox) Min() mgl64.Vec3 {
	return b.Center.Sub(b.HalfExtents())
}

// Max returns the highest corner
func (b BBox) Max() mgl64.Vec3 {
	return b.Center.Add(b.HalfExtents())
}

// Translate returns the box moved by delta
func (b BBox) Translate(delta mgl64.Vec3) BBox {
	b.Center = b.Center.Add(delta)
	return b
}

// Grow returns the box with each face pushed outward by amount on every axis
func (b BBox) Grow(amount float64) BBox {
	b.Dimensions = b.Dimensions.Add(mgl64.Vec3{amount * 2, amount * 2, amount * 2})
	return b
}

// Contains reports whether p lies inside the box, boundary inclusive
func (b BBox) Contains(p mgl64.Vec3) bool {
	lo, hi := b.Min(), b.Max()
	return p[0] >= lo[0] && p[0] <= hi[0] &&
		p[1] >= lo[1] && p[1] <= hi[1] &&
		p[2] >= lo[2] && p[2] <= hi[2]
}

// Intersects reports whether b and o overlap, see Intersects
func (b BBox) Intersects(o BBox) bool {
	return Intersects(b, o)
}

// Intersects reports whether the closed boxes a and b overlap on all three axes
// Touching faces count as intersecting
func Intersects(a, b BBox) bool {
	for i := 0; i < 3; i++ {
		ha := a.Dimensions[i] / 2
		hb := b.Dimensions[i] / 2
		if a.Center[i]+ha < b.Center[i]-hb || a.Center[i]-ha > b.Center[i]+hb {
			return false
		}
	}
	return true
}

// Intersection returns the overlapping region of a and b
// ok is false when the boxes do not intersect
func Intersection(a, b BBox) (BBox, bool) {
	if !Intersects(a, b) {
		return BBox{}, false
	}
	lo := V3Max(a.Min(), b.Min())
	hi := V3Min(a.Max(), b.Max())
	return BBoxFromMinMax(lo, hi), true
}

// Penetration returns the minimum translation that moves a out of b
// Returns the zero vector when the boxes do not intersect
// The axis with the least overlap wins; ties resolve in X, Y, Z order
func Penetration(a, b BBox) mgl64.Vec3 {
	if !Intersects(a, b) {
		return mgl64.Vec3{}
	}

	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()

	var result mgl64.Vec3
	best := -1.0
	for i := 0; i < 3; i++ {
		// Push a toward +axis or -axis, whichever is shorter
		pos := bMax[i] - aMin[i]
		neg := aMax[i] - bMin[i]

		depth, sign := pos, 1.0
		if neg < pos {
			depth, sign = neg, -1.0
		}
		if best < 0 || depth < best {
			best = depth
			result = mgl64.Vec3{}
			result[i] = depth * sign
		}
	}
	return result
}
