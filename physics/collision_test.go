package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/zeminka/vmath"
)

func TestResolveEqualMassSwapsWithoutFriction(t *testing.T) {
	v1 := vmath.V3(1, 0, 0)
	v2 := vmath.V3(0, 0, 0)

	require.NoError(t, Resolve(1, &v1, 1, &v2, FrictionIce, 0.016))
	assert.Equal(t, vmath.V3(0, 0, 0), v1)
	assert.Equal(t, vmath.V3(1, 0, 0), v2)
}

func TestResolveFullFrictionZeroesBoth(t *testing.T) {
	masses := [][2]float64{{1, 1}, {2, 5}, {0.1, 300}}
	for _, m := range masses {
		v1 := vmath.V3(3, -2, 7)
		v2 := vmath.V3(-4, 9, 0.5)
		require.NoError(t, Resolve(m[0], &v1, m[1], &v2, FrictionGround, 0.5))
		assert.Equal(t, mgl64.Vec3{}, v1, "masses %v", m)
		assert.Equal(t, mgl64.Vec3{}, v2, "masses %v", m)
	}
}

func TestResolveUsesDampedValues(t *testing.T) {
	v1 := vmath.V3(4, 0, 0)
	v2 := vmath.V3(0, 2, 0)

	// F = 0.25^0.5 = 0.5 -> v1d=(2,0,0) v2d=(0,1,0)
	require.NoError(t, Resolve(2, &v1, 1, &v2, 0.25, 0.5))

	// v1' = (v2d-v1d)*(1/2)+v1d = (-1,0.5,0)+(2,0,0)
	assert.True(t, v1.ApproxEqual(vmath.V3(1, 0.5, 0)), "v1=%v", v1)
	// v2' = (v1d-v2d)*2+v2d = (4,-2,0)+(0,1,0)
	assert.True(t, v2.ApproxEqual(vmath.V3(4, -1, 0)), "v2=%v", v2)
}

func TestResolveZeroDtSkipsDamping(t *testing.T) {
	v1 := vmath.V3(1, 2, 3)
	v2 := vmath.V3(-1, 0, 1)
	require.NoError(t, Resolve(1, &v1, 1, &v2, 0, 0))
	assert.Equal(t, vmath.V3(-1, 0, 1), v1)
	assert.Equal(t, vmath.V3(1, 2, 3), v2)
}

func TestResolveInvalidMassIsNoOp(t *testing.T) {
	tests := []struct {
		name   string
		m1, m2 float64
	}{
		{"zero first", 0, 1},
		{"zero second", 1, 0},
		{"negative", -2, 1},
		{"nan", math.NaN(), 1},
		{"inf", 1, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v1 := vmath.V3(1, 2, 3)
			v2 := vmath.V3(4, 5, 6)
			err := Resolve(tt.m1, &v1, tt.m2, &v2, 0.5, 1)
			assert.ErrorIs(t, err, ErrInvalidMass)
			assert.Equal(t, vmath.V3(1, 2, 3), v1)
			assert.Equal(t, vmath.V3(4, 5, 6), v2)
		})
	}
}

func TestResolveNilVelocity(t *testing.T) {
	v := vmath.V3(1, 0, 0)
	assert.ErrorIs(t, Resolve(1, nil, 1, &v, 1, 1), ErrNilVelocity)
	assert.ErrorIs(t, Resolve(1, &v, 1, nil, 1, 1), ErrNilVelocity)
}

func TestExchangeConservesMomentumForEqualMasses(t *testing.T) {
	v1, v2 := vmath.V3(3, 1, -2), vmath.V3(-1, 4, 0)
	n1, n2, err := Exchange(2, v1, 2, v2, 1, 1)
	require.NoError(t, err)

	before := Momentum(2, v1).Add(Momentum(2, v2))
	after := Momentum(2, n1).Add(Momentum(2, n2))
	assert.True(t, before.ApproxEqual(after))
}
