package vec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec3Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	assert.Equal(t, Vec3{5, 7, 9}, a.Add(b))
	assert.Equal(t, Vec3{-3, -3, -3}, a.Sub(b))
	assert.InDelta(t, 32, a.Dot(b), 1e-12)
	assert.Equal(t, Vec3{-3, 6, -3}, a.Cross(b))
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 4)
	n := v.Normalize()
	assert.InDelta(t, 1, n.Norm(), 1e-12)

	zero := Vec3{}
	require.True(t, zero.Normalize() == Vec3{})
}

func TestQuatRotateAxisAligned(t *testing.T) {
	q := QuatFromAxisAngle(NewVec3(0, 0, 1), math.Pi/2)
	rotated := q.Rotate(NewVec3(1, 0, 0))
	assert.InDelta(t, 0, rotated.X(), 1e-9)
	assert.InDelta(t, 1, rotated.Y(), 1e-9)
	assert.InDelta(t, 0, rotated.Z(), 1e-9)
}

func TestQuatRoundTripThroughMatrix(t *testing.T) {
	q := QuatFromAxisAngle(NewVec3(1, 1, 0), 0.7).Normalize()
	pos := NewVec3(2, -1, 5)

	m := FromQuatPos(q, pos)
	gotQ, gotPos := m.ToQuatPos()

	assert.InDelta(t, pos.X(), gotPos.X(), 1e-9)
	assert.InDelta(t, pos.Y(), gotPos.Y(), 1e-9)
	assert.InDelta(t, pos.Z(), gotPos.Z(), 1e-9)

	if gotQ.Dot(q) < 0 {
		gotQ = Quat{-gotQ[0], -gotQ[1], -gotQ[2], -gotQ[3]}
	}
	assert.InDelta(t, q[0], gotQ[0], 1e-9)
	assert.InDelta(t, q[1], gotQ[1], 1e-9)
	assert.InDelta(t, q[2], gotQ[2], 1e-9)
	assert.InDelta(t, q[3], gotQ[3], 1e-9)
}

func TestMat4ChainComposition(t *testing.T) {
	parent := FromQuatPos(QuatFromAxisAngle(NewVec3(0, 0, 1), math.Pi/2), NewVec3(1, 0, 0))
	child := FromQuatPos(IdentityQuat(), NewVec3(1, 0, 0))

	world := parent.Mul(child)
	p := world.Col3(3)
	assert.InDelta(t, 1, p.X(), 1e-9)
	assert.InDelta(t, 1, p.Y(), 1e-9)
	assert.InDelta(t, 0, p.Z(), 1e-9)
}
