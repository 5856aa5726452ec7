package vec

import "math"

// Mat4 is a row-major 4x4 transform: the upper-left 3x3 block is rotation,
// column 3 (rows 0-2) is translation, matching the teacher's Matrix4x4
// layout widened to float64.
type Mat4 [4][4]float64

func IdentityMat4() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m[i][i] = 1
	}
	return m
}

// FromQuatPos builds the homogeneous transform for a rotation + translation.
func FromQuatPos(q Quat, pos Vec3) Mat4 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	m := IdentityMat4()
	m[0][0] = 1 - 2*(y*y+z*z)
	m[0][1] = 2 * (x*y - z*w)
	m[0][2] = 2 * (x*z + y*w)
	m[1][0] = 2 * (x*y + z*w)
	m[1][1] = 1 - 2*(x*x+z*z)
	m[1][2] = 2 * (y*z - x*w)
	m[2][0] = 2 * (x*z - y*w)
	m[2][1] = 2 * (y*z + x*w)
	m[2][2] = 1 - 2*(x*x+y*y)
	m[0][3] = pos[0]
	m[1][3] = pos[1]
	m[2][3] = pos[2]
	return m
}

// ToQuatPos decomposes a rigid transform back into rotation and translation,
// assuming no scale/shear is present in m.
func (m Mat4) ToQuatPos() (Quat, Vec3) {
	pos := Vec3{m[0][3], m[1][3], m[2][3]}

	tr := m[0][0] + m[1][1] + m[2][2]
	var q Quat
	if tr > 0 {
		s := math.Sqrt(tr+1) * 2
		q[3] = s / 4
		q[0] = (m[2][1] - m[1][2]) / s
		q[1] = (m[0][2] - m[2][0]) / s
		q[2] = (m[1][0] - m[0][1]) / s
	} else if m[0][0] > m[1][1] && m[0][0] > m[2][2] {
		s := math.Sqrt(1+m[0][0]-m[1][1]-m[2][2]) * 2
		q[3] = (m[2][1] - m[1][2]) / s
		q[0] = s / 4
		q[1] = (m[0][1] + m[1][0]) / s
		q[2] = (m[0][2] + m[2][0]) / s
	} else if m[1][1] > m[2][2] {
		s := math.Sqrt(1+m[1][1]-m[0][0]-m[2][2]) * 2
		q[3] = (m[0][2] - m[2][0]) / s
		q[0] = (m[0][1] + m[1][0]) / s
		q[1] = s / 4
		q[2] = (m[1][2] + m[2][1]) / s
	} else {
		s := math.Sqrt(1+m[2][2]-m[0][0]-m[1][1]) * 2
		q[3] = (m[1][0] - m[0][1]) / s
		q[0] = (m[0][2] + m[2][0]) / s
		q[1] = (m[1][2] + m[2][1]) / s
		q[2] = s / 4
	}
	return q.Normalize(), pos
}

func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

func (m Mat4) Col3(col int) Vec3 {
	return Vec3{m[0][col], m[1][col], m[2][col]}
}
