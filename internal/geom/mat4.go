// File: mat4.go
// Role: fixed 4x4 homogeneous transform, specialized from the dense
// row-major matrix kernels for the axis-kinematics hot path.
//
// Contract:
//   - Row-major, 16 float64 in a flat array, exactly as matrix.Dense stores
//     its backing slice, but with compile-time-fixed shape (no dimension
//     validation on every op).
//   - Composition order matches Instrument.GetTransform: Mul(a,b) applies b
//     first, then a (a.Mul(b) == a*b in the usual matrix sense).

package geom

import "math"

// Mat4 is a row-major 4x4 homogeneous transform.
type Mat4 [16]float64

// Identity4 returns the 4x4 identity transform.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// at returns element (row, col) of a row-major 4x4.
func (m Mat4) at(row, col int) float64 { return m[row*4+col] }

// Mul returns m*o (o applied first when used to transform a point: (m.Mul(o)).Apply(p) == m.Apply(o.Apply(p))).
func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m.at(row, k) * o.at(k, col)
			}
			r[row*4+col] = sum
		}
	}
	return r
}

// Apply transforms a floor-plane point (z=0, w=1) by m and returns the
// resulting XY pair.
func (m Mat4) Apply(p Vec2) Vec2 {
	x := m.at(0, 0)*p.X + m.at(0, 1)*p.Y + m.at(0, 3)
	y := m.at(1, 0)*p.X + m.at(1, 1)*p.Y + m.at(1, 3)
	return Vec2{x, y}
}

// TranslateXY returns a transform translating by (dx, dy) in the floor plane.
func TranslateXY(dx, dy float64) Mat4 {
	m := Identity4()
	m[0*4+3] = dx
	m[1*4+3] = dy
	return m
}

// RotateZ returns a transform rotating by theta radians about the Z axis
// (the instrument's vertical axis, the only rotation axis this planar
// planner ever composes).
func RotateZ(theta float64) Mat4 {
	s, c := math.Sincos(theta)
	m := Identity4()
	m[0*4+0] = c
	m[0*4+1] = -s
	m[1*4+0] = s
	m[1*4+1] = c
	return m
}
