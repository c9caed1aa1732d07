package samples

import (
	"math"

	"golang.org/x/exp/constraints"
)

type Vec3[T constraints.Float] [3]T

type Vec4[T constraints.Float] [4]T

// Mat4 is a 4x4 matrix in row-major order.
type Mat4[T constraints.Float] [16]T

type Vec3f = Vec3[float32]
type Mat4f = Mat4[float32]

func (v Vec3[T]) Length() T {
	return T(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}

func (v Vec3[T]) Normalize() Vec3[T] {
	l := v.Length()
	if l == 0 {
		return v
	}
	return Vec3[T]{v[0] / l, v[1] / l, v[2] / l}
}

func Identity[T constraints.Float]() Mat4[T] {
	return Mat4[T]{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func Translate[T constraints.Float](x, y, z T) Mat4[T] {
	return Mat4[T]{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// Rotate returns a rotation of angle radians around axis.
func Rotate[T constraints.Float](angle T, axis Vec3[T]) Mat4[T] {
	a := axis.Normalize()
	x, y, z := a[0], a[1], a[2]
	s := T(math.Sin(float64(angle)))
	c := T(math.Cos(float64(angle)))
	t := 1 - c

	return Mat4[T]{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y, 0,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x, 0,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns a right-handed projection into clip space with
// depth mapped to [-1, 1].
func Perspective[T constraints.Float](fovY, aspect, near, far T) Mat4[T] {
	f := T(1 / math.Tan(float64(fovY)/2))
	return Mat4[T]{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / (near - far), 2 * far * near / (near - far),
		0, 0, -1, 0,
	}
}

func Radians[T constraints.Float](deg T) T {
	return deg * math.Pi / 180
}

func (m Mat4[T]) Mul(n Mat4[T]) Mat4[T] {
	var out Mat4[T]
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum T
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * n[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

func (m Mat4[T]) MulVec4(v Vec4[T]) Vec4[T] {
	var out Vec4[T]
	for row := 0; row < 4; row++ {
		out[row] = m[row*4]*v[0] + m[row*4+1]*v[1] + m[row*4+2]*v[2] + m[row*4+3]*v[3]
	}
	return out
}

// Project transforms a point to normalized device coordinates.
// ok is false for points on or behind the camera plane.
func (m Mat4[T]) Project(p Vec3[T]) (ndc Vec3[T], ok bool) {
	clip := m.MulVec4(Vec4[T]{p[0], p[1], p[2], 1})
	if clip[3] <= 0 {
		return Vec3[T]{}, false
	}
	return Vec3[T]{clip[0] / clip[3], clip[1] / clip[3], clip[2] / clip[3]}, true
}
