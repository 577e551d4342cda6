// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xrmath

import "github.com/chewxy/math32"

// Basis is a 3x3 matrix stored as rows, used as the rotation part
// of a [Transform3D]. The columns are the x, y and z axes.
type Basis struct {
	Rows [3]Vector3
}

// IdentityBasis returns the basis with no rotation.
func IdentityBasis() Basis {
	return Basis{Rows: [3]Vector3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// BasisFromQuat returns the rotation matrix of the given quaternion.
// The quaternion does not need to be normalized, but must not be zero.
func BasisFromQuat(q Quat) Basis {
	d := q.LengthSq()
	if d == 0 {
		return IdentityBasis()
	}
	s := 2 / d
	xs, ys, zs := q.X*s, q.Y*s, q.Z*s
	wx, wy, wz := q.W*xs, q.W*ys, q.W*zs
	xx, xy, xz := q.X*xs, q.X*ys, q.X*zs
	yy, yz, zz := q.Y*ys, q.Y*zs, q.Z*zs
	return Basis{Rows: [3]Vector3{
		{1 - (yy + zz), xy - wz, xz + wy},
		{xy + wz, 1 - (xx + zz), yz - wx},
		{xz - wy, yz + wx, 1 - (xx + yy)},
	}}
}

// Column returns column i of the matrix, the direction of axis i.
func (b Basis) Column(i int) Vector3 {
	switch i {
	case 0:
		return Vector3{b.Rows[0].X, b.Rows[1].X, b.Rows[2].X}
	case 1:
		return Vector3{b.Rows[0].Y, b.Rows[1].Y, b.Rows[2].Y}
	}
	return Vector3{b.Rows[0].Z, b.Rows[1].Z, b.Rows[2].Z}
}

// Xform returns v transformed by the matrix.
func (b Basis) Xform(v Vector3) Vector3 {
	return Vector3{b.Rows[0].Dot(v), b.Rows[1].Dot(v), b.Rows[2].Dot(v)}
}

// Mul returns the matrix product b * o.
func (b Basis) Mul(o Basis) Basis {
	var r Basis
	for i := range 3 {
		r.Rows[i] = Vector3{
			b.Rows[i].Dot(o.Column(0)),
			b.Rows[i].Dot(o.Column(1)),
			b.Rows[i].Dot(o.Column(2)),
		}
	}
	return r
}

// Transposed returns the transpose, which is the inverse of an
// orthonormal rotation.
func (b Basis) Transposed() Basis {
	return Basis{Rows: [3]Vector3{b.Column(0), b.Column(1), b.Column(2)}}
}

// Quat returns the rotation of an orthonormal basis as a quaternion.
func (b Basis) Quat() Quat {
	m := b.Rows
	trace := m[0].X + m[1].Y + m[2].Z
	var q Quat
	switch {
	case trace > 0:
		s := 0.5 / math32.Sqrt(trace+1)
		q.W = 0.25 / s
		q.X = (m[2].Y - m[1].Z) * s
		q.Y = (m[0].Z - m[2].X) * s
		q.Z = (m[1].X - m[0].Y) * s
	case m[0].X > m[1].Y && m[0].X > m[2].Z:
		s := 2 * math32.Sqrt(1+m[0].X-m[1].Y-m[2].Z)
		q.W = (m[2].Y - m[1].Z) / s
		q.X = 0.25 * s
		q.Y = (m[0].Y + m[1].X) / s
		q.Z = (m[0].Z + m[2].X) / s
	case m[1].Y > m[2].Z:
		s := 2 * math32.Sqrt(1+m[1].Y-m[0].X-m[2].Z)
		q.W = (m[0].Z - m[2].X) / s
		q.X = (m[0].Y + m[1].X) / s
		q.Y = 0.25 * s
		q.Z = (m[1].Z + m[2].Y) / s
	default:
		s := 2 * math32.Sqrt(1+m[2].Z-m[0].X-m[1].Y)
		q.W = (m[1].X - m[0].Y) / s
		q.X = (m[0].Z + m[2].X) / s
		q.Y = (m[1].Z + m[2].Y) / s
		q.Z = 0.25 * s
	}
	return q
}

// IsApprox returns true if every element of b is within tol of o.
func (b Basis) IsApprox(o Basis, tol float32) bool {
	for i := range 3 {
		if !b.Rows[i].IsApprox(o.Rows[i], tol) {
			return false
		}
	}
	return true
}
