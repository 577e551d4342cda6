// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xrmath

import (
	"fmt"

	"cogentcore.org/xr/xr"
	"github.com/chewxy/math32"
)

// Quat is a quaternion with X, Y, Z and W components.
// Unit quaternions represent rotations.
type Quat struct {
	X float32
	Y float32
	Z float32
	W float32
}

// NewQuat returns a new quaternion from the specified components.
func NewQuat(x, y, z, w float32) Quat {
	return Quat{X: x, Y: y, Z: z, W: w}
}

// IdentityQuat returns the quaternion of no rotation.
func IdentityQuat() Quat {
	return Quat{W: 1}
}

// NewQuatAxisAngle returns a new quaternion from given axis and angle rotation (radians).
// The axis must be normalized.
func NewQuatAxisAngle(axis Vector3, angle float32) Quat {
	half := angle / 2
	s := math32.Sin(half)
	return Quat{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: math32.Cos(half)}
}

// QuatFromXR converts a protocol quaternion.
func QuatFromXR(q xr.Quaternionf) Quat {
	return Quat{X: q.X, Y: q.Y, Z: q.Z, W: q.W}
}

// XR returns the protocol representation of the quaternion.
func (q Quat) XR() xr.Quaternionf {
	return xr.Quaternionf{X: q.X, Y: q.Y, Z: q.Z, W: q.W}
}

func (q Quat) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", q.X, q.Y, q.Z, q.W)
}

// IsIdentity returns if this is an identity quaternion.
func (q Quat) IsIdentity() bool {
	return q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 1
}

// IsNil returns true if all values are 0 (uninitialized).
func (q Quat) IsNil() bool {
	return q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 0
}

// Dot returns the dot product of this quaternion with other.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// LengthSq returns this quaternion's length squared.
func (q Quat) LengthSq() float32 {
	return q.Dot(q)
}

// Length returns the length of this quaternion.
func (q Quat) Length() float32 {
	return math32.Sqrt(q.LengthSq())
}

// Normalized returns the quaternion scaled to unit length.
// A zero quaternion normalizes to the identity.
func (q Quat) Normalized() Quat {
	l := q.Length()
	if l == 0 {
		return IdentityQuat()
	}
	l = 1 / l
	return Quat{q.X * l, q.Y * l, q.Z * l, q.W * l}
}

// Conjugate returns the conjugate of this quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// Inverse returns the inverse rotation of this quaternion.
func (q Quat) Inverse() Quat {
	return q.Conjugate().Normalized()
}

// Mul returns the product q * b, the rotation b followed by q.
func (q Quat) Mul(b Quat) Quat {
	return Quat{
		X: q.X*b.W + q.W*b.X + q.Y*b.Z - q.Z*b.Y,
		Y: q.Y*b.W + q.W*b.Y + q.Z*b.X - q.X*b.Z,
		Z: q.Z*b.W + q.W*b.Z + q.X*b.Y - q.Y*b.X,
		W: q.W*b.W - q.X*b.X - q.Y*b.Y - q.Z*b.Z,
	}
}

// Rotate returns v rotated by this quaternion, which must be normalized.
func (q Quat) Rotate(v Vector3) Vector3 {
	u := Vector3{q.X, q.Y, q.Z}
	t := u.Cross(v).MulScalar(2)
	return v.Add(t.MulScalar(q.W)).Add(u.Cross(t))
}

// Slerp returns the spherically linear interpolation from this
// quaternion to other using t.
func (q Quat) Slerp(other Quat, t float32) Quat {
	if t == 0 {
		return q
	}
	if t == 1 {
		return other
	}
	cosHalfTheta := q.Dot(other)
	if cosHalfTheta < 0 {
		other = Quat{-other.X, -other.Y, -other.Z, -other.W}
		cosHalfTheta = -cosHalfTheta
	}
	if cosHalfTheta >= 1.0 {
		return q
	}
	sqrSinHalfTheta := 1.0 - cosHalfTheta*cosHalfTheta
	if sqrSinHalfTheta < 0.001 {
		s := 1 - t
		return Quat{
			s*q.X + t*other.X,
			s*q.Y + t*other.Y,
			s*q.Z + t*other.Z,
			s*q.W + t*other.W,
		}.Normalized()
	}
	sinHalfTheta := math32.Sqrt(sqrSinHalfTheta)
	halfTheta := math32.Atan2(sinHalfTheta, cosHalfTheta)
	ratioA := math32.Sin((1-t)*halfTheta) / sinHalfTheta
	ratioB := math32.Sin(t*halfTheta) / sinHalfTheta
	return Quat{
		q.X*ratioA + other.X*ratioB,
		q.Y*ratioA + other.Y*ratioB,
		q.Z*ratioA + other.Z*ratioB,
		q.W*ratioA + other.W*ratioB,
	}
}

// IsApprox returns true if every component of q is within tol of other.
func (q Quat) IsApprox(other Quat, tol float32) bool {
	return math32.Abs(q.X-other.X) <= tol && math32.Abs(q.Y-other.Y) <= tol &&
		math32.Abs(q.Z-other.Z) <= tol && math32.Abs(q.W-other.W) <= tol
}
