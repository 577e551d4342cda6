// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xrmath provides the float32 geometry used to express
// XR poses to the render layer: vectors, quaternions, rotation
// bases, rigid transforms and projection matrices.
package xrmath

import (
	"fmt"

	"cogentcore.org/xr/xr"
	"github.com/chewxy/math32"
)

// Vector2 is a 2D vector.
type Vector2 struct {
	X float32
	Y float32
}

// Vec2 returns a new [Vector2] with the given components.
func Vec2(x, y float32) Vector2 {
	return Vector2{X: x, Y: y}
}

// Vector2FromXR converts a protocol vector.
func Vector2FromXR(v xr.Vector2f) Vector2 {
	return Vector2{X: v.X, Y: v.Y}
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Length returns the length of the vector.
func (v Vector2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Vector3 is a 3D vector.
type Vector3 struct {
	X float32
	Y float32
	Z float32
}

// Vec3 returns a new [Vector3] with the given components.
func Vec3(x, y, z float32) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Vector3FromXR converts a protocol vector.
func Vector3FromXR(v xr.Vector3f) Vector3 {
	return Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

// XR returns the protocol representation of the vector.
func (v Vector3) XR() xr.Vector3f {
	return xr.Vector3f{X: v.X, Y: v.Y, Z: v.Z}
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// MulScalar returns v * s.
func (v Vector3) MulScalar(s float32) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Negate returns -v.
func (v Vector3) Negate() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product of v and o.
func (v Vector3) Dot(o Vector3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of v and o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the length of the vector.
func (v Vector3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normal returns the vector scaled to unit length,
// or the zero vector if v has no length.
func (v Vector3) Normal() Vector3 {
	l := v.Length()
	if l == 0 {
		return Vector3{}
	}
	return v.MulScalar(1 / l)
}

// IsApprox returns true if every component of v is within tol of o.
func (v Vector3) IsApprox(o Vector3, tol float32) bool {
	return math32.Abs(v.X-o.X) <= tol && math32.Abs(v.Y-o.Y) <= tol && math32.Abs(v.Z-o.Z) <= tol
}
