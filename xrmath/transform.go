// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xrmath

import "cogentcore.org/xr/xr"

// Transform3D is a rigid transform: a rotation basis and an origin.
type Transform3D struct {
	Basis  Basis
	Origin Vector3
}

// IdentityTransform returns the transform that changes nothing.
func IdentityTransform() Transform3D {
	return Transform3D{Basis: IdentityBasis()}
}

// TransformFromPose converts a protocol pose into a transform.
func TransformFromPose(p xr.Posef) Transform3D {
	return Transform3D{
		Basis:  BasisFromQuat(QuatFromXR(p.Orientation)),
		Origin: Vector3FromXR(p.Position),
	}
}

// Pose returns the protocol pose of the transform, which must
// have an orthonormal basis.
func (t Transform3D) Pose() xr.Posef {
	return xr.Posef{
		Orientation: t.Basis.Quat().Normalized().XR(),
		Position:    t.Origin.XR(),
	}
}

// Xform returns the point v transformed.
func (t Transform3D) Xform(v Vector3) Vector3 {
	return t.Basis.Xform(v).Add(t.Origin)
}

// Mul returns the transform that applies o and then t.
func (t Transform3D) Mul(o Transform3D) Transform3D {
	return Transform3D{
		Basis:  t.Basis.Mul(o.Basis),
		Origin: t.Xform(o.Origin),
	}
}

// Inverse returns the inverse of a rigid transform.
func (t Transform3D) Inverse() Transform3D {
	inv := t.Basis.Transposed()
	return Transform3D{
		Basis:  inv,
		Origin: inv.Xform(t.Origin.Negate()),
	}
}

// IsApprox returns true if t and o are equal within tol.
func (t Transform3D) IsApprox(o Transform3D, tol float32) bool {
	return t.Basis.IsApprox(o.Basis, tol) && t.Origin.IsApprox(o.Origin, tol)
}
