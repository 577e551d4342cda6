// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xrmath

import (
	"cogentcore.org/xr/xr"
	"github.com/chewxy/math32"
)

// Projection is a 4x4 column-major projection matrix.
type Projection [16]float32

// DepthRange selects the clip space depth convention
// of a graphics API.
type DepthRange int32

const (
	// DepthMinusOneToOne is the OpenGL clip space, z in [-1, 1].
	DepthMinusOneToOne DepthRange = iota

	// DepthZeroToOne is the Vulkan and Direct3D clip space, z in [0, 1].
	DepthZeroToOne
)

// ProjectionFromFov returns an asymmetric perspective projection
// for the given field of view. A far plane at or before the near
// plane gives an infinite far plane.
func ProjectionFromFov(fov xr.Fovf, near, far float32, depth DepthRange) Projection {
	tanLeft := math32.Tan(fov.AngleLeft)
	tanRight := math32.Tan(fov.AngleRight)
	tanDown := math32.Tan(fov.AngleDown)
	tanUp := math32.Tan(fov.AngleUp)

	tanWidth := tanRight - tanLeft
	tanHeight := tanUp - tanDown

	var offsetZ float32
	if depth == DepthMinusOneToOne {
		offsetZ = near
	}

	var m Projection
	m[0] = 2 / tanWidth
	m[8] = (tanRight + tanLeft) / tanWidth
	m[5] = 2 / tanHeight
	m[9] = (tanUp + tanDown) / tanHeight
	m[11] = -1
	if far <= near {
		m[10] = -1
		m[14] = -(near + offsetZ)
	} else {
		m[10] = -(far + offsetZ) / (far - near)
		m[14] = -(far * (near + offsetZ)) / (far - near)
	}
	return m
}

// MulPoint returns the point v projected into normalized device
// coordinates, including the perspective divide.
func (m Projection) MulPoint(v Vector3) Vector3 {
	x := m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]
	y := m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]
	z := m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]
	w := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	if w == 0 {
		return Vector3{x, y, z}
	}
	return Vector3{x / w, y / w, z / w}
}
