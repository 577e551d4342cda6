// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openxr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cogentcore.org/xr/xr"
	"cogentcore.org/xr/xrmath"
)

func TestPoseFromLocation(t *testing.T) {
	const (
		ov = xr.SpaceLocationOrientationValid
		pv = xr.SpaceLocationPositionValid
		ot = xr.SpaceLocationOrientationTracked
		pt = xr.SpaceLocationPositionTracked
	)
	tests := []struct {
		flags xr.SpaceLocationFlags
		want  Confidence
	}{
		{0, ConfidenceNone},
		{ov | pv | ot | pt, ConfidenceHigh},
		{ov | ot, ConfidenceHigh},
		{ov, ConfidenceLow},
		{ov | pv, ConfidenceLow},
		{ov | pv | pt, ConfidenceLow},
		{pv, ConfidenceLow},
		{pv | ot, ConfidenceHigh},
		{ot | pt, ConfidenceNone},
	}
	for _, tt := range tests {
		loc := &xr.SpaceLocation{LocationFlags: tt.flags, Pose: xr.Posef{
			Orientation: xr.Quaternionf{W: 1},
			Position:    xr.Vector3f{X: 1, Y: 2, Z: 3},
		}}
		p := poseFromLocation(loc, nil)
		assert.Equal(t, tt.want, p.Confidence, "flags %b", tt.flags)
		if tt.flags.Has(pv) {
			assert.Equal(t, xrmath.Vec3(1, 2, 3), p.Transform.Origin)
		} else {
			assert.Equal(t, xrmath.Vector3{}, p.Transform.Origin)
		}
	}
}

func TestPoseVelocity(t *testing.T) {
	loc := &xr.SpaceLocation{LocationFlags: xr.SpaceLocationAll, Pose: xr.IdentityPose()}
	vel := &xr.SpaceVelocity{
		VelocityFlags:   xr.SpaceVelocityLinearValid,
		LinearVelocity:  xr.Vector3f{X: 1},
		AngularVelocity: xr.Vector3f{Y: 2},
	}
	p := poseFromLocation(loc, vel)
	assert.Equal(t, xrmath.Vec3(1, 0, 0), p.LinearVelocity)
	assert.Equal(t, xrmath.Vector3{}, p.AngularVelocity, "angular velocity not valid")
	assert.True(t, p.Transform.IsApprox(xrmath.IdentityTransform(), 1e-6))
}

func TestConfidenceString(t *testing.T) {
	assert.Equal(t, "None", ConfidenceNone.String())
	assert.Equal(t, "High", ConfidenceHigh.String())
	assert.Equal(t, "Confidence(7)", Confidence(7).String())
}

func TestHeadCenter(t *testing.T) {
	e := newEnv(t)
	e.init(t)
	assert.Equal(t, ConfidenceNone, e.api.HeadCenter().Confidence, "not running")

	e.states(t, xr.SessionStateReady, xr.SessionStateSynchronized, xr.SessionStateVisible, xr.SessionStateFocused)
	assert.Equal(t, ConfidenceNone, e.api.HeadCenter().Confidence, "no frame yet")

	e.frame(t)
	p := e.api.HeadCenter()
	assert.Equal(t, ConfidenceHigh, p.Confidence)
	assert.InDelta(t, 1.6, p.Transform.Origin.Y, 1e-6)

	e.rt.SetViewLocation(simulatorLocation(xr.SpaceLocationOrientationValid))
	assert.Equal(t, ConfidenceLow, e.api.HeadCenter().Confidence)
	e.rt.SetViewLocation(simulatorLocation(0))
	assert.Equal(t, ConfidenceNone, e.api.HeadCenter().Confidence)
	assert.Equal(t, ConfidenceNone, e.api.HeadCenter().Confidence)
	assert.Equal(t, 1, countLogs(e, "head space location not valid"))
}
