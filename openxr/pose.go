// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openxr

import (
	"strconv"

	"cogentcore.org/xr/rid"
	"cogentcore.org/xr/xr"
	"cogentcore.org/xr/xrmath"
)

// Confidence is how much a located pose can be trusted.
type Confidence int32

const (
	// ConfidenceNone means the pose is not valid.
	ConfidenceNone Confidence = iota

	// ConfidenceLow means the pose is valid but not tracked,
	// for example inferred from a previous location.
	ConfidenceLow

	// ConfidenceHigh means the pose is valid and tracked.
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceNone:
		return "None"
	case ConfidenceLow:
		return "Low"
	case ConfidenceHigh:
		return "High"
	}
	return "Confidence(" + strconv.Itoa(int(c)) + ")"
}

// Pose is a located pose in the play space.
type Pose struct {
	Transform       xrmath.Transform3D
	LinearVelocity  xrmath.Vector3
	AngularVelocity xrmath.Vector3
	Confidence      Confidence
}

// poseFromLocation derives a pose from the validity and tracking
// flags of a location. The orientation sets the confidence first;
// a position without a tracked orientation lowers it.
func poseFromLocation(loc *xr.SpaceLocation, vel *xr.SpaceVelocity) Pose {
	p := Pose{Transform: xrmath.IdentityTransform()}
	flags := loc.LocationFlags
	if flags.Has(xr.SpaceLocationOrientationValid) {
		p.Transform.Basis = xrmath.BasisFromQuat(xrmath.QuatFromXR(loc.Pose.Orientation))
		if flags.Has(xr.SpaceLocationOrientationTracked) {
			p.Confidence = ConfidenceHigh
		} else {
			p.Confidence = ConfidenceLow
		}
	}
	if flags.Has(xr.SpaceLocationPositionValid) {
		p.Transform.Origin = xrmath.Vector3FromXR(loc.Pose.Position)
		if !flags.Has(xr.SpaceLocationOrientationTracked) {
			p.Confidence = ConfidenceLow
		} else if p.Confidence == ConfidenceNone {
			p.Confidence = ConfidenceHigh
		}
	}
	if vel != nil {
		if vel.VelocityFlags.Has(xr.SpaceVelocityLinearValid) {
			p.LinearVelocity = xrmath.Vector3FromXR(vel.LinearVelocity)
		}
		if vel.VelocityFlags.Has(xr.SpaceVelocityAngularValid) {
			p.AngularVelocity = xrmath.Vector3FromXR(vel.AngularVelocity)
		}
	}
	return p
}

// ActionPose returns the pose of a pose action for a tracker at the
// next frame, in the play space. The action space is created the
// first time. A pose that can not be located has [ConfidenceNone].
func (a *API) ActionPose(act, tr rid.RID) (Pose, error) {
	none := Pose{Transform: xrmath.IdentityTransform()}
	ac, at, err := a.actionState(act, tr, ActionTypePose)
	if ac == nil {
		return none, err
	}
	t := a.NextFrameTime()
	if t == 0 {
		return none, nil
	}
	if at.space == 0 {
		info := &xr.ActionSpaceCreateInfo{
			Action:            ac.handle,
			SubactionPath:     at.path,
			PoseInActionSpace: xr.IdentityPose(),
		}
		var sp xr.Space
		if r := a.runtime.CreateActionSpace(a.session, info, &sp); r.Failed() {
			a.log.Error("openxr: failed to create action space", "action", ac.name,
				"tracker", a.TrackerName(tr), "result", a.ErrorString(r))
			return none, xr.NewError("xrCreateActionSpace", r)
		}
		at.space = sp
	}
	p, r := a.locate(at.space, t)
	if r.Failed() {
		a.callFailed("xrLocateSpace", r)
		return none, xr.NewError("xrLocateSpace", r)
	}
	return p, nil
}
