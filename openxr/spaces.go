// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openxr

import (
	"cogentcore.org/xr/xr"
	"cogentcore.org/xr/xrmath"
)

// locate locates space in the play space at the given time, with
// velocities.
func (a *API) locate(space xr.Space, time xr.Time) (Pose, xr.Result) {
	vel := &xr.SpaceVelocity{}
	loc := &xr.SpaceLocation{Next: []xr.Chained{vel}}
	if r := a.runtime.LocateSpace(space, a.playSpace, time, loc); r.Failed() {
		return Pose{Transform: xrmath.IdentityTransform()}, r
	}
	return poseFromLocation(loc, vel), xr.Success
}

func (a *API) createReferenceSpace(t xr.ReferenceSpaceType) (xr.Space, bool) {
	if !a.catalog.IsReferenceSpaceSupported(t) {
		a.log.Error("openxr: reference space is not supported", "type", t.String())
		return 0, false
	}
	info := &xr.ReferenceSpaceCreateInfo{ReferenceSpaceType: t, PoseInReferenceSpace: xr.IdentityPose()}
	var sp xr.Space
	if r := a.runtime.CreateReferenceSpace(a.session, info, &sp); r.Failed() {
		a.log.Error("openxr: failed to create reference space", "type", t.String(), "result", a.ErrorString(r))
		return 0, false
	}
	return sp, true
}

// setupSpaces creates the play space of the configured type and the
// view space.
func (a *API) setupSpaces() bool {
	play, ok := a.createReferenceSpace(a.opts.ReferenceSpace)
	if !ok {
		return false
	}
	a.playSpace = play
	view, ok := a.createReferenceSpace(xr.ReferenceSpaceTypeView)
	if !ok {
		return false
	}
	a.viewSpace = view
	return true
}

// HeadCenter returns the pose of the head at the next frame. A
// change of the confidence is logged once.
func (a *API) HeadCenter() Pose {
	none := Pose{Transform: xrmath.IdentityTransform()}
	if !a.running {
		return none
	}
	t := a.NextFrameTime()
	if t == 0 {
		return none
	}
	p, r := a.locate(a.viewSpace, t)
	if r.Failed() {
		a.log.Error("openxr.HeadCenter: failed to locate view space in play space", "result", a.ErrorString(r))
		return none
	}
	if p.Confidence != a.headConfidence {
		a.headConfidence = p.Confidence
		if p.Confidence == ConfidenceNone {
			a.log.Warn("openxr: head space location not valid (check tracking?)")
		} else {
			a.log.Debug("openxr: head space location valid", "confidence", p.Confidence.String())
		}
	}
	return p
}

// destroyActionSpaces destroys the action spaces that were created
// lazily for pose actions. They belong to the session.
func (a *API) destroyActionSpaces() {
	for _, ac := range a.actions.All() {
		a.freeActionSpaces(ac)
	}
}

func (a *API) freeActionSpaces(ac *action) {
	for i := range ac.trackers {
		at := &ac.trackers[i]
		if at.space == 0 {
			continue
		}
		if r := a.runtime.DestroySpace(at.space); r.Failed() {
			a.log.Error("openxr: failed to destroy action space", "action", ac.name, "result", a.ErrorString(r))
		}
		at.space = 0
	}
}
