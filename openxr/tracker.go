// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openxr

import (
	"cogentcore.org/xr/rid"
	"cogentcore.org/xr/xr"
)

// tracker is a top level user path, such as /user/hand/left, and
// the interaction profile last seen active on it.
type tracker struct {
	name    string
	path    xr.Path
	profile rid.RID

	// profilePath is the raw active profile, which may be a profile
	// that was never created.
	profilePath xr.Path
}

// noneName is the name of the invalid RID.
const noneName = "None"

// TrackerCreate creates a tracker for a top level user path. A
// tracker that exists already is returned as is.
func (a *API) TrackerCreate(name string) (rid.RID, error) {
	if a.instance == 0 {
		return rid.RID{}, ErrNotInitialized
	}
	if r, _ := a.trackers.Find(func(t *tracker) bool { return t.name == name }); r.IsValid() {
		return r, nil
	}
	var p xr.Path
	if r := a.runtime.StringToPath(a.instance, name, &p); r.Failed() {
		a.log.Error("openxr: failed to get path for tracker", "name", name, "result", a.ErrorString(r))
		return rid.RID{}, xr.NewError("xrStringToPath", r)
	}
	return a.trackers.MakeRID(&tracker{name: name, path: p}), nil
}

// TrackerName returns the top level path of a tracker, "None" for
// the invalid RID.
func (a *API) TrackerName(tr rid.RID) string {
	if !tr.IsValid() {
		return noneName
	}
	t := a.trackers.Get(tr)
	if t == nil {
		return noneName
	}
	return t.name
}

// TrackerProfile returns the interaction profile last seen active on
// the tracker.
func (a *API) TrackerProfile(tr rid.RID) rid.RID {
	if t := a.trackers.Get(tr); t != nil {
		return t.profile
	}
	return rid.RID{}
}

// TrackerCheckProfile queries the active interaction profile of the
// tracker, and notifies the interface if it changed. A zero session
// uses the session of the API.
func (a *API) TrackerCheckProfile(tr rid.RID, session xr.Session) error {
	if session == 0 {
		session = a.session
	}
	if session == 0 {
		return ErrNoSession
	}
	t := a.trackers.Get(tr)
	if t == nil {
		return ErrNotFound
	}
	var state xr.InteractionProfileState
	if r := a.runtime.GetCurrentInteractionProfile(session, t.path, &state); r.Failed() {
		a.log.Error("openxr: failed to get interaction profile", "tracker", t.name, "result", a.ErrorString(r))
		return xr.NewError("xrGetCurrentInteractionProfile", r)
	}
	if state.InteractionProfile == t.profilePath {
		return nil
	}
	t.profilePath = state.InteractionProfile
	t.profile, _ = a.profileByPath(state.InteractionProfile)
	a.log.Debug("openxr: interaction profile changed", "tracker", t.name, "profile", a.InteractionProfileName(t.profile))
	if a.iface != nil {
		a.iface.TrackerProfileChanged(tr, t.profile)
	}
	return nil
}

// TrackerFree frees a tracker. Actions keep no reference to freed
// trackers.
func (a *API) TrackerFree(tr rid.RID) {
	if !a.trackers.Owns(tr) {
		return
	}
	for _, ac := range a.actions.All() {
		for i := len(ac.trackers) - 1; i >= 0; i-- {
			if ac.trackers[i].tracker == tr {
				a.freeActionTracker(ac, i)
			}
		}
	}
	a.trackers.Free(tr)
}

// Trackers returns every tracker.
func (a *API) Trackers() []rid.RID {
	var trs []rid.RID
	for r := range a.trackers.All() {
		trs = append(trs, r)
	}
	return trs
}
