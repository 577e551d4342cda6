// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openxr

import (
	"cogentcore.org/xr/rid"
	"cogentcore.org/xr/xr"
)

// actionSet is a named group of actions that is attached to the
// session and synced as a unit.
type actionSet struct {
	name     string
	handle   xr.ActionSet
	priority uint32
	attached bool
}

// ActionSetCreate creates an action set. Names that do not fit the
// protocol buffers are truncated.
func (a *API) ActionSetCreate(name, localizedName string, priority uint32) (rid.RID, error) {
	if a.instance == 0 {
		return rid.RID{}, ErrNotInitialized
	}
	info := &xr.ActionSetCreateInfo{
		ActionSetName:          xr.Truncate(name, xr.MaxActionSetNameSize),
		LocalizedActionSetName: xr.Truncate(localizedName, xr.MaxLocalizedActionSetNameSize),
		Priority:               priority,
	}
	var h xr.ActionSet
	if r := a.runtime.CreateActionSet(a.instance, info, &h); r.Failed() {
		a.log.Error("openxr: failed to create action set", "name", name, "result", a.ErrorString(r))
		return rid.RID{}, xr.NewError("xrCreateActionSet", r)
	}
	return a.actionSets.MakeRID(&actionSet{name: name, handle: h, priority: priority}), nil
}

// ActionSetName returns the name of an action set, "None" for the
// invalid RID.
func (a *API) ActionSetName(set rid.RID) string {
	if as := a.actionSets.Get(set); as != nil {
		return as.name
	}
	return noneName
}

// ActionSetAttached returns whether the action set is attached to
// the session.
func (a *API) ActionSetAttached(set rid.RID) bool {
	as := a.actionSets.Get(set)
	return as != nil && as.attached
}

// ActionSetAttach attaches one action set to the session. Attaching
// an attached set does nothing. Runtimes accept a single attach per
// session; use [API.ActionSetsAttach] for more than one set.
func (a *API) ActionSetAttach(set rid.RID) error {
	return a.ActionSetsAttach([]rid.RID{set})
}

// ActionSetsAttach attaches the given action sets to the session in
// one call. Sets that are attached already are skipped.
func (a *API) ActionSetsAttach(sets []rid.RID) error {
	if a.session == 0 {
		return ErrNoSession
	}
	var attach []*actionSet
	for _, s := range sets {
		as := a.actionSets.Get(s)
		if as == nil {
			return ErrNotFound
		}
		if !as.attached {
			attach = append(attach, as)
		}
	}
	if len(attach) == 0 {
		return nil
	}
	info := &xr.SessionActionSetsAttachInfo{ActionSets: make([]xr.ActionSet, len(attach))}
	for i, as := range attach {
		info.ActionSets[i] = as.handle
	}
	if r := a.runtime.AttachSessionActionSets(a.session, info); r.Failed() {
		a.log.Error("openxr: failed to attach action sets", "count", len(attach), "result", a.ErrorString(r))
		return xr.NewError("xrAttachSessionActionSets", r)
	}
	for _, as := range attach {
		as.attached = true
	}
	return nil
}

// ActionSetFree destroys an action set together with its actions.
func (a *API) ActionSetFree(set rid.RID) {
	as := a.actionSets.Get(set)
	if as == nil {
		return
	}
	var children []rid.RID
	for r, ac := range a.actions.All() {
		if ac.set == set {
			children = append(children, r)
		}
	}
	for _, r := range children {
		a.freeActionSpaces(a.actions.Get(r))
		a.actions.Free(r)
	}
	if r := a.runtime.DestroyActionSet(as.handle); r.Failed() {
		a.log.Error("openxr: failed to destroy action set", "name", as.name, "result", a.ErrorString(r))
	}
	a.actionSets.Free(set)
}

// SyncActionSets syncs the state of every action in the given sets
// for this frame. Sets that do not resolve are skipped. A session
// that is not focused syncs without error, but reports its actions
// inactive.
func (a *API) SyncActionSets(sets []rid.RID) error {
	if a.session == 0 {
		return ErrNoSession
	}
	if !a.running {
		return ErrNotRunning
	}
	var active []xr.ActiveActionSet
	for _, s := range sets {
		if as := a.actionSets.Get(s); as != nil {
			active = append(active, xr.ActiveActionSet{ActionSet: as.handle})
		}
	}
	if len(active) == 0 {
		return ErrNoActiveSets
	}
	if r := a.runtime.SyncActions(a.session, &xr.ActionsSyncInfo{ActiveActionSets: active}); r.Failed() {
		a.callFailed("xrSyncActions", r)
		return xr.NewError("xrSyncActions", r)
	}
	return nil
}
