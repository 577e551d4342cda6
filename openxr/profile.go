// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openxr

import (
	"cogentcore.org/xr/rid"
	"cogentcore.org/xr/xr"
)

type binding struct {
	action rid.RID
	path   xr.Path
	name   string
}

// interactionProfile collects the bindings suggested for one
// interaction profile path.
type interactionProfile struct {
	name     string
	path     xr.Path
	bindings []binding
}

// InteractionProfileCreate creates an interaction profile, or returns
// the profile that exists for the same path.
func (a *API) InteractionProfileCreate(name string) (rid.RID, error) {
	if a.instance == 0 {
		return rid.RID{}, ErrNotInitialized
	}
	var p xr.Path
	if r := a.runtime.StringToPath(a.instance, name, &p); r.Failed() {
		a.log.Error("openxr: failed to get path for interaction profile", "name", name, "result", a.ErrorString(r))
		return rid.RID{}, xr.NewError("xrStringToPath", r)
	}
	if existing, ok := a.profileByPath(p); ok {
		return existing, nil
	}
	return a.profiles.MakeRID(&interactionProfile{name: name, path: p}), nil
}

// InteractionProfileName returns the path of an interaction profile,
// "None" for the invalid RID.
func (a *API) InteractionProfileName(profile rid.RID) string {
	if ip := a.profiles.Get(profile); ip != nil {
		return ip.name
	}
	return noneName
}

// InteractionProfileAddBinding binds an input or output path of the
// profile, such as /user/hand/left/input/trigger/value, to an action.
func (a *API) InteractionProfileAddBinding(profile, act rid.RID, path string) error {
	ip := a.profiles.Get(profile)
	if ip == nil {
		return ErrNotFound
	}
	if !a.actions.Owns(act) {
		return ErrNotFound
	}
	var p xr.Path
	if r := a.runtime.StringToPath(a.instance, path, &p); r.Failed() {
		a.log.Error("openxr: failed to get path for binding", "profile", ip.name, "path", path, "result", a.ErrorString(r))
		return xr.NewError("xrStringToPath", r)
	}
	ip.bindings = append(ip.bindings, binding{action: act, path: p, name: path})
	return nil
}

// InteractionProfileBindings returns the number of bindings of a profile.
func (a *API) InteractionProfileBindings(profile rid.RID) int {
	if ip := a.profiles.Get(profile); ip != nil {
		return len(ip.bindings)
	}
	return 0
}

// InteractionProfileClearBindings removes every binding of a profile.
func (a *API) InteractionProfileClearBindings(profile rid.RID) {
	if ip := a.profiles.Get(profile); ip != nil {
		ip.bindings = nil
	}
}

// InteractionProfileSuggestBindings suggests the bindings of a profile
// to the runtime. Bindings of freed actions are skipped. A profile
// the runtime does not know is not an error: runtimes only support
// some of the profiles an application suggests.
func (a *API) InteractionProfileSuggestBindings(profile rid.RID) error {
	ip := a.profiles.Get(profile)
	if ip == nil {
		return ErrNotFound
	}
	info := &xr.InteractionProfileSuggestedBinding{InteractionProfile: ip.path}
	for _, b := range ip.bindings {
		ac := a.actions.Get(b.action)
		if ac == nil {
			continue
		}
		info.SuggestedBindings = append(info.SuggestedBindings, xr.ActionSuggestedBinding{Action: ac.handle, Binding: b.path})
	}
	r := a.runtime.SuggestInteractionProfileBindings(a.instance, info)
	switch {
	case r == xr.ErrorPathUnsupported:
		a.log.Debug("openxr: interaction profile is not supported by the runtime", "profile", ip.name)
		return nil
	case r.Failed():
		a.log.Error("openxr: failed to suggest bindings", "profile", ip.name, "result", a.ErrorString(r))
		return xr.NewError("xrSuggestInteractionProfileBindings", r)
	}
	return nil
}

// InteractionProfileFree frees an interaction profile.
func (a *API) InteractionProfileFree(profile rid.RID) {
	a.profiles.Free(profile)
}

func (a *API) profileByPath(p xr.Path) (rid.RID, bool) {
	if p == xr.NullPath {
		return rid.RID{}, false
	}
	return a.profiles.Find(func(ip *interactionProfile) bool { return ip.path == p })
}
