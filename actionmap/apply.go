// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package actionmap

import (
	"fmt"
	"log/slog"

	"cogentcore.org/xr/openxr"
	"cogentcore.org/xr/rid"
)

// Binder is the part of [openxr.API] an action map is applied to.
type Binder interface {
	IsExtensionEnabled(name string) bool
	TrackerCreate(name string) (rid.RID, error)
	ActionSetCreate(name, localizedName string, priority uint32) (rid.RID, error)
	ActionSetsAttach(sets []rid.RID) error
	ActionSetFree(set rid.RID)
	ActionCreate(set rid.RID, name, localizedName string, t openxr.ActionType, trackers []rid.RID) (rid.RID, error)
	InteractionProfileCreate(name string) (rid.RID, error)
	InteractionProfileAddBinding(profile, act rid.RID, path string) error
	InteractionProfileSuggestBindings(profile rid.RID) error
	InteractionProfileFree(profile rid.RID)
}

var _ Binder = (*openxr.API)(nil)

// Bound is an action map applied to an API: the handles of everything
// it created.
type Bound struct {
	api      Binder
	sets     map[string]rid.RID
	order    []rid.RID
	actions  map[string]rid.RID
	trackers map[string]rid.RID
	profiles map[string]rid.RID
}

// Apply creates the trackers, action sets, actions and interaction
// profiles of the map and suggests the bindings of every profile.
// Profiles that need an extension that is not enabled are skipped.
// On error everything created so far is freed.
func (m *ActionMap) Apply(api Binder) (*Bound, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	b := &Bound{
		api:      api,
		sets:     map[string]rid.RID{},
		actions:  map[string]rid.RID{},
		trackers: map[string]rid.RID{},
		profiles: map[string]rid.RID{},
	}
	if err := b.apply(m); err != nil {
		b.Free()
		return nil, err
	}
	return b, nil
}

func (b *Bound) apply(m *ActionMap) error {
	for _, set := range m.ActionSets {
		sr, err := b.api.ActionSetCreate(set.Name, orName(set.LocalizedName, set.Name), set.Priority)
		if err != nil {
			return fmt.Errorf("actionmap: create action set %q: %w", set.Name, err)
		}
		b.sets[set.Name] = sr
		b.order = append(b.order, sr)
		for _, act := range set.Actions {
			trackers := make([]rid.RID, 0, len(act.TopLevelPaths))
			for _, top := range act.TopLevelPaths {
				tr, err := b.tracker(top)
				if err != nil {
					return err
				}
				trackers = append(trackers, tr)
			}
			ar, err := b.api.ActionCreate(sr, act.Name, orName(act.LocalizedName, act.Name), act.Type, trackers)
			if err != nil {
				return fmt.Errorf("actionmap: create action %s/%s: %w", set.Name, act.Name, err)
			}
			b.actions[set.Name+"/"+act.Name] = ar
		}
	}
	for _, ip := range m.InteractionProfiles {
		if ip.Extension != "" && !b.api.IsExtensionEnabled(ip.Extension) {
			slog.Debug("actionmap: skipping interaction profile, extension not enabled", "profile", ip.Path, "extension", ip.Extension)
			continue
		}
		pr, err := b.api.InteractionProfileCreate(ip.Path)
		if err != nil {
			return fmt.Errorf("actionmap: create interaction profile %q: %w", ip.Path, err)
		}
		b.profiles[ip.Path] = pr
		for _, bd := range ip.Bindings {
			ar := b.actions[bd.Action]
			for _, p := range bd.Paths {
				if err := b.api.InteractionProfileAddBinding(pr, ar, p); err != nil {
					return fmt.Errorf("actionmap: bind %q to %q: %w", bd.Action, p, err)
				}
			}
		}
		if err := b.api.InteractionProfileSuggestBindings(pr); err != nil {
			return fmt.Errorf("actionmap: suggest bindings for %q: %w", ip.Path, err)
		}
	}
	return nil
}

func (b *Bound) tracker(top string) (rid.RID, error) {
	if tr, ok := b.trackers[top]; ok {
		return tr, nil
	}
	tr, err := b.api.TrackerCreate(top)
	if err != nil {
		return rid.RID{}, fmt.Errorf("actionmap: create tracker %q: %w", top, err)
	}
	b.trackers[top] = tr
	return tr, nil
}

func orName(localized, name string) string {
	if localized == "" {
		return name
	}
	return localized
}

// Attach attaches every action set to the session. It can only be
// done once per session.
func (b *Bound) Attach() error {
	return b.api.ActionSetsAttach(b.order)
}

// ActionSets returns the action sets, in map order, for syncing.
func (b *Bound) ActionSets() []rid.RID { return b.order }

// ActionSet returns the action set with the given name.
func (b *Bound) ActionSet(name string) (rid.RID, bool) {
	r, ok := b.sets[name]
	return r, ok
}

// Action returns the action with the given name in the given set.
func (b *Bound) Action(set, name string) (rid.RID, bool) {
	r, ok := b.actions[set+"/"+name]
	return r, ok
}

// Tracker returns the tracker of a top level path.
func (b *Bound) Tracker(path string) (rid.RID, bool) {
	r, ok := b.trackers[path]
	return r, ok
}

// InteractionProfile returns the profile with the given path. Profiles
// skipped for a missing extension are not found.
func (b *Bound) InteractionProfile(path string) (rid.RID, bool) {
	r, ok := b.profiles[path]
	return r, ok
}

// Free frees the profiles and action sets, with their actions. The
// trackers are kept, since other action maps may share them.
func (b *Bound) Free() {
	for _, pr := range b.profiles {
		b.api.InteractionProfileFree(pr)
	}
	for _, sr := range b.order {
		b.api.ActionSetFree(sr)
	}
	clear(b.profiles)
	clear(b.actions)
	clear(b.sets)
	b.order = nil
}
