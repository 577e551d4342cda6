// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simulator

import (
	"slices"

	"cogentcore.org/xr/xr"
)

type actionSet struct {
	name     string
	priority uint32
	attached bool
	actions  []xr.Action
}

type action struct {
	name       string
	set        xr.ActionSet
	actionType xr.ActionType
	subactions []xr.Path
}

func validName(n string) bool {
	if n == "" {
		return false
	}
	for _, c := range n {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_', c == '-', c == '.':
		default:
			return false
		}
	}
	return true
}

func (rt *Runtime) CreateActionSet(instance xr.Instance, info *xr.ActionSetCreateInfo, out *xr.ActionSet) xr.Result {
	if r, ok := rt.call("xrCreateActionSet"); ok {
		return r
	}
	if r := rt.checkInstance(instance); r.Failed() {
		return r
	}
	if !validName(info.ActionSetName) || len(info.ActionSetName) >= xr.MaxActionSetNameSize {
		return xr.ErrorPathFormatInvalid
	}
	if info.LocalizedActionSetName == "" || len(info.LocalizedActionSetName) >= xr.MaxLocalizedActionSetNameSize {
		return xr.ErrorLocalizedNameInvalid
	}
	for _, as := range rt.actionSets {
		if as.name == info.ActionSetName {
			return xr.ErrorNameDuplicated
		}
	}
	if rt.actionSets == nil {
		rt.actionSets = make(map[xr.ActionSet]*actionSet)
	}
	h := xr.ActionSet(rt.handle())
	rt.actionSets[h] = &actionSet{name: info.ActionSetName, priority: info.Priority}
	*out = h
	return xr.Success
}

func (rt *Runtime) DestroyActionSet(set xr.ActionSet) xr.Result {
	if r, ok := rt.call("xrDestroyActionSet"); ok {
		return r
	}
	as, ok := rt.actionSets[set]
	if !ok {
		return xr.ErrorHandleInvalid
	}
	for _, a := range as.actions {
		delete(rt.actions, a)
	}
	delete(rt.actionSets, set)
	return xr.Success
}

func (rt *Runtime) CreateAction(set xr.ActionSet, info *xr.ActionCreateInfo, out *xr.Action) xr.Result {
	if r, ok := rt.call("xrCreateAction"); ok {
		return r
	}
	as, ok := rt.actionSets[set]
	if !ok {
		return xr.ErrorHandleInvalid
	}
	if as.attached {
		return xr.ErrorActionsetsAlreadyAttached
	}
	if !validName(info.ActionName) || len(info.ActionName) >= xr.MaxActionNameSize {
		return xr.ErrorPathFormatInvalid
	}
	if info.LocalizedActionName == "" || len(info.LocalizedActionName) >= xr.MaxLocalizedActionNameSize {
		return xr.ErrorLocalizedNameInvalid
	}
	switch info.ActionType {
	case xr.ActionTypeBooleanInput, xr.ActionTypeFloatInput, xr.ActionTypeVector2fInput,
		xr.ActionTypePoseInput, xr.ActionTypeVibrationOutput:
	default:
		return xr.ErrorValidationFailure
	}
	for _, a := range as.actions {
		if rt.actions[a].name == info.ActionName {
			return xr.ErrorNameDuplicated
		}
	}
	for _, p := range info.SubactionPaths {
		if _, ok := rt.pathNames[p]; !ok {
			return xr.ErrorPathInvalid
		}
	}
	if rt.actions == nil {
		rt.actions = make(map[xr.Action]*action)
	}
	h := xr.Action(rt.handle())
	rt.actions[h] = &action{
		name:       info.ActionName,
		set:        set,
		actionType: info.ActionType,
		subactions: slices.Clone(info.SubactionPaths),
	}
	as.actions = append(as.actions, h)
	*out = h
	return xr.Success
}

func (rt *Runtime) DestroyAction(a xr.Action) xr.Result {
	if r, ok := rt.call("xrDestroyAction"); ok {
		return r
	}
	act, ok := rt.actions[a]
	if !ok {
		return xr.ErrorHandleInvalid
	}
	if as := rt.actionSets[act.set]; as != nil {
		as.actions = slices.DeleteFunc(as.actions, func(x xr.Action) bool { return x == a })
	}
	delete(rt.actions, a)
	return xr.Success
}

func (rt *Runtime) SuggestInteractionProfileBindings(instance xr.Instance, info *xr.InteractionProfileSuggestedBinding) xr.Result {
	if r, ok := rt.call("xrSuggestInteractionProfileBindings"); ok {
		return r
	}
	if r := rt.checkInstance(instance); r.Failed() {
		return r
	}
	if rt.attached {
		return xr.ErrorActionsetsAlreadyAttached
	}
	name, ok := rt.pathNames[info.InteractionProfile]
	if !ok {
		return xr.ErrorPathInvalid
	}
	if rt.Profiles != nil && !slices.Contains(rt.Profiles, name) {
		return xr.ErrorPathUnsupported
	}
	for _, b := range info.SuggestedBindings {
		if _, ok := rt.actions[b.Action]; !ok {
			return xr.ErrorHandleInvalid
		}
		if _, ok := rt.pathNames[b.Binding]; !ok {
			return xr.ErrorPathInvalid
		}
	}
	if rt.suggested == nil {
		rt.suggested = make(map[xr.Path][]xr.ActionSuggestedBinding)
	}
	rt.suggested[info.InteractionProfile] = slices.Clone(info.SuggestedBindings)
	return xr.Success
}

// SuggestedBindings returns the bindings last suggested for the
// named interaction profile, as binding path per action name.
func (rt *Runtime) SuggestedBindings(profile string) map[string][]string {
	p, ok := rt.paths[profile]
	if !ok {
		return nil
	}
	sb, ok := rt.suggested[p]
	if !ok {
		return nil
	}
	m := make(map[string][]string)
	for _, b := range sb {
		if a := rt.actions[b.Action]; a != nil {
			m[a.name] = append(m[a.name], rt.pathNames[b.Binding])
		}
	}
	return m
}

func (rt *Runtime) AttachSessionActionSets(s xr.Session, info *xr.SessionActionSetsAttachInfo) xr.Result {
	if r, ok := rt.call("xrAttachSessionActionSets"); ok {
		return r
	}
	if _, r := rt.getSession(s); r.Failed() {
		return r
	}
	if rt.attached {
		return xr.ErrorActionsetsAlreadyAttached
	}
	for _, set := range info.ActionSets {
		if _, ok := rt.actionSets[set]; !ok {
			return xr.ErrorHandleInvalid
		}
	}
	for _, set := range info.ActionSets {
		rt.actionSets[set].attached = true
	}
	rt.attached = true
	return xr.Success
}

// SetInteractionProfile makes profile the active interaction
// profile of the given top level path, and queues an interaction
// profile changed event. An empty profile clears it.
func (rt *Runtime) SetInteractionProfile(topLevelPath, profile string) {
	if rt.profiles == nil {
		rt.profiles = make(map[string]string)
	}
	if profile == "" {
		delete(rt.profiles, topLevelPath)
	} else {
		rt.profiles[topLevelPath] = profile
		rt.intern(profile)
	}
	var sh xr.Session
	if rt.session != nil {
		sh = rt.session.handle
	}
	rt.QueueEvent(&xr.EventDataInteractionProfileChanged{Session: sh})
}

func (rt *Runtime) GetCurrentInteractionProfile(s xr.Session, topLevelUserPath xr.Path, state *xr.InteractionProfileState) xr.Result {
	if r, ok := rt.call("xrGetCurrentInteractionProfile"); ok {
		return r
	}
	if _, r := rt.getSession(s); r.Failed() {
		return r
	}
	if !rt.attached {
		return xr.ErrorActionsetNotAttached
	}
	top, ok := rt.pathNames[topLevelUserPath]
	if !ok {
		return xr.ErrorPathInvalid
	}
	state.InteractionProfile = xr.NullPath
	if p, ok := rt.profiles[top]; ok {
		state.InteractionProfile = rt.paths[p]
	}
	return xr.Success
}

func (rt *Runtime) SyncActions(s xr.Session, info *xr.ActionsSyncInfo) xr.Result {
	if r, ok := rt.call("xrSyncActions"); ok {
		return r
	}
	ss, r := rt.getSession(s)
	if r.Failed() {
		return r
	}
	if len(info.ActiveActionSets) == 0 {
		return xr.ErrorValidationFailure
	}
	for _, a := range info.ActiveActionSets {
		as, ok := rt.actionSets[a.ActionSet]
		if !ok {
			return xr.ErrorHandleInvalid
		}
		if !as.attached {
			return xr.ErrorActionsetNotAttached
		}
	}
	rt.activeSets = slices.Clone(info.ActiveActionSets)
	if ss.state != xr.SessionStateFocused {
		rt.activeSets = nil
		return xr.SessionNotFocused
	}
	return xr.Success
}

// ActionSetCount returns the number of live action sets.
func (rt *Runtime) ActionSetCount() int { return len(rt.actionSets) }

// ActiveActionSets returns the number of action sets active since
// the last successful sync.
func (rt *Runtime) ActiveActionSets() int { return len(rt.activeSets) }

// SetActionBool sets the state of a boolean action.
func (rt *Runtime) SetActionBool(action, subactionPath string, v bool) {
	if rt.boolStates == nil {
		rt.boolStates = make(map[stateKey]bool)
	}
	rt.boolStates[stateKey{action, subactionPath}] = v
}

// SetActionFloat sets the state of a float action.
func (rt *Runtime) SetActionFloat(action, subactionPath string, v float32) {
	if rt.floatStates == nil {
		rt.floatStates = make(map[stateKey]float32)
	}
	rt.floatStates[stateKey{action, subactionPath}] = v
}

// SetActionVector2 sets the state of a 2D vector action.
func (rt *Runtime) SetActionVector2(action, subactionPath string, v xr.Vector2f) {
	if rt.vectorStates == nil {
		rt.vectorStates = make(map[stateKey]xr.Vector2f)
	}
	rt.vectorStates[stateKey{action, subactionPath}] = v
}

// actionState resolves an action state query. It returns the state
// key and whether the action is active.
func (rt *Runtime) actionState(s xr.Session, info *xr.ActionStateGetInfo, t xr.ActionType) (stateKey, bool, xr.Result) {
	if _, r := rt.getSession(s); r.Failed() {
		return stateKey{}, false, r
	}
	a, ok := rt.actions[info.Action]
	if !ok {
		return stateKey{}, false, xr.ErrorHandleInvalid
	}
	if a.actionType != t {
		return stateKey{}, false, xr.ErrorActionTypeMismatch
	}
	if as := rt.actionSets[a.set]; as == nil || !as.attached {
		return stateKey{}, false, xr.ErrorActionsetNotAttached
	}
	if info.SubactionPath != xr.NullPath && !slices.Contains(a.subactions, info.SubactionPath) {
		return stateKey{}, false, xr.ErrorPathUnsupported
	}
	active := slices.ContainsFunc(rt.activeSets, func(x xr.ActiveActionSet) bool { return x.ActionSet == a.set })
	return stateKey{a.name, rt.pathName(info.SubactionPath)}, active, xr.Success
}

func (rt *Runtime) GetActionStateBoolean(s xr.Session, info *xr.ActionStateGetInfo, state *xr.ActionStateBoolean) xr.Result {
	if r, ok := rt.call("xrGetActionStateBoolean"); ok {
		return r
	}
	key, active, r := rt.actionState(s, info, xr.ActionTypeBooleanInput)
	if r.Failed() {
		return r
	}
	v, ok := rt.boolStates[key]
	*state = xr.ActionStateBoolean{Next: state.Next, CurrentState: v, IsActive: active && ok}
	return xr.Success
}

func (rt *Runtime) GetActionStateFloat(s xr.Session, info *xr.ActionStateGetInfo, state *xr.ActionStateFloat) xr.Result {
	if r, ok := rt.call("xrGetActionStateFloat"); ok {
		return r
	}
	key, active, r := rt.actionState(s, info, xr.ActionTypeFloatInput)
	if r.Failed() {
		return r
	}
	v, ok := rt.floatStates[key]
	*state = xr.ActionStateFloat{Next: state.Next, CurrentState: v, IsActive: active && ok}
	return xr.Success
}

func (rt *Runtime) GetActionStateVector2f(s xr.Session, info *xr.ActionStateGetInfo, state *xr.ActionStateVector2f) xr.Result {
	if r, ok := rt.call("xrGetActionStateVector2f"); ok {
		return r
	}
	key, active, r := rt.actionState(s, info, xr.ActionTypeVector2fInput)
	if r.Failed() {
		return r
	}
	v, ok := rt.vectorStates[key]
	*state = xr.ActionStateVector2f{Next: state.Next, CurrentState: v, IsActive: active && ok}
	return xr.Success
}

func (rt *Runtime) GetActionStatePose(s xr.Session, info *xr.ActionStateGetInfo, state *xr.ActionStatePose) xr.Result {
	if r, ok := rt.call("xrGetActionStatePose"); ok {
		return r
	}
	key, active, r := rt.actionState(s, info, xr.ActionTypePoseInput)
	if r.Failed() {
		return r
	}
	_, ok := rt.actionPoses[key]
	state.IsActive = active && ok
	return xr.Success
}

func (rt *Runtime) ApplyHapticFeedback(s xr.Session, info *xr.HapticActionInfo, vibration *xr.HapticVibration) xr.Result {
	if r, ok := rt.call("xrApplyHapticFeedback"); ok {
		return r
	}
	key, _, r := rt.actionState(s, &xr.ActionStateGetInfo{Action: info.Action, SubactionPath: info.SubactionPath}, xr.ActionTypeVibrationOutput)
	if r.Failed() {
		return r
	}
	rt.haptics = append(rt.haptics, Haptic{Action: key.action, SubactionPath: key.subaction, Vibration: *vibration})
	return xr.Success
}

func (rt *Runtime) StopHapticFeedback(s xr.Session, info *xr.HapticActionInfo) xr.Result {
	if r, ok := rt.call("xrStopHapticFeedback"); ok {
		return r
	}
	_, _, r := rt.actionState(s, &xr.ActionStateGetInfo{Action: info.Action, SubactionPath: info.SubactionPath}, xr.ActionTypeVibrationOutput)
	return r
}

// Haptics returns every haptic output applied so far.
func (rt *Runtime) Haptics() []Haptic { return slices.Clone(rt.haptics) }
