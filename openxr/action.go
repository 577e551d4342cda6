// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openxr

import (
	"fmt"
	"strings"

	"cogentcore.org/xr/rid"
	"cogentcore.org/xr/xr"
	"cogentcore.org/xr/xrmath"
)

// ActionType is the data type of an action.
type ActionType int32

const (
	ActionTypeBool ActionType = iota
	ActionTypeFloat
	ActionTypeVector2
	ActionTypePose
	ActionTypeHaptic
)

var actionTypeNames = [...]string{"bool", "float", "vector2", "pose", "haptic"}

func (t ActionType) String() string {
	if t >= 0 && int(t) < len(actionTypeNames) {
		return actionTypeNames[t]
	}
	return fmt.Sprintf("ActionType(%d)", int32(t))
}

// ParseActionType parses the name of an action type, as returned by
// [ActionType.String].
func ParseActionType(s string) (ActionType, error) {
	for i, nm := range actionTypeNames {
		if strings.EqualFold(s, nm) {
			return ActionType(i), nil
		}
	}
	return 0, fmt.Errorf("openxr: unknown action type %q", s)
}

// MarshalText implements [encoding.TextMarshaler].
func (t ActionType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(actionTypeNames) {
		return nil, fmt.Errorf("openxr: invalid action type %d", int32(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (t *ActionType) UnmarshalText(text []byte) error {
	v, err := ParseActionType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// IsValid returns whether t is one of the defined action types.
func (t ActionType) IsValid() bool {
	return t >= 0 && int(t) < len(actionTypeNames)
}

// XR returns the protocol action type.
func (t ActionType) XR() xr.ActionType {
	switch t {
	case ActionTypeBool:
		return xr.ActionTypeBooleanInput
	case ActionTypeFloat:
		return xr.ActionTypeFloatInput
	case ActionTypeVector2:
		return xr.ActionTypeVector2fInput
	case ActionTypePose:
		return xr.ActionTypePoseInput
	case ActionTypeHaptic:
		return xr.ActionTypeVibrationOutput
	}
	return 0
}

// actionTracker binds an action to one tracker. The space is only
// created for pose actions, the first time the pose is queried.
type actionTracker struct {
	tracker rid.RID
	path    xr.Path
	space   xr.Space
}

type action struct {
	name       string
	set        rid.RID
	handle     xr.Action
	actionType ActionType
	trackers   []actionTracker
}

// ActionCreate creates an action in an action set for the given
// trackers. Trackers that do not resolve are skipped. Actions can
// not be added to an attached set.
func (a *API) ActionCreate(set rid.RID, name, localizedName string, t ActionType, trackers []rid.RID) (rid.RID, error) {
	if a.instance == 0 {
		return rid.RID{}, ErrNotInitialized
	}
	as := a.actionSets.Get(set)
	if as == nil {
		return rid.RID{}, ErrNotFound
	}
	if as.attached {
		return rid.RID{}, ErrActionSetAttached
	}
	ac := &action{name: name, set: set, actionType: t}
	var paths []xr.Path
	for _, tr := range trackers {
		tk := a.trackers.Get(tr)
		if tk == nil {
			a.log.Warn("openxr: skipping unknown tracker of action", "action", name, "tracker", tr.String())
			continue
		}
		ac.trackers = append(ac.trackers, actionTracker{tracker: tr, path: tk.path})
		paths = append(paths, tk.path)
	}
	info := &xr.ActionCreateInfo{
		ActionName:          xr.Truncate(name, xr.MaxActionNameSize),
		ActionType:          t.XR(),
		SubactionPaths:      paths,
		LocalizedActionName: xr.Truncate(localizedName, xr.MaxLocalizedActionNameSize),
	}
	if r := a.runtime.CreateAction(as.handle, info, &ac.handle); r.Failed() {
		a.log.Error("openxr: failed to create action", "name", name, "result", a.ErrorString(r))
		return rid.RID{}, xr.NewError("xrCreateAction", r)
	}
	return a.actions.MakeRID(ac), nil
}

// ActionName returns the name of an action, "None" for the invalid RID.
func (a *API) ActionName(act rid.RID) string {
	if ac := a.actions.Get(act); ac != nil {
		return ac.name
	}
	return noneName
}

// ActionFree destroys an action and its spaces.
func (a *API) ActionFree(act rid.RID) {
	ac := a.actions.Get(act)
	if ac == nil {
		return
	}
	a.freeActionSpaces(ac)
	if r := a.runtime.DestroyAction(ac.handle); r.Failed() {
		a.log.Error("openxr: failed to destroy action", "name", ac.name, "result", a.ErrorString(r))
	}
	a.actions.Free(act)
}

func (a *API) freeActionTracker(ac *action, i int) {
	if sp := ac.trackers[i].space; sp != 0 && a.session != 0 {
		if r := a.runtime.DestroySpace(sp); r.Failed() {
			a.log.Error("openxr: failed to destroy action space", "name", ac.name, "result", a.ErrorString(r))
		}
	}
	ac.trackers = append(ac.trackers[:i], ac.trackers[i+1:]...)
}

// actionState resolves the action and tracker of a state query in
// the order the checks are made: session, action, tracker, running
// and type. A nil target with a nil error means the session is not
// running and the zero value is returned.
func (a *API) actionState(act, tr rid.RID, t ActionType) (*action, *actionTracker, error) {
	if a.session == 0 {
		return nil, nil, ErrNoSession
	}
	ac := a.actions.Get(act)
	if ac == nil {
		return nil, nil, ErrNotFound
	}
	if !a.trackers.Owns(tr) {
		return nil, nil, ErrNotFound
	}
	if !a.running {
		return nil, nil, nil
	}
	if ac.actionType != t {
		return nil, nil, fmt.Errorf("%w: %s is %s, not %s", ErrTypeMismatch, ac.name, ac.actionType, t)
	}
	for i := range ac.trackers {
		if ac.trackers[i].tracker == tr {
			return ac, &ac.trackers[i], nil
		}
	}
	return nil, nil, fmt.Errorf("%w: tracker %s is not bound to %s", ErrNotFound, a.TrackerName(tr), ac.name)
}

func (ac *action) getInfo(at *actionTracker) *xr.ActionStateGetInfo {
	return &xr.ActionStateGetInfo{Action: ac.handle, SubactionPath: at.path}
}

// ActionBool returns the state of a boolean action for a tracker.
// An inactive action has the zero value.
func (a *API) ActionBool(act, tr rid.RID) (bool, error) {
	ac, at, err := a.actionState(act, tr, ActionTypeBool)
	if ac == nil {
		return false, err
	}
	var state xr.ActionStateBoolean
	if r := a.runtime.GetActionStateBoolean(a.session, ac.getInfo(at), &state); r.Failed() {
		a.callFailed("xrGetActionStateBoolean", r)
		return false, xr.NewError("xrGetActionStateBoolean", r)
	}
	return state.IsActive && state.CurrentState, nil
}

// ActionFloat returns the state of a float action for a tracker.
func (a *API) ActionFloat(act, tr rid.RID) (float32, error) {
	ac, at, err := a.actionState(act, tr, ActionTypeFloat)
	if ac == nil {
		return 0, err
	}
	var state xr.ActionStateFloat
	if r := a.runtime.GetActionStateFloat(a.session, ac.getInfo(at), &state); r.Failed() {
		a.callFailed("xrGetActionStateFloat", r)
		return 0, xr.NewError("xrGetActionStateFloat", r)
	}
	if !state.IsActive {
		return 0, nil
	}
	return state.CurrentState, nil
}

// ActionVector2 returns the state of a 2D vector action for a tracker.
func (a *API) ActionVector2(act, tr rid.RID) (xrmath.Vector2, error) {
	ac, at, err := a.actionState(act, tr, ActionTypeVector2)
	if ac == nil {
		return xrmath.Vector2{}, err
	}
	var state xr.ActionStateVector2f
	if r := a.runtime.GetActionStateVector2f(a.session, ac.getInfo(at), &state); r.Failed() {
		a.callFailed("xrGetActionStateVector2f", r)
		return xrmath.Vector2{}, xr.NewError("xrGetActionStateVector2f", r)
	}
	if !state.IsActive {
		return xrmath.Vector2{}, nil
	}
	return xrmath.Vector2FromXR(state.CurrentState), nil
}

// TriggerHapticPulse vibrates the tracker of a haptic action. The
// duration is in nanoseconds.
func (a *API) TriggerHapticPulse(act, tr rid.RID, frequency, amplitude float32, duration xr.Duration) error {
	ac, at, err := a.actionState(act, tr, ActionTypeHaptic)
	if ac == nil {
		return err
	}
	info := &xr.HapticActionInfo{Action: ac.handle, SubactionPath: at.path}
	vib := &xr.HapticVibration{Duration: duration, Frequency: frequency, Amplitude: amplitude}
	if r := a.runtime.ApplyHapticFeedback(a.session, info, vib); r.Failed() {
		a.callFailed("xrApplyHapticFeedback", r)
		return xr.NewError("xrApplyHapticFeedback", r)
	}
	return nil
}
