// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openxr

import "cogentcore.org/xr/xr"

// Notify is a downstream [Interface] notification.
type Notify int32

const (
	NotifyNone Notify = iota
	NotifyReady
	NotifyVisible
	NotifyFocused
	NotifyStopping
)

// Effects are the side effects of observing a session state.
// They are applied in field order, except that the interface is
// notified before the hooks when InterfaceFirst is set.
type Effects struct {

	// Unknown is set for states outside the known range, which
	// have no other effect.
	Unknown bool

	// Begin begins the session and builds the main swapchain;
	// the session runs if that succeeds.
	Begin bool

	// CheckProfiles re-checks the interaction profile of every tracker.
	CheckProfiles bool

	// Hooks calls the state hook of every extension wrapper.
	Hooks bool

	// Notify is the interface notification, if any.
	Notify Notify

	// InterfaceFirst notifies the interface before the hooks.
	InterfaceFirst bool

	// End ends the running session.
	End bool

	// Exit marks that the application should shut down.
	Exit bool
}

// Transition returns the effects of observing state while the
// session is or is not running. It does not touch any runtime.
func Transition(running bool, state xr.SessionState) Effects {
	switch state {
	case xr.SessionStateIdle:
		return Effects{Hooks: true}
	case xr.SessionStateReady:
		return Effects{Begin: !running, Hooks: true, Notify: NotifyReady}
	case xr.SessionStateSynchronized:
		return Effects{CheckProfiles: true, Hooks: true}
	case xr.SessionStateVisible:
		return Effects{Hooks: true, Notify: NotifyVisible}
	case xr.SessionStateFocused:
		return Effects{Hooks: true, Notify: NotifyFocused}
	case xr.SessionStateStopping:
		return Effects{Hooks: true, Notify: NotifyStopping, InterfaceFirst: true, End: running}
	case xr.SessionStateLossPending, xr.SessionStateExiting:
		return Effects{Hooks: true, Exit: true}
	}
	return Effects{Unknown: true}
}

// handleStateChange applies the effects of a new session state.
// It returns false if beginning the session failed, in which case
// nothing else is done.
func (a *API) handleStateChange(state xr.SessionState) bool {
	a.sessionState = state
	e := Transition(a.running, state)
	if e.Unknown {
		a.log.Warn("openxr: session state is UNKNOWN", "state", int32(state), "session", a.sessionID)
		return true
	}
	a.log.Debug("openxr: session state changed", "state", state.String(), "session", a.sessionID)
	a.metrics().SessionState(int64(state), state.String())

	if e.Begin && !a.beginSession() {
		return false
	}
	if e.CheckProfiles {
		for r := range a.trackers.All() {
			a.TrackerCheckProfile(r, 0)
		}
	}
	if e.InterfaceFirst {
		a.notify(e.Notify)
	}
	if e.Hooks {
		a.registry.StateChanged(state)
	}
	if !e.InterfaceFirst {
		a.notify(e.Notify)
	}
	if e.End {
		a.endSession()
	}
	if e.Exit {
		a.exitRequested = true
	}
	return true
}

func (a *API) notify(n Notify) {
	if a.iface == nil {
		return
	}
	switch n {
	case NotifyReady:
		a.iface.OnStateReady()
	case NotifyVisible:
		a.iface.OnStateVisible()
	case NotifyFocused:
		a.iface.OnStateFocused()
	case NotifyStopping:
		a.iface.OnStateStopping()
	}
}
