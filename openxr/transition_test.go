// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openxr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cogentcore.org/xr/extension"
	"cogentcore.org/xr/headless"
	"cogentcore.org/xr/xr"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		running bool
		state   xr.SessionState
		want    Effects
	}{
		{false, xr.SessionStateIdle, Effects{Hooks: true}},
		{false, xr.SessionStateReady, Effects{Begin: true, Hooks: true, Notify: NotifyReady}},
		{true, xr.SessionStateReady, Effects{Hooks: true, Notify: NotifyReady}},
		{true, xr.SessionStateSynchronized, Effects{CheckProfiles: true, Hooks: true}},
		{true, xr.SessionStateVisible, Effects{Hooks: true, Notify: NotifyVisible}},
		{true, xr.SessionStateFocused, Effects{Hooks: true, Notify: NotifyFocused}},
		{true, xr.SessionStateStopping, Effects{Hooks: true, Notify: NotifyStopping, InterfaceFirst: true, End: true}},
		{false, xr.SessionStateStopping, Effects{Hooks: true, Notify: NotifyStopping, InterfaceFirst: true}},
		{true, xr.SessionStateLossPending, Effects{Hooks: true, Exit: true}},
		{false, xr.SessionStateExiting, Effects{Hooks: true, Exit: true}},
		{false, xr.SessionStateUnknown, Effects{Unknown: true}},
		{true, xr.SessionState(42), Effects{Unknown: true}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Transition(tt.running, tt.state), "%v running=%v", tt.state, tt.running)
	}
}

type stateHooks struct {
	extension.Base
	log *[]string
}

func (h stateHooks) OnStateReady()    { *h.log = append(*h.log, "hook:ready") }
func (h stateHooks) OnStateStopping() { *h.log = append(*h.log, "hook:stopping") }

type orderRecorder struct {
	recorder
	log *[]string
}

func (r *orderRecorder) OnStateReady()    { *r.log = append(*r.log, "iface:ready") }
func (r *orderRecorder) OnStateStopping() { *r.log = append(*r.log, "iface:stopping") }

func TestSessionLifecycle(t *testing.T) {
	e := newEnv(t)
	var log []string
	e.api.Register(stateHooks{log: &log})
	e.api.SetInterface(&orderRecorder{log: &log})
	e.init(t)

	e.states(t, xr.SessionStateIdle)
	assert.False(t, e.api.Running())
	assert.Equal(t, xr.SessionStateIdle, e.api.SessionState())

	e.states(t, xr.SessionStateReady)
	assert.True(t, e.api.Running())
	assert.True(t, e.rt.SessionRunning())
	assert.NotZero(t, e.api.MainSwapchain().Handle)
	assert.Equal(t, uint32(2), e.api.MainSwapchain().ArraySize)
	assert.Equal(t, headless.FormatSRGBA8, e.api.MainSwapchain().Format)

	e.states(t, xr.SessionStateSynchronized, xr.SessionStateVisible, xr.SessionStateFocused)
	assert.True(t, e.api.Running())

	e.states(t, xr.SessionStateVisible, xr.SessionStateSynchronized, xr.SessionStateStopping)
	assert.False(t, e.api.Running())
	assert.False(t, e.rt.SessionRunning())
	assert.False(t, e.api.ExitRequested())

	e.states(t, xr.SessionStateIdle, xr.SessionStateExiting)
	assert.True(t, e.api.ExitRequested())
	assert.Equal(t, []string{"hook:ready", "iface:ready", "iface:stopping", "hook:stopping"}, log)

	e.api.Finish()
	assert.Empty(t, e.rt.Leaks())
}

func TestReadyBeginFailure(t *testing.T) {
	e := newEnv(t)
	e.init(t)
	e.rt.FailNext("xrBeginSession", xr.ErrorRuntimeFailure)
	e.states(t, xr.SessionStateReady)
	assert.False(t, e.api.Running())
	assert.Zero(t, e.api.MainSwapchain().Handle)
	assert.NotContains(t, e.iface.events, "ready")
}

func TestReadySwapchainFailure(t *testing.T) {
	e := newEnv(t)
	e.init(t)
	e.rt.FailNext("xrCreateSwapchain", xr.ErrorRuntimeFailure)
	e.states(t, xr.SessionStateReady)
	assert.False(t, e.api.Running())
	assert.Zero(t, e.rt.SwapchainCount())
}

func TestReadyTwice(t *testing.T) {
	e := newEnv(t)
	e.init(t)
	e.states(t, xr.SessionStateReady)
	sc := e.api.MainSwapchain().Handle
	e.states(t, xr.SessionStateReady)
	assert.True(t, e.api.Running())
	assert.Equal(t, sc, e.api.MainSwapchain().Handle)
	assert.Equal(t, 1, e.rt.CallCount("xrBeginSession"))
	assert.Equal(t, []string{"ready", "ready"}, e.iface.events)
}

func TestInstanceLossPending(t *testing.T) {
	e := newEnv(t)
	e.init(t)
	e.rt.QueueEvent(&xr.EventDataInstanceLossPending{LossTime: 1})
	e.rt.QueueSessionState(xr.SessionStateReady)
	assert.False(t, e.api.PollEvents())
	assert.True(t, e.api.ExitRequested())
	assert.Equal(t, 1, e.rt.PendingEvents())
	assert.False(t, e.api.Running())
}

func TestPollFailure(t *testing.T) {
	e := newEnv(t)
	assert.False(t, e.api.PollEvents(), "no instance")

	e.init(t)
	e.rt.FailNext("xrPollEvent", xr.ErrorRuntimeFailure)
	assert.False(t, e.api.PollEvents())
	assert.True(t, e.api.PollEvents())
}

func TestEvents(t *testing.T) {
	e := newEnv(t)
	e.init(t)
	e.rt.QueueEvent(&xr.EventDataEventsLost{LostEventCount: 3})
	e.rt.QueueEvent(&xr.EventDataReferenceSpaceChangePending{Session: e.api.Session(), ReferenceSpaceType: xr.ReferenceSpaceTypeStage})
	e.rt.QueueEvent(&xr.EventDataReferenceSpaceChangePending{Session: e.api.Session(), ReferenceSpaceType: xr.ReferenceSpaceTypeStage, PoseValid: true})
	e.rt.QueueEvent(&xr.EventDataSessionStateChanged{Session: e.api.Session(), State: xr.SessionState(42)})
	e.rt.QueueEvent(&xr.EventDataViveTrackerConnectedHTCX{})
	assert.True(t, e.api.PollEvents())
	assert.Equal(t, []string{"recentered"}, e.iface.events)
	assert.Contains(t, e.logs.String(), "events were lost")
	assert.Contains(t, e.logs.String(), "session state is UNKNOWN")
	assert.Contains(t, e.logs.String(), "unhandled event")
}

func TestProcess(t *testing.T) {
	e := newEnv(t)
	e.init(t)
	assert.False(t, e.api.Process(), "not running")
	e.states(t, xr.SessionStateReady)
	assert.True(t, e.api.Process())
}
