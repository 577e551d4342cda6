// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openxr

import (
	"fmt"

	"cogentcore.org/xr/xr"
)

// PollEvents drains the event queue of the runtime. Every event is
// first passed to the extension event hooks. It returns true once
// the queue is empty, and false if polling failed or the instance
// is about to be lost, in which case an exit is requested.
func (a *API) PollEvents() bool {
	if a.instance == 0 {
		a.log.Error("openxr.PollEvents: no instance")
		return false
	}
	var r xr.Result
	for {
		var buf xr.EventDataBuffer
		r = a.runtime.PollEvent(a.instance, &buf)
		if r != xr.Success {
			break
		}
		if buf.Event == nil {
			continue
		}
		handled := a.registry.Event(buf.Event)
		switch ev := buf.Event.(type) {
		case *xr.EventDataEventsLost:
			a.log.Warn("openxr: event queue overflowed, events were lost", "lost", ev.LostEventCount)
		case *xr.EventDataVisibilityMaskChangedKHR:
			a.log.Debug("openxr: visibility mask changed", "view", ev.ViewIndex)
		case *xr.EventDataInstanceLossPending:
			a.log.Warn("openxr: instance loss pending", "lossTime", int64(ev.LossTime))
			a.exitRequested = true
			return false
		case *xr.EventDataSessionStateChanged:
			a.handleStateChange(ev.State)
		case *xr.EventDataReferenceSpaceChangePending:
			a.log.Debug("openxr: reference space change pending", "type", ev.ReferenceSpaceType.String())
			if ev.PoseValid && a.iface != nil {
				a.iface.OnPoseRecentered()
			}
		case *xr.EventDataInteractionProfileChanged:
			for tr := range a.trackers.All() {
				a.TrackerCheckProfile(tr, ev.Session)
			}
		default:
			if !handled {
				a.log.Debug("openxr: unhandled event", "type", fmt.Sprintf("%T", ev), "structureType", ev.StructureType().String())
			}
		}
	}
	if r == xr.EventUnavailable {
		return true
	}
	a.log.Error("openxr.PollEvents: failed to poll events", "result", a.ErrorString(r))
	return false
}

// Process runs one tick: it polls events, and while the session is
// running calls the process hooks. It returns whether the session
// is running.
func (a *API) Process() bool {
	if !a.PollEvents() {
		return false
	}
	if !a.running {
		return false
	}
	a.registry.Process()
	return true
}
