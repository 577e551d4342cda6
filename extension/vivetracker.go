// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package extension

import (
	"log/slog"
	"strings"

	"cogentcore.org/xr/xr"
)

const (
	// ViveTrackerExtension is the HTC vive tracker extension name.
	ViveTrackerExtension = "XR_HTCX_vive_tracker_interaction"

	// ViveTrackerProfile is the interaction profile of vive trackers.
	ViveTrackerProfile = "/interaction_profiles/htc/vive_tracker_htcx"

	viveTrackerRolePrefix = "/user/vive_tracker_htcx/"
)

// ViveTracker enables vive tracker support when the runtime has it.
// It listens for tracker connections and reports them to OnConnected.
type ViveTracker struct {
	Base

	// OnConnected is called with the persistent and role path of
	// every tracker that connects. The role is empty for a tracker
	// without a role.
	OnConnected func(persistent, role string)

	available bool
	runtime   xr.Runtime
	instance  xr.Instance
	connected []string
}

func (vt *ViveTracker) RequestedExtensions() map[string]*bool {
	return map[string]*bool{ViveTrackerExtension: &vt.available}
}

// Available returns whether the runtime supports vive trackers.
func (vt *ViveTracker) Available() bool { return vt.available }

// SupportsPath returns whether a top level or interaction profile
// path can be used. Tracker paths need the extension; all other
// paths are supported.
func (vt *ViveTracker) SupportsPath(path string) bool {
	if path == ViveTrackerProfile || strings.HasPrefix(path, viveTrackerRolePrefix) {
		return vt.available
	}
	return true
}

// Connected returns the persistent paths of the connected trackers.
func (vt *ViveTracker) Connected() []string { return vt.connected }

func (vt *ViveTracker) OnInstanceCreated(rt xr.Runtime, instance xr.Instance) {
	vt.runtime = rt
	vt.instance = instance
}

func (vt *ViveTracker) OnInstanceDestroyed() {
	vt.runtime = nil
	vt.instance = 0
	vt.connected = nil
}

func (vt *ViveTracker) OnEvent(ev xr.Event) bool {
	tc, ok := ev.(*xr.EventDataViveTrackerConnectedHTCX)
	if !ok {
		return false
	}
	if !vt.available || vt.runtime == nil || tc.Paths == nil {
		return true
	}
	persistent, r := vt.runtime.PathToString(vt.instance, tc.Paths.PersistentPath)
	if r.Failed() {
		slog.Error("extension.ViveTracker: failed to get persistent path of connected tracker", "result", r.String())
		return true
	}
	role := ""
	if tc.Paths.RolePath != xr.NullPath {
		role, r = vt.runtime.PathToString(vt.instance, tc.Paths.RolePath)
		if r.Failed() {
			slog.Error("extension.ViveTracker: failed to get role path of connected tracker", "result", r.String())
		}
	}
	slog.Info("extension.ViveTracker: tracker connected", "path", persistent, "role", role)
	vt.connected = append(vt.connected, persistent)
	if vt.OnConnected != nil {
		vt.OnConnected(persistent, role)
	}
	return true
}
