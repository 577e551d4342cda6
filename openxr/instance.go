// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openxr

import (
	"slices"
	"sort"
	"strconv"

	"github.com/Masterminds/semver/v3"

	"cogentcore.org/xr/extension"
	"cogentcore.org/xr/xr"
)

// ControllerExtensions are the controller interaction extensions that
// are always requested, and enabled when the runtime supports them.
var ControllerExtensions = []string{
	"XR_EXT_hp_mixed_reality_controller",
	"XR_EXT_samsung_odyssey_controller",
	"XR_HTC_vive_cosmos_controller_interaction",
	"XR_HTC_vive_focus3_controller_interaction",
	"XR_HUAWEI_controller_interaction",
}

// requestedExtensions merges the extensions requested by the wrappers
// with the controller extensions, sorted by name.
func (a *API) requestedExtensions() []extension.Request {
	reqs := a.registry.Requested()
	for _, name := range ControllerExtensions {
		i := slices.IndexFunc(reqs, func(r extension.Request) bool { return r.Name == name })
		if i < 0 {
			reqs = append(reqs, extension.Request{Name: name})
			i = len(reqs) - 1
		}
		reqs[i].Flags = append(reqs[i].Flags, a.controllers[name])
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].Name < reqs[j].Name })
	return reqs
}

// EngineVersion packs a semantic version the way it is reported to
// the runtime: major*10000 + minor*100 + patch.
func EngineVersion(version string) (uint32, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return 0, err
	}
	return uint32(v.Major()*10000 + v.Minor()*100 + v.Patch()), nil
}

func (a *API) createInstance() bool {
	var enabled []string
	for _, req := range a.requestedExtensions() {
		supported := a.catalog.IsExtensionSupported(req.Name)
		if !supported && req.Mandatory {
			a.log.Error("openxr.createInstance: required extension is not supported", "extension", req.Name)
			return false
		}
		req.Resolve(supported)
		if supported {
			enabled = append(enabled, req.Name)
		}
	}

	engineVersion, err := EngineVersion(a.opts.EngineVersion)
	if err != nil {
		a.log.Warn("openxr.createInstance: invalid engine version", "version", a.opts.EngineVersion, "err", err)
	}
	info := &xr.InstanceCreateInfo{
		ApplicationInfo: xr.ApplicationInfo{
			ApplicationName:    xr.Truncate(a.opts.ApplicationName, xr.MaxApplicationNameSize),
			ApplicationVersion: a.opts.ApplicationVersion,
			EngineName:         xr.Truncate(a.opts.EngineName, xr.MaxEngineNameSize),
			EngineVersion:      engineVersion,
			APIVersion:         xr.CurrentAPIVersion,
		},
		EnabledExtensionNames: enabled,
	}
	var inst xr.Instance
	if r := a.runtime.CreateInstance(info, &inst); r.Failed() {
		a.log.Error("openxr.createInstance: failed to create instance", "result", a.ErrorString(r))
		return false
	}
	a.instance = inst
	a.enabledExtensions = enabled
	a.catalog.ErrorString = a.ErrorString

	var props xr.InstanceProperties
	if r := a.runtime.GetInstanceProperties(inst, &props); r.Failed() {
		a.log.Warn("openxr.createInstance: failed to get instance properties", "result", a.ErrorString(r))
	} else {
		a.runtimeName = props.RuntimeName
		a.runtimeVersion = props.RuntimeVersion
		a.log.Info("openxr: connected to runtime", "runtime", props.RuntimeName, "version", props.RuntimeVersion.String())
		a.checkRuntimeVersion()
	}

	a.registry.InstanceCreated(a.runtime, inst)
	return true
}

// checkRuntimeVersion warns when the runtime is older than the
// configured minimum version.
func (a *API) checkRuntimeVersion() {
	if a.opts.MinRuntimeVersion == "" {
		return
	}
	c, err := semver.NewConstraint(">= " + a.opts.MinRuntimeVersion)
	if err != nil {
		a.log.Warn("openxr: invalid minimum runtime version", "version", a.opts.MinRuntimeVersion, "err", err)
		return
	}
	if !c.Check(a.runtimeVersion.Semver()) {
		a.log.Warn("openxr: runtime is older than the minimum supported version",
			"runtime", a.runtimeName, "version", a.runtimeVersion.String(), "minimum", a.opts.MinRuntimeVersion)
	}
}

// destroyInstance releases the instance and everything that was
// created from it. It is a no-op without an instance.
func (a *API) destroyInstance() {
	a.catalog.ResetSystem()
	if a.instance != 0 {
		a.registry.InstanceDestroyed()
		if r := a.runtime.DestroyInstance(a.instance); r.Failed() {
			a.log.Error("openxr.destroyInstance: failed to destroy instance", "result", a.ErrorString(r))
		}
		a.instance = 0
	}
	a.catalog.ErrorString = xr.Result.String
	a.enabledExtensions = nil
	a.runtimeName = ""
	a.runtimeVersion = 0
	a.system = SystemInfo{}
	for _, flag := range a.controllers {
		*flag = false
	}

	// Action handles die with the instance.
	a.trackers.Clear()
	a.actionSets.Clear()
	a.actions.Clear()
	a.profiles.Clear()
}

// EnabledExtensions returns the extensions the instance was created with.
func (a *API) EnabledExtensions() []string { return slices.Clone(a.enabledExtensions) }

// IsExtensionEnabled returns whether the instance was created with
// the named extension.
func (a *API) IsExtensionEnabled(name string) bool {
	return slices.Contains(a.enabledExtensions, name)
}

// RuntimeName returns the name the runtime reported.
func (a *API) RuntimeName() string { return a.runtimeName }

// RuntimeVersion returns the version the runtime reported.
func (a *API) RuntimeVersion() xr.Version { return a.runtimeVersion }

// ErrorString returns a readable name for a result. Without an
// instance the name is derived from the code alone.
func (a *API) ErrorString(r xr.Result) string {
	if r.Succeeded() {
		return "Succeeded"
	}
	if a.instance == 0 {
		return codeString(r)
	}
	s, res := a.runtime.ResultToString(a.instance, r)
	if res.Failed() || s == "" {
		return codeString(r)
	}
	return s
}

func codeString(r xr.Result) string {
	return "Error code " + strconv.Itoa(int(r)) + " (" + r.String() + ")"
}
