// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simulator

import (
	"fmt"
	"slices"
	"strings"

	"cogentcore.org/xr/xr"
)

func (rt *Runtime) EnumerateAPILayerProperties(props []xr.APILayerProperties) (uint32, xr.Result) {
	if r, ok := rt.call("xrEnumerateApiLayerProperties"); ok {
		return 0, r
	}
	return enumerate(props, rt.Layers)
}

func (rt *Runtime) EnumerateInstanceExtensionProperties(layerName string, props []xr.ExtensionProperties) (uint32, xr.Result) {
	if r, ok := rt.call("xrEnumerateInstanceExtensionProperties"); ok {
		return 0, r
	}
	if layerName != "" {
		if !slices.ContainsFunc(rt.Layers, func(l xr.APILayerProperties) bool { return l.LayerName == layerName }) {
			return 0, xr.ErrorAPILayerNotPresent
		}
		return 0, xr.Success
	}
	exts := make([]xr.ExtensionProperties, len(rt.Extensions))
	for i, e := range rt.Extensions {
		exts[i] = xr.ExtensionProperties{ExtensionName: e, ExtensionVersion: 1}
	}
	return enumerate(props, exts)
}

func (rt *Runtime) CreateInstance(info *xr.InstanceCreateInfo, instance *xr.Instance) xr.Result {
	if r, ok := rt.call("xrCreateInstance"); ok {
		return r
	}
	if rt.instance != 0 {
		return xr.ErrorLimitReached
	}
	if info.ApplicationInfo.ApplicationName == "" {
		return xr.ErrorNameInvalid
	}
	if len(info.ApplicationInfo.ApplicationName) >= xr.MaxApplicationNameSize ||
		len(info.ApplicationInfo.EngineName) >= xr.MaxEngineNameSize {
		return xr.ErrorValidationFailure
	}
	if info.ApplicationInfo.APIVersion.Major() != 1 {
		return xr.ErrorAPIVersionUnsupported
	}
	for _, e := range info.EnabledExtensionNames {
		if !slices.Contains(rt.Extensions, e) {
			return xr.ErrorExtensionNotPresent
		}
	}
	for _, l := range info.EnabledAPILayerNames {
		if !slices.ContainsFunc(rt.Layers, func(p xr.APILayerProperties) bool { return p.LayerName == l }) {
			return xr.ErrorAPILayerNotPresent
		}
	}
	cp := *info
	cp.EnabledExtensionNames = slices.Clone(info.EnabledExtensionNames)
	rt.instanceInfo = &cp
	rt.instance = xr.Instance(rt.handle())
	*instance = rt.instance
	return xr.Success
}

// InstanceInfo returns the create info of the current instance,
// or nil if there is none.
func (rt *Runtime) InstanceInfo() *xr.InstanceCreateInfo {
	return rt.instanceInfo
}

// EnabledExtensions returns the extensions enabled on the current instance.
func (rt *Runtime) EnabledExtensions() []string {
	if rt.instanceInfo == nil {
		return nil
	}
	return slices.Clone(rt.instanceInfo.EnabledExtensionNames)
}

// HasInstance returns whether an instance is alive.
func (rt *Runtime) HasInstance() bool { return rt.instance != 0 }

func (rt *Runtime) checkInstance(instance xr.Instance) xr.Result {
	if instance == 0 || instance != rt.instance {
		return xr.ErrorHandleInvalid
	}
	return xr.Success
}

func (rt *Runtime) DestroyInstance(instance xr.Instance) xr.Result {
	if r, ok := rt.call("xrDestroyInstance"); ok {
		return r
	}
	if r := rt.checkInstance(instance); r.Failed() {
		return r
	}
	if rt.session != nil {
		rt.leaks = append(rt.leaks, "session")
		rt.session = nil
	}
	rt.actionSets = nil
	rt.actions = nil
	rt.suggested = nil
	rt.attached = false
	rt.instance = 0
	rt.instanceInfo = nil
	rt.system = 0
	rt.events = nil
	return xr.Success
}

func (rt *Runtime) GetInstanceProperties(instance xr.Instance, props *xr.InstanceProperties) xr.Result {
	if r, ok := rt.call("xrGetInstanceProperties"); ok {
		return r
	}
	if r := rt.checkInstance(instance); r.Failed() {
		return r
	}
	props.RuntimeName = xr.Truncate(rt.RuntimeName, xr.MaxRuntimeNameSize)
	props.RuntimeVersion = rt.RuntimeVersion
	return xr.Success
}

func (rt *Runtime) ResultToString(instance xr.Instance, r xr.Result) (string, xr.Result) {
	if res, ok := rt.call("xrResultToString"); ok {
		return "", res
	}
	if res := rt.checkInstance(instance); res.Failed() {
		return "", res
	}
	return r.String(), xr.Success
}

func (rt *Runtime) GetSystem(instance xr.Instance, info *xr.SystemGetInfo, system *xr.SystemID) xr.Result {
	if r, ok := rt.call("xrGetSystem"); ok {
		return r
	}
	if r := rt.checkInstance(instance); r.Failed() {
		return r
	}
	if info.FormFactor != xr.FormFactorHeadMountedDisplay && info.FormFactor != xr.FormFactorHandheldDisplay {
		return xr.ErrorFormFactorUnsupported
	}
	if !slices.Contains(rt.FormFactors, info.FormFactor) {
		return xr.ErrorFormFactorUnavailable
	}
	if rt.system == 0 {
		rt.system = xr.SystemID(rt.handle())
	}
	*system = rt.system
	return xr.Success
}

func (rt *Runtime) checkSystem(instance xr.Instance, system xr.SystemID) xr.Result {
	if r := rt.checkInstance(instance); r.Failed() {
		return r
	}
	if system == 0 || system != rt.system {
		return xr.ErrorSystemInvalid
	}
	return xr.Success
}

func (rt *Runtime) GetSystemProperties(instance xr.Instance, system xr.SystemID, props *xr.SystemProperties) xr.Result {
	if r, ok := rt.call("xrGetSystemProperties"); ok {
		return r
	}
	if r := rt.checkSystem(instance, system); r.Failed() {
		return r
	}
	props.SystemID = system
	props.VendorID = rt.VendorID
	props.SystemName = xr.Truncate(rt.SystemName, xr.MaxSystemNameSize)
	props.GraphicsProperties = xr.SystemGraphicsProperties{
		MaxSwapchainImageWidth:  4096,
		MaxSwapchainImageHeight: 4096,
		MaxLayerCount:           rt.MaxLayerCount,
	}
	props.TrackingProperties = xr.SystemTrackingProperties{OrientationTracking: true, PositionTracking: true}
	return xr.Success
}

// viewTypes returns the configured view configurations in a stable order.
func (rt *Runtime) viewTypes() []xr.ViewConfigurationType {
	types := make([]xr.ViewConfigurationType, 0, len(rt.ViewConfigs))
	for t := range rt.ViewConfigs {
		types = append(types, t)
	}
	// primary stereo first, as runtimes list their preferred type first
	slices.SortFunc(types, func(a, b xr.ViewConfigurationType) int {
		if a == xr.ViewConfigurationTypePrimaryStereo {
			return -1
		}
		if b == xr.ViewConfigurationTypePrimaryStereo {
			return 1
		}
		return int(a) - int(b)
	})
	return types
}

func (rt *Runtime) EnumerateViewConfigurations(instance xr.Instance, system xr.SystemID, types []xr.ViewConfigurationType) (uint32, xr.Result) {
	if r, ok := rt.call("xrEnumerateViewConfigurations"); ok {
		return 0, r
	}
	if r := rt.checkSystem(instance, system); r.Failed() {
		return 0, r
	}
	return enumerate(types, rt.viewTypes())
}

func (rt *Runtime) EnumerateViewConfigurationViews(instance xr.Instance, system xr.SystemID, viewType xr.ViewConfigurationType, views []xr.ViewConfigurationView) (uint32, xr.Result) {
	if r, ok := rt.call("xrEnumerateViewConfigurationViews"); ok {
		return 0, r
	}
	if r := rt.checkSystem(instance, system); r.Failed() {
		return 0, r
	}
	vs, ok := rt.ViewConfigs[viewType]
	if !ok {
		return 0, xr.ErrorViewConfigurationTypeUnsupported
	}
	return enumerate(views, vs)
}

func (rt *Runtime) EnumerateEnvironmentBlendModes(instance xr.Instance, system xr.SystemID, viewType xr.ViewConfigurationType, modes []xr.EnvironmentBlendMode) (uint32, xr.Result) {
	if r, ok := rt.call("xrEnumerateEnvironmentBlendModes"); ok {
		return 0, r
	}
	if r := rt.checkSystem(instance, system); r.Failed() {
		return 0, r
	}
	if _, ok := rt.ViewConfigs[viewType]; !ok {
		return 0, xr.ErrorViewConfigurationTypeUnsupported
	}
	return enumerate(modes, []xr.EnvironmentBlendMode{xr.EnvironmentBlendModeOpaque})
}

// QueueEvent adds an event to the end of the event queue.
func (rt *Runtime) QueueEvent(ev xr.Event) {
	rt.events = append(rt.events, ev)
}

// QueueSessionState queues a session state change of the current
// session. The session takes the new state when the event is polled.
func (rt *Runtime) QueueSessionState(state xr.SessionState) {
	var s xr.Session
	if rt.session != nil {
		s = rt.session.handle
	}
	rt.QueueEvent(&xr.EventDataSessionStateChanged{Session: s, State: state, Time: rt.now})
}

// PendingEvents returns the number of queued events.
func (rt *Runtime) PendingEvents() int { return len(rt.events) }

func (rt *Runtime) PollEvent(instance xr.Instance, buffer *xr.EventDataBuffer) xr.Result {
	if r, ok := rt.call("xrPollEvent"); ok {
		return r
	}
	if r := rt.checkInstance(instance); r.Failed() {
		return r
	}
	if len(rt.events) == 0 {
		buffer.Event = nil
		return xr.EventUnavailable
	}
	ev := rt.events[0]
	rt.events = rt.events[1:]
	if sc, ok := ev.(*xr.EventDataSessionStateChanged); ok && rt.session != nil && sc.Session == rt.session.handle {
		rt.session.state = sc.State
	}
	buffer.Event = ev
	return xr.Success
}

func validPath(p string) bool {
	if len(p) < 2 || len(p) >= xr.MaxPathLength || p[0] != '/' || strings.HasSuffix(p, "/") {
		return false
	}
	if strings.Contains(p, "//") {
		return false
	}
	for _, c := range p {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '/', c == '_', c == '-', c == '.':
		default:
			return false
		}
	}
	return true
}

func (rt *Runtime) StringToPath(instance xr.Instance, path string, out *xr.Path) xr.Result {
	if r, ok := rt.call("xrStringToPath"); ok {
		return r
	}
	if r := rt.checkInstance(instance); r.Failed() {
		return r
	}
	if !validPath(path) {
		return xr.ErrorPathFormatInvalid
	}
	*out = rt.intern(path)
	return xr.Success
}

func (rt *Runtime) intern(path string) xr.Path {
	if p, ok := rt.paths[path]; ok {
		return p
	}
	if rt.paths == nil {
		rt.paths = make(map[string]xr.Path)
		rt.pathNames = make(map[xr.Path]string)
	}
	p := xr.Path(rt.handle())
	rt.paths[path] = p
	rt.pathNames[p] = path
	return p
}

func (rt *Runtime) PathToString(instance xr.Instance, path xr.Path) (string, xr.Result) {
	if r, ok := rt.call("xrPathToString"); ok {
		return "", r
	}
	if r := rt.checkInstance(instance); r.Failed() {
		return "", r
	}
	s, ok := rt.pathNames[path]
	if !ok {
		return "", xr.ErrorPathInvalid
	}
	return s, xr.Success
}

// pathName returns the string of a path, or the empty string for
// the null path.
func (rt *Runtime) pathName(p xr.Path) string {
	return rt.pathNames[p]
}

func (rt *Runtime) String() string {
	return fmt.Sprintf("simulator.Runtime(%s %s)", rt.RuntimeName, rt.RuntimeVersion)
}
