// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package simulator provides an in-process [xr.Runtime] with no device
behind it. It enforces the ordering rules of the protocol (sessions
begin only when ready, frames are waited before they are begun,
swapchain images are acquired, waited and released in order) and
lets the caller script everything a device would report: session
state changes, frame timing, head and controller poses, action
states and interaction profile changes.

Any call can be made to fail with [Runtime.FailCall] or
[Runtime.FailNext], and every call is recorded for inspection.

A Runtime is not safe for concurrent use; it is driven from the
same thread as the code under test.
*/
package simulator

import (
	"slices"

	"cogentcore.org/xr/xr"
)

// Location is a scripted space location, with velocities.
type Location struct {
	Flags           xr.SpaceLocationFlags
	Pose            xr.Posef
	VelocityFlags   xr.SpaceVelocityFlags
	LinearVelocity  xr.Vector3f
	AngularVelocity xr.Vector3f
}

// Tracked returns a fully tracked location at the given pose, with
// no velocity.
func Tracked(pose xr.Posef) Location {
	return Location{Flags: xr.SpaceLocationAll, Pose: pose}
}

// Haptic is a recorded haptic output.
type Haptic struct {
	Action        string
	SubactionPath string
	Vibration     xr.HapticVibration
}

// Runtime is a simulated XR runtime. Configure the exported fields
// before creating an instance; the defaults from [New] describe a
// stereo head mounted display with two hand controllers.
type Runtime struct {
	Layers          []xr.APILayerProperties
	Extensions      []string
	RuntimeName     string
	RuntimeVersion  xr.Version
	FormFactors     []xr.FormFactor
	SystemName      string
	VendorID        uint32
	MaxLayerCount   uint32
	ViewConfigs     map[xr.ViewConfigurationType][]xr.ViewConfigurationView
	ReferenceSpaces []xr.ReferenceSpaceType
	Formats         []int64
	ImageCount      int

	// Profiles lists the interaction profiles the runtime knows.
	// Suggesting bindings for any other profile fails with
	// [xr.ErrorPathUnsupported]. Nil accepts every profile.
	Profiles []string

	// DisplayPeriod is the predicted display period of generated frames.
	DisplayPeriod xr.Duration

	// Fov is the field of view of every located view.
	Fov xr.Fovf

	// EyeOffset is the distance of each eye from the view center.
	EyeOffset float32

	next uint64
	now  xr.Time

	instance     xr.Instance
	instanceInfo *xr.InstanceCreateInfo
	system       xr.SystemID

	session *session

	events []xr.Event
	frames []xr.FrameState

	paths     map[string]xr.Path
	pathNames map[xr.Path]string

	actionSets map[xr.ActionSet]*actionSet
	actions    map[xr.Action]*action
	suggested  map[xr.Path][]xr.ActionSuggestedBinding
	attached   bool

	view         Location
	actionPoses  map[stateKey]Location
	boolStates   map[stateKey]bool
	floatStates  map[stateKey]float32
	vectorStates map[stateKey]xr.Vector2f
	profiles     map[string]string
	haptics      []Haptic
	activeSets   []xr.ActiveActionSet

	failSticky map[string]xr.Result
	failOnce   map[string]xr.Result
	calls      []string

	endFrames []xr.FrameEndInfo
	leaks     []string
}

type stateKey struct {
	action    string
	subaction string
}

// New returns a simulated runtime with default capabilities.
func New() *Runtime {
	view := xr.ViewConfigurationView{
		RecommendedImageRectWidth:       1832,
		RecommendedImageRectHeight:      1920,
		MaxImageRectWidth:               4096,
		MaxImageRectHeight:              4096,
		RecommendedSwapchainSampleCount: 1,
		MaxSwapchainSampleCount:         4,
	}
	return &Runtime{
		RuntimeName:    "Cogent XR Simulator",
		RuntimeVersion: xr.MakeVersion(1, 0, 34),
		FormFactors:    []xr.FormFactor{xr.FormFactorHeadMountedDisplay},
		SystemName:     "Simulated Headset",
		VendorID:       0xC09E,
		MaxLayerCount:  16,
		ViewConfigs: map[xr.ViewConfigurationType][]xr.ViewConfigurationView{
			xr.ViewConfigurationTypePrimaryStereo: {view, view},
			xr.ViewConfigurationTypePrimaryMono:   {view},
		},
		ReferenceSpaces: []xr.ReferenceSpaceType{
			xr.ReferenceSpaceTypeView, xr.ReferenceSpaceTypeLocal, xr.ReferenceSpaceTypeStage,
		},
		Formats:    []int64{FormatRGBA8, FormatSRGBA8},
		ImageCount: 3,
		Profiles: []string{
			"/interaction_profiles/khr/simple_controller",
			"/interaction_profiles/oculus/touch_controller",
			"/interaction_profiles/valve/index_controller",
			"/interaction_profiles/htc/vive_controller",
			"/interaction_profiles/microsoft/motion_controller",
		},
		DisplayPeriod: 11111111,
		Fov:           xr.Fovf{AngleLeft: -0.8, AngleRight: 0.8, AngleUp: 0.8, AngleDown: -0.8},
		EyeOffset:     0.032,
		view: Tracked(xr.Posef{
			Orientation: xr.Quaternionf{W: 1},
			Position:    xr.Vector3f{Y: 1.6},
		}),
		now: 1_000_000_000,
	}
}

// The swapchain formats offered by default, using the numeric
// values of the corresponding Vulkan formats.
const (
	FormatRGBA8  int64 = 37
	FormatSRGBA8 int64 = 43
)

func (rt *Runtime) handle() uint64 {
	rt.next++
	return rt.next
}

// FailCall makes every call of the named protocol function
// (for example "xrWaitFrame") return r until [Runtime.ClearFailures].
func (rt *Runtime) FailCall(name string, r xr.Result) {
	if rt.failSticky == nil {
		rt.failSticky = make(map[string]xr.Result)
	}
	rt.failSticky[name] = r
}

// FailNext makes the next call of the named protocol function return r.
func (rt *Runtime) FailNext(name string, r xr.Result) {
	if rt.failOnce == nil {
		rt.failOnce = make(map[string]xr.Result)
	}
	rt.failOnce[name] = r
}

// ClearFailures removes all injected failures.
func (rt *Runtime) ClearFailures() {
	rt.failSticky = nil
	rt.failOnce = nil
}

// call records a call and returns an injected result for it, if any.
func (rt *Runtime) call(name string) (xr.Result, bool) {
	rt.calls = append(rt.calls, name)
	if r, ok := rt.failOnce[name]; ok {
		delete(rt.failOnce, name)
		return r, true
	}
	if r, ok := rt.failSticky[name]; ok {
		return r, true
	}
	return xr.Success, false
}

// Calls returns the names of all calls made so far, in order.
func (rt *Runtime) Calls() []string { return slices.Clone(rt.calls) }

// CallCount returns how many times the named call was made.
func (rt *Runtime) CallCount(name string) int {
	n := 0
	for _, c := range rt.calls {
		if c == name {
			n++
		}
	}
	return n
}

// ResetCalls forgets the recorded calls.
func (rt *Runtime) ResetCalls() { rt.calls = nil }

// Leaks returns a description of every handle that was still alive
// when its parent was destroyed.
func (rt *Runtime) Leaks() []string { return slices.Clone(rt.leaks) }

// enumerate implements the two-call idiom over data.
func enumerate[T any](buf []T, data []T) (uint32, xr.Result) {
	n := uint32(len(data))
	if len(buf) == 0 {
		return n, xr.Success
	}
	if len(buf) < len(data) {
		return n, xr.ErrorSizeInsufficient
	}
	copy(buf, data)
	return n, xr.Success
}
