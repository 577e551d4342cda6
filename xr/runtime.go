// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xr

// Runtime is the protocol surface of an XR runtime, with one method
// per protocol call. Calls report their outcome as a [Result] and
// write their outputs through pointer arguments, leaving the layout
// of the records intact so a binding can pass them straight through
// to a native loader.
//
// Enumerate methods follow the two-call idiom: called with an empty
// buffer they return the number of available elements, called with a
// buffer they fill it and return the number written, or
// [ErrorSizeInsufficient] if the buffer is too small.
type Runtime interface {
	EnumerateAPILayerProperties(props []APILayerProperties) (uint32, Result)
	EnumerateInstanceExtensionProperties(layerName string, props []ExtensionProperties) (uint32, Result)
	CreateInstance(info *InstanceCreateInfo, instance *Instance) Result
	DestroyInstance(instance Instance) Result
	GetInstanceProperties(instance Instance, props *InstanceProperties) Result

	// ResultToString returns the runtime's name for a result.
	// It needs a valid instance.
	ResultToString(instance Instance, r Result) (string, Result)

	GetSystem(instance Instance, info *SystemGetInfo, system *SystemID) Result
	GetSystemProperties(instance Instance, system SystemID, props *SystemProperties) Result
	EnumerateViewConfigurations(instance Instance, system SystemID, types []ViewConfigurationType) (uint32, Result)
	EnumerateViewConfigurationViews(instance Instance, system SystemID, viewType ViewConfigurationType, views []ViewConfigurationView) (uint32, Result)
	EnumerateEnvironmentBlendModes(instance Instance, system SystemID, viewType ViewConfigurationType, modes []EnvironmentBlendMode) (uint32, Result)

	CreateSession(instance Instance, info *SessionCreateInfo, session *Session) Result
	DestroySession(session Session) Result
	BeginSession(session Session, info *SessionBeginInfo) Result
	EndSession(session Session) Result
	RequestExitSession(session Session) Result

	EnumerateReferenceSpaces(session Session, spaces []ReferenceSpaceType) (uint32, Result)
	CreateReferenceSpace(session Session, info *ReferenceSpaceCreateInfo, space *Space) Result
	CreateActionSpace(session Session, info *ActionSpaceCreateInfo, space *Space) Result
	LocateSpace(space, baseSpace Space, time Time, location *SpaceLocation) Result
	DestroySpace(space Space) Result

	EnumerateSwapchainFormats(session Session, formats []int64) (uint32, Result)
	CreateSwapchain(session Session, info *SwapchainCreateInfo, swapchain *Swapchain) Result
	DestroySwapchain(swapchain Swapchain) Result
	EnumerateSwapchainImages(swapchain Swapchain, images []SwapchainImage) (uint32, Result)
	AcquireSwapchainImage(swapchain Swapchain, info *SwapchainImageAcquireInfo, index *uint32) Result
	WaitSwapchainImage(swapchain Swapchain, info *SwapchainImageWaitInfo) Result
	ReleaseSwapchainImage(swapchain Swapchain, info *SwapchainImageReleaseInfo) Result

	WaitFrame(session Session, info *FrameWaitInfo, state *FrameState) Result
	BeginFrame(session Session, info *FrameBeginInfo) Result
	EndFrame(session Session, info *FrameEndInfo) Result
	LocateViews(session Session, info *ViewLocateInfo, state *ViewState, views []View) (uint32, Result)

	// PollEvent returns [EventUnavailable] when the queue is empty.
	PollEvent(instance Instance, buffer *EventDataBuffer) Result

	StringToPath(instance Instance, path string, out *Path) Result
	PathToString(instance Instance, path Path) (string, Result)

	CreateActionSet(instance Instance, info *ActionSetCreateInfo, set *ActionSet) Result
	DestroyActionSet(set ActionSet) Result
	CreateAction(set ActionSet, info *ActionCreateInfo, action *Action) Result
	DestroyAction(action Action) Result
	SuggestInteractionProfileBindings(instance Instance, info *InteractionProfileSuggestedBinding) Result
	AttachSessionActionSets(session Session, info *SessionActionSetsAttachInfo) Result
	GetCurrentInteractionProfile(session Session, topLevelUserPath Path, state *InteractionProfileState) Result
	SyncActions(session Session, info *ActionsSyncInfo) Result
	GetActionStateBoolean(session Session, info *ActionStateGetInfo, state *ActionStateBoolean) Result
	GetActionStateFloat(session Session, info *ActionStateGetInfo, state *ActionStateFloat) Result
	GetActionStateVector2f(session Session, info *ActionStateGetInfo, state *ActionStateVector2f) Result
	GetActionStatePose(session Session, info *ActionStateGetInfo, state *ActionStatePose) Result
	ApplyHapticFeedback(session Session, info *HapticActionInfo, vibration *HapticVibration) Result
	StopHapticFeedback(session Session, info *HapticActionInfo) Result
}

// Enumerate runs the two-call idiom against call: first for the
// count, then into a buffer of that size. If the count grows between
// the two calls the query is repeated.
func Enumerate[T any](call func(buf []T) (uint32, Result)) ([]T, Result) {
	return EnumerateWith(call, *new(T))
}

// EnumerateWith is [Enumerate] with every buffer element initialized
// to proto before the fill call, for records whose type tag is set
// by the caller.
func EnumerateWith[T any](call func(buf []T) (uint32, Result), proto T) ([]T, Result) {
	for {
		n, r := call(nil)
		if r.Failed() {
			return nil, r
		}
		if n == 0 {
			return nil, r
		}
		buf := make([]T, n)
		for i := range buf {
			buf[i] = proto
		}
		n, r = call(buf)
		if r == ErrorSizeInsufficient {
			continue
		}
		if r.Failed() {
			return nil, r
		}
		return buf[:n], r
	}
}

// Truncate cuts s so that it fits a fixed-size protocol string
// buffer of size bytes including the terminating NUL, without
// splitting a UTF-8 sequence.
func Truncate(s string, size int) string {
	if size <= 0 {
		return ""
	}
	n := size - 1
	if len(s) <= n {
		return s
	}
	for n > 0 && !runeStart(s[n]) {
		n--
	}
	return s[:n]
}

func runeStart(b byte) bool { return b&0xC0 != 0x80 }
