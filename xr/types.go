// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xr

import "strconv"

// StructureType tags every extensible record of the protocol.
// The numeric values match the registry so records can be
// passed through to a runtime unchanged.
type StructureType int32

const (
	TypeUnknown                              StructureType = 0
	TypeAPILayerProperties                   StructureType = 1
	TypeExtensionProperties                  StructureType = 2
	TypeInstanceCreateInfo                   StructureType = 3
	TypeSystemGetInfo                        StructureType = 4
	TypeSystemProperties                     StructureType = 5
	TypeViewLocateInfo                       StructureType = 6
	TypeView                                 StructureType = 7
	TypeSessionCreateInfo                    StructureType = 8
	TypeSwapchainCreateInfo                  StructureType = 9
	TypeSessionBeginInfo                     StructureType = 10
	TypeViewState                            StructureType = 11
	TypeFrameEndInfo                         StructureType = 12
	TypeHapticVibration                      StructureType = 13
	TypeEventDataBuffer                      StructureType = 16
	TypeEventDataInstanceLossPending         StructureType = 17
	TypeEventDataSessionStateChanged         StructureType = 18
	TypeActionStateBoolean                   StructureType = 23
	TypeActionStateFloat                     StructureType = 24
	TypeActionStateVector2f                  StructureType = 25
	TypeActionStatePose                      StructureType = 27
	TypeActionSetCreateInfo                  StructureType = 28
	TypeActionCreateInfo                     StructureType = 29
	TypeInstanceProperties                   StructureType = 32
	TypeFrameWaitInfo                        StructureType = 33
	TypeCompositionLayerProjection           StructureType = 35
	TypeCompositionLayerQuad                 StructureType = 36
	TypeReferenceSpaceCreateInfo             StructureType = 37
	TypeActionSpaceCreateInfo                StructureType = 38
	TypeEventDataReferenceSpaceChangePending StructureType = 40
	TypeViewConfigurationView                StructureType = 41
	TypeSpaceLocation                        StructureType = 42
	TypeSpaceVelocity                        StructureType = 43
	TypeFrameState                           StructureType = 44
	TypeViewConfigurationProperties          StructureType = 45
	TypeFrameBeginInfo                       StructureType = 46
	TypeCompositionLayerProjectionView       StructureType = 48
	TypeEventDataEventsLost                  StructureType = 49
	TypeInteractionProfileSuggestedBinding   StructureType = 51
	TypeEventDataInteractionProfileChanged   StructureType = 52
	TypeInteractionProfileState              StructureType = 53
	TypeSwapchainImageAcquireInfo            StructureType = 55
	TypeSwapchainImageWaitInfo               StructureType = 56
	TypeSwapchainImageReleaseInfo            StructureType = 57
	TypeActionStateGetInfo                   StructureType = 58
	TypeHapticActionInfo                     StructureType = 59
	TypeSessionActionSetsAttachInfo          StructureType = 60
	TypeActionsSyncInfo                      StructureType = 61

	TypeSwapchainImageVulkanKHR           StructureType = 1000025000
	TypeEventDataVisibilityMaskChangedKHR StructureType = 1000031001
	TypeViveTrackerPathsHTCX              StructureType = 1000103000
	TypeEventDataViveTrackerConnectedHTCX StructureType = 1000103001
)

var structureTypeNames = map[StructureType]string{
	TypeUnknown:                              "XR_TYPE_UNKNOWN",
	TypeAPILayerProperties:                   "XR_TYPE_API_LAYER_PROPERTIES",
	TypeExtensionProperties:                  "XR_TYPE_EXTENSION_PROPERTIES",
	TypeInstanceCreateInfo:                   "XR_TYPE_INSTANCE_CREATE_INFO",
	TypeSystemGetInfo:                        "XR_TYPE_SYSTEM_GET_INFO",
	TypeSystemProperties:                     "XR_TYPE_SYSTEM_PROPERTIES",
	TypeViewLocateInfo:                       "XR_TYPE_VIEW_LOCATE_INFO",
	TypeView:                                 "XR_TYPE_VIEW",
	TypeSessionCreateInfo:                    "XR_TYPE_SESSION_CREATE_INFO",
	TypeSwapchainCreateInfo:                  "XR_TYPE_SWAPCHAIN_CREATE_INFO",
	TypeSessionBeginInfo:                     "XR_TYPE_SESSION_BEGIN_INFO",
	TypeViewState:                            "XR_TYPE_VIEW_STATE",
	TypeFrameEndInfo:                         "XR_TYPE_FRAME_END_INFO",
	TypeHapticVibration:                      "XR_TYPE_HAPTIC_VIBRATION",
	TypeEventDataBuffer:                      "XR_TYPE_EVENT_DATA_BUFFER",
	TypeEventDataInstanceLossPending:         "XR_TYPE_EVENT_DATA_INSTANCE_LOSS_PENDING",
	TypeEventDataSessionStateChanged:         "XR_TYPE_EVENT_DATA_SESSION_STATE_CHANGED",
	TypeActionStateBoolean:                   "XR_TYPE_ACTION_STATE_BOOLEAN",
	TypeActionStateFloat:                     "XR_TYPE_ACTION_STATE_FLOAT",
	TypeActionStateVector2f:                  "XR_TYPE_ACTION_STATE_VECTOR2F",
	TypeActionStatePose:                      "XR_TYPE_ACTION_STATE_POSE",
	TypeActionSetCreateInfo:                  "XR_TYPE_ACTION_SET_CREATE_INFO",
	TypeActionCreateInfo:                     "XR_TYPE_ACTION_CREATE_INFO",
	TypeInstanceProperties:                   "XR_TYPE_INSTANCE_PROPERTIES",
	TypeFrameWaitInfo:                        "XR_TYPE_FRAME_WAIT_INFO",
	TypeCompositionLayerProjection:           "XR_TYPE_COMPOSITION_LAYER_PROJECTION",
	TypeCompositionLayerQuad:                 "XR_TYPE_COMPOSITION_LAYER_QUAD",
	TypeReferenceSpaceCreateInfo:             "XR_TYPE_REFERENCE_SPACE_CREATE_INFO",
	TypeActionSpaceCreateInfo:                "XR_TYPE_ACTION_SPACE_CREATE_INFO",
	TypeEventDataReferenceSpaceChangePending: "XR_TYPE_EVENT_DATA_REFERENCE_SPACE_CHANGE_PENDING",
	TypeViewConfigurationView:                "XR_TYPE_VIEW_CONFIGURATION_VIEW",
	TypeSpaceLocation:                        "XR_TYPE_SPACE_LOCATION",
	TypeSpaceVelocity:                        "XR_TYPE_SPACE_VELOCITY",
	TypeFrameState:                           "XR_TYPE_FRAME_STATE",
	TypeViewConfigurationProperties:          "XR_TYPE_VIEW_CONFIGURATION_PROPERTIES",
	TypeFrameBeginInfo:                       "XR_TYPE_FRAME_BEGIN_INFO",
	TypeCompositionLayerProjectionView:       "XR_TYPE_COMPOSITION_LAYER_PROJECTION_VIEW",
	TypeEventDataEventsLost:                  "XR_TYPE_EVENT_DATA_EVENTS_LOST",
	TypeInteractionProfileSuggestedBinding:   "XR_TYPE_INTERACTION_PROFILE_SUGGESTED_BINDING",
	TypeEventDataInteractionProfileChanged:   "XR_TYPE_EVENT_DATA_INTERACTION_PROFILE_CHANGED",
	TypeInteractionProfileState:              "XR_TYPE_INTERACTION_PROFILE_STATE",
	TypeSwapchainImageAcquireInfo:            "XR_TYPE_SWAPCHAIN_IMAGE_ACQUIRE_INFO",
	TypeSwapchainImageWaitInfo:               "XR_TYPE_SWAPCHAIN_IMAGE_WAIT_INFO",
	TypeSwapchainImageReleaseInfo:            "XR_TYPE_SWAPCHAIN_IMAGE_RELEASE_INFO",
	TypeActionStateGetInfo:                   "XR_TYPE_ACTION_STATE_GET_INFO",
	TypeHapticActionInfo:                     "XR_TYPE_HAPTIC_ACTION_INFO",
	TypeSessionActionSetsAttachInfo:          "XR_TYPE_SESSION_ACTION_SETS_ATTACH_INFO",
	TypeActionsSyncInfo:                      "XR_TYPE_ACTIONS_SYNC_INFO",
	TypeSwapchainImageVulkanKHR:              "XR_TYPE_SWAPCHAIN_IMAGE_VULKAN_KHR",
	TypeEventDataVisibilityMaskChangedKHR:    "XR_TYPE_EVENT_DATA_VISIBILITY_MASK_CHANGED_KHR",
	TypeViveTrackerPathsHTCX:                 "XR_TYPE_VIVE_TRACKER_PATHS_HTCX",
	TypeEventDataViveTrackerConnectedHTCX:    "XR_TYPE_EVENT_DATA_VIVE_TRACKER_CONNECTED_HTCX",
}

func (t StructureType) String() string {
	if nm, ok := structureTypeNames[t]; ok {
		return nm
	}
	return "XR_TYPE_" + strconv.Itoa(int(t))
}

// FormFactor is the physical kind of device the application targets.
type FormFactor int32

const (
	FormFactorHeadMountedDisplay FormFactor = 1
	FormFactorHandheldDisplay    FormFactor = 2
)

func (f FormFactor) String() string {
	switch f {
	case FormFactorHeadMountedDisplay:
		return "XR_FORM_FACTOR_HEAD_MOUNTED_DISPLAY"
	case FormFactorHandheldDisplay:
		return "XR_FORM_FACTOR_HANDHELD_DISPLAY"
	}
	return "XR_FORM_FACTOR_" + strconv.Itoa(int(f))
}

// ViewConfigurationType selects how many views are rendered and
// how they relate to each other.
type ViewConfigurationType int32

const (
	ViewConfigurationTypePrimaryMono                          ViewConfigurationType = 1
	ViewConfigurationTypePrimaryStereo                        ViewConfigurationType = 2
	ViewConfigurationTypePrimaryQuadVarjo                     ViewConfigurationType = 1000037000
	ViewConfigurationTypeSecondaryMonoFirstPersonObserverMSFT ViewConfigurationType = 1000054000
)

func (v ViewConfigurationType) String() string {
	switch v {
	case ViewConfigurationTypePrimaryMono:
		return "XR_VIEW_CONFIGURATION_TYPE_PRIMARY_MONO"
	case ViewConfigurationTypePrimaryStereo:
		return "XR_VIEW_CONFIGURATION_TYPE_PRIMARY_STEREO"
	case ViewConfigurationTypePrimaryQuadVarjo:
		return "XR_VIEW_CONFIGURATION_TYPE_PRIMARY_QUAD_VARJO"
	case ViewConfigurationTypeSecondaryMonoFirstPersonObserverMSFT:
		return "XR_VIEW_CONFIGURATION_TYPE_SECONDARY_MONO_FIRST_PERSON_OBSERVER_MSFT"
	}
	return "XR_VIEW_CONFIGURATION_TYPE_" + strconv.Itoa(int(v))
}

// ReferenceSpaceType is the well-known anchor a reference space
// is created against.
type ReferenceSpaceType int32

const (
	ReferenceSpaceTypeView  ReferenceSpaceType = 1
	ReferenceSpaceTypeLocal ReferenceSpaceType = 2
	ReferenceSpaceTypeStage ReferenceSpaceType = 3
)

func (r ReferenceSpaceType) String() string {
	switch r {
	case ReferenceSpaceTypeView:
		return "XR_REFERENCE_SPACE_TYPE_VIEW"
	case ReferenceSpaceTypeLocal:
		return "XR_REFERENCE_SPACE_TYPE_LOCAL"
	case ReferenceSpaceTypeStage:
		return "XR_REFERENCE_SPACE_TYPE_STAGE"
	}
	return "XR_REFERENCE_SPACE_TYPE_" + strconv.Itoa(int(r))
}

// EnvironmentBlendMode says how rendered content is combined with
// the real world.
type EnvironmentBlendMode int32

const (
	EnvironmentBlendModeOpaque     EnvironmentBlendMode = 1
	EnvironmentBlendModeAdditive   EnvironmentBlendMode = 2
	EnvironmentBlendModeAlphaBlend EnvironmentBlendMode = 3
)

// ActionType is the runtime data type of an action.
type ActionType int32

const (
	ActionTypeBooleanInput    ActionType = 1
	ActionTypeFloatInput      ActionType = 2
	ActionTypeVector2fInput   ActionType = 3
	ActionTypePoseInput       ActionType = 4
	ActionTypeVibrationOutput ActionType = 100
)

func (a ActionType) String() string {
	switch a {
	case ActionTypeBooleanInput:
		return "XR_ACTION_TYPE_BOOLEAN_INPUT"
	case ActionTypeFloatInput:
		return "XR_ACTION_TYPE_FLOAT_INPUT"
	case ActionTypeVector2fInput:
		return "XR_ACTION_TYPE_VECTOR2F_INPUT"
	case ActionTypePoseInput:
		return "XR_ACTION_TYPE_POSE_INPUT"
	case ActionTypeVibrationOutput:
		return "XR_ACTION_TYPE_VIBRATION_OUTPUT"
	}
	return "XR_ACTION_TYPE_" + strconv.Itoa(int(a))
}

// SessionState is the lifecycle state of a session as reported
// by the runtime through [EventDataSessionStateChanged].
type SessionState int32

const (
	SessionStateUnknown      SessionState = 0
	SessionStateIdle         SessionState = 1
	SessionStateReady        SessionState = 2
	SessionStateSynchronized SessionState = 3
	SessionStateVisible      SessionState = 4
	SessionStateFocused      SessionState = 5
	SessionStateStopping     SessionState = 6
	SessionStateLossPending  SessionState = 7
	SessionStateExiting      SessionState = 8

	// SessionStateMax is one past the last known state.
	SessionStateMax SessionState = 9
)

func (s SessionState) String() string {
	switch s {
	case SessionStateUnknown:
		return "XR_SESSION_STATE_UNKNOWN"
	case SessionStateIdle:
		return "XR_SESSION_STATE_IDLE"
	case SessionStateReady:
		return "XR_SESSION_STATE_READY"
	case SessionStateSynchronized:
		return "XR_SESSION_STATE_SYNCHRONIZED"
	case SessionStateVisible:
		return "XR_SESSION_STATE_VISIBLE"
	case SessionStateFocused:
		return "XR_SESSION_STATE_FOCUSED"
	case SessionStateStopping:
		return "XR_SESSION_STATE_STOPPING"
	case SessionStateLossPending:
		return "XR_SESSION_STATE_LOSS_PENDING"
	case SessionStateExiting:
		return "XR_SESSION_STATE_EXITING"
	}
	return "XR_SESSION_STATE_" + strconv.Itoa(int(s))
}

// SpaceLocationFlags report which parts of a located pose are valid.
type SpaceLocationFlags uint64

const (
	SpaceLocationOrientationValid   SpaceLocationFlags = 0x00000001
	SpaceLocationPositionValid      SpaceLocationFlags = 0x00000002
	SpaceLocationOrientationTracked SpaceLocationFlags = 0x00000004
	SpaceLocationPositionTracked    SpaceLocationFlags = 0x00000008

	// SpaceLocationAll is every location flag, a fully tracked pose.
	SpaceLocationAll = SpaceLocationOrientationValid | SpaceLocationPositionValid | SpaceLocationOrientationTracked | SpaceLocationPositionTracked
)

// Has returns true if all of the given flags are set.
func (f SpaceLocationFlags) Has(flag SpaceLocationFlags) bool { return f&flag == flag }

// SpaceVelocityFlags report which velocities are valid.
type SpaceVelocityFlags uint64

const (
	SpaceVelocityLinearValid  SpaceVelocityFlags = 0x00000001
	SpaceVelocityAngularValid SpaceVelocityFlags = 0x00000002
)

// Has returns true if all of the given flags are set.
func (f SpaceVelocityFlags) Has(flag SpaceVelocityFlags) bool { return f&flag == flag }

// ViewStateFlags report which parts of the located views are valid.
type ViewStateFlags uint64

const (
	ViewStateOrientationValid   ViewStateFlags = 0x00000001
	ViewStatePositionValid      ViewStateFlags = 0x00000002
	ViewStateOrientationTracked ViewStateFlags = 0x00000004
	ViewStatePositionTracked    ViewStateFlags = 0x00000008
)

// Has returns true if all of the given flags are set.
func (f ViewStateFlags) Has(flag ViewStateFlags) bool { return f&flag == flag }

// SwapchainUsageFlags describe how swapchain images will be used.
type SwapchainUsageFlags uint64

const (
	SwapchainUsageColorAttachment SwapchainUsageFlags = 0x00000001
	SwapchainUsageDepthStencil    SwapchainUsageFlags = 0x00000002
	SwapchainUsageUnorderedAccess SwapchainUsageFlags = 0x00000004
	SwapchainUsageTransferSrc     SwapchainUsageFlags = 0x00000008
	SwapchainUsageTransferDst     SwapchainUsageFlags = 0x00000010
	SwapchainUsageSampled         SwapchainUsageFlags = 0x00000020
	SwapchainUsageMutableFormat   SwapchainUsageFlags = 0x00000040
)

// CompositionLayerFlags control how a layer is composited.
type CompositionLayerFlags uint64

const (
	CompositionLayerCorrectChromaticAberration CompositionLayerFlags = 0x00000001
	CompositionLayerBlendTextureSourceAlpha    CompositionLayerFlags = 0x00000002
	CompositionLayerUnpremultipliedAlpha       CompositionLayerFlags = 0x00000004
)

// EyeVisibility selects which eyes a quad layer is shown to.
type EyeVisibility int32

const (
	EyeVisibilityBoth  EyeVisibility = 0
	EyeVisibilityLeft  EyeVisibility = 1
	EyeVisibilityRight EyeVisibility = 2
)
