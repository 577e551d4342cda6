// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xr

// Chained is implemented by every extensible record. The Next
// field of a record holds the side-tables chained onto it, which
// is how extensions attach their data to a base call.
type Chained interface {
	StructureType() StructureType
}

// FindNext returns the first record of type T in the given chain.
func FindNext[T Chained](next []Chained) (T, bool) {
	for _, n := range next {
		if t, ok := n.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

type Vector2f struct {
	X, Y float32
}

type Vector3f struct {
	X, Y, Z float32
}

type Quaternionf struct {
	X, Y, Z, W float32
}

// Posef is a rigid transform: an orientation followed by a position.
type Posef struct {
	Orientation Quaternionf
	Position    Vector3f
}

// IdentityPose returns the pose with no rotation at the origin.
func IdentityPose() Posef {
	return Posef{Orientation: Quaternionf{W: 1}}
}

// Fovf holds the four half-angles of a view frustum in radians.
// AngleLeft and AngleDown are normally negative.
type Fovf struct {
	AngleLeft  float32
	AngleRight float32
	AngleUp    float32
	AngleDown  float32
}

type Offset2Di struct {
	X, Y int32
}

type Extent2Di struct {
	Width, Height int32
}

type Extent2Df struct {
	Width, Height float32
}

type Rect2Di struct {
	Offset Offset2Di
	Extent Extent2Di
}

type APILayerProperties struct {
	Next         []Chained
	LayerName    string
	SpecVersion  Version
	LayerVersion uint32
	Description  string
}

func (*APILayerProperties) StructureType() StructureType { return TypeAPILayerProperties }

type ExtensionProperties struct {
	Next             []Chained
	ExtensionName    string
	ExtensionVersion uint32
}

func (*ExtensionProperties) StructureType() StructureType { return TypeExtensionProperties }

type ApplicationInfo struct {
	ApplicationName    string
	ApplicationVersion uint32
	EngineName         string
	EngineVersion      uint32
	APIVersion         Version
}

type InstanceCreateInfo struct {
	Next                  []Chained
	ApplicationInfo       ApplicationInfo
	EnabledAPILayerNames  []string
	EnabledExtensionNames []string
}

func (*InstanceCreateInfo) StructureType() StructureType { return TypeInstanceCreateInfo }

type InstanceProperties struct {
	Next           []Chained
	RuntimeVersion Version
	RuntimeName    string
}

func (*InstanceProperties) StructureType() StructureType { return TypeInstanceProperties }

type SystemGetInfo struct {
	Next       []Chained
	FormFactor FormFactor
}

func (*SystemGetInfo) StructureType() StructureType { return TypeSystemGetInfo }

type SystemGraphicsProperties struct {
	MaxSwapchainImageHeight uint32
	MaxSwapchainImageWidth  uint32
	MaxLayerCount           uint32
}

type SystemTrackingProperties struct {
	OrientationTracking bool
	PositionTracking    bool
}

type SystemProperties struct {
	Next               []Chained
	SystemID           SystemID
	VendorID           uint32
	SystemName         string
	GraphicsProperties SystemGraphicsProperties
	TrackingProperties SystemTrackingProperties
}

func (*SystemProperties) StructureType() StructureType { return TypeSystemProperties }

// ViewConfigurationView describes the render target of one view.
type ViewConfigurationView struct {
	Next                            []Chained
	RecommendedImageRectWidth       uint32
	MaxImageRectWidth               uint32
	RecommendedImageRectHeight      uint32
	MaxImageRectHeight              uint32
	RecommendedSwapchainSampleCount uint32
	MaxSwapchainSampleCount         uint32
}

func (*ViewConfigurationView) StructureType() StructureType { return TypeViewConfigurationView }

type SessionCreateInfo struct {
	Next        []Chained
	CreateFlags uint64
	SystemID    SystemID
}

func (*SessionCreateInfo) StructureType() StructureType { return TypeSessionCreateInfo }

type SessionBeginInfo struct {
	Next                         []Chained
	PrimaryViewConfigurationType ViewConfigurationType
}

func (*SessionBeginInfo) StructureType() StructureType { return TypeSessionBeginInfo }

type ReferenceSpaceCreateInfo struct {
	Next                 []Chained
	ReferenceSpaceType   ReferenceSpaceType
	PoseInReferenceSpace Posef
}

func (*ReferenceSpaceCreateInfo) StructureType() StructureType { return TypeReferenceSpaceCreateInfo }

type ActionSpaceCreateInfo struct {
	Next              []Chained
	Action            Action
	SubactionPath     Path
	PoseInActionSpace Posef
}

func (*ActionSpaceCreateInfo) StructureType() StructureType { return TypeActionSpaceCreateInfo }

// SpaceLocation receives a located pose. Chain a [*SpaceVelocity]
// onto Next to receive velocities in the same call.
type SpaceLocation struct {
	Next          []Chained
	LocationFlags SpaceLocationFlags
	Pose          Posef
}

func (*SpaceLocation) StructureType() StructureType { return TypeSpaceLocation }

type SpaceVelocity struct {
	Next            []Chained
	VelocityFlags   SpaceVelocityFlags
	LinearVelocity  Vector3f
	AngularVelocity Vector3f
}

func (*SpaceVelocity) StructureType() StructureType { return TypeSpaceVelocity }

type SwapchainCreateInfo struct {
	Next        []Chained
	CreateFlags uint64
	UsageFlags  SwapchainUsageFlags
	Format      int64
	SampleCount uint32
	Width       uint32
	Height      uint32
	FaceCount   uint32
	ArraySize   uint32
	MipCount    uint32
}

func (*SwapchainCreateInfo) StructureType() StructureType { return TypeSwapchainCreateInfo }

// SwapchainImage is the graphics-specific image record returned
// by EnumerateSwapchainImages. Type is chosen by the graphics
// backend, Image is its native image handle.
type SwapchainImage struct {
	Type  StructureType
	Next  []Chained
	Image uint64
}

func (s *SwapchainImage) StructureType() StructureType { return s.Type }

type SwapchainImageAcquireInfo struct {
	Next []Chained
}

func (*SwapchainImageAcquireInfo) StructureType() StructureType { return TypeSwapchainImageAcquireInfo }

type SwapchainImageWaitInfo struct {
	Next    []Chained
	Timeout Duration
}

func (*SwapchainImageWaitInfo) StructureType() StructureType { return TypeSwapchainImageWaitInfo }

type SwapchainImageReleaseInfo struct {
	Next []Chained
}

func (*SwapchainImageReleaseInfo) StructureType() StructureType { return TypeSwapchainImageReleaseInfo }

type FrameWaitInfo struct {
	Next []Chained
}

func (*FrameWaitInfo) StructureType() StructureType { return TypeFrameWaitInfo }

// FrameState is the timing the runtime predicts for the next frame.
type FrameState struct {
	Next                   []Chained
	PredictedDisplayTime   Time
	PredictedDisplayPeriod Duration
	ShouldRender           bool
}

func (*FrameState) StructureType() StructureType { return TypeFrameState }

type FrameBeginInfo struct {
	Next []Chained
}

func (*FrameBeginInfo) StructureType() StructureType { return TypeFrameBeginInfo }

// CompositionLayer is a layer submitted to the compositor in
// [FrameEndInfo.Layers].
type CompositionLayer interface {
	Chained

	// LayerSpace is the space the layer is positioned in.
	LayerSpace() Space
}

type FrameEndInfo struct {
	Next                 []Chained
	DisplayTime          Time
	EnvironmentBlendMode EnvironmentBlendMode
	Layers               []CompositionLayer
}

func (*FrameEndInfo) StructureType() StructureType { return TypeFrameEndInfo }

type SwapchainSubImage struct {
	Swapchain       Swapchain
	ImageRect       Rect2Di
	ImageArrayIndex uint32
}

type CompositionLayerProjectionView struct {
	Next     []Chained
	Pose     Posef
	Fov      Fovf
	SubImage SwapchainSubImage
}

func (*CompositionLayerProjectionView) StructureType() StructureType {
	return TypeCompositionLayerProjectionView
}

type CompositionLayerProjection struct {
	Next       []Chained
	LayerFlags CompositionLayerFlags
	Space      Space
	Views      []CompositionLayerProjectionView
}

func (*CompositionLayerProjection) StructureType() StructureType {
	return TypeCompositionLayerProjection
}

func (l *CompositionLayerProjection) LayerSpace() Space { return l.Space }

type CompositionLayerQuad struct {
	Next          []Chained
	LayerFlags    CompositionLayerFlags
	Space         Space
	EyeVisibility EyeVisibility
	SubImage      SwapchainSubImage
	Pose          Posef
	Size          Extent2Df
}

func (*CompositionLayerQuad) StructureType() StructureType { return TypeCompositionLayerQuad }

func (l *CompositionLayerQuad) LayerSpace() Space { return l.Space }

type ViewLocateInfo struct {
	Next                  []Chained
	ViewConfigurationType ViewConfigurationType
	DisplayTime           Time
	Space                 Space
}

func (*ViewLocateInfo) StructureType() StructureType { return TypeViewLocateInfo }

type ViewState struct {
	Next           []Chained
	ViewStateFlags ViewStateFlags
}

func (*ViewState) StructureType() StructureType { return TypeViewState }

// View is the located pose and field of view of one view.
type View struct {
	Next []Chained
	Pose Posef
	Fov  Fovf
}

func (*View) StructureType() StructureType { return TypeView }

type ActionSetCreateInfo struct {
	Next                   []Chained
	ActionSetName          string
	LocalizedActionSetName string
	Priority               uint32
}

func (*ActionSetCreateInfo) StructureType() StructureType { return TypeActionSetCreateInfo }

type ActionCreateInfo struct {
	Next                []Chained
	ActionName          string
	ActionType          ActionType
	SubactionPaths      []Path
	LocalizedActionName string
}

func (*ActionCreateInfo) StructureType() StructureType { return TypeActionCreateInfo }

type ActionSuggestedBinding struct {
	Action  Action
	Binding Path
}

type InteractionProfileSuggestedBinding struct {
	Next               []Chained
	InteractionProfile Path
	SuggestedBindings  []ActionSuggestedBinding
}

func (*InteractionProfileSuggestedBinding) StructureType() StructureType {
	return TypeInteractionProfileSuggestedBinding
}

type SessionActionSetsAttachInfo struct {
	Next       []Chained
	ActionSets []ActionSet
}

func (*SessionActionSetsAttachInfo) StructureType() StructureType {
	return TypeSessionActionSetsAttachInfo
}

type InteractionProfileState struct {
	Next               []Chained
	InteractionProfile Path
}

func (*InteractionProfileState) StructureType() StructureType { return TypeInteractionProfileState }

type ActiveActionSet struct {
	ActionSet     ActionSet
	SubactionPath Path
}

type ActionsSyncInfo struct {
	Next             []Chained
	ActiveActionSets []ActiveActionSet
}

func (*ActionsSyncInfo) StructureType() StructureType { return TypeActionsSyncInfo }

type ActionStateGetInfo struct {
	Next          []Chained
	Action        Action
	SubactionPath Path
}

func (*ActionStateGetInfo) StructureType() StructureType { return TypeActionStateGetInfo }

type ActionStateBoolean struct {
	Next                 []Chained
	CurrentState         bool
	ChangedSinceLastSync bool
	LastChangeTime       Time
	IsActive             bool
}

func (*ActionStateBoolean) StructureType() StructureType { return TypeActionStateBoolean }

type ActionStateFloat struct {
	Next                 []Chained
	CurrentState         float32
	ChangedSinceLastSync bool
	LastChangeTime       Time
	IsActive             bool
}

func (*ActionStateFloat) StructureType() StructureType { return TypeActionStateFloat }

type ActionStateVector2f struct {
	Next                 []Chained
	CurrentState         Vector2f
	ChangedSinceLastSync bool
	LastChangeTime       Time
	IsActive             bool
}

func (*ActionStateVector2f) StructureType() StructureType { return TypeActionStateVector2f }

type ActionStatePose struct {
	Next     []Chained
	IsActive bool
}

func (*ActionStatePose) StructureType() StructureType { return TypeActionStatePose }

type HapticActionInfo struct {
	Next          []Chained
	Action        Action
	SubactionPath Path
}

func (*HapticActionInfo) StructureType() StructureType { return TypeHapticActionInfo }

type HapticVibration struct {
	Next      []Chained
	Duration  Duration
	Frequency float32
	Amplitude float32
}

func (*HapticVibration) StructureType() StructureType { return TypeHapticVibration }

// ViveTrackerPathsHTCX names a connected vive tracker.
type ViveTrackerPathsHTCX struct {
	Next           []Chained
	PersistentPath Path
	RolePath       Path
}

func (*ViveTrackerPathsHTCX) StructureType() StructureType { return TypeViveTrackerPathsHTCX }
