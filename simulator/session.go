// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simulator

import (
	"fmt"
	"slices"

	"cogentcore.org/xr/xr"
)

type session struct {
	handle   xr.Session
	state    xr.SessionState
	running  bool
	viewType xr.ViewConfigurationType

	spaces     map[xr.Space]*space
	swapchains map[xr.Swapchain]*swapchain

	frameWaited bool
	frameBegun  bool
	frameState  xr.FrameState
}

type space struct {
	refType   xr.ReferenceSpaceType
	action    xr.Action
	subaction xr.Path
	offset    xr.Posef
}

type swapchain struct {
	info xr.SwapchainCreateInfo

	// acquired holds the acquired image indexes, oldest first.
	acquired []uint32
	waited   int
	next     uint32

	// released is set when an image was released since the last
	// frame end that used this swapchain.
	released bool
}

func (rt *Runtime) getSession(s xr.Session) (*session, xr.Result) {
	if rt.session == nil || s == 0 || s != rt.session.handle {
		return nil, xr.ErrorHandleInvalid
	}
	return rt.session, xr.Success
}

// SessionState returns the state of the current session, as last
// delivered by PollEvent.
func (rt *Runtime) SessionState() xr.SessionState {
	if rt.session == nil {
		return xr.SessionStateUnknown
	}
	return rt.session.state
}

// SessionRunning returns whether the current session has begun and
// not yet ended.
func (rt *Runtime) SessionRunning() bool {
	return rt.session != nil && rt.session.running
}

// HasSession returns whether a session is alive.
func (rt *Runtime) HasSession() bool { return rt.session != nil }

// SpaceCount returns the number of live spaces of the session.
func (rt *Runtime) SpaceCount() int {
	if rt.session == nil {
		return 0
	}
	return len(rt.session.spaces)
}

// SwapchainCount returns the number of live swapchains of the session.
func (rt *Runtime) SwapchainCount() int {
	if rt.session == nil {
		return 0
	}
	return len(rt.session.swapchains)
}

func (rt *Runtime) CreateSession(instance xr.Instance, info *xr.SessionCreateInfo, out *xr.Session) xr.Result {
	if r, ok := rt.call("xrCreateSession"); ok {
		return r
	}
	if r := rt.checkSystem(instance, info.SystemID); r.Failed() {
		return r
	}
	if rt.session != nil {
		return xr.ErrorLimitReached
	}
	rt.session = &session{
		handle:     xr.Session(rt.handle()),
		state:      xr.SessionStateUnknown,
		spaces:     make(map[xr.Space]*space),
		swapchains: make(map[xr.Swapchain]*swapchain),
	}
	*out = rt.session.handle
	return xr.Success
}

func (rt *Runtime) DestroySession(s xr.Session) xr.Result {
	if r, ok := rt.call("xrDestroySession"); ok {
		return r
	}
	ss, r := rt.getSession(s)
	if r.Failed() {
		return r
	}
	for range ss.spaces {
		rt.leaks = append(rt.leaks, "space")
	}
	for range ss.swapchains {
		rt.leaks = append(rt.leaks, "swapchain")
	}
	rt.session = nil
	rt.attached = false
	for _, as := range rt.actionSets {
		as.attached = false
	}
	rt.activeSets = nil
	return xr.Success
}

func (rt *Runtime) BeginSession(s xr.Session, info *xr.SessionBeginInfo) xr.Result {
	if r, ok := rt.call("xrBeginSession"); ok {
		return r
	}
	ss, r := rt.getSession(s)
	if r.Failed() {
		return r
	}
	if ss.running {
		return xr.ErrorSessionRunning
	}
	if ss.state != xr.SessionStateReady {
		return xr.ErrorSessionNotReady
	}
	if _, ok := rt.ViewConfigs[info.PrimaryViewConfigurationType]; !ok {
		return xr.ErrorViewConfigurationTypeUnsupported
	}
	ss.running = true
	ss.viewType = info.PrimaryViewConfigurationType
	return xr.Success
}

func (rt *Runtime) EndSession(s xr.Session) xr.Result {
	if r, ok := rt.call("xrEndSession"); ok {
		return r
	}
	ss, r := rt.getSession(s)
	if r.Failed() {
		return r
	}
	if !ss.running {
		return xr.ErrorSessionNotRunning
	}
	if ss.state != xr.SessionStateStopping {
		return xr.ErrorSessionNotStopping
	}
	ss.running = false
	ss.frameBegun = false
	ss.frameWaited = false
	return xr.Success
}

func (rt *Runtime) RequestExitSession(s xr.Session) xr.Result {
	if r, ok := rt.call("xrRequestExitSession"); ok {
		return r
	}
	ss, r := rt.getSession(s)
	if r.Failed() {
		return r
	}
	if !ss.running {
		return xr.ErrorSessionNotRunning
	}
	rt.QueueSessionState(xr.SessionStateStopping)
	return xr.Success
}

func (rt *Runtime) EnumerateReferenceSpaces(s xr.Session, spaces []xr.ReferenceSpaceType) (uint32, xr.Result) {
	if r, ok := rt.call("xrEnumerateReferenceSpaces"); ok {
		return 0, r
	}
	if _, r := rt.getSession(s); r.Failed() {
		return 0, r
	}
	return enumerate(spaces, rt.ReferenceSpaces)
}

func (rt *Runtime) CreateReferenceSpace(s xr.Session, info *xr.ReferenceSpaceCreateInfo, out *xr.Space) xr.Result {
	if r, ok := rt.call("xrCreateReferenceSpace"); ok {
		return r
	}
	ss, r := rt.getSession(s)
	if r.Failed() {
		return r
	}
	if !slices.Contains(rt.ReferenceSpaces, info.ReferenceSpaceType) {
		return xr.ErrorReferenceSpaceUnsupported
	}
	h := xr.Space(rt.handle())
	ss.spaces[h] = &space{refType: info.ReferenceSpaceType, offset: info.PoseInReferenceSpace}
	*out = h
	return xr.Success
}

func (rt *Runtime) CreateActionSpace(s xr.Session, info *xr.ActionSpaceCreateInfo, out *xr.Space) xr.Result {
	if r, ok := rt.call("xrCreateActionSpace"); ok {
		return r
	}
	ss, r := rt.getSession(s)
	if r.Failed() {
		return r
	}
	a, ok := rt.actions[info.Action]
	if !ok {
		return xr.ErrorHandleInvalid
	}
	if a.actionType != xr.ActionTypePoseInput {
		return xr.ErrorActionTypeMismatch
	}
	if info.SubactionPath != xr.NullPath && !slices.Contains(a.subactions, info.SubactionPath) {
		return xr.ErrorPathUnsupported
	}
	h := xr.Space(rt.handle())
	ss.spaces[h] = &space{action: info.Action, subaction: info.SubactionPath, offset: info.PoseInActionSpace}
	*out = h
	return xr.Success
}

func (rt *Runtime) DestroySpace(sp xr.Space) xr.Result {
	if r, ok := rt.call("xrDestroySpace"); ok {
		return r
	}
	if rt.session == nil {
		return xr.ErrorHandleInvalid
	}
	if _, ok := rt.session.spaces[sp]; !ok {
		return xr.ErrorHandleInvalid
	}
	delete(rt.session.spaces, sp)
	return xr.Success
}

// SetViewLocation sets the location of the view space in every
// other reference space.
func (rt *Runtime) SetViewLocation(loc Location) { rt.view = loc }

// SetActionPose sets the location of the pose action with the
// given name on the given subaction path.
func (rt *Runtime) SetActionPose(action, subactionPath string, loc Location) {
	if rt.actionPoses == nil {
		rt.actionPoses = make(map[stateKey]Location)
	}
	rt.actionPoses[stateKey{action, subactionPath}] = loc
}

// locate returns the scripted location of a space relative to the
// reference spaces, which all share one origin.
func (rt *Runtime) locate(sp *space) Location {
	switch {
	case sp.action != 0:
		a := rt.actions[sp.action]
		if a == nil || !rt.attached {
			return Location{}
		}
		loc, ok := rt.actionPoses[stateKey{a.name, rt.pathName(sp.subaction)}]
		if !ok {
			return Location{}
		}
		return loc
	case sp.refType == xr.ReferenceSpaceTypeView:
		return rt.view
	}
	return Tracked(xr.IdentityPose())
}

func (rt *Runtime) LocateSpace(sp, base xr.Space, time xr.Time, location *xr.SpaceLocation) xr.Result {
	if r, ok := rt.call("xrLocateSpace"); ok {
		return r
	}
	if rt.session == nil {
		return xr.ErrorHandleInvalid
	}
	s, ok := rt.session.spaces[sp]
	if !ok {
		return xr.ErrorHandleInvalid
	}
	b, ok := rt.session.spaces[base]
	if !ok {
		return xr.ErrorHandleInvalid
	}
	if time <= 0 {
		return xr.ErrorTimeInvalid
	}
	loc := rt.locate(s)
	if bl := rt.locate(b); bl.Flags == 0 {
		loc = Location{}
	}
	location.LocationFlags = loc.Flags
	location.Pose = loc.Pose
	if vel, ok := xr.FindNext[*xr.SpaceVelocity](location.Next); ok {
		vel.VelocityFlags = loc.VelocityFlags
		vel.LinearVelocity = loc.LinearVelocity
		vel.AngularVelocity = loc.AngularVelocity
	}
	return xr.Success
}

func (rt *Runtime) EnumerateSwapchainFormats(s xr.Session, formats []int64) (uint32, xr.Result) {
	if r, ok := rt.call("xrEnumerateSwapchainFormats"); ok {
		return 0, r
	}
	if _, r := rt.getSession(s); r.Failed() {
		return 0, r
	}
	return enumerate(formats, rt.Formats)
}

func (rt *Runtime) CreateSwapchain(s xr.Session, info *xr.SwapchainCreateInfo, out *xr.Swapchain) xr.Result {
	if r, ok := rt.call("xrCreateSwapchain"); ok {
		return r
	}
	ss, r := rt.getSession(s)
	if r.Failed() {
		return r
	}
	if !slices.Contains(rt.Formats, info.Format) {
		return xr.ErrorSwapchainFormatUnsupported
	}
	if info.Width == 0 || info.Height == 0 || info.ArraySize == 0 || info.FaceCount == 0 || info.MipCount == 0 {
		return xr.ErrorValidationFailure
	}
	h := xr.Swapchain(rt.handle())
	ss.swapchains[h] = &swapchain{info: *info}
	*out = h
	return xr.Success
}

func (rt *Runtime) getSwapchain(sc xr.Swapchain) (*swapchain, xr.Result) {
	if rt.session == nil {
		return nil, xr.ErrorHandleInvalid
	}
	s, ok := rt.session.swapchains[sc]
	if !ok {
		return nil, xr.ErrorHandleInvalid
	}
	return s, xr.Success
}

// SwapchainInfo returns the create info of a live swapchain.
func (rt *Runtime) SwapchainInfo(sc xr.Swapchain) (xr.SwapchainCreateInfo, bool) {
	s, r := rt.getSwapchain(sc)
	if r.Failed() {
		return xr.SwapchainCreateInfo{}, false
	}
	return s.info, true
}

func (rt *Runtime) DestroySwapchain(sc xr.Swapchain) xr.Result {
	if r, ok := rt.call("xrDestroySwapchain"); ok {
		return r
	}
	if _, r := rt.getSwapchain(sc); r.Failed() {
		return r
	}
	delete(rt.session.swapchains, sc)
	return xr.Success
}

func (rt *Runtime) EnumerateSwapchainImages(sc xr.Swapchain, images []xr.SwapchainImage) (uint32, xr.Result) {
	if r, ok := rt.call("xrEnumerateSwapchainImages"); ok {
		return 0, r
	}
	if _, r := rt.getSwapchain(sc); r.Failed() {
		return 0, r
	}
	n := uint32(rt.ImageCount)
	if len(images) == 0 {
		return n, xr.Success
	}
	if len(images) < rt.ImageCount {
		return n, xr.ErrorSizeInsufficient
	}
	for i := range rt.ImageCount {
		images[i].Image = uint64(sc)<<8 | uint64(i+1)
	}
	return n, xr.Success
}

func (rt *Runtime) AcquireSwapchainImage(sc xr.Swapchain, info *xr.SwapchainImageAcquireInfo, index *uint32) xr.Result {
	if r, ok := rt.call("xrAcquireSwapchainImage"); ok {
		return r
	}
	s, r := rt.getSwapchain(sc)
	if r.Failed() {
		return r
	}
	if len(s.acquired) >= rt.ImageCount {
		return xr.ErrorCallOrderInvalid
	}
	*index = s.next
	s.acquired = append(s.acquired, s.next)
	s.next = (s.next + 1) % uint32(rt.ImageCount)
	return xr.Success
}

func (rt *Runtime) WaitSwapchainImage(sc xr.Swapchain, info *xr.SwapchainImageWaitInfo) xr.Result {
	if r, ok := rt.call("xrWaitSwapchainImage"); ok {
		return r
	}
	s, r := rt.getSwapchain(sc)
	if r.Failed() {
		return r
	}
	if s.waited >= len(s.acquired) {
		return xr.ErrorCallOrderInvalid
	}
	s.waited++
	return xr.Success
}

func (rt *Runtime) ReleaseSwapchainImage(sc xr.Swapchain, info *xr.SwapchainImageReleaseInfo) xr.Result {
	if r, ok := rt.call("xrReleaseSwapchainImage"); ok {
		return r
	}
	s, r := rt.getSwapchain(sc)
	if r.Failed() {
		return r
	}
	if s.waited == 0 {
		return xr.ErrorCallOrderInvalid
	}
	s.acquired = s.acquired[1:]
	s.waited--
	s.released = true
	return xr.Success
}

// AcquiredImages returns the number of acquired and not yet
// released images of a swapchain.
func (rt *Runtime) AcquiredImages(sc xr.Swapchain) int {
	s, r := rt.getSwapchain(sc)
	if r.Failed() {
		return 0
	}
	return len(s.acquired)
}

// QueueFrameState queues the frame state returned by the next
// WaitFrame call instead of a generated one. The display time
// is filled in if zero.
func (rt *Runtime) QueueFrameState(fs xr.FrameState) {
	rt.frames = append(rt.frames, fs)
}

func (rt *Runtime) WaitFrame(s xr.Session, info *xr.FrameWaitInfo, state *xr.FrameState) xr.Result {
	if r, ok := rt.call("xrWaitFrame"); ok {
		return r
	}
	ss, r := rt.getSession(s)
	if r.Failed() {
		return r
	}
	if !ss.running {
		return xr.ErrorSessionNotRunning
	}
	rt.now += xr.Time(rt.DisplayPeriod)
	var fs xr.FrameState
	if len(rt.frames) > 0 {
		fs = rt.frames[0]
		rt.frames = rt.frames[1:]
	} else {
		fs = xr.FrameState{
			PredictedDisplayPeriod: rt.DisplayPeriod,
			ShouldRender:           ss.state == xr.SessionStateVisible || ss.state == xr.SessionStateFocused,
		}
	}
	if fs.PredictedDisplayTime == 0 {
		fs.PredictedDisplayTime = rt.now
	}
	state.PredictedDisplayTime = fs.PredictedDisplayTime
	state.PredictedDisplayPeriod = fs.PredictedDisplayPeriod
	state.ShouldRender = fs.ShouldRender
	ss.frameState = fs
	ss.frameWaited = true
	return xr.Success
}

func (rt *Runtime) BeginFrame(s xr.Session, info *xr.FrameBeginInfo) xr.Result {
	if r, ok := rt.call("xrBeginFrame"); ok {
		return r
	}
	ss, r := rt.getSession(s)
	if r.Failed() {
		return r
	}
	if !ss.running {
		return xr.ErrorSessionNotRunning
	}
	if !ss.frameWaited {
		return xr.ErrorCallOrderInvalid
	}
	ss.frameWaited = false
	if ss.frameBegun {
		return xr.FrameDiscarded
	}
	ss.frameBegun = true
	return xr.Success
}

func (rt *Runtime) EndFrame(s xr.Session, info *xr.FrameEndInfo) xr.Result {
	if r, ok := rt.call("xrEndFrame"); ok {
		return r
	}
	ss, r := rt.getSession(s)
	if r.Failed() {
		return r
	}
	if !ss.running {
		return xr.ErrorSessionNotRunning
	}
	if !ss.frameBegun {
		return xr.ErrorCallOrderInvalid
	}
	if info.DisplayTime <= 0 {
		return xr.ErrorTimeInvalid
	}
	if uint32(len(info.Layers)) > rt.MaxLayerCount {
		return xr.ErrorLayerLimitExceeded
	}
	used := map[xr.Swapchain]bool{}
	for _, l := range info.Layers {
		if r := rt.checkLayer(ss, l, used); r.Failed() {
			return r
		}
	}
	for sc := range used {
		ss.swapchains[sc].released = false
	}
	ss.frameBegun = false
	cp := *info
	cp.Layers = slices.Clone(info.Layers)
	rt.endFrames = append(rt.endFrames, cp)
	return xr.Success
}

func (rt *Runtime) checkSubImage(ss *session, sub xr.SwapchainSubImage, used map[xr.Swapchain]bool) xr.Result {
	sc, ok := ss.swapchains[sub.Swapchain]
	if !ok {
		return xr.ErrorHandleInvalid
	}
	if !sc.released {
		return xr.ErrorLayerInvalid
	}
	if sub.ImageArrayIndex >= sc.info.ArraySize {
		return xr.ErrorValidationFailure
	}
	rect := sub.ImageRect
	if rect.Offset.X < 0 || rect.Offset.Y < 0 || rect.Extent.Width <= 0 || rect.Extent.Height <= 0 ||
		uint32(rect.Offset.X+rect.Extent.Width) > sc.info.Width ||
		uint32(rect.Offset.Y+rect.Extent.Height) > sc.info.Height {
		return xr.ErrorSwapchainRectInvalid
	}
	used[sub.Swapchain] = true
	return xr.Success
}

func (rt *Runtime) checkLayer(ss *session, l xr.CompositionLayer, used map[xr.Swapchain]bool) xr.Result {
	if _, ok := ss.spaces[l.LayerSpace()]; !ok {
		return xr.ErrorHandleInvalid
	}
	switch l := l.(type) {
	case *xr.CompositionLayerProjection:
		if len(l.Views) != len(rt.ViewConfigs[ss.viewType]) {
			return xr.ErrorValidationFailure
		}
		for _, v := range l.Views {
			if r := rt.checkSubImage(ss, v.SubImage, used); r.Failed() {
				return r
			}
		}
	case *xr.CompositionLayerQuad:
		return rt.checkSubImage(ss, l.SubImage, used)
	default:
		return xr.ErrorLayerInvalid
	}
	return xr.Success
}

// EndFrames returns every successfully submitted frame end, in order.
func (rt *Runtime) EndFrames() []xr.FrameEndInfo { return slices.Clone(rt.endFrames) }

// LastEndFrame returns the last successfully submitted frame end.
func (rt *Runtime) LastEndFrame() (xr.FrameEndInfo, bool) {
	if len(rt.endFrames) == 0 {
		return xr.FrameEndInfo{}, false
	}
	return rt.endFrames[len(rt.endFrames)-1], true
}

func (rt *Runtime) LocateViews(s xr.Session, info *xr.ViewLocateInfo, state *xr.ViewState, views []xr.View) (uint32, xr.Result) {
	if r, ok := rt.call("xrLocateViews"); ok {
		return 0, r
	}
	ss, r := rt.getSession(s)
	if r.Failed() {
		return 0, r
	}
	if _, ok := ss.spaces[info.Space]; !ok {
		return 0, xr.ErrorHandleInvalid
	}
	cfg, ok := rt.ViewConfigs[info.ViewConfigurationType]
	if !ok {
		return 0, xr.ErrorViewConfigurationTypeUnsupported
	}
	if info.DisplayTime <= 0 {
		return 0, xr.ErrorTimeInvalid
	}
	n := uint32(len(cfg))
	if len(views) == 0 {
		return n, xr.Success
	}
	if len(views) < len(cfg) {
		return n, xr.ErrorSizeInsufficient
	}
	state.ViewStateFlags = xr.ViewStateFlags(rt.view.Flags)
	for i := range cfg {
		pose := rt.view.Pose
		if len(cfg) > 1 {
			off := rt.EyeOffset
			if i == 0 {
				off = -off
			}
			pose.Position.X += off
		}
		views[i].Pose = pose
		views[i].Fov = rt.Fov
	}
	return n, xr.Success
}

func (s *session) String() string {
	return fmt.Sprintf("session(%d %s)", s.handle, s.state)
}
