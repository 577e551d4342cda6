// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openxr

import (
	"cogentcore.org/xr/xr"
	"cogentcore.org/xr/xrmath"
)

// maxDisplayPeriod is the longest display period taken at face
// value. Some runtimes report nonsense periods while not rendering.
const maxDisplayPeriod xr.Duration = 500000000

// PreRender waits for the next frame, locates the views at its
// predicted display time and begins it. It does nothing while the
// session is not running.
func (a *API) PreRender() {
	if !a.running {
		return
	}
	state := xr.FrameState{}
	if r := a.runtime.WaitFrame(a.session, &xr.FrameWaitInfo{}, &state); r.Failed() {
		a.callFailed("xrWaitFrame", r)
		a.frameState = xr.FrameState{}
		return
	}
	if state.PredictedDisplayPeriod > maxDisplayPeriod {
		a.log.Warn("openxr: runtime reported an invalid display period", "period", int64(state.PredictedDisplayPeriod))
		state.PredictedDisplayPeriod = 0
	}
	a.frameState = state
	a.metrics().DisplayPeriod(int64(state.PredictedDisplayPeriod))

	a.registry.PreRender()

	info := &xr.ViewLocateInfo{
		ViewConfigurationType: a.opts.ViewConfiguration,
		DisplayTime:           state.PredictedDisplayTime,
		Space:                 a.playSpace,
	}
	viewState := &xr.ViewState{}
	if _, r := a.runtime.LocateViews(a.session, info, viewState, a.views); r.Failed() {
		a.callFailed("xrLocateViews", r)
		return
	}

	valid := viewState.ViewStateFlags.Has(xr.ViewStateOrientationValid | xr.ViewStatePositionValid)
	if valid != a.viewPoseValid {
		a.viewPoseValid = valid
		if valid {
			a.log.Debug("openxr: view pose is valid")
		} else {
			a.log.Warn("openxr: view pose is not valid")
		}
	}

	if r := a.runtime.BeginFrame(a.session, &xr.FrameBeginInfo{}); r.Failed() {
		a.callFailed("xrBeginFrame", r)
	}
}

// CanRender returns whether the current frame should be rendered:
// the session runs, the runtime asked for rendering and the views
// were located.
func (a *API) CanRender() bool {
	return a.instance != 0 && a.session != 0 && a.running && a.viewPoseValid && a.frameState.ShouldRender
}

// PreDrawViewport returns whether the viewport should be drawn for
// this frame.
func (a *API) PreDrawViewport(target any) bool {
	return a.CanRender()
}

// PostDrawViewport acquires an image of the main swapchain on the
// first draw of the frame and copies the rendered target into it.
// Later draws of the same frame copy nothing.
func (a *API) PostDrawViewport(target any) {
	if !a.CanRender() || a.imageAcquired {
		return
	}
	if _, err := a.AcquireImage(); err != nil {
		return
	}
	a.graphics.CopyRenderTargetToImage(target, a.swapchain.Data, a.imageIndex)
}

// EndFrame submits the frame. A frame that was not rendered is
// submitted without layers, so that the runtime keeps its timing.
// So is a frame whose image could not be released.
func (a *API) EndFrame() error {
	if a.instance == 0 {
		return ErrNotInitialized
	}
	if !a.running {
		return nil
	}
	info := &xr.FrameEndInfo{
		DisplayTime:          a.frameState.PredictedDisplayTime,
		EnvironmentBlendMode: xr.EnvironmentBlendModeOpaque,
	}
	if a.frameState.ShouldRender && a.viewPoseValid && !a.imageAcquired && !a.noOutputLogged {
		a.log.Warn("openxr: no viewport was drawn, there is no rendered output")
		a.noOutputLogged = true
	}
	if !a.frameState.ShouldRender || !a.viewPoseValid || !a.imageAcquired {
		return a.submit(info)
	}

	// ReleaseImage logs and counts its own failure. The image cannot
	// be shown then, but the frame is still ended.
	if err := a.ReleaseImage(); err != nil {
		return a.submit(info)
	}
	for i := range a.projectionViews {
		a.projectionViews[i].Pose = a.views[i].Pose
		a.projectionViews[i].Fov = a.views[i].Fov
	}
	layers := a.registry.CompositionLayers()
	flags := xr.CompositionLayerCorrectChromaticAberration
	if len(layers) > 1 {
		flags |= xr.CompositionLayerBlendTextureSourceAlpha
	}
	projection := &xr.CompositionLayerProjection{
		LayerFlags: flags,
		Space:      a.playSpace,
		Views:      a.projectionViews,
	}
	info.Layers = append(layers, projection)
	return a.submit(info)
}

func (a *API) submit(info *xr.FrameEndInfo) error {
	if r := a.runtime.EndFrame(a.session, info); r.Failed() {
		a.callFailed("xrEndFrame", r)
		return xr.NewError("xrEndFrame", r)
	}
	a.metrics().FrameEnded(len(info.Layers))
	return nil
}

// FrameState returns the timing of the current frame.
func (a *API) FrameState() xr.FrameState { return a.frameState }

// NextFrameTime returns the predicted display time of the frame
// after the current one, or zero before the first frame.
func (a *API) NextFrameTime() xr.Time {
	if a.frameState.PredictedDisplayTime == 0 {
		return 0
	}
	return a.frameState.PredictedDisplayTime + xr.Time(a.frameState.PredictedDisplayPeriod)
}

// ViewTransform returns the pose of view i in the play space.
func (a *API) ViewTransform(i int) (xrmath.Transform3D, bool) {
	if !a.running || !a.viewPoseValid || i < 0 || i >= len(a.views) {
		return xrmath.IdentityTransform(), false
	}
	return xrmath.TransformFromPose(a.views[i].Pose), true
}

// ViewProjection returns the projection of view i in the depth
// convention of the graphics backend.
func (a *API) ViewProjection(i int, near, far float32) (xrmath.Projection, bool) {
	if !a.running || !a.viewPoseValid || i < 0 || i >= len(a.views) || a.graphics == nil {
		return xrmath.Projection{}, false
	}
	return a.graphics.CreateProjectionFov(a.views[i].Fov, near, far)
}
