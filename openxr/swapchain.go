// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openxr

import (
	"cogentcore.org/xr/xr"
)

// imageWaitTimeout bounds the wait for an acquired image: 17ms,
// about one frame at 60Hz.
const imageWaitTimeout xr.Duration = 17000000

// Swapchain is a swapchain with the graphics data of its images.
type Swapchain struct {
	Handle    xr.Swapchain
	Format    int64
	Width     uint32
	Height    uint32
	Samples   uint32
	ArraySize uint32

	// Data is owned by the graphics backend.
	Data any
}

// createSwapchain creates a swapchain and lets the graphics backend
// set up its images.
func (a *API) createSwapchain(format int64, width, height, samples, arraySize uint32) (Swapchain, bool) {
	info := &xr.SwapchainCreateInfo{
		Next:        a.registry.SwapchainCreateNext(),
		UsageFlags:  xr.SwapchainUsageSampled | xr.SwapchainUsageColorAttachment,
		Format:      format,
		SampleCount: samples,
		Width:       width,
		Height:      height,
		FaceCount:   1,
		ArraySize:   arraySize,
		MipCount:    1,
	}
	var h xr.Swapchain
	if r := a.runtime.CreateSwapchain(a.session, info, &h); r.Failed() {
		a.log.Error("openxr: failed to create swapchain", "format", a.graphics.SwapchainFormatName(format), "result", a.ErrorString(r))
		return Swapchain{}, false
	}
	data, ok := a.graphics.SwapchainImageData(a.runtime, h, format, width, height, samples, arraySize)
	if !ok {
		a.log.Error("openxr: failed to get swapchain image data")
		if r := a.runtime.DestroySwapchain(h); r.Failed() {
			a.log.Error("openxr: failed to destroy swapchain", "result", a.ErrorString(r))
		}
		return Swapchain{}, false
	}
	return Swapchain{
		Handle: h, Format: format,
		Width: width, Height: height, Samples: samples, ArraySize: arraySize,
		Data: data,
	}, true
}

// chooseSwapchainFormat returns the first format usable by the
// graphics backend that the runtime supports. Without a match it
// falls back to the best usable format.
func (a *API) chooseSwapchainFormat() (int64, bool) {
	usable := a.graphics.UsableSwapchainFormats()
	if len(usable) == 0 {
		a.log.Error("openxr: graphics backend has no usable swapchain formats")
		return 0, false
	}
	for _, f := range usable {
		if a.catalog.IsSwapchainFormatSupported(f) {
			return f, true
		}
	}
	a.log.Error("openxr: couldn't find usable swap chain format, using fallback", "format", a.graphics.SwapchainFormatName(usable[0]))
	return usable[0], true
}

// createMainSwapchain creates the swapchain the views render into,
// one array layer per view, and lays out the projection views.
func (a *API) createMainSwapchain() bool {
	if a.graphics == nil {
		a.log.Error("openxr: no graphics backend for the main swapchain")
		return false
	}
	a.freeMainSwapchain()
	views := a.catalog.Views(a.opts.ViewConfiguration)
	if len(views) == 0 {
		a.log.Error("openxr: view configuration views not loaded")
		return false
	}
	format, ok := a.chooseSwapchainFormat()
	if !ok {
		return false
	}
	w, h := a.RecommendedTargetSize()
	sc, ok := a.createSwapchain(format, w, h, views[0].RecommendedSwapchainSampleCount, uint32(len(views)))
	if !ok {
		return false
	}
	a.swapchain = sc
	a.views = make([]xr.View, len(views))
	a.projectionViews = make([]xr.CompositionLayerProjectionView, len(views))
	for i := range a.projectionViews {
		a.projectionViews[i].SubImage = xr.SwapchainSubImage{
			Swapchain: sc.Handle,
			ImageRect: xr.Rect2Di{
				Extent: xr.Extent2Di{Width: int32(w), Height: int32(h)},
			},
			ImageArrayIndex: uint32(i),
		}
	}
	a.log.Info("openxr: main swapchain created", "format", a.graphics.SwapchainFormatName(format),
		"width", w, "height", h, "views", len(views))
	return true
}

func (a *API) freeMainSwapchain() {
	if a.swapchain.Handle == 0 {
		return
	}
	if a.graphics != nil {
		a.graphics.CleanupSwapchainGraphicsData(a.swapchain.Data)
	}
	if r := a.runtime.DestroySwapchain(a.swapchain.Handle); r.Failed() {
		a.log.Error("openxr: failed to destroy swapchain", "result", a.ErrorString(r))
	}
	a.swapchain = Swapchain{}
	a.views = nil
	a.projectionViews = nil
	a.imageAcquired = false
}

// MainSwapchain returns the swapchain the views render into. Its
// handle is zero while the session is not running.
func (a *API) MainSwapchain() Swapchain { return a.swapchain }

// AcquireImage acquires the next image of the main swapchain and
// waits until it can be rendered into.
func (a *API) AcquireImage() (uint32, error) {
	if a.imageAcquired {
		return a.imageIndex, ErrImageAlreadyAcquired
	}
	if a.swapchain.Handle == 0 {
		return 0, ErrNotRunning
	}
	var index uint32
	if r := a.runtime.AcquireSwapchainImage(a.swapchain.Handle, &xr.SwapchainImageAcquireInfo{}, &index); r.Failed() {
		a.callFailed("xrAcquireSwapchainImage", r)
		return 0, xr.NewError("xrAcquireSwapchainImage", r)
	}
	if r := a.runtime.WaitSwapchainImage(a.swapchain.Handle, &xr.SwapchainImageWaitInfo{Timeout: imageWaitTimeout}); r.Failed() {
		a.callFailed("xrWaitSwapchainImage", r)
		return 0, xr.NewError("xrWaitSwapchainImage", r)
	}
	a.imageAcquired = true
	a.imageIndex = index
	return index, nil
}

// ReleaseImage releases the acquired image back to the runtime.
// The image counts as released even if the call fails.
func (a *API) ReleaseImage() error {
	if !a.imageAcquired {
		return ErrNoImageAcquired
	}
	a.imageAcquired = false
	if r := a.runtime.ReleaseSwapchainImage(a.swapchain.Handle, &xr.SwapchainImageReleaseInfo{}); r.Failed() {
		a.callFailed("xrReleaseSwapchainImage", r)
		return xr.NewError("xrReleaseSwapchainImage", r)
	}
	return nil
}

// ImageAcquired returns whether an image of the main swapchain is
// held, and its index.
func (a *API) ImageAcquired() (uint32, bool) { return a.imageIndex, a.imageAcquired }
