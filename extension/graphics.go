// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package extension

import (
	"cogentcore.org/xr/xr"
	"cogentcore.org/xr/xrmath"
)

// Graphics is the graphics backend wrapper. It is registered like
// any other wrapper, and additionally owns the images behind the
// swapchains.
type Graphics interface {
	Wrapper

	// UsableSwapchainFormats returns the swapchain formats the backend
	// can render to, best first.
	UsableSwapchainFormats() []int64

	// SwapchainFormatName returns a readable name for a format.
	SwapchainFormatName(format int64) string

	// SwapchainImageData enumerates the images of a new swapchain and
	// allocates whatever the backend needs to render into them.
	// The returned data is passed back to the other methods.
	SwapchainImageData(rt xr.Runtime, swapchain xr.Swapchain, format int64, width, height, samples, arraySize uint32) (any, bool)

	// CopyRenderTargetToImage copies the backend render target into
	// swapchain image index.
	CopyRenderTargetToImage(target any, data any, index uint32)

	// CleanupSwapchainGraphicsData frees the data of a swapchain.
	CleanupSwapchainGraphicsData(data any)

	// CreateProjectionFov returns the projection of an asymmetric
	// field of view in the backend's depth convention.
	CreateProjectionFov(fov xr.Fovf, near, far float32) (xrmath.Projection, bool)
}

// CompositionLayerProvider adds a composition layer to every frame.
type CompositionLayerProvider interface {

	// CompositionLayer returns the layer for this frame, or a nil
	// interface to add none.
	CompositionLayer() xr.CompositionLayer
}
