// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package headless provides a graphics backend that keeps swapchain
// images in memory as [image.RGBA] layers. It is used to run a
// session without a GPU, for tests, capture and the simulator demo.
package headless

import (
	"image"
	"log/slog"
	"strconv"

	"golang.org/x/image/draw"

	"cogentcore.org/xr/extension"
	"cogentcore.org/xr/xr"
	"cogentcore.org/xr/xrmath"
)

// HeadlessExtension is the runtime extension that allows a session
// without a graphics binding.
const HeadlessExtension = "XR_MND_headless"

// Swapchain formats, with the numeric values of the corresponding
// Vulkan formats so that they match what runtimes report.
const (
	FormatRGBA8  int64 = 37
	FormatSRGBA8 int64 = 43
)

var formatNames = map[int64]string{
	FormatRGBA8:  "VK_FORMAT_R8G8B8A8_UNORM",
	FormatSRGBA8: "VK_FORMAT_R8G8B8A8_SRGB",
}

// Graphics is the in-memory graphics backend. The zero value is
// not usable; use [New].
type Graphics struct {
	extension.Base

	// Formats are the usable swapchain formats, best first.
	Formats []int64

	// Scaler scales render targets that do not match the swapchain
	// size. It defaults to [draw.BiLinear].
	Scaler draw.Scaler

	headless bool
	copies   int
}

// New returns a headless backend that prefers sRGB images.
func New() *Graphics {
	return &Graphics{
		Formats: []int64{FormatSRGBA8, FormatRGBA8},
		Scaler:  draw.BiLinear,
	}
}

var _ extension.Graphics = (*Graphics)(nil)

func (g *Graphics) RequestedExtensions() map[string]*bool {
	return map[string]*bool{HeadlessExtension: &g.headless}
}

// Headless returns whether the runtime supports sessions without
// a graphics binding.
func (g *Graphics) Headless() bool { return g.headless }

// Copies returns the number of render target copies made so far.
func (g *Graphics) Copies() int { return g.copies }

func (g *Graphics) UsableSwapchainFormats() []int64 { return g.Formats }

func (g *Graphics) SwapchainFormatName(format int64) string {
	if nm, ok := formatNames[format]; ok {
		return nm
	}
	return "Swapchain format " + strconv.FormatInt(format, 10)
}

// Swapchain is the backing data of one swapchain: for every image
// of the swapchain one RGBA image per array layer.
type Swapchain struct {
	Format  int64
	Width   int
	Height  int
	Samples uint32

	// Handles are the native image handles reported by the runtime.
	Handles []uint64

	// Images is indexed by swapchain image, then array layer.
	Images [][]*image.RGBA
}

// Layer returns the given array layer of the given image, or nil.
func (sc *Swapchain) Layer(index, layer int) *image.RGBA {
	if index < 0 || index >= len(sc.Images) || layer < 0 || layer >= len(sc.Images[index]) {
		return nil
	}
	return sc.Images[index][layer]
}

func (g *Graphics) SwapchainImageData(rt xr.Runtime, swapchain xr.Swapchain, format int64, width, height, samples, arraySize uint32) (any, bool) {
	images, r := xr.EnumerateWith(func(buf []xr.SwapchainImage) (uint32, xr.Result) {
		return rt.EnumerateSwapchainImages(swapchain, buf)
	}, xr.SwapchainImage{Type: xr.TypeSwapchainImageVulkanKHR})
	if r.Failed() {
		slog.Error("headless.SwapchainImageData: failed to enumerate swapchain images", "result", r.String())
		return nil, false
	}
	if len(images) == 0 {
		slog.Error("headless.SwapchainImageData: swapchain has no images")
		return nil, false
	}
	sc := &Swapchain{
		Format:  format,
		Width:   int(width),
		Height:  int(height),
		Samples: samples,
		Handles: make([]uint64, len(images)),
		Images:  make([][]*image.RGBA, len(images)),
	}
	for i, im := range images {
		sc.Handles[i] = im.Image
		layers := make([]*image.RGBA, arraySize)
		for l := range layers {
			layers[l] = image.NewRGBA(image.Rect(0, 0, sc.Width, sc.Height))
		}
		sc.Images[i] = layers
	}
	return sc, true
}

// CopyRenderTargetToImage copies target into image index of the
// swapchain. The target is an [image.Image], which is copied into
// every array layer, or an []image.Image with one image per layer.
// Targets of a different size are scaled.
func (g *Graphics) CopyRenderTargetToImage(target any, data any, index uint32) {
	sc, ok := data.(*Swapchain)
	if !ok || int(index) >= len(sc.Images) {
		slog.Error("headless.CopyRenderTargetToImage: invalid swapchain image", "index", index)
		return
	}
	layers := sc.Images[index]
	switch t := target.(type) {
	case image.Image:
		for _, dst := range layers {
			g.copyImage(dst, t)
		}
	case []image.Image:
		for l, dst := range layers {
			if l < len(t) && t[l] != nil {
				g.copyImage(dst, t[l])
			}
		}
	default:
		slog.Error("headless.CopyRenderTargetToImage: unsupported render target", "target", target)
		return
	}
	g.copies++
}

func (g *Graphics) copyImage(dst *image.RGBA, src image.Image) {
	if src.Bounds().Size() == dst.Bounds().Size() {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		return
	}
	g.Scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
}

func (g *Graphics) CleanupSwapchainGraphicsData(data any) {
	if sc, ok := data.(*Swapchain); ok {
		sc.Images = nil
		sc.Handles = nil
	}
}

// CreateProjectionFov returns a projection with a zero to one depth
// range, the Vulkan convention.
func (g *Graphics) CreateProjectionFov(fov xr.Fovf, near, far float32) (xrmath.Projection, bool) {
	if near <= 0 || far <= near {
		return xrmath.Projection{}, false
	}
	return xrmath.ProjectionFromFov(fov, near, far, xrmath.DepthZeroToOne), true
}
