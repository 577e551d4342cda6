// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package catalog queries and caches the capabilities of an XR
// runtime: api layers, instance extensions, view configurations,
// reference spaces and swapchain formats.
package catalog

import (
	"log/slog"
	"slices"
	"strconv"

	"cogentcore.org/xr/xr"
)

// Catalog caches the capabilities reported by a runtime.
// Every Load method uses the two-call enumerate idiom and is a
// no-op once its result is cached. On failure a Load method returns
// false and leaves its cache empty; callers treat that as fatal
// to the setup step that needed it.
type Catalog struct {
	// ErrorString formats a result for logging. It defaults to
	// [xr.Result.String] and is replaced by the runtime lookup once
	// an instance exists.
	ErrorString func(xr.Result) string

	// FormatName formats a swapchain format for logging.
	FormatName func(int64) string

	runtime xr.Runtime
	log     *slog.Logger

	layers     []xr.APILayerProperties
	extensions []xr.ExtensionProperties
	viewTypes  []xr.ViewConfigurationType
	views      map[xr.ViewConfigurationType][]xr.ViewConfigurationView
	spaces     []xr.ReferenceSpaceType
	formats    []int64

	layersLoaded     bool
	extensionsLoaded bool
	viewTypesLoaded  bool
	spacesLoaded     bool
	formatsLoaded    bool
}

// New returns a new empty catalog for the given runtime,
// logging to log (or the default logger if nil).
func New(rt xr.Runtime, log *slog.Logger) *Catalog {
	if log == nil {
		log = slog.Default()
	}
	return &Catalog{
		runtime:     rt,
		log:         log,
		ErrorString: xr.Result.String,
		FormatName: func(f int64) string {
			return "Swapchain format " + strconv.FormatInt(f, 10)
		},
	}
}

// LoadLayers loads the api layers available for instance creation.
func (c *Catalog) LoadLayers() bool {
	if c.layersLoaded {
		return true
	}
	layers, r := xr.EnumerateWith(c.runtime.EnumerateAPILayerProperties, xr.APILayerProperties{})
	if r.Failed() {
		c.log.Error("catalog.LoadLayers: failed to enumerate api layer properties", "result", r.String())
		return false
	}
	for _, l := range layers {
		c.log.Debug("catalog: found api layer", "layer", l.LayerName)
	}
	c.layers = layers
	c.layersLoaded = true
	return true
}

// LoadExtensions loads the instance extensions the runtime supports.
// No instance exists yet, so errors are formatted from the code only.
func (c *Catalog) LoadExtensions() bool {
	if c.extensionsLoaded {
		return true
	}
	exts, r := xr.Enumerate(func(buf []xr.ExtensionProperties) (uint32, xr.Result) {
		return c.runtime.EnumerateInstanceExtensionProperties("", buf)
	})
	if r.Failed() {
		c.log.Error("catalog.LoadExtensions: failed to enumerate extension properties", "result", r.String())
		return false
	}
	for _, e := range exts {
		c.log.Debug("catalog: found extension", "extension", e.ExtensionName)
	}
	c.extensions = exts
	c.extensionsLoaded = true
	return true
}

// IsExtensionSupported returns whether the named extension was
// reported by [Catalog.LoadExtensions].
func (c *Catalog) IsExtensionSupported(name string) bool {
	return slices.ContainsFunc(c.extensions, func(e xr.ExtensionProperties) bool {
		return e.ExtensionName == name
	})
}

// LoadViewConfigurationTypes loads the view configurations of the
// given system.
func (c *Catalog) LoadViewConfigurationTypes(instance xr.Instance, system xr.SystemID) bool {
	if c.viewTypesLoaded {
		return true
	}
	types, r := xr.Enumerate(func(buf []xr.ViewConfigurationType) (uint32, xr.Result) {
		return c.runtime.EnumerateViewConfigurations(instance, system, buf)
	})
	if r.Failed() {
		c.log.Error("catalog.LoadViewConfigurationTypes: failed to enumerate view configurations", "result", c.ErrorString(r))
		return false
	}
	for _, t := range types {
		c.log.Debug("catalog: found view configuration", "type", t.String())
	}
	c.viewTypes = types
	c.viewTypesLoaded = true
	return true
}

// IsViewConfigurationSupported returns whether the given view
// configuration was reported by [Catalog.LoadViewConfigurationTypes].
func (c *Catalog) IsViewConfigurationSupported(t xr.ViewConfigurationType) bool {
	return slices.Contains(c.viewTypes, t)
}

// LoadViewConfigurationViews loads the per view render target
// descriptions of the given view configuration, which must be
// supported.
func (c *Catalog) LoadViewConfigurationViews(instance xr.Instance, system xr.SystemID, t xr.ViewConfigurationType) bool {
	if _, ok := c.views[t]; ok {
		return true
	}
	if !c.IsViewConfigurationSupported(t) {
		c.log.Error("catalog.LoadViewConfigurationViews: view configuration is not supported", "type", t.String())
		return false
	}
	views, r := xr.Enumerate(func(buf []xr.ViewConfigurationView) (uint32, xr.Result) {
		return c.runtime.EnumerateViewConfigurationViews(instance, system, t, buf)
	})
	if r.Failed() {
		c.log.Error("catalog.LoadViewConfigurationViews: failed to enumerate view configuration views", "result", c.ErrorString(r))
		return false
	}
	if len(views) == 0 {
		c.log.Error("catalog.LoadViewConfigurationViews: view configuration has no views", "type", t.String())
		return false
	}
	for i, v := range views {
		c.log.Debug("catalog: found view configuration view", "view", i,
			"width", v.MaxImageRectWidth, "height", v.MaxImageRectHeight,
			"samples", v.MaxSwapchainSampleCount,
			"recommendedWidth", v.RecommendedImageRectWidth,
			"recommendedHeight", v.RecommendedImageRectHeight,
			"recommendedSamples", v.RecommendedSwapchainSampleCount)
	}
	if c.views == nil {
		c.views = make(map[xr.ViewConfigurationType][]xr.ViewConfigurationView)
	}
	c.views[t] = views
	return true
}

// LoadReferenceSpaces loads the reference spaces of the given session.
func (c *Catalog) LoadReferenceSpaces(session xr.Session) bool {
	if c.spacesLoaded {
		return true
	}
	spaces, r := xr.Enumerate(func(buf []xr.ReferenceSpaceType) (uint32, xr.Result) {
		return c.runtime.EnumerateReferenceSpaces(session, buf)
	})
	if r.Failed() {
		c.log.Error("catalog.LoadReferenceSpaces: failed to enumerate reference spaces", "result", c.ErrorString(r))
		return false
	}
	for _, s := range spaces {
		c.log.Info("catalog: found reference space", "type", s.String())
	}
	c.spaces = spaces
	c.spacesLoaded = true
	return true
}

// IsReferenceSpaceSupported returns whether the given reference
// space was reported by [Catalog.LoadReferenceSpaces].
func (c *Catalog) IsReferenceSpaceSupported(t xr.ReferenceSpaceType) bool {
	return slices.Contains(c.spaces, t)
}

// LoadSwapchainFormats loads the swapchain formats of the given session.
func (c *Catalog) LoadSwapchainFormats(session xr.Session) bool {
	if c.formatsLoaded {
		return true
	}
	formats, r := xr.Enumerate(func(buf []int64) (uint32, xr.Result) {
		return c.runtime.EnumerateSwapchainFormats(session, buf)
	})
	if r.Failed() {
		c.log.Error("catalog.LoadSwapchainFormats: failed to enumerate swapchain formats", "result", c.ErrorString(r))
		return false
	}
	for _, f := range formats {
		c.log.Info("catalog: found swapchain format", "format", c.FormatName(f))
	}
	c.formats = formats
	c.formatsLoaded = true
	return true
}

// IsSwapchainFormatSupported returns whether the given format was
// reported by [Catalog.LoadSwapchainFormats].
func (c *Catalog) IsSwapchainFormatSupported(format int64) bool {
	return slices.Contains(c.formats, format)
}

// Layers returns a copy of the loaded api layers.
func (c *Catalog) Layers() []xr.APILayerProperties { return slices.Clone(c.layers) }

// Extensions returns a copy of the loaded extensions.
func (c *Catalog) Extensions() []xr.ExtensionProperties { return slices.Clone(c.extensions) }

// ViewConfigurationTypes returns a copy of the loaded view configurations.
func (c *Catalog) ViewConfigurationTypes() []xr.ViewConfigurationType {
	return slices.Clone(c.viewTypes)
}

// Views returns a copy of the loaded views of the given view
// configuration, or nil if they are not loaded.
func (c *Catalog) Views(t xr.ViewConfigurationType) []xr.ViewConfigurationView {
	return slices.Clone(c.views[t])
}

// ReferenceSpaces returns a copy of the loaded reference spaces.
func (c *Catalog) ReferenceSpaces() []xr.ReferenceSpaceType { return slices.Clone(c.spaces) }

// SwapchainFormats returns a copy of the loaded swapchain formats.
func (c *Catalog) SwapchainFormats() []int64 { return slices.Clone(c.formats) }

// ResetSession drops the caches that belong to a session,
// which must be done when the session is destroyed.
func (c *Catalog) ResetSession() {
	c.spaces, c.spacesLoaded = nil, false
	c.formats, c.formatsLoaded = nil, false
}

// ResetSystem drops the caches that belong to a system,
// which must be done when the instance is destroyed.
func (c *Catalog) ResetSystem() {
	c.ResetSession()
	c.viewTypes, c.viewTypesLoaded = nil, false
	c.views = nil
}

// Reset drops every cache.
func (c *Catalog) Reset() {
	c.ResetSystem()
	c.layers, c.layersLoaded = nil, false
	c.extensions, c.extensionsLoaded = nil, false
}
