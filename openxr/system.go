// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openxr

import "cogentcore.org/xr/xr"

// SystemInfo describes the device the instance found for the
// configured form factor.
type SystemInfo struct {
	ID       xr.SystemID
	Name     string
	VendorID uint32
	Graphics xr.SystemGraphicsProperties
	Tracking xr.SystemTrackingProperties
}

func (a *API) getSystemInfo() bool {
	var sys xr.SystemID
	if r := a.runtime.GetSystem(a.instance, &xr.SystemGetInfo{FormFactor: a.opts.FormFactor}, &sys); r.Failed() {
		a.log.Error("openxr.getSystemInfo: failed to get system for form factor",
			"formFactor", a.opts.FormFactor.String(), "result", a.ErrorString(r))
		return false
	}
	props := xr.SystemProperties{Next: a.registry.SystemPropertiesNext()}
	if r := a.runtime.GetSystemProperties(a.instance, sys, &props); r.Failed() {
		a.log.Error("openxr.getSystemInfo: failed to get system properties", "result", a.ErrorString(r))
		return false
	}
	a.system = SystemInfo{
		ID:       sys,
		Name:     props.SystemName,
		VendorID: props.VendorID,
		Graphics: props.GraphicsProperties,
		Tracking: props.TrackingProperties,
	}
	a.log.Info("openxr: found system", "system", props.SystemName, "vendor", props.VendorID)
	return true
}

// SystemInfo returns the system found by [API.Initialize].
func (a *API) SystemInfo() SystemInfo { return a.system }

// ViewCount returns the number of views of the primary view
// configuration, zero before its views are loaded.
func (a *API) ViewCount() int {
	return len(a.catalog.Views(a.opts.ViewConfiguration))
}

// RecommendedTargetSize returns the recommended render target size
// of the first view, zero before the views are loaded.
func (a *API) RecommendedTargetSize() (width, height uint32) {
	views := a.catalog.Views(a.opts.ViewConfiguration)
	if len(views) == 0 {
		a.log.Error("openxr.RecommendedTargetSize: view configuration views are not loaded")
		return 0, 0
	}
	return views[0].RecommendedImageRectWidth, views[0].RecommendedImageRectHeight
}
