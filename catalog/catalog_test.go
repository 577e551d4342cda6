// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/xr/simulator"
	"cogentcore.org/xr/xr"
)

func setup(t *testing.T, rt *simulator.Runtime) (xr.Instance, xr.SystemID, xr.Session) {
	t.Helper()
	var inst xr.Instance
	require.Equal(t, xr.Success, rt.CreateInstance(&xr.InstanceCreateInfo{ApplicationInfo: xr.ApplicationInfo{
		ApplicationName: "catalog", APIVersion: xr.CurrentAPIVersion,
	}}, &inst))
	var sys xr.SystemID
	require.Equal(t, xr.Success, rt.GetSystem(inst, &xr.SystemGetInfo{FormFactor: xr.FormFactorHeadMountedDisplay}, &sys))
	var s xr.Session
	require.Equal(t, xr.Success, rt.CreateSession(inst, &xr.SessionCreateInfo{SystemID: sys}, &s))
	return inst, sys, s
}

func TestExtensions(t *testing.T) {
	rt := simulator.New()
	rt.Extensions = []string{"XR_KHR_vulkan_enable2", "XR_EXT_hp_mixed_reality_controller"}
	c := New(rt, nil)
	assert.False(t, c.IsExtensionSupported("XR_KHR_vulkan_enable2"))
	require.True(t, c.LoadExtensions())
	assert.True(t, c.IsExtensionSupported("XR_KHR_vulkan_enable2"))
	assert.False(t, c.IsExtensionSupported("XR_EXT_missing"))
	assert.Len(t, c.Extensions(), 2)

	rt.ResetCalls()
	require.True(t, c.LoadExtensions())
	assert.Zero(t, rt.CallCount("xrEnumerateInstanceExtensionProperties"), "cached")
}

func TestLoadFailureLeavesCacheEmpty(t *testing.T) {
	rt := simulator.New()
	rt.Extensions = []string{"XR_KHR_vulkan_enable2"}
	c := New(rt, nil)
	rt.FailNext("xrEnumerateInstanceExtensionProperties", xr.ErrorRuntimeFailure)
	assert.False(t, c.LoadExtensions())
	assert.Empty(t, c.Extensions())
	assert.False(t, c.IsExtensionSupported("XR_KHR_vulkan_enable2"))

	require.True(t, c.LoadExtensions(), "a failed load is retried")
	assert.True(t, c.IsExtensionSupported("XR_KHR_vulkan_enable2"))
}

func TestLayers(t *testing.T) {
	rt := simulator.New()
	rt.Layers = []xr.APILayerProperties{{LayerName: "XR_APILAYER_LUNARG_core_validation"}}
	c := New(rt, nil)
	require.True(t, c.LoadLayers())
	require.Len(t, c.Layers(), 1)
	assert.Equal(t, "XR_APILAYER_LUNARG_core_validation", c.Layers()[0].LayerName)
}

func TestViewConfigurations(t *testing.T) {
	rt := simulator.New()
	inst, sys, _ := setup(t, rt)
	c := New(rt, nil)

	assert.False(t, c.LoadViewConfigurationViews(inst, sys, xr.ViewConfigurationTypePrimaryStereo), "types not loaded")
	require.True(t, c.LoadViewConfigurationTypes(inst, sys))
	assert.True(t, c.IsViewConfigurationSupported(xr.ViewConfigurationTypePrimaryStereo))
	assert.False(t, c.IsViewConfigurationSupported(xr.ViewConfigurationTypePrimaryQuadVarjo))

	require.True(t, c.LoadViewConfigurationViews(inst, sys, xr.ViewConfigurationTypePrimaryStereo))
	views := c.Views(xr.ViewConfigurationTypePrimaryStereo)
	require.Len(t, views, 2)
	assert.Equal(t, uint32(1920), views[1].RecommendedImageRectHeight)
	assert.Nil(t, c.Views(xr.ViewConfigurationTypePrimaryMono))

	views[0].RecommendedImageRectWidth = 1
	assert.Equal(t, uint32(1832), c.Views(xr.ViewConfigurationTypePrimaryStereo)[0].RecommendedImageRectWidth, "copy")

	rt.ViewConfigs[xr.ViewConfigurationTypePrimaryMono] = nil
	assert.False(t, c.LoadViewConfigurationViews(inst, sys, xr.ViewConfigurationTypePrimaryMono), "no views")

	c.ResetSystem()
	assert.False(t, c.IsViewConfigurationSupported(xr.ViewConfigurationTypePrimaryStereo))
	assert.Nil(t, c.Views(xr.ViewConfigurationTypePrimaryStereo))
}

func TestSessionLists(t *testing.T) {
	rt := simulator.New()
	_, _, s := setup(t, rt)
	c := New(rt, nil)
	require.True(t, c.LoadReferenceSpaces(s))
	require.True(t, c.LoadSwapchainFormats(s))
	assert.True(t, c.IsReferenceSpaceSupported(xr.ReferenceSpaceTypeStage))
	assert.True(t, c.IsSwapchainFormatSupported(simulator.FormatSRGBA8))
	assert.False(t, c.IsSwapchainFormatSupported(1))
	assert.Equal(t, []int64{simulator.FormatRGBA8, simulator.FormatSRGBA8}, c.SwapchainFormats())

	c.ResetSession()
	assert.Empty(t, c.ReferenceSpaces())
	assert.False(t, c.IsReferenceSpaceSupported(xr.ReferenceSpaceTypeStage))

	rt.FailNext("xrEnumerateSwapchainFormats", xr.ErrorSessionLost)
	assert.False(t, c.LoadSwapchainFormats(s))
	assert.Empty(t, c.SwapchainFormats())
}

func TestReset(t *testing.T) {
	rt := simulator.New()
	rt.Extensions = []string{"XR_KHR_vulkan_enable2"}
	c := New(rt, nil)
	require.True(t, c.LoadExtensions())
	c.Reset()
	assert.False(t, c.IsExtensionSupported("XR_KHR_vulkan_enable2"))
}
