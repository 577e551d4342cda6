// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package extension

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/xr/simulator"
	"cogentcore.org/xr/xr"
)

type recorder struct {
	Base
	name     string
	log      *[]string
	handles  bool
	optional bool
	flag     bool
}

func (r *recorder) RequestedExtensions() map[string]*bool {
	if r.optional {
		return map[string]*bool{"XR_EXT_" + r.name: &r.flag}
	}
	return map[string]*bool{"XR_KHR_" + r.name: nil}
}

func (r *recorder) OnStateReady() { *r.log = append(*r.log, r.name+":ready") }
func (r *recorder) OnInstanceDestroyed() { *r.log = append(*r.log, r.name+":destroyed") }
func (r *recorder) OnEvent(ev xr.Event) bool {
	*r.log = append(*r.log, r.name+":event")
	return r.handles
}
func (r *recorder) SessionCreateNext() []xr.Chained {
	return []xr.Chained{&xr.SystemGetInfo{}}
}

type layerProvider struct {
	layer xr.CompositionLayer
}

func (p *layerProvider) CompositionLayer() xr.CompositionLayer { return p.layer }

func TestRegistryOrder(t *testing.T) {
	var log []string
	var reg Registry
	reg.Register(&recorder{name: "a", log: &log})
	reg.Register(&recorder{name: "b", log: &log, handles: true})
	reg.Register(&recorder{name: "c", log: &log})
	assert.Equal(t, 3, reg.Len())

	reg.StateChanged(xr.SessionStateReady)
	reg.StateChanged(xr.SessionState(42))
	reg.InstanceDestroyed()
	assert.True(t, reg.Event(&xr.EventDataEventsLost{}))
	assert.Equal(t, []string{
		"a:ready", "b:ready", "c:ready",
		"a:destroyed", "b:destroyed", "c:destroyed",
		"a:event", "b:event", "c:event",
	}, log)

	assert.Len(t, reg.SessionCreateNext(), 3)
	assert.Empty(t, reg.SystemPropertiesNext())

	reg.Clear()
	assert.Zero(t, reg.Len())
	assert.False(t, reg.Event(&xr.EventDataEventsLost{}))
}

func TestRequested(t *testing.T) {
	var log []string
	var reg Registry
	a := &recorder{name: "shared", log: &log, optional: true}
	b := &recorder{name: "shared", log: &log, optional: true}
	reg.Register(a)
	reg.Register(b)
	reg.Register(&recorder{name: "mandatory", log: &log})

	reqs := reg.Requested()
	require.Len(t, reqs, 2)
	assert.Equal(t, "XR_EXT_shared", reqs[0].Name)
	assert.False(t, reqs[0].Mandatory)
	assert.Len(t, reqs[0].Flags, 2)
	assert.Equal(t, "XR_KHR_mandatory", reqs[1].Name)
	assert.True(t, reqs[1].Mandatory)

	reqs[0].Resolve(true)
	assert.True(t, a.flag)
	assert.True(t, b.flag)
}

func TestCompositionLayers(t *testing.T) {
	var reg Registry
	quad := &xr.CompositionLayerQuad{Space: 1}
	reg.RegisterCompositionLayerProvider(&layerProvider{})
	reg.RegisterCompositionLayerProvider(&layerProvider{layer: quad})
	layers := reg.CompositionLayers()
	require.Len(t, layers, 1)
	assert.Same(t, quad, layers[0])
}

func TestViveTracker(t *testing.T) {
	rt := simulator.New()
	rt.Extensions = []string{ViveTrackerExtension}
	var inst xr.Instance
	require.Equal(t, xr.Success, rt.CreateInstance(&xr.InstanceCreateInfo{
		ApplicationInfo:       xr.ApplicationInfo{ApplicationName: "vive", APIVersion: xr.CurrentAPIVersion},
		EnabledExtensionNames: []string{ViveTrackerExtension},
	}, &inst))

	var persistent, role xr.Path
	require.Equal(t, xr.Success, rt.StringToPath(inst, "/devices/htc/vive_tracker_htcx/lhr_1234", &persistent))
	require.Equal(t, xr.Success, rt.StringToPath(inst, "/user/vive_tracker_htcx/role/waist", &role))

	vt := &ViveTracker{}
	var got []string
	vt.OnConnected = func(p, r string) { got = append(got, p, r) }
	assert.False(t, vt.SupportsPath(ViveTrackerProfile))
	assert.True(t, vt.SupportsPath("/user/hand/left"))

	var reg Registry
	reg.Register(vt)
	reqs := reg.Requested()
	require.Len(t, reqs, 1)
	reqs[0].Resolve(true)
	assert.True(t, vt.Available())
	assert.True(t, vt.SupportsPath("/user/vive_tracker_htcx/role/waist"))

	reg.InstanceCreated(rt, inst)
	ev := &xr.EventDataViveTrackerConnectedHTCX{Paths: &xr.ViveTrackerPathsHTCX{PersistentPath: persistent, RolePath: role}}
	assert.True(t, reg.Event(ev))
	assert.Equal(t, []string{"/devices/htc/vive_tracker_htcx/lhr_1234", "/user/vive_tracker_htcx/role/waist"}, got)
	assert.Equal(t, []string{"/devices/htc/vive_tracker_htcx/lhr_1234"}, vt.Connected())
	assert.False(t, reg.Event(&xr.EventDataEventsLost{}))

	reg.InstanceDestroyed()
	assert.Empty(t, vt.Connected())
}
