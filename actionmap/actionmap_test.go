// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package actionmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/xr/headless"
	"cogentcore.org/xr/openxr"
	"cogentcore.org/xr/rid"
	"cogentcore.org/xr/simulator"
	"cogentcore.org/xr/xr"
)

const simpleController = "/interaction_profiles/khr/simple_controller"

func TestDefault(t *testing.T) {
	m := Default()
	require.NoError(t, m.Validate())
	require.Len(t, m.ActionSets, 1)
	assert.Equal(t, DefaultActionSet, m.ActionSets[0].Name)
	assert.Len(t, m.ActionSets[0].Actions, 20)
	assert.Len(t, m.InteractionProfiles, 6)

	set, act, ok := m.Action("godot/aim_pose")
	require.True(t, ok)
	assert.Equal(t, "godot", set.Name)
	assert.Equal(t, openxr.ActionTypePose, act.Type)
	assert.Equal(t, []string{"/user/hand/left", "/user/hand/right"}, act.TopLevelPaths)

	_, _, ok = m.Action("aim_pose")
	assert.False(t, ok)
	_, _, ok = m.Action("godot/aim/pose")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	hand := []string{"/user/hand/left"}
	tests := []struct {
		name string
		m    ActionMap
		err  string
	}{
		{"duplicate set", ActionMap{ActionSets: []ActionSet{{Name: "a"}, {Name: "a"}}}, `duplicate action set "a"`},
		{"unnamed set", ActionMap{ActionSets: []ActionSet{{}}}, "action set without a name"},
		{"duplicate action", ActionMap{ActionSets: []ActionSet{{Name: "a", Actions: []Action{
			{Name: "x", TopLevelPaths: hand}, {Name: "x", TopLevelPaths: hand},
		}}}}, `duplicate action "x" in set "a"`},
		{"unknown type", ActionMap{ActionSets: []ActionSet{{Name: "a", Actions: []Action{
			{Name: "x", Type: openxr.ActionType(12), TopLevelPaths: hand},
		}}}}, "unknown type"},
		{"no paths", ActionMap{ActionSets: []ActionSet{{Name: "a", Actions: []Action{{Name: "x"}}}}}, "no top level paths"},
		{"unknown action", ActionMap{InteractionProfiles: []InteractionProfile{{
			Path: simpleController, Bindings: []Binding{{Action: "a/missing"}},
		}}}, `binds unknown action "a/missing"`},
		{"duplicate profile", ActionMap{InteractionProfiles: []InteractionProfile{
			{Path: simpleController}, {Path: simpleController},
		}}, "duplicate interaction profile"},
		{"foreign path", ActionMap{
			ActionSets: []ActionSet{{Name: "a", Actions: []Action{{Name: "x", TopLevelPaths: hand}}}},
			InteractionProfiles: []InteractionProfile{{
				Path: simpleController, Bindings: []Binding{{Action: "a/x", Paths: []string{"/user/hand/right/input/select/click"}}},
			}},
		}, "not under its top level paths"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}

const tomlMap = `
[[action_sets]]
name = "game"
localized_name = "Game"
priority = 1

[[action_sets.actions]]
name = "shoot"
type = "bool"
top_level_paths = ["/user/hand/right"]

[[action_sets.actions]]
name = "aim"
type = "pose"
top_level_paths = ["/user/hand/right"]

[[interaction_profiles]]
path = "/interaction_profiles/khr/simple_controller"

[[interaction_profiles.bindings]]
action = "game/shoot"
paths = ["/user/hand/right/input/select/click"]

[[interaction_profiles.bindings]]
action = "game/aim"
paths = ["/user/hand/right/input/aim/pose"]
`

const yamlMap = `
action_sets:
  - name: game
    localized_name: Game
    priority: 1
    actions:
      - name: shoot
        type: bool
        top_level_paths: [/user/hand/right]
      - name: aim
        type: pose
        top_level_paths: [/user/hand/right]
interaction_profiles:
  - path: /interaction_profiles/khr/simple_controller
    bindings:
      - action: game/shoot
        paths: [/user/hand/right/input/select/click]
      - action: game/aim
        paths: [/user/hand/right/input/aim/pose]
`

func TestUnmarshal(t *testing.T) {
	fromTOML, err := Unmarshal([]byte(tomlMap), "toml")
	require.NoError(t, err)
	fromYAML, err := Unmarshal([]byte(yamlMap), "yaml")
	require.NoError(t, err)
	assert.Equal(t, fromTOML, fromYAML)

	require.Len(t, fromTOML.ActionSets, 1)
	set := fromTOML.ActionSets[0]
	assert.Equal(t, "Game", set.LocalizedName)
	assert.Equal(t, uint32(1), set.Priority)
	assert.Equal(t, openxr.ActionTypePose, set.Actions[1].Type)

	_, err = Unmarshal([]byte(yamlMap), "json")
	assert.Error(t, err)
}

func TestUnmarshalInvalid(t *testing.T) {
	_, err := Unmarshal([]byte("action_sets:\n  - name: a\n    actions:\n      - name: x\n        type: button\n"), "yaml")
	assert.ErrorContains(t, err, "unknown action type")

	_, err = Unmarshal([]byte("[[action_sets]]\nname = 'a'\n[[action_sets]]\nname = 'a'\n"), "toml")
	assert.ErrorContains(t, err, "duplicate action set")

	_, err = Unmarshal([]byte("action_sets = ["), "toml")
	assert.ErrorContains(t, err, "parse toml")
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"map.toml", "map.yaml", "map.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Default().Save(path))
			m, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, Default(), m)
		})
	}

	assert.Error(t, Default().Save(filepath.Join(dir, "map.json")))
	_, err := Load(filepath.Join(dir, "map.json"))
	assert.ErrorContains(t, err, "unsupported file extension")
	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("action_sets: [{name: a}, {name: a}]"), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, bad)
}

type env struct {
	rt  *simulator.Runtime
	api *openxr.API
}

func newEnv(t *testing.T) *env {
	t.Helper()
	rt := simulator.New()
	view := xr.ViewConfigurationView{
		RecommendedImageRectWidth:       32,
		RecommendedImageRectHeight:      32,
		MaxImageRectWidth:               256,
		MaxImageRectHeight:              256,
		RecommendedSwapchainSampleCount: 1,
		MaxSwapchainSampleCount:         1,
	}
	rt.ViewConfigs = map[xr.ViewConfigurationType][]xr.ViewConfigurationView{
		xr.ViewConfigurationTypePrimaryStereo: {view, view},
	}
	return &env{rt: rt, api: openxr.New(rt, headless.New(), openxr.Options{ApplicationName: "actionmap"})}
}

func (e *env) init(t *testing.T) {
	t.Helper()
	require.NoError(t, e.api.Initialize())
	require.NoError(t, e.api.InitializeSession())
}

func (e *env) focus(t *testing.T) {
	t.Helper()
	for _, s := range []xr.SessionState{xr.SessionStateReady, xr.SessionStateSynchronized, xr.SessionStateVisible, xr.SessionStateFocused} {
		e.rt.QueueSessionState(s)
	}
	require.True(t, e.api.Process())
}

func TestApply(t *testing.T) {
	e := newEnv(t)
	e.init(t)
	b, err := Default().Apply(e.api)
	require.NoError(t, err)

	suggested := e.rt.SuggestedBindings(simpleController)
	assert.Equal(t, []string{"/user/hand/left/input/grip/pose", "/user/hand/right/input/grip/pose"}, suggested["grip_pose"])
	assert.Len(t, suggested, 5)
	touch := e.rt.SuggestedBindings("/interaction_profiles/oculus/touch_controller")
	assert.Equal(t, []string{"/user/hand/left/input/menu/click"}, touch["menu_button"])
	assert.Equal(t, []string{"/user/hand/left/input/x/click", "/user/hand/right/input/a/click"}, touch["ax_button"])

	_, ok := b.InteractionProfile("/interaction_profiles/hp/mixed_reality_controller")
	assert.False(t, ok, "extension not enabled")
	_, ok = b.InteractionProfile(simpleController)
	assert.True(t, ok)

	left, ok := b.Tracker("/user/hand/left")
	require.True(t, ok)
	assert.Equal(t, "/user/hand/left", e.api.TrackerName(left))
	assert.Len(t, e.api.Trackers(), 2)
	_, ok = b.Tracker("/user/head")
	assert.False(t, ok)

	trigger, ok := b.Action(DefaultActionSet, "trigger")
	require.True(t, ok)
	assert.Equal(t, "trigger", e.api.ActionName(trigger))
	_, ok = b.Action("other", "trigger")
	assert.False(t, ok)
	set, ok := b.ActionSet(DefaultActionSet)
	require.True(t, ok)
	assert.Equal(t, []rid.RID{set}, b.ActionSets())

	require.NoError(t, b.Attach())
	assert.True(t, e.api.ActionSetAttached(set))

	e.focus(t)
	e.rt.SetActionFloat("trigger", "/user/hand/left", 0.5)
	require.NoError(t, e.api.SyncActionSets(b.ActionSets()))
	v, err := e.api.ActionFloat(trigger, left)
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), v)
}

func TestApplyExtensionProfile(t *testing.T) {
	e := newEnv(t)
	e.rt.Extensions = []string{"XR_EXT_hp_mixed_reality_controller"}
	e.rt.Profiles = nil
	e.init(t)
	b, err := Default().Apply(e.api)
	require.NoError(t, err)
	_, ok := b.InteractionProfile("/interaction_profiles/hp/mixed_reality_controller")
	assert.True(t, ok)
	hp := e.rt.SuggestedBindings("/interaction_profiles/hp/mixed_reality_controller")
	assert.Equal(t, []string{"/user/hand/left/input/y/click", "/user/hand/right/input/b/click"}, hp["by_button"])
}

func TestApplyFailure(t *testing.T) {
	e := newEnv(t)
	_, err := Default().Apply(e.api)
	assert.ErrorIs(t, err, openxr.ErrNotInitialized)

	e.init(t)
	e.rt.FailCall("xrSuggestInteractionProfileBindings", xr.ErrorRuntimeFailure)
	_, err = Default().Apply(e.api)
	assert.ErrorIs(t, err, xr.ErrorRuntimeFailure)
	assert.Zero(t, e.rt.ActionSetCount(), "partial sets freed")

	e.rt.ClearFailures()
	b, err := Default().Apply(e.api)
	require.NoError(t, err, "names freed by the failed apply")
	b.Free()
	assert.Empty(t, b.ActionSets())
	_, ok := b.Action(DefaultActionSet, "trigger")
	assert.False(t, ok)
}
