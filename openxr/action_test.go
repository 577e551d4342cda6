// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openxr

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/xr/rid"
	"cogentcore.org/xr/simulator"
	"cogentcore.org/xr/xr"
	"cogentcore.org/xr/xrmath"
)

const simpleController = "/interaction_profiles/khr/simple_controller"

func simulatorLocation(flags xr.SpaceLocationFlags) simulator.Location {
	return simulator.Location{Flags: flags, Pose: xr.IdentityPose()}
}

func countLogs(e *testEnv, msg string) int {
	return strings.Count(e.logs.String(), msg)
}

type testActions struct {
	set, trigger, grab, move, aim, haptic rid.RID
	left, right, profile                  rid.RID
}

// bind creates an action set with one action of every type for both
// hands, suggests bindings and attaches the set.
func (e *testEnv) bind(t *testing.T) testActions {
	t.Helper()
	var b testActions
	var err error
	b.left, err = e.api.TrackerCreate("/user/hand/left")
	require.NoError(t, err)
	b.right, err = e.api.TrackerCreate("/user/hand/right")
	require.NoError(t, err)
	hands := []rid.RID{b.left, b.right}

	b.set, err = e.api.ActionSetCreate("game", "Game", 0)
	require.NoError(t, err)
	create := func(name string, at ActionType) rid.RID {
		r, err := e.api.ActionCreate(b.set, name, strings.ToUpper(name), at, hands)
		require.NoError(t, err)
		return r
	}
	b.trigger = create("trigger", ActionTypeFloat)
	b.grab = create("grab", ActionTypeBool)
	b.move = create("move", ActionTypeVector2)
	b.aim = create("aim", ActionTypePose)
	b.haptic = create("haptic", ActionTypeHaptic)

	b.profile, err = e.api.InteractionProfileCreate(simpleController)
	require.NoError(t, err)
	for _, hand := range []string{"left", "right"} {
		prefix := "/user/hand/" + hand
		require.NoError(t, e.api.InteractionProfileAddBinding(b.profile, b.grab, prefix+"/input/select/click"))
		require.NoError(t, e.api.InteractionProfileAddBinding(b.profile, b.aim, prefix+"/input/aim/pose"))
		require.NoError(t, e.api.InteractionProfileAddBinding(b.profile, b.haptic, prefix+"/output/haptic"))
	}
	require.NoError(t, e.api.InteractionProfileSuggestBindings(b.profile))
	require.NoError(t, e.api.ActionSetAttach(b.set))
	return b
}

func (e *testEnv) focus(t *testing.T) {
	t.Helper()
	e.states(t, xr.SessionStateReady, xr.SessionStateSynchronized, xr.SessionStateVisible, xr.SessionStateFocused)
}

func TestTrackerCreate(t *testing.T) {
	e := newEnv(t)
	_, err := e.api.TrackerCreate("/user/hand/left")
	assert.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, e.api.Initialize())
	left, err := e.api.TrackerCreate("/user/hand/left")
	require.NoError(t, err)
	again, err := e.api.TrackerCreate("/user/hand/left")
	require.NoError(t, err)
	assert.Equal(t, left, again)
	assert.Len(t, e.api.Trackers(), 1)
	assert.Equal(t, "/user/hand/left", e.api.TrackerName(left))
	assert.Equal(t, "None", e.api.TrackerName(rid.RID{}))

	_, err = e.api.TrackerCreate("not a path")
	var xe *xr.Error
	require.True(t, errors.As(err, &xe))
	assert.Equal(t, "xrStringToPath", xe.Call)

	e.api.TrackerFree(left)
	assert.Equal(t, "None", e.api.TrackerName(left))
	assert.Empty(t, e.api.Trackers())
}

func TestActionSetAttach(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.api.Initialize())
	set, err := e.api.ActionSetCreate("menu", "Menu", 1)
	require.NoError(t, err)
	assert.Equal(t, "menu", e.api.ActionSetName(set))
	assert.ErrorIs(t, e.api.ActionSetAttach(set), ErrNoSession)

	require.NoError(t, e.api.InitializeSession())
	assert.ErrorIs(t, e.api.ActionSetAttach(rid.RID{}), ErrNotFound)
	require.NoError(t, e.api.ActionSetAttach(set))
	require.NoError(t, e.api.ActionSetAttach(set))
	assert.True(t, e.api.ActionSetAttached(set))
	assert.Equal(t, 1, e.rt.CallCount("xrAttachSessionActionSets"))

	_, err = e.api.ActionCreate(set, "select", "Select", ActionTypeBool, nil)
	assert.ErrorIs(t, err, ErrActionSetAttached)
}

func TestActionSetsAttach(t *testing.T) {
	e := newEnv(t)
	e.init(t)
	a, err := e.api.ActionSetCreate("a", "A", 0)
	require.NoError(t, err)
	b, err := e.api.ActionSetCreate("b", "B", 0)
	require.NoError(t, err)
	require.NoError(t, e.api.ActionSetsAttach([]rid.RID{a, b}))
	assert.True(t, e.api.ActionSetAttached(a))
	assert.True(t, e.api.ActionSetAttached(b))
	assert.Equal(t, 1, e.rt.CallCount("xrAttachSessionActionSets"))
}

func TestActionSetCreateInvalid(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.api.Initialize())
	_, err := e.api.ActionSetCreate("Bad Name", "Bad", 0)
	assert.ErrorIs(t, err, xr.ErrorPathFormatInvalid)
	_, err = e.api.ActionSetCreate("good", "", 0)
	assert.ErrorIs(t, err, xr.ErrorLocalizedNameInvalid)

	long := strings.Repeat("a", 100)
	set, err := e.api.ActionSetCreate(long, long, 0)
	require.NoError(t, err, "names are truncated")
	assert.Equal(t, long, e.api.ActionSetName(set))
}

func TestSyncActionSets(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.api.Initialize())
	assert.ErrorIs(t, e.api.SyncActionSets(nil), ErrNoSession)
	require.NoError(t, e.api.InitializeSession())
	b := e.bind(t)
	assert.ErrorIs(t, e.api.SyncActionSets([]rid.RID{b.set}), ErrNotRunning)

	e.focus(t)
	assert.ErrorIs(t, e.api.SyncActionSets([]rid.RID{{}}), ErrNoActiveSets)
	require.NoError(t, e.api.SyncActionSets([]rid.RID{b.set, {}}))
	assert.Equal(t, 1, e.rt.ActiveActionSets())

	e.states(t, xr.SessionStateVisible)
	require.NoError(t, e.api.SyncActionSets([]rid.RID{b.set}), "not focused is not an error")
	assert.Zero(t, e.rt.ActiveActionSets())
}

func TestActionStates(t *testing.T) {
	e := newEnv(t)
	e.init(t)
	b := e.bind(t)

	v, err := e.api.ActionBool(b.grab, b.left)
	require.NoError(t, err, "not running")
	assert.False(t, v)

	e.focus(t)
	e.rt.SetActionBool("grab", "/user/hand/left", true)
	e.rt.SetActionFloat("trigger", "/user/hand/right", 0.75)
	e.rt.SetActionVector2("move", "/user/hand/left", xr.Vector2f{X: 0.5, Y: -1})
	require.NoError(t, e.api.SyncActionSets([]rid.RID{b.set}))

	v, err = e.api.ActionBool(b.grab, b.left)
	require.NoError(t, err)
	assert.True(t, v)
	v, err = e.api.ActionBool(b.grab, b.right)
	require.NoError(t, err)
	assert.False(t, v)

	f, err := e.api.ActionFloat(b.trigger, b.right)
	require.NoError(t, err)
	assert.Equal(t, float32(0.75), f)

	m, err := e.api.ActionVector2(b.move, b.left)
	require.NoError(t, err)
	assert.Equal(t, xrmath.Vec2(0.5, -1), m)

	_, err = e.api.ActionFloat(b.grab, b.left)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = e.api.ActionBool(rid.RID{}, b.left)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = e.api.ActionBool(b.grab, rid.RID{})
	assert.ErrorIs(t, err, ErrNotFound)

	e.states(t, xr.SessionStateVisible)
	require.NoError(t, e.api.SyncActionSets([]rid.RID{b.set}))
	v, err = e.api.ActionBool(b.grab, b.left)
	require.NoError(t, err)
	assert.False(t, v, "inactive while not focused")

	e.rt.FailNext("xrGetActionStateBoolean", xr.ErrorRuntimeFailure)
	_, err = e.api.ActionBool(b.grab, b.left)
	assert.ErrorIs(t, err, xr.ErrorRuntimeFailure)
}

func TestActionPose(t *testing.T) {
	e := newEnv(t)
	e.init(t)
	b := e.bind(t)
	e.focus(t)
	e.rt.SetActionPose("aim", "/user/hand/left", simulator.Location{
		Flags:          xr.SpaceLocationAll,
		Pose:           xr.Posef{Orientation: xr.Quaternionf{W: 1}, Position: xr.Vector3f{X: 0.2, Y: 1.1}},
		VelocityFlags:  xr.SpaceVelocityLinearValid,
		LinearVelocity: xr.Vector3f{Z: -1},
	})

	p, err := e.api.ActionPose(b.aim, b.left)
	require.NoError(t, err)
	assert.Equal(t, ConfidenceNone, p.Confidence, "no frame yet")
	assert.Zero(t, e.rt.CallCount("xrCreateActionSpace"))

	e.frame(t)
	spaces := e.rt.SpaceCount()
	p, err = e.api.ActionPose(b.aim, b.left)
	require.NoError(t, err)
	assert.Equal(t, ConfidenceHigh, p.Confidence)
	assert.InDelta(t, 1.1, p.Transform.Origin.Y, 1e-6)
	assert.Equal(t, xrmath.Vec3(0, 0, -1), p.LinearVelocity)

	_, err = e.api.ActionPose(b.aim, b.left)
	require.NoError(t, err)
	assert.Equal(t, 1, e.rt.CallCount("xrCreateActionSpace"))
	assert.Equal(t, spaces+1, e.rt.SpaceCount())

	p, err = e.api.ActionPose(b.aim, b.right)
	require.NoError(t, err)
	assert.Equal(t, ConfidenceNone, p.Confidence, "no pose for the right hand")

	_, err = e.api.ActionPose(b.grab, b.left)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	e.api.ActionFree(b.aim)
	assert.Equal(t, spaces, e.rt.SpaceCount())
	assert.Equal(t, "None", e.api.ActionName(b.aim))

	e.api.Finish()
	assert.Empty(t, e.rt.Leaks())
}

func TestHapticPulse(t *testing.T) {
	e := newEnv(t)
	e.init(t)
	b := e.bind(t)
	require.NoError(t, e.api.TriggerHapticPulse(b.haptic, b.left, 160, 0.5, 100000000), "not running")
	assert.Empty(t, e.rt.Haptics())

	e.focus(t)
	require.NoError(t, e.api.TriggerHapticPulse(b.haptic, b.left, 160, 0.5, 100000000))
	haptics := e.rt.Haptics()
	require.Len(t, haptics, 1)
	assert.Equal(t, "haptic", haptics[0].Action)
	assert.Equal(t, "/user/hand/left", haptics[0].SubactionPath)
	assert.Equal(t, float32(160), haptics[0].Vibration.Frequency)
	assert.Equal(t, xr.Duration(100000000), haptics[0].Vibration.Duration)

	assert.ErrorIs(t, e.api.TriggerHapticPulse(b.grab, b.left, 0, 1, 1), ErrTypeMismatch)
	e.rt.FailNext("xrApplyHapticFeedback", xr.ErrorRuntimeFailure)
	assert.Error(t, e.api.TriggerHapticPulse(b.haptic, b.right, 0, 1, 1))
}

func TestInteractionProfiles(t *testing.T) {
	e := newEnv(t)
	e.init(t)
	b := e.bind(t)

	again, err := e.api.InteractionProfileCreate(simpleController)
	require.NoError(t, err)
	assert.Equal(t, b.profile, again)
	assert.Equal(t, simpleController, e.api.InteractionProfileName(b.profile))
	assert.Equal(t, 6, e.api.InteractionProfileBindings(b.profile))
	assert.Equal(t, []string{"/user/hand/left/input/select/click", "/user/hand/right/input/select/click"},
		e.rt.SuggestedBindings(simpleController)["grab"])

	assert.ErrorIs(t, e.api.InteractionProfileAddBinding(b.profile, rid.RID{}, "/user/hand/left/input/menu/click"), ErrNotFound)
	assert.ErrorIs(t, e.api.InteractionProfileSuggestBindings(rid.RID{}), ErrNotFound)

	e.api.InteractionProfileClearBindings(b.profile)
	assert.Zero(t, e.api.InteractionProfileBindings(b.profile))

	e.api.InteractionProfileFree(b.profile)
	assert.Equal(t, "None", e.api.InteractionProfileName(b.profile))
}

func TestSuggestBindingsResults(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.api.Initialize())
	set, err := e.api.ActionSetCreate("game", "Game", 0)
	require.NoError(t, err)
	grab, err := e.api.ActionCreate(set, "grab", "Grab", ActionTypeBool, nil)
	require.NoError(t, err)

	unknown, err := e.api.InteractionProfileCreate("/interaction_profiles/acme/thing")
	require.NoError(t, err)
	require.NoError(t, e.api.InteractionProfileAddBinding(unknown, grab, "/user/hand/left/input/grab/click"))
	assert.NoError(t, e.api.InteractionProfileSuggestBindings(unknown), "unsupported profiles are skipped")
	assert.Contains(t, e.logs.String(), "not supported by the runtime")

	simple, err := e.api.InteractionProfileCreate(simpleController)
	require.NoError(t, err)
	e.rt.FailNext("xrSuggestInteractionProfileBindings", xr.ErrorRuntimeFailure)
	assert.ErrorIs(t, e.api.InteractionProfileSuggestBindings(simple), xr.ErrorRuntimeFailure)
}

func TestTrackerProfileChanged(t *testing.T) {
	e := newEnv(t)
	e.init(t)
	b := e.bind(t)
	e.focus(t)
	assert.NotContains(t, e.iface.events, "profile")

	e.rt.SetInteractionProfile("/user/hand/left", simpleController)
	require.True(t, e.api.PollEvents())
	assert.Equal(t, []rid.RID{b.profile}, e.iface.profiles)
	assert.Equal(t, b.profile, e.api.TrackerProfile(b.left))
	assert.False(t, e.api.TrackerProfile(b.right).IsValid())

	e.rt.SetInteractionProfile("/user/hand/left", simpleController)
	require.True(t, e.api.PollEvents())
	assert.Len(t, e.iface.profiles, 1, "unchanged profile")

	e.rt.SetInteractionProfile("/user/hand/right", "/interaction_profiles/valve/index_controller")
	require.True(t, e.api.PollEvents())
	require.Len(t, e.iface.profiles, 2)
	assert.False(t, e.iface.profiles[1].IsValid(), "profile that was never created")

	e.rt.SetInteractionProfile("/user/hand/left", "")
	require.True(t, e.api.PollEvents())
	require.Len(t, e.iface.profiles, 3)
	assert.False(t, e.api.TrackerProfile(b.left).IsValid())

	assert.ErrorIs(t, e.api.TrackerCheckProfile(rid.RID{}, 0), ErrNotFound)
}

func TestFreeCascade(t *testing.T) {
	e := newEnv(t)
	e.init(t)
	b := e.bind(t)
	e.focus(t)

	e.api.TrackerFree(b.right)
	_, err := e.api.ActionBool(b.grab, b.right)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = e.api.ActionBool(b.grab, b.left)
	assert.NoError(t, err)

	e.api.ActionSetFree(b.set)
	assert.Equal(t, "None", e.api.ActionSetName(b.set))
	assert.Equal(t, "None", e.api.ActionName(b.grab))
	assert.Equal(t, "None", e.api.ActionName(b.trigger))

	e.api.Finish()
	assert.Equal(t, "None", e.api.TrackerName(b.left), "tables are cleared with the instance")
}

func TestParseActionType(t *testing.T) {
	for _, at := range []ActionType{ActionTypeBool, ActionTypeFloat, ActionTypeVector2, ActionTypePose, ActionTypeHaptic} {
		got, err := ParseActionType(at.String())
		require.NoError(t, err)
		assert.Equal(t, at, got)
	}
	got, err := ParseActionType("Vector2")
	require.NoError(t, err)
	assert.Equal(t, ActionTypeVector2, got)
	_, err = ParseActionType("joystick")
	assert.Error(t, err)
	assert.Equal(t, xr.ActionTypeVibrationOutput, ActionTypeHaptic.XR())
}

func TestActionTypeText(t *testing.T) {
	var at ActionType
	require.NoError(t, at.UnmarshalText([]byte("pose")))
	assert.Equal(t, ActionTypePose, at)
	b, err := ActionTypeHaptic.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "haptic", string(b))

	assert.Error(t, at.UnmarshalText([]byte("button")))
	_, err = ActionType(9).MarshalText()
	assert.Error(t, err)
	assert.False(t, ActionType(-1).IsValid())
}

func TestTrackerFreeSpaceFailure(t *testing.T) {
	e := newEnv(t)
	e.init(t)
	b := e.bind(t)
	e.focus(t)
	e.frame(t)
	_, err := e.api.ActionPose(b.aim, b.left)
	require.NoError(t, err)
	require.Equal(t, 1, e.rt.CallCount("xrCreateActionSpace"))

	e.rt.FailNext("xrDestroySpace", xr.ErrorRuntimeFailure)
	e.api.TrackerFree(b.left)
	assert.Equal(t, "None", e.api.TrackerName(b.left))
	assert.Contains(t, e.logs.String(), "failed to destroy action space")
}

func TestHandlesAcrossInstances(t *testing.T) {
	e := newEnv(t)
	e.init(t)
	left, err := e.api.TrackerCreate("/user/hand/left")
	require.NoError(t, err)
	set, err := e.api.ActionSetCreate("game", "Game", 0)
	require.NoError(t, err)
	e.api.Finish()

	e.init(t)
	right, err := e.api.TrackerCreate("/user/hand/right")
	require.NoError(t, err)
	other, err := e.api.ActionSetCreate("menu", "Menu", 0)
	require.NoError(t, err)
	assert.NotEqual(t, left, right)
	assert.NotEqual(t, set, other)
	assert.Equal(t, "None", e.api.TrackerName(left), "handle from the previous instance")
	assert.Equal(t, "/user/hand/right", e.api.TrackerName(right))
	assert.Equal(t, []rid.RID{right}, e.api.Trackers())
	assert.False(t, e.api.actionSets.Owns(set))
	assert.True(t, e.api.actionSets.Owns(other))
}
