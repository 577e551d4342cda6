// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package actionmap

import "cogentcore.org/xr/openxr"

// DefaultActionSet is the name of the action set of [Default].
const DefaultActionSet = "godot"

const (
	leftHand  = "/user/hand/left"
	rightHand = "/user/hand/right"
)

var hands = []string{leftHand, rightHand}

// Default returns the stock action map: one action set with the
// common controller inputs of both hands, and suggested bindings for
// the widely available controllers.
func Default() *ActionMap {
	act := func(name, localized string, t openxr.ActionType) Action {
		return Action{Name: name, LocalizedName: localized, Type: t, TopLevelPaths: hands}
	}
	set := ActionSet{
		Name:          DefaultActionSet,
		LocalizedName: "Godot action set",
		Actions: []Action{
			act("trigger", "Trigger", openxr.ActionTypeFloat),
			act("trigger_click", "Trigger click", openxr.ActionTypeBool),
			act("trigger_touch", "Trigger touching", openxr.ActionTypeBool),
			act("grip", "Grip", openxr.ActionTypeFloat),
			act("grip_click", "Grip click", openxr.ActionTypeBool),
			act("menu_button", "Menu button", openxr.ActionTypeBool),
			act("select_button", "Select button", openxr.ActionTypeBool),
			act("ax_button", "A/X button", openxr.ActionTypeBool),
			act("ax_touch", "A/X touching", openxr.ActionTypeBool),
			act("by_button", "B/Y button", openxr.ActionTypeBool),
			act("by_touch", "B/Y touching", openxr.ActionTypeBool),
			act("primary", "Primary joystick/thumbstick/trackpad", openxr.ActionTypeVector2),
			act("primary_click", "Primary joystick/thumbstick/trackpad click", openxr.ActionTypeBool),
			act("primary_touch", "Primary joystick/thumbstick/trackpad touching", openxr.ActionTypeBool),
			act("secondary", "Secondary joystick/thumbstick/trackpad", openxr.ActionTypeVector2),
			act("secondary_click", "Secondary joystick/thumbstick/trackpad click", openxr.ActionTypeBool),
			act("secondary_touch", "Secondary joystick/thumbstick/trackpad touching", openxr.ActionTypeBool),
			act("aim_pose", "Aim pose", openxr.ActionTypePose),
			act("grip_pose", "Grip pose", openxr.ActionTypePose),
			act("haptic", "Haptic", openxr.ActionTypeHaptic),
		},
	}
	return &ActionMap{
		ActionSets: []ActionSet{set},
		InteractionProfiles: []InteractionProfile{
			profile("/interaction_profiles/khr/simple_controller", "",
				both("grip_pose", "input/grip/pose"),
				both("aim_pose", "input/aim/pose"),
				both("select_button", "input/select/click"),
				both("menu_button", "input/menu/click"),
				both("haptic", "output/haptic"),
			),
			profile("/interaction_profiles/oculus/touch_controller", "",
				both("grip_pose", "input/grip/pose"),
				both("aim_pose", "input/aim/pose"),
				hand("menu_button", leftHand, "input/menu/click"),
				split("ax_button", "input/x/click", "input/a/click"),
				split("ax_touch", "input/x/touch", "input/a/touch"),
				split("by_button", "input/y/click", "input/b/click"),
				split("by_touch", "input/y/touch", "input/b/touch"),
				both("trigger", "input/trigger/value"),
				both("trigger_click", "input/trigger/value"),
				both("trigger_touch", "input/trigger/touch"),
				both("grip", "input/squeeze/value"),
				both("grip_click", "input/squeeze/value"),
				both("primary", "input/thumbstick"),
				both("primary_click", "input/thumbstick/click"),
				both("primary_touch", "input/thumbstick/touch"),
				both("haptic", "output/haptic"),
			),
			profile("/interaction_profiles/valve/index_controller", "",
				both("grip_pose", "input/grip/pose"),
				both("aim_pose", "input/aim/pose"),
				both("ax_button", "input/a/click"),
				both("ax_touch", "input/a/touch"),
				both("by_button", "input/b/click"),
				both("by_touch", "input/b/touch"),
				both("trigger", "input/trigger/value"),
				both("trigger_click", "input/trigger/click"),
				both("trigger_touch", "input/trigger/touch"),
				both("grip", "input/squeeze/value"),
				both("grip_click", "input/squeeze/value"),
				both("primary", "input/thumbstick"),
				both("primary_click", "input/thumbstick/click"),
				both("primary_touch", "input/thumbstick/touch"),
				both("secondary", "input/trackpad"),
				both("secondary_click", "input/trackpad/force"),
				both("secondary_touch", "input/trackpad/touch"),
				both("haptic", "output/haptic"),
			),
			profile("/interaction_profiles/htc/vive_controller", "",
				both("grip_pose", "input/grip/pose"),
				both("aim_pose", "input/aim/pose"),
				both("menu_button", "input/menu/click"),
				both("select_button", "input/system/click"),
				both("trigger", "input/trigger/value"),
				both("trigger_click", "input/trigger/click"),
				both("grip", "input/squeeze/click"),
				both("grip_click", "input/squeeze/click"),
				both("primary", "input/trackpad"),
				both("primary_click", "input/trackpad/click"),
				both("primary_touch", "input/trackpad/touch"),
				both("haptic", "output/haptic"),
			),
			profile("/interaction_profiles/microsoft/motion_controller", "",
				both("grip_pose", "input/grip/pose"),
				both("aim_pose", "input/aim/pose"),
				both("menu_button", "input/menu/click"),
				both("trigger", "input/trigger/value"),
				both("trigger_click", "input/trigger/value"),
				both("grip", "input/squeeze/click"),
				both("grip_click", "input/squeeze/click"),
				both("primary", "input/thumbstick"),
				both("primary_click", "input/thumbstick/click"),
				both("secondary", "input/trackpad"),
				both("secondary_click", "input/trackpad/click"),
				both("secondary_touch", "input/trackpad/touch"),
				both("haptic", "output/haptic"),
			),
			profile("/interaction_profiles/hp/mixed_reality_controller", "XR_EXT_hp_mixed_reality_controller",
				both("grip_pose", "input/grip/pose"),
				both("aim_pose", "input/aim/pose"),
				both("menu_button", "input/menu/click"),
				split("ax_button", "input/x/click", "input/a/click"),
				split("by_button", "input/y/click", "input/b/click"),
				both("trigger", "input/trigger/value"),
				both("trigger_click", "input/trigger/value"),
				both("grip", "input/squeeze/value"),
				both("grip_click", "input/squeeze/value"),
				both("primary", "input/thumbstick"),
				both("primary_click", "input/thumbstick/click"),
				both("haptic", "output/haptic"),
			),
		},
	}
}

func profile(path, extension string, bindings ...Binding) InteractionProfile {
	return InteractionProfile{Path: path, Extension: extension, Bindings: bindings}
}

// both binds an action to the same input of both hands.
func both(action, input string) Binding {
	return split(action, input, input)
}

// split binds an action to different inputs on the left and right hand.
func split(action, left, right string) Binding {
	return Binding{
		Action: DefaultActionSet + "/" + action,
		Paths:  []string{leftHand + "/" + left, rightHand + "/" + right},
	}
}

func hand(action, top, input string) Binding {
	return Binding{Action: DefaultActionSet + "/" + action, Paths: []string{top + "/" + input}}
}
