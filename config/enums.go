// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import "cogentcore.org/xr/xr"

// FormFactor is the kind of device to look for.
type FormFactor string

const (
	FormFactorHMD      FormFactor = "hmd"
	FormFactorHandheld FormFactor = "handheld"
)

// IsValid returns whether f is a known form factor.
func (f FormFactor) IsValid() bool { return f.XR() != 0 }

// XR returns the protocol form factor, or 0 if f is unknown.
func (f FormFactor) XR() xr.FormFactor {
	switch f {
	case FormFactorHMD:
		return xr.FormFactorHeadMountedDisplay
	case FormFactorHandheld:
		return xr.FormFactorHandheldDisplay
	}
	return 0
}

// ViewConfiguration is the primary view configuration.
type ViewConfiguration string

const (
	ViewConfigurationMono   ViewConfiguration = "mono"
	ViewConfigurationStereo ViewConfiguration = "stereo"
)

func (v ViewConfiguration) IsValid() bool { return v.XR() != 0 }

func (v ViewConfiguration) XR() xr.ViewConfigurationType {
	switch v {
	case ViewConfigurationMono:
		return xr.ViewConfigurationTypePrimaryMono
	case ViewConfigurationStereo:
		return xr.ViewConfigurationTypePrimaryStereo
	}
	return 0
}

// ReferenceSpace is the play space type.
type ReferenceSpace string

const (
	ReferenceSpaceLocal ReferenceSpace = "local"
	ReferenceSpaceStage ReferenceSpace = "stage"
)

func (r ReferenceSpace) IsValid() bool { return r.XR() != 0 }

func (r ReferenceSpace) XR() xr.ReferenceSpaceType {
	switch r {
	case ReferenceSpaceLocal:
		return xr.ReferenceSpaceTypeLocal
	case ReferenceSpaceStage:
		return xr.ReferenceSpaceTypeStage
	}
	return 0
}
