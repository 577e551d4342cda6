// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xr

// Handles are opaque values owned by the runtime. The zero value
// of every handle type is the null handle.
type (
	Instance  uint64
	Session   uint64
	Space     uint64
	Swapchain uint64
	ActionSet uint64
	Action    uint64
)

// SystemID identifies a system (a device) within an instance.
type SystemID uint64

// Path is an interned semantic path such as /user/hand/left.
type Path uint64

// Time is a runtime timestamp in nanoseconds.
type Time int64

// Duration is a span of runtime time in nanoseconds.
type Duration int64

const (
	// NullPath is the path with no value.
	NullPath Path = 0

	// NullSystemID is returned when no system is available.
	NullSystemID SystemID = 0

	// NoDuration waits or vibrates for no time at all.
	NoDuration Duration = 0

	// InfiniteDuration waits forever.
	InfiniteDuration Duration = 0x7fffffffffffffff

	// MinHapticDuration asks the runtime for its shortest pulse.
	MinHapticDuration Duration = -1

	// FrequencyUnspecified lets the runtime pick a haptic frequency.
	FrequencyUnspecified float32 = 0
)

// Buffer sizes of the fixed-length strings in the protocol records,
// including the terminating NUL.
const (
	MaxExtensionNameSize          = 128
	MaxAPILayerNameSize           = 256
	MaxAPILayerDescriptionSize    = 256
	MaxSystemNameSize             = 256
	MaxApplicationNameSize        = 128
	MaxEngineNameSize             = 128
	MaxRuntimeNameSize            = 128
	MaxPathLength                 = 256
	MaxResultStringSize           = 64
	MaxActionSetNameSize          = 64
	MaxLocalizedActionSetNameSize = 128
	MaxActionNameSize             = 64
	MaxLocalizedActionNameSize    = 128
)
