// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultString(t *testing.T) {
	assert.Equal(t, "XR_SUCCESS", Success.String())
	assert.Equal(t, "XR_ERROR_PATH_UNSUPPORTED", ErrorPathUnsupported.String())
	assert.Equal(t, "XR_UNKNOWN_SUCCESS_42", Result(42).String())
	assert.Equal(t, "XR_UNKNOWN_FAILURE_-999", Result(-999).String())

	assert.True(t, EventUnavailable.Succeeded())
	assert.False(t, EventUnavailable.Failed())
	assert.True(t, ErrorRuntimeFailure.Failed())
}

func TestNewError(t *testing.T) {
	assert.NoError(t, NewError("xrBeginSession", Success))
	assert.NoError(t, NewError("xrWaitSwapchainImage", TimeoutExpired))

	err := NewError("xrBeginSession", ErrorSessionNotReady)
	require.Error(t, err)
	assert.Equal(t, "xrBeginSession: XR_ERROR_SESSION_NOT_READY", err.Error())

	wrapped := fmt.Errorf("openxr: begin: %w", err)
	assert.True(t, errors.Is(wrapped, ErrorSessionNotReady))
	assert.False(t, errors.Is(wrapped, ErrorSessionLost))

	var xe *Error
	require.True(t, errors.As(wrapped, &xe))
	assert.Equal(t, "xrBeginSession", xe.Call)
}

func TestVersion(t *testing.T) {
	v := MakeVersion(1, 2, 3)
	assert.Equal(t, Version(0x0001000200000003), v)
	assert.Equal(t, uint32(1), v.Major())
	assert.Equal(t, uint32(2), v.Minor())
	assert.Equal(t, uint32(3), v.Patch())
	assert.Equal(t, "1.2.3", v.String())
	assert.Equal(t, "1.2.3", v.Semver().String())
	assert.True(t, MakeVersion(1, 0, 34).Semver().GreaterThan(MakeVersion(1, 0, 9).Semver()))
}

func TestEnumerate(t *testing.T) {
	data := []int64{10, 20, 30}
	calls := 0
	enum := func(buf []int64) (uint32, Result) {
		calls++
		if len(buf) == 0 {
			return uint32(len(data)), Success
		}
		if len(buf) < len(data) {
			return uint32(len(data)), ErrorSizeInsufficient
		}
		return uint32(copy(buf, data)), Success
	}
	got, r := Enumerate(enum)
	assert.Equal(t, Success, r)
	assert.Equal(t, data, got)
	assert.Equal(t, 2, calls)

	got, r = Enumerate(func(buf []int64) (uint32, Result) { return 0, Success })
	assert.Equal(t, Success, r)
	assert.Empty(t, got)

	got, r = Enumerate(func(buf []int64) (uint32, Result) { return 0, ErrorRuntimeFailure })
	assert.Equal(t, ErrorRuntimeFailure, r)
	assert.Nil(t, got)
}

func TestEnumerateGrows(t *testing.T) {
	// the count grows between the count and fill calls once
	data := []int64{1, 2}
	enum := func(buf []int64) (uint32, Result) {
		if len(buf) == 0 {
			return uint32(len(data)), Success
		}
		if len(buf) < len(data) {
			return uint32(len(data)), ErrorSizeInsufficient
		}
		return uint32(copy(buf, data)), Success
	}
	grown := false
	got, r := Enumerate(func(buf []int64) (uint32, Result) {
		if len(buf) > 0 && !grown {
			grown = true
			data = append(data, 3)
		}
		return enum(buf)
	})
	assert.Equal(t, Success, r)
	assert.Equal(t, []int64{1, 2, 3}, got)
}

func TestEnumerateWith(t *testing.T) {
	got, r := EnumerateWith(func(buf []SwapchainImage) (uint32, Result) {
		if len(buf) == 0 {
			return 2, Success
		}
		for i := range buf {
			assert.Equal(t, TypeSwapchainImageVulkanKHR, buf[i].StructureType())
			buf[i].Image = uint64(i + 1)
		}
		return 2, Success
	}, SwapchainImage{Type: TypeSwapchainImageVulkanKHR})
	assert.Equal(t, Success, r)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(2), got[1].Image)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 4))
	assert.Equal(t, "ab", Truncate("abc", 3))
	assert.Equal(t, "", Truncate("abc", 0))
	// é is two bytes and must not be split
	assert.Equal(t, "a", Truncate("aé", 3))
	assert.Equal(t, "aé", Truncate("aé", 4))
}

func TestFindNext(t *testing.T) {
	vel := &SpaceVelocity{}
	loc := SpaceLocation{Next: []Chained{&ViewState{}, vel}}
	got, ok := FindNext[*SpaceVelocity](loc.Next)
	assert.True(t, ok)
	assert.Same(t, vel, got)

	_, ok = FindNext[*FrameState](loc.Next)
	assert.False(t, ok)
}

func TestStructureTypeString(t *testing.T) {
	assert.Equal(t, "XR_TYPE_SPACE_LOCATION", TypeSpaceLocation.String())
	assert.Equal(t, "XR_TYPE_12345", StructureType(12345).String())
	assert.Equal(t, TypeCompositionLayerProjection, (&CompositionLayerProjection{}).StructureType())
	assert.Equal(t, "XR_SESSION_STATE_FOCUSED", SessionStateFocused.String())
}
