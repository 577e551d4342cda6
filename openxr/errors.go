// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openxr

import "cogentcore.org/xr/base/errors"

var (
	// ErrNotFound is returned for a handle that does not resolve
	// in its resource table.
	ErrNotFound = errors.New("openxr: not found")

	// ErrTypeMismatch is returned when an action is queried as a
	// type other than the one it was created with.
	ErrTypeMismatch = errors.New("openxr: action type mismatch")

	// ErrNoSession is returned by operations that need a session.
	ErrNoSession = errors.New("openxr: no session")

	// ErrNotRunning is returned by operations that need a running session.
	ErrNotRunning = errors.New("openxr: session not running")

	// ErrNotInitialized is returned by operations that need an instance.
	ErrNotInitialized = errors.New("openxr: not initialized")

	// ErrAlreadyInitialized is returned by a second Initialize.
	ErrAlreadyInitialized = errors.New("openxr: already initialized")

	// ErrImageAlreadyAcquired is returned when a swapchain image is
	// acquired while another one is still held.
	ErrImageAlreadyAcquired = errors.New("openxr: swapchain image already acquired")

	// ErrNoImageAcquired is returned when releasing without an acquired image.
	ErrNoImageAcquired = errors.New("openxr: no swapchain image acquired")

	// ErrNoActiveSets is returned by a sync without any valid action set.
	ErrNoActiveSets = errors.New("openxr: no active action sets")

	// ErrActionSetAttached is returned when an attached action set is
	// modified.
	ErrActionSetAttached = errors.New("openxr: action set is attached")

	// ErrSetupFailed is returned when a step of an initialization
	// sequence fails. The failing step is logged.
	ErrSetupFailed = errors.New("openxr: setup failed")
)
