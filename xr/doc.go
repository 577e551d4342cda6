// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xr defines the OpenXR protocol surface used by the rest
// of this module: handles, result codes, structure types, the
// extensible records passed to and from the runtime, and the
// [Runtime] interface through which every protocol call is made.
//
// A Runtime can be backed by a native loader binding or by the
// in-process simulator in package simulator.
package xr
