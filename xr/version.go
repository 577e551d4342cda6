// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xr

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version is a packed protocol version: 16 bits major,
// 16 bits minor and 32 bits patch.
type Version uint64

// CurrentAPIVersion is the protocol version requested at instance creation.
var CurrentAPIVersion = MakeVersion(1, 0, 34)

// MakeVersion packs a version.
func MakeVersion(major, minor, patch uint32) Version {
	return Version(uint64(major&0xffff)<<48 | uint64(minor&0xffff)<<32 | uint64(patch))
}

func (v Version) Major() uint32 { return uint32(v>>48) & 0xffff }
func (v Version) Minor() uint32 { return uint32(v>>32) & 0xffff }
func (v Version) Patch() uint32 { return uint32(v) }

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}

// Semver returns the version as a semantic version, for comparing
// against version constraints.
func (v Version) Semver() *semver.Version {
	return semver.New(uint64(v.Major()), uint64(v.Minor()), uint64(v.Patch()), "", "")
}
