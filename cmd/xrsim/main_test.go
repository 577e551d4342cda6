// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/xr/actionmap"
)

func TestSimulate(t *testing.T) {
	var stdout, stderr bytes.Buffer
	st, err := simulate([]string{"-frames", "12", "-telemetry", "none"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Equal(t, 12, st.frames)
	assert.Equal(t, 12, st.rendered)
	assert.Equal(t, 12, st.submitted)
	assert.Equal(t, 2, st.profiles, "both hands got a profile")
	assert.Positive(t, st.haptics, "trigger above the threshold pulses")
	assert.Contains(t, stderr.String(), "xrsim: session focused")
	assert.Contains(t, stderr.String(), "xrsim: session stopping")
	assert.Contains(t, stderr.String(), "xrsim: done")
	assert.Empty(t, stdout.String())
}

func TestSimulateActionMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.yaml")
	require.NoError(t, actionmap.Default().Save(path))
	var stdout, stderr bytes.Buffer
	st, err := simulate([]string{"-frames", "2", "-actionmap", path}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Equal(t, 2, st.submitted)
}

func TestSimulateDisabled(t *testing.T) {
	t.Setenv("XR_OPENXR_ENABLED", "false")
	var stdout, stderr bytes.Buffer
	st, err := simulate(nil, &stdout, &stderr)
	require.NoError(t, err)
	assert.Zero(t, st.frames)
	assert.Contains(t, stderr.String(), "XR is disabled")
}

func TestSimulateErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.ErrorIs(t, run([]string{"-h"}, &stdout, &stderr), flag.ErrHelp)
	assert.Error(t, run([]string{"-frames", "-1"}, &stdout, &stderr))
	assert.ErrorContains(t, run([]string{"-telemetry", "jaeger"}, &stdout, &stderr), "unknown telemetry exporter")

	missing := filepath.Join(t.TempDir(), "missing.toml")
	assert.ErrorIs(t, run([]string{"-actionmap", missing}, &stdout, &stderr), os.ErrNotExist)
}
