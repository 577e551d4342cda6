// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/xr/xr"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xr.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	d := Defaults()
	assert.Equal(t, &d, s)
	assert.True(t, s.OpenXR.Enabled)
	assert.Empty(t, s.OpenXR.DefaultActionMap)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
openxr:
  form_factor: handheld
  view_configuration: Mono
  reference_space: local
  default_action_map: actions.toml
  min_runtime_version: 1.0.20
log:
  level: debug
  format: json
`)
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormFactorHandheld, s.OpenXR.FormFactor)
	assert.Equal(t, ViewConfigurationMono, s.OpenXR.ViewConfiguration)
	assert.Equal(t, ReferenceSpaceLocal, s.OpenXR.ReferenceSpace)
	assert.Equal(t, "actions.toml", s.OpenXR.DefaultActionMap)
	assert.Equal(t, "Cogent XR", s.OpenXR.ApplicationName, "default kept")
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "json", s.Log.Format)

	opts := s.Options()
	assert.Equal(t, xr.FormFactorHandheldDisplay, opts.FormFactor)
	assert.Equal(t, xr.ViewConfigurationTypePrimaryMono, opts.ViewConfiguration)
	assert.Equal(t, xr.ReferenceSpaceTypeLocal, opts.ReferenceSpace)
	assert.Equal(t, "1.0.20", opts.MinRuntimeVersion)
}

func TestLoadEnv(t *testing.T) {
	path := writeFile(t, "openxr:\n  form_factor: handheld\n  application_name: file\n")
	t.Setenv("XR_OPENXR_FORM_FACTOR", "hmd")
	t.Setenv("XR_OPENXR_ENABLED", "false")
	t.Setenv("XR_OPENXR_APPLICATION_VERSION", "7")
	t.Setenv("XR_TELEMETRY_EXPORTER", "stdout")
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormFactorHMD, s.OpenXR.FormFactor, "environment wins over the file")
	assert.Equal(t, "file", s.OpenXR.ApplicationName)
	assert.False(t, s.OpenXR.Enabled)
	assert.Equal(t, uint32(7), s.OpenXR.ApplicationVersion)
	assert.Equal(t, "stdout", s.TelemetryConfig().Exporter)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "openxr.form_factor", envKey("XR_OPENXR_FORM_FACTOR"))
	assert.Equal(t, "log.level", envKey("XR_LOG_LEVEL"))
	assert.Equal(t, "debug", envKey("XR_DEBUG"))
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("XR_OPENXR_REFERENCE_SPACE", "ocean")
	t.Setenv("XR_LOG_FORMAT", "xml")
	_, err := Load("")
	require.Error(t, err)
	assert.ErrorContains(t, err, `unknown reference space "ocean"`)
	assert.ErrorContains(t, err, `unknown log format "xml"`)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "config: load")
}

func TestSettingsDefaults(t *testing.T) {
	s := Settings{OpenXR: OpenXR{ReferenceSpace: ReferenceSpaceLocal}}
	s.Defaults()
	assert.Equal(t, ReferenceSpaceLocal, s.OpenXR.ReferenceSpace)
	assert.Equal(t, FormFactorHMD, s.OpenXR.FormFactor)
	assert.Equal(t, ViewConfigurationStereo, s.OpenXR.ViewConfiguration)
	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, "none", s.Telemetry.Exporter)
	assert.NoError(t, s.Validate())
}

func TestEnums(t *testing.T) {
	assert.False(t, FormFactor("glasses").IsValid())
	assert.Zero(t, ViewConfiguration("quad").XR())
	assert.True(t, ReferenceSpaceStage.IsValid())
	assert.Equal(t, xr.ReferenceSpaceTypeStage, ReferenceSpaceStage.XR())
}
