// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the startup settings of an XR application,
// loaded from defaults, an optional YAML file and XR_ environment
// variables, in that order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"cogentcore.org/xr/base/errors"
	"cogentcore.org/xr/openxr"
	"cogentcore.org/xr/telemetry"
)

// EnvPrefix is the prefix of the environment variables that override
// settings. XR_OPENXR_FORM_FACTOR sets openxr.form_factor.
const EnvPrefix = "XR_"

// Settings is the main settings struct.
type Settings struct {

	// the XR runtime settings
	OpenXR OpenXR `koanf:"openxr"`

	// the logging settings
	Log Log `koanf:"log"`

	// the telemetry settings
	Telemetry Telemetry `koanf:"telemetry"`
}

type OpenXR struct {

	// [def: true] whether XR is used at all
	Enabled bool `koanf:"enabled"`

	// the action map file to load; the built in map is used if empty
	DefaultActionMap string `koanf:"default_action_map"`

	// [def: hmd] the kind of device to look for (hmd, handheld)
	FormFactor FormFactor `koanf:"form_factor"`

	// [def: stereo] the primary view configuration (mono, stereo)
	ViewConfiguration ViewConfiguration `koanf:"view_configuration"`

	// [def: stage] the play space (local, stage)
	ReferenceSpace ReferenceSpace `koanf:"reference_space"`

	// [def: Cogent XR] the application name reported to the runtime
	ApplicationName string `koanf:"application_name"`

	// [def: 1] the application version reported to the runtime
	ApplicationVersion uint32 `koanf:"application_version"`

	// the lowest runtime version known to work; only warned about
	MinRuntimeVersion string `koanf:"min_runtime_version"`
}

type Log struct {

	// [def: info] the log level (debug, info, warn, error)
	Level string `koanf:"level"`

	// [def: text] the log format (text, json)
	Format string `koanf:"format"`
}

type Telemetry struct {

	// [def: none] the telemetry exporter (stdout, none)
	Exporter string `koanf:"exporter"`
}

// Defaults returns the default settings.
func Defaults() Settings {
	return Settings{
		OpenXR: OpenXR{
			Enabled:            true,
			FormFactor:         FormFactorHMD,
			ViewConfiguration:  ViewConfigurationStereo,
			ReferenceSpace:     ReferenceSpaceStage,
			ApplicationName:    "Cogent XR",
			ApplicationVersion: 1,
		},
		Log:       Log{Level: "info", Format: "text"},
		Telemetry: Telemetry{Exporter: "none"},
	}
}

// Defaults resets every unset field to its default value.
func (s *Settings) Defaults() {
	d := Defaults()
	x, dx := &s.OpenXR, &d.OpenXR
	if x.FormFactor == "" {
		x.FormFactor = dx.FormFactor
	}
	if x.ViewConfiguration == "" {
		x.ViewConfiguration = dx.ViewConfiguration
	}
	if x.ReferenceSpace == "" {
		x.ReferenceSpace = dx.ReferenceSpace
	}
	if x.ApplicationName == "" {
		x.ApplicationName = dx.ApplicationName
	}
	if x.ApplicationVersion == 0 {
		x.ApplicationVersion = dx.ApplicationVersion
	}
	if s.Log.Level == "" {
		s.Log.Level = d.Log.Level
	}
	if s.Log.Format == "" {
		s.Log.Format = d.Log.Format
	}
	if s.Telemetry.Exporter == "" {
		s.Telemetry.Exporter = d.Telemetry.Exporter
	}
}

// envKey maps XR_OPENXR_FORM_FACTOR to openxr.form_factor: the first
// word is the section and the rest the key within it.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, key, ok := strings.Cut(s, "_")
	if !ok {
		return s
	}
	return section + "." + key
}

// Load loads the settings: the defaults, then the YAML file at path
// if it is not empty, then the environment.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")
	d := Defaults()
	for key, v := range map[string]any{
		"openxr.enabled":             d.OpenXR.Enabled,
		"openxr.form_factor":         string(d.OpenXR.FormFactor),
		"openxr.view_configuration":  string(d.OpenXR.ViewConfiguration),
		"openxr.reference_space":     string(d.OpenXR.ReferenceSpace),
		"openxr.application_name":    d.OpenXR.ApplicationName,
		"openxr.application_version": d.OpenXR.ApplicationVersion,
		"log.level":                  d.Log.Level,
		"log.format":                 d.Log.Format,
		"telemetry.exporter":         d.Telemetry.Exporter,
	} {
		if err := k.Set(key, v); err != nil {
			return nil, err
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}
	s := &Settings{}
	if err := k.Unmarshal("", s); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	s.normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) normalize() {
	x := &s.OpenXR
	x.FormFactor = FormFactor(strings.ToLower(strings.TrimSpace(string(x.FormFactor))))
	x.ViewConfiguration = ViewConfiguration(strings.ToLower(strings.TrimSpace(string(x.ViewConfiguration))))
	x.ReferenceSpace = ReferenceSpace(strings.ToLower(strings.TrimSpace(string(x.ReferenceSpace))))
	s.Log.Level = strings.ToLower(strings.TrimSpace(s.Log.Level))
	s.Log.Format = strings.ToLower(strings.TrimSpace(s.Log.Format))
	s.Telemetry.Exporter = strings.ToLower(strings.TrimSpace(s.Telemetry.Exporter))
}

// Validate returns an error for every setting with an unknown value.
func (s *Settings) Validate() error {
	var errs []error
	if !s.OpenXR.FormFactor.IsValid() {
		errs = append(errs, fmt.Errorf("config: unknown form factor %q", s.OpenXR.FormFactor))
	}
	if !s.OpenXR.ViewConfiguration.IsValid() {
		errs = append(errs, fmt.Errorf("config: unknown view configuration %q", s.OpenXR.ViewConfiguration))
	}
	if !s.OpenXR.ReferenceSpace.IsValid() {
		errs = append(errs, fmt.Errorf("config: unknown reference space %q", s.OpenXR.ReferenceSpace))
	}
	switch s.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("config: unknown log level %q", s.Log.Level))
	}
	switch s.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("config: unknown log format %q", s.Log.Format))
	}
	switch s.Telemetry.Exporter {
	case "stdout", "none":
	default:
		errs = append(errs, fmt.Errorf("config: unknown telemetry exporter %q", s.Telemetry.Exporter))
	}
	return errors.Join(errs...)
}

// Options returns the [openxr.Options] for these settings.
func (s *Settings) Options() openxr.Options {
	return openxr.Options{
		ApplicationName:    s.OpenXR.ApplicationName,
		ApplicationVersion: s.OpenXR.ApplicationVersion,
		FormFactor:         s.OpenXR.FormFactor.XR(),
		ViewConfiguration:  s.OpenXR.ViewConfiguration.XR(),
		ReferenceSpace:     s.OpenXR.ReferenceSpace.XR(),
		MinRuntimeVersion:  s.OpenXR.MinRuntimeVersion,
	}
}

// TelemetryConfig returns the [telemetry.Config] for these settings.
func (s *Settings) TelemetryConfig() telemetry.Config {
	return telemetry.Config{Exporter: s.Telemetry.Exporter}
}
