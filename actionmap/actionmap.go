// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package actionmap is the declarative description of the actions of
// an application: action sets with their actions, and the bindings
// suggested for every interaction profile. An action map is stored as
// TOML or YAML and turned into live bindings with [ActionMap.Apply].
package actionmap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"cogentcore.org/xr/base/errors"
	"cogentcore.org/xr/openxr"
)

// ActionMap is a complete set of actions and suggested bindings.
type ActionMap struct {
	ActionSets          []ActionSet          `toml:"action_sets" yaml:"action_sets"`
	InteractionProfiles []InteractionProfile `toml:"interaction_profiles" yaml:"interaction_profiles"`
}

// ActionSet is a named group of actions that is synced as a unit.
type ActionSet struct {
	Name string `toml:"name" yaml:"name"`

	// LocalizedName is shown to the user; the name is used if empty.
	LocalizedName string `toml:"localized_name,omitempty" yaml:"localized_name,omitempty"`

	// Priority orders overlapping bindings of different sets.
	Priority uint32 `toml:"priority,omitempty" yaml:"priority,omitempty"`

	Actions []Action `toml:"actions" yaml:"actions"`
}

// Action is one input or output of an action set.
type Action struct {
	Name          string            `toml:"name" yaml:"name"`
	LocalizedName string            `toml:"localized_name,omitempty" yaml:"localized_name,omitempty"`
	Type          openxr.ActionType `toml:"type" yaml:"type"`

	// TopLevelPaths are the user paths the action is tracked for,
	// like /user/hand/left.
	TopLevelPaths []string `toml:"top_level_paths" yaml:"top_level_paths"`
}

// InteractionProfile holds the bindings suggested for one profile.
type InteractionProfile struct {
	Path string `toml:"path" yaml:"path"`

	// Extension is the runtime extension the profile needs. The
	// profile is skipped when it is set and not enabled.
	Extension string `toml:"extension,omitempty" yaml:"extension,omitempty"`

	Bindings []Binding `toml:"bindings" yaml:"bindings"`
}

// Binding binds an action to input or output paths.
type Binding struct {

	// Action is the qualified action name, "set/action".
	Action string `toml:"action" yaml:"action"`

	Paths []string `toml:"paths" yaml:"paths"`
}

// splitAction splits a qualified action name into set and action.
func splitAction(qualified string) (set, action string, ok bool) {
	set, action, ok = strings.Cut(qualified, "/")
	return set, action, ok && set != "" && action != "" && !strings.Contains(action, "/")
}

// Action returns the action with the given qualified name.
func (m *ActionMap) Action(qualified string) (*ActionSet, *Action, bool) {
	sn, an, ok := splitAction(qualified)
	if !ok {
		return nil, nil, false
	}
	for si := range m.ActionSets {
		set := &m.ActionSets[si]
		if set.Name != sn {
			continue
		}
		for ai := range set.Actions {
			if set.Actions[ai].Name == an {
				return set, &set.Actions[ai], true
			}
		}
	}
	return nil, nil, false
}

// Validate checks that names are unique, that every action has a
// known type and at least one top level path, and that every binding
// refers to an existing action under one of its top level paths.
func (m *ActionMap) Validate() error {
	var errs []error
	sets := map[string]bool{}
	for _, set := range m.ActionSets {
		if set.Name == "" {
			errs = append(errs, fmt.Errorf("actionmap: action set without a name"))
			continue
		}
		if sets[set.Name] {
			errs = append(errs, fmt.Errorf("actionmap: duplicate action set %q", set.Name))
		}
		sets[set.Name] = true
		actions := map[string]bool{}
		for _, act := range set.Actions {
			switch {
			case act.Name == "":
				errs = append(errs, fmt.Errorf("actionmap: action without a name in set %q", set.Name))
				continue
			case actions[act.Name]:
				errs = append(errs, fmt.Errorf("actionmap: duplicate action %q in set %q", act.Name, set.Name))
			}
			actions[act.Name] = true
			if !act.Type.IsValid() {
				errs = append(errs, fmt.Errorf("actionmap: action %s/%s has unknown type %v", set.Name, act.Name, act.Type))
			}
			if len(act.TopLevelPaths) == 0 {
				errs = append(errs, fmt.Errorf("actionmap: action %s/%s has no top level paths", set.Name, act.Name))
			}
		}
	}
	profiles := map[string]bool{}
	for _, ip := range m.InteractionProfiles {
		if profiles[ip.Path] {
			errs = append(errs, fmt.Errorf("actionmap: duplicate interaction profile %q", ip.Path))
		}
		profiles[ip.Path] = true
		for _, b := range ip.Bindings {
			_, act, ok := m.Action(b.Action)
			if !ok {
				errs = append(errs, fmt.Errorf("actionmap: profile %q binds unknown action %q", ip.Path, b.Action))
				continue
			}
			for _, p := range b.Paths {
				if !underTopLevel(p, act.TopLevelPaths) {
					errs = append(errs, fmt.Errorf("actionmap: profile %q binds %q to %q, which is not under its top level paths", ip.Path, b.Action, p))
				}
			}
		}
	}
	return errors.Join(errs...)
}

func underTopLevel(path string, tops []string) bool {
	for _, top := range tops {
		if strings.HasPrefix(path, top+"/") {
			return true
		}
	}
	return false
}

// format returns the file format for the extension of a path.
func format(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return "toml", nil
	case ".yaml", ".yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("actionmap: unsupported file extension %q", ext)
	}
}

// Unmarshal decodes an action map in the given format, "toml" or
// "yaml", and validates it.
func Unmarshal(data []byte, format string) (*ActionMap, error) {
	m := &ActionMap{}
	var err error
	switch format {
	case "toml":
		err = toml.Unmarshal(data, m)
	case "yaml":
		err = yaml.Unmarshal(data, m)
	default:
		return nil, fmt.Errorf("actionmap: unknown format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("actionmap: parse %s: %w", format, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Marshal encodes the action map in the given format.
func (m *ActionMap) Marshal(format string) ([]byte, error) {
	switch format {
	case "toml":
		return toml.Marshal(m)
	case "yaml":
		return yaml.Marshal(m)
	}
	return nil, fmt.Errorf("actionmap: unknown format %q", format)
}

// Load reads an action map from a .toml, .yaml or .yml file.
func Load(path string) (*ActionMap, error) {
	f, err := format(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Unmarshal(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Save writes the action map to a file, in the format given by the
// file extension.
func (m *ActionMap) Save(path string) error {
	f, err := format(path)
	if err != nil {
		return err
	}
	data, err := m.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
