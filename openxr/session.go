// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package openxr

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"cogentcore.org/xr/xr"
)

// step is one step of a setup sequence.
type step struct {
	name string
	run  func() bool
}

// runSteps runs steps in order until one fails, and returns the
// name of the failed step.
func runSteps(span trace.Span, steps []step) (string, bool) {
	for _, s := range steps {
		if !s.run() {
			span.SetStatus(codes.Error, s.name)
			return s.name, false
		}
		span.AddEvent(s.name)
	}
	return "", true
}

// Initialize connects to the runtime: it loads the api layers and
// extensions, creates the instance, finds the system and loads the
// views of the primary view configuration. On failure everything
// created so far is released.
func (a *API) Initialize() error {
	if a.instance != 0 {
		return ErrAlreadyInitialized
	}
	_, span := a.tracer.Start(context.Background(), "openxr.Initialize")
	defer span.End()

	failed, ok := runSteps(span, []step{
		{"load api layers", a.catalog.LoadLayers},
		{"load extensions", a.catalog.LoadExtensions},
		{"create instance", a.createInstance},
		{"get system info", a.getSystemInfo},
		{"load view configurations", func() bool {
			return a.catalog.LoadViewConfigurationTypes(a.instance, a.system.ID)
		}},
		{"load view configuration views", func() bool {
			return a.catalog.LoadViewConfigurationViews(a.instance, a.system.ID, a.opts.ViewConfiguration)
		}},
	})
	if !ok {
		a.destroyInstance()
		return fmt.Errorf("%w: %s", ErrSetupFailed, failed)
	}
	span.SetAttributes(
		attribute.String("xr.runtime", a.runtimeName),
		attribute.String("xr.system", a.system.Name),
	)
	return nil
}

// InitializeSession creates the session and its reference spaces,
// and loads the swapchain formats. On failure the partial session is
// released.
func (a *API) InitializeSession() error {
	if a.instance == 0 {
		return ErrNotInitialized
	}
	if a.session != 0 {
		return ErrAlreadyInitialized
	}
	_, span := a.tracer.Start(context.Background(), "openxr.InitializeSession")
	defer span.End()

	failed, ok := runSteps(span, []step{
		{"create session", a.createSession},
		{"load reference spaces", func() bool { return a.catalog.LoadReferenceSpaces(a.session) }},
		{"setup spaces", a.setupSpaces},
		{"load swapchain formats", func() bool { return a.catalog.LoadSwapchainFormats(a.session) }},
	})
	if !ok {
		a.destroySession()
		return fmt.Errorf("%w: %s", ErrSetupFailed, failed)
	}
	span.SetAttributes(attribute.String("xr.session", a.sessionID.String()))
	return nil
}

// Finish releases the session and then the instance, whatever state
// they are in.
func (a *API) Finish() {
	_, span := a.tracer.Start(context.Background(), "openxr.Finish")
	defer span.End()
	a.destroySession()
	a.destroyInstance()
}

// Close is the full teardown: it finishes and then drops every
// registered wrapper and composition layer provider, the graphics
// backend included. [API.Finish] keeps them so that the API can be
// initialized again. The API must not be used after Close.
func (a *API) Close() {
	a.Finish()
	a.registry.Clear()
}

func (a *API) createSession() bool {
	info := &xr.SessionCreateInfo{
		Next:     a.registry.SessionCreateNext(),
		SystemID: a.system.ID,
	}
	var s xr.Session
	if r := a.runtime.CreateSession(a.instance, info, &s); r.Failed() {
		a.log.Error("openxr.createSession: failed to create session", "result", a.ErrorString(r))
		return false
	}
	a.session = s
	a.sessionID = uuid.New()
	a.sessionState = xr.SessionStateUnknown
	a.log.Info("openxr: session created", "session", a.sessionID)
	a.registry.SessionCreated(s)
	return true
}

// destroySession releases the session after everything created
// from it. It is a no-op without a session.
func (a *API) destroySession() {
	if a.running && a.session != 0 {
		if r := a.runtime.EndSession(a.session); r.Failed() {
			a.log.Error("openxr.destroySession: failed to end session", "result", a.ErrorString(r))
		}
		a.running = false
	}

	a.freeMainSwapchain()
	a.destroyActionSpaces()
	if a.viewSpace != 0 {
		if r := a.runtime.DestroySpace(a.viewSpace); r.Failed() {
			a.log.Error("openxr.destroySession: failed to destroy view space", "result", a.ErrorString(r))
		}
		a.viewSpace = 0
	}
	if a.playSpace != 0 {
		if r := a.runtime.DestroySpace(a.playSpace); r.Failed() {
			a.log.Error("openxr.destroySession: failed to destroy play space", "result", a.ErrorString(r))
		}
		a.playSpace = 0
	}
	a.catalog.ResetSession()

	if a.session != 0 {
		a.registry.SessionDestroyed()
		if r := a.runtime.DestroySession(a.session); r.Failed() {
			a.log.Error("openxr.destroySession: failed to destroy session", "result", a.ErrorString(r))
		}
		a.log.Info("openxr: session destroyed", "session", a.sessionID)
		a.session = 0
	}
	for _, as := range a.actionSets.All() {
		as.attached = false
	}
	a.sessionID = uuid.UUID{}
	a.sessionState = xr.SessionStateUnknown
	a.frameState = xr.FrameState{}
	a.viewPoseValid = false
	a.headConfidence = ConfidenceNone
	a.imageAcquired = false
	a.noOutputLogged = false
}

// beginSession begins the session on the ready state and builds the
// main swapchain. The session only runs if both succeed.
func (a *API) beginSession() bool {
	info := &xr.SessionBeginInfo{PrimaryViewConfigurationType: a.opts.ViewConfiguration}
	if r := a.runtime.BeginSession(a.session, info); r.Failed() {
		a.log.Error("openxr: failed to begin session", "result", a.ErrorString(r), "session", a.sessionID)
		return false
	}
	if !a.createMainSwapchain() {
		return false
	}
	a.running = true
	return true
}

// endSession ends the session on the stopping state. The session
// stops running even if that fails.
func (a *API) endSession() {
	if r := a.runtime.EndSession(a.session); r.Failed() {
		a.log.Error("openxr: failed to end session", "result", a.ErrorString(r), "session", a.sessionID)
	}
	a.running = false
}
