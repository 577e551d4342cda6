// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package openxr drives an XR runtime through the [xr.Runtime] protocol:
instance and system negotiation, the session state machine, reference
spaces, the swapchain and frame cycle, and the action binding system.

An [API] is created with [New] for one runtime and one graphics
backend. The application calls [API.Initialize] and
[API.InitializeSession] once, then every tick [API.Process], and for
every rendered frame [API.PreRender], [API.PreDrawViewport],
[API.PostDrawViewport] and [API.EndFrame]. [API.Finish] tears
everything down but keeps the registered wrappers for a later
[API.Initialize]. [API.Close] also drops them. An API is not safe
for concurrent use; all calls are made from the thread that drives
the render loop.
*/
package openxr

import (
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"cogentcore.org/xr/catalog"
	"cogentcore.org/xr/extension"
	"cogentcore.org/xr/rid"
	"cogentcore.org/xr/telemetry"
	"cogentcore.org/xr/xr"
)

// Options are the startup settings of an [API].
type Options struct {

	// ApplicationName is reported to the runtime.
	ApplicationName string

	// ApplicationVersion is reported to the runtime.
	ApplicationVersion uint32

	// EngineName is reported to the runtime.
	EngineName string

	// EngineVersion is a semantic version, reported to the runtime
	// packed as major*10000 + minor*100 + patch.
	EngineVersion string

	// FormFactor is the kind of device to look for.
	FormFactor xr.FormFactor

	// ViewConfiguration is the primary view configuration.
	ViewConfiguration xr.ViewConfigurationType

	// ReferenceSpace is the play space type.
	ReferenceSpace xr.ReferenceSpaceType

	// MinRuntimeVersion is the lowest runtime version that is known
	// to work. Older runtimes only get a warning. Empty disables
	// the check.
	MinRuntimeVersion string

	// Metrics records frame and session metrics; nil records nothing.
	Metrics *telemetry.FrameMetrics

	// Logger is the logger used; slog.Default() if nil.
	Logger *slog.Logger
}

// Defaults sets the default value of every unset option.
func (o *Options) Defaults() {
	if o.ApplicationName == "" {
		o.ApplicationName = "Cogent XR"
	}
	if o.ApplicationVersion == 0 {
		o.ApplicationVersion = 1
	}
	if o.EngineName == "" {
		o.EngineName = "Cogent Core"
	}
	if o.EngineVersion == "" {
		o.EngineVersion = "0.1.0"
	}
	if o.FormFactor == 0 {
		o.FormFactor = xr.FormFactorHeadMountedDisplay
	}
	if o.ViewConfiguration == 0 {
		o.ViewConfiguration = xr.ViewConfigurationTypePrimaryStereo
	}
	if o.ReferenceSpace == 0 {
		o.ReferenceSpace = xr.ReferenceSpaceTypeStage
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// Interface receives the notifications the render and application
// layer acts on.
type Interface interface {
	OnStateReady()
	OnStateVisible()
	OnStateFocused()
	OnStateStopping()

	// OnPoseRecentered is called when the play space was recentered.
	OnPoseRecentered()

	// TrackerProfileChanged is called when the active interaction
	// profile of a tracker changes. The profile is the invalid RID
	// when the tracker has no active profile, or one that was never
	// created with [API.InteractionProfileCreate].
	TrackerProfileChanged(tracker, profile rid.RID)
}

// API is the connection to one XR runtime.
type API struct {
	opts     Options
	log      *slog.Logger
	tracer   trace.Tracer
	runtime  xr.Runtime
	graphics extension.Graphics
	registry extension.Registry
	catalog  *catalog.Catalog
	iface    Interface

	// controllers are the availability flags of the optional
	// controller extensions, by name.
	controllers map[string]*bool

	instance          xr.Instance
	enabledExtensions []string
	runtimeName       string
	runtimeVersion    xr.Version
	system            SystemInfo

	session       xr.Session
	sessionID     uuid.UUID
	sessionState  xr.SessionState
	running       bool
	exitRequested bool
	playSpace     xr.Space
	viewSpace     xr.Space

	swapchain       Swapchain
	views           []xr.View
	projectionViews []xr.CompositionLayerProjectionView

	frameState     xr.FrameState
	viewPoseValid  bool
	headConfidence Confidence
	imageAcquired  bool
	imageIndex     uint32
	noOutputLogged bool

	trackers   rid.Owner[tracker]
	actionSets rid.Owner[actionSet]
	actions    rid.Owner[action]
	profiles   rid.Owner[interactionProfile]
}

// New returns an API for the given runtime and graphics backend.
// The graphics backend is registered as the first extension wrapper.
func New(rt xr.Runtime, graphics extension.Graphics, opts Options) *API {
	opts.Defaults()
	a := &API{
		opts:     opts,
		log:      opts.Logger,
		tracer:   otel.Tracer("cogentcore.org/xr/openxr"),
		runtime:  rt,
		graphics: graphics,
		catalog:  catalog.New(rt, opts.Logger),
	}
	a.controllers = make(map[string]*bool, len(ControllerExtensions))
	for _, name := range ControllerExtensions {
		a.controllers[name] = new(bool)
	}
	if graphics != nil {
		a.registry.Register(graphics)
		a.catalog.FormatName = graphics.SwapchainFormatName
	}
	return a
}

// SetInterface sets the receiver of downstream notifications.
func (a *API) SetInterface(iface Interface) { a.iface = iface }

// Register registers an extension wrapper. Wrappers must be
// registered before [API.Initialize] to take part in extension
// negotiation.
func (a *API) Register(w extension.Wrapper) { a.registry.Register(w) }

// RegisterCompositionLayerProvider registers a provider of an extra
// composition layer for every frame.
func (a *API) RegisterCompositionLayerProvider(p extension.CompositionLayerProvider) {
	a.registry.RegisterCompositionLayerProvider(p)
}

// Options returns the options the API was created with.
func (a *API) Options() Options { return a.opts }

// Catalog returns the capability catalog of the runtime.
func (a *API) Catalog() *catalog.Catalog { return a.catalog }

// Runtime returns the runtime the API drives.
func (a *API) Runtime() xr.Runtime { return a.runtime }

// Instance returns the instance handle, zero before [API.Initialize].
func (a *API) Instance() xr.Instance { return a.instance }

// Session returns the session handle, zero without a session.
func (a *API) Session() xr.Session { return a.session }

// SessionID returns the id that correlates the logs of the current
// session, the zero UUID without a session.
func (a *API) SessionID() uuid.UUID { return a.sessionID }

// SessionState returns the last observed session state.
func (a *API) SessionState() xr.SessionState { return a.sessionState }

// PlaySpace returns the play space, in which all poses are expressed.
func (a *API) PlaySpace() xr.Space { return a.playSpace }

// ViewSpace returns the view (head) space.
func (a *API) ViewSpace() xr.Space { return a.viewSpace }

// Initialized returns whether an instance exists.
func (a *API) Initialized() bool { return a.instance != 0 }

// Running returns whether the session has begun and not yet stopped.
func (a *API) Running() bool { return a.running }

// ExitRequested returns whether the runtime asked the application to
// shut down, by a loss pending or exiting state or a lost instance.
// The application should then call [API.Finish].
func (a *API) ExitRequested() bool { return a.exitRequested }

func (a *API) metrics() *telemetry.FrameMetrics { return a.opts.Metrics }

// callFailed logs a failed per-frame runtime call and counts it.
func (a *API) callFailed(call string, r xr.Result) {
	a.log.Error("openxr: "+call+" failed", "result", a.ErrorString(r), "session", a.sessionID)
	a.metrics().CallFailed(call, r.String())
}
