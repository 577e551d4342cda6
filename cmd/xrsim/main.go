// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command xrsim runs an XR session against the simulated runtime with
// the in-memory graphics backend, for a fixed number of frames. It
// exercises the whole session lifecycle without a device.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/image/draw"

	"cogentcore.org/xr/actionmap"
	"cogentcore.org/xr/base/errors"
	"cogentcore.org/xr/config"
	"cogentcore.org/xr/headless"
	"cogentcore.org/xr/openxr"
	"cogentcore.org/xr/rid"
	"cogentcore.org/xr/simulator"
	"cogentcore.org/xr/telemetry"
	"cogentcore.org/xr/xr"
)

const version = "0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "xrsim:", err)
		}
		os.Exit(1)
	}
}

// stats is what a run did, for the summary and for tests.
type stats struct {
	frames    int
	rendered  int
	submitted int
	haptics   int
	profiles  int
}

func run(args []string, stdout, stderr io.Writer) error {
	_, err := simulate(args, stdout, stderr)
	return err
}

func simulate(args []string, stdout, stderr io.Writer) (*stats, error) {
	fs := flag.NewFlagSet("xrsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "settings `file` (YAML)")
	frames := fs.Int("frames", 90, "number of frames to run")
	actionMapPath := fs.String("actionmap", "", "action map `file` (.toml, .yaml); overrides the settings")
	exporter := fs.String("telemetry", "", "telemetry exporter (stdout, none); overrides the settings")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *frames < 0 {
		return nil, fmt.Errorf("invalid frame count %d", *frames)
	}

	s, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	if *exporter != "" {
		s.Telemetry.Exporter = *exporter
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	if *actionMapPath != "" {
		s.OpenXR.DefaultActionMap = *actionMapPath
	}
	log := telemetry.ConfigureSlog(stderr, s.Log.Level, s.Log.Format)
	if !s.OpenXR.Enabled {
		log.Info("xrsim: XR is disabled")
		return &stats{}, nil
	}

	tc := s.TelemetryConfig()
	tc.Writer = stdout
	shutdown, err := telemetry.Init("xrsim", version, tc)
	if err != nil {
		return nil, err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		errors.Log(shutdown(ctx))
	}()
	metrics, err := telemetry.NewFrameMetrics(nil)
	if err != nil {
		return nil, err
	}

	am := actionmap.Default()
	if s.OpenXR.DefaultActionMap != "" {
		if am, err = actionmap.Load(s.OpenXR.DefaultActionMap); err != nil {
			return nil, err
		}
	}

	rt := simulator.New()
	gfx := headless.New()
	opts := s.Options()
	opts.EngineName = "xrsim"
	opts.EngineVersion = version
	opts.Metrics = metrics
	opts.Logger = log
	api := openxr.New(rt, gfx, opts)
	sess := &session{log: log}
	api.SetInterface(sess)

	if err := api.Initialize(); err != nil {
		return nil, err
	}
	defer api.Close()
	if err := api.InitializeSession(); err != nil {
		return nil, err
	}
	bound, err := am.Apply(api)
	if err != nil {
		return nil, err
	}
	defer bound.Free()
	if err := bound.Attach(); err != nil {
		return nil, err
	}

	for _, state := range []xr.SessionState{xr.SessionStateReady, xr.SessionStateSynchronized, xr.SessionStateVisible, xr.SessionStateFocused} {
		rt.QueueSessionState(state)
	}
	rt.SetInteractionProfile("/user/hand/left", "/interaction_profiles/khr/simple_controller")
	rt.SetInteractionProfile("/user/hand/right", "/interaction_profiles/khr/simple_controller")

	st := &stats{}
	loop := &frameLoop{api: api, rt: rt, bound: bound, log: log, frames: *frames}
	if err := loop.run(st); err != nil {
		return nil, err
	}

	rt.QueueSessionState(xr.SessionStateStopping)
	rt.QueueSessionState(xr.SessionStateExiting)
	api.Process()

	st.submitted = len(rt.EndFrames())
	st.haptics = len(rt.Haptics())
	st.profiles = sess.profiles
	log.Info("xrsim: done", "frames", st.frames, "rendered", st.rendered, "submitted", st.submitted,
		"copies", gfx.Copies(), "session", api.SessionID().String())
	return st, nil
}

// session receives the API notifications.
type session struct {
	log      *slog.Logger
	profiles int
}

func (s *session) OnStateReady()     { s.log.Info("xrsim: session ready") }
func (s *session) OnStateVisible()   { s.log.Info("xrsim: session visible") }
func (s *session) OnStateFocused()   { s.log.Info("xrsim: session focused") }
func (s *session) OnStateStopping()  { s.log.Info("xrsim: session stopping") }
func (s *session) OnPoseRecentered() { s.log.Info("xrsim: pose recentered") }

func (s *session) TrackerProfileChanged(tracker, profile rid.RID) {
	s.profiles++
	s.log.Info("xrsim: interaction profile changed", "tracker", tracker.String(), "profile", profile.String())
}

type frameLoop struct {
	api    *openxr.API
	rt     *simulator.Runtime
	bound  *actionmap.Bound
	log    *slog.Logger
	frames int
	target *image.RGBA
}

func (l *frameLoop) run(st *stats) error {
	set := actionmap.DefaultActionSet
	trigger, _ := l.bound.Action(set, "trigger")
	aim, _ := l.bound.Action(set, "aim_pose")
	haptic, _ := l.bound.Action(set, "haptic")
	right, _ := l.bound.Tracker("/user/hand/right")

	for i := range l.frames {
		if !l.api.Process() {
			break
		}
		st.frames++
		l.rt.SetActionFloat("trigger", "/user/hand/right", float32(i%10)/10)
		if err := l.api.SyncActionSets(l.bound.ActionSets()); err != nil && !errors.Is(err, openxr.ErrNoActiveSets) {
			return err
		}

		l.api.PreRender()
		if l.api.CanRender() {
			l.draw(i)
			if l.api.PreDrawViewport(l.target) {
				l.api.PostDrawViewport(l.target)
				st.rendered++
			}
		}
		if err := l.api.EndFrame(); err != nil {
			return err
		}

		if v, err := l.api.ActionFloat(trigger, right); err == nil && v > 0.85 {
			errors.Log(l.api.TriggerHapticPulse(haptic, right, 0, v, 10000000))
		}
		if i%30 == 0 {
			head := l.api.HeadCenter()
			p := errors.Log1(l.api.ActionPose(aim, right))
			l.log.Debug("xrsim: poses", "frame", i,
				"head", head.Transform.Origin, "head confidence", head.Confidence.String(),
				"aim confidence", p.Confidence.String())
		}
	}
	return nil
}

// draw fills the render target with a color that cycles per frame.
func (l *frameLoop) draw(frame int) {
	w, h := l.api.RecommendedTargetSize()
	if l.target == nil || l.target.Bounds().Dx() != int(w) || l.target.Bounds().Dy() != int(h) {
		l.target = image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	}
	c := color.RGBA{R: uint8(frame * 8), G: 64, B: 160, A: 255}
	draw.Draw(l.target, l.target.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}
