// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope of [FrameMetrics].
const MeterName = "cogentcore.org/xr"

// FrameMetrics records frame loop and session metrics. A nil
// *FrameMetrics records nothing, so callers need not check.
type FrameMetrics struct {

	// ended counts frame ends submitted to the runtime.
	ended metric.Int64Counter

	// empty counts frame ends submitted without layers.
	empty metric.Int64Counter

	// errors counts failed runtime calls of the frame loop, by call.
	errors metric.Int64Counter

	// period records the predicted display period in seconds.
	period metric.Float64Histogram

	// state records the current session state.
	state metric.Int64Gauge
}

// NewFrameMetrics creates the frame instruments on the given meter
// provider, or the global one if mp is nil.
func NewFrameMetrics(mp metric.MeterProvider) (*FrameMetrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(MeterName)
	fm := &FrameMetrics{}
	var err error
	if fm.ended, err = meter.Int64Counter("xr.frames.ended",
		metric.WithDescription("Frame ends submitted to the runtime"),
	); err != nil {
		return nil, err
	}
	if fm.empty, err = meter.Int64Counter("xr.frames.empty",
		metric.WithDescription("Frame ends submitted without composition layers"),
	); err != nil {
		return nil, err
	}
	if fm.errors, err = meter.Int64Counter("xr.frames.errors",
		metric.WithDescription("Failed runtime calls of the frame loop by call"),
	); err != nil {
		return nil, err
	}
	if fm.period, err = meter.Float64Histogram("xr.frame.display_period",
		metric.WithDescription("Predicted display period"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if fm.state, err = meter.Int64Gauge("xr.session.state",
		metric.WithDescription("Current session state"),
	); err != nil {
		return nil, err
	}
	return fm, nil
}

// FrameEnded records a submitted frame end with the given number
// of composition layers.
func (fm *FrameMetrics) FrameEnded(layers int) {
	if fm == nil {
		return
	}
	ctx := context.Background()
	fm.ended.Add(ctx, 1)
	if layers == 0 {
		fm.empty.Add(ctx, 1)
	}
}

// CallFailed records a failed runtime call.
func (fm *FrameMetrics) CallFailed(call, result string) {
	if fm == nil {
		return
	}
	fm.errors.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("call", call),
		attribute.String("result", result),
	))
}

// DisplayPeriod records a predicted display period in nanoseconds.
func (fm *FrameMetrics) DisplayPeriod(ns int64) {
	if fm == nil {
		return
	}
	fm.period.Record(context.Background(), float64(ns)/1e9)
}

// SessionState records a session state change.
func (fm *FrameMetrics) SessionState(state int64, name string) {
	if fm == nil {
		return
	}
	fm.state.Record(context.Background(), state, metric.WithAttributes(
		attribute.String("state", name),
	))
}
