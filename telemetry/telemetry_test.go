// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Init("xrsim-test", "v0.0.1", Config{Writer: &buf})
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	_, span := otel.Tracer("test").Start(context.Background(), "setup")
	span.End()
	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "setup")
}

func TestInitNone(t *testing.T) {
	shutdown, err := Init("xrsim-test", "v0.0.1", Config{Exporter: "none"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitUnknown(t *testing.T) {
	_, err := Init("xrsim-test", "v0.0.1", Config{Exporter: "carrier-pigeon"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" Info ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, "warn", "json"))
	logger.Info("hidden")
	logger.With("call", "xrEndFrame").Warn("frame end failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "frame end failed", rec["msg"])
	assert.Equal(t, "xrEndFrame", rec["call"])
	assert.NotContains(t, rec, "trace_id")

	buf.Reset()
	logger = slog.New(NewHandler(&buf, "debug", "text"))
	logger.Debug("visible", "n", 1)
	assert.Contains(t, buf.String(), "msg=visible n=1")
}
