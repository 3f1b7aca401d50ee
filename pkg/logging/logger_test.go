package logging_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stocksync/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logging.SetDefault(zerolog.New(buf).Level(zerolog.DebugLevel))

	logging.Info().Msg("info message")
	logging.Err(errors.New("boom")).Msg("error message")

	assert.Contains(t, buf.String(), "info message")
	assert.Contains(t, buf.String(), `"error":"boom"`)
}

func TestContextLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithRunID(ctx, "run-1")
	ctx = logging.WithMarketplace(ctx, "yandex")
	ctx = logging.WithAccount(ctx, "fbs")
	ctx = logging.WithOperation(ctx, "stocks")

	logging.FromContext(ctx).Info().Msg("submitted batch")

	entries := tl.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "run-1", entries[0]["run_id"])
	assert.Equal(t, "yandex", entries[0]["marketplace"])
	assert.Equal(t, "fbs", entries[0]["account"])
	assert.Equal(t, "stocks", entries[0]["operation"])
	assert.Equal(t, "submitted batch", entries[0]["message"])
	assert.Equal(t, "run-1", logging.RunID(ctx))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Same(t, logging.Default(), logging.FromContext(nil))
	assert.Empty(t, logging.RunID(context.Background()))
}

func TestWithFields(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithFields(ctx, map[string]any{
		"offers":   12,
		"dry_run":  true,
		"duration": 2 * time.Second,
	})

	logging.Ctx(ctx).Info().Msg("fields")

	entries := tl.Entries()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 12, entries[0]["offers"])
	assert.Equal(t, true, entries[0]["dry_run"])
	assert.Contains(t, entries[0], "duration")
}

func TestConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		config   *logging.Config
		contains []string
		excludes []string
	}{
		{
			name:     "debug level",
			config:   &logging.Config{Level: "debug", Format: "json", Output: "discard"},
			contains: []string{`"level":"debug"`, `"level":"info"`},
		},
		{
			name:     "error level only",
			config:   &logging.Config{Level: "error", Format: "json", Output: "discard"},
			contains: []string{`"level":"error"`},
			excludes: []string{`"level":"info"`, `"level":"debug"`},
		},
		{
			name: "default fields",
			config: &logging.Config{
				Level:  "info",
				Format: "json",
				Output: "discard",
				Fields: map[string]any{"service": "stocksync"},
			},
			contains: []string{`"service":"stocksync"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldLevel := zerolog.GlobalLevel()
			t.Cleanup(func() { zerolog.SetGlobalLevel(oldLevel) })

			buf := &bytes.Buffer{}
			logger := logging.NewLoggerFromConfig(tt.config).Output(buf)

			logger.Debug().Msg("debug")
			logger.Info().Msg("info")
			logger.Error().Msg("error")

			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestParseFields(t *testing.T) {
	fields := logging.ParseFields("env=prod, host = a1,broken")
	assert.Equal(t, map[string]any{"env": "prod", "host": "a1"}, fields)
	assert.Empty(t, logging.ParseFields(""))
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	tl.Logger.Info().Msg("message 1")
	tl.Logger.Error().Msg("message 2")

	tl.AssertContains(t, "message 1")
	tl.AssertNotContains(t, "message 3")
	tl.AssertCount(t, 2)
	assert.True(t, tl.ContainsAll("message 1", "message 2"))
	lines := tl.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "message 2")

	tl.Clear()
	assert.Zero(t, tl.Count())
	assert.Empty(t, tl.Entries())
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)
	logging.Warn().Str("offer", "A-1").Msg("captured")
	tl.AssertContains(t, `"offer":"A-1"`)
}

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.NotNil(t, cfg.Fields)
}

func TestDisableLoggingForTest(t *testing.T) {
	original := logging.Default().GetLevel()
	t.Run("silenced", func(t *testing.T) {
		logging.DisableLoggingForTest(t)
		assert.Equal(t, zerolog.Disabled, logging.Default().GetLevel())
	})
	assert.Equal(t, original, logging.Default().GetLevel())
}
