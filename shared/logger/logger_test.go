package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"guesthouse/config"
	"guesthouse/shared/constant"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()

	logger, level, format := log.Logger, zerolog.GlobalLevel(), zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = logger
		zerolog.SetGlobalLevel(level)
		zerolog.TimeFieldFormat = format
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		logLevel string
		want     zerolog.Level
	}{
		{logLevel: "trace", want: zerolog.TraceLevel},
		{logLevel: "debug", want: zerolog.DebugLevel},
		{logLevel: "info", want: zerolog.InfoLevel},
		{logLevel: "warn", want: zerolog.WarnLevel},
		{logLevel: "error", want: zerolog.ErrorLevel},
		{logLevel: "disabled", want: zerolog.Disabled},
		{logLevel: "loud", want: zerolog.TraceLevel},
		{logLevel: "", want: zerolog.NoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			restore(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			SetLogLevel(cfg)

			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestConfigure_ProductionWritesJSON(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.Server.LogLevel = "info"
	cfg.App.Name = "guesthouse"

	var buf bytes.Buffer
	configure(cfg, &buf)

	log.Debug().Msg("dropped")
	log.Info().Str("booking", "b-1").Msg("booking confirmed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &line))

	assert.Equal(t, "guesthouse", line[fieldService])
	assert.Equal(t, "b-1", line["booking"])
	assert.Equal(t, "booking confirmed", line[zerolog.MessageFieldName])
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetLogLevel_ReportRespectsNewLevel(t *testing.T) {
	restore(t)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	cfg := &config.Config{}
	cfg.Server.LogLevel = "warn"

	SetLogLevel(cfg)

	assert.Empty(t, buf.String())
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestConfigure_DevelopmentUsesConsole(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.Env = "development"
	cfg.Server.LogLevel = "debug"

	var buf bytes.Buffer
	configure(cfg, &buf)

	log.Info().Msg("room created")

	assert.Contains(t, buf.String(), "room created")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	ErrorWithStack(errors.New("overlapping booking"))

	assert.Contains(t, buf.String(), "overlapping booking")
	assert.Contains(t, buf.String(), "logger_test.go")
}
