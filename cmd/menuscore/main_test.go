package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Menuscore/internal/config"
	"github.com/MikeSquared-Agency/Menuscore/internal/nutrition"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"regular error", errors.New("config error"), ExitError},
		{"parse error", &nutrition.ParseError{Missing: []string{"calcium"}}, ExitParseError},
		{"wrapped parse error", fmt.Errorf("failed to parse x.csv: %w", &nutrition.ParseError{}), ExitParseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	newLogger(&buf, config.LoggingConfig{Level: "warn", Format: "json"}).Info("hidden")
	assert.Empty(t, buf.String())

	newLogger(&buf, config.LoggingConfig{Level: "debug", Format: "json"}).Debug("shown")
	assert.True(t, strings.HasPrefix(buf.String(), "{"))

	buf.Reset()
	newLogger(&buf, config.LoggingConfig{Format: "text"}).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestApplyDebugFlag(t *testing.T) {
	root := newRootCommand()
	serveCmd, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)

	cfg := &config.Config{Logging: config.LoggingConfig{Level: "warn"}}
	applyDebugFlag(serveCmd, cfg)
	assert.Equal(t, "warn", cfg.Logging.Level)

	require.NoError(t, root.PersistentFlags().Set("debug", "true"))
	applyDebugFlag(serveCmd, cfg)
	assert.Equal(t, "debug", cfg.Logging.Level)

	var buf bytes.Buffer
	newLogger(&buf, cfg.Logging).Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "rank")
}
