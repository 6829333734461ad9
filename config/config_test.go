package config

import (
	"flag"
	"log/slog"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(Default(), cfg)
	assert.Equal("Game", cfg.Title)
	assert.Equal(uint32(1280), cfg.Width)
	assert.Equal(uint32(720), cfg.Height)
	assert.Equal([4]float32{0.1, 0.1, 0.3, 1}, cfg.ClearColor)
	assert.Equal(uint32(1), cfg.SyncInterval)
	assert.True(cfg.FrameSync)
	assert.False(cfg.Debug)
	assert.False(cfg.WARP)
}

func TestParse_Overrides(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Parse([]string{
		"-width", "800",
		"-height=600",
		"-vsync", "0",
		"-frame-sync=false",
		"-debug",
		"-warp",
		"-shader", "other.hlsl",
		"-log-level", "debug",
		"-stats", "250ms",
	})
	require.NoError(t, err)
	assert.Equal(uint32(800), cfg.Width)
	assert.Equal(uint32(600), cfg.Height)
	assert.Zero(cfg.SyncInterval)
	assert.False(cfg.FrameSync)
	assert.True(cfg.Debug)
	assert.True(cfg.WARP)
	assert.Equal("other.hlsl", cfg.ShaderPath)
	assert.Equal(slog.LevelDebug, cfg.LogLevel)
	assert.Equal(250*time.Millisecond, cfg.StatsInterval)
}

func TestParse_Errors(t *testing.T) {
	for name, args := range map[string][]string{
		"zero width":     {"-width", "0"},
		"huge height":    {"-height", "20000"},
		"sync interval":  {"-vsync", "5"},
		"unknown flag":   {"-fullscreen"},
		"bad level":      {"-log-level", "loud"},
		"bad number":     {"-width", "wide"},
		"positional":     {"extra"},
		"negative stats": {"-stats", "-1s"},
		"wrapping width": {"-width", "4294968576"},
		"wrapping vsync": {"-vsync", "4294967296"},
	} {
		_, err := Parse(args)
		assert.Error(t, err, name)
	}

	_, err := Parse([]string{"-width", "4294968576", "-vsync", "4294967296"})
	assert.ErrorContains(t, err, "exceeds 16384")

	_, err = Parse([]string{"-h"})
	assert.True(t, errors.Is(err, flag.ErrHelp))
}

func TestUsage(t *testing.T) {
	usage := Usage()
	for _, name := range []string{"-width", "-height", "-debug", "-warp", "-vsync", "-frame-sync", "-shader", "-log-level"} {
		assert.Contains(t, usage, name)
	}
}
