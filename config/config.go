// Package config holds the runtime settings of the triangle renderer. Every
// setting has a default; command-line flags override them.
package config

import (
	"flag"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

const (
	// MaxSyncInterval is the largest sync interval DXGI accepts.
	MaxSyncInterval = 4
	// MaxWindowSize bounds both window dimensions.
	MaxWindowSize = 16384
)

type Config struct {
	Title  string
	Width  uint32
	Height uint32

	ClearColor [4]float32
	// SyncInterval is the number of vblanks Present waits for; 0 presents
	// immediately.
	SyncInterval uint32
	// FrameSync makes each frame wait on the fence of the previous one before
	// its command allocator is reused.
	FrameSync bool

	Debug bool
	WARP  bool

	// ShaderPath is read at startup. The embedded copy is used when the file
	// does not exist.
	ShaderPath string

	LogLevel      slog.Level
	StatsInterval time.Duration
}

func Default() Config {
	return Config{
		Title:         "Game",
		Width:         1280,
		Height:        720,
		ClearColor:    [4]float32{0.1, 0.1, 0.3, 1.0},
		SyncInterval:  1,
		FrameSync:     true,
		ShaderPath:    "asset/shader.hlsl",
		LogLevel:      slog.LevelInfo,
		StatsInterval: 5 * time.Second,
	}
}

func flagSet(cfg *Config, width, height, vsync *uint) *flag.FlagSet {
	fs := flag.NewFlagSet("hello_triangle", flag.ContinueOnError)
	fs.UintVar(width, "width", uint(cfg.Width), "window width in pixels")
	fs.UintVar(height, "height", uint(cfg.Height), "window height in pixels")
	fs.UintVar(vsync, "vsync", uint(cfg.SyncInterval), "present sync interval, 0 to 4")
	fs.BoolVar(&cfg.FrameSync, "frame-sync", cfg.FrameSync, "wait for the previous frame before reusing its allocator")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable the D3D12 debug layer and DXGI debug factory")
	fs.BoolVar(&cfg.WARP, "warp", cfg.WARP, "render on the WARP software adapter")
	fs.StringVar(&cfg.ShaderPath, "shader", cfg.ShaderPath, "HLSL source with vs and ps entry points")
	fs.TextVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.DurationVar(&cfg.StatsInterval, "stats", cfg.StatsInterval, "frame statistics interval, 0 disables")
	return fs
}

// Parse applies the flags in args, usually os.Args[1:], on top of Default.
// -h and -help return an error matching flag.ErrHelp.
func Parse(args []string) (Config, error) {
	cfg := Default()
	var width, height, vsync uint
	fs := flagSet(&cfg, &width, &height, &vsync)
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return Config{}, errors.Wrap(err, "parse flags")
	}
	if fs.NArg() > 0 {
		return Config{}, errors.Newf("unexpected argument %q", fs.Arg(0))
	}

	// Range check before narrowing so values past uint32 cannot wrap into range.
	if width > MaxWindowSize || height > MaxWindowSize {
		return Config{}, errors.Newf("window size %dx%d exceeds %d", width, height, MaxWindowSize)
	}
	if vsync > MaxSyncInterval {
		return Config{}, errors.Newf("sync interval %d is larger than %d", vsync, MaxSyncInterval)
	}
	cfg.Width = uint32(width)
	cfg.Height = uint32(height)
	cfg.SyncInterval = uint32(vsync)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Width == 0 || c.Height == 0 {
		return errors.Newf("invalid window size %dx%d", c.Width, c.Height)
	}
	if c.Width > MaxWindowSize || c.Height > MaxWindowSize {
		return errors.Newf("window size %dx%d exceeds %d", c.Width, c.Height, MaxWindowSize)
	}
	if c.SyncInterval > MaxSyncInterval {
		return errors.Newf("sync interval %d is larger than %d", c.SyncInterval, MaxSyncInterval)
	}
	if c.StatsInterval < 0 {
		return errors.Newf("negative stats interval %s", c.StatsInterval)
	}
	return nil
}

// Usage lists the flags with their defaults.
func Usage() string {
	cfg := Default()
	var width, height, vsync uint
	fs := flagSet(&cfg, &width, &height, &vsync)
	var b strings.Builder
	fs.SetOutput(&b)
	b.WriteString("Usage of hello_triangle:\n")
	fs.PrintDefaults()
	return b.String()
}
