package main

import (
	_ "embed"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/dx12bootstrap/examples/config"
	"github.com/dx12bootstrap/examples/d3d12"
	"github.com/dx12bootstrap/examples/dx12"
	"github.com/dx12bootstrap/examples/window"
)

//go:embed asset/shader.hlsl
var embeddedShader []byte

type HelloTriangleApplication struct {
	cfg config.Config

	window   window.Window
	renderer renderer
	stats    *dx12.FrameStats
}

func (app *HelloTriangleApplication) Run() error {
	err := app.initWindow()
	if err != nil {
		return err
	}
	defer app.cleanup()

	err = app.initD3D()
	if err != nil {
		return err
	}

	return app.mainLoop()
}

func (app *HelloTriangleApplication) initWindow() error {
	return app.window.Create(app.cfg.Title, app.cfg.Width, app.cfg.Height)
}

func (app *HelloTriangleApplication) initD3D() error {
	api, err := d3d12.Load()
	if err != nil {
		return err
	}

	source, name, err := loadShader(app.cfg.ShaderPath, embeddedShader)
	if err != nil {
		return err
	}

	err = app.renderer.create(api, &app.window, app.cfg, source, name)
	if err != nil {
		return err
	}

	app.stats = dx12.NewFrameStats(app.cfg.StatsInterval)
	return nil
}

func (app *HelloTriangleApplication) mainLoop() error {
	for app.window.Poll() {
		if app.window.Minimized() {
			app.window.Wait(100 * time.Millisecond)
			continue
		}

		width, height := app.window.Size()
		err := app.renderer.render(width, height)
		if err != nil {
			return err
		}
		app.stats.Tick()
	}

	dx12.Logger().Info("exiting", "frames", app.stats.Frames(), "avgFrame", app.stats.Average())
	return nil
}

func (app *HelloTriangleApplication) cleanup() {
	app.renderer.destroy()
	if err := app.window.Destroy(); err != nil {
		dx12.Logger().Warn("destroy window", "err", err)
	}
}

func main() {
	runtime.LockOSThread()

	cfg, err := config.Parse(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		fmt.Print(config.Usage())
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n%s", err, config.Usage())
		os.Exit(2)
	}

	dx12.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	app := &HelloTriangleApplication{cfg: cfg}
	err = app.Run()
	if err != nil {
		log.Fatalf("%+v\n", err)
	}
}
