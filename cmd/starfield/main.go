package main

import (
	"Starfield/internal/config"
	"Starfield/internal/driver"
	"Starfield/internal/engine"
	"Starfield/internal/logger"
	"Starfield/internal/renderer"
	"flag"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"
)

// glfw must run on the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		logger.Log.Error("Starfield failed", zap.Error(err))
		logger.Sync()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Sync()
}

func run() error {
	configPath := flag.String("config", "", "path to a JSON config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	textures := renderer.NewTextureManager(cfg.TextureWorkers)
	defer textures.Close()

	gopher := engine.NewGopher(cfg.Window, textures)
	gopher.ApplyRenderSettings(cfg.Render)
	gopher.AddBehaviour(driver.New(gopher, driver.Options{
		AssetDir: cfg.AssetDir,
		Seed:     cfg.StarSeed,
	}))

	if err := gopher.Render(cfg.Window.X, cfg.Window.Y); err != nil {
		return err
	}
	textures.LogStats()
	return nil
}
