package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("invalid config")

type Window struct {
	Width  int32  `json:"width"`
	Height int32  `json:"height"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Title  string `json:"title"`
}

// Render holds the renderer toggles.
type Render struct {
	Wireframe      bool       `json:"wireframe"`
	FrustumCulling bool       `json:"frustum_culling"`
	FaceCulling    bool       `json:"face_culling"`
	DepthTest      bool       `json:"depth_test"`
	ClearColor     [3]float32 `json:"clear_color"`
}

type Config struct {
	Window         Window `json:"window"`
	Render         Render `json:"render"`
	AssetDir       string `json:"asset_dir"`
	LogLevel       string `json:"log_level"`
	TextureWorkers int    `json:"texture_workers"`
	// StarSeed seeds the star placement. Zero means seed from the clock.
	StarSeed uint64 `json:"star_seed"`
}

func Default() Config {
	return Config{
		Window: Window{
			Width:  1024,
			Height: 768,
			X:      768,
			Y:      50,
			Title:  "Starfield",
		},
		Render: Render{
			DepthTest: true,
		},
		AssetDir:       "assets",
		LogLevel:       "info",
		TextureWorkers: 4,
	}
}

// Load reads a JSON config from path on top of the defaults. An empty path
// returns the defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	for _, channel := range c.Render.ClearColor {
		if channel < 0 || channel > 1 {
			return fmt.Errorf("%w: clear_color channels must be within [0, 1], got %v", ErrInvalid, c.Render.ClearColor)
		}
	}
	if c.TextureWorkers <= 0 {
		return fmt.Errorf("%w: texture_workers must be positive, got %d", ErrInvalid, c.TextureWorkers)
	}
	return nil
}
