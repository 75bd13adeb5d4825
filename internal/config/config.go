// Package config loads uistate settings.
//
// Precedence: built-in defaults, then the YAML file, then a .env file, then
// UISTATE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/uistate/internal/classify"
	"github.com/mj1618/uistate/internal/logging"
	"github.com/mj1618/uistate/internal/model"
)

// Environment variable names.
const (
	EnvLogLevel   = "UISTATE_LOG_LEVEL"
	EnvFontPaths  = "UISTATE_FONT_PATHS"
	EnvFontSize   = "UISTATE_FONT_SIZE"
	EnvADB        = "UISTATE_ADB"
	EnvBrowserURL = "UISTATE_BROWSER_URL"
	EnvWDAURL     = "UISTATE_WDA_URL"
)

// Config is the full configuration.
type Config struct {
	LogLevel  string     `yaml:"log_level"`
	Font      FontConfig `yaml:"font"`
	Driver    Driver     `yaml:"driver"`
	Platforms Platforms  `yaml:"platforms"`
}

// FontConfig selects the label font. Paths are tried in order.
type FontConfig struct {
	Paths []string `yaml:"paths"`
	Size  float64  `yaml:"size"`
}

// Driver holds connection settings for the live drivers.
type Driver struct {
	ADB        string `yaml:"adb"`         // adb command line, e.g. "adb -s emulator-5554"
	BrowserURL string `yaml:"browser_url"` // DevTools websocket or http endpoint
	WDAURL     string `yaml:"wda_url"`     // WebDriverAgent base URL
}

// Platform holds per-platform tuning.
type Platform struct {
	MinSize       int          `yaml:"min_size"`
	Padding       int          `yaml:"padding"`
	CaptureScale  float64      `yaml:"capture_scale"` // 0 infers from the screenshot width
	RenderScale   float64      `yaml:"render_scale"`  // 0 keeps the capture resolution
	DefaultWindow model.Window `yaml:"default_window"`
}

// Platforms groups the per-platform sections.
type Platforms struct {
	Android Platform `yaml:"android"`
	IOS     Platform `yaml:"ios"`
	Chrome  Platform `yaml:"chrome"`
	Mac     Platform `yaml:"mac"`
}

// For returns the section for p.
func (ps Platforms) For(p model.Platform) Platform {
	switch p {
	case model.Android:
		return ps.Android
	case model.IOS:
		return ps.IOS
	case model.Chrome:
		return ps.Chrome
	default:
		return ps.Mac
	}
}

// DefaultFontPaths are tried when no font is configured.
var DefaultFontPaths = []string{
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/System/Library/Fonts/Arial.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"C:/Windows/Fonts/arial.ttf",
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Font: FontConfig{
			Paths: append([]string(nil), DefaultFontPaths...),
			Size:  14,
		},
		Driver: Driver{ADB: "adb"},
		Platforms: Platforms{
			Android: Platform{
				MinSize:       classify.DefaultMinSize(model.Android),
				Padding:       15,
				DefaultWindow: model.Window{Width: 1080, Height: 1920, Orientation: "PORTRAIT"},
			},
			IOS: Platform{
				MinSize:       classify.DefaultMinSize(model.IOS),
				DefaultWindow: model.Window{Width: 375, Height: 667, Orientation: "PORTRAIT"},
			},
			Chrome: Platform{
				MinSize:       classify.DefaultMinSize(model.Chrome),
				DefaultWindow: model.Window{Width: 1920, Height: 1080, Orientation: "LANDSCAPE"},
			},
			Mac: Platform{
				MinSize:       classify.DefaultMinSize(model.Mac),
				DefaultWindow: model.Window{Width: 1440, Height: 900, Orientation: "LANDSCAPE"},
			},
		},
	}
}

// Loader reads configuration from a file, a .env file and the environment.
type Loader struct {
	path    string
	envFile string
}

// NewLoader returns a loader that reads ".env" from the working directory.
func NewLoader() *Loader {
	return &Loader{envFile: ".env"}
}

// WithConfigPath sets the YAML file. A missing file is an error only when the
// path was given explicitly.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.path = path
	return l
}

// WithEnvFile sets the dotenv file; "" disables it.
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// Load builds the configuration.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	if l.path != "" {
		data, err := os.ReadFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", filepath.Base(l.path), err)
		}
	}

	if l.envFile != "" {
		// godotenv.Load never overrides variables that are already set.
		if err := godotenv.Load(l.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", l.envFile, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is shorthand for NewLoader().WithConfigPath(path).Load().
func Load(path string) (*Config, error) {
	return NewLoader().WithConfigPath(path).Load()
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvFontPaths); v != "" {
		var paths []string
		for _, p := range filepath.SplitList(v) {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		cfg.Font.Paths = paths
	}
	if v := os.Getenv(EnvFontSize); v != "" {
		size, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFontSize, err)
		}
		cfg.Font.Size = size
	}
	if v := os.Getenv(EnvADB); v != "" {
		cfg.Driver.ADB = v
	}
	if v := os.Getenv(EnvBrowserURL); v != "" {
		cfg.Driver.BrowserURL = v
	}
	if v := os.Getenv(EnvWDAURL); v != "" {
		cfg.Driver.WDAURL = v
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Font.Size <= 0 {
		return fmt.Errorf("font.size must be positive, got %v", c.Font.Size)
	}
	for _, p := range model.Platforms {
		pc := c.Platforms.For(p)
		switch {
		case pc.MinSize < 0:
			return fmt.Errorf("platforms.%s.min_size must not be negative", p)
		case pc.Padding < 0:
			return fmt.Errorf("platforms.%s.padding must not be negative", p)
		case pc.CaptureScale < 0 || pc.RenderScale < 0:
			return fmt.Errorf("platforms.%s: scales must not be negative", p)
		}
	}
	return nil
}
