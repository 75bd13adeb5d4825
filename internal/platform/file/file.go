// Package file is a driver that replays a saved dump and screenshot.
package file

import (
	"context"
	"fmt"
	"os"

	"github.com/mj1618/uistate/internal/model"
	"github.com/mj1618/uistate/internal/platform"
)

func init() {
	platform.Register("file", func(opts platform.Options) (platform.Driver, error) {
		return New(opts)
	})
}

// Driver reads from disk on every call, so edits between calls are seen.
type Driver struct {
	platform       model.Platform
	dumpPath       string
	screenshotPath string
	window         model.Window
}

// New validates opts. A dump path is required; the screenshot is optional.
func New(opts platform.Options) (*Driver, error) {
	if opts.DumpPath == "" {
		return nil, fmt.Errorf("file driver: dump path is required")
	}
	if opts.Platform == "" {
		return nil, fmt.Errorf("file driver: platform is required")
	}
	return &Driver{
		platform:       opts.Platform,
		dumpPath:       opts.DumpPath,
		screenshotPath: opts.ScreenshotPath,
		window:         opts.Window,
	}, nil
}

func (d *Driver) Platform() model.Platform { return d.platform }

func (d *Driver) Hierarchy(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(d.dumpPath)
	if err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}
	return data, nil
}

func (d *Driver) Screenshot(ctx context.Context, scale float64) ([]byte, error) {
	if d.screenshotPath == "" {
		return nil, fmt.Errorf("file driver: no screenshot configured: %w", platform.ErrUnsupported)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(d.screenshotPath)
	if err != nil {
		return nil, fmt.Errorf("read screenshot: %w", err)
	}
	return platform.ScaleImage(data, scale)
}

// WindowSize returns the configured size, else the screenshot's pixel size.
func (d *Driver) WindowSize(ctx context.Context) (int, int, error) {
	if d.window.Known() {
		return d.window.Width, d.window.Height, nil
	}
	if d.screenshotPath == "" {
		return 0, 0, fmt.Errorf("file driver: window size unknown: %w", platform.ErrUnsupported)
	}
	data, err := os.ReadFile(d.screenshotPath)
	if err != nil {
		return 0, 0, fmt.Errorf("read screenshot: %w", err)
	}
	return platform.ImageSize(data)
}

func (d *Driver) Orientation(ctx context.Context) (string, error) {
	if d.window.Orientation != "" {
		return d.window.Orientation, nil
	}
	w, h, err := d.WindowSize(ctx)
	if err != nil {
		return "", err
	}
	return platform.OrientationFor(w, h), nil
}
