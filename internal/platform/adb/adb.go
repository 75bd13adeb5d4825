// Package adb drives Android devices through the adb command-line tool.
package adb

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/mattn/go-shellwords"
	"go.uber.org/zap"

	"github.com/mj1618/uistate/internal/model"
	"github.com/mj1618/uistate/internal/platform"
)

func init() {
	platform.Register("adb", func(opts platform.Options) (platform.Driver, error) {
		return New(opts.ADB, opts.Logger)
	})
}

var (
	sizeRe        = regexp.MustCompile(`(\d+)x(\d+)`)
	orientationRe = regexp.MustCompile(`SurfaceOrientation:\s*(\d)`)
)

// Driver runs adb subcommands. Run can be replaced in tests.
type Driver struct {
	argv   []string
	Run    platform.Runner
	logger *zap.Logger
}

// New parses the adb command line, e.g. `adb -s emulator-5554`.
func New(command string, logger *zap.Logger) (*Driver, error) {
	if command == "" {
		command = "adb"
	}
	argv, err := shellwords.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse adb command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty adb command")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{argv: argv, Run: platform.RunCommand, logger: logger}, nil
}

// Argv returns the parsed base command.
func (d *Driver) Argv() []string { return append([]string(nil), d.argv...) }

func (d *Driver) run(ctx context.Context, args ...string) ([]byte, error) {
	full := append(d.Argv(), args...)
	d.logger.Debug("adb", zap.Strings("argv", full))
	return d.Run(ctx, full)
}

func (d *Driver) Platform() model.Platform { return model.Android }

// Hierarchy dumps the view tree to stdout. The "UI hierchary dumped to"
// trailer is left for the adapter to ignore.
func (d *Driver) Hierarchy(ctx context.Context) ([]byte, error) {
	out, err := d.run(ctx, "exec-out", "uiautomator", "dump", "/dev/tty")
	if err != nil {
		return nil, fmt.Errorf("uiautomator dump: %w", err)
	}
	return out, nil
}

func (d *Driver) Screenshot(ctx context.Context, scale float64) ([]byte, error) {
	out, err := d.run(ctx, "exec-out", "screencap", "-p")
	if err != nil {
		return nil, fmt.Errorf("screencap: %w", err)
	}
	return platform.ScaleImage(out, scale)
}

// WindowSize reports the display size in the current rotation. `wm size`
// prints the physical size and, if set, an override; the last one wins.
func (d *Driver) WindowSize(ctx context.Context) (int, int, error) {
	out, err := d.run(ctx, "shell", "wm", "size")
	if err != nil {
		return 0, 0, fmt.Errorf("wm size: %w", err)
	}
	w, h, err := ParseWMSize(string(out))
	if err != nil {
		return 0, 0, err
	}
	if o, err := d.Orientation(ctx); err == nil && o == "LANDSCAPE" && w < h {
		w, h = h, w
	}
	return w, h, nil
}

func (d *Driver) Orientation(ctx context.Context) (string, error) {
	out, err := d.run(ctx, "shell", "dumpsys", "input")
	if err != nil {
		return "", fmt.Errorf("dumpsys input: %w", err)
	}
	return ParseSurfaceOrientation(string(out))
}

// ParseWMSize extracts the effective size from `wm size` output.
func ParseWMSize(out string) (int, int, error) {
	all := sizeRe.FindAllStringSubmatch(out, -1)
	if len(all) == 0 {
		return 0, 0, fmt.Errorf("unexpected wm size output: %q", out)
	}
	m := all[len(all)-1]
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	return w, h, nil
}

// ParseSurfaceOrientation maps the rotation index to PORTRAIT or LANDSCAPE.
func ParseSurfaceOrientation(out string) (string, error) {
	m := orientationRe.FindStringSubmatch(out)
	if m == nil {
		return "", fmt.Errorf("SurfaceOrientation not found in dumpsys output")
	}
	switch m[1] {
	case "1", "3":
		return "LANDSCAPE", nil
	default:
		return "PORTRAIT", nil
	}
}
