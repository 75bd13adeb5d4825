// Package osascript reads the macOS desktop through AppleScript.
package osascript

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mj1618/uistate/internal/adapter/mac"
	"github.com/mj1618/uistate/internal/model"
	"github.com/mj1618/uistate/internal/platform"
)

func init() {
	platform.Register("osascript", func(opts platform.Options) (platform.Driver, error) {
		return New(opts.Logger), nil
	})
}

const frontAppScript = `tell application "System Events" to get name of first application process whose frontmost is true`

const desktopScript = `tell application "Finder" to get name of every item of desktop`

const dockScript = `tell application "System Events" to tell process "Dock" to get name of every UI element of list 1`

const boundsScript = `tell application "Finder" to get bounds of window of desktop`

func menuBarScript(app string) string {
	return fmt.Sprintf(`tell application "System Events" to tell process %q to get name of every menu of menu bar 1`, app)
}

func windowScript(app string) string {
	return fmt.Sprintf(`tell application "System Events" to tell process %q to get name of every UI element of window 1`, app)
}

var boundsRe = regexp.MustCompile(`^\s*(-?\d+),\s*(-?\d+),\s*(-?\d+),\s*(-?\d+)\s*$`)

type query struct {
	section string
	dst     *string
	script  string
}

// Driver shells out to osascript and screencapture. Run can be replaced in
// tests.
type Driver struct {
	Run    platform.Runner
	logger *zap.Logger
}

// New returns a driver using the real commands.
func New(logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{Run: platform.RunCommand, logger: logger}
}

func (d *Driver) Platform() model.Platform { return model.Mac }

func (d *Driver) osascript(ctx context.Context, script string) (string, error) {
	out, err := d.Run(ctx, []string{"osascript", "-e", script})
	return strings.TrimSpace(string(out)), err
}

// Hierarchy resolves the frontmost app, then runs the four list queries
// concurrently. A failing list query leaves its section empty; a cancelled
// context stops the remaining queries and fails the call.
func (d *Driver) Hierarchy(ctx context.Context) ([]byte, error) {
	app, err := d.osascript(ctx, frontAppScript)
	if err != nil {
		return nil, fmt.Errorf("frontmost app: %w", err)
	}
	dump := mac.Dump{FrontApp: app}

	queries := []query{
		{"desktop", &dump.Desktop, desktopScript},
		{"dock", &dump.Dock, dockScript},
	}
	if app != "" {
		queries = append(queries,
			query{"menubar", &dump.MenuBar, menuBarScript(app)},
			query{"window", &dump.Window, windowScript(app)},
		)
	}

	var (
		mu     sync.Mutex
		failed []string
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, q := range queries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := d.osascript(gctx, q.script)
			if err != nil {
				if cerr := gctx.Err(); cerr != nil {
					return cerr
				}
				mu.Lock()
				failed = append(failed, q.section)
				mu.Unlock()
				return nil
			}
			*q.dst = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("applescript queries: %w", err)
	}
	if len(failed) > 0 {
		d.logger.Debug("applescript queries failed, sections left empty", zap.Strings("sections", failed))
	}
	return json.Marshal(dump)
}

func (d *Driver) Screenshot(ctx context.Context, scale float64) ([]byte, error) {
	dir, err := os.MkdirTemp("", "uistate-shot")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "screen.png")
	if _, err := d.Run(ctx, []string{"screencapture", "-x", "-t", "png", path}); err != nil {
		return nil, fmt.Errorf("screencapture: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read capture: %w", err)
	}
	return platform.ScaleImage(data, scale)
}

// WindowSize returns the desktop size in points.
func (d *Driver) WindowSize(ctx context.Context) (int, int, error) {
	out, err := d.osascript(ctx, boundsScript)
	if err != nil {
		return 0, 0, fmt.Errorf("desktop bounds: %w", err)
	}
	return ParseBounds(out)
}

func (d *Driver) Orientation(ctx context.Context) (string, error) {
	w, h, err := d.WindowSize(ctx)
	if err != nil {
		return "", err
	}
	return platform.OrientationFor(w, h), nil
}

// ParseBounds parses Finder's "x1, y1, x2, y2" into a width and height.
func ParseBounds(s string) (int, int, error) {
	m := boundsRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("unexpected bounds %q", s)
	}
	var v [4]int
	for i := range v {
		v[i], _ = strconv.Atoi(m[i+1])
	}
	w, h := v[2]-v[0], v[3]-v[1]
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("empty bounds %q", s)
	}
	return w, h, nil
}
