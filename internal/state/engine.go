package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/uistate/internal/annotate"
	"github.com/mj1618/uistate/internal/model"
	"github.com/mj1618/uistate/internal/output"
	"github.com/mj1618/uistate/internal/platform"
)

// ErrStateUnavailable is returned when the hierarchy cannot be fetched.
var ErrStateUnavailable = errors.New("ui state unavailable")

// State is the result of one GetState call.
type State struct {
	Tree  model.TreeState
	Text  string
	Image *annotate.AnnotatedImage
	// ImageErr is set when a screenshot was requested but could not be
	// produced. The rest of the state is still valid.
	ImageErr error
}

// Options configures an Engine.
type Options struct {
	Platform        model.Platform
	MinSize         int
	DefaultWindow   model.Window
	ScreenshotScale float64 // passed to Driver.Screenshot; 0 keeps native size
	Render          annotate.Options
}

// Engine produces numbered snapshots. It holds no per-call state and never
// caches between calls.
type Engine struct {
	opts     Options
	builder  *Builder
	renderer *annotate.Renderer
	logger   *zap.Logger

	// Now is the clock used for snapshot timestamps.
	Now func() time.Time
}

// NewEngine builds the pipeline for opts.Platform. The label font is
// resolved here, once.
func NewEngine(opts Options, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	b, err := NewBuilder(opts.Platform, opts.MinSize, logger)
	if err != nil {
		return nil, err
	}
	return &Engine{
		opts:     opts,
		builder:  b,
		renderer: annotate.NewRenderer(opts.Render, logger),
		logger:   logger.With(zap.String("platform", string(opts.Platform))),
		Now:      time.Now,
	}, nil
}

// Builder exposes the engine's tree builder for offline use.
func (e *Engine) Builder() *Builder { return e.builder }

// GetState fetches the hierarchy once, builds and serializes the tree and,
// when useVision is set, annotates a fresh screenshot.
func (e *Engine) GetState(ctx context.Context, d platform.Driver, useVision bool) (*State, error) {
	if d.Platform() != e.opts.Platform {
		return nil, fmt.Errorf("driver is for %s, engine for %s", d.Platform(), e.opts.Platform)
	}

	dump, err := d.Hierarchy(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStateUnavailable, err)
	}

	win := e.window(ctx, d)
	tree := e.builder.Build(dump, win, e.Now())
	st := &State{Tree: tree, Text: output.FormatState(tree)}

	if !useVision {
		return st, nil
	}
	shot, err := d.Screenshot(ctx, e.opts.ScreenshotScale)
	if err != nil {
		e.logger.Warn("screenshot failed", zap.Error(err))
		st.ImageErr = err
		return st, nil
	}
	img, err := e.renderer.Annotate(shot, tree.InteractiveElements, win)
	if err != nil {
		e.logger.Warn("annotation failed", zap.Error(err))
		st.ImageErr = err
		return st, nil
	}
	st.Image = img
	return st, nil
}

// window queries size and orientation once each, falling back to the
// configured defaults.
func (e *Engine) window(ctx context.Context, d platform.Driver) model.Window {
	win := e.opts.DefaultWindow
	if w, h, err := d.WindowSize(ctx); err != nil {
		e.logger.Info("window size unavailable, using default",
			zap.Error(err), zap.Int("width", win.Width), zap.Int("height", win.Height))
	} else if w > 0 && h > 0 {
		win.Width, win.Height = w, h
	}
	if o, err := d.Orientation(ctx); err != nil {
		e.logger.Info("orientation unavailable, using default", zap.Error(err), zap.String("orientation", win.Orientation))
	} else if o != "" {
		win.Orientation = o
	}
	return win
}
