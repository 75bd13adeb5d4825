// Package annotate draws numbered element boxes onto screenshots.
package annotate

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"golang.org/x/image/font"

	"github.com/mj1618/uistate/internal/model"
)

// ErrEmptyScreenshot is returned when there are no bytes to annotate.
var ErrEmptyScreenshot = errors.New("empty screenshot")

// Options configures a Renderer. Zero values pick the defaults noted.
type Options struct {
	FontPaths    []string
	FontSize     float64 // default 14
	Padding      int     // white border added around the screenshot
	CaptureScale float64 // screenshot pixels per element unit; 0 infers from the window width
	RenderScale  float64 // output pixels per element unit; 0 keeps the capture resolution
	LineWidth    int     // default 2
	Palette      []color.NRGBA
}

// Label records one drawn overlay.
type Label struct {
	Number    int               `json:"number"     yaml:"number"`
	ElementID int               `json:"element_id" yaml:"element_id"`
	Box       model.BoundingBox `json:"box"        yaml:"box"` // in output image pixels, clipped
}

// AnnotatedImage is the rendered PNG. When Annotated is false, PNG holds the
// original screenshot bytes unchanged.
type AnnotatedImage struct {
	PNG       []byte
	Width     int
	Height    int
	Annotated bool
	Labels    []Label
}

// Renderer draws overlays. The font is resolved once in NewRenderer.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	opts   Options
	face   font.Face
	logger *zap.Logger
}

// NewRenderer resolves the label font and fills option defaults.
func NewRenderer(opts Options, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = 2
	}
	if len(opts.Palette) == 0 {
		opts.Palette = DefaultPalette
	}
	if opts.Padding < 0 {
		opts.Padding = 0
	}
	return &Renderer{
		opts:   opts,
		face:   LoadFace(opts.FontPaths, opts.FontSize, logger),
		logger: logger,
	}
}

// Face returns the resolved label font.
func (r *Renderer) Face() font.Face { return r.face }

// Annotate draws elements[i] with number i+1. Boxes that miss the screenshot
// entirely are skipped; partially visible ones are clipped. A screenshot that
// cannot be decoded or re-encoded is returned as-is with Annotated=false.
func (r *Renderer) Annotate(screenshot []byte, elements []model.ElementNode, win model.Window) (*AnnotatedImage, error) {
	if len(screenshot) == 0 {
		return nil, ErrEmptyScreenshot
	}
	plain := &AnnotatedImage{PNG: screenshot}

	src, err := imaging.Decode(bytes.NewReader(screenshot))
	if err != nil {
		r.logger.Warn("screenshot decode failed, returning plain image", zap.Error(err))
		return plain, nil
	}
	plain.Width, plain.Height = src.Bounds().Dx(), src.Bounds().Dy()

	scale := r.captureScale(src, win)
	if rs := r.opts.RenderScale; rs > 0 && math.Abs(rs-scale) > 1e-9 {
		w := int(math.Round(float64(src.Bounds().Dx()) * rs / scale))
		if w > 0 {
			src = imaging.Resize(src, w, 0, imaging.Lanczos)
			scale = rs
		}
	}

	pad := r.opts.Padding
	var canvas *image.NRGBA
	if pad > 0 {
		b := src.Bounds()
		bg := imaging.New(b.Dx()+2*pad, b.Dy()+2*pad, color.White)
		canvas = imaging.Paste(bg, src, image.Pt(pad, pad))
	} else {
		canvas = imaging.Clone(src)
	}
	content := image.Rect(pad, pad, canvas.Bounds().Dx()-pad, canvas.Bounds().Dy()-pad)

	labels := make([]Label, 0, len(elements))
	for i, el := range elements {
		box := el.Box.Scale(scale).Translate(pad, pad)
		rect := image.Rect(box.X1, box.Y1, box.X2, box.Y2)
		if !rect.Overlaps(content) {
			r.logger.Debug("element outside screenshot",
				zap.Int("number", i+1), zap.Int("id", el.ID), zap.Stringer("box", box))
			continue
		}
		c := r.opts.Palette[i%len(r.opts.Palette)]
		drawRectangle(canvas, rect, r.opts.LineWidth, c)
		r.drawLabel(canvas, rect, strconv.Itoa(i+1), c)

		clip := rect.Intersect(canvas.Bounds())
		labels = append(labels, Label{
			Number:    i + 1,
			ElementID: el.ID,
			Box:       model.BoundingBox{X1: clip.Min.X, Y1: clip.Min.Y, X2: clip.Max.X, Y2: clip.Max.Y},
		})
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		r.logger.Warn("annotated screenshot encode failed, returning plain image", zap.Error(err))
		return plain, nil
	}
	return &AnnotatedImage{
		PNG:       buf.Bytes(),
		Width:     canvas.Bounds().Dx(),
		Height:    canvas.Bounds().Dy(),
		Annotated: true,
		Labels:    labels,
	}, nil
}

func (r *Renderer) captureScale(img image.Image, win model.Window) float64 {
	if r.opts.CaptureScale > 0 {
		return r.opts.CaptureScale
	}
	if win.Width > 0 {
		return float64(img.Bounds().Dx()) / float64(win.Width)
	}
	return 1
}

// drawLabel places the number just above the box's top-right corner. If that
// leaves the image it moves inside the box; it is always clamped to the image.
func (r *Renderer) drawLabel(img *image.NRGBA, box image.Rectangle, text string, bg color.Color) {
	tw, th, ascent := textSize(r.face, text)
	w, h := tw+4, th+2
	bounds := img.Bounds()

	x := box.Max.X - w
	y := box.Min.Y - h
	if y < bounds.Min.Y {
		y = box.Min.Y
	}
	x = clamp(x, bounds.Min.X, bounds.Max.X-w)
	y = clamp(y, bounds.Min.Y, bounds.Max.Y-h)

	fillRect(img, image.Rect(x, y, x+w, y+h), bg)
	drawText(img, r.face, text, x+2, y+1+ascent, color.White)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// String implements fmt.Stringer for log output.
func (a *AnnotatedImage) String() string {
	return fmt.Sprintf("%dx%d png, %d labels", a.Width, a.Height, len(a.Labels))
}
