package annotate

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"

	"github.com/mj1618/uistate/internal/model"
)

func solidPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func el(id int, x1, y1, x2, y2 int) model.ElementNode {
	return model.ElementNode{ID: id, Type: "button", Interactive: true, Box: model.BoundingBox{X1: x1, Y1: y1, X2: x2, Y2: y2}}
}

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func sameColor(a, b color.Color) bool {
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

func TestAnnotateLabelsMatchInBoundsElements(t *testing.T) {
	r := NewRenderer(Options{}, nil)
	shot := solidPNG(t, 200, 100)
	elements := []model.ElementNode{
		el(0, 10, 10, 60, 60),
		el(3, 500, 500, 600, 600), // off-screen
		el(7, 180, 80, 260, 160),  // partially visible
	}

	out, err := r.Annotate(shot, elements, model.Window{Width: 200, Height: 100})
	require.NoError(t, err)
	require.True(t, out.Annotated)
	assert.Equal(t, 200, out.Width)
	assert.Equal(t, 100, out.Height)

	require.Len(t, out.Labels, 2)
	assert.Equal(t, Label{Number: 1, ElementID: 0, Box: model.BoundingBox{X1: 10, Y1: 10, X2: 60, Y2: 60}}, out.Labels[0])
	assert.Equal(t, 3, out.Labels[1].Number, "numbers follow list position, not drawn count")
	assert.Equal(t, 7, out.Labels[1].ElementID)
	assert.Equal(t, model.BoundingBox{X1: 180, Y1: 80, X2: 200, Y2: 100}, out.Labels[1].Box)

	img := decode(t, out.PNG)
	assert.True(t, sameColor(img.At(10, 35), DefaultPalette[0]), "left edge of box 1 uses palette[0]")
	assert.True(t, sameColor(img.At(180, 95), DefaultPalette[2]), "left edge of box 3 uses palette[2]")
	assert.True(t, sameColor(img.At(100, 5), color.RGBA{R: 200, G: 200, B: 200, A: 255}), "background untouched")
}

func TestAnnotateNoElements(t *testing.T) {
	r := NewRenderer(Options{}, nil)
	out, err := r.Annotate(solidPNG(t, 20, 20), nil, model.Window{})
	require.NoError(t, err)
	assert.True(t, out.Annotated)
	assert.Empty(t, out.Labels)
}

func TestAnnotateGarbageFallsBack(t *testing.T) {
	r := NewRenderer(Options{}, nil)
	garbage := []byte("definitely not an image")
	out, err := r.Annotate(garbage, []model.ElementNode{el(0, 0, 0, 10, 10)}, model.Window{})
	require.NoError(t, err)
	assert.False(t, out.Annotated)
	assert.Equal(t, garbage, out.PNG)
	assert.Empty(t, out.Labels)

	_, err = r.Annotate(nil, nil, model.Window{})
	assert.ErrorIs(t, err, ErrEmptyScreenshot)
}

func TestAnnotatePaddingAndCaptureScale(t *testing.T) {
	// 2x screenshot of a 100x50 window.
	r := NewRenderer(Options{Padding: 15}, nil)
	out, err := r.Annotate(solidPNG(t, 200, 100), []model.ElementNode{el(0, 10, 10, 20, 20)}, model.Window{Width: 100, Height: 50})
	require.NoError(t, err)
	assert.Equal(t, 230, out.Width)
	assert.Equal(t, 130, out.Height)
	require.Len(t, out.Labels, 1)
	assert.Equal(t, model.BoundingBox{X1: 35, Y1: 35, X2: 55, Y2: 55}, out.Labels[0].Box)

	img := decode(t, out.PNG)
	assert.True(t, sameColor(img.At(2, 2), color.White), "padding is white")
}

func TestAnnotateRenderScale(t *testing.T) {
	r := NewRenderer(Options{CaptureScale: 2, RenderScale: 1}, nil)
	out, err := r.Annotate(solidPNG(t, 200, 100), []model.ElementNode{el(0, 10, 10, 20, 20)}, model.Window{})
	require.NoError(t, err)
	assert.Equal(t, 100, out.Width)
	assert.Equal(t, 50, out.Height)
	assert.Equal(t, model.BoundingBox{X1: 10, Y1: 10, X2: 20, Y2: 20}, out.Labels[0].Box)
}

func TestAnnotateDoesNotMutateInput(t *testing.T) {
	r := NewRenderer(Options{}, nil)
	shot := solidPNG(t, 50, 50)
	orig := append([]byte(nil), shot...)
	_, err := r.Annotate(shot, []model.ElementNode{el(0, 5, 5, 45, 45)}, model.Window{})
	require.NoError(t, err)
	assert.Equal(t, orig, shot)
}

func TestLoadFaceFallback(t *testing.T) {
	face := LoadFace([]string{"/nonexistent/font.ttf"}, 12, nil)
	assert.Equal(t, basicfont.Face7x13, face)

	r := NewRenderer(Options{FontPaths: nil}, nil)
	assert.NotNil(t, r.Face())
}

func TestLabelClampedInsideImage(t *testing.T) {
	r := NewRenderer(Options{}, nil)
	// Box touching the top edge: the label cannot go above, so it sits inside.
	out, err := r.Annotate(solidPNG(t, 100, 100), []model.ElementNode{el(0, 0, 0, 100, 40)}, model.Window{})
	require.NoError(t, err)
	img := decode(t, out.PNG)
	// Label background occupies the top-right corner inside the box.
	assert.True(t, sameColor(img.At(90, 13), DefaultPalette[0]))
}

func TestAnnotateHugeBoxIsClipped(t *testing.T) {
	r := NewRenderer(Options{}, nil)
	elements := []model.ElementNode{
		el(0, 0, 0, 2_000_000_000, 50),
		el(1, -(1 << 40), -(1 << 40), 1<<40, 1<<40),
	}

	start := time.Now()
	out, err := r.Annotate(solidPNG(t, 100, 100), elements, model.Window{Width: 100, Height: 100})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)

	require.True(t, out.Annotated)
	require.Len(t, out.Labels, 2)
	assert.Equal(t, model.BoundingBox{X1: 0, Y1: 0, X2: 100, Y2: 50}, out.Labels[0].Box)
	assert.Equal(t, model.BoundingBox{X1: 0, Y1: 0, X2: 100, Y2: 100}, out.Labels[1].Box)

	img := decode(t, out.PNG)
	assert.True(t, sameColor(img.At(0, 25), DefaultPalette[0]), "left edge inside the image is drawn")
	assert.True(t, sameColor(img.At(50, 49), DefaultPalette[0]), "bottom edge inside the image is drawn")
	assert.True(t, sameColor(img.At(50, 75), color.RGBA{R: 200, G: 200, B: 200, A: 255}), "edges off the image are not drawn")
}

func TestDrawRectangleEdges(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	drawRectangle(img, image.Rect(2, 2, 12, 12), 2, color.Black)

	for _, p := range []image.Point{{X: 2, Y: 2}, {X: 11, Y: 11}, {X: 3, Y: 7}, {X: 10, Y: 7}, {X: 7, Y: 3}, {X: 7, Y: 10}} {
		assert.True(t, sameColor(img.At(p.X, p.Y), color.Black), "edge pixel %v", p)
	}
	for _, p := range []image.Point{{X: 4, Y: 4}, {X: 7, Y: 7}, {X: 1, Y: 1}, {X: 12, Y: 12}} {
		assert.False(t, sameColor(img.At(p.X, p.Y), color.Black), "non-edge pixel %v", p)
	}
}
