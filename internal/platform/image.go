package platform

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// ScaleImage resizes encoded image bytes by scale and re-encodes them as PNG.
// A scale of 0 or 1 returns data unchanged.
func ScaleImage(data []byte, scale float64) ([]byte, error) {
	if scale <= 0 || scale == 1 {
		return data, nil
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	w := int(math.Round(float64(img.Bounds().Dx()) * scale))
	if w < 1 {
		w = 1
	}
	resized := imaging.Resize(img, w, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode screenshot: %w", err)
	}
	return buf.Bytes(), nil
}

// ImageSize returns the pixel dimensions of encoded image bytes without
// decoding the pixel data.
func ImageSize(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("read image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
