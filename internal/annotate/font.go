package annotate

import (
	"os"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// LoadFace returns a face for the first path that parses as a TrueType or
// OpenType font, or basicfont.Face7x13 when none does. It never fails.
func LoadFace(paths []string, size float64, logger *zap.Logger) font.Face {
	if logger == nil {
		logger = zap.NewNop()
	}
	if size <= 0 {
		size = 14
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			logger.Debug("font parse failed", zap.String("path", p), zap.Error(err))
			continue
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			logger.Debug("font face failed", zap.String("path", p), zap.Error(err))
			continue
		}
		logger.Debug("label font loaded", zap.String("path", p), zap.Float64("size", size))
		return face
	}
	logger.Debug("no label font found, using basicfont")
	return basicfont.Face7x13
}
