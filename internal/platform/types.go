package platform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mj1618/uistate/internal/model"
)

// ParseBBox parses a "x,y,w,h" string into a bounding box.
func ParseBBox(s string) (model.BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return model.BoundingBox{}, fmt.Errorf("invalid bbox %q: expected x,y,w,h", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return model.BoundingBox{}, fmt.Errorf("invalid bbox %q: %w", s, err)
		}
		vals[i] = v
	}
	if vals[2] < 0 || vals[3] < 0 {
		return model.BoundingBox{}, fmt.Errorf("invalid bbox %q: negative size", s)
	}
	return model.BoundingBox{X1: vals[0], Y1: vals[1], X2: vals[0] + vals[2], Y2: vals[1] + vals[3]}, nil
}

var sizeRe = regexp.MustCompile(`^\s*(\d+)\s*[xX,]\s*(\d+)\s*$`)

// ParseWindowSize parses "WxH" (or "W,H").
func ParseWindowSize(s string) (width, height int, err error) {
	m := sizeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid window size %q: expected WIDTHxHEIGHT", s)
	}
	width, _ = strconv.Atoi(m[1])
	height, _ = strconv.Atoi(m[2])
	if width == 0 || height == 0 {
		return 0, 0, fmt.Errorf("invalid window size %q: dimensions must be positive", s)
	}
	return width, height, nil
}

// OrientationFor derives PORTRAIT or LANDSCAPE from dimensions.
func OrientationFor(width, height int) string {
	if width > height {
		return "LANDSCAPE"
	}
	return "PORTRAIT"
}
