// Package classify decides which normalized nodes a user can act on.
package classify

import (
	"strings"

	"github.com/mj1618/uistate/internal/adapter"
	"github.com/mj1618/uistate/internal/model"
)

// Classifier is a pure predicate over a node and its normalized box.
type Classifier interface {
	Interactive(n adapter.RawNode, box model.BoundingBox) bool
}

// Thresholds holds the per-platform minimum interactive size in pixels.
type Thresholds struct {
	MinSize int
}

// DefaultMinSize returns the minimum interactive width and height for p.
func DefaultMinSize(p model.Platform) int {
	switch p {
	case model.Android, model.Chrome:
		return 5
	case model.IOS:
		return 10
	default:
		return 1
	}
}

// Func adapts a type predicate into a Classifier sharing the common
// enabled, visible and size checks.
type Func struct {
	MinSize int
	Accept  func(n adapter.RawNode) bool
}

// Interactive implements Classifier.
func (f Func) Interactive(n adapter.RawNode, box model.BoundingBox) bool {
	if !n.Enabled() || !n.Visible() {
		return false
	}
	if box.Empty() || box.Width() < f.MinSize || box.Height() < f.MinSize {
		return false
	}
	return f.Accept == nil || f.Accept(n)
}

// For returns the classifier for p. A zero MinSize is kept as-is: zero-sized
// boxes are rejected regardless.
func For(p model.Platform, t Thresholds) Classifier {
	switch p {
	case model.Android:
		return Func{MinSize: t.MinSize, Accept: android}
	case model.IOS:
		return Func{MinSize: t.MinSize, Accept: ios}
	case model.Chrome:
		return Func{MinSize: t.MinSize, Accept: chrome}
	default:
		return Func{MinSize: t.MinSize}
	}
}

func android(n adapter.RawNode) bool {
	return AndroidClasses[n.TypeName()]
}

func ios(n adapter.RawNode) bool {
	return IOSTypes[n.TypeName()]
}

func chrome(n adapter.RawNode) bool {
	tag := strings.ToLower(n.TypeName())
	if tag == "input" {
		typ := strings.ToLower(n.Attr("type"))
		if typ == "" {
			typ = "text"
		}
		if ChromeInputTypes[typ] {
			return true
		}
	} else if ChromeTags[tag] {
		return true
	}
	if n.Attr("onclick") != "" {
		return true
	}
	return ChromeRoles[strings.ToLower(n.Attr("role"))]
}
