// Package state turns raw dumps into numbered snapshots and runs the
// get-state flow against a driver.
package state

import (
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/uistate/internal/adapter"
	_ "github.com/mj1618/uistate/internal/adapter/all"
	"github.com/mj1618/uistate/internal/classify"
	"github.com/mj1618/uistate/internal/model"
)

// Builder runs adapter, normalizer and classifier over one dump.
type Builder struct {
	platform   model.Platform
	adapter    adapter.Adapter
	classifier classify.Classifier
	logger     *zap.Logger
}

// NewBuilder returns a builder for p with the given minimum interactive size.
func NewBuilder(p model.Platform, minSize int, logger *zap.Logger) (*Builder, error) {
	a, err := adapter.For(p)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		platform:   p,
		adapter:    a,
		classifier: classify.For(p, classify.Thresholds{MinSize: minSize}),
		logger:     logger.With(zap.String("platform", string(p))),
	}, nil
}

// Platform returns the builder's platform.
func (b *Builder) Platform() model.Platform { return b.platform }

// Build parses dump into a TreeState. Elements keep traversal order and are
// never re-sorted. An unreadable dump yields an empty state; nodes without
// usable geometry are skipped.
func (b *Builder) Build(dump []byte, win model.Window, now time.Time) model.TreeState {
	nodes, err := b.adapter.Parse(dump, win)
	if err != nil {
		b.logger.Warn("hierarchy dump unreadable, returning empty state", zap.Error(err))
		return model.NewTreeState(b.platform, nil, win, now)
	}

	elements := make([]model.ElementNode, 0, len(nodes))
	skipped := 0
	for _, n := range nodes {
		box, ok := n.Box()
		if !ok {
			skipped++
			b.logger.Debug("skipping node without geometry",
				zap.String("type", n.TypeName()), zap.String("name", n.Name()))
			continue
		}
		elements = append(elements, model.ElementNode{
			Name:        n.Name(),
			Label:       n.Label(),
			Type:        n.TypeName(),
			Box:         box,
			Interactive: b.classifier.Interactive(n, box),
			Attributes:  attributes(n),
		})
	}

	ts := model.NewTreeState(b.platform, elements, win, now)
	b.logger.Debug("tree built",
		zap.Int("nodes", len(nodes)),
		zap.Int("elements", len(ts.Elements)),
		zap.Int("interactive", len(ts.InteractiveElements)),
		zap.Int("skipped", skipped))
	return ts
}

// attrKeys are copied into ElementNode.Attributes when present.
var attrKeys = []string{
	"id", "resource-id", "identifier", "class", "href", "type", "role",
	"placeholder", "location", "app", "package", "checkable", "checked",
}

func attributes(n adapter.RawNode) map[string]string {
	var m map[string]string
	for _, k := range attrKeys {
		if v := n.Attr(k); v != "" {
			if m == nil {
				m = make(map[string]string)
			}
			m[k] = v
		}
	}
	return m
}
