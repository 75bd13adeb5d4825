// Package chrome reads DOM snapshots captured from a page script.
package chrome

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mj1618/uistate/internal/adapter"
	"github.com/mj1618/uistate/internal/model"
)

func init() {
	adapter.Register(Adapter{})
}

// Attributes lists the attributes kept from each DOM element.
var Attributes = []string{
	"id", "class", "name", "type", "href", "src", "alt", "title", "placeholder",
	"role", "onclick", "aria-label",
}

var keep = func() map[string]bool {
	m := make(map[string]bool, len(Attributes))
	for _, a := range Attributes {
		m[a] = true
	}
	return m
}()

// Record is one element as emitted by the snapshot script, in document order.
type Record struct {
	Tag        string            `json:"tag"`
	Text       string            `json:"text"`
	Attributes map[string]string `json:"attributes"`
	Rect       *model.Frame      `json:"rect"`
	Visible    *bool             `json:"visible,omitempty"`
	Enabled    *bool             `json:"enabled,omitempty"`
}

// Node wraps a Record with its attributes filtered to the allowlist.
type Node struct {
	tag, text        string
	attrs            map[string]string
	box              model.BoundingBox
	enabled, visible bool
}

func (n *Node) Name() string { return n.text }

func (n *Node) Label() string {
	for _, k := range []string{"aria-label", "title", "placeholder", "alt", "name"} {
		if v := n.attrs[k]; v != "" {
			return v
		}
	}
	return ""
}

func (n *Node) TypeName() string               { return n.tag }
func (n *Node) Enabled() bool                  { return n.enabled }
func (n *Node) Visible() bool                  { return n.visible }
func (n *Node) Box() (model.BoundingBox, bool) { return n.box, true }
func (n *Node) Attr(key string) string         { return n.attrs[key] }

// Attrs returns the filtered attribute map.
func (n *Node) Attrs() map[string]string { return n.attrs }

// Adapter parses DOM snapshot arrays.
type Adapter struct{}

func (Adapter) Platform() model.Platform { return model.Chrome }

func (Adapter) Parse(dump []byte, _ model.Window) ([]adapter.RawNode, error) {
	var records []Record
	if err := json.Unmarshal(dump, &records); err != nil {
		return nil, fmt.Errorf("parse dom snapshot: %w", err)
	}
	out := make([]adapter.RawNode, 0, len(records))
	for _, r := range records {
		if r.Rect == nil || r.Tag == "" {
			continue
		}
		attrs := make(map[string]string)
		for k, v := range r.Attributes {
			k = strings.ToLower(k)
			if keep[k] && v != "" {
				attrs[k] = v
			}
		}
		out = append(out, &Node{
			tag:     strings.ToLower(r.Tag),
			text:    strings.Join(strings.Fields(r.Text), " "),
			attrs:   attrs,
			box:     r.Rect.Box(),
			enabled: r.Enabled == nil || *r.Enabled,
			visible: r.Visible == nil || *r.Visible,
		})
	}
	return out, nil
}
