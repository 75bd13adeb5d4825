// Package ios reads WebDriverAgent JSON page sources.
package ios

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mj1618/uistate/internal/adapter"
	"github.com/mj1618/uistate/internal/model"
)

func init() {
	adapter.Register(Adapter{})
}

// flexBool accepts JSON booleans, 0/1 numbers and their string forms.
type flexBool struct {
	set, val bool
}

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		*b = flexBool{set: true, val: true}
	case "false", "0", "no":
		*b = flexBool{set: true, val: false}
	}
	return nil
}

func pick(def bool, flags ...flexBool) bool {
	for _, f := range flags {
		if f.set {
			return f.val
		}
	}
	return def
}

var frameStringRe = regexp.MustCompile(`\{\{\s*(-?[\d.]+),\s*(-?[\d.]+)\s*\},\s*\{\s*(-?[\d.]+),\s*(-?[\d.]+)\s*\}\}`)

// parseFrame accepts both {"x":..,"y":..,"width":..,"height":..} objects and
// the "{{x, y}, {w, h}}" string form.
func parseFrame(raw json.RawMessage) (model.Frame, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return model.Frame{}, false
	}
	if raw[0] == '{' {
		var f model.Frame
		if err := json.Unmarshal(raw, &f); err != nil {
			return model.Frame{}, false
		}
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return model.Frame{}, false
	}
	m := frameStringRe.FindStringSubmatch(s)
	if m == nil {
		return model.Frame{}, false
	}
	var v [4]float64
	for i := range v {
		f, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return model.Frame{}, false
		}
		v[i] = f
	}
	return model.Frame{X: v[0], Y: v[1], W: v[2], H: v[3]}, true
}

type jsonNode struct {
	Type       string          `json:"type"`
	Name       string          `json:"name"`
	Label      string          `json:"label"`
	Identifier string          `json:"identifier"`
	RawFrame   json.RawMessage `json:"frame"`
	RawRect    json.RawMessage `json:"rect"`
	Enabled    flexBool        `json:"enabled"`
	IsEnabled  flexBool        `json:"isEnabled"`
	Visible    flexBool        `json:"visible"`
	IsVisible  flexBool        `json:"isVisible"`
	Children   []jsonNode      `json:"children"`
}

func (j *jsonNode) frame() (model.Frame, bool) {
	if f, ok := parseFrame(j.RawFrame); ok {
		return f, true
	}
	return parseFrame(j.RawRect)
}

// Node is one element of the source tree with its frame already made absolute.
type Node struct {
	typ, name, label, identifier string
	enabled, visible             bool
	abs                          model.Frame
}

func (n *Node) Name() string {
	switch {
	case n.name != "":
		return n.name
	case n.label != "":
		return n.label
	default:
		return n.identifier
	}
}

func (n *Node) Label() string                  { return n.label }
func (n *Node) TypeName() string               { return n.typ }
func (n *Node) Enabled() bool                  { return n.enabled }
func (n *Node) Visible() bool                  { return n.visible }
func (n *Node) Box() (model.BoundingBox, bool) { return n.abs.Box(), true }

// Frame returns the absolute frame before truncation to pixels.
func (n *Node) Frame() model.Frame { return n.abs }

func (n *Node) Attr(key string) string {
	switch key {
	case "identifier", "id":
		return n.identifier
	case "name":
		return n.name
	case "label":
		return n.label
	case "type":
		return n.typ
	}
	return ""
}

// Adapter parses WebDriverAgent sources.
type Adapter struct{}

func (Adapter) Platform() model.Platform { return model.IOS }

// Parse accepts a bare root node or a {"value": root} envelope.
func (Adapter) Parse(dump []byte, _ model.Window) ([]adapter.RawNode, error) {
	var env struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(dump, &env); err != nil {
		return nil, fmt.Errorf("parse wda source: %w", err)
	}
	body := dump
	if v := bytes.TrimSpace(env.Value); env.Type == "" && len(v) > 0 && v[0] == '{' {
		body = v
	}
	var root jsonNode
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("parse wda source: %w", err)
	}
	var out []adapter.RawNode
	walk(&root, model.Frame{}, &out)
	return out, nil
}

// walk emits nodes in pre-order. Child frames are relative to the parent's
// absolute origin; a node without a frame passes its parent's frame through.
func walk(j *jsonNode, parent model.Frame, out *[]adapter.RawNode) {
	abs := parent
	if rel, ok := j.frame(); ok {
		abs = rel.Offset(parent)
		*out = append(*out, &Node{
			typ:        j.Type,
			name:       j.Name,
			label:      j.Label,
			identifier: j.Identifier,
			enabled:    pick(true, j.Enabled, j.IsEnabled),
			visible:    pick(true, j.Visible, j.IsVisible),
			abs:        abs,
		})
	}
	for i := range j.Children {
		walk(&j.Children[i], abs, out)
	}
}
