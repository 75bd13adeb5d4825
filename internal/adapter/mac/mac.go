// Package mac synthesizes desktop nodes from AppleScript query output.
//
// AppleScript exposes names but no usable geometry for the desktop, the Dock
// and the menu bar, so boxes are laid out on fixed grids.
package mac

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/uistate/internal/adapter"
	"github.com/mj1618/uistate/internal/model"
)

func init() {
	adapter.Register(Adapter{})
}

// Dump is the raw output of the four queries. List values are AppleScript
// lists as printed by osascript: items joined with ", ".
type Dump struct {
	FrontApp string `json:"front_app"`
	Desktop  string `json:"desktop"`
	Dock     string `json:"dock"`
	MenuBar  string `json:"menu_bar"`
	Window   string `json:"window"`
}

const (
	missingValue = "missing value"
	dockHeight   = 64
	// fallbackDockY is used when the screen height is unknown.
	fallbackDockY = 900
)

// Node is a synthesized element.
type Node struct {
	kind, text string
	attrs      map[string]string
	box        model.BoundingBox
}

func (n *Node) Name() string                   { return n.text }
func (n *Node) Label() string                  { return "" }
func (n *Node) TypeName() string               { return n.kind }
func (n *Node) Enabled() bool                  { return true }
func (n *Node) Visible() bool                  { return true }
func (n *Node) Box() (model.BoundingBox, bool) { return n.box, true }
func (n *Node) Attr(key string) string         { return n.attrs[key] }

// Adapter parses mac dumps.
type Adapter struct{}

func (Adapter) Platform() model.Platform { return model.Mac }

func (Adapter) Parse(dump []byte, win model.Window) ([]adapter.RawNode, error) {
	var d Dump
	if err := json.Unmarshal(dump, &d); err != nil {
		return nil, fmt.Errorf("parse mac dump: %w", err)
	}
	app := strings.TrimSpace(d.FrontApp)

	var out []adapter.RawNode
	for i, name := range splitList(d.Desktop) {
		if name == "" {
			continue
		}
		out = append(out, &Node{
			kind:  "file",
			text:  name,
			attrs: map[string]string{"id": "desktop_item_" + strconv.Itoa(i), "location": "desktop"},
			box:   model.BoxFromRect(float64(50+(i%10)*80), float64(50+(i/10)*80), 64, 64),
		})
	}

	dockY := fallbackDockY
	if win.Height > 0 {
		dockY = win.Height - dockHeight
	}
	for i, name := range splitList(d.Dock) {
		if name == "" {
			continue
		}
		out = append(out, &Node{
			kind:  "application",
			text:  name,
			attrs: map[string]string{"id": "dock_item_" + strconv.Itoa(i), "location": "dock"},
			box:   model.BoxFromRect(float64(100+i*60), float64(dockY), 56, 56),
		})
	}

	for i, name := range splitList(d.MenuBar) {
		if name == "" {
			continue
		}
		out = append(out, &Node{
			kind:  "menu",
			text:  name,
			attrs: map[string]string{"id": "menu_item_" + strconv.Itoa(i), "location": "menu_bar", "app": app},
			box:   model.BoxFromRect(float64(50+i*80), 0, 75, 22),
		})
	}

	if w := strings.TrimSpace(d.Window); app != "" && w != "" && w != missingValue {
		out = append(out, &Node{
			kind:  "window",
			text:  app + " Window",
			attrs: map[string]string{"id": "focused_window", "app": app},
			box:   model.BoxFromRect(100, 100, 800, 600),
		})
	}
	return out, nil
}

// splitList splits an osascript list. Blank entries and "missing value" come
// back as "" so that positions are preserved.
func splitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ", ")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == missingValue {
			p = ""
		}
		parts[i] = p
	}
	return parts
}
