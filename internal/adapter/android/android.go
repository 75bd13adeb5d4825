// Package android reads uiautomator XML hierarchy dumps.
package android

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"

	"github.com/mj1618/uistate/internal/adapter"
	"github.com/mj1618/uistate/internal/classify"
	"github.com/mj1618/uistate/internal/model"
)

func init() {
	adapter.Register(Adapter{})
}

var boundsRe = regexp.MustCompile(`\[(-?\d+),(-?\d+)\]\[(-?\d+),(-?\d+)\]`)

// ParseBounds parses a uiautomator bounds string such as "[0,0][1080,210]".
func ParseBounds(s string) (model.BoundingBox, bool) {
	m := boundsRe.FindStringSubmatch(s)
	if m == nil {
		return model.BoundingBox{}, false
	}
	var v [4]int
	for i := range v {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return model.BoundingBox{}, false
		}
		v[i] = n
	}
	return model.BoxFromCorners(v[0], v[1], v[2], v[3]), true
}

type xmlNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []xmlNode  `xml:"node"`
}

// Node is one <node> element of a dump.
type Node struct {
	attrs map[string]string
}

func newNode(x *xmlNode) *Node {
	attrs := make(map[string]string, len(x.Attrs))
	for _, a := range x.Attrs {
		attrs[a.Name.Local] = a.Value
	}
	return &Node{attrs: attrs}
}

func (n *Node) Name() string {
	if t := n.attrs["text"]; t != "" {
		return t
	}
	return n.attrs["content-desc"]
}

func (n *Node) Label() string    { return n.attrs["content-desc"] }
func (n *Node) TypeName() string { return n.attrs["class"] }
func (n *Node) Enabled() bool    { return n.attrs["enabled"] == "true" }

// Visible treats a missing visible-to-user attribute as visible. The stock
// `uiautomator dump` on API 18 through 23 writes only the classic attribute
// set (index, text, class, content-desc, checkable ... bounds) and never emits
// visible-to-user; an explicit "false" still hides the node.
func (n *Node) Visible() bool {
	v, ok := n.attrs["visible-to-user"]
	return !ok || v == "true"
}

func (n *Node) Box() (model.BoundingBox, bool) { return ParseBounds(n.attrs["bounds"]) }
func (n *Node) Attr(key string) string         { return n.attrs[key] }

// candidate reports whether the node is worth listing at all.
func (n *Node) candidate() bool {
	if !n.Visible() || !n.Enabled() {
		return false
	}
	return n.attrs["text"] != "" || n.attrs["content-desc"] != "" || classify.AndroidClasses[n.TypeName()]
}

// Adapter parses uiautomator dumps.
type Adapter struct{}

func (Adapter) Platform() model.Platform { return model.Android }

// Parse walks the dump in pre-order. Anything after the closing root tag,
// such as the "UI hierchary dumped to" trailer, is ignored.
func (Adapter) Parse(dump []byte, _ model.Window) ([]adapter.RawNode, error) {
	var root xmlNode
	if err := xml.NewDecoder(bytes.NewReader(dump)).Decode(&root); err != nil {
		return nil, fmt.Errorf("parse uiautomator xml: %w", err)
	}
	var out []adapter.RawNode
	if root.XMLName.Local == "node" {
		walk(&root, &out)
	} else {
		for i := range root.Nodes {
			walk(&root.Nodes[i], &out)
		}
	}
	return out, nil
}

func walk(x *xmlNode, out *[]adapter.RawNode) {
	n := newNode(x)
	if n.candidate() {
		*out = append(*out, n)
	}
	for i := range x.Nodes {
		walk(&x.Nodes[i], out)
	}
}
