// Package adapter turns platform-native hierarchy dumps into a flat list of
// raw nodes in document order. Each platform lives in its own subpackage and
// registers itself from init(); import internal/adapter/all to get all four.
package adapter

import (
	"fmt"
	"sync"

	"github.com/mj1618/uistate/internal/model"
)

// RawNode is the uniform view of one platform node. Nodes are transient:
// created per snapshot and discarded once normalized.
type RawNode interface {
	Name() string
	Label() string
	TypeName() string
	// Box returns the absolute bounding box, or false when the node's
	// geometry could not be parsed.
	Box() (model.BoundingBox, bool)
	Enabled() bool
	Visible() bool
	// Attr returns a raw attribute value, or "" if absent.
	Attr(key string) string
}

// Adapter parses one platform's dump format.
type Adapter interface {
	Platform() model.Platform
	// Parse returns nodes in traversal order. Malformed nodes are skipped;
	// an error means the dump as a whole could not be read.
	Parse(dump []byte, win model.Window) ([]RawNode, error)
}

var (
	mu       sync.RWMutex
	adapters = make(map[model.Platform]Adapter)
)

// Register makes an adapter available through For. It is called from the
// platform subpackages' init functions.
func Register(a Adapter) {
	mu.Lock()
	defer mu.Unlock()
	adapters[a.Platform()] = a
}

// For returns the adapter registered for p.
func For(p model.Platform) (Adapter, error) {
	mu.RLock()
	defer mu.RUnlock()
	a, ok := adapters[p]
	if !ok {
		return nil, fmt.Errorf("no hierarchy adapter registered for %q", p)
	}
	return a, nil
}
