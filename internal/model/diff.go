package model

import (
	"crypto/sha256"
	"fmt"
)

// ChangeType represents the kind of UI change detected.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeMoved   ChangeType = "moved"
)

// Change is one difference between two snapshots.
type Change struct {
	Type    ChangeType   `yaml:"type"          json:"type"`
	Element ElementNode  `yaml:"el"            json:"el"`
	Prev    *BoundingBox `yaml:"prev,omitempty" json:"prev,omitempty"` // For moved: the old box
}

// ElementHash computes an identity hash from an element's semantic content.
// IDs are excluded because they shift whenever an earlier element appears or
// disappears.
func ElementHash(el ElementNode) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s", el.Type, el.Name, el.Label, el.Attributes["id"])
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// DiffStates compares two snapshots by content hash. Elements sharing a hash
// are paired in order of appearance, so repeated identical rows still match.
func DiffStates(prev, curr TreeState) []Change {
	prevByHash := make(map[string][]ElementNode, len(prev.Elements))
	for _, el := range prev.Elements {
		h := ElementHash(el)
		prevByHash[h] = append(prevByHash[h], el)
	}

	var changes []Change
	matched := make(map[string]int, len(prevByHash))
	for _, el := range curr.Elements {
		h := ElementHash(el)
		candidates := prevByHash[h]
		n := matched[h]
		if n >= len(candidates) {
			changes = append(changes, Change{Type: ChangeAdded, Element: el})
			continue
		}
		matched[h] = n + 1
		old := candidates[n]
		if old.Box != el.Box {
			box := old.Box
			changes = append(changes, Change{Type: ChangeMoved, Element: el, Prev: &box})
		}
	}

	seen := make(map[string]int, len(prevByHash))
	for _, el := range prev.Elements {
		h := ElementHash(el)
		seen[h]++
		if seen[h] > matched[h] {
			changes = append(changes, Change{Type: ChangeRemoved, Element: el})
		}
	}
	return changes
}
