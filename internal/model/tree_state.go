package model

import "time"

// TreeState is one snapshot of a UI surface: every discovered element in
// document order plus the interactive subset in the same relative order.
//
// The position of an element in InteractiveElements (plus one) is the number
// drawn on the annotated screenshot and printed by the serializer.
type TreeState struct {
	Platform            Platform      `yaml:"platform"    json:"platform"`
	Elements            []ElementNode `yaml:"elements"    json:"elements"`
	InteractiveElements []ElementNode `yaml:"interactive" json:"interactive"`
	Window              Window        `yaml:"window"      json:"window"`
	Timestamp           time.Time     `yaml:"ts"          json:"ts"`
}

// NewTreeState builds a TreeState from elements already in traversal order.
// IDs are reassigned to element positions and centers recomputed from boxes.
func NewTreeState(p Platform, elements []ElementNode, win Window, ts time.Time) TreeState {
	all := make([]ElementNode, len(elements))
	for i, el := range elements {
		el.ID = i
		el.Center = el.Box.Center()
		all[i] = el
	}
	return TreeState{
		Platform:            p,
		Elements:            all,
		InteractiveElements: InteractiveSubset(all),
		Window:              win,
		Timestamp:           ts,
	}
}

// InteractiveSubset returns the interactive elements in their original order.
func InteractiveSubset(elements []ElementNode) []ElementNode {
	result := []ElementNode{}
	for _, el := range elements {
		if el.Interactive {
			result = append(result, el)
		}
	}
	return result
}

// InteractiveNumber returns the 1-based overlay number of the element with the
// given ID, or 0 when that element is not interactive.
func (s TreeState) InteractiveNumber(id int) int {
	for i, el := range s.InteractiveElements {
		if el.ID == id {
			return i + 1
		}
	}
	return 0
}

// ByNumber returns the interactive element drawn with the given 1-based number.
func (s TreeState) ByNumber(n int) (ElementNode, bool) {
	if n < 1 || n > len(s.InteractiveElements) {
		return ElementNode{}, false
	}
	return s.InteractiveElements[n-1], true
}
