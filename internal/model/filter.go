package model

import "strings"

// FilterByText returns the elements whose name, label, or type contains the
// given text (case-insensitive). Matches keep their IDs, so callers can still
// look up their overlay number.
func FilterByText(elements []ElementNode, text string) []ElementNode {
	if text == "" {
		return elements
	}
	textLower := strings.ToLower(text)
	var result []ElementNode
	for _, el := range elements {
		if textMatchesElement(el, textLower) {
			result = append(result, el)
		}
	}
	return result
}

func textMatchesElement(el ElementNode, textLower string) bool {
	return strings.Contains(strings.ToLower(el.Name), textLower) ||
		strings.Contains(strings.ToLower(el.Label), textLower) ||
		strings.Contains(strings.ToLower(el.Type), textLower)
}

// FilterByRegion returns the elements whose box overlaps region.
func FilterByRegion(elements []ElementNode, region BoundingBox) []ElementNode {
	var result []ElementNode
	for _, el := range elements {
		if el.Box.Intersects(region) {
			result = append(result, el)
		}
	}
	return result
}
