package model

import "testing"

func TestFilterByText(t *testing.T) {
	elements := []ElementNode{
		{ID: 0, Name: "Submit", Type: "button"},
		{ID: 1, Name: "Search", Label: "Search the web", Type: "input"},
		{ID: 2, Label: "close dialog", Type: "XCUIElementTypeButton"},
	}

	tests := []struct {
		text string
		ids  []int
	}{
		{"", []int{0, 1, 2}},
		{"sub", []int{0}},
		{"WEB", []int{1}},
		{"close", []int{2}},
		{"button", []int{0, 2}},
		{"nothing", nil},
	}
	for _, tt := range tests {
		got := FilterByText(elements, tt.text)
		if len(got) != len(tt.ids) {
			t.Errorf("FilterByText(%q) returned %d elements, want %d", tt.text, len(got), len(tt.ids))
			continue
		}
		for i, el := range got {
			if el.ID != tt.ids[i] {
				t.Errorf("FilterByText(%q)[%d].ID = %d, want %d", tt.text, i, el.ID, tt.ids[i])
			}
		}
	}
}

func TestFilterByRegion(t *testing.T) {
	elements := []ElementNode{
		{ID: 0, Box: BoundingBox{0, 0, 10, 10}},
		{ID: 1, Box: BoundingBox{100, 100, 200, 200}},
	}
	got := FilterByRegion(elements, BoundingBox{5, 5, 50, 50})
	if len(got) != 1 || got[0].ID != 0 {
		t.Errorf("FilterByRegion = %+v", got)
	}
}
