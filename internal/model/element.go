package model

// ElementNode is one UI element of a snapshot, normalized across platforms.
type ElementNode struct {
	ID          int               `yaml:"id"                   json:"id"`                   // Index in TreeState.Elements
	Name        string            `yaml:"name,omitempty"       json:"name,omitempty"`       // Best available label
	Label       string            `yaml:"label,omitempty"      json:"label,omitempty"`      // Accessibility label, if distinct
	Type        string            `yaml:"type"                 json:"type"`                 // Platform class / type / tag
	Box         BoundingBox       `yaml:"box"                  json:"box"`                  // Absolute pixels
	Center      Point             `yaml:"center"               json:"center"`               // Derived from Box
	Interactive bool              `yaml:"interactive,omitempty" json:"interactive,omitempty"`
	Attributes  map[string]string `yaml:"attrs,omitempty"      json:"attrs,omitempty"`
}
