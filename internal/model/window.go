package model

// Window describes the device screen or browser viewport a snapshot was taken from.
type Window struct {
	Width       int     `yaml:"width"                 json:"width"`
	Height      int     `yaml:"height"                json:"height"`
	Orientation string  `yaml:"orientation,omitempty" json:"orientation,omitempty"`
	Scale       float64 `yaml:"scale,omitempty"       json:"scale,omitempty"` // Device pixel ratio, 0 if unknown
}

// Known reports whether both dimensions are set.
func (w Window) Known() bool {
	return w.Width > 0 && w.Height > 0
}
