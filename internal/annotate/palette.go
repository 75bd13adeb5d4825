package annotate

import "image/color"

// DefaultPalette is the outline colour cycle. Element i always gets
// DefaultPalette[i%len(DefaultPalette)].
var DefaultPalette = []color.NRGBA{
	{R: 230, G: 25, B: 75, A: 255},
	{R: 60, G: 180, B: 75, A: 255},
	{R: 0, G: 130, B: 200, A: 255},
	{R: 245, G: 130, B: 48, A: 255},
	{R: 145, G: 30, B: 180, A: 255},
	{R: 0, G: 128, B: 128, A: 255},
	{R: 240, G: 50, B: 230, A: 255},
	{R: 128, G: 0, B: 0, A: 255},
	{R: 0, G: 0, B: 128, A: 255},
	{R: 128, G: 128, B: 0, A: 255},
	{R: 170, G: 110, B: 40, A: 255},
	{R: 70, G: 70, B: 70, A: 255},
}
