package model

import (
	"testing"

	"pgregory.net/rapid"
)

func TestBoxFromCorners_SwapsInverted(t *testing.T) {
	b := BoxFromCorners(110, 220, 10, 20)
	want := BoundingBox{X1: 10, Y1: 20, X2: 110, Y2: 220}
	if b != want {
		t.Errorf("got %+v, want %+v", b, want)
	}
}

func TestBoxFromRect(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h float64
		want       BoundingBox
	}{
		{"integers", 10, 20, 100, 50, BoundingBox{10, 20, 110, 70}},
		{"fractional", 0.5, 1.5, 10.25, 10.75, BoundingBox{0, 1, 10, 12}},
		{"negative width clamps", 5, 5, -3, 10, BoundingBox{5, 5, 5, 15}},
		{"zero size", 7, 8, 0, 0, BoundingBox{7, 8, 7, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BoxFromRect(tt.x, tt.y, tt.w, tt.h)
			if got != tt.want {
				t.Errorf("BoxFromRect(%v,%v,%v,%v) = %+v, want %+v", tt.x, tt.y, tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestBoundingBox_Center(t *testing.T) {
	tests := []struct {
		box  BoundingBox
		want Point
	}{
		{BoundingBox{0, 0, 50, 50}, Point{25, 25}},
		{BoundingBox{0, 0, 51, 51}, Point{25, 25}},
		{BoundingBox{10, 20, 110, 220}, Point{60, 120}},
		{BoundingBox{-3, -3, 0, 0}, Point{-2, -2}},
	}
	for _, tt := range tests {
		if got := tt.box.Center(); got != tt.want {
			t.Errorf("%v.Center() = %+v, want %+v", tt.box, got, tt.want)
		}
	}
}

func TestBoundingBox_String(t *testing.T) {
	b := BoundingBox{0, 0, 50, 50}
	if got := b.String(); got != "(0, 0, 50, 50)" {
		t.Errorf("String() = %q", got)
	}
}

func TestBoundingBox_Intersects(t *testing.T) {
	a := BoundingBox{0, 0, 100, 100}
	if !a.Intersects(BoundingBox{50, 50, 150, 150}) {
		t.Error("overlapping boxes should intersect")
	}
	if a.Intersects(BoundingBox{100, 0, 200, 100}) {
		t.Error("edge-touching boxes should not intersect")
	}
	if a.Intersects(BoundingBox{-50, -50, -1, -1}) {
		t.Error("disjoint boxes should not intersect")
	}
}

func TestFrame_Offset(t *testing.T) {
	parent := Frame{X: 10, Y: 20, W: 100, H: 100}
	child := Frame{X: 5, Y: 5, W: 10, H: 10}
	got := child.Offset(parent).Box()
	want := BoundingBox{X1: 15, Y1: 25, X2: 25, Y2: 35}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestBoxGeometryInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x1 := rapid.IntRange(-5000, 5000).Draw(t, "x1")
		y1 := rapid.IntRange(-5000, 5000).Draw(t, "y1")
		x2 := rapid.IntRange(-5000, 5000).Draw(t, "x2")
		y2 := rapid.IntRange(-5000, 5000).Draw(t, "y2")

		b := BoxFromCorners(x1, y1, x2, y2)
		if b.X1 > b.X2 || b.Y1 > b.Y2 {
			t.Fatalf("box not normalized: %+v", b)
		}
		c := b.Center()
		if c.X != floorDiv(b.X1+b.X2, 2) || c.Y != floorDiv(b.Y1+b.Y2, 2) {
			t.Fatalf("center %+v does not match box %+v", c, b)
		}
		if c.X < b.X1 || c.X > b.X2 || c.Y < b.Y1 || c.Y > b.Y2 {
			t.Fatalf("center %+v outside box %+v", c, b)
		}
	})
}

func TestBoxFromRectInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x := rapid.Float64Range(0, 4000).Draw(t, "x")
		y := rapid.Float64Range(0, 4000).Draw(t, "y")
		w := rapid.Float64Range(-100, 4000).Draw(t, "w")
		h := rapid.Float64Range(-100, 4000).Draw(t, "h")

		b := BoxFromRect(x, y, w, h)
		if b.X1 > b.X2 || b.Y1 > b.Y2 {
			t.Fatalf("BoxFromRect(%v,%v,%v,%v) = %+v not normalized", x, y, w, h, b)
		}
	})
}
