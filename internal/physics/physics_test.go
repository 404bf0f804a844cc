package physics

import "testing"

func TestRectEdges(t *testing.T) {
	r := Rect{X: 10, Y: -20, W: 4, H: 6}
	if r.Left() != 8 || r.Right() != 12 {
		t.Fatalf("horizontal edges = %v..%v, want 8..12", r.Left(), r.Right())
	}
	if r.Top() != -23 || r.Bottom() != -17 {
		t.Fatalf("vertical edges = %v..%v, want -23..-17", r.Top(), r.Bottom())
	}
}

func TestOverlaps(t *testing.T) {
	base := Rect{X: 0, Y: 0, W: 10, H: 10}
	cases := []struct {
		name string
		o    Rect
		want bool
	}{
		{"identical", base, true},
		{"partial", Rect{X: 8, Y: 8, W: 10, H: 10}, true},
		{"touching edges", Rect{X: 10, Y: 0, W: 10, H: 10}, false},
		{"disjoint", Rect{X: 30, Y: 0, W: 10, H: 10}, false},
		{"x overlap only", Rect{X: 0, Y: 30, W: 10, H: 10}, false},
	}
	for _, tc := range cases {
		if got := base.Overlaps(tc.o); got != tc.want {
			t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestOverlapsXIgnoresVertical(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	b := Rect{X: 3, Y: 500, W: 10, H: 10}
	if !a.OverlapsX(b) {
		t.Fatal("horizontal extents intersect, OverlapsX = false")
	}
}

func TestInflate(t *testing.T) {
	r := Rect{X: 5, Y: 5, W: 10, H: 4}.Inflate(3)
	if r.W != 16 || r.H != 10 {
		t.Fatalf("inflated extents = %vx%v, want 16x10", r.W, r.H)
	}
	if r.X != 5 || r.Y != 5 {
		t.Fatal("Inflate moved the center")
	}
}

func TestWithinRadius(t *testing.T) {
	if !WithinRadius(0, 0, 3, 4, 5.1) {
		t.Fatal("points at distance 5 not within radius 5.1")
	}
	if WithinRadius(0, 0, 3, 4, 5) {
		t.Fatal("boundary distance counted as within")
	}
}

func TestClamp(t *testing.T) {
	cases := []struct{ v, lo, hi, want float64 }{
		{-2, -1, 1, -1},
		{0.5, -1, 1, 0.5},
		{7, -1, 1, 1},
	}
	for _, tc := range cases {
		if got := Clamp(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tc.v, tc.lo, tc.hi, got, tc.want)
		}
	}
}
