package core

import "testing"

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        NewBox(0, 0, 16, 16),
			b:        NewBox(8, 8, 16, 16),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewBox(0, 0, 16, 16),
			b:        NewBox(20, 0, 16, 16),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewBox(0, 0, 16, 16),
			b:        NewBox(0, 20, 16, 16),
			expected: false,
		},
		{
			name:     "touching horizontal (no overlap)",
			a:        NewBox(0, 0, 16, 16),
			b:        NewBox(16, 0, 16, 16),
			expected: false,
		},
		{
			name:     "touching vertical (no overlap)",
			a:        NewBox(0, 208, 16, 16),
			b:        NewBox(0, 224, 16, 16),
			expected: false,
		},
		{
			name:     "contained box",
			a:        NewBox(0, 0, 32, 32),
			b:        NewBox(8, 8, 4, 4),
			expected: true,
		},
		{
			name:     "sub-pixel overlap",
			a:        NewBox(0, 0, 16, 16),
			b:        NewBox(15.5, 15.5, 16, 16),
			expected: true,
		},
		{
			name:     "identical boxes",
			a:        NewBox(3, 4, 5, 6),
			b:        NewBox(3, 4, 5, 6),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestPenetration(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Box
		dx, dy float64
	}{
		{
			name: "disjoint",
			a:    NewBox(0, 0, 16, 16),
			b:    NewBox(32, 0, 16, 16),
			dx:   0, dy: 0,
		},
		{
			name: "touching",
			a:    NewBox(0, 0, 16, 16),
			b:    NewBox(16, 0, 16, 16),
			dx:   0, dy: 0,
		},
		{
			name: "sunk into floor",
			a:    NewBox(0, 210, 16, 16),
			b:    NewBox(0, 224, 16, 16),
			dx:   16, dy: -2,
		},
		{
			name: "entering from the left",
			a:    NewBox(10, 100, 16, 16),
			b:    NewBox(20, 100, 16, 16),
			dx:   -6, dy: 16,
		},
		{
			name: "entering from the right",
			a:    NewBox(30, 100, 16, 16),
			b:    NewBox(20, 100, 16, 16),
			dx:   6, dy: 16,
		},
		{
			name: "head in ceiling",
			a:    NewBox(0, 14, 16, 32),
			b:    NewBox(0, 0, 16, 16),
			dx:   16, dy: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dx, dy := Penetration(tc.a, tc.b)
			if dx != tc.dx || dy != tc.dy {
				t.Errorf("Penetration() = (%v, %v), expected (%v, %v)", dx, dy, tc.dx, tc.dy)
			}
		})
	}
}

func TestPenetrationSeparates(t *testing.T) {
	a := NewBox(5, 3, 16, 16)
	b := NewBox(12, 10, 16, 16)

	dx, dy := Penetration(a, b)
	if NewBox(a.X+dx, a.Y, a.W, a.H).Intersects(b) {
		t.Errorf("moving by dx=%v should separate the boxes", dx)
	}
	if NewBox(a.X, a.Y+dy, a.W, a.H).Intersects(b) {
		t.Errorf("moving by dy=%v should separate the boxes", dy)
	}
}

func TestBoxEdges(t *testing.T) {
	b := NewBox(5, 10, 20, 15)

	if b.Right() != 25 {
		t.Errorf("Right() = %v, expected 25", b.Right())
	}
	if b.Bottom() != 25 {
		t.Errorf("Bottom() = %v, expected 25", b.Bottom())
	}
}
