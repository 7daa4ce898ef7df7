package core

import "testing"

func TestBoxIntersects(t *testing.T) {
	unit := UnitBox()

	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "same position",
			a:        unit,
			b:        unit,
			expected: true,
		},
		{
			name:     "partial overlap",
			a:        unit,
			b:        unit.Recenter(Vec(0.5, 0.5, 0.5)),
			expected: true,
		},
		{
			name:     "touching faces",
			a:        unit,
			b:        unit.Recenter(Vec(1, 0, 0)),
			expected: true,
		},
		{
			name:     "separated on x",
			a:        unit,
			b:        unit.Recenter(Vec(1.01, 0, 0)),
			expected: false,
		},
		{
			name:     "separated on y",
			a:        unit,
			b:        unit.Recenter(Vec(0, -2, 0)),
			expected: false,
		},
		{
			name:     "separated on z",
			a:        unit,
			b:        unit.Recenter(Vec(0, 0, 3)),
			expected: false,
		},
		{
			name:     "contained",
			a:        NewBox(Zero, Vec(4, 4, 4)),
			b:        NewBox(Vec(1, 1, 1), Vec(0.5, 0.5, 0.5)),
			expected: true,
		},
		{
			name:     "zero size on surface",
			a:        unit,
			b:        NewBox(Vec(0.5, 0, 0), Zero),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("reverse Intersects() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxExtents(t *testing.T) {
	b := NewBox(Vec(1, 2, 3), Vec(2, 4, 6))

	if got := b.Min(); !got.Equal(Vec(0, 0, 0)) {
		t.Errorf("Min() = %v, expected (0, 0, 0)", got)
	}
	if got := b.Max(); !got.Equal(Vec(2, 4, 6)) {
		t.Errorf("Max() = %v, expected (2, 4, 6)", got)
	}
	if !b.Contains(Vec(2, 4, 6)) {
		t.Error("Contains() should include the max corner")
	}
	if b.Contains(Vec(2.1, 0, 0)) {
		t.Error("Contains() should exclude points outside")
	}
}

func TestBoxScaled(t *testing.T) {
	b := UnitBox().Scaled(Vec(2, -3, 1))
	if got := b.Size(); !got.Equal(Vec(2, 3, 1)) {
		t.Errorf("Scaled().Size() = %v, expected (2, 3, 1)", got)
	}
}

func TestBoxCorners(t *testing.T) {
	b := UnitBox()
	for i, c := range b.Corners() {
		if !b.Contains(c) {
			t.Errorf("corner %d %v not contained in box", i, c)
		}
	}
}
