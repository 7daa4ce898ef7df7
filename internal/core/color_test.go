package core

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"red", ColorRed, false},
		{"Blue", ColorBlue, false},
		{"grey", ColorGray, false},
		{"", ColorDefault, false},
		{"chartreuse", ColorDefault, true},
	}
	for _, tc := range tests {
		got, err := ParseColor(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseColor(%q) = %v, expected %v", tc.in, got, tc.want)
		}
	}
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		in      string
		want    Shape
		wantErr bool
	}{
		{"", ShapeCube, false},
		{"Sphere", ShapeSphere, false},
		{" pyramid ", ShapePyramid, false},
		{"torus", ShapeNone, true},
	}
	for _, tc := range tests {
		got, err := ParseShape(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseShape(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseShape(%q) = %v, expected %v", tc.in, got, tc.want)
		}
	}
}

func TestShapeGlyph(t *testing.T) {
	if ShapeCube.Glyph() == ShapeSphere.Glyph() {
		t.Error("cube and sphere should draw with different glyphs")
	}
	if ShapeCube.String() != "cube" {
		t.Errorf("ShapeCube.String() = %q, expected cube", ShapeCube.String())
	}
}
