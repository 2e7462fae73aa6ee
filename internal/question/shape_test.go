package question

import "testing"

func TestParseShape(t *testing.T) {
	tests := []struct {
		desc   string
		want   Shape
		wantOK bool
	}{
		{
			desc:   "One small filled red square",
			want:   Shape{Count: 1, Kind: Square, Color: "red", Size: SizeSmall, Filled: true},
			wantOK: true,
		},
		{
			desc:   "Two big empty blue circles",
			want:   Shape{Count: 2, Kind: Circle, Color: "blue", Size: SizeBig, Filled: false},
			wantOK: true,
		},
		{
			desc:   "Three green triangles.",
			want:   Shape{Count: 3, Kind: Triangle, Color: "green", Size: SizeMedium, Filled: true},
			wantOK: true,
		},
		{
			desc:   "A large yellow star with a dot",
			want:   Shape{Count: 1, Kind: Star, Color: "yellow", Size: SizeBig, Filled: true, Dot: true},
			wantOK: true,
		},
		{
			desc:   "a happy face",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, ok := ParseShape(tt.desc)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseShape = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestShapeGlyphs(t *testing.T) {
	s, _ := ParseShape("Two empty circles")
	if got := s.Glyphs(); got != "○ ○" {
		t.Errorf("Glyphs = %q", got)
	}
	s, _ = ParseShape("Four filled stars")
	if got := s.Glyphs(); got != "★ ★ ★ ★" {
		t.Errorf("Glyphs = %q", got)
	}
}
