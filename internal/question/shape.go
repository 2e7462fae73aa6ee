package question

import (
	"strings"
	"unicode"
)

// ShapeKind is the figure drawn for a non-verbal option.
type ShapeKind string

const (
	Square   ShapeKind = "square"
	Circle   ShapeKind = "circle"
	Triangle ShapeKind = "triangle"
	Star     ShapeKind = "star"
)

// ShapeSize is the relative size of a drawn figure.
type ShapeSize string

const (
	SizeSmall  ShapeSize = "small"
	SizeMedium ShapeSize = "medium"
	SizeBig    ShapeSize = "big"
)

// Shape is a parsed non-verbal option such as "Two big empty blue circles".
type Shape struct {
	Count  int
	Kind   ShapeKind
	Color  string
	Size   ShapeSize
	Filled bool
	Dot    bool
}

var quantityWords = map[string]int{
	"one": 1, "single": 1, "a": 1, "1": 1,
	"two": 2, "2": 2,
	"three": 3, "3": 3,
	"four": 4, "4": 4,
}

// ParseShape reads a shape description. It returns false when the text
// names no known shape, in which case the option should be shown as text.
// Unspecified attributes default to one medium filled blue square.
func ParseShape(desc string) (Shape, bool) {
	lower := strings.ToLower(desc)
	found := false
	for _, k := range []ShapeKind{Square, Circle, Triangle, Star} {
		if strings.Contains(lower, string(k)) {
			found = true
			break
		}
	}
	if !found {
		return Shape{}, false
	}

	s := Shape{Count: 1, Kind: Square, Color: "blue", Size: SizeMedium, Filled: true}
	for _, part := range strings.Fields(lower) {
		word := strings.TrimFunc(part, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if n, ok := quantityWords[word]; ok {
			s.Count = n
			continue
		}
		switch singular(word) {
		case "circle":
			s.Kind = Circle
		case "triangle":
			s.Kind = Triangle
		case "star":
			s.Kind = Star
		case "square":
			s.Kind = Square
		case "red", "green", "yellow", "blue":
			s.Color = word
		case "small":
			s.Size = SizeSmall
		case "big", "large":
			s.Size = SizeBig
		case "dot":
			s.Dot = true
		case "empty":
			s.Filled = false
		case "filled":
			s.Filled = true
		}
	}
	return s, true
}

func singular(w string) string {
	if len(w) > 3 && strings.HasSuffix(w, "s") {
		return strings.TrimSuffix(w, "s")
	}
	return w
}

// Glyph returns the terminal glyph for one figure of s.
func (s Shape) Glyph() string {
	if s.Dot {
		switch s.Kind {
		case Circle:
			return "◉"
		case Square:
			return "▣"
		}
	}
	switch s.Kind {
	case Circle:
		if s.Filled {
			return "●"
		}
		return "○"
	case Triangle:
		if s.Filled {
			return "▲"
		}
		return "△"
	case Star:
		if s.Filled {
			return "★"
		}
		return "☆"
	default:
		if s.Filled {
			return "■"
		}
		return "□"
	}
}

// Glyphs returns Count glyphs separated by spaces.
func (s Shape) Glyphs() string {
	n := s.Count
	if n < 1 {
		n = 1
	}
	g := make([]string, n)
	for i := range g {
		g[i] = s.Glyph()
	}
	return strings.Join(g, " ")
}
