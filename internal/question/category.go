package question

import "fmt"

// Category is a top-level practice category. Pools are keyed by Category.
type Category string

const (
	Verbal       Category = "verbal"
	Quantitative Category = "quantitative"
	NonVerbal    Category = "non-verbal"
)

// Categories returns the practice categories in their fixed order. The
// daily puzzle concatenates pools in this order.
func Categories() []Category {
	return []Category{Verbal, Quantitative, NonVerbal}
}

// ParseCategory converts a string into a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case Verbal, Quantitative, NonVerbal:
		return Category(s), nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

// DisplayName returns the kid-facing name of the category.
func (c Category) DisplayName() string {
	switch c {
	case Verbal:
		return "Verbal Puzzles"
	case Quantitative:
		return "Number Games"
	case NonVerbal:
		return "Shape Mysteries"
	default:
		return string(c)
	}
}

// Description returns the one-line blurb shown on the home screen.
func (c Category) Description() string {
	switch c {
	case Verbal:
		return "Find relationships between words and complete sentences."
	case Quantitative:
		return "Solve number series, patterns, and fun math problems."
	case NonVerbal:
		return "Discover patterns and sequences with shapes and figures."
	default:
		return ""
	}
}

// Icon returns the display icon for the category.
func (c Category) Icon() string {
	switch c {
	case Verbal:
		return "🧠"
	case Quantitative:
		return "🔢"
	case NonVerbal:
		return "🔷"
	default:
		return "✦"
	}
}

// SkillTags returns the skill tags a question in this category may carry.
func (c Category) SkillTags() []string {
	switch c {
	case Verbal:
		return []string{"analogy", "sentence completion", "classification", "synonym/antonym"}
	case Quantitative:
		return []string{"number pattern", "word problem", "basic arithmetic"}
	case NonVerbal:
		return []string{"pattern completion", "figure matrix", "spatial reasoning"}
	default:
		return nil
	}
}

// AllowsSkill reports whether tag is one of the category's skill tags.
func (c Category) AllowsSkill(tag string) bool {
	for _, s := range c.SkillTags() {
		if s == tag {
			return true
		}
	}
	return false
}

// CategoryForSkill returns the category that owns a skill tag.
func CategoryForSkill(tag string) (Category, bool) {
	for _, c := range Categories() {
		if c.AllowsSkill(tag) {
			return c, true
		}
	}
	return "", false
}
