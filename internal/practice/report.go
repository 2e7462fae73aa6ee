package practice

import (
	"github.com/abhisek/sparky/internal/progress"
	"github.com/abhisek/sparky/internal/question"
)

// SkillRow is one skill's accuracy line in a progress report.
type SkillRow struct {
	Skill string
	Stat  progress.Stat
}

// Seen reports whether the skill has been answered at least once.
func (r SkillRow) Seen() bool { return r.Stat.Total > 0 }

// CategoryReport lists a category's skills in catalog order.
type CategoryReport struct {
	Category question.Category
	Skills   []SkillRow
}

// Report groups per-skill accuracy by category.
func Report(p progress.Profile) []CategoryReport {
	out := make([]CategoryReport, 0, len(question.Categories()))
	for _, cat := range question.Categories() {
		r := CategoryReport{Category: cat}
		for _, tag := range cat.SkillTags() {
			r.Skills = append(r.Skills, SkillRow{Skill: tag, Stat: p.Performance[tag]})
		}
		out = append(out, r)
	}
	return out
}
