package progress

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/abhisek/sparky/internal/clock"
	"github.com/abhisek/sparky/internal/session"
)

// record is the persisted JSON shape. Optional values are pointers so that
// null and missing fields can be told apart from zero.
type record struct {
	Grade                *int                 `json:"grade"`
	CurrentStreak        int                  `json:"currentStreak"`
	BestStreak           int                  `json:"bestStreak"`
	LastCompletedDate    *string              `json:"lastCompletedDate"`
	UnlockedAchievements []string             `json:"unlockedAchievements"`
	QuizCompletions      map[session.Mode]int `json:"quizCompletions"`
	Performance          map[string]Stat      `json:"performance"`
	PerfectScores        int                  `json:"perfectScores"`
	TotalCorrectAnswers  int                  `json:"totalCorrectAnswers"`
}

// MarshalJSON writes the profile in its persisted shape: grade and
// lastCompletedDate are null while unset.
func (p Profile) MarshalJSON() ([]byte, error) {
	r := record{
		CurrentStreak:        p.CurrentStreak,
		BestStreak:           p.BestStreak,
		UnlockedAchievements: p.UnlockedAchievements,
		QuizCompletions:      p.QuizCompletions,
		Performance:          p.Performance,
		PerfectScores:        p.PerfectScores,
		TotalCorrectAnswers:  p.TotalCorrectAnswers,
	}
	if p.Grade != 0 {
		g := p.Grade
		r.Grade = &g
	}
	if p.LastCompletedDate != "" {
		d := p.LastCompletedDate
		r.LastCompletedDate = &d
	}
	if r.UnlockedAchievements == nil {
		r.UnlockedAchievements = []string{}
	}
	return json.Marshal(r)
}

// Decode parses a stored profile and backfills it against Default. Fields
// that are missing, null or of the wrong type keep their default value;
// the returned issues name them. Only a value that is not a JSON object at
// all is an error.
func Decode(data []byte) (Profile, []string, error) {
	p := Default()
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return p, nil, fmt.Errorf("decode profile: %w", err)
	}
	if fields == nil {
		return p, nil, fmt.Errorf("decode profile: not an object")
	}

	var issues []string
	field := func(name string, dst any) {
		raw, ok := fields[name]
		if !ok || string(raw) == "null" {
			return
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			issues = append(issues, name)
		}
	}

	var grade int
	field("grade", &grade)
	if ValidGrade(grade) {
		p.Grade = grade
	} else if grade != 0 {
		issues = append(issues, "grade")
	}

	field("currentStreak", &p.CurrentStreak)
	field("bestStreak", &p.BestStreak)
	p.CurrentStreak = max(p.CurrentStreak, 0)
	p.BestStreak = max(p.BestStreak, p.CurrentStreak)

	field("lastCompletedDate", &p.LastCompletedDate)
	if p.LastCompletedDate != "" {
		if _, err := time.Parse(clock.DateLayout, p.LastCompletedDate); err != nil {
			p.LastCompletedDate = ""
			issues = append(issues, "lastCompletedDate")
		}
	}

	var ids []string
	field("unlockedAchievements", &ids)
	p, _ = p.AddAchievements(ids)

	var qc map[string]int
	field("quizCompletions", &qc)
	for key, n := range qc {
		m, err := session.ParseMode(key)
		if err != nil || !slices.Contains(session.CountedModes(), m) {
			issues = append(issues, "quizCompletions."+key)
			continue
		}
		p.QuizCompletions[m] = max(n, 0)
	}

	var perf map[string]Stat
	field("performance", &perf)
	for skill, s := range perf {
		s.Total = max(s.Total, 0)
		s.Correct = min(max(s.Correct, 0), s.Total)
		p.Performance[skill] = s
	}

	field("perfectScores", &p.PerfectScores)
	field("totalCorrectAnswers", &p.TotalCorrectAnswers)
	p.PerfectScores = max(p.PerfectScores, 0)
	p.TotalCorrectAnswers = max(p.TotalCorrectAnswers, 0)

	return p, issues, nil
}
