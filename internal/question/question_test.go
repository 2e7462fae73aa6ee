package question

import (
	"strings"
	"testing"
)

func validQuestion() Question {
	return Question{
		Text:         "Dog is to puppy as cat is to ___",
		Options:      []string{"kitten", "cub", "calf", "foal"},
		CorrectIndex: 0,
		Explanation:  "A baby cat is a kitten.",
		SubCategory:  "analogy",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *Question)
		wantErr string
	}{
		{"valid", func(q *Question) {}, ""},
		{"empty text", func(q *Question) { q.Text = "  " }, "text is empty"},
		{"three options", func(q *Question) { q.Options = q.Options[:3] }, "at least 4 options"},
		{"index negative", func(q *Question) { q.CorrectIndex = -1 }, "out of range"},
		{"index too big", func(q *Question) { q.CorrectIndex = 4 }, "out of range"},
		{"duplicate option", func(q *Question) { q.Options[2] = "Kitten " }, "identical"},
		{"empty option", func(q *Question) { q.Options[1] = "" }, "option 1 is empty"},
		{"no explanation", func(q *Question) { q.Explanation = "" }, "explanation"},
		{"no skill", func(q *Question) { q.SubCategory = "" }, "subCategory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(&q)
			err := q.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestCorrectOption(t *testing.T) {
	q := validQuestion()
	if q.CorrectOption() != "kitten" {
		t.Errorf("CorrectOption = %q", q.CorrectOption())
	}
	if !q.IsCorrect(0) || q.IsCorrect(1) {
		t.Error("IsCorrect mismatch")
	}
	q.CorrectIndex = 9
	if q.CorrectOption() != "" {
		t.Error("expected empty option for out-of-range index")
	}
}

func TestPoolCombinedOrder(t *testing.T) {
	p := Pool{
		NonVerbal:    {{Text: "n1"}},
		Verbal:       {{Text: "v1"}, {Text: "v2"}},
		Quantitative: {{Text: "q1"}},
	}
	got := p.Combined()
	want := []string{"v1", "v2", "q1", "n1"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, q := range got {
		if q.Text != want[i] {
			t.Errorf("Combined[%d] = %q, want %q", i, q.Text, want[i])
		}
	}
	if p.Len() != 4 || p.Empty() {
		t.Errorf("Len = %d, Empty = %v", p.Len(), p.Empty())
	}
}

func TestPoolEmpty(t *testing.T) {
	var nilPool Pool
	if !nilPool.Empty() || nilPool.Combined() != nil {
		t.Error("nil pool should be empty")
	}
	if !(Pool{Verbal: nil}).Empty() {
		t.Error("pool with empty category should be empty")
	}
}

func TestPoolCloneIndependent(t *testing.T) {
	p := Pool{Verbal: {validQuestion()}}
	c := p.Clone()
	c[Verbal][0].Options[0] = "changed"
	c[Verbal][0].Text = "changed"
	if p[Verbal][0].Options[0] != "kitten" || p[Verbal][0].Text == "changed" {
		t.Error("clone shares state with original")
	}
}

func TestCategorySkills(t *testing.T) {
	for _, c := range Categories() {
		if len(c.SkillTags()) == 0 {
			t.Errorf("%s has no skill tags", c)
		}
		for _, tag := range c.SkillTags() {
			got, ok := CategoryForSkill(tag)
			if !ok || got != c {
				t.Errorf("CategoryForSkill(%q) = %q, %v", tag, got, ok)
			}
		}
	}
	if _, ok := CategoryForSkill("juggling"); ok {
		t.Error("unexpected category for unknown skill")
	}
	if _, err := ParseCategory("creative"); err == nil {
		t.Error("creative is not a pooled category")
	}
}
