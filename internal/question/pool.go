package question

// Pool maps each category to its ordered question sequence. A pool is
// produced once per (grade, difficulty, day) and treated as read-only.
type Pool map[Category][]Question

// Get returns the questions for a category, or nil.
func (p Pool) Get(c Category) []Question {
	if p == nil {
		return nil
	}
	return p[c]
}

// Combined concatenates all category pools in the fixed category order.
func (p Pool) Combined() []Question {
	var out []Question
	for _, c := range Categories() {
		out = append(out, p.Get(c)...)
	}
	return out
}

// Len returns the total number of questions across all categories.
func (p Pool) Len() int {
	n := 0
	for _, c := range Categories() {
		n += len(p.Get(c))
	}
	return n
}

// Empty reports whether the pool holds no questions at all.
func (p Pool) Empty() bool {
	return p.Len() == 0
}

// Clone returns a deep copy of p so callers can hand out pools without
// sharing backing arrays.
func (p Pool) Clone() Pool {
	if p == nil {
		return nil
	}
	out := make(Pool, len(p))
	for c, qs := range p {
		cp := make([]Question, len(qs))
		for i, q := range qs {
			q.Options = append([]string(nil), q.Options...)
			cp[i] = q
		}
		out[c] = cp
	}
	return out
}
