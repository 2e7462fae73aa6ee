// Package selector builds the question list for a session from the day's
// pool: category practice, the daily puzzle, and weakness-targeted smart
// practice.
package selector

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Shuffler produces uniform random permutations. A Shuffler built with
// NewSeeded always yields the same sequence of permutations. It is safe
// for concurrent use.
type Shuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeeded returns a deterministic Shuffler.
func NewSeeded(seed uint64) *Shuffler {
	return &Shuffler{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// New returns a Shuffler seeded from the current time.
func New() *Shuffler {
	return NewSeeded(uint64(time.Now().UnixNano()))
}

// intn returns a uniform value in [0, n).
func (s *Shuffler) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// Shuffle returns a shuffled copy of in using Fisher-Yates: walk from the
// last index down to 1 and swap each position with a uniform index at or
// below it. in is not modified.
func Shuffle[T any](s *Shuffler, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := s.intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
