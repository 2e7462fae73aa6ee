package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/sparky/internal/clock"
	"github.com/abhisek/sparky/internal/logging"
	"github.com/abhisek/sparky/internal/session"
	"github.com/abhisek/sparky/internal/store"
)

// Key is the KV key holding the profile.
const Key = "sparkyUserData"

// ErrInvalidGrade is returned by SetGrade for grades outside MinGrade..MaxGrade.
var ErrInvalidGrade = fmt.Errorf("grade must be between %d and %d", MinGrade, MaxGrade)

// Store holds the current profile and writes it through to a KV store
// after every change. It is safe for concurrent use; operations are
// applied one at a time.
type Store struct {
	mu      sync.Mutex
	kv      store.KV
	clock   clock.Clock
	profile Profile
}

// Load reads the profile from kv. A missing, unreadable or corrupt record
// yields the default profile; the problem is logged, never returned.
func Load(ctx context.Context, kv store.KV, clk clock.Clock) *Store {
	if clk == nil {
		clk = clock.System{}
	}
	s := &Store{kv: kv, clock: clk, profile: Default()}
	logger := logging.FromContext(ctx)

	raw, ok, err := kv.Get(ctx, Key)
	switch {
	case err != nil:
		logger.Warn().Err(err).Msg("reading profile failed, using defaults")
		return s
	case !ok:
		return s
	}

	p, issues, err := Decode([]byte(raw))
	if err != nil {
		logger.Warn().Err(err).Msg("stored profile is corrupt, using defaults")
		return s
	}
	if len(issues) > 0 {
		logger.Warn().Strs("fields", issues).Msg("stored profile had invalid fields, using defaults for them")
	}
	s.profile = p
	return s
}

// Profile returns a copy of the current profile.
func (s *Store) Profile() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

// Update applies fn to the current profile and persists the result as one
// write. When fn reports no change nothing is written. If the write fails
// the new profile is still kept in memory and the error is returned.
func (s *Store) Update(ctx context.Context, fn func(Profile) (Profile, bool)) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := fn(s.profile.Clone())
	if !changed {
		return s.profile.Clone(), nil
	}
	s.profile = next
	if err := s.save(ctx); err != nil {
		return next.Clone(), err
	}
	return next.Clone(), nil
}

func (s *Store) save(ctx context.Context) error {
	data, err := json.Marshal(s.profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.kv.Set(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// SetGrade records the learner's grade.
func (s *Store) SetGrade(ctx context.Context, g int) (Profile, error) {
	if !ValidGrade(g) {
		return s.Profile(), ErrInvalidGrade
	}
	return s.Update(ctx, func(p Profile) (Profile, bool) { return p.WithGrade(g) })
}

// CompleteDailyPuzzle records today's puzzle as solved.
func (s *Store) CompleteDailyPuzzle(ctx context.Context) (Profile, error) {
	now := s.clock.Now()
	return s.Update(ctx, func(p Profile) (Profile, bool) { return p.CompleteDailyPuzzle(now) })
}

// AddQuizCompletion counts one completed session of mode.
func (s *Store) AddQuizCompletion(ctx context.Context, mode session.Mode) (Profile, error) {
	return s.Update(ctx, func(p Profile) (Profile, bool) { return p.AddQuizCompletion(mode) })
}

// AddAchievements unlocks ids that are not yet unlocked.
func (s *Store) AddAchievements(ctx context.Context, ids []string) (Profile, error) {
	return s.Update(ctx, func(p Profile) (Profile, bool) { return p.AddAchievements(ids) })
}

// UpdatePerformance applies per-skill answer observations.
func (s *Store) UpdatePerformance(ctx context.Context, updates []session.SkillUpdate) (Profile, error) {
	return s.Update(ctx, func(p Profile) (Profile, bool) { return p.UpdatePerformance(updates) })
}

// IncrementPerfectScores counts one perfect session.
func (s *Store) IncrementPerfectScores(ctx context.Context) (Profile, error) {
	return s.Update(ctx, func(p Profile) (Profile, bool) { return p.IncrementPerfectScores() })
}

// AddCorrectAnswers adds n to the lifetime correct-answer count.
func (s *Store) AddCorrectAnswers(ctx context.Context, n int) (Profile, error) {
	return s.Update(ctx, func(p Profile) (Profile, bool) { return p.AddCorrectAnswers(n) })
}

// Reset deletes the stored profile and starts over from defaults.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = Default()
	if err := s.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time { return s.clock.Now() }
