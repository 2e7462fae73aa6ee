// Package practice ties the engine together: it loads the day's pool,
// starts sessions, and turns finished sessions into profile updates and
// achievements.
package practice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/sparky/internal/achievements"
	"github.com/abhisek/sparky/internal/clock"
	"github.com/abhisek/sparky/internal/contentgen"
	"github.com/abhisek/sparky/internal/difficulty"
	"github.com/abhisek/sparky/internal/logging"
	"github.com/abhisek/sparky/internal/metrics"
	"github.com/abhisek/sparky/internal/progress"
	"github.com/abhisek/sparky/internal/qcache"
	"github.com/abhisek/sparky/internal/question"
	"github.com/abhisek/sparky/internal/selector"
	"github.com/abhisek/sparky/internal/session"
	"github.com/abhisek/sparky/internal/store"
)

var (
	ErrGradeNotSet    = errors.New("grade has not been chosen yet")
	ErrNoPool         = errors.New("questions have not been loaded")
	ErrNoQuestions    = errors.New("no questions available for this mode")
	ErrDailyDone      = errors.New("today's puzzle is already solved")
	ErrOpenEnded      = errors.New("creative challenges are not multiple choice")
	ErrUnknownSession = errors.New("no such session")
	ErrSessionRunning = errors.New("session is not finished")
	ErrEmptyAnswer    = errors.New("answer is empty")
)

// Options configures a Service. Progress, Loader and Generator are
// required; the rest have defaults.
type Options struct {
	Progress    *progress.Store
	Loader      *qcache.Loader
	Generator   contentgen.Generator
	Shuffler    *selector.Shuffler
	Clock       clock.Clock
	Catalog     *achievements.Catalog
	Events      store.EventRepo
	Metrics     *metrics.Metrics
	SessionSize int
}

// Service runs practice for a single learner. It is safe for concurrent
// use; profile changes are applied one at a time.
type Service struct {
	progress *progress.Store
	loader   *qcache.Loader
	gen      contentgen.Generator
	shuffler *selector.Shuffler
	clock    clock.Clock
	catalog  *achievements.Catalog
	events   store.EventRepo
	metrics  *metrics.Metrics
	size     int

	mu       sync.Mutex
	pool     question.Pool
	poolKey  poolKey
	sessions map[string]*session.Session
}

type poolKey struct {
	grade int
	level difficulty.Level
	date  string
}

// New returns a Service.
func New(opts Options) *Service {
	s := &Service{
		progress: opts.Progress,
		loader:   opts.Loader,
		gen:      opts.Generator,
		shuffler: opts.Shuffler,
		clock:    opts.Clock,
		catalog:  opts.Catalog,
		events:   opts.Events,
		metrics:  opts.Metrics,
		size:     opts.SessionSize,
		sessions: make(map[string]*session.Session),
	}
	if s.shuffler == nil {
		s.shuffler = selector.New()
	}
	if s.clock == nil {
		s.clock = clock.System{}
	}
	if s.catalog == nil {
		s.catalog = achievements.Default()
	}
	if s.size <= 0 {
		s.size = selector.SessionSize
	}
	return s
}

// Profile returns the current profile.
func (s *Service) Profile() progress.Profile { return s.progress.Profile() }

// Catalog returns the achievement catalog.
func (s *Service) Catalog() *achievements.Catalog { return s.catalog }

// Now returns the service clock's time.
func (s *Service) Now() time.Time { return s.clock.Now() }

// Level returns the difficulty for the current streak.
func (s *Service) Level() difficulty.Level {
	return difficulty.ForStreak(s.progress.Profile().CurrentStreak)
}

// SetGrade records the grade. The loaded pool is dropped when the grade
// changes.
func (s *Service) SetGrade(ctx context.Context, g int) (progress.Profile, error) {
	p, err := s.progress.SetGrade(ctx, g)
	if errors.Is(err, progress.ErrInvalidGrade) {
		return p, err
	}
	s.mu.Lock()
	if s.poolKey.grade != p.Grade {
		s.pool = nil
	}
	s.mu.Unlock()
	return p, err
}

func (s *Service) currentKey() (poolKey, error) {
	p := s.progress.Profile()
	if !p.HasGrade() {
		return poolKey{}, ErrGradeNotSet
	}
	return poolKey{
		grade: p.Grade,
		level: difficulty.ForStreak(p.CurrentStreak),
		date:  clock.Today(s.clock),
	}, nil
}

// LoadPool makes today's pool for the learner's grade and difficulty
// available, fetching it on a cache miss. The pool is only installed if
// the grade, difficulty and day still match when the fetch returns.
func (s *Service) LoadPool(ctx context.Context) (question.Pool, error) {
	key, err := s.currentKey()
	if err != nil {
		return nil, err
	}
	if pool, ok := s.Pool(); ok {
		return pool, nil
	}

	pool, err := s.loader.Load(ctx, key.grade, key.level)
	if err != nil {
		return nil, err
	}

	now, err := s.currentKey()
	if err != nil || now != key {
		logging.FromContext(ctx).Debug().Msg("discarding pool fetched for an outdated key")
		return pool, nil
	}
	s.mu.Lock()
	s.pool, s.poolKey = pool, key
	s.mu.Unlock()
	return pool, nil
}

// Pool returns the loaded pool if it is still current.
func (s *Service) Pool() (question.Pool, bool) {
	key, err := s.currentKey()
	if err != nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool == nil || s.poolKey != key {
		return nil, false
	}
	return s.pool, true
}

// CanSmart reports whether smart practice has weak skills to target.
func (s *Service) CanSmart() bool {
	return selector.CanSmart(s.progress.Profile().Performance)
}

// DailyDone reports whether today's puzzle is already solved.
func (s *Service) DailyDone() bool {
	return s.progress.Profile().DailyDoneToday(s.clock.Now())
}

// Start builds a multiple-choice session for mode from the loaded pool.
func (s *Service) Start(ctx context.Context, mode session.Mode) (*session.Session, error) {
	p := s.progress.Profile()
	if !p.HasGrade() {
		return nil, ErrGradeNotSet
	}
	if !mode.IsMultipleChoice() {
		return nil, ErrOpenEnded
	}
	pool, ok := s.Pool()
	if !ok {
		return nil, ErrNoPool
	}

	var qs []question.Question
	switch mode {
	case session.ModeVerbal, session.ModeQuantitative, session.ModeNonVerbal:
		cat, _ := mode.Category()
		qs = selector.Category(s.shuffler, pool, cat, s.size)
	case session.ModeSmart:
		qs = selector.Smart(s.shuffler, pool, p.Performance, s.size)
	case session.ModeDaily:
		if p.DailyDoneToday(s.clock.Now()) {
			return nil, ErrDailyDone
		}
		qs = selector.Daily(pool, clock.DayOfYear(s.clock.Now()))
	case session.ModeCreative:
		return nil, ErrOpenEnded
	}

	sess := session.New(mode, qs, s.clock.Now())
	if sess == nil {
		return nil, ErrNoQuestions
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.metrics.Started(string(mode))
	logging.FromContext(ctx).Info().Str("session", sess.ID).Str("mode", string(mode)).Int("questions", sess.Len()).Msg("session started")
	return sess, nil
}

// Session returns a running session by id.
func (s *Service) Session(id string) (*session.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Abandon drops a running session. Nothing in the profile changes.
func (s *Service) Abandon(ctx context.Context, id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return ErrUnknownSession
	}

	s.metrics.Abandoned(string(sess.Mode))
	s.record(ctx, store.SessionEventData{
		SessionID:    sess.ID,
		Mode:         string(sess.Mode),
		Action:       store.SessionAbandoned,
		Questions:    sess.Len(),
		Correct:      sess.Score(),
		DurationSecs: int(s.clock.Now().Sub(sess.StartedAt).Seconds()),
	})
	return nil
}

// Outcome is the result of completing a session.
type Outcome struct {
	Result          session.Result
	DailySolved     bool
	NewAchievements []achievements.Achievement
	Profile         progress.Profile

	// Perfect is set for a practice session of full length with every
	// answer correct.
	Perfect bool
}

// Complete applies a finished session to the profile as one update:
// practice sessions add correct answers, per-skill results, a completion
// and possibly a perfect score; a correctly solved daily puzzle advances
// the streak. Newly earned achievements are unlocked in the same update.
//
// If saving fails the profile is still updated in memory and the error is
// returned alongside the Outcome.
func (s *Service) Complete(ctx context.Context, sess *session.Session) (Outcome, error) {
	now := s.clock.Now()
	res, ok := sess.Result(now)
	if !ok {
		return Outcome{}, ErrSessionRunning
	}

	s.mu.Lock()
	_, running := s.sessions[sess.ID]
	delete(s.sessions, sess.ID)
	s.mu.Unlock()
	if !running {
		return Outcome{}, ErrUnknownSession
	}

	out := Outcome{
		Result:  res,
		Perfect: res.Mode.IsPractice() && res.Perfect() && res.Total >= s.size,
	}
	var unlocked []string
	p, err := s.progress.Update(ctx, func(p progress.Profile) (progress.Profile, bool) {
		trigger := achievements.Trigger{PriorCompletions: p.TotalCompletions()}
		changed := false

		if res.Mode.IsPractice() {
			trigger.PracticeCompleted = true
			trigger.Perfect = out.Perfect
			p, _ = p.AddCorrectAnswers(res.Score)
			p, _ = p.UpdatePerformance(res.SkillUpdates())
			p, _ = p.AddQuizCompletion(res.Mode)
			if out.Perfect {
				p, _ = p.IncrementPerfectScores()
			}
			changed = true
		}
		if res.Mode == session.ModeDaily && res.Perfect() {
			var c bool
			p, c = p.CompleteDailyPuzzle(now)
			trigger.DailySolved = c
			out.DailySolved = c
			changed = changed || c
		}

		unlocked = achievements.Evaluate(p, trigger)
		var c bool
		p, c = p.AddAchievements(unlocked)
		return p, changed || c
	})
	out.Profile = p
	out.NewAchievements = s.catalog.Resolve(unlocked)

	s.metrics.Completed(string(res.Mode))
	s.metrics.Unlocked(unlocked)
	logging.FromContext(ctx).Info().
		Str("session", res.ID).
		Str("mode", string(res.Mode)).
		Int("score", res.Score).
		Int("total", res.Total).
		Strs("achievements", unlocked).
		Msg("session completed")
	s.record(ctx, store.SessionEventData{
		SessionID:    res.ID,
		Mode:         string(res.Mode),
		Action:       store.SessionCompleted,
		Questions:    res.Total,
		Correct:      res.Score,
		DurationSecs: int(res.Duration.Seconds()),
		Achievements: unlocked,
	})

	if err != nil {
		return out, fmt.Errorf("saving progress: %w", err)
	}
	return out, nil
}

// record appends a session event. History is best effort.
func (s *Service) record(ctx context.Context, data store.SessionEventData) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendSessionEvent(ctx, data); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("session", data.SessionID).Msg("recording session history failed")
	}
}

// History returns recent session events, newest first.
func (s *Service) History(ctx context.Context, opts store.QueryOpts) ([]store.SessionEvent, error) {
	if s.events == nil {
		return nil, nil
	}
	return s.events.QuerySessionEvents(ctx, opts)
}

// Reset wipes the profile and every cached pool.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.progress.Reset(ctx); err != nil {
		return err
	}
	if _, err := s.loader.Cache().Purge(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.pool = nil
	s.sessions = make(map[string]*session.Session)
	s.mu.Unlock()
	return nil
}
