// Package practicetest builds a practice.Service backed by memory and the
// offline question bank for use in tests.
package practicetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/sparky/internal/clock"
	"github.com/abhisek/sparky/internal/contentgen"
	"github.com/abhisek/sparky/internal/difficulty"
	"github.com/abhisek/sparky/internal/metrics"
	"github.com/abhisek/sparky/internal/practice"
	"github.com/abhisek/sparky/internal/progress"
	"github.com/abhisek/sparky/internal/qcache"
	"github.com/abhisek/sparky/internal/question"
	"github.com/abhisek/sparky/internal/selector"
	"github.com/abhisek/sparky/internal/store"
)

// Start is the fixed clock time of every fixture.
var Start = time.Date(2024, time.April, 15, 9, 0, 0, 0, time.UTC)

// Fixture is a service plus the pieces tests poke at.
type Fixture struct {
	Service *practice.Service
	KV      *store.MemoryKV
	Clock   *clock.Fixed
	Metrics *metrics.Metrics
}

// Option tweaks a fixture before the service is built.
type Option func(*practice.Options)

// WithGenerator replaces the offline generator.
func WithGenerator(g contentgen.Generator) Option {
	return func(o *practice.Options) { o.Generator = g }
}

// WithEvents records session history in repo.
func WithEvents(repo store.EventRepo) Option {
	return func(o *practice.Options) { o.Events = repo }
}

// New returns a fixture with no grade chosen.
func New(t testing.TB, opts ...Option) *Fixture {
	t.Helper()
	offline, err := contentgen.NewOffline()
	require.NoError(t, err)

	f := &Fixture{
		KV:      store.NewMemoryKV(),
		Clock:   &clock.Fixed{T: Start},
		Metrics: metrics.New(),
	}
	o := practice.Options{
		Progress:  progress.Load(context.Background(), f.KV, f.Clock),
		Generator: offline,
		Shuffler:  selector.NewSeeded(7),
		Clock:     f.Clock,
		Metrics:   f.Metrics,
	}
	for _, opt := range opts {
		opt(&o)
	}
	gen := o.Generator
	o.Loader = qcache.NewLoader(qcache.New(f.KV, f.Clock, ""), func(ctx context.Context, level difficulty.Level, grade int) (question.Pool, error) {
		return contentgen.GeneratePool(ctx, gen, level, grade)
	}, f.Metrics)

	f.Service = practice.New(o)
	return f
}

// WithGrade returns a fixture whose learner is in grade g.
func WithGrade(t testing.TB, g int, opts ...Option) *Fixture {
	t.Helper()
	f := New(t, opts...)
	_, err := f.Service.SetGrade(context.Background(), g)
	require.NoError(t, err)
	return f
}
