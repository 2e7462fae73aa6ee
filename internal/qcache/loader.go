package qcache

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"

	"github.com/abhisek/sparky/internal/difficulty"
	"github.com/abhisek/sparky/internal/logging"
	"github.com/abhisek/sparky/internal/metrics"
	"github.com/abhisek/sparky/internal/question"
)

// ErrIncomplete is returned when a fetch yields a pool with an empty
// category.
var ErrIncomplete = errors.New("fetched question pool is incomplete")

// FetchFunc produces a fresh pool for a grade and level.
type FetchFunc func(ctx context.Context, level difficulty.Level, grade int) (question.Pool, error)

// Loader serves pools from the cache and fills misses through fetch.
// Concurrent loads of the same key share one fetch.
type Loader struct {
	cache   *Cache
	fetch   FetchFunc
	metrics *metrics.Metrics
	group   singleflight.Group
}

// NewLoader returns a Loader. m may be nil.
func NewLoader(cache *Cache, fetch FetchFunc, m *metrics.Metrics) *Loader {
	return &Loader{cache: cache, fetch: fetch, metrics: m}
}

// Cache returns the underlying cache.
func (l *Loader) Cache() *Cache { return l.cache }

// Load returns today's pool for grade and level. On a miss it fetches and
// caches a new pool; a failed fetch caches nothing and leaves any previous
// entry alone. If ctx is cancelled while the fetch is running, Load
// returns ctx.Err() at once; the fetch still finishes and a complete
// result is cached for the next caller.
func (l *Loader) Load(ctx context.Context, grade int, level difficulty.Level) (question.Pool, error) {
	if pool, ok := l.cache.Get(ctx, grade, level); ok {
		l.metrics.CacheHit(true)
		return pool, nil
	}
	l.metrics.CacheHit(false)

	key := l.cache.Key(grade, level)
	ch := l.group.DoChan(key, func() (any, error) {
		fctx := context.WithoutCancel(ctx)
		if pool, ok := l.cache.Get(fctx, grade, level); ok {
			return pool, nil
		}

		log := logging.FromContext(fctx)
		log.Info().Int("grade", grade).Str("level", string(level)).Msg("fetching question pool")

		pool, err := l.fetch(fctx, level, grade)
		if err == nil && !complete(pool) {
			err = ErrIncomplete
		}
		if err != nil {
			l.metrics.FetchFailed()
			return nil, err
		}
		if err := l.cache.Put(fctx, grade, level, pool); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("caching question pool failed")
		}
		return pool, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(question.Pool).Clone(), nil
	}
}
