// Package qcache stores the day's question pool per grade and difficulty.
// An entry is only good for the calendar day it was fetched on.
package qcache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/sparky/internal/clock"
	"github.com/abhisek/sparky/internal/difficulty"
	"github.com/abhisek/sparky/internal/logging"
	"github.com/abhisek/sparky/internal/question"
	"github.com/abhisek/sparky/internal/store"
)

const (
	// Prefix starts every cache key.
	Prefix = "sparkyDailyQuestions"
	// DefaultVersion is the cache format tag. Changing it orphans every
	// entry written under the old tag.
	DefaultVersion = "v4"
)

// Entry is the stored JSON record.
type Entry struct {
	Date      string        `json:"date"`
	Questions question.Pool `json:"questions"`
}

// Cache reads and writes pool entries in a KV store.
type Cache struct {
	kv      store.KV
	clock   clock.Clock
	version string
}

// New returns a Cache. An empty version selects DefaultVersion.
func New(kv store.KV, clk clock.Clock, version string) *Cache {
	if clk == nil {
		clk = clock.System{}
	}
	if version == "" {
		version = DefaultVersion
	}
	return &Cache{kv: kv, clock: clk, version: version}
}

// Key returns the KV key for a grade and level.
func (c *Cache) Key(grade int, level difficulty.Level) string {
	return fmt.Sprintf("%s-%s-%d-%s", Prefix, c.version, grade, level)
}

// Get returns the cached pool for today. An absent, stale, unreadable or
// malformed entry is a miss.
func (c *Cache) Get(ctx context.Context, grade int, level difficulty.Level) (question.Pool, bool) {
	key := c.Key(grade, level)
	log := logging.FromContext(ctx)

	raw, ok, err := c.kv.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("reading question cache failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var e Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding malformed question cache entry")
		return nil, false
	}
	if !clock.IsToday(e.Date, c.clock.Now()) {
		log.Debug().Str("key", key).Str("date", e.Date).Msg("question cache entry is stale")
		return nil, false
	}
	if !complete(e.Questions) {
		log.Warn().Str("key", key).Msg("discarding incomplete question cache entry")
		return nil, false
	}
	return e.Questions, true
}

// Put stores pool stamped with today's date, replacing any previous entry
// for the key.
func (c *Cache) Put(ctx context.Context, grade int, level difficulty.Level, pool question.Pool) error {
	data, err := json.Marshal(Entry{Date: clock.Today(c.clock), Questions: pool})
	if err != nil {
		return fmt.Errorf("encode question cache entry: %w", err)
	}
	if err := c.kv.Set(ctx, c.Key(grade, level), string(data)); err != nil {
		return fmt.Errorf("write question cache: %w", err)
	}
	return nil
}

// Purge deletes every entry under the cache prefix, all versions included.
func (c *Cache) Purge(ctx context.Context) (int, error) {
	keys, err := c.kv.Keys(ctx, Prefix+"-")
	if err != nil {
		return 0, fmt.Errorf("list question cache keys: %w", err)
	}
	n := 0
	for _, k := range keys {
		if !strings.HasPrefix(k, Prefix+"-") {
			continue
		}
		if err := c.kv.Delete(ctx, k); err != nil {
			return n, fmt.Errorf("delete %s: %w", k, err)
		}
		n++
	}
	return n, nil
}

// complete reports whether every category has questions.
func complete(p question.Pool) bool {
	for _, cat := range question.Categories() {
		if len(p.Get(cat)) == 0 {
			return false
		}
	}
	return true
}
