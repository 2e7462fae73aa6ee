package store

import (
	"context"
	stdsql "database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"
)

// KV is a string-keyed blob store. Profiles and question caches are stored
// as JSON values.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists the keys starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// sqliteKV implements KV on the kv table.
type sqliteKV struct {
	drv dialect.ExecQuerier
}

func (k *sqliteKV) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := sql.Dialect(dialect.SQLite).
		Select("value").
		From(sql.Table("kv")).
		Where(sql.EQ("key", key)).
		Query()

	rows := &sql.Rows{}
	if err := k.drv.Query(ctx, query, args, rows); err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return "", false, rows.Err()
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return "", false, fmt.Errorf("scan %q: %w", key, err)
	}
	return value, true, nil
}

func (k *sqliteKV) Set(ctx context.Context, key, value string) error {
	query, args := sql.Dialect(dialect.SQLite).
		Insert("kv").
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UnixMilli()).
		OnConflict(
			sql.ConflictColumns("key"),
			sql.ResolveWithNewValues(),
		).
		Query()

	var res stdsql.Result
	if err := k.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (k *sqliteKV) Delete(ctx context.Context, key string) error {
	query, args := sql.Dialect(dialect.SQLite).
		Delete("kv").
		Where(sql.EQ("key", key)).
		Query()

	var res stdsql.Result
	if err := k.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (k *sqliteKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	query, args := sql.Dialect(dialect.SQLite).
		Select("key").
		From(sql.Table("kv")).
		Where(sql.HasPrefix("key", prefix)).
		OrderBy("key").
		Query()

	rows := &sql.Rows{}
	if err := k.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// MemoryKV is an in-process KV used by tests and ephemeral runs.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryKV) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
