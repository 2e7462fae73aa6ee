package store

import (
	"context"
	stdsql "database/sql"
	"fmt"
	"sync"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"
)

const sequenceTable = "global_sequence"

// sequenceCounter hands out the sequence numbers shared by every event
// table, so LLM requests and session events interleave in one order.
type sequenceCounter struct {
	mu  sync.Mutex
	drv *sql.Driver
}

func newSequenceCounter(ctx context.Context, drv *sql.Driver) (*sequenceCounter, error) {
	query, args := sql.Dialect(dialect.SQLite).
		Insert(sequenceTable).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(sql.ConflictColumns("id"), sql.DoNothing()).
		Query()
	var res stdsql.Result
	if err := drv.Exec(ctx, query, args, &res); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{drv: drv}, nil
}

// Next reserves and returns the next sequence number.
func (c *sequenceCounter) Next(ctx context.Context) (seq int64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.drv.Tx(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	b := sql.Dialect(dialect.SQLite)
	query, args := b.Select("next_val").From(sql.Table(sequenceTable)).Where(sql.EQ("id", 1)).Query()
	rows := &sql.Rows{}
	if err = tx.Query(ctx, query, args, rows); err != nil {
		return 0, fmt.Errorf("read sequence: %w", err)
	}
	if !rows.Next() {
		_ = rows.Close()
		return 0, fmt.Errorf("read sequence: counter row missing")
	}
	err = rows.Scan(&seq)
	_ = rows.Close()
	if err != nil {
		return 0, fmt.Errorf("scan sequence: %w", err)
	}

	query, args = b.Update(sequenceTable).Add("next_val", 1).Where(sql.EQ("id", 1)).Query()
	var res stdsql.Result
	if err = tx.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("advance sequence: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit sequence: %w", err)
	}
	return seq, nil
}
