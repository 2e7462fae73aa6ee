package store

import (
	"context"
	stdsql "database/sql"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql"
)

const sessionEventsTable = "session_events"

var sessionEventColumns = []string{
	"id", "sequence", "timestamp", "session_id", "mode", "action",
	"questions", "correct", "duration_secs", "achievements",
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := sql.Dialect(dialect.SQLite).
		Insert(sessionEventsTable).
		Columns(sessionEventColumns[1:]...).
		Values(
			seqNum,
			time.Now().UnixMilli(),
			data.SessionID,
			data.Mode,
			data.Action,
			data.Questions,
			data.Correct,
			data.DurationSecs,
			strings.Join(data.Achievements, ","),
		).
		Query()

	var res stdsql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	sel := sql.Dialect(dialect.SQLite).
		Select(sessionEventColumns...).
		From(sql.Table(sessionEventsTable)).
		OrderBy(sql.Desc("sequence"))
	if opts.After > 0 {
		sel.Where(sql.GT("sequence", opts.After))
	}
	if opts.Mode != "" {
		sel.Where(sql.EQ("mode", opts.Mode))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows := &sql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEvent
	for rows.Next() {
		var (
			e            SessionEvent
			ts           int64
			achievements string
		)
		err := rows.Scan(
			&e.ID, &e.Sequence, &ts, &e.SessionID, &e.Mode, &e.Action,
			&e.Questions, &e.Correct, &e.DurationSecs, &achievements,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		if achievements != "" {
			e.Achievements = strings.Split(achievements, ",")
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
