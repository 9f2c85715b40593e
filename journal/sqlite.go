package journal

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
)

// SQLite stores entries in a single-file database at path.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// Record inserts one entry, assigning an ID when the caller left it empty.
func (j *SQLite) Record(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = ulid.Make().String()
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO entries
		(id, time, kind, scenario, net_worth, risk_score, confidence, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Time, e.Kind, e.Scenario,
		e.NetWorth, e.RiskScore, e.Confidence, e.Summary,
	)
	return err
}

// RecordAll inserts entries one by one and stops at the first failure.
func (j *SQLite) RecordAll(ctx context.Context, entries []Entry) error {
	for _, e := range entries {
		if err := j.Record(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// List returns up to limit entries, newest first. A limit below one means
// no limit.
func (j *SQLite) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit < 1 {
		limit = -1
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, time, kind, scenario, net_worth, risk_score, confidence, summary
		FROM entries ORDER BY time DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Time, &e.Kind, &e.Scenario,
			&e.NetWorth, &e.RiskScore, &e.Confidence, &e.Summary); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
