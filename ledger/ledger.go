package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/syssam/teogen/compiler/gen"
)

// Ledger is a gen.Ledger backed by a SQL database.
type Ledger struct {
	db      *sql.DB
	dialect Dialect
	prefix  string
	log     zerolog.Logger
	now     func() time.Time
}

var _ gen.Ledger = (*Ledger)(nil)

// Option configures a Ledger.
type Option func(*Ledger) error

// WithTablePrefix sets the prefix of the ledger tables. Defaults to "teogen".
func WithTablePrefix(prefix string) Option {
	return func(l *Ledger) error {
		if !isValidIdentifier(prefix) {
			return gen.NewConfigError("TablePrefix", prefix, "must be a plain SQL identifier")
		}
		l.prefix = prefix
		return nil
	}
}

// WithLogger sets the logger of the ledger.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Ledger) error {
		l.log = log
		return nil
	}
}

// withClock replaces the clock in tests.
func withClock(now func() time.Time) Option {
	return func(l *Ledger) error {
		l.now = now
		return nil
	}
}

// New wraps db. The tables are expected to exist; see Migrate.
func New(db *sql.DB, d Dialect, opts ...Option) (*Ledger, error) {
	if db == nil {
		return nil, gen.NewConfigError("DB", nil, "database cannot be nil")
	}
	parsed, err := ParseDialect(string(d))
	if err != nil {
		return nil, gen.NewConfigError("Dialect", string(d), err.Error())
	}
	l := &Ledger{
		db:      db,
		dialect: parsed,
		prefix:  "teogen",
		log:     zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Open connects to the database and migrates the ledger tables.
func Open(ctx context.Context, d Dialect, dsn string, opts ...Option) (*Ledger, error) {
	d, err := ParseDialect(string(d))
	if err != nil {
		return nil, gen.NewConfigError("Dialect", nil, err.Error())
	}
	if dsn, err = d.normalizeDSN(dsn); err != nil {
		return nil, err
	}
	db, err := sql.Open(d.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("ledger: open %s: %w", d, err)
	}
	if d == SQLite {
		// Every connection to an in-memory database is a new database.
		db.SetMaxOpenConns(1)
	}
	l, err := New(db, d, opts...)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}
	if err := l.Migrate(ctx); err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return l, nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error { return l.db.Close() }

// Dialect returns the dialect of the ledger.
func (l *Ledger) Dialect() Dialect { return l.dialect }

func (l *Ledger) filesTable() string { return l.prefix + "_files" }
func (l *Ledger) runsTable() string  { return l.prefix + "_runs" }

// Checksum implements gen.Ledger.
func (l *Ledger) Checksum(ctx context.Context, path string) (string, bool, error) {
	query := l.dialect.rebind(fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?",
		l.dialect.quote("checksum"), l.dialect.quote(l.filesTable()), l.dialect.quote("path")))
	var sum string
	err := l.db.QueryRowContext(ctx, query, path).Scan(&sum)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("ledger: checksum of %s: %w", path, err)
	}
	return sum, true, nil
}

// Record implements gen.Ledger.
func (l *Ledger) Record(ctx context.Context, run, target, path, sum string) error {
	query := l.dialect.upsert(l.filesTable(), "path", "target", "checksum", "run", "updated_at")
	if _, err := l.db.ExecContext(ctx, query, path, target, sum, run, l.now().Unix()); err != nil {
		return fmt.Errorf("ledger: record %s: %w", path, err)
	}
	l.log.Debug().Str("run", run).Str("target", target).Str("path", path).Msg("recorded")
	return nil
}

// RecordRun stores the outcome of a finished run. runErr is the error the
// run returned, if any.
func (l *Ledger) RecordRun(ctx context.Context, r *gen.Report, runErr error) error {
	if r == nil {
		return gen.NewConfigError("Report", nil, "report cannot be nil")
	}
	var msg sql.NullString
	if runErr != nil {
		msg = sql.NullString{String: runErr.Error(), Valid: true}
	}
	query := l.dialect.upsert(l.runsTable(),
		"id", "targets", "files_written", "files_unchanged", "files_skipped", "files_patched", "took_ms", "error", "finished_at")
	_, err := l.db.ExecContext(ctx, query,
		r.Run,
		strings.Join(r.Targets, ","),
		r.Metrics.FilesWritten,
		r.Metrics.FilesUnchanged,
		r.Metrics.FilesSkipped,
		r.Metrics.FilesPatched,
		r.Took.Milliseconds(),
		msg,
		l.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("ledger: record run %s: %w", r.Run, err)
	}
	return nil
}

// Entry is a recorded file.
type Entry struct {
	Path      string
	Target    string
	Checksum  string
	Run       string
	UpdatedAt time.Time
}

// Files returns the recorded files of target, or of every target when
// target is empty, ordered by path.
func (l *Ledger) Files(ctx context.Context, target string) ([]*Entry, error) {
	q := l.dialect.quote
	query := fmt.Sprintf("SELECT %s, %s, %s, %s, %s FROM %s",
		q("path"), q("target"), q("checksum"), q("run"), q("updated_at"), q(l.filesTable()))
	var args []any
	if target != "" {
		query += fmt.Sprintf(" WHERE %s = ?", q("target"))
		args = append(args, target)
	}
	query = l.dialect.rebind(query + fmt.Sprintf(" ORDER BY %s", q("path")))
	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ledger: list files: %w", err)
	}
	defer rows.Close()
	var entries []*Entry
	for rows.Next() {
		var (
			e       Entry
			updated int64
		)
		if err := rows.Scan(&e.Path, &e.Target, &e.Checksum, &e.Run, &updated); err != nil {
			return nil, fmt.Errorf("ledger: scan file: %w", err)
		}
		e.UpdatedAt = time.Unix(updated, 0).UTC()
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Forget removes the records of paths, so the next run rewrites them.
func (l *Ledger) Forget(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	query := l.dialect.rebind(fmt.Sprintf("DELETE FROM %s WHERE %s IN (%s)",
		l.dialect.quote(l.filesTable()), l.dialect.quote("path"),
		strings.TrimSuffix(strings.Repeat("?, ", len(paths)), ", ")))
	args := make([]any, len(paths))
	for i, p := range paths {
		args[i] = p
	}
	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("ledger: forget: %w", err)
	}
	return nil
}
