// Package ledger stores what every generation run wrote in a SQL database.
//
// The ledger implements gen.Ledger: the writer asks it for the checksum of
// a file before overwriting it, and records the checksum afterwards, so
// later runs leave unchanged files alone. Finished runs are recorded with
// their metrics.
//
// # Dialects
//
// The supported dialects and the drivers they use:
//
//   - SQLite: modernc.org/sqlite (driver name "sqlite")
//   - MySQL: github.com/go-sql-driver/mysql
//   - Postgres: github.com/lib/pq
//
// # Usage
//
//	l, err := ledger.Open(ctx, ledger.SQLite, "file:.teogen/ledger.db")
//	if err != nil {
//	    return err
//	}
//	defer l.Close()
//	report, err := gen.Generate(ctx, ns, gen.WithLedger(l), ...)
//	_ = l.RecordRun(ctx, report, err)
//
// Open migrates the ledger tables with Atlas. New wraps an existing
// connection without migrating.
package ledger
