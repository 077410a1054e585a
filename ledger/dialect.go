package ledger

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect names a supported database.
type Dialect string

// Supported dialects.
const (
	SQLite   Dialect = "sqlite"
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
)

// ParseDialect returns the dialect named by s. Driver names with a known
// dialect prefix ("sqlite3", "postgresql") are accepted.
func ParseDialect(s string) (Dialect, error) {
	for _, d := range []Dialect{SQLite, MySQL, Postgres} {
		if strings.HasPrefix(strings.ToLower(s), string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("ledger: unsupported dialect %q", s)
}

// driverName is the database/sql driver registered for the dialect.
func (d Dialect) driverName() string {
	return string(d)
}

// normalizeDSN validates dsn for the dialect. MySQL DSNs are parsed by the
// driver and Postgres URLs are converted to key/value connection strings.
func (d Dialect) normalizeDSN(dsn string) (string, error) {
	switch d {
	case MySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "", fmt.Errorf("ledger: parse mysql dsn: %w", err)
		}
		return cfg.FormatDSN(), nil
	case Postgres:
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			conn, err := pq.ParseURL(dsn)
			if err != nil {
				return "", fmt.Errorf("ledger: parse postgres url: %w", err)
			}
			return conn, nil
		}
		return dsn, nil
	default:
		if strings.HasPrefix(dsn, "file:") {
			if _, err := url.Parse(dsn); err != nil {
				return "", fmt.Errorf("ledger: parse sqlite dsn: %w", err)
			}
		}
		return dsn, nil
	}
}

// quote quotes an identifier.
func (d Dialect) quote(ident string) string {
	if d == MySQL {
		return "`" + ident + "`"
	}
	return `"` + ident + `"`
}

// rebind rewrites "?" placeholders to the "$n" form Postgres expects.
func (d Dialect) rebind(query string) string {
	if d != Postgres {
		return query
	}
	var (
		b strings.Builder
		n int
	)
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// upsert returns the statement inserting a row of cols into table, or
// updating every column but the first on a key conflict.
func (d Dialect) upsert(table string, cols ...string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = d.quote(c)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES (%s) ", d.quote(table), strings.Join(quoted, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))
	sets := make([]string, 0, len(cols)-1)
	for _, c := range quoted[1:] {
		if d == MySQL {
			sets = append(sets, fmt.Sprintf("%s = VALUES(%s)", c, c))
		} else {
			sets = append(sets, fmt.Sprintf("%s = excluded.%s", c, c))
		}
	}
	if d == MySQL {
		b.WriteString("ON DUPLICATE KEY UPDATE ")
	} else {
		fmt.Fprintf(&b, "ON CONFLICT (%s) DO UPDATE SET ", quoted[0])
	}
	b.WriteString(strings.Join(sets, ", "))
	return d.rebind(b.String())
}

// validIdentifierRe validates table name prefixes.
var validIdentifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func isValidIdentifier(s string) bool {
	return s != "" && len(s) <= 48 && validIdentifierRe.MatchString(s)
}
