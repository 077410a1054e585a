package ledger

import (
	"context"
	"fmt"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"
)

// Migrate creates the ledger tables, or alters them to the current layout.
// Tables other than the ledger's are never inspected or changed.
func (l *Ledger) Migrate(ctx context.Context) error {
	drv, err := l.atlasDriver()
	if err != nil {
		return err
	}
	tables := l.tables()
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	current, err := drv.InspectSchema(ctx, "", &schema.InspectOptions{Tables: names})
	if err != nil {
		return fmt.Errorf("ledger: inspect schema: %w", err)
	}
	desired := schema.New(current.Name).AddTables(tables...)
	changes, err := drv.SchemaDiff(current, desired)
	if err != nil {
		return fmt.Errorf("ledger: diff schema: %w", err)
	}
	if len(changes) == 0 {
		l.log.Debug().Msg("ledger schema is up to date")
		return nil
	}
	if err := drv.ApplyChanges(ctx, changes); err != nil {
		return fmt.Errorf("ledger: apply %d changes: %w", len(changes), err)
	}
	l.log.Info().Int("changes", len(changes)).Msg("ledger schema migrated")
	return nil
}

func (l *Ledger) atlasDriver() (migrate.Driver, error) {
	var (
		drv migrate.Driver
		err error
	)
	switch l.dialect {
	case SQLite:
		drv, err = sqlite.Open(l.db)
	case MySQL:
		drv, err = mysql.Open(l.db)
	case Postgres:
		drv, err = postgres.Open(l.db)
	default:
		return nil, fmt.Errorf("ledger: unsupported dialect %q", l.dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("ledger: open %s migration driver: %w", l.dialect, err)
	}
	return drv, nil
}

// columnTypes holds the column types of one dialect.
type columnTypes struct {
	key    func(size int) schema.Type
	text   schema.Type
	bigint schema.Type
}

func (l *Ledger) columnTypes() columnTypes {
	switch l.dialect {
	case MySQL:
		return columnTypes{
			key:    func(size int) schema.Type { return &schema.StringType{T: "varchar", Size: size} },
			text:   &schema.StringType{T: "text"},
			bigint: &schema.IntegerType{T: "bigint"},
		}
	case Postgres:
		return columnTypes{
			key:    func(size int) schema.Type { return &schema.StringType{T: "character varying", Size: size} },
			text:   &schema.StringType{T: "text"},
			bigint: &schema.IntegerType{T: "bigint"},
		}
	default:
		return columnTypes{
			key:    func(int) schema.Type { return &schema.StringType{T: "text"} },
			text:   &schema.StringType{T: "text"},
			bigint: &schema.IntegerType{T: "integer"},
		}
	}
}

// tables describes the ledger tables.
func (l *Ledger) tables() []*schema.Table {
	ct := l.columnTypes()
	column := func(name string, t schema.Type, null bool) *schema.Column {
		return &schema.Column{Name: name, Type: &schema.ColumnType{Type: t, Null: null}}
	}

	path := column("path", ct.key(512), false)
	files := schema.NewTable(l.filesTable()).AddColumns(
		path,
		column("target", ct.key(64), false),
		column("checksum", ct.key(64), false),
		column("run", ct.key(36), false),
		column("updated_at", ct.bigint, false),
	)
	files.SetPrimaryKey(schema.NewPrimaryKey(path))

	id := column("id", ct.key(36), false)
	runs := schema.NewTable(l.runsTable()).AddColumns(
		id,
		column("targets", ct.text, false),
		column("files_written", ct.bigint, false),
		column("files_unchanged", ct.bigint, false),
		column("files_skipped", ct.bigint, false),
		column("files_patched", ct.bigint, false),
		column("took_ms", ct.bigint, false),
		column("error", ct.text, true),
		column("finished_at", ct.bigint, false),
	)
	runs.SetPrimaryKey(schema.NewPrimaryKey(id))
	return []*schema.Table{files, runs}
}
