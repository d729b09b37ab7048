package migrations

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// IsRemote reports whether `dsn` names a libsql server rather than a local file.
func IsRemote(dsn string) bool {
	for _, scheme := range []string{"libsql://", "http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(dsn, scheme) {
			return true
		}
	}
	return false
}

// OpenDB opens a local sqlite file (or ":memory:") with modernc's driver, or
// a remote libsql database when `dsn` is a libsql/http(s)/ws(s) url.
func OpenDB(dsn string) (*sql.DB, error) {
	if IsRemote(dsn) {
		db, err := sql.Open("libsql", dsn)
		if err != nil {
			return nil, errors.Wrap(err, "open libsql db")
		}
		return db, nil
	}

	if dsn != ":memory:" {
		err := os.MkdirAll(filepath.Dir(dsn), 0777)
		if err != nil {
			return nil, errors.Wrap(err, "open db")
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open db")
	}

	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	if dsn != ":memory:" {
		_, err = db.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			return nil, errors.Wrap(err, "open db")
		}
	}
	return db, nil
}

// Apply runs every statement of `schema`. Statements are separated by ";"
// at the end of a line and are expected to be idempotent
// (CREATE ... IF NOT EXISTS).
func Apply(ctx context.Context, db *sql.DB, schema string) error {
	for _, stmt := range strings.Split(schema, ";\n") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		_, err := db.ExecContext(ctx, stmt)
		if err != nil {
			return errors.Wrapf(err, "apply schema statement %q", firstLine(stmt))
		}
	}
	return nil
}

func firstLine(stmt string) string {
	line, _, _ := strings.Cut(stmt, "\n")
	return line
}

// OpenAndMigrateDB opens the database at `dsn` and applies `schema` to it.
func OpenAndMigrateDB(ctx context.Context, schema, dsn string) (*sql.DB, error) {
	db, err := OpenDB(dsn)
	if err != nil {
		return nil, err
	}
	err = Apply(ctx, db, schema)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "open and migrate db")
	}
	return db, nil
}
