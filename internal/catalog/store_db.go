package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"              // registers the "sqlite" driver
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second

	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"

	DefaultTable = "apis"
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLStore reads the catalog from a table with the columns
// position, id, name, category, description, auth, url. Rows are returned
// in position order, which is the catalog's insertion order.
type SQLStore struct {
	db     *sql.DB
	table  string
	source string
}

func NewSQLStore(db *sql.DB, table, source string) (*SQLStore, error) {
	if table == "" {
		table = DefaultTable
	}
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &SQLStore{db: db, table: table, source: source}, nil
}

// OpenSQLStore opens a database with one of the registered drivers
// (DriverPostgres or DriverSQLite).
func OpenSQLStore(driver, dsn, table string) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrSourceUnavailable, driver, err)
	}
	s, err := NewSQLStore(db, table, "")
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.source = driver + ":" + s.table
	return s, nil
}

func (s *SQLStore) Close() error { return s.db.Close() }

func (s *SQLStore) Ping(ctx context.Context) error {
	err := withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return nil
}

func (s *SQLStore) Load(ctx context.Context) (*Snapshot, error) {
	var out []Entry

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		//nolint:gosec // table name is checked against tableNameRe
		rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
			SELECT id, name, category, description, auth, url
			FROM %s
			ORDER BY position ASC, id ASC
		`, s.table))
		if err != nil {
			return fmt.Errorf("%w: query %s: %v", ErrSourceUnavailable, s.table, err)
		}
		defer rows.Close()

		out = make([]Entry, 0, 64)
		for rows.Next() {
			var (
				rawID any
				e     Entry
				desc  sql.NullString
				auth  sql.NullString
			)
			if err := rows.Scan(&rawID, &e.Name, &e.Category, &desc, &auth, &e.URL); err != nil {
				return fmt.Errorf("%w: scan row %d: %v", ErrMalformedData, len(out), err)
			}
			id, err := parseID(rawID)
			if err != nil {
				return fmt.Errorf("%w: row %d: %v", ErrMalformedData, len(out), err)
			}
			e.ID = id
			e.Description = desc.String
			e.Auth = auth.String
			out = append(out, e)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return NewSnapshot(out, s.source, "")
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
