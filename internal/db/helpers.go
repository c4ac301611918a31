package db

import (
	"context"
	"database/sql"
)

// NullIfEmpty stores optional strings as NULL instead of "".
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// HasTable reports whether table exists in the current schema. Lookup
// errors count as "missing" so callers can degrade instead of failing.
func (s *Store) HasTable(ctx context.Context, table string) bool {
	var name sql.NullString
	err := s.DB.QueryRowContext(ctx, s.Rebind(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = `+s.Dialect.CurrentSchema()+`
		  AND table_name = ?
		LIMIT 1
	`), table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}
