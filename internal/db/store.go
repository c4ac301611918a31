package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the process-wide pooled handle. It is built once at startup and
// passed to every repository.
type Store struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewStore(db *sql.DB, dialect Dialect) *Store {
	if dialect == nil {
		dialect = MySQL{}
	}
	return &Store{DB: db, Dialect: dialect}
}

// Open creates the pool and checks connectivity.
func Open(ctx context.Context, dialect Dialect, cfg ConnConfig) (*Store, error) {
	db, err := sql.Open(dialect.DriverName(), dialect.DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect.Name(), err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect.Name(), err)
	}
	return NewStore(db, dialect), nil
}

func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return fmt.Errorf("database not connected")
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.DB.PingContext(ctx)
}

func (s *Store) Rebind(query string) string {
	return s.Dialect.Rebind(query)
}

// InsertID runs an INSERT and returns the generated id.
func (s *Store) InsertID(ctx context.Context, q Querier, query string, args ...any) (int64, error) {
	if s.Dialect.UsesReturning() {
		var id int64
		err := q.QueryRowContext(ctx, s.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}
	res, err := q.ExecContext(ctx, s.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// WithTx runs fn inside a transaction. Commit on nil, rollback on error or panic.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) IsUniqueViolation(err error) bool {
	return err != nil && s.Dialect.IsUniqueViolation(err)
}
