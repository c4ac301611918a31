package repositories

import (
	"database/sql"

	intdb "travelapp/internal/db"
)

// base binds a repository to the pooled store and, optionally, to an open transaction.
type base struct {
	Store *intdb.Store
	Tx    *sql.Tx
}

func (b base) q() intdb.Querier {
	if b.Tx != nil {
		return b.Tx
	}
	return b.Store.DB
}

func (b base) rebind(query string) string {
	return b.Store.Rebind(query)
}

func nullInt(v int64) any {
	if v <= 0 {
		return nil
	}
	return v
}
