package config

import (
	"context"
	"fmt"

	intdb "travelapp/internal/db"
)

// OpenStore connects to the configured backend once per process.
func OpenStore(ctx context.Context, env Env) (*intdb.Store, error) {
	dialect, err := intdb.DialectFor(env.DBDriver)
	if err != nil {
		return nil, err
	}

	store, err := intdb.Open(ctx, dialect, intdb.ConnConfig{
		Host:     env.DBHost,
		Port:     env.DBPort,
		User:     env.DBUser,
		Password: env.DBPassword,
		Name:     env.DBName,
	})
	if err != nil {
		return nil, err
	}

	if env.DBAutoMigrate {
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return store, nil
}
