// Package migrator applies goose migrations embedded by each bounded context.
package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	goosedb "github.com/pressly/goose/v3/database"
)

// RunMigrations applies the pending migrations in files to dbURL and returns
// the versions it applied, oldest first. table is the goose version table;
// each bounded context keeps its own so their histories stay independent.
func RunMigrations(ctx context.Context, dbURL, table string, files fs.FS) ([]int64, error) {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close() //nolint:errcheck

	store, err := goosedb.NewStore(goosedb.DialectPostgres, table)
	if err != nil {
		return nil, fmt.Errorf("goose store %s: %w", table, err)
	}
	provider, err := goose.NewProvider("", db, files, goose.WithStore(store))
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("up migrations: %w", err)
	}
	applied := make([]int64, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Version)
	}
	return applied, nil
}
