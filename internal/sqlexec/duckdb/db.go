// Package duckdb opens an embedded engine for the dev and test
// profiles, where running a separate database server is not worth the
// ceremony.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2"
)

type Config struct {
	// Path to the database file; empty means in-memory.
	Path string
	// ReadOnly opens the file in read-only access mode. Ignored for
	// in-memory databases, which hold no data to protect.
	ReadOnly bool
}

func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	dsn := cfg.Path
	if cfg.ReadOnly && cfg.Path != "" {
		separator := "?"
		if strings.Contains(dsn, "?") {
			separator = "&"
		}
		dsn += separator + "access_mode=read_only"
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}

	return db, nil
}
