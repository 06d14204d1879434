package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

// Storage persists events, reminders and guild settings. Every write is a
// single transaction.
type Storage struct {
	db *bun.DB
}

func New(db *bun.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) DB() *bun.DB {
	return s.db
}

// Open picks the dialect from the DSN: postgres:// and postgresql:// go through
// lib/pq, anything else is handed to the sqlite shim.
func Open(dsn string) (*bun.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("Open: dsn is blank")
	}

	var db *bun.DB
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		sqldb, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("Open: can't open postgres database: %w", err)
		}
		sqldb.SetMaxIdleConns(8)
		db = bun.NewDB(sqldb, pgdialect.New())
	default:
		sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
		if err != nil {
			return nil, fmt.Errorf("Open: can't open sqlite database: %w", err)
		}
		// sqlite has a single writer; one connection serializes the schedulers
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	}

	db.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithEnabled(false),
		bundebug.FromEnv("BUNDEBUG"),
	))
	return db, nil
}
