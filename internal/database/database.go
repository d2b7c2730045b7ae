// Package database opens the sqlite store backing the sales report
// mirror.
package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Connect opens the sqlite database at dsn. The mirror is rebuilt from
// the flat files on demand, so a single connection is enough and keeps
// the driver serialized.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open report database %s: %w", dsn, err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
