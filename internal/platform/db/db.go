package db

import (
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know the bindvar style of.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Open connects to the database and verifies the connection.
// Queries are written with '?' placeholders and rebound per driver.
func Open(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverSQLite, DriverPgx, DriverPostgres:
	default:
		return nil, fmt.Errorf("openDB: unsupported driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("openDB: open %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// A single writer avoids SQLITE_BUSY on the local cache file.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("openDB: verify %s connection: %w", driver, err)
	}

	return db, nil
}
