package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// InitPostgres opens the sqlx pool used for health checks and raw reporting queries.
// Postgres may still be starting when the service boots, so it retries briefly.
func InitPostgres(dsn string) (*sqlx.DB, error) {
	var err error

	for i := 0; i < 10; i++ {
		conn, connErr := sqlx.Connect("postgres", dsn)
		if connErr == nil {
			return conn, nil
		}
		err = connErr
		time.Sleep(500 * time.Millisecond)
	}
	return nil, fmt.Errorf("failed to connect to postgres: %w", err)
}
