package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/puzzelhulp/woordzoeker-backend/config"
)

func NewConnection(cfg *config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)

	return db, nil
}

// EnsureSchema creates the stats table when it does not exist yet. The
// service is the table's only writer, so this stays out of a migration
// tool.
func EnsureSchema(db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS term_lookups (
  term         TEXT        NOT NULL,
  outcome      TEXT        NOT NULL,
  count        BIGINT      NOT NULL DEFAULT 0,
  last_seen_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  PRIMARY KEY (term, outcome)
)`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to ensure stats schema: %w", err)
	}
	return nil
}
