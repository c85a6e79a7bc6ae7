package bootstrap

import (
	"database/sql"
	"fmt"

	"github.com/puzzelhulp/woordzoeker-backend/config"
	"github.com/puzzelhulp/woordzoeker-backend/internal/storage/postgres"
)

// OpenStatsDB connects the optional lookup-stats database and makes sure
// its schema exists. Callers treat a nil *sql.DB as stats disabled.
func OpenStatsDB(cfg *config.Config) (*sql.DB, error) {
	if !cfg.StatsEnabled() {
		return nil, nil
	}

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("stats db connect: %w", err)
	}
	if err := postgres.EnsureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
