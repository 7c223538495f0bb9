package store

import (
	"database/sql"
	"errors"
	"strings"

	"vesta/config"
	"vesta/core/utils"

	_ "modernc.org/sqlite"
)

// NewDB opens the configured database. SQLite is the default backend for a
// single-workstation install; Postgres is available for shared deployments.
func NewDB(cfg *config.AppConfig, logger *utils.Logger) (*sql.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	if driver == "" {
		if strings.TrimSpace(cfg.DBURL) != "" {
			driver = "postgres"
		} else {
			driver = "sqlite"
		}
	}
	switch driver {
	case "postgres", "pg":
		if strings.TrimSpace(cfg.DBURL) == "" {
			return nil, errors.New("VESTA_DB_URL is required for postgres")
		}
		db, err := sql.Open(postgresDriverName, cfg.DBURL)
		if err != nil {
			if logger != nil {
				logger.Errorf("db open failed: %v", err)
			}
			return nil, err
		}
		if logger != nil {
			logger.Printf("db open postgres")
		}
		return db, nil
	case "sqlite":
		if strings.TrimSpace(cfg.DBPath) == "" {
			return nil, errors.New("DBPath is required for sqlite")
		}
		db, err := sql.Open("sqlite", cfg.DBPath)
		if err != nil {
			if logger != nil {
				logger.Errorf("db open failed: %v", err)
			}
			return nil, err
		}
		// modernc sqlite serializes writes; a single connection avoids
		// SQLITE_BUSY under concurrent handlers.
		db.SetMaxOpenConns(1)
		if logger != nil {
			logger.Printf("db open sqlite path=%s", cfg.DBPath)
		}
		return db, nil
	default:
		return nil, errors.New("unsupported db driver: " + driver)
	}
}
