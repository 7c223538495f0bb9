package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"vesta/config"
	"vesta/core/utils"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ApplyMigrations brings the schema up to date. The migration files are
// written in the portable subset both backends accept.
func ApplyMigrations(ctx context.Context, db *sql.DB, cfg *config.AppConfig, logger *utils.Logger) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	dialect := "sqlite3"
	driver := ""
	if cfg != nil {
		driver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
		if driver == "" && strings.TrimSpace(cfg.DBURL) != "" {
			driver = "postgres"
		}
	}
	if driver == "postgres" || driver == "pg" {
		dialect = "postgres"
	}
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	goose.SetBaseFS(migrationsFS)
	if logger != nil {
		logger.Printf("applying migrations dialect=%s", dialect)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return err
	}
	if logger != nil {
		logger.Printf("migrations applied")
	}
	return nil
}
