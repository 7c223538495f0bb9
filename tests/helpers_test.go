package tests

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"vesta/config"
	"vesta/core/store"
	"vesta/core/utils"
)

func setupDB(t *testing.T) (*config.AppConfig, *sql.DB, *utils.Logger) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.AppConfig{
		DBDriver:   "sqlite",
		DBPath:     filepath.Join(dir, "test.db"),
		Pepper:     "pepper",
		SessionTTL: time.Hour,
		Analysis: config.AnalysisConfig{
			StepInterval:    time.Millisecond,
			ImproveInterval: time.Millisecond,
			EngineLatency:   25 * time.Millisecond,
		},
		Tour: config.TourConfig{WelcomeDelay: 5 * time.Millisecond},
	}
	logger := utils.NewLogger()
	db, err := store.NewDB(cfg, logger)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.ApplyMigrations(context.Background(), db, cfg, logger); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return cfg, db, logger
}

func createUser(t *testing.T, db *sql.DB, name, email string) *store.User {
	t.Helper()
	u := &store.User{Name: name, Email: email, PasswordHash: "hash", Salt: "salt"}
	if err := store.NewUsersStore(db).Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}
