package bootstrap

import (
	"context"
	"database/sql"

	"vesta/config"
	"vesta/core/auth"
	"vesta/core/store"
	"vesta/core/utils"
)

const (
	defaultUserName  = "John Doe"
	defaultUserEmail = "john.doe@example.com"
	defaultPassword  = "password123"
)

var seedSourceURLs = []string{
	"https://www.bsp.gov.ph/Pages/Regulations/LawsAndIssuances.aspx",
	"https://www.privacy.gov.ph/data-privacy-act/",
}

// EnsureDefaultUser seeds the demo account so a fresh install can be logged
// into immediately.
func EnsureDefaultUser(ctx context.Context, db *sql.DB, cfg *config.AppConfig, logger *utils.Logger) error {
	us := store.NewUsersStore(db)
	existing, err := us.FindByEmail(ctx, defaultUserEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	ph := auth.MustHashPassword(defaultPassword, cfg.Pepper)
	u := &store.User{
		Name:         defaultUserName,
		Email:        defaultUserEmail,
		PasswordHash: ph.Hash,
		Salt:         ph.Salt,
	}
	if err := us.Create(ctx, u); err != nil {
		return err
	}
	if logger != nil {
		logger.Printf("default user created email=%s", defaultUserEmail)
	}
	return nil
}

// EnsureSeedSources populates the knowledge base with the two regulator
// sources every workspace starts from.
func EnsureSeedSources(ctx context.Context, db *sql.DB, logger *utils.Logger) error {
	ks := store.NewKnowledgeStore(db)
	existing, err := ks.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, url := range seedSourceURLs {
		src := &store.KnowledgeSource{URL: url, Status: store.SourceActive}
		if err := ks.Add(ctx, src); err != nil {
			return err
		}
	}
	if logger != nil {
		logger.Printf("seeded %d knowledge sources", len(seedSourceURLs))
	}
	return nil
}
