package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"

	"vesta/config"
	"vesta/core/auth"
	"vesta/core/store"
	"vesta/core/utils"
)

// Run dispatches maintenance subcommands. The server binary falls through
// here whenever it is started with arguments.
func Run() {
	createUserCmd := flag.NewFlagSet("create-user", flag.ExitOnError)
	name := createUserCmd.String("n", "", "full name")
	email := createUserCmd.String("e", "", "email")
	password := createUserCmd.String("p", "", "password")

	if len(os.Args) < 2 {
		fmt.Println("commands: create-user, list-users")
		return
	}

	switch os.Args[1] {
	case "create-user":
		_ = createUserCmd.Parse(os.Args[2:])
		cfg, logger, db := open()
		defer db.Close()
		addr := strings.ToLower(strings.TrimSpace(*email))
		if err := utils.ValidateEmail(addr); err != nil {
			logger.Fatalf("invalid email: %v", err)
		}
		if err := utils.ValidatePassword(*password); err != nil {
			logger.Fatalf("invalid password: %v", err)
		}
		ph := auth.MustHashPassword(*password, cfg.Pepper)
		user := &store.User{Name: strings.TrimSpace(*name), Email: addr, PasswordHash: ph.Hash, Salt: ph.Salt}
		if user.Name == "" {
			user.Name = addr
		}
		if err := store.NewUsersStore(db).Create(context.Background(), user); err != nil {
			logger.Fatalf("create: %v", err)
		}
		fmt.Println("user created")
	case "list-users":
		_, logger, db := open()
		defer db.Close()
		users, err := store.NewUsersStore(db).List(context.Background())
		if err != nil {
			logger.Fatalf("list: %v", err)
		}
		for _, u := range users {
			fmt.Printf("%s\t%s\t%s\n", u.ID, u.Email, u.Name)
		}
	default:
		fmt.Println("unknown command")
	}
}

func open() (*config.AppConfig, *utils.Logger, *sql.DB) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}
	logger := utils.NewLogger()
	db, err := store.NewDB(cfg, logger)
	if err != nil {
		logger.Fatalf("db: %v", err)
	}
	if err := store.ApplyMigrations(context.Background(), db, cfg, logger); err != nil {
		logger.Fatalf("migrations: %v", err)
	}
	return cfg, logger, db
}
