package config

import (
	"fmt"
	"strings"
)

// defaultPepper is only acceptable outside production.
const defaultPepper = "vQ3rL0kePb8xWJm5uH2ZawT-nm7wSlS8La8DxPWFAlg"

func Validate(cfg *AppConfig) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	driver := strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	switch driver {
	case "", "sqlite":
		if strings.TrimSpace(cfg.DBPath) == "" {
			return fmt.Errorf("db_path is required for sqlite")
		}
	case "postgres", "pg":
		if strings.TrimSpace(cfg.DBURL) == "" {
			return fmt.Errorf("db_url is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported db_driver: %s", driver)
	}
	if cfg.Pepper == "" {
		if cfg.AppEnv == "prod" || cfg.AppEnv == "production" {
			return fmt.Errorf("pepper must be set in production")
		}
		cfg.Pepper = defaultPepper
	}
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	return nil
}
