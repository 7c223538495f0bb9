package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	defaultConfigPath = "config/app.yaml"
	envPrefix         = "VESTA_"
)

func Load() (*AppConfig, error) {
	cfg := &AppConfig{}
	cfgPath := resolveConfigPath()
	if st, err := os.Stat(cfgPath); err == nil && !st.IsDir() {
		if err := cleanenv.ReadConfig(cfgPath, cfg); err != nil {
			return nil, err
		}
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	applyEnvAliases(cfg)
	normalizeConfig(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvAliases(cfg *AppConfig) {
	if cfg == nil {
		return
	}
	if v := getEnv("PEPPER", envPrefix+"PEPPER"); v != "" {
		cfg.Pepper = strings.TrimSpace(v)
	}
	if v := getEnv("ENV", "APP_ENV"); v != "" {
		cfg.AppEnv = strings.TrimSpace(v)
	}
	if v := getEnv("DB_DRIVER", envPrefix+"DB_DRIVER"); v != "" {
		cfg.DBDriver = strings.ToLower(strings.TrimSpace(v))
	}
	if v := getEnv("DB_URL", envPrefix+"DB_URL"); v != "" {
		cfg.DBURL = strings.TrimSpace(v)
	}
	if v := getEnv("DB_PATH", envPrefix+"DB_PATH"); v != "" {
		cfg.DBPath = strings.TrimSpace(v)
	}
	if v := getEnv("PORT", envPrefix+"PORT"); v != "" {
		cfg.ListenAddr = listenAddrWithPort(cfg.ListenAddr, v)
	}
}

func normalizeConfig(cfg *AppConfig) {
	if cfg == nil {
		return
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	cfg.DBURL = strings.TrimSpace(cfg.DBURL)
	cfg.DBPath = strings.TrimSpace(cfg.DBPath)
	cfg.ListenAddr = strings.TrimSpace(cfg.ListenAddr)
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	cfg.Pepper = strings.TrimSpace(cfg.Pepper)
	cfg.Knowledge.RefreshSpec = strings.TrimSpace(cfg.Knowledge.RefreshSpec)
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = "127.0.0.1:8080"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "vesta.db"
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	if cfg.Analysis.StepInterval <= 0 {
		cfg.Analysis.StepInterval = 800 * time.Millisecond
	}
	if cfg.Analysis.ImproveInterval <= 0 {
		cfg.Analysis.ImproveInterval = 700 * time.Millisecond
	}
	if cfg.Analysis.EngineLatency < 0 {
		cfg.Analysis.EngineLatency = 0
	}
	if cfg.Tour.WelcomeDelay <= 0 {
		cfg.Tour.WelcomeDelay = 500 * time.Millisecond
	}
	if cfg.Knowledge.RefreshSpec == "" {
		cfg.Knowledge.RefreshSpec = "@every 1m"
	}
	if cfg.Knowledge.CrawlDelay <= 0 {
		cfg.Knowledge.CrawlDelay = 2500 * time.Millisecond
	}
}

func getEnv(keys ...string) string {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	return ""
}

func resolveConfigPath() string {
	if v := getEnv("APP_CONFIG", envPrefix+"APP_CONFIG"); v != "" {
		return strings.TrimSpace(v)
	}
	return defaultConfigPath
}

func listenAddrWithPort(currentAddr, portRaw string) string {
	port := strings.TrimSpace(portRaw)
	if port == "" {
		return currentAddr
	}
	if _, err := strconv.Atoi(port); err != nil {
		return currentAddr
	}
	host := "127.0.0.1"
	parts := strings.Split(strings.TrimSpace(currentAddr), ":")
	if len(parts) > 1 {
		host = strings.Join(parts[:len(parts)-1], ":")
	}
	if host == "" {
		host = "127.0.0.1"
	}
	return host + ":" + port
}
