package config

import "time"

type AppConfig struct {
	DBDriver   string        `yaml:"db_driver"`
	DBPath     string        `yaml:"db_path"`
	DBURL      string        `yaml:"db_url"`
	ListenAddr string        `yaml:"listen_addr"`
	SessionTTL time.Duration `yaml:"session_ttl"`
	AppEnv     string        `yaml:"app_env"`
	Pepper     string        `yaml:"pepper"`

	Analysis  AnalysisConfig  `yaml:"analysis"`
	Tour      TourConfig      `yaml:"tour"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
}

// AnalysisConfig drives the simulated engines: the cadence of the decorative
// progress steps and the latency the engines add before resolving.
type AnalysisConfig struct {
	StepInterval    time.Duration `yaml:"step_interval"`
	ImproveInterval time.Duration `yaml:"improve_interval"`
	EngineLatency   time.Duration `yaml:"engine_latency"`
}

type TourConfig struct {
	// WelcomeDelay gates the first-run welcome prompt so the dashboard has
	// time to render before the overlay measures its targets.
	WelcomeDelay time.Duration `yaml:"welcome_delay"`
}

type KnowledgeConfig struct {
	// RefreshSpec is a cron expression for the source refresher.
	RefreshSpec string `yaml:"refresh_spec"`
	// CrawlDelay is how long a freshly added source stays in "crawling"
	// before the refresher may promote it to active.
	CrawlDelay time.Duration `yaml:"crawl_delay"`
}
