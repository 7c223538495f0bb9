package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vesta/api/handlers"
	"vesta/config"
	"vesta/core/analysis"
	"vesta/core/auth"
	"vesta/core/knowledge"
	"vesta/core/nav"
	"vesta/core/store"
	"vesta/core/utils"
)

type Server struct {
	cfg        *config.AppConfig
	router     chi.Router
	httpServer *http.Server
	logger     *utils.Logger

	sessionManager *auth.SessionManager
	users          store.UsersStore
	sessions       store.SessionStore
	audits         store.AuditStore
	reports        store.ReportsStore
	sources        store.KnowledgeStore
	rules          store.RulesStore
	prefs          store.PrefsStore

	engine            *analysis.Engine
	refresher         *knowledge.Refresher
	workspaceRegistry *workspaceRegistry
	activityTracker   *sessionActivity
	metricsRegistry   *prometheus.Registry
	metrics           *handlers.Metrics
}

func NewServer(cfg *config.AppConfig, db *sql.DB, logger *utils.Logger) *Server {
	users := store.NewUsersStore(db)
	sessions := store.NewSessionsStore(db)
	audits := store.NewAuditStore(db)
	reports := store.NewReportsStore(db)
	sources := store.NewKnowledgeStore(db)
	rules := store.NewRulesStore(db)
	prefs := store.NewPrefsStore(db)

	engine := analysis.NewEngine(cfg.Analysis, rules, logger)
	navDeps := nav.Deps{
		Cfg:       cfg,
		Engine:    engine,
		Reports:   reports,
		Audits:    audits,
		Knowledge: sources,
		Rules:     rules,
		Prefs:     prefs,
		Logger:    logger,
	}
	metricsRegistry := prometheus.NewRegistry()

	s := &Server{
		cfg:               cfg,
		router:            chi.NewRouter(),
		logger:            logger,
		sessionManager:    auth.NewSessionManager(sessions, cfg, logger),
		users:             users,
		sessions:          sessions,
		audits:            audits,
		reports:           reports,
		sources:           sources,
		rules:             rules,
		prefs:             prefs,
		engine:            engine,
		refresher:         knowledge.NewRefresher(sources, cfg.Knowledge, logger),
		workspaceRegistry: newWorkspaceRegistry(cfg, navDeps, logger),
		activityTracker:   newSessionActivity(),
		metricsRegistry:   metricsRegistry,
		metrics:           handlers.NewMetrics(metricsRegistry),
	}
	s.registerRoutes()
	return s
}

// Handler exposes the routed mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	if err := s.refresher.Start(context.Background()); err != nil {
		return err
	}
	s.httpServer = &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.refresher.Stop()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) metricsHandler() http.Handler {
	return promhttp.HandlerFor(s.metricsRegistry, promhttp.HandlerOpts{})
}
