package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vesta/api/handlers"
)

type routeHandlers struct {
	auth      *handlers.AuthHandler
	state     *handlers.StateHandler
	analysis  *handlers.AnalysisHandler
	reports   *handlers.ReportsHandler
	knowledge *handlers.KnowledgeHandler
	rules     *handlers.RulesHandler
	audit     *handlers.AuditHandler
	tour      *handlers.TourHandler
	settings  *handlers.SettingsHandler
	export    *handlers.ExportHandler
}

func (s *Server) newRouteHandlers() routeHandlers {
	return routeHandlers{
		auth:      handlers.NewAuthHandler(s.cfg, s.users, s.sessionManager, s.workspaceRegistry, s.metrics, s.logger),
		state:     handlers.NewStateHandler(s.logger),
		analysis:  handlers.NewAnalysisHandler(s.metrics, s.logger),
		reports:   handlers.NewReportsHandler(s.reports, s.logger),
		knowledge: handlers.NewKnowledgeHandler(s.logger),
		rules:     handlers.NewRulesHandler(s.logger),
		audit:     handlers.NewAuditHandler(s.logger),
		tour:      handlers.NewTourHandler(s.logger),
		settings:  handlers.NewSettingsHandler(s.prefs, s.logger),
		export:    handlers.NewExportHandler(s.metrics, s.logger),
	}
}

func (s *Server) registerRoutes() {
	s.router.Use(s.recoverMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.securityHeadersMiddleware)

	s.router.Method("GET", "/metrics", s.metricsHandler())
	s.router.MethodFunc("GET", "/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	h := s.newRouteHandlers()
	s.router.Route("/api", func(apiRouter chi.Router) {
		apiRouter.MethodFunc("POST", "/auth/login", h.auth.Login)
		apiRouter.MethodFunc("POST", "/auth/signup", h.auth.Signup)
		apiRouter.MethodFunc("POST", "/auth/social", h.auth.Social)
		apiRouter.MethodFunc("POST", "/auth/logout", s.withSession(h.auth.Logout))
		apiRouter.MethodFunc("GET", "/auth/me", s.withSession(h.auth.Me))

		apiRouter.MethodFunc("GET", "/view", s.withSession(h.state.View))
		apiRouter.MethodFunc("POST", "/navigate", s.withSession(h.state.Navigate))
		apiRouter.MethodFunc("POST", "/plan", s.withSession(h.state.SetPlan))

		apiRouter.MethodFunc("POST", "/analysis", s.withSession(h.analysis.Start))
		apiRouter.MethodFunc("POST", "/improvement", s.withSession(h.analysis.Improve))
		apiRouter.MethodFunc("GET", "/export", s.withSession(h.export.Download))

		apiRouter.MethodFunc("GET", "/reports", s.withSession(h.reports.List))
		apiRouter.MethodFunc("POST", "/reports/{id}/open", s.withSession(h.reports.Open))
		apiRouter.MethodFunc("PATCH", "/findings/{findingID}", s.withSession(h.reports.UpdateFinding))

		apiRouter.MethodFunc("GET", "/knowledge/sources", s.withSession(h.knowledge.List))
		apiRouter.MethodFunc("POST", "/knowledge/sources", s.withSession(h.knowledge.Add))
		apiRouter.MethodFunc("DELETE", "/knowledge/sources/{id}", s.withSession(h.knowledge.Delete))

		apiRouter.MethodFunc("GET", "/rules", s.withSession(h.rules.List))
		apiRouter.MethodFunc("POST", "/rules", s.withSession(h.rules.Add))
		apiRouter.MethodFunc("DELETE", "/rules/{id}", s.withSession(h.rules.Delete))

		apiRouter.MethodFunc("GET", "/audit", s.withSession(h.audit.List))

		apiRouter.MethodFunc("GET", "/tour", s.withSession(h.tour.State))
		apiRouter.MethodFunc("POST", "/tour/start", s.withSession(h.tour.Start))
		apiRouter.MethodFunc("POST", "/tour/next", s.withSession(h.tour.Next))
		apiRouter.MethodFunc("POST", "/tour/back", s.withSession(h.tour.Back))
		apiRouter.MethodFunc("POST", "/tour/end", s.withSession(h.tour.End))
		apiRouter.MethodFunc("POST", "/tour/placement", s.withSession(h.tour.Placement))

		apiRouter.MethodFunc("GET", "/settings/theme", s.withSession(h.settings.GetTheme))
		apiRouter.MethodFunc("PUT", "/settings/theme", s.withSession(h.settings.SetTheme))
	})
}
