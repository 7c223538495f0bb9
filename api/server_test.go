package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vesta/api/handlers"
	"vesta/config"
	"vesta/core/bootstrap"
	"vesta/core/nav"
	"vesta/core/store"
	"vesta/core/tour"
	"vesta/core/utils"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return newTestServerAt(t, filepath.Join(t.TempDir(), "vesta.db"))
}

// newTestServerAt opens the server over an explicit database file, so a test
// can stand up a second server on the same data to exercise restart behavior.
func newTestServerAt(t *testing.T, dbPath string) *Server {
	t.Helper()
	cfg := &config.AppConfig{
		DBDriver:   "sqlite",
		DBPath:     dbPath,
		Pepper:     "pepper",
		SessionTTL: time.Hour,
		Analysis: config.AnalysisConfig{
			StepInterval:    time.Millisecond,
			ImproveInterval: time.Millisecond,
			EngineLatency:   time.Millisecond,
		},
		Tour:      config.TourConfig{WelcomeDelay: 5 * time.Millisecond},
		Knowledge: config.KnowledgeConfig{RefreshSpec: "@every 1m", CrawlDelay: 10 * time.Millisecond},
	}
	logger := utils.NewLogger()
	db, err := store.NewDB(cfg, logger)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.ApplyMigrations(context.Background(), db, cfg, logger); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	if err := bootstrap.EnsureDefaultUser(context.Background(), db, cfg, logger); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return NewServer(cfg, db, logger)
}

func doJSON(t *testing.T, s *Server, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func login(t *testing.T, s *Server) *http.Cookie {
	t.Helper()
	rr := doJSON(t, s, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "john.doe@example.com",
		"password": "password123",
	}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("login status = %d (%s)", rr.Code, rr.Body.String())
	}
	return sessionCookie(t, rr)
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == handlers.SessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("response did not set a session cookie")
	return nil
}

func tourPhase(t *testing.T, s *Server, cookie *http.Cookie) string {
	t.Helper()
	rr := doJSON(t, s, http.MethodGet, "/api/tour", nil, cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("tour status = %d (%s)", rr.Code, rr.Body.String())
	}
	var env struct {
		Tour struct {
			Phase string `json:"phase"`
		} `json:"tour"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode tour: %v (%s)", err, rr.Body.String())
	}
	return env.Tour.Phase
}

func waitForTourPhase(t *testing.T, s *Server, cookie *http.Cookie, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if tourPhase(t, s, cookie) == want {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("tour phase never became %q (last %q)", want, tourPhase(t, s, cookie))
}

func decodeView(t *testing.T, rr *httptest.ResponseRecorder) nav.View {
	t.Helper()
	var v nav.View
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode view: %v (%s)", err, rr.Body.String())
	}
	return v
}

func TestLoginRejectsBadPassword(t *testing.T) {
	s := newTestServer(t)
	rr := doJSON(t, s, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "john.doe@example.com",
		"password": "wrong-password",
	}, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestLoginRendersDashboard(t *testing.T) {
	s := newTestServer(t)
	rr := doJSON(t, s, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "john.doe@example.com",
		"password": "password123",
	}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rr.Code, rr.Body.String())
	}
	v := decodeView(t, rr)
	if v.Screen != nav.ScreenDashboard {
		t.Fatalf("screen = %q, want %q", v.Screen, nav.ScreenDashboard)
	}
	if v.User == nil || v.User.Email != "john.doe@example.com" {
		t.Fatalf("view user = %+v", v.User)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	body := map[string]string{
		"name":     "Jane Roe",
		"email":    "jane@example.com",
		"password": "password456",
	}
	if rr := doJSON(t, s, http.MethodPost, "/api/auth/signup", body, nil); rr.Code != http.StatusOK {
		t.Fatalf("first signup status = %d (%s)", rr.Code, rr.Body.String())
	}
	rr := doJSON(t, s, http.MethodPost, "/api/auth/signup", body, nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("second signup status = %d, want 409", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "already exists") {
		t.Fatalf("unexpected error body: %s", rr.Body.String())
	}
}

func TestSignupRejectsShortPassword(t *testing.T) {
	s := newTestServer(t)
	rr := doJSON(t, s, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     "Jane Roe",
		"email":    "jane@example.com",
		"password": "short",
	}, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestViewRequiresSession(t *testing.T) {
	s := newTestServer(t)
	if rr := doJSON(t, s, http.MethodGet, "/api/view", nil, nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
}

func TestAnalysisFlowEndToEnd(t *testing.T) {
	s := newTestServer(t)
	cookie := login(t, s)

	plan := "Mobile Wallet Launch\n\nUser data will be collected upon registration.\n"
	rr := doJSON(t, s, http.MethodPost, "/api/analysis", map[string]string{"content": plan}, cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("analysis status = %d (%s)", rr.Code, rr.Body.String())
	}
	if v := decodeView(t, rr); v.Screen != nav.ScreenAnalysisInProgress {
		t.Fatalf("screen = %q, want %q", v.Screen, nav.ScreenAnalysisInProgress)
	}

	v := waitForScreen(t, s, cookie, nav.ScreenReport)
	if v.Report == nil {
		t.Fatal("report screen without report payload")
	}
	if v.Report.Title != "Mobile Wallet Launch" {
		t.Fatalf("report title = %q", v.Report.Title)
	}

	rr = doJSON(t, s, http.MethodPost, "/api/improvement", nil, cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("improvement status = %d (%s)", rr.Code, rr.Body.String())
	}
	v = waitForScreen(t, s, cookie, nav.ScreenImprovedReport)
	if v.ImprovedContent == "" {
		t.Fatal("improved report screen without improved content")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/export?format=txt", nil)
	req.AddCookie(cookie)
	exp := httptest.NewRecorder()
	s.Handler().ServeHTTP(exp, req)
	if exp.Code != http.StatusOK {
		t.Fatalf("export status = %d (%s)", exp.Code, exp.Body.String())
	}
	if got := exp.Body.String(); got != v.ImprovedContent {
		t.Fatalf("export body = %q, want the improved content", got)
	}
	if cd := exp.Header().Get("Content-Disposition"); !strings.Contains(cd, "(Improved).txt") {
		t.Fatalf("content disposition = %q", cd)
	}
}

func TestImprovementWithoutReportConflicts(t *testing.T) {
	s := newTestServer(t)
	cookie := login(t, s)
	if rr := doJSON(t, s, http.MethodPost, "/api/improvement", nil, cookie); rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rr.Code)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	s := newTestServer(t)
	cookie := login(t, s)

	rr := doJSON(t, s, http.MethodPost, "/api/auth/logout", nil, cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("logout status = %d (%s)", rr.Code, rr.Body.String())
	}
	if v := decodeView(t, rr); v.Screen != nav.ScreenLogin {
		t.Fatalf("screen after logout = %q, want %q", v.Screen, nav.ScreenLogin)
	}
	if rr := doJSON(t, s, http.MethodGet, "/api/view", nil, cookie); rr.Code != http.StatusUnauthorized {
		t.Fatalf("view after logout status = %d, want 401", rr.Code)
	}

	records, err := s.audits.List(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	var sawLogout bool
	for _, rec := range records {
		if rec.Action == nav.ActionLogout && rec.UserEmail == "john.doe@example.com" {
			sawLogout = true
		}
	}
	if !sawLogout {
		t.Fatal("logout was not audited")
	}
}

func TestKnowledgeSourceLifecycle(t *testing.T) {
	s := newTestServer(t)
	cookie := login(t, s)

	rr := doJSON(t, s, http.MethodPost, "/api/knowledge/sources", map[string]string{
		"url": "https://www.sec.gov.ph/rules",
	}, cookie)
	if rr.Code != http.StatusCreated {
		t.Fatalf("add status = %d (%s)", rr.Code, rr.Body.String())
	}
	var src store.KnowledgeSource
	if err := json.Unmarshal(rr.Body.Bytes(), &src); err != nil {
		t.Fatal(err)
	}
	if src.Status != store.SourceCrawling {
		t.Fatalf("fresh source status = %q, want %q", src.Status, store.SourceCrawling)
	}

	if rr := doJSON(t, s, http.MethodPost, "/api/knowledge/sources", map[string]string{"url": "ftp://x"}, cookie); rr.Code != http.StatusBadRequest {
		t.Fatalf("non-http url status = %d, want 400", rr.Code)
	}

	rr = doJSON(t, s, http.MethodDelete, "/api/knowledge/sources/"+src.ID, nil, cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rr.Code)
	}
}

func TestTourPlacementEndpoint(t *testing.T) {
	s := newTestServer(t)
	cookie := login(t, s)

	rr := doJSON(t, s, http.MethodPost, "/api/tour/placement", map[string]any{
		"target":         map[string]float64{"top": 700, "left": 40, "width": 200, "height": 50},
		"tooltipHeight":  150,
		"viewportHeight": 800,
	}, cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rr.Code, rr.Body.String())
	}
	var p struct {
		Top   float64 `json:"top"`
		Above bool    `json:"above"`
		Show  bool    `json:"show"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if !p.Show || !p.Above || p.Top != 540 {
		t.Fatalf("placement = %+v, want above at 540", p)
	}
}

func TestResumedSessionArmsTour(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "vesta.db")
	first := newTestServerAt(t, dbPath)
	cookie := login(t, first)

	// A second server over the same database stands in for a process
	// restart: the cookie still resolves, and the rebuilt workspace must
	// offer the walkthrough again.
	second := newTestServerAt(t, dbPath)
	waitForTourPhase(t, second, cookie, string(tour.PhaseWelcomePrompt))

	if rr := doJSON(t, second, http.MethodPost, "/api/tour/end", nil, cookie); rr.Code != http.StatusOK {
		t.Fatalf("end status = %d (%s)", rr.Code, rr.Body.String())
	}

	// Declining on the resumed workspace persists the flag, so yet another
	// restart stays quiet.
	third := newTestServerAt(t, dbPath)
	if phase := tourPhase(t, third, cookie); phase != string(tour.PhaseEnded) {
		t.Fatalf("phase after decline and restart = %q, want %q", phase, tour.PhaseEnded)
	}
}

func TestSignupAuditsSignupAction(t *testing.T) {
	s := newTestServer(t)
	rr := doJSON(t, s, http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     "Ada Example",
		"email":    "ada@example.com",
		"password": "password456",
	}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("signup status = %d (%s)", rr.Code, rr.Body.String())
	}
	cookie := sessionCookie(t, rr)

	rr = doJSON(t, s, http.MethodGet, "/api/audit", nil, cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("audit status = %d (%s)", rr.Code, rr.Body.String())
	}
	var records []store.AuditRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &records); err != nil {
		t.Fatalf("decode audit: %v (%s)", err, rr.Body.String())
	}
	if len(records) == 0 || records[0].Action != nav.ActionSignup {
		t.Fatalf("newest audit = %+v, want action %q", records, nav.ActionSignup)
	}
	for _, rec := range records {
		if rec.Action == nav.ActionLogin {
			t.Fatalf("signup also recorded %q: %+v", nav.ActionLogin, rec)
		}
	}
}

func TestThemeRoundTrip(t *testing.T) {
	s := newTestServer(t)
	cookie := login(t, s)

	rr := doJSON(t, s, http.MethodGet, "/api/settings/theme", nil, cookie)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "light") {
		t.Fatalf("default theme response: %d %s", rr.Code, rr.Body.String())
	}
	if rr := doJSON(t, s, http.MethodPut, "/api/settings/theme", map[string]string{"theme": "dark"}, cookie); rr.Code != http.StatusOK {
		t.Fatalf("set theme status = %d", rr.Code)
	}
	rr = doJSON(t, s, http.MethodGet, "/api/settings/theme", nil, cookie)
	if !strings.Contains(rr.Body.String(), "dark") {
		t.Fatalf("theme did not persist: %s", rr.Body.String())
	}
	if rr := doJSON(t, s, http.MethodPut, "/api/settings/theme", map[string]string{"theme": "sepia"}, cookie); rr.Code != http.StatusBadRequest {
		t.Fatalf("unknown theme status = %d, want 400", rr.Code)
	}
}

func waitForScreen(t *testing.T, s *Server, cookie *http.Cookie, want nav.Screen) nav.View {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		rr := doJSON(t, s, http.MethodGet, "/api/view", nil, cookie)
		if rr.Code != http.StatusOK {
			t.Fatalf("view status = %d (%s)", rr.Code, rr.Body.String())
		}
		v := decodeView(t, rr)
		if v.Screen == want {
			return v
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("screen never reached %q", want)
	return nav.View{}
}
