package tests

import (
	"context"
	"strings"
	"testing"
	"time"

	"vesta/config"
	"vesta/core/analysis"
	"vesta/core/nav"
	"vesta/core/store"
	"vesta/core/tour"
)

func newWorkspace(t *testing.T) (*nav.Controller, *tour.Controller, *store.User, *config.AppConfig, *storeBundle) {
	t.Helper()
	cfg, db, logger := setupDB(t)
	user := createUser(t, db, "Jane Roe", "jane@example.com")
	b := &storeBundle{
		reports: store.NewReportsStore(db),
		audits:  store.NewAuditStore(db),
		sources: store.NewKnowledgeStore(db),
		rules:   store.NewRulesStore(db),
		prefs:   store.NewPrefsStore(db),
	}
	engine := analysis.NewEngine(cfg.Analysis, b.rules, logger)
	navc := nav.NewController(nav.Deps{
		Cfg:       cfg,
		Engine:    engine,
		Reports:   b.reports,
		Audits:    b.audits,
		Knowledge: b.sources,
		Rules:     b.rules,
		Prefs:     b.prefs,
		Logger:    logger,
	})
	tc := tour.NewController(navc, b.prefs, cfg.Tour, logger)
	t.Cleanup(tc.Close)
	navc.Login(context.Background(), user, false)
	return navc, tc, user, cfg, b
}

type storeBundle struct {
	reports store.ReportsStore
	audits  store.AuditStore
	sources store.KnowledgeStore
	rules   store.RulesStore
	prefs   store.PrefsStore
}

func waitScreen(t *testing.T, navc *nav.Controller, want nav.Screen) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if navc.Current() == want {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("screen = %q, never reached %q", navc.Current(), want)
}

func TestAnalysisPersistsReportAndAudit(t *testing.T) {
	navc, _, user, _, b := newWorkspace(t)

	plan := "Payment Gateway Plan\n\nUser data will be collected upon registration.\n"
	navc.SetPlanContent(plan)
	navc.StartAnalysis(plan)
	waitScreen(t, navc, nav.ScreenReport)

	stored, err := b.reports.FindByTitle(context.Background(), user.ID, "Payment Gateway Plan")
	if err != nil || stored == nil {
		t.Fatalf("report not persisted: %v %v", stored, err)
	}
	if len(stored.Findings) == 0 {
		t.Fatal("persisted report has no findings")
	}

	records, err := b.audits.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("audit list: %v", err)
	}
	var completed bool
	for _, rec := range records {
		if rec.Action == nav.ActionAnalysisCompleted && rec.UserEmail == user.Email {
			completed = true
		}
	}
	if !completed {
		t.Fatal("analysis completion was not audited")
	}
}

func TestDismissalRuleSuppressesOnNextRun(t *testing.T) {
	navc, _, user, _, b := newWorkspace(t)

	plan := "Retention Plan\n\nUser data will be collected upon registration.\n"
	navc.SetPlanContent(plan)
	navc.StartAnalysis(plan)
	waitScreen(t, navc, nav.ScreenReport)

	first, _ := b.reports.FindByTitle(context.Background(), user.ID, "Retention Plan")
	if first == nil || len(first.Findings) == 0 {
		t.Fatal("expected findings on the first run")
	}
	for _, f := range first.Findings {
		if rule := navc.AddDismissalRule(context.Background(), f.Title, "accepted risk"); rule == nil {
			t.Fatal("rule creation failed")
		}
	}

	plan2 := "Second Retention Plan\n\nUser data will be collected upon registration.\n"
	navc.SetPlanContent(plan2)
	navc.StartAnalysis(plan2)
	waitScreen(t, navc, nav.ScreenReport)

	second, _ := b.reports.FindByTitle(context.Background(), user.ID, "Second Retention Plan")
	if second == nil {
		t.Fatal("second report missing")
	}
	for _, f := range second.Findings {
		for _, g := range first.Findings {
			if f.Title == g.Title {
				t.Fatalf("dismissed finding %q came back", f.Title)
			}
		}
	}
}

func TestImprovementAppendsRemediations(t *testing.T) {
	navc, _, _, _, _ := newWorkspace(t)

	plan := "Improvable Plan\n\nUser data will be collected upon registration.\n"
	navc.SetPlanContent(plan)
	navc.StartAnalysis(plan)
	waitScreen(t, navc, nav.ScreenReport)

	navc.StartImprovement()
	waitScreen(t, navc, nav.ScreenImprovedReport)

	improved := navc.ImprovedContent()
	if !strings.HasPrefix(improved, plan) {
		t.Fatal("improved plan lost the original content")
	}
	if !strings.Contains(improved, "Compliance Remediations") {
		t.Fatalf("improved plan has no remediation section: %q", improved)
	}
	v := navc.View()
	if v.OriginalContent != plan {
		t.Fatal("improved view lost the original for comparison")
	}
}

func TestTourCompletionSurvivesRestart(t *testing.T) {
	navc, tc, user, cfg, b := newWorkspace(t)

	tc.ScheduleWelcome(context.Background(), user.ID)
	deadline := time.Now().Add(2 * time.Second)
	for tc.Snapshot().Phase != tour.PhaseWelcomePrompt && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}
	tc.Start()
	for i := 0; i < 4; i++ {
		tc.Next(context.Background())
	}
	if tc.Snapshot().Phase != tour.PhaseEnded {
		t.Fatalf("phase = %q, want ended", tc.Snapshot().Phase)
	}

	// A fresh controller over the same prefs store, as after a process
	// restart, must never prompt again.
	fresh := tour.NewController(navc, b.prefs, cfg.Tour, nil)
	t.Cleanup(fresh.Close)
	fresh.ScheduleWelcome(context.Background(), user.ID)
	if got := fresh.Snapshot().Phase; got != tour.PhaseEnded {
		t.Fatalf("fresh controller phase = %q, want ended", got)
	}
}

func TestLogoutDropsInFlightAnalysis(t *testing.T) {
	navc, _, user, _, b := newWorkspace(t)

	plan := "Abandoned Plan\n\nUser data will be collected upon registration.\n"
	navc.SetPlanContent(plan)
	navc.StartAnalysis(plan)
	navc.Logout(context.Background())

	if navc.Current() != nav.ScreenLogin {
		t.Fatalf("screen = %q, want login", navc.Current())
	}
	// Give a stale completion every chance to land, then check it did not.
	time.Sleep(50 * time.Millisecond)
	stored, err := b.reports.FindByTitle(context.Background(), user.ID, "Abandoned Plan")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored != nil {
		t.Fatal("cancelled analysis still persisted a report")
	}
	if v := navc.View(); v.Screen != nav.ScreenLogin || v.Report != nil {
		t.Fatalf("post-logout view leaked state: %+v", v)
	}
}
