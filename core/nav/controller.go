package nav

import (
	"context"
	"strings"
	"sync"
	"time"

	"vesta/config"
	"vesta/core/analysis"
	"vesta/core/store"
	"vesta/core/utils"
)

// Engine is the analysis collaborator the controller hands documents to.
type Engine interface {
	Analyze(ctx context.Context, content string) (*store.AnalysisReport, error)
	Improve(ctx context.Context, content string, report *store.AnalysisReport) (string, error)
}

// Audit action names, recorded verbatim in the audit trail.
const (
	ActionLogin             = "User Login"
	ActionSignup            = "User Signup"
	ActionLogout            = "User Logout"
	ActionAnalysisCompleted = "Analysis Completed"
	ActionPlanImproved      = "Plan Improved"
	ActionSourceAdded       = "Knowledge Source Added"
	ActionSourceDeleted     = "Knowledge Source Deleted"
	ActionRuleAdded         = "Dismissal Rule Added"
	ActionRuleDeleted       = "Dismissal Rule Deleted"
)

// Deps carries the collaborators a controller needs. Views never see these;
// they receive read-only snapshots plus the controller's methods.
type Deps struct {
	Cfg       *config.AppConfig
	Engine    Engine
	Reports   store.ReportsStore
	Audits    store.AuditStore
	Knowledge store.KnowledgeStore
	Rules     store.RulesStore
	Prefs     store.PrefsStore
	Logger    *utils.Logger
}

// Controller is the single source of truth for one workspace: which screen
// is current, who is logged in, and the transient payloads the screens bind.
// All state transitions go through it and are applied atomically.
type Controller struct {
	deps Deps

	mu              sync.Mutex
	screen          Screen
	user            *store.User
	planContent     string
	activeReport    *store.AnalysisReport
	improvedContent string

	// Each analysis/improvement run gets a generation number and a scoped
	// context. A completion whose generation no longer matches is stale
	// (superseded, navigated away, or logged out) and is dropped.
	analysisGen    uint64
	analysisCancel context.CancelFunc
	progress       *progressTicker
	improveGen     uint64
	improveCancel  context.CancelFunc
	improveTicker  *progressTicker
}

func NewController(deps Deps) *Controller {
	return &Controller{deps: deps, screen: ScreenLogin}
}

// Initialize resumes a persisted session, if any. With a user the workspace
// opens on the dashboard; without one, on the login screen.
func (c *Controller) Initialize(user *store.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if user != nil {
		c.user = user
		c.screen = ScreenDashboard
		return
	}
	c.user = nil
	c.screen = ScreenLogin
}

// NavigateTo unconditionally makes screen current. Destination screens that
// need a payload render a fallback when it is absent; navigation itself never
// fails. Navigating away from an in-progress screen cancels its run.
func (c *Controller) NavigateTo(screen Screen) {
	if !screen.Valid() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.screen == ScreenAnalysisInProgress && screen != ScreenAnalysisInProgress {
		c.cancelAnalysisLocked()
	}
	if c.screen == ScreenImproving && screen != ScreenImproving {
		c.cancelImprovementLocked()
	}
	c.screen = screen
}

// Current returns the most recently requested screen.
func (c *Controller) Current() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

func (c *Controller) User() *store.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// Login binds the authenticated user and lands on the dashboard. The audit
// entry distinguishes social sign-ins from credential ones.
func (c *Controller) Login(ctx context.Context, user *store.User, social bool) {
	c.mu.Lock()
	c.user = user
	c.screen = ScreenDashboard
	c.mu.Unlock()
	details := "credentials"
	if social {
		details = "social"
	}
	c.audit(ctx, ActionLogin, details)
}

// Signup lands a freshly registered user on the dashboard. It audits its own
// action so the trail distinguishes registrations from returning logins.
func (c *Controller) Signup(ctx context.Context, user *store.User) {
	c.mu.Lock()
	c.user = user
	c.screen = ScreenDashboard
	c.mu.Unlock()
	c.audit(ctx, ActionSignup, "")
}

// Logout records the audit entry while the user is still known, then clears
// every per-session payload so nothing leaks into the next account.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	user := c.user
	c.mu.Unlock()
	if user != nil {
		c.audit(ctx, ActionLogout, "")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelAnalysisLocked()
	c.cancelImprovementLocked()
	c.user = nil
	c.planContent = ""
	c.activeReport = nil
	c.improvedContent = ""
	c.screen = ScreenLogin
}

// StartAnalysis moves to the in-progress screen and hands the plan to the
// engine under a scoped context. Empty input or a missing user is a no-op.
func (c *Controller) StartAnalysis(content string) {
	if strings.TrimSpace(content) == "" {
		return
	}
	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		return
	}
	c.cancelAnalysisLocked()
	c.analysisGen++
	gen := c.analysisGen
	runCtx, cancel := context.WithCancel(context.Background())
	c.analysisCancel = cancel
	c.planContent = content
	c.screen = ScreenAnalysisInProgress
	c.progress = newProgressTicker(runCtx, analysis.AnalysisSteps, c.stepInterval())
	c.mu.Unlock()

	go func() {
		report, err := c.deps.Engine.Analyze(runCtx, content)
		if err != nil {
			if c.deps.Logger != nil && runCtx.Err() == nil {
				c.deps.Logger.Errorf("analysis failed: %v", err)
			}
			return
		}
		c.finishAnalysis(runCtx, gen, report)
	}()
}

// CompleteAnalysis stores the report (deduplicated by title, first wins),
// makes it the active report, and lands on the report screen.
func (c *Controller) CompleteAnalysis(ctx context.Context, report *store.AnalysisReport) {
	if report == nil {
		return
	}
	c.mu.Lock()
	user := c.user
	c.mu.Unlock()
	if user == nil {
		return
	}
	stored, err := c.deps.Reports.Insert(ctx, user.ID, report)
	if err != nil {
		if c.deps.Logger != nil {
			c.deps.Logger.Errorf("report insert: %v", err)
		}
		stored = report
	}
	c.audit(ctx, ActionAnalysisCompleted, stored.Title)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeReport = stored
	c.screen = ScreenReport
}

func (c *Controller) finishAnalysis(ctx context.Context, gen uint64, report *store.AnalysisReport) {
	c.mu.Lock()
	stale := gen != c.analysisGen || c.user == nil || c.screen != ScreenAnalysisInProgress
	c.mu.Unlock()
	if stale || ctx.Err() != nil {
		return
	}
	c.CompleteAnalysis(ctx, report)
}

// StartImprovement is a no-op unless a non-empty plan and an active report
// are both present.
func (c *Controller) StartImprovement() {
	c.mu.Lock()
	if c.user == nil || strings.TrimSpace(c.planContent) == "" || c.activeReport == nil {
		c.mu.Unlock()
		return
	}
	c.cancelImprovementLocked()
	c.improveGen++
	gen := c.improveGen
	runCtx, cancel := context.WithCancel(context.Background())
	c.improveCancel = cancel
	plan := c.planContent
	report := c.activeReport
	c.screen = ScreenImproving
	c.improveTicker = newProgressTicker(runCtx, analysis.ImprovementSteps, c.improveInterval())
	c.mu.Unlock()

	go func() {
		improved, err := c.deps.Engine.Improve(runCtx, plan, report)
		if err != nil {
			if c.deps.Logger != nil && runCtx.Err() == nil {
				c.deps.Logger.Errorf("improvement failed: %v", err)
			}
			return
		}
		c.finishImprovement(runCtx, gen, improved)
	}()
}

// CompleteImprovement binds the rewritten plan and shows the comparison view.
func (c *Controller) CompleteImprovement(ctx context.Context, improved string) {
	c.mu.Lock()
	user := c.user
	title := ""
	if c.activeReport != nil {
		title = c.activeReport.Title
	}
	c.mu.Unlock()
	if user == nil {
		return
	}
	c.audit(ctx, ActionPlanImproved, title)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.improvedContent = improved
	c.screen = ScreenImprovedReport
}

func (c *Controller) finishImprovement(ctx context.Context, gen uint64, improved string) {
	c.mu.Lock()
	stale := gen != c.improveGen || c.user == nil || c.screen != ScreenImproving
	c.mu.Unlock()
	if stale || ctx.Err() != nil {
		return
	}
	c.CompleteImprovement(ctx, improved)
}

// OpenReport makes an already-stored report the active one and shows it.
func (c *Controller) OpenReport(report *store.AnalysisReport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeReport = report
	c.screen = ScreenReport
}

// SetPlanContent records the pasted/uploaded plan without starting a run.
func (c *Controller) SetPlanContent(content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.planContent = content
}

func (c *Controller) PlanContent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.planContent
}

func (c *Controller) ActiveReport() *store.AnalysisReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeReport
}

func (c *Controller) ImprovedContent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.improvedContent
}

// AddAuditLog records a significant user action. Without an authenticated
// user it is a no-op.
func (c *Controller) AddAuditLog(ctx context.Context, action, details string) {
	c.audit(ctx, action, details)
}

func (c *Controller) audit(ctx context.Context, action, details string) {
	c.mu.Lock()
	user := c.user
	c.mu.Unlock()
	if user == nil || c.deps.Audits == nil {
		return
	}
	if err := c.deps.Audits.Log(ctx, user.Email, action, details); err != nil && c.deps.Logger != nil {
		c.deps.Logger.Errorf("audit log: %v", err)
	}
}

func (c *Controller) cancelAnalysisLocked() {
	if c.analysisCancel != nil {
		c.analysisCancel()
		c.analysisCancel = nil
	}
	c.analysisGen++
	c.progress = nil
}

func (c *Controller) cancelImprovementLocked() {
	if c.improveCancel != nil {
		c.improveCancel()
		c.improveCancel = nil
	}
	c.improveGen++
	c.improveTicker = nil
}

func (c *Controller) stepInterval() time.Duration {
	if c.deps.Cfg != nil {
		return c.deps.Cfg.Analysis.StepInterval
	}
	return 0
}

func (c *Controller) improveInterval() time.Duration {
	if c.deps.Cfg != nil {
		return c.deps.Cfg.Analysis.ImproveInterval
	}
	return 0
}
