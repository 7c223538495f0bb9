package tour

import (
	"context"
	"sync"
	"time"

	"vesta/config"
	"vesta/core/nav"
	"vesta/core/store"
	"vesta/core/utils"
)

// Phase is the tour's lifecycle state.
type Phase string

const (
	PhaseDormant       Phase = "dormant"
	PhaseWelcomePrompt Phase = "welcome"
	PhaseActive        Phase = "active"
	PhaseEnded         Phase = "ended"
)

// Controller drives the scripted onboarding sequence. It forces the
// workspace onto each step's screen through the navigation controller and
// substitutes canned sample data while active, so the walkthrough always
// looks the same. Ended is terminal: once the completion flag is persisted
// the welcome prompt never fires again for that user.
type Controller struct {
	nav    *nav.Controller
	prefs  store.PrefsStore
	cfg    config.TourConfig
	logger *utils.Logger

	mu           sync.Mutex
	phase        Phase
	index        int
	steps        []Step
	userID       string
	welcomeTimer *time.Timer
}

func NewController(navc *nav.Controller, prefs store.PrefsStore, cfg config.TourConfig, logger *utils.Logger) *Controller {
	return &Controller{
		nav:    navc,
		prefs:  prefs,
		cfg:    cfg,
		logger: logger,
		phase:  PhaseDormant,
		steps:  DefaultSteps(),
	}
}

// ScheduleWelcome arms the first-run prompt for userID. It fires after the
// configured render delay, and only when no completion flag is persisted.
// Re-arming while a tour is underway is a no-op; the tour never nests.
func (c *Controller) ScheduleWelcome(ctx context.Context, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseDormant {
		return
	}
	c.userID = userID
	if c.completedLocked(ctx) {
		c.phase = PhaseEnded
		return
	}
	if c.welcomeTimer != nil {
		c.welcomeTimer.Stop()
	}
	c.welcomeTimer = time.AfterFunc(c.welcomeDelay(), func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.phase == PhaseDormant {
			c.phase = PhaseWelcomePrompt
		}
	})
}

// Start begins the walkthrough from the welcome prompt and forces navigation
// to the first step's screen.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.phase != PhaseWelcomePrompt {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseActive
	c.index = 0
	first := c.steps[0]
	c.mu.Unlock()
	c.nav.NavigateTo(first.Screen)
}

// Next advances one step. The current step's action runs first; ending past
// the last step persists the completion flag.
func (c *Controller) Next(ctx context.Context) {
	c.mu.Lock()
	if c.phase != PhaseActive {
		c.mu.Unlock()
		return
	}
	current := c.steps[c.index]
	last := c.index == len(c.steps)-1
	if !last {
		c.index++
	}
	next := c.steps[c.index]
	c.mu.Unlock()

	c.runAction(current.AdvanceAction)
	if last {
		c.End(ctx)
		return
	}
	if next.Screen != current.Screen && next.Screen != c.nav.Current() {
		c.nav.NavigateTo(next.Screen)
	}
}

// Back returns to the previous step; permitted only past the first one.
func (c *Controller) Back() {
	c.mu.Lock()
	if c.phase != PhaseActive || c.index == 0 {
		c.mu.Unlock()
		return
	}
	current := c.steps[c.index]
	c.index--
	prev := c.steps[c.index]
	c.mu.Unlock()
	if prev.Screen != current.Screen {
		c.nav.NavigateTo(prev.Screen)
	}
}

// End terminates the tour from any state and persists the completion flag.
// Declining the welcome prompt counts as completing.
func (c *Controller) End(ctx context.Context) {
	c.mu.Lock()
	if c.phase == PhaseEnded {
		c.mu.Unlock()
		return
	}
	if c.welcomeTimer != nil {
		c.welcomeTimer.Stop()
		c.welcomeTimer = nil
	}
	c.phase = PhaseEnded
	userID := c.userID
	c.mu.Unlock()
	if c.prefs != nil && userID != "" {
		if err := c.prefs.Set(ctx, userID, store.PrefTourCompleted, "true"); err != nil && c.logger != nil {
			c.logger.Errorf("persist tour flag: %v", err)
		}
	}
}

// Close tears the controller down with its owning workspace, stopping any
// armed timer without persisting anything.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.welcomeTimer != nil {
		c.welcomeTimer.Stop()
		c.welcomeTimer = nil
	}
}

// State is a read-only snapshot for the overlay renderer.
type State struct {
	Phase       Phase `json:"phase"`
	StepNumber  int   `json:"stepNumber"`
	TotalSteps  int   `json:"totalSteps"`
	CurrentStep *Step `json:"currentStep,omitempty"`
	IsLastStep  bool  `json:"isLastStep"`
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := State{Phase: c.phase, TotalSteps: len(c.steps)}
	if c.phase == PhaseActive {
		step := c.steps[c.index]
		st.StepNumber = c.index + 1
		st.CurrentStep = &step
		st.IsLastStep = c.index == len(c.steps)-1
	}
	return st
}

// Decorate substitutes the canned sample data into a render instruction
// while the tour is active, so the screens it walks across are reproducible.
func (c *Controller) Decorate(v nav.View) nav.View {
	c.mu.Lock()
	active := c.phase == PhaseActive
	c.mu.Unlock()
	if !active {
		return v
	}
	switch v.Screen {
	case nav.ScreenReport:
		v.Report = SampleReport()
		v.PlanContent = SamplePlan()
		v.Empty = false
	case nav.ScreenUpload:
		v.PlanContent = SamplePlan()
	}
	return v
}

// runAction interprets a step's named side effect.
func (c *Controller) runAction(name string) {
	switch name {
	case "":
	case ActionOpenSampleReport:
		c.nav.OpenReport(SampleReport())
	default:
		if c.logger != nil {
			c.logger.Errorf("unknown tour action %q", name)
		}
	}
}

func (c *Controller) completedLocked(ctx context.Context) bool {
	if c.prefs == nil || c.userID == "" {
		return false
	}
	v, err := c.prefs.Get(ctx, c.userID, store.PrefTourCompleted)
	if err != nil {
		if c.logger != nil {
			c.logger.Errorf("read tour flag: %v", err)
		}
		return false
	}
	return v == "true"
}

func (c *Controller) welcomeDelay() time.Duration {
	if c.cfg.WelcomeDelay > 0 {
		return c.cfg.WelcomeDelay
	}
	return 500 * time.Millisecond
}
