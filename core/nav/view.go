package nav

import "vesta/core/store"

// View is the render instruction handed to the presentation layer: the
// screen to show and the payload it binds. It is a snapshot; mutating it has
// no effect on the controller.
type View struct {
	Screen          Screen                `json:"screen"`
	User            *store.User           `json:"user,omitempty"`
	PlanContent     string                `json:"planContent,omitempty"`
	Report          *store.AnalysisReport `json:"report,omitempty"`
	ImprovedContent string                `json:"improvedContent,omitempty"`
	OriginalContent string                `json:"originalContent,omitempty"`
	ProgressSteps   []string              `json:"progressSteps,omitempty"`
	// Empty is set when a screen that wants a payload has none; the client
	// renders its fallback state instead of faulting.
	Empty bool `json:"empty,omitempty"`
}

// View renders the current state. While no user is authenticated the login
// screen is rendered regardless of the requested screen. The switch is
// exhaustive over the screen set; screens missing their payload degrade to
// an explicit empty render.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user == nil {
		return View{Screen: ScreenLogin}
	}
	v := View{Screen: c.screen, User: c.user}
	switch c.screen {
	case ScreenLogin:
		// Reachable only after an explicit NavigateTo while logged in.
		v.User = nil
	case ScreenDashboard, ScreenAuditTrail, ScreenKnowledgeBase, ScreenSettings:
		// Collection screens fetch their rows through dedicated calls.
	case ScreenUpload:
		v.PlanContent = c.planContent
	case ScreenAnalysisInProgress:
		v.PlanContent = c.planContent
		v.ProgressSteps = c.progress.Visible()
	case ScreenReport:
		v.Report = c.activeReport
		v.PlanContent = c.planContent
		v.Empty = c.activeReport == nil
	case ScreenImproving:
		v.PlanContent = c.planContent
		v.ProgressSteps = c.improveTicker.Visible()
	case ScreenImprovedReport:
		v.OriginalContent = c.planContent
		v.ImprovedContent = c.improvedContent
		v.Empty = c.improvedContent == ""
	}
	return v
}
