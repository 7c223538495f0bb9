package nav

// Screen is the closed set of full-page views. Exactly one screen is current
// per workspace at any time.
type Screen string

const (
	ScreenLogin              Screen = "login"
	ScreenDashboard          Screen = "dashboard"
	ScreenUpload             Screen = "upload"
	ScreenAnalysisInProgress Screen = "analysis-in-progress"
	ScreenReport             Screen = "report"
	ScreenImproving          Screen = "improving"
	ScreenImprovedReport     Screen = "improved-report"
	ScreenAuditTrail         Screen = "audit-trail"
	ScreenKnowledgeBase      Screen = "knowledge-base"
	ScreenSettings           Screen = "settings"
)

// AllScreens lists every member of the set, in sidebar order.
func AllScreens() []Screen {
	return []Screen{
		ScreenLogin,
		ScreenDashboard,
		ScreenUpload,
		ScreenAnalysisInProgress,
		ScreenReport,
		ScreenImproving,
		ScreenImprovedReport,
		ScreenAuditTrail,
		ScreenKnowledgeBase,
		ScreenSettings,
	}
}

func (s Screen) Valid() bool {
	switch s {
	case ScreenLogin, ScreenDashboard, ScreenUpload, ScreenAnalysisInProgress,
		ScreenReport, ScreenImproving, ScreenImprovedReport, ScreenAuditTrail,
		ScreenKnowledgeBase, ScreenSettings:
		return true
	}
	return false
}
