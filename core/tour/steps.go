package tour

import (
	"vesta/core/nav"
	"vesta/core/store"
)

// Step is plain data: which element to highlight, what to say, and which
// screen hosts it. Side effects are named actions executed by the
// controller's interpreter, never closures baked into the step.
type Step struct {
	TargetSelector string     `json:"targetSelector"`
	Text           string     `json:"text"`
	Screen         nav.Screen `json:"screen"`
	AdvanceAction  string     `json:"advanceAction,omitempty"`
}

// ActionOpenSampleReport opens the canned sample report before advancing.
const ActionOpenSampleReport = "open-sample-report"

func DefaultSteps() []Step {
	return []Step{
		{
			TargetSelector: "#new-analysis-button",
			Text:           "When you're ready, this is where you will upload your own project plans to be analyzed.",
			Screen:         nav.ScreenDashboard,
		},
		{
			TargetSelector: "#sample-analysis-card",
			Text:           "We've already created a sample analysis for you. Let's look at the report to see what Vesta can do.",
			Screen:         nav.ScreenDashboard,
			AdvanceAction:  ActionOpenSampleReport,
		},
		{
			TargetSelector: "#executive-summary",
			Text:           "Here is the executive summary. You can immediately see the project's overall Resilience Score, and the number of critical issues and warnings found.",
			Screen:         nav.ScreenReport,
		},
		{
			TargetSelector: "#detailed-findings",
			Text:           "Vesta provides detailed, actionable recommendations for each finding. Click on any item to expand it.",
			Screen:         nav.ScreenReport,
		},
	}
}

// SamplePlan is the substituted plan text shown while the tour is active, so
// the walkthrough is reproducible regardless of the user's real history.
func SamplePlan() string {
	return "Q3 Mobile Banking App Relaunch\n\n" +
		"User data will be collected upon registration to enhance their experience.\n" +
		"We may share information with our partners to offer better services.\n" +
		"Systems will be restored as soon as possible in the event of an outage.\n"
}

// SampleReport returns the canned report every tour walks through.
func SampleReport() *store.AnalysisReport {
	return &store.AnalysisReport{
		ID:              "tour-sample-report",
		Title:           "Sample: Q3 Mobile Banking App Relaunch",
		ResilienceScore: 72,
		Summary:         store.ReportSummary{Critical: 1, Warning: 2, Checks: 1347},
		Findings: []store.Finding{
			{
				ID:             "tour-finding-1",
				Severity:       store.SeverityCritical,
				Title:          "No explicit consent mechanism for data collection",
				SourceSnippet:  "User data will be collected upon registration to enhance their experience.",
				Recommendation: "Implement a mandatory checkbox for users to explicitly agree to the Terms of Service and Privacy Policy before account creation, in compliance with the Data Privacy Act (RA 10173).",
				Status:         store.FindingActive,
			},
			{
				ID:             "tour-finding-2",
				Severity:       store.SeverityWarning,
				Title:          "Vague language on third-party data sharing",
				SourceSnippet:  "We may share information with our partners to offer better services.",
				Recommendation: "Specify which categories of partners data may be shared with and for what exact purposes. Provide a link to a list of third-party services.",
				Status:         store.FindingActive,
			},
			{
				ID:             "tour-finding-3",
				Severity:       store.SeverityWarning,
				Title:          "Disaster recovery plan lacks specific RTO/RPO",
				SourceSnippet:  "Systems will be restored as soon as possible in the event of an outage.",
				Recommendation: "Define specific Recovery Time Objectives (RTO) and Recovery Point Objectives (RPO) for critical systems, as per BSP Circular No. 808 guidelines on IT risk management.",
				Status:         store.FindingActive,
			},
		},
	}
}
