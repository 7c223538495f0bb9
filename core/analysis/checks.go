package analysis

import "vesta/core/store"

// complianceCheck is one rule the analyzer evaluates against the plan text.
// A check fires when none of its expected keywords appear, or when a risky
// phrase appears without its qualifying context.
type complianceCheck struct {
	Title          string
	Severity       store.Severity
	Expect         []string // fires when all of these are absent
	RiskyPhrase    string   // fires when present and Qualifier is absent
	Qualifier      string
	Recommendation string
	Fallback       string // snippet used when no source line matched
}

var complianceChecks = []complianceCheck{
	{
		Title:          "No explicit consent mechanism for data collection",
		Severity:       store.SeverityCritical,
		Expect:         []string{"consent", "opt-in", "opt in"},
		Recommendation: "Implement a mandatory checkbox for users to explicitly agree to the Terms of Service and Privacy Policy before account creation, in compliance with the Data Privacy Act (RA 10173).",
		Fallback:       "User data will be collected upon registration to enhance their experience.",
	},
	{
		Title:          "Vague language on third-party data sharing",
		Severity:       store.SeverityWarning,
		RiskyPhrase:    "share",
		Qualifier:      "categories of partners",
		Recommendation: "Specify which categories of partners data may be shared with and for what exact purposes. Provide a link to a list of third-party services.",
		Fallback:       "We may share information with our partners to offer better services.",
	},
	{
		Title:          "Disaster recovery plan lacks specific RTO/RPO",
		Severity:       store.SeverityWarning,
		Expect:         []string{"rto", "rpo", "recovery time objective"},
		Recommendation: "Define specific Recovery Time Objectives (RTO) and Recovery Point Objectives (RPO) for critical systems, as per BSP Circular No. 808 guidelines on IT risk management.",
		Fallback:       "Systems will be restored as soon as possible in the event of an outage.",
	},
	{
		Title:          "No commitment to encryption of data at rest",
		Severity:       store.SeverityCritical,
		Expect:         []string{"encrypt", "aes", "cipher"},
		Recommendation: "State the encryption standard applied to stored personal data (AES-256 or equivalent) and the key management procedure protecting it.",
		Fallback:       "Customer records are stored in our central database.",
	},
	{
		Title:          "Data retention period is not defined",
		Severity:       store.SeverityWarning,
		Expect:         []string{"retention", "retain", "delete after"},
		Recommendation: "Define how long each category of personal data is kept and the disposal procedure once the period lapses, as required under the Data Privacy Act IRR.",
		Fallback:       "Collected information is kept for business purposes.",
	},
	{
		Title:          "No incident response or breach notification procedure",
		Severity:       store.SeverityWarning,
		Expect:         []string{"incident", "breach"},
		Recommendation: "Document an incident response plan including the 72-hour breach notification duty to the National Privacy Commission and affected data subjects.",
		Fallback:       "Operational issues are escalated to the support team.",
	},
}
