package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the domain events the service cares about. The server
// registers them and serves the scrape endpoint.
type Metrics struct {
	Logins       prometheus.Counter
	Signups      prometheus.Counter
	Analyses     prometheus.Counter
	Improvements prometheus.Counter
	Exports      *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vesta_logins_total",
			Help: "Successful logins, credential and social combined.",
		}),
		Signups: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vesta_signups_total",
			Help: "Accounts created through the signup endpoint.",
		}),
		Analyses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vesta_analyses_total",
			Help: "Document analyses started.",
		}),
		Improvements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vesta_improvements_total",
			Help: "Plan improvement runs started.",
		}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vesta_exports_total",
			Help: "Improved plan downloads by format.",
		}, []string{"format"}),
	}
	if reg != nil {
		reg.MustRegister(m.Logins, m.Signups, m.Analyses, m.Improvements, m.Exports)
	}
	return m
}
