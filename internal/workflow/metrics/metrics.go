package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	id "riskgate/pkg/domain"
)

// Metrics holds the workflow engine's Prometheus metrics.
type Metrics struct {
	CasesCreated       *prometheus.CounterVec
	DecisionsProcessed *prometheus.CounterVec
	DecisionConflicts  prometheus.Counter
}

// New creates and registers all workflow metrics.
func New() *Metrics {
	return &Metrics{
		CasesCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "riskgate_workflow_cases_created_total",
			Help: "Cases created, by risk tier",
		}, []string{"risk_tier"}),
		DecisionsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "riskgate_workflow_decisions_total",
			Help: "Audit decisions processed, by outcome",
		}, []string{"outcome"}),
		DecisionConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "riskgate_workflow_decision_conflicts_total",
			Help: "Decisions rejected because a concurrent mutation won the race",
		}),
	}
}

func (m *Metrics) IncrementCasesCreated(tier id.RiskTier) {
	if m == nil {
		return
	}
	m.CasesCreated.WithLabelValues(tier.String()).Inc()
}

func (m *Metrics) IncrementDecisionsProcessed(outcome id.AuditOutcome) {
	if m == nil {
		return
	}
	m.DecisionsProcessed.WithLabelValues(outcome.String()).Inc()
}

func (m *Metrics) IncrementDecisionConflicts() {
	if m == nil {
		return
	}
	m.DecisionConflicts.Inc()
}
