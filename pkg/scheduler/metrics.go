package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ArticlesTotal counts processed articles by outcome
	ArticlesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "renewscope",
			Name:      "articles_total",
			Help:      "Total number of processed articles",
		},
		[]string{"outcome"},
	)

	// RejectionsTotal counts gate rejections by reason
	RejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "renewscope",
			Name:      "rejections_total",
			Help:      "Total number of rejected articles",
		},
		[]string{"reason"},
	)

	// ProjectsAdded counts new projects by type
	ProjectsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "renewscope",
			Name:      "projects_added_total",
			Help:      "Total number of stored projects",
		},
		[]string{"type"},
	)

	// BatchRuns counts finished batches by status
	BatchRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "renewscope",
			Name:      "batch_runs_total",
			Help:      "Total number of batch runs",
		},
		[]string{"status"},
	)

	// BatchDuration holds the duration of the last batch
	BatchDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "renewscope",
			Name:      "batch_duration_seconds",
			Help:      "Duration of the last batch run in seconds",
		},
	)
)

// article outcome labels
const (
	outcomeSkipped  = "skipped"
	outcomeFailed   = "failed"
	outcomeRejected = "rejected"
	outcomeAccepted = "accepted"
)
