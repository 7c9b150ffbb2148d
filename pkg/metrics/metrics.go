package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	taxEstimator = "tax_estimator"

	estimationsTotal    = "estimations_total"
	estimatedTaxDollars = "estimated_tax_dollars"
	coercedIncomeTotal  = "coerced_income_total"
	reportsTotal        = "reports_total"

	// Labels
	reactionLabel = "reaction"
	formatLabel   = "format"
)

/**
* Metrics definition
**/
var estimationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: taxEstimator,
		Name:      estimationsTotal,
		Help:      "number of estimations partitioned by income reaction tier",
	},
	[]string{reactionLabel},
)

var estimatedTaxMetric = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Subsystem: taxEstimator,
		Name:      estimatedTaxDollars,
		Help:      "distribution of estimated federal income tax",
		Buckets:   prometheus.ExponentialBuckets(1000, 4, 8),
	},
)

var coercedIncomeTotalMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: taxEstimator,
		Name:      coercedIncomeTotal,
		Help:      "number of non-empty income inputs that could not be read as a number and were treated as zero",
	},
)

var reportsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: taxEstimator,
		Name:      reportsTotal,
		Help:      "number of rendered estimate reports partitioned by format",
	},
	[]string{formatLabel},
)

func IncreaseEstimationsTotalMetric(reaction string) {
	estimationsTotalMetric.With(prometheus.Labels{reactionLabel: reaction}).Inc()
}

func ObserveEstimatedTaxMetric(tax float64) {
	estimatedTaxMetric.Observe(tax)
}

func IncreaseCoercedIncomeMetric() {
	coercedIncomeTotalMetric.Inc()
}

func IncreaseReportsTotalMetric(format string) {
	reportsTotalMetric.With(prometheus.Labels{formatLabel: format}).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(estimationsTotalMetric)
	prometheus.MustRegister(estimatedTaxMetric)
	prometheus.MustRegister(coercedIncomeTotalMetric)
	prometheus.MustRegister(reportsTotalMetric)
}
