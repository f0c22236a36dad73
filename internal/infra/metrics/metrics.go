package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var podsScannedTotal = promauto.With(prometheus.DefaultRegisterer).NewCounter(
	prometheus.CounterOpts{
		Name: "podreaper_pods_scanned_total",
		Help: "Total number of pods inspected across all cycles.",
	},
)

var verdictsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "podreaper_verdicts_total",
		Help: "Eligibility verdicts assigned to pods, by verdict.",
	},
	[]string{"verdict"},
)

var remediationsTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "podreaper_remediations_total",
		Help: "Completed remediation attempt sequences, by namespace and outcome.",
	},
	[]string{"namespace", "outcome"},
)

var remediationFailuresTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "podreaper_remediation_failures_total",
		Help: "Failed remediations, by namespace (alerting aid; outcome=failed subset of remediations).",
	},
	[]string{"namespace"},
)

var remediationDuration = promauto.With(prometheus.DefaultRegisterer).NewHistogram(
	prometheus.HistogramOpts{
		Name:    "podreaper_remediation_duration_seconds",
		Help:    "Duration of one remediation attempt sequence including retries.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
	},
)

var cyclesTotal = promauto.With(prometheus.DefaultRegisterer).NewCounterVec(
	prometheus.CounterOpts{
		Name: "podreaper_cycles_total",
		Help: "Completed reconciliation cycles, by result (ok or failed).",
	},
	[]string{"result"},
)

var cycleTriggersSkippedTotal = promauto.With(prometheus.DefaultRegisterer).NewCounter(
	prometheus.CounterOpts{
		Name: "podreaper_cycle_triggers_skipped_total",
		Help: "Cycle triggers rejected because the previous cycle was still active.",
	},
)

var cycleDuration = promauto.With(prometheus.DefaultRegisterer).NewHistogram(
	prometheus.HistogramOpts{
		Name:    "podreaper_cycle_duration_seconds",
		Help:    "Duration of one full reconciliation cycle.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 14),
	},
)

var tasksTimedOutTotal = promauto.With(prometheus.DefaultRegisterer).NewCounter(
	prometheus.CounterOpts{
		Name: "podreaper_tasks_timed_out_total",
		Help: "Remediation tasks abandoned by a cycle deadline or shutdown.",
	},
)

var tasksDeferredTotal = promauto.With(prometheus.DefaultRegisterer).NewCounter(
	prometheus.CounterOpts{
		Name: "podreaper_tasks_deferred_total",
		Help: "Eligible tasks pushed to the next cycle by the per-namespace batch cap.",
	},
)

// RecordVerdicts counts classified pods in bulk at cycle end.
func RecordVerdicts(verdict string, count int) {
	podsScannedTotal.Add(float64(count))
	verdictsTotal.WithLabelValues(verdict).Add(float64(count))
}

// RecordRemediation counts one completed attempt sequence.
func RecordRemediation(namespace, outcome string, duration time.Duration) {
	remediationsTotal.WithLabelValues(namespace, outcome).Inc()
	remediationDuration.Observe(duration.Seconds())

	if outcome == "failed" {
		remediationFailuresTotal.WithLabelValues(namespace).Inc()
	}
}

// RecordCycle counts one completed cycle with its duration and the tasks it
// abandoned or deferred.
func RecordCycle(result string, duration time.Duration, timedOut, deferred int) {
	cyclesTotal.WithLabelValues(result).Inc()
	cycleDuration.Observe(duration.Seconds())
	tasksTimedOutTotal.Add(float64(timedOut))
	tasksDeferredTotal.Add(float64(deferred))
}

// RecordTriggerSkipped counts one rejected cycle trigger.
func RecordTriggerSkipped() {
	cycleTriggersSkippedTotal.Inc()
}
