package reaper

import "time"

// PodSnapshot is an immutable view of one pod, captured once per cycle.
type PodSnapshot struct {
	Namespace   string
	Name        string
	Phase       string
	CreatedAt   time.Time
	HasOwner    bool
	Annotations map[string]string
	Labels      map[string]string
}

// Verdict is the eligibility classification of a pod. Exactly one verdict is
// assigned per pod per cycle; only VerdictEligible proceeds to remediation.
type Verdict string

const (
	VerdictHealthy             Verdict = "healthy"
	VerdictExcludedNamespace   Verdict = "excluded_namespace"
	VerdictUnmanaged           Verdict = "unmanaged"
	VerdictTooYoung            Verdict = "too_young"
	VerdictSkippedByAnnotation Verdict = "skipped_by_annotation"
	VerdictEligible            Verdict = "eligible"
)

// Priority is the dispatch urgency tier of an eligible pod. PriorityIgnore is
// terminal: the pod is dropped from the work queue without counting as failed.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
	PriorityIgnore Priority = "ignore"
)

// rank orders priorities for scheduling; lower dispatches first.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// ParsePriority maps an annotation value to a Priority.
// Returns false for unrecognized values.
func ParsePriority(value string) (Priority, bool) {
	switch Priority(value) {
	case PriorityHigh, PriorityMedium, PriorityLow, PriorityIgnore:
		return Priority(value), true
	default:
		return "", false
	}
}

// RemediationTask is one queued delete action for an eligible pod.
type RemediationTask struct {
	Pod      PodSnapshot
	Priority Priority
	Attempts int
}

// Outcome is the terminal result of one remediation attempt sequence.
type Outcome string

const (
	OutcomeRemediated Outcome = "remediated"
	OutcomeFailed     Outcome = "failed"
	OutcomeTimedOut   Outcome = "timed_out"
)

// AttemptReport describes one completed remediation attempt sequence.
type AttemptReport struct {
	Namespace string
	Pod       string
	Phase     string
	Priority  Priority
	Outcome   Outcome
	Attempts  int
	Duration  time.Duration
	Err       error
}

// PodFailure records one pod whose remediation exhausted its attempts or hit
// a permanent error.
type PodFailure struct {
	Namespace string
	Pod       string
	Attempts  int
	Err       error
}

// NamespaceResult is the per-namespace breakdown inside a CycleResult.
type NamespaceResult struct {
	Scanned    int
	Eligible   int
	Ignored    int
	Remediated int
	Failed     int
	TimedOut   int
	Deferred   int
	Err        error
}

// CycleResult aggregates one full reconciliation pass. It is built
// incrementally while the cycle runs and is immutable once handed to the
// reporting sink.
type CycleResult struct {
	StartedAt time.Time
	EndedAt   time.Time

	Scanned    int
	Eligible   int
	Ignored    int
	Remediated int
	Failed     int
	TimedOut   int
	Deferred   int

	// SkippedByVerdict counts pods excluded before remediation, keyed by the
	// non-eligible verdict that excluded them.
	SkippedByVerdict map[Verdict]int

	Namespaces map[string]*NamespaceResult
	Failures   []PodFailure

	// Err is set when the cycle itself failed (namespace listing), as opposed
	// to individual pods failing.
	Err error
}
