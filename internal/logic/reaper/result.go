package reaper

import (
	"sync"
	"time"
)

// cycleAccumulator builds one CycleResult incrementally. Many workers record
// into it concurrently; access is serialized by a mutex. The result becomes
// immutable once finalize is called.
type cycleAccumulator struct {
	mu     sync.Mutex
	result *CycleResult
}

func newCycleAccumulator(start time.Time) *cycleAccumulator {
	return &cycleAccumulator{
		result: &CycleResult{
			StartedAt:        start,
			SkippedByVerdict: make(map[Verdict]int),
			Namespaces:       make(map[string]*NamespaceResult),
		},
	}
}

// namespaceLocked returns the per-namespace breakdown, creating it on first
// use. Callers must hold a.mu.
func (a *cycleAccumulator) namespaceLocked(ns string) *NamespaceResult {
	nsResult, ok := a.result.Namespaces[ns]
	if !ok {
		nsResult = &NamespaceResult{}
		a.result.Namespaces[ns] = nsResult
	}

	return nsResult
}

func (a *cycleAccumulator) recordVerdict(ns string, verdict Verdict) {
	a.mu.Lock()
	defer a.mu.Unlock()

	nsResult := a.namespaceLocked(ns)

	a.result.Scanned++
	nsResult.Scanned++

	if verdict == VerdictEligible {
		a.result.Eligible++
		nsResult.Eligible++

		return
	}

	a.result.SkippedByVerdict[verdict]++
}

func (a *cycleAccumulator) recordIgnored(ns string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.result.Ignored++
	a.namespaceLocked(ns).Ignored++
}

func (a *cycleAccumulator) recordDeferred(ns string, count int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.result.Deferred += count
	a.namespaceLocked(ns).Deferred += count
}

func (a *cycleAccumulator) recordAttempt(report AttemptReport) {
	a.mu.Lock()
	defer a.mu.Unlock()

	nsResult := a.namespaceLocked(report.Namespace)

	switch report.Outcome {
	case OutcomeRemediated:
		a.result.Remediated++
		nsResult.Remediated++
	case OutcomeFailed:
		a.result.Failed++
		nsResult.Failed++
		a.result.Failures = append(a.result.Failures, PodFailure{
			Namespace: report.Namespace,
			Pod:       report.Pod,
			Attempts:  report.Attempts,
			Err:       report.Err,
		})
	case OutcomeTimedOut:
		a.result.TimedOut++
		nsResult.TimedOut++
	}
}

// recordTimedOutTask accounts for a queued task that was never dispatched
// before the cycle deadline or shutdown.
func (a *cycleAccumulator) recordTimedOutTask(task RemediationTask) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.result.TimedOut++
	a.namespaceLocked(task.Pod.Namespace).TimedOut++
}

// failNamespace marks one namespace batch as aborted by a pod-list failure.
// Other namespaces proceed.
func (a *cycleAccumulator) failNamespace(ns string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.namespaceLocked(ns).Err = err
}

// fail marks the whole cycle as failed (namespace listing failed, nothing to
// reconcile against).
func (a *cycleAccumulator) fail(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.result.Err = err
}

// finalize stamps the end time and returns the result. The accumulator must
// not be used afterwards.
func (a *cycleAccumulator) finalize(end time.Time) *CycleResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.result.EndedAt = end

	return a.result
}
