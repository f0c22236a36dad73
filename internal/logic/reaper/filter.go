package reaper

import "time"

// Rules is the configured rule set for eligibility classification.
type Rules struct {
	ExcludedNamespaces  map[string]struct{}
	HealthyPhases       map[string]struct{}
	MinPodAge           time.Duration
	SkipAnnotationKey   string
	SkipAnnotationValue string
}

// Classify produces exactly one verdict for a pod. Evaluation is ordered,
// first match wins. Age and annotation are checked last; they are the only
// rules that can change as the same pod is re-observed across cycles.
func (r Rules) Classify(pod PodSnapshot, now time.Time) Verdict {
	if _, excluded := r.ExcludedNamespaces[pod.Namespace]; excluded {
		return VerdictExcludedNamespace
	}

	if _, healthy := r.HealthyPhases[pod.Phase]; healthy {
		return VerdictHealthy
	}

	if !pod.HasOwner {
		return VerdictUnmanaged
	}

	if now.Sub(pod.CreatedAt) < r.MinPodAge {
		return VerdictTooYoung
	}

	if pod.Annotations[r.SkipAnnotationKey] == r.SkipAnnotationValue {
		return VerdictSkippedByAnnotation
	}

	return VerdictEligible
}
