package reaper

// PriorityPolicy assigns a priority tier to eligible pods from an annotation,
// falling back to a configured default for missing or unrecognized values.
type PriorityPolicy struct {
	AnnotationKey string
	Default       Priority
}

func (p PriorityPolicy) Classify(pod PodSnapshot) Priority {
	value, ok := pod.Annotations[p.AnnotationKey]
	if !ok {
		return p.Default
	}

	priority, ok := ParsePriority(value)
	if !ok {
		return p.Default
	}

	return priority
}
