package reaper

const (
	PodreaperAnnotationSkipKey     = "podreaper.k8s.skillcoder.com/skip"
	PodreaperAnnotationSkipValue   = "true"
	PodreaperAnnotationPriorityKey = "podreaper.k8s.skillcoder.com/priority"
)
