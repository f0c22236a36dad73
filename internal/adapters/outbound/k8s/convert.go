package k8s

import (
	corev1 "k8s.io/api/core/v1"

	"github.com/skillcoder/podreaper-controller/internal/logic/reaper"
)

func toSnapshot(pod *corev1.Pod) reaper.PodSnapshot {
	return reaper.PodSnapshot{
		Namespace:   pod.Namespace,
		Name:        pod.Name,
		Phase:       string(pod.Status.Phase),
		CreatedAt:   pod.CreationTimestamp.Time,
		HasOwner:    len(pod.OwnerReferences) > 0,
		Annotations: pod.Annotations,
		Labels:      pod.Labels,
	}
}
