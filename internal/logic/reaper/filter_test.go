package reaper_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/podreaper-controller/internal/logic/reaper"
)

func testRules() reaper.Rules {
	return reaper.Rules{
		ExcludedNamespaces: map[string]struct{}{
			"kube-system":     {},
			"kube-public":     {},
			"kube-node-lease": {},
		},
		HealthyPhases: map[string]struct{}{
			"Running":   {},
			"Succeeded": {},
		},
		MinPodAge:           5 * time.Minute,
		SkipAnnotationKey:   reaper.PodreaperAnnotationSkipKey,
		SkipAnnotationValue: reaper.PodreaperAnnotationSkipValue,
	}
}

func TestRules_Classify(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	old := now.Add(-time.Hour)

	tests := []struct {
		name    string
		givePod reaper.PodSnapshot
		want    reaper.Verdict
	}{
		{
			name: "failed owned old pod is eligible",
			givePod: reaper.PodSnapshot{
				Namespace: "payments",
				Name:      "worker-1",
				Phase:     "Failed",
				CreatedAt: old,
				HasOwner:  true,
			},
			want: reaper.VerdictEligible,
		},
		{
			name: "excluded namespace dominates unhealthy phase",
			givePod: reaper.PodSnapshot{
				Namespace: "kube-system",
				Name:      "coredns-1",
				Phase:     "Failed",
				CreatedAt: old,
				HasOwner:  true,
			},
			want: reaper.VerdictExcludedNamespace,
		},
		{
			name: "healthy phase dominates everything after namespace",
			givePod: reaper.PodSnapshot{
				Namespace: "payments",
				Name:      "api-1",
				Phase:     "Running",
				CreatedAt: old,
				HasOwner:  true,
			},
			want: reaper.VerdictHealthy,
		},
		{
			name: "succeeded counts as healthy",
			givePod: reaper.PodSnapshot{
				Namespace: "batch",
				Name:      "job-1",
				Phase:     "Succeeded",
				CreatedAt: old,
				HasOwner:  true,
			},
			want: reaper.VerdictHealthy,
		},
		{
			name: "ownerless pod is unmanaged",
			givePod: reaper.PodSnapshot{
				Namespace: "payments",
				Name:      "debug-pod",
				Phase:     "Failed",
				CreatedAt: old,
				HasOwner:  false,
			},
			want: reaper.VerdictUnmanaged,
		},
		{
			name: "pod younger than minimum age is too young",
			givePod: reaper.PodSnapshot{
				Namespace: "payments",
				Name:      "worker-2",
				Phase:     "Pending",
				CreatedAt: now.Add(-time.Minute),
				HasOwner:  true,
			},
			want: reaper.VerdictTooYoung,
		},
		{
			name: "pod exactly at minimum age is eligible",
			givePod: reaper.PodSnapshot{
				Namespace: "payments",
				Name:      "worker-3",
				Phase:     "Pending",
				CreatedAt: now.Add(-5 * time.Minute),
				HasOwner:  true,
			},
			want: reaper.VerdictEligible,
		},
		{
			name: "skip annotation exempts the pod",
			givePod: reaper.PodSnapshot{
				Namespace: "payments",
				Name:      "worker-4",
				Phase:     "Failed",
				CreatedAt: old,
				HasOwner:  true,
				Annotations: map[string]string{
					reaper.PodreaperAnnotationSkipKey: "true",
				},
			},
			want: reaper.VerdictSkippedByAnnotation,
		},
		{
			name: "skip annotation with wrong value does not exempt",
			givePod: reaper.PodSnapshot{
				Namespace: "payments",
				Name:      "worker-5",
				Phase:     "Failed",
				CreatedAt: old,
				HasOwner:  true,
				Annotations: map[string]string{
					reaper.PodreaperAnnotationSkipKey: "false",
				},
			},
			want: reaper.VerdictEligible,
		},
		{
			name: "unknown phase is not healthy",
			givePod: reaper.PodSnapshot{
				Namespace: "payments",
				Name:      "worker-6",
				Phase:     "Unknown",
				CreatedAt: old,
				HasOwner:  true,
			},
			want: reaper.VerdictEligible,
		},
	}

	rules := testRules()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, rules.Classify(tt.givePod, now))
		})
	}
}
