package reaper_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/podreaper-controller/internal/logic/reaper"
)

func task(ns, name string, priority reaper.Priority) reaper.RemediationTask {
	return reaper.RemediationTask{
		Pod: reaper.PodSnapshot{
			Namespace: ns,
			Name:      name,
		},
		Priority: priority,
	}
}

func TestScheduler_Order_PriorityWithinNamespace(t *testing.T) {
	t.Parallel()

	s := &reaper.Scheduler{}

	ordered, deferred := s.Order([]reaper.RemediationTask{
		task("a", "low-1", reaper.PriorityLow),
		task("a", "high-1", reaper.PriorityHigh),
		task("a", "med-1", reaper.PriorityMedium),
		task("a", "high-2", reaper.PriorityHigh),
	})

	require.Empty(t, deferred)
	require.Len(t, ordered, 4)

	names := make([]string, 0, len(ordered))
	for _, tsk := range ordered {
		names = append(names, tsk.Pod.Name)
	}

	// Stable within a tier, High before Medium before Low.
	require.Equal(t, []string{"high-1", "high-2", "med-1", "low-1"}, names)
}

func TestScheduler_Order_NoConsecutiveNamespace(t *testing.T) {
	t.Parallel()

	s := &reaper.Scheduler{}

	// One huge namespace and one tiny one.
	tasks := make([]reaper.RemediationTask, 0, 10002)
	for i := range 10000 {
		tasks = append(tasks, task("big", fmt.Sprintf("pod-%d", i), reaper.PriorityMedium))
	}

	tasks = append(tasks,
		task("small", "pod-a", reaper.PriorityMedium),
		task("small", "pod-b", reaper.PriorityMedium),
	)

	ordered, deferred := s.Order(tasks)
	require.Empty(t, deferred)
	require.Len(t, ordered, 10002)

	posA, posB := -1, -1

	for i, tsk := range ordered {
		if tsk.Pod.Namespace == "small" {
			if tsk.Pod.Name == "pod-a" {
				posA = i
			} else {
				posB = i
			}
		}
	}

	// The small namespace must not wait behind the big one.
	require.Equal(t, 1, posA)
	require.Equal(t, 3, posB)
}

func TestScheduler_Order_InterleavesWhileOthersPending(t *testing.T) {
	t.Parallel()

	s := &reaper.Scheduler{}

	ordered, _ := s.Order([]reaper.RemediationTask{
		task("a", "a-1", reaper.PriorityMedium),
		task("a", "a-2", reaper.PriorityMedium),
		task("b", "b-1", reaper.PriorityMedium),
		task("b", "b-2", reaper.PriorityMedium),
		task("c", "c-1", reaper.PriorityMedium),
	})

	require.Len(t, ordered, 5)

	for i := 1; i < len(ordered); i++ {
		if ordered[i].Pod.Namespace == ordered[i-1].Pod.Namespace {
			// A repeat is only allowed when nothing else was pending, which
			// can only happen at the tail.
			for j := i; j < len(ordered); j++ {
				require.Equal(t, ordered[i].Pod.Namespace, ordered[j].Pod.Namespace)
			}
		}
	}
}

func TestScheduler_Order_HighPriorityNamespaceFirst(t *testing.T) {
	t.Parallel()

	s := &reaper.Scheduler{}

	ordered, _ := s.Order([]reaper.RemediationTask{
		task("a", "a-low", reaper.PriorityLow),
		task("b", "b-high", reaper.PriorityHigh),
		task("c", "c-med", reaper.PriorityMedium),
	})

	require.Len(t, ordered, 3)
	require.Equal(t, "b-high", ordered[0].Pod.Name)
	require.Equal(t, "c-med", ordered[1].Pod.Name)
	require.Equal(t, "a-low", ordered[2].Pod.Name)
}

func TestScheduler_Order_BatchCapDefers(t *testing.T) {
	t.Parallel()

	s := &reaper.Scheduler{MaxBatchSize: 2}

	ordered, deferred := s.Order([]reaper.RemediationTask{
		task("a", "a-high", reaper.PriorityHigh),
		task("a", "a-med", reaper.PriorityMedium),
		task("a", "a-low-1", reaper.PriorityLow),
		task("a", "a-low-2", reaper.PriorityLow),
		task("b", "b-1", reaper.PriorityMedium),
	})

	require.Equal(t, map[string]int{"a": 2}, deferred)
	require.Len(t, ordered, 3)

	// The cap keeps the highest-priority tasks.
	kept := make(map[string]bool)
	for _, tsk := range ordered {
		kept[tsk.Pod.Name] = true
	}

	require.True(t, kept["a-high"])
	require.True(t, kept["a-med"])
	require.True(t, kept["b-1"])
}

func TestScheduler_Order_Empty(t *testing.T) {
	t.Parallel()

	s := &reaper.Scheduler{MaxBatchSize: 10}

	ordered, deferred := s.Order(nil)
	require.Empty(t, ordered)
	require.Empty(t, deferred)
}
