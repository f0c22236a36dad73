package reaper_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skillcoder/podreaper-controller/internal/logic/reaper"
	"github.com/skillcoder/podreaper-controller/internal/logic/reaper/mocks"
)

func testOptions() reaper.Options {
	return reaper.Options{
		Rules: reaper.Rules{
			MinPodAge: time.Minute,
		},
		Priorities: reaper.PriorityPolicy{
			AnnotationKey: reaper.PodreaperAnnotationPriorityKey,
			Default:       reaper.PriorityMedium,
		},
		Interval:                time.Minute,
		CycleTimeout:            30 * time.Second,
		DrainGrace:              5 * time.Second,
		Workers:                 4,
		MaxGlobalConcurrency:    8,
		MaxNamespaceConcurrency: 4,
		MaxRetryAttempts:        3,
		ListConcurrency:         2,
	}
}

func agedPod(ns, name string) reaper.PodSnapshot {
	return reaper.PodSnapshot{
		Namespace: ns,
		Name:      name,
		Phase:     "Failed",
		CreatedAt: time.Now().Add(-time.Hour),
		HasOwner:  true,
	}
}

func TestCoordinator_TriggerCycle_HappyPath(t *testing.T) {
	t.Parallel()

	logger := slog.Default()
	inventory := mocks.NewMockInventory(t)
	reporter := mocks.NewMockReporter(t)

	inventory.EXPECT().
		ListNamespaces(mock.Anything).
		Return([]string{"payments", "batch"}, nil).
		Once()
	inventory.EXPECT().
		ListPods(mock.Anything, "payments").
		Return([]reaper.PodSnapshot{
			agedPod("payments", "worker-1"),
			agedPod("payments", "worker-2"),
		}, nil).
		Once()
	inventory.EXPECT().
		ListPods(mock.Anything, "batch").
		Return([]reaper.PodSnapshot{
			agedPod("batch", "job-1"),
		}, nil).
		Once()
	inventory.EXPECT().
		DeletePod(mock.Anything, mock.Anything, mock.Anything).
		Return(nil).
		Times(3)

	reporter.EXPECT().
		AttemptCompleted(mock.Anything, mock.Anything).
		Return().
		Times(3)
	reporter.EXPECT().
		CycleCompleted(mock.Anything, mock.Anything).
		Return().
		Once()

	c := reaper.NewCoordinator(logger, inventory, reporter, testOptions())

	require.True(t, c.TriggerCycle(t.Context()))
	require.Equal(t, reaper.StateIdle, c.CurrentState())

	result := c.LastResult()
	require.NotNil(t, result)
	require.NoError(t, result.Err)
	require.Equal(t, 3, result.Scanned)
	require.Equal(t, 3, result.Eligible)
	require.Equal(t, 3, result.Remediated)
	require.Equal(t, 0, result.Failed)
	require.Equal(t, 0, result.TimedOut)
	require.Equal(t, 2, result.Namespaces["payments"].Remediated)
	require.Equal(t, 1, result.Namespaces["batch"].Remediated)
}

func TestCoordinator_TriggerCycle_SingleFlight(t *testing.T) {
	t.Parallel()

	logger := slog.Default()
	inventory := mocks.NewMockInventory(t)
	reporter := mocks.NewMockReporter(t)

	block := make(chan struct{})

	inventory.EXPECT().
		ListNamespaces(mock.Anything).
		RunAndReturn(func(_ context.Context) ([]string, error) {
			<-block

			return nil, nil
		}).
		Once()

	reporter.EXPECT().
		TriggerSkipped(mock.Anything, reaper.StateRunning).
		Return().
		Times(9)
	reporter.EXPECT().
		CycleCompleted(mock.Anything, mock.Anything).
		Return().
		Once()

	c := reaper.NewCoordinator(logger, inventory, reporter, testOptions())

	var (
		wg    sync.WaitGroup
		first bool
	)

	wg.Add(1)

	go func() {
		defer wg.Done()

		first = c.TriggerCycle(context.Background())
	}()

	require.Eventually(t, func() bool {
		return c.CurrentState() == reaper.StateRunning
	}, 2*time.Second, time.Millisecond)

	for range 9 {
		require.False(t, c.TriggerCycle(t.Context()))
	}

	close(block)
	wg.Wait()

	require.True(t, first)
	require.Equal(t, reaper.StateIdle, c.CurrentState())
}

func TestCoordinator_TriggerCycle_NamespaceListFailureFailsCycle(t *testing.T) {
	t.Parallel()

	logger := slog.Default()
	inventory := mocks.NewMockInventory(t)
	reporter := mocks.NewMockReporter(t)

	inventory.EXPECT().
		ListNamespaces(mock.Anything).
		Return(nil, testTransientError{}).
		Once()

	reporter.EXPECT().
		CycleCompleted(mock.Anything, mock.Anything).
		Return().
		Once()

	c := reaper.NewCoordinator(logger, inventory, reporter, testOptions())

	require.True(t, c.TriggerCycle(t.Context()))

	result := c.LastResult()
	require.NotNil(t, result)
	require.ErrorIs(t, result.Err, reaper.ErrListNamespaces)
	require.Equal(t, 0, result.Scanned)
}

func TestCoordinator_TriggerCycle_PodListFailureIsolatesNamespace(t *testing.T) {
	t.Parallel()

	logger := slog.Default()
	inventory := mocks.NewMockInventory(t)
	reporter := mocks.NewMockReporter(t)

	inventory.EXPECT().
		ListNamespaces(mock.Anything).
		Return([]string{"good", "bad"}, nil).
		Once()
	inventory.EXPECT().
		ListPods(mock.Anything, "good").
		Return([]reaper.PodSnapshot{agedPod("good", "worker-1")}, nil).
		Once()
	inventory.EXPECT().
		ListPods(mock.Anything, "bad").
		Return(nil, testTransientError{}).
		Once()
	inventory.EXPECT().
		DeletePod(mock.Anything, "good", "worker-1").
		Return(nil).
		Once()

	reporter.EXPECT().
		AttemptCompleted(mock.Anything, mock.Anything).
		Return().
		Once()
	reporter.EXPECT().
		CycleCompleted(mock.Anything, mock.Anything).
		Return().
		Once()

	c := reaper.NewCoordinator(logger, inventory, reporter, testOptions())

	require.True(t, c.TriggerCycle(t.Context()))

	result := c.LastResult()
	require.NotNil(t, result)
	require.NoError(t, result.Err)
	require.Equal(t, 1, result.Remediated)
	require.ErrorIs(t, result.Namespaces["bad"].Err, reaper.ErrListPods)
	require.NoError(t, result.Namespaces["good"].Err)
}

func TestCoordinator_TriggerCycle_IgnorePriorityDropsTask(t *testing.T) {
	t.Parallel()

	logger := slog.Default()
	inventory := mocks.NewMockInventory(t)
	reporter := mocks.NewMockReporter(t)

	ignored := agedPod("payments", "noisy-1")
	ignored.Annotations = map[string]string{
		reaper.PodreaperAnnotationPriorityKey: "ignore",
	}

	inventory.EXPECT().
		ListNamespaces(mock.Anything).
		Return([]string{"payments"}, nil).
		Once()
	inventory.EXPECT().
		ListPods(mock.Anything, "payments").
		Return([]reaper.PodSnapshot{ignored}, nil).
		Once()

	reporter.EXPECT().
		CycleCompleted(mock.Anything, mock.Anything).
		Return().
		Once()

	c := reaper.NewCoordinator(logger, inventory, reporter, testOptions())

	require.True(t, c.TriggerCycle(t.Context()))

	result := c.LastResult()
	require.NotNil(t, result)
	require.Equal(t, 1, result.Eligible)
	require.Equal(t, 1, result.Ignored)
	require.Equal(t, 0, result.Remediated)
	require.Equal(t, 0, result.Failed)
}

func TestCoordinator_TriggerCycle_DeadlineTimesOutTasks(t *testing.T) {
	t.Parallel()

	logger := slog.Default()
	inventory := mocks.NewMockInventory(t)
	reporter := mocks.NewMockReporter(t)

	opts := testOptions()
	opts.CycleTimeout = 50 * time.Millisecond
	opts.DrainGrace = 50 * time.Millisecond

	inventory.EXPECT().
		ListNamespaces(mock.Anything).
		Return([]string{"payments"}, nil).
		Once()
	inventory.EXPECT().
		ListPods(mock.Anything, "payments").
		Return([]reaper.PodSnapshot{
			agedPod("payments", "worker-1"),
			agedPod("payments", "worker-2"),
		}, nil).
		Once()
	inventory.EXPECT().
		DeletePod(mock.Anything, "payments", mock.Anything).
		RunAndReturn(func(ctx context.Context, _, _ string) error {
			<-ctx.Done()

			return ctx.Err()
		}).
		Times(2)

	reporter.EXPECT().
		AttemptCompleted(mock.Anything, mock.Anything).
		Return().
		Times(2)
	reporter.EXPECT().
		CycleCompleted(mock.Anything, mock.Anything).
		Return().
		Once()

	c := reaper.NewCoordinator(logger, inventory, reporter, opts)

	require.True(t, c.TriggerCycle(t.Context()))

	result := c.LastResult()
	require.NotNil(t, result)
	require.Equal(t, 2, result.TimedOut)
	require.Equal(t, 0, result.Remediated)
	require.Equal(t, 0, result.Failed)
}

// stubSchedule yields occurrences a fixed cadence after any reference time;
// a zero cadence yields the zero time, like a cron spec that never matches.
type stubSchedule struct {
	cadence time.Duration
}

func (s stubSchedule) Next(after time.Time) (time.Time, error) {
	if s.cadence == 0 {
		return time.Time{}, nil
	}

	return after.Add(s.cadence), nil
}

func TestCoordinator_Run_ScheduleWithoutOccurrenceFallsBackToInterval(t *testing.T) {
	t.Parallel()

	logger := slog.Default()
	inventory := mocks.NewMockInventory(t)
	reporter := mocks.NewMockReporter(t)

	// A zero next occurrence must not become an immediately-firing timer
	// that re-triggers cycles back to back; Once catches any extra cycle.
	inventory.EXPECT().
		ListNamespaces(mock.Anything).
		Return(nil, nil).
		Once()
	reporter.EXPECT().
		CycleCompleted(mock.Anything, mock.Anything).
		Return().
		Once()

	opts := testOptions()
	opts.Interval = time.Hour
	opts.Schedule = stubSchedule{}

	c := reaper.NewCoordinator(logger, inventory, reporter, opts)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, c.Start(ctx))

	require.Eventually(t, func() bool {
		return c.LastResult() != nil
	}, 2*time.Second, time.Millisecond)

	time.Sleep(100 * time.Millisecond)

	cancel()
	require.NoError(t, c.Shutdown(context.Background()))
}

func TestCoordinator_Ping(t *testing.T) {
	t.Parallel()

	t.Run("not ready before start", func(t *testing.T) {
		t.Parallel()

		c := reaper.NewCoordinator(slog.Default(), mocks.NewMockInventory(t), mocks.NewMockReporter(t), testOptions())

		require.Error(t, c.Ping(t.Context()))
	})

	t.Run("healthy after recent cycle", func(t *testing.T) {
		t.Parallel()

		inventory := mocks.NewMockInventory(t)
		reporter := mocks.NewMockReporter(t)

		inventory.EXPECT().
			ListNamespaces(mock.Anything).
			Return(nil, nil).
			Once()
		reporter.EXPECT().
			CycleCompleted(mock.Anything, mock.Anything).
			Return().
			Once()

		opts := testOptions()
		opts.Interval = time.Hour

		c := reaper.NewCoordinator(slog.Default(), inventory, reporter, opts)

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, c.Start(ctx))

		require.Eventually(t, func() bool {
			return c.LastResult() != nil
		}, 2*time.Second, time.Millisecond)

		require.NoError(t, c.Ping(t.Context()))

		cancel()
		require.NoError(t, c.Shutdown(context.Background()))
	})

	t.Run("stale cycle is unhealthy", func(t *testing.T) {
		t.Parallel()

		inventory := mocks.NewMockInventory(t)
		reporter := mocks.NewMockReporter(t)

		inventory.EXPECT().
			ListNamespaces(mock.Anything).
			Return(nil, nil)
		reporter.EXPECT().
			CycleCompleted(mock.Anything, mock.Anything).
			Return()

		opts := testOptions()
		opts.Interval = 20 * time.Millisecond

		c := reaper.NewCoordinator(slog.Default(), inventory, reporter, opts)

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, c.Start(ctx))

		require.Eventually(t, func() bool {
			return c.LastResult() != nil
		}, 2*time.Second, time.Millisecond)

		cancel()
		require.NoError(t, c.Shutdown(context.Background()))

		// Older than two intervals with no new cycle.
		time.Sleep(150 * time.Millisecond)

		require.Error(t, c.Ping(t.Context()))
	})

	t.Run("missed schedule occurrence is unhealthy", func(t *testing.T) {
		t.Parallel()

		inventory := mocks.NewMockInventory(t)
		reporter := mocks.NewMockReporter(t)

		inventory.EXPECT().
			ListNamespaces(mock.Anything).
			Return(nil, nil)
		reporter.EXPECT().
			CycleCompleted(mock.Anything, mock.Anything).
			Return()

		// The interval stays long so only the schedule cadence can make
		// the staleness check fire.
		opts := testOptions()
		opts.Interval = time.Hour
		opts.Schedule = stubSchedule{cadence: 20 * time.Millisecond}

		c := reaper.NewCoordinator(slog.Default(), inventory, reporter, opts)

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, c.Start(ctx))

		require.Eventually(t, func() bool {
			return c.LastResult() != nil
		}, 2*time.Second, time.Millisecond)

		cancel()
		require.NoError(t, c.Shutdown(context.Background()))

		// Past the next scheduled occurrence with no new cycle.
		time.Sleep(150 * time.Millisecond)

		require.Error(t, c.Ping(t.Context()))
	})

	t.Run("distant schedule occurrence is healthy", func(t *testing.T) {
		t.Parallel()

		inventory := mocks.NewMockInventory(t)
		reporter := mocks.NewMockReporter(t)

		inventory.EXPECT().
			ListNamespaces(mock.Anything).
			Return(nil, nil).
			Once()
		reporter.EXPECT().
			CycleCompleted(mock.Anything, mock.Anything).
			Return().
			Once()

		opts := testOptions()
		opts.Interval = time.Millisecond
		opts.Schedule = stubSchedule{cadence: time.Hour}

		c := reaper.NewCoordinator(slog.Default(), inventory, reporter, opts)

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, c.Start(ctx))

		require.Eventually(t, func() bool {
			return c.LastResult() != nil
		}, 2*time.Second, time.Millisecond)

		time.Sleep(50 * time.Millisecond)

		require.NoError(t, c.Ping(t.Context()))

		cancel()
		require.NoError(t, c.Shutdown(context.Background()))
	})
}

func TestCoordinator_Name(t *testing.T) {
	t.Parallel()

	c := reaper.NewCoordinator(slog.Default(), mocks.NewMockInventory(t), mocks.NewMockReporter(t), testOptions())

	require.Equal(t, "reaper-coordinator", c.Name())
}
