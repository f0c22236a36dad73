package reaper

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// State is the coordinator cycle state. At most one cycle is ever in
// StateRunning or StateDraining.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateDraining State = "draining"
)

// Options configures the cycle coordinator and the components it owns.
type Options struct {
	Rules      Rules
	Priorities PriorityPolicy

	// Interval between cycle triggers. Ignored when Schedule is set.
	Interval time.Duration

	// Schedule optionally drives cycle triggers from a cron expression
	// instead of the fixed interval.
	Schedule Schedule

	// CycleTimeout bounds one full pass; on expiry the cycle drains.
	CycleTimeout time.Duration

	// DrainGrace is how long in-flight deletions may finish after the
	// cycle deadline before being abandoned.
	DrainGrace time.Duration

	Workers                  int
	MaxGlobalConcurrency     int
	MaxNamespaceConcurrency  int
	MaxRetryAttempts         int
	MaxBatchSizePerNamespace int

	// ListConcurrency bounds parallel per-namespace pod listing.
	ListConcurrency int
}

// Coordinator owns the single-flight guard, cycle deadline and result
// aggregation for reconciliation passes, and runs the trigger loop.
type Coordinator struct {
	logger    *slog.Logger
	inventory Inventory
	reporter  Reporter

	rules      Rules
	priorities PriorityPolicy
	scheduler  *Scheduler
	dispatcher *Dispatcher
	executor   *Executor

	interval        time.Duration
	schedule        Schedule
	cycleTimeout    time.Duration
	drainGrace      time.Duration
	listConcurrency int

	mu           sync.RWMutex
	state        State
	lastCycleEnd time.Time
	lastResult   *CycleResult

	ready      chan struct{}
	doneCh     chan struct{}
	inShutdown atomic.Bool
}

// NewCoordinator creates a cycle coordinator with its scheduler, dispatcher
// and executor wired from opts.
func NewCoordinator(
	logger *slog.Logger,
	inventory Inventory,
	reporter Reporter,
	opts Options,
) *Coordinator {
	workers := max(opts.Workers, 1)
	listConcurrency := max(opts.ListConcurrency, 1)

	return &Coordinator{
		logger:     logger,
		inventory:  inventory,
		reporter:   reporter,
		rules:      opts.Rules,
		priorities: opts.Priorities,
		scheduler: &Scheduler{
			MaxBatchSize: opts.MaxBatchSizePerNamespace,
		},
		dispatcher: NewDispatcher(
			logger,
			workers,
			opts.MaxGlobalConcurrency,
			opts.MaxNamespaceConcurrency,
		),
		executor:        NewExecutor(logger, inventory, opts.MaxRetryAttempts),
		interval:        opts.Interval,
		schedule:        opts.Schedule,
		cycleTimeout:    opts.CycleTimeout,
		drainGrace:      opts.DrainGrace,
		listConcurrency: listConcurrency,
		state:           StateIdle,
		ready:           make(chan struct{}),
		doneCh:          make(chan struct{}),
	}
}

// Name returns the name of the coordinator component.
func (c *Coordinator) Name() string {
	return "reaper-coordinator"
}

// Start launches the trigger loop in a goroutine.
func (c *Coordinator) Start(ctx context.Context) error {
	if c.inShutdown.Load() {
		c.logger.InfoContext(ctx, "coordinator is shutting down, skipping start")

		return nil
	}

	go c.run(ctx)

	return nil
}

// Ready returns a channel that is closed once the trigger loop is running.
func (c *Coordinator) Ready() <-chan struct{} {
	return c.ready
}

// Ping reports coordinator health: ready and with a recent enough cycle.
func (c *Coordinator) Ping(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ready:
		return c.checkStaleness(time.Now())
	default:
		return fmt.Errorf("coordinator is not ready")
	}
}

// checkStaleness reports an error when the last completed cycle is older than
// the trigger cadence allows: two intervals, or one missed cron occurrence.
func (c *Coordinator) checkStaleness(now time.Time) error {
	last := c.lastCycle()

	if c.schedule == nil {
		age := now.Sub(last)
		if age > 2*c.interval {
			return fmt.Errorf("last cycle finished too long ago: %s", age.Round(time.Second).String())
		}

		return nil
	}

	due, err := c.schedule.Next(last)
	if err != nil {
		// Nothing is due, so nothing can be overdue.
		return nil
	}

	overdue, err := c.schedule.Next(due)
	if err != nil {
		return nil
	}

	if now.After(overdue) {
		return fmt.Errorf("missed scheduled cycle at %s, last cycle finished at %s",
			due.Format(time.RFC3339), last.Format(time.RFC3339))
	}

	return nil
}

// Shutdown waits for the trigger loop to exit. The in-flight cycle finishes
// best-effort under the caller's context.
func (c *Coordinator) Shutdown(ctx context.Context) error {
	if !c.inShutdown.CompareAndSwap(false, true) {
		c.logger.ErrorContext(ctx, "coordinator is already shutting down, skipping shutdown")

		return nil
	}

	defer func() {
		c.logger.InfoContext(ctx, "coordinator shut downed")
	}()

	c.logger.InfoContext(ctx, "shutting down coordinator")

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before reconcile loop exited: %w", ctx.Err())
	case <-c.doneCh:
		c.logger.InfoContext(ctx, "reconcile loop exited")
	}

	return nil
}

// CurrentState returns the cycle state.
func (c *Coordinator) CurrentState() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.state
}

// LastResult returns the most recently completed cycle result, or nil before
// the first cycle finishes.
func (c *Coordinator) LastResult() *CycleResult {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.lastResult
}

// TriggerCycle starts one reconciliation pass unless a cycle is already
// running or draining. A rejected trigger is recorded as skipped and returns
// false.
func (c *Coordinator) TriggerCycle(ctx context.Context) bool {
	if !c.transition(StateIdle, StateRunning) {
		state := c.CurrentState()
		c.logger.InfoContext(ctx, "cycle trigger skipped, previous cycle still active",
			"state", string(state),
		)
		c.reporter.TriggerSkipped(ctx, state)

		return false
	}

	// The guard is released on every exit path.
	defer c.setIdle()

	c.runCycle(ctx)

	return true
}

// run is the trigger loop: one immediate cycle, then interval- or
// schedule-driven triggers until the context is cancelled.
func (c *Coordinator) run(ctx context.Context) {
	defer close(c.doneCh)

	logger := c.logger.With("controller", "run")

	close(c.ready)

	c.TriggerCycle(ctx)

	if c.schedule != nil {
		c.runScheduled(ctx, logger)

		return
	}

	c.runInterval(ctx, logger)
}

func (c *Coordinator) runInterval(ctx context.Context, logger *slog.Logger) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.TriggerCycle(ctx)
		case <-ctx.Done():
			logger.InfoContext(ctx, "terminating reconcile loop")

			return
		}
	}
}

func (c *Coordinator) runScheduled(ctx context.Context, logger *slog.Logger) {
	for {
		next, err := c.schedule.Next(time.Now())
		if err != nil || next.IsZero() {
			// A spec with no future occurrence must not become a zero
			// deadline that fires immediately on every iteration.
			logger.ErrorContext(ctx, "no next schedule occurrence, falling back to interval",
				"interval", c.interval.String(),
				"reason", err,
			)
			c.runInterval(ctx, logger)

			return
		}

		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			logger.InfoContext(ctx, "terminating reconcile loop")

			return
		case <-timer.C:
			c.TriggerCycle(ctx)
		}
	}
}

// runCycle executes one full pass: inventory fetch, classification,
// scheduling, dispatch and result assembly.
func (c *Coordinator) runCycle(ctx context.Context) {
	logger := c.logger.With("controller", "runCycle")
	acc := newCycleAccumulator(time.Now())

	cycleCtx, cancelCycle := context.WithTimeout(ctx, c.cycleTimeout)
	defer cancelCycle()

	// In-flight deletions may outlive the cycle deadline by the drain grace.
	graceCtx, cancelGrace := context.WithTimeout(ctx, c.cycleTimeout+c.drainGrace)
	defer cancelGrace()

	stopWatch := context.AfterFunc(cycleCtx, func() {
		if c.transition(StateRunning, StateDraining) {
			logger.InfoContext(graceCtx, "cycle deadline reached, draining")
		}
	})
	defer stopWatch()

	tasks, ok := c.collect(cycleCtx, logger, acc)
	if !ok {
		c.complete(ctx, acc)

		return
	}

	ordered, deferred := c.scheduler.Order(tasks)
	for ns, count := range deferred {
		acc.recordDeferred(ns, count)
	}

	logger.DebugContext(cycleCtx, "dispatching remediation tasks",
		"tasks", len(ordered),
		"deferredNamespaces", len(deferred),
	)

	leftover := c.dispatcher.Run(cycleCtx, ordered, func(_ context.Context, task RemediationTask) {
		report := c.executor.Remediate(graceCtx, cycleCtx.Done(), task)

		// Results landing after the deadline or shutdown count as timed out,
		// not toward remediated or failed.
		if cycleCtx.Err() != nil {
			report.Outcome = OutcomeTimedOut
		}

		acc.recordAttempt(report)
		c.reporter.AttemptCompleted(graceCtx, report)
	})

	for _, task := range leftover {
		acc.recordTimedOutTask(task)
	}

	c.complete(ctx, acc)
}

// collect fetches the inventory and classifies every pod, returning the
// eligible tasks. ok is false when the namespace listing itself failed and
// the cycle has nothing to reconcile against.
func (c *Coordinator) collect(
	ctx context.Context,
	logger *slog.Logger,
	acc *cycleAccumulator,
) ([]RemediationTask, bool) {
	namespaces, err := c.inventory.ListNamespaces(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "list namespaces failed, aborting cycle", "reason", err)
		acc.fail(fmt.Errorf("%w: %w", ErrListNamespaces, err))

		return nil, false
	}

	now := time.Now()

	var (
		tasksMu sync.Mutex
		tasks   []RemediationTask
	)

	// Pod listing is parallelized per namespace; a failing namespace aborts
	// only its own batch.
	var group errgroup.Group

	group.SetLimit(c.listConcurrency)

	for _, namespace := range namespaces {
		group.Go(func() error {
			pods, err := c.inventory.ListPods(ctx, namespace)
			if err != nil {
				logger.ErrorContext(ctx, "list pods failed, skipping namespace",
					"namespace", namespace,
					"reason", err,
				)
				acc.failNamespace(namespace, fmt.Errorf("%w: %w", ErrListPods, err))

				return nil
			}

			batch := make([]RemediationTask, 0, len(pods))

			for i := range pods {
				verdict := c.rules.Classify(pods[i], now)
				acc.recordVerdict(pods[i].Namespace, verdict)

				if verdict != VerdictEligible {
					continue
				}

				priority := c.priorities.Classify(pods[i])
				if priority == PriorityIgnore {
					acc.recordIgnored(pods[i].Namespace)

					continue
				}

				batch = append(batch, RemediationTask{
					Pod:      pods[i],
					Priority: priority,
				})
			}

			tasksMu.Lock()
			tasks = append(tasks, batch...)
			tasksMu.Unlock()

			return nil
		})
	}

	// Workers only return nil; Wait is for completion.
	_ = group.Wait()

	return tasks, true
}

// complete finalizes the result, publishes it and updates cycle bookkeeping.
func (c *Coordinator) complete(ctx context.Context, acc *cycleAccumulator) {
	result := acc.finalize(time.Now())

	c.mu.Lock()
	c.lastCycleEnd = result.EndedAt
	c.lastResult = result
	c.mu.Unlock()

	c.reporter.CycleCompleted(context.WithoutCancel(ctx), result)
}

func (c *Coordinator) transition(from, to State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != from {
		return false
	}

	c.state = to

	return true
}

func (c *Coordinator) setIdle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateIdle
}

func (c *Coordinator) lastCycle() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.lastCycleEnd
}
