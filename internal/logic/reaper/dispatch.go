package reaper

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Dispatcher runs a fixed-size worker pool over the scheduler's ordered task
// sequence, enforcing a global in-flight cap and a per-namespace in-flight
// cap simultaneously. Workers never block on a namespace at its cap while
// other work is dispatchable.
type Dispatcher struct {
	logger    *slog.Logger
	workers   int
	maxGlobal int
	maxPerNS  int
}

func NewDispatcher(
	logger *slog.Logger,
	workers,
	maxGlobal,
	maxPerNS int,
) *Dispatcher {
	return &Dispatcher{
		logger:    logger,
		workers:   workers,
		maxGlobal: maxGlobal,
		maxPerNS:  maxPerNS,
	}
}

// Run dispatches tasks to exec until the queue is exhausted or ctx is
// cancelled, then returns the tasks that were never dispatched.
func (d *Dispatcher) Run(
	ctx context.Context,
	tasks []RemediationTask,
	exec func(ctx context.Context, task RemediationTask),
) []RemediationTask {
	queue := newCapQueue(tasks, d.maxGlobal, d.maxPerNS)

	stop := context.AfterFunc(ctx, queue.close)
	defer stop()

	var group errgroup.Group

	for range d.workers {
		group.Go(func() error {
			for {
				task, ok := queue.next()
				if !ok {
					return nil
				}

				exec(ctx, task)
				queue.release(task.Pod.Namespace)
			}
		})
	}

	// Workers only return nil; Wait is for completion, not errors.
	_ = group.Wait()

	leftover := queue.drain()
	if len(leftover) > 0 {
		d.logger.DebugContext(ctx, "dispatch stopped with tasks pending",
			"pending", len(leftover),
		)
	}

	return leftover
}

// capQueue is the shared dispatch queue. Tasks keep the scheduler's order;
// next skips over tasks whose namespace is at its cap.
type capQueue struct {
	mu        sync.Mutex
	cond      *sync.Cond
	tasks     []RemediationTask
	inFlight  int
	perNS     map[string]int
	maxGlobal int
	maxPerNS  int
	closed    bool
}

func newCapQueue(tasks []RemediationTask, maxGlobal, maxPerNS int) *capQueue {
	q := &capQueue{
		tasks:     tasks,
		perNS:     make(map[string]int),
		maxGlobal: maxGlobal,
		maxPerNS:  maxPerNS,
	}
	q.cond = sync.NewCond(&q.mu)

	return q
}

// next blocks until a task is dispatchable under both caps, the queue is
// emptied, or the queue is closed. ok is false when the worker should exit.
func (q *capQueue) next() (RemediationTask, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		if q.closed || len(q.tasks) == 0 {
			return RemediationTask{}, false
		}

		if q.inFlight < q.maxGlobal {
			for i := range q.tasks {
				ns := q.tasks[i].Pod.Namespace
				if q.perNS[ns] >= q.maxPerNS {
					continue
				}

				task := q.tasks[i]
				q.tasks = append(q.tasks[:i], q.tasks[i+1:]...)
				q.inFlight++
				q.perNS[ns]++

				return task, true
			}
		}

		// Everything pending is capped; wait for a release or close.
		q.cond.Wait()
	}
}

func (q *capQueue) release(ns string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.inFlight--
	q.perNS[ns]--

	if q.perNS[ns] == 0 {
		delete(q.perNS, ns)
	}

	q.cond.Broadcast()
}

// close stops further dispatching; tasks already handed to workers finish.
func (q *capQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.cond.Broadcast()
}

// drain returns the undispatched tasks. Call only after all workers exited.
func (q *capQueue) drain() []RemediationTask {
	q.mu.Lock()
	defer q.mu.Unlock()

	leftover := q.tasks
	q.tasks = nil

	return leftover
}
