package reaper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"
)

// Executor performs the delete action for one task with retry, exponential
// backoff and jitter. A not-found target counts as success: the pod is gone,
// which is the desired end state.
type Executor struct {
	logger      *slog.Logger
	inventory   Inventory
	maxAttempts int
	backoff     wait.Backoff
}

// NewExecutor creates a remediation executor. maxAttempts bounds the total
// number of delete calls per task, including the first one.
func NewExecutor(
	logger *slog.Logger,
	inventory Inventory,
	maxAttempts int,
) *Executor {
	return &Executor{
		logger:      logger,
		inventory:   inventory,
		maxAttempts: maxAttempts,
		backoff: wait.Backoff{
			Duration: 200 * time.Millisecond,
			Factor:   2.0,
			Jitter:   0.1,
			Steps:    maxAttempts,
			Cap:      10 * time.Second,
		},
	}
}

// Remediate runs the attempt sequence for one task. The delete calls run
// under ctx; once drain is closed no further retries are started, so a cycle
// deadline aborts pending retries while the in-flight call finishes under
// ctx. A nil drain channel never fires.
func (e *Executor) Remediate(
	ctx context.Context,
	drain <-chan struct{},
	task RemediationTask,
) AttemptReport {
	logger := e.logger.With(
		"pod", task.Pod.Name,
		"namespace", task.Pod.Namespace,
		"priority", string(task.Priority),
	)

	start := time.Now()
	report := AttemptReport{
		Namespace: task.Pod.Namespace,
		Pod:       task.Pod.Name,
		Phase:     task.Pod.Phase,
		Priority:  task.Priority,
	}

	backoff := e.backoff

	for {
		task.Attempts++

		err := e.inventory.DeletePod(ctx, task.Pod.Namespace, task.Pod.Name)

		switch {
		case err == nil:
			report.Outcome = OutcomeRemediated
		case isNotFound(err):
			logger.DebugContext(ctx, "pod already absent, treating as remediated")

			report.Outcome = OutcomeRemediated
		case isTransient(err) && task.Attempts < e.maxAttempts:
			logger.DebugContext(ctx, "transient delete error, backing off",
				"attempt", task.Attempts,
				"reason", err,
			)

			if waitErr := e.sleep(ctx, drain, backoff.Step()); waitErr != nil {
				report.Outcome = OutcomeFailed
				report.Err = fmt.Errorf("%w: %w", waitErr, err)

				break
			}

			continue
		case isTransient(err):
			report.Outcome = OutcomeFailed
			report.Err = fmt.Errorf("%w: %w", ErrAttemptsExhaust, err)
		default:
			// Permanent errors and anything unclassified fail immediately.
			if isPermanent(err) {
				logger.WarnContext(ctx, "permanent delete error, not retrying", "reason", err)
			}

			report.Outcome = OutcomeFailed
			report.Err = fmt.Errorf("%w: %w", ErrDeletePod, err)
		}

		break
	}

	report.Attempts = task.Attempts
	report.Duration = time.Since(start)

	return report
}

func (e *Executor) sleep(
	ctx context.Context,
	drain <-chan struct{},
	delay time.Duration,
) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-drain:
		return ErrCycleDraining
	case <-timer.C:
		return nil
	}
}
