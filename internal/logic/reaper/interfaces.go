package reaper

import (
	"context"
	"errors"
	"time"
)

// Inventory is the port interface for cluster access.
// Implementations are provided by adapters in the outbound layer.
type Inventory interface {
	ListNamespaces(ctx context.Context) ([]string, error)

	ListPods(
		ctx context.Context,
		namespace string,
	) ([]PodSnapshot, error)

	DeletePod(
		ctx context.Context,
		namespace,
		name string,
	) error
}

// Reporter is the port interface for the reporting sink. It receives one
// event per remediation attempt sequence and one summary per cycle.
type Reporter interface {
	AttemptCompleted(ctx context.Context, report AttemptReport)
	CycleCompleted(ctx context.Context, result *CycleResult)
	TriggerSkipped(ctx context.Context, state State)
}

// Schedule computes the next cycle trigger time. Implemented by the cron
// parser infra when a run schedule is configured.
type Schedule interface {
	Next(after time.Time) (time.Time, error)
}

// notFound is a private interface for checking "not found" errors
// without importing the adapter package.
type notFound interface {
	IsNotFound()
}

// transient is a private interface for retryable errors (rate limiting,
// timeouts, temporary unavailability).
type transient interface {
	IsTransient()
}

// permanent is a private interface for non-retryable errors (authorization,
// malformed request).
type permanent interface {
	IsPermanent()
}

func isNotFound(err error) bool {
	var target notFound

	return errors.As(err, &target)
}

func isTransient(err error) bool {
	var target transient

	return errors.As(err, &target)
}

func isPermanent(err error) bool {
	var target permanent

	return errors.As(err, &target)
}
