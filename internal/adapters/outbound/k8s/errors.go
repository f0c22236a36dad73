package k8s

import (
	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// PodNotFoundError represents a "not found" case that is not an error:
// deleting an absent pod is an idempotent success.
type PodNotFoundError struct{}

func (e *PodNotFoundError) Error() string {
	return "pod not found"
}

func (e *PodNotFoundError) IsNotFound() {}

var errPodNotFound = &PodNotFoundError{}

// TransientError wraps retryable API failures: rate limiting, timeouts,
// temporary unavailability.
type TransientError struct {
	cause error
}

func (e *TransientError) Error() string {
	return "transient api error: " + e.cause.Error()
}

func (e *TransientError) Unwrap() error { return e.cause }

func (e *TransientError) IsTransient() {}

// PermanentError wraps non-retryable API failures: authorization failures,
// malformed requests.
type PermanentError struct {
	cause error
}

func (e *PermanentError) Error() string {
	return "permanent api error: " + e.cause.Error()
}

func (e *PermanentError) Unwrap() error { return e.cause }

func (e *PermanentError) IsPermanent() {}

// classify maps client-go API errors onto the domain error taxonomy.
// Unrecognized errors default to transient so one odd apiserver response
// does not permanently fail a pod that a retry would have handled.
func classify(err error) error {
	switch {
	case apierrors.IsNotFound(err):
		return errPodNotFound
	case apierrors.IsForbidden(err),
		apierrors.IsUnauthorized(err),
		apierrors.IsBadRequest(err),
		apierrors.IsInvalid(err),
		apierrors.IsMethodNotSupported(err):
		return &PermanentError{cause: err}
	default:
		return &TransientError{cause: err}
	}
}
