package reaper

import "errors"

var (
	ErrListNamespaces  = errors.New("list namespaces")
	ErrListPods        = errors.New("list pods")
	ErrDeletePod       = errors.New("delete pod")
	ErrCycleDraining   = errors.New("cycle draining, retry aborted")
	ErrAttemptsExhaust = errors.New("retry attempts exhausted")
)
