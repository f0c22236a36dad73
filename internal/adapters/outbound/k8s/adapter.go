package k8s

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/skillcoder/podreaper-controller/internal/logic/reaper"
)

const defaultPageSize = 500

// adapter implements the reaper.Inventory port over a client-go clientset.
// All listing and delete calls share one rate limiter so the cluster-wide
// API budget holds regardless of worker count.
type adapter struct {
	logger    *slog.Logger
	clientset kubernetes.Interface
	limiter   *rate.Limiter
	pageSize  int64
}

// New creates a new K8s inventory adapter. pageSize bounds list chunk sizes;
// values below 1 fall back to the default.
func New(
	logger *slog.Logger,
	clientset kubernetes.Interface,
	limiter *rate.Limiter,
	pageSize int64,
) reaper.Inventory {
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	return &adapter{
		logger:    logger,
		clientset: clientset,
		limiter:   limiter,
		pageSize:  pageSize,
	}
}

var _ reaper.Inventory = (*adapter)(nil)

func (a *adapter) ListNamespaces(ctx context.Context) ([]string, error) {
	var (
		names         []string
		continueToken string
	)

	for {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("list namespaces: %w", err)
		}

		nsList, err := a.clientset.CoreV1().Namespaces().List(
			ctx,
			metav1.ListOptions{
				Limit:    a.pageSize,
				Continue: continueToken,
			},
		)
		if err != nil {
			return nil, fmt.Errorf("list namespaces: %w", classify(err))
		}

		for i := range nsList.Items {
			names = append(names, nsList.Items[i].Name)
		}

		continueToken = nsList.Continue
		if continueToken == "" {
			return names, nil
		}
	}
}

func (a *adapter) ListPods(
	ctx context.Context,
	namespace string,
) ([]reaper.PodSnapshot, error) {
	var (
		pods          []reaper.PodSnapshot
		continueToken string
	)

	for {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("list pods: %w", err)
		}

		podList, err := a.clientset.CoreV1().Pods(namespace).List(
			ctx,
			metav1.ListOptions{
				Limit:    a.pageSize,
				Continue: continueToken,
			},
		)
		if err != nil {
			return nil, fmt.Errorf("list pods: %w", classify(err))
		}

		for i := range podList.Items {
			pods = append(pods, toSnapshot(&podList.Items[i]))
		}

		continueToken = podList.Continue
		if continueToken == "" {
			return pods, nil
		}
	}
}

func (a *adapter) DeletePod(
	ctx context.Context,
	namespace,
	name string,
) error {
	if err := a.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("delete pod: %w", err)
	}

	// Foreground propagation so dependents are gone before the owning
	// controller sees the pod removed.
	propagation := metav1.DeletePropagationForeground

	err := a.clientset.CoreV1().Pods(namespace).Delete(
		ctx,
		name,
		metav1.DeleteOptions{
			PropagationPolicy: &propagation,
		},
	)
	if err != nil {
		return fmt.Errorf("delete pod: %w", classify(err))
	}

	return nil
}
