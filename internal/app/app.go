package app

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/skillcoder/podreaper-controller/internal/adapters/outbound/k8s"
	"github.com/skillcoder/podreaper-controller/internal/config"
	"github.com/skillcoder/podreaper-controller/internal/httpserver"
	"github.com/skillcoder/podreaper-controller/internal/infra/cronparser"
	"github.com/skillcoder/podreaper-controller/internal/infra/reporting"
	"github.com/skillcoder/podreaper-controller/internal/infra/shutdown"
	"github.com/skillcoder/podreaper-controller/internal/logic/reaper"
)

type App struct {
	logger   *slog.Logger
	appState appstater
	servers  []appServer
}

// New creates a new application instance with all dependencies wired.
func New(logger *slog.Logger, cfg *config.Config, appState appstater) (*App, error) {
	// Create K8s config
	kubeConfig, err := clientcmd.BuildConfigFromFlags(
		cfg.KubeMaster,
		cfg.KubeConfig,
	)
	if err != nil {
		return nil, fmt.Errorf("build k8s config: %w", err)
	}

	// Create K8s clientset
	clientset, err := kubernetes.NewForConfig(kubeConfig)
	if err != nil {
		return nil, fmt.Errorf("create clientset: %w", err)
	}

	// One API budget shared by listing and deletion
	limiter := rate.NewLimiter(rate.Limit(cfg.APIRateLimit), cfg.APIRateBurst)

	// Create secondary adapter (K8s inventory)
	inventory := k8s.New(logger, clientset, limiter, cfg.ListPageSize)

	reporter := reporting.New(logger)

	var schedule reaper.Schedule

	if cfg.RunSchedule != "" {
		cronSchedule, err := cronparser.New(cfg.RunSchedule, cfg.RunScheduleTZ)
		if err != nil {
			return nil, fmt.Errorf("parse run schedule: %w", err)
		}

		schedule = cronSchedule
	}

	coordinator := reaper.NewCoordinator(logger, inventory, reporter, reaper.Options{
		Rules: reaper.Rules{
			ExcludedNamespaces:  cfg.ExcludedNamespaces,
			HealthyPhases:       cfg.HealthyPhases,
			MinPodAge:           cfg.MinPodAge,
			SkipAnnotationKey:   cfg.SkipAnnotationKey,
			SkipAnnotationValue: cfg.SkipAnnotationValue,
		},
		Priorities: reaper.PriorityPolicy{
			AnnotationKey: cfg.PriorityAnnotationKey,
			Default:       cfg.DefaultPriority,
		},
		Interval:                 cfg.RunInterval,
		Schedule:                 schedule,
		CycleTimeout:             cfg.CycleTimeout,
		DrainGrace:               cfg.DrainGrace,
		Workers:                  cfg.Workers,
		MaxGlobalConcurrency:     cfg.MaxGlobalConcurrency,
		MaxNamespaceConcurrency:  cfg.MaxNamespaceConcurrency,
		MaxRetryAttempts:         cfg.MaxRetryAttempts,
		MaxBatchSizePerNamespace: cfg.MaxBatchSizePerNamespace,
		ListConcurrency:          cfg.ListConcurrency,
	})

	metricsServer := httpserver.NewMetricsServer(logger, cfg.MetricsPort)
	httpServer := httpserver.New(logger, appState, coordinator, cfg.HTTPPort,
		coordinator, metricsServer)

	// Startup order; shutdown runs in reverse
	servers := []appServer{metricsServer, httpServer, coordinator}

	for _, server := range servers {
		if err := appState.RegisterShutdowner(server); err != nil {
			return nil, fmt.Errorf("register shutdowner %s: %w", server.Name(), err)
		}
	}

	return &App{
		logger:   logger,
		appState: appState,
		servers:  servers,
	}, nil
}

// Run starts the application and blocks until context is cancelled or a
// termination signal arrives.
func (a *App) Run(originCtx context.Context) error {
	if err := a.appState.SetStarting(originCtx); err != nil {
		return fmt.Errorf("set starting application state: %w", err)
	}

	ctx, cancel := context.WithCancel(originCtx)
	defer cancel()

	signalHandler := shutdown.New(a.logger, a.appState)
	go signalHandler.HandleSignals(ctx, cancel)

	readyChans := make([]<-chan struct{}, 0, len(a.servers))

	for _, server := range a.servers {
		a.logger.InfoContext(ctx, "starting component", "component", server.Name())

		if err := server.Start(ctx); err != nil {
			shutdownErr := a.appState.Shutdown(ctx)
			if shutdownErr != nil {
				a.logger.ErrorContext(ctx, "shutdown after failed start", "reason", shutdownErr)
			}

			return fmt.Errorf("start %s: %w", server.Name(), err)
		}

		readyChans = append(readyChans, server.Ready())
	}

	select {
	case <-allChannelsClose(ctx, a.logger, readyChans...):
	case <-ctx.Done():
		a.logger.InfoContext(ctx, "cancelled while waiting for components to become ready")
	}

	if ctx.Err() == nil {
		if err := a.appState.SetRunning(ctx); err != nil {
			return fmt.Errorf("set running application state: %w", err)
		}

		a.logger.InfoContext(ctx, "application running")
	}

	<-ctx.Done()

	if err := a.appState.Shutdown(originCtx); err != nil {
		return fmt.Errorf("application shutdown: %w", err)
	}

	return nil
}

// allChannelsClose returns a channel that closes once every input channel has
// closed. Context cancellation only unblocks waiting on channels that will
// never close.
func allChannelsClose(ctx context.Context, logger *slog.Logger, chans ...<-chan struct{}) <-chan struct{} {
	out := make(chan struct{})

	go func() {
		defer close(out)

		for _, ch := range chans {
			select {
			case <-ch:
			case <-ctx.Done():
				logger.InfoContext(ctx, "stopped waiting for readiness, context done")

				return
			}
		}
	}()

	return out
}
