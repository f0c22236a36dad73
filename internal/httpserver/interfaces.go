package httpserver

import (
	"context"
	"time"

	"github.com/skillcoder/podreaper-controller/internal/infra/appstate"
	"github.com/skillcoder/podreaper-controller/internal/logic/reaper"
)

// appstater is an internal interface for application state management
type appstater interface {
	GetState() appstate.State
	IsHealthy() bool
	IsReady() bool
	GetUptime() time.Duration
	GetStartTime() time.Time
}

// cycler exposes the reconciliation state for the status endpoint.
type cycler interface {
	CurrentState() reaper.State
	LastResult() *reaper.CycleResult
}

// Pinger is a component whose liveness is aggregated into /-/healthz.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}
