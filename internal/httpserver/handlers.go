package httpserver

import (
	"encoding/json"
	"net/http"
	"time"
)

type cycleSummary struct {
	StartedAt  time.Time `json:"startedAt"`
	EndedAt    time.Time `json:"endedAt"`
	Scanned    int       `json:"scanned"`
	Eligible   int       `json:"eligible"`
	Ignored    int       `json:"ignored"`
	Remediated int       `json:"remediated"`
	Failed     int       `json:"failed"`
	TimedOut   int       `json:"timedOut"`
	Deferred   int       `json:"deferred"`
	Error      string    `json:"error,omitempty"`
}

type statusResponse struct {
	State      string        `json:"state"`
	CycleState string        `json:"cycleState"`
	Uptime     string        `json:"uptime"`
	StartTime  time.Time     `json:"startTime"`
	UptimeSec  float64       `json:"uptimeSeconds"`
	LastCycle  *cycleSummary `json:"lastCycle,omitempty"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !s.appState.IsHealthy() {
		w.WriteHeader(http.StatusServiceUnavailable)

		return
	}

	for _, pinger := range s.pingers {
		if err := pinger.Ping(ctx); err != nil {
			s.logger.ErrorContext(ctx, "component ping failed",
				"component", pinger.Name(),
				"reason", err,
			)
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	if !s.appState.IsReady() {
		w.WriteHeader(http.StatusServiceUnavailable)

		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := s.appState.GetState()
	uptime := s.appState.GetUptime()
	startTime := s.appState.GetStartTime()

	response := statusResponse{
		State:      string(state),
		CycleState: string(s.cycler.CurrentState()),
		Uptime:     uptime.String(),
		StartTime:  startTime,
		UptimeSec:  uptime.Seconds(),
	}

	if last := s.cycler.LastResult(); last != nil {
		summary := &cycleSummary{
			StartedAt:  last.StartedAt,
			EndedAt:    last.EndedAt,
			Scanned:    last.Scanned,
			Eligible:   last.Eligible,
			Ignored:    last.Ignored,
			Remediated: last.Remediated,
			Failed:     last.Failed,
			TimedOut:   last.TimedOut,
			Deferred:   last.Deferred,
		}

		if last.Err != nil {
			summary.Error = last.Err.Error()
		}

		response.LastCycle = summary
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.ErrorContext(ctx, "failed to encode status response",
			"error", err,
		)
	}
}
