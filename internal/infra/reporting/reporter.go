package reporting

import (
	"context"
	"log/slog"

	"github.com/skillcoder/podreaper-controller/internal/infra/metrics"
	"github.com/skillcoder/podreaper-controller/internal/logic/reaper"
)

// Reporter is the reporting sink: one structured log event per remediation
// attempt sequence, one summary per cycle, with Prometheus counters bumped
// alongside.
type Reporter struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Reporter {
	return &Reporter{
		logger: logger.With("component", "reporter"),
	}
}

var _ reaper.Reporter = (*Reporter)(nil)

func (r *Reporter) AttemptCompleted(ctx context.Context, report reaper.AttemptReport) {
	metrics.RecordRemediation(report.Namespace, string(report.Outcome), report.Duration)

	fields := []any{
		"namespace", report.Namespace,
		"pod", report.Pod,
		"phase", report.Phase,
		"priority", string(report.Priority),
		"outcome", string(report.Outcome),
		"attempts", report.Attempts,
		"duration", report.Duration.String(),
	}

	if report.Err != nil {
		fields = append(fields, "reason", report.Err)
		r.logger.ErrorContext(ctx, "pod remediation failed", fields...)

		return
	}

	r.logger.InfoContext(ctx, "pod remediation completed", fields...)
}

func (r *Reporter) CycleCompleted(ctx context.Context, result *reaper.CycleResult) {
	for verdict, count := range result.SkippedByVerdict {
		metrics.RecordVerdicts(string(verdict), count)
	}

	metrics.RecordVerdicts(string(reaper.VerdictEligible), result.Eligible)

	duration := result.EndedAt.Sub(result.StartedAt)

	cycleResult := "ok"
	if result.Err != nil {
		cycleResult = "failed"
	}

	metrics.RecordCycle(cycleResult, duration, result.TimedOut, result.Deferred)

	fields := []any{
		"duration", duration.String(),
		"scanned", result.Scanned,
		"eligible", result.Eligible,
		"ignored", result.Ignored,
		"remediated", result.Remediated,
		"failed", result.Failed,
		"timedOut", result.TimedOut,
		"deferred", result.Deferred,
		"namespaces", len(result.Namespaces),
	}

	for verdict, count := range result.SkippedByVerdict {
		fields = append(fields, "skipped_"+string(verdict), count)
	}

	if result.Err != nil {
		fields = append(fields, "reason", result.Err)
		r.logger.ErrorContext(ctx, "reconciliation cycle failed", fields...)

		return
	}

	r.logger.InfoContext(ctx, "reconciliation cycle completed", fields...)

	for i := range result.Failures {
		r.logger.ErrorContext(ctx, "pod remediation failure in cycle",
			"namespace", result.Failures[i].Namespace,
			"pod", result.Failures[i].Pod,
			"attempts", result.Failures[i].Attempts,
			"reason", result.Failures[i].Err,
		)
	}
}

func (r *Reporter) TriggerSkipped(ctx context.Context, state reaper.State) {
	metrics.RecordTriggerSkipped()

	r.logger.WarnContext(ctx, "cycle trigger skipped",
		"state", string(state),
	)
}
