package cronparser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	cron "github.com/netresearch/go-cron"
)

// ErrNoNextOccurrence reports a spec that matches no future point in time,
// such as a day-of-month that never exists (e.g. February 30th).
var ErrNoNextOccurrence = errors.New("cron spec has no future occurrence")

var _parser = cron.MustNewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
)

// Schedule computes next cycle trigger times from a cron spec using go-cron.
// It implements the coordinator's Schedule port.
type Schedule struct {
	schedule cron.Schedule
}

// New parses spec once and returns a reusable Schedule. If tz is non-empty
// and the spec has no CRON_TZ=/TZ= prefix, it prepends CRON_TZ=<tz>.
// Defaults to UTC when no tz is given.
func New(spec, tz string) (*Schedule, error) {
	schedule, err := _parser.Parse(buildSpec(spec, tz))
	if err != nil {
		return nil, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}

	return &Schedule{schedule: schedule}, nil
}

// Next returns the next occurrence strictly after `after`. go-cron signals
// "no occurrence within its search horizon" with the zero time; that is
// surfaced as ErrNoNextOccurrence so callers never wait on a zero deadline.
func (s *Schedule) Next(after time.Time) (time.Time, error) {
	next := s.schedule.Next(after)
	if next.IsZero() {
		return time.Time{}, ErrNoNextOccurrence
	}

	return next, nil
}

func buildSpec(spec, tz string) string {
	hasTZPrefix := strings.HasPrefix(spec, "CRON_TZ=") ||
		strings.HasPrefix(spec, "TZ=")

	if tz != "" && !hasTZPrefix {
		return "CRON_TZ=" + tz + " " + spec
	}

	if !hasTZPrefix {
		return "CRON_TZ=UTC " + spec
	}

	return spec
}
