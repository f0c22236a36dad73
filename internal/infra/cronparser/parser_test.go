package cronparser_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/podreaper-controller/internal/infra/cronparser"
)

func TestSchedule_Next(t *testing.T) {
	t.Parallel()

	t.Run("standard spec returns next occurrence", func(t *testing.T) {
		t.Parallel()

		s, err := cronparser.New("40 7 * * *", "")
		require.NoError(t, err)

		after := time.Date(2026, 2, 15, 7, 0, 0, 0, time.UTC)
		next, err := s.Next(after)
		require.NoError(t, err)
		require.True(t, next.After(after))
		require.Equal(t, 7, next.Hour())
		require.Equal(t, 40, next.Minute())
	})

	t.Run("interval spec returns next occurrence", func(t *testing.T) {
		t.Parallel()

		s, err := cronparser.New("*/10 * * * *", "")
		require.NoError(t, err)

		after := time.Date(2026, 2, 15, 7, 3, 0, 0, time.UTC)
		next, err := s.Next(after)
		require.NoError(t, err)
		require.Equal(t, 10, next.Minute())
	})

	t.Run("with tz uses timezone", func(t *testing.T) {
		t.Parallel()

		s, err := cronparser.New("0 8 * * *", "America/New_York")
		require.NoError(t, err)

		after := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
		next, err := s.Next(after)
		require.NoError(t, err)
		require.True(t, next.After(after))
	})

	t.Run("inline CRON_TZ wins over tz param", func(t *testing.T) {
		t.Parallel()

		s, err := cronparser.New("CRON_TZ=UTC 0 14 * * *", "America/New_York")
		require.NoError(t, err)

		after := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
		next, err := s.Next(after)
		require.NoError(t, err)
		require.Equal(t, 14, next.UTC().Hour())
	})

	t.Run("spec without future occurrence returns error", func(t *testing.T) {
		t.Parallel()

		// February 30th never exists, so go-cron yields the zero time.
		s, err := cronparser.New("0 0 30 2 *", "")
		require.NoError(t, err)

		after := time.Date(2026, 2, 15, 7, 0, 0, 0, time.UTC)
		next, err := s.Next(after)
		require.ErrorIs(t, err, cronparser.ErrNoNextOccurrence)
		require.True(t, next.IsZero())
	})

	t.Run("malformed spec returns error", func(t *testing.T) {
		t.Parallel()

		_, err := cronparser.New("invalid", "")
		require.Error(t, err)
	})
}
