package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	window := Window{
		OpensAt:         t0,
		ClosesAt:        t0.Add(2 * time.Hour),
		DurationMinutes: 60,
	}

	t.Run(`upcoming window check`, func(t *testing.T) {
		st := Evaluate(window, t0.Add(-1*time.Hour))
		require.True(t, st.IsUpcoming)
		require.False(t, st.IsAvailable)
		require.False(t, st.IsExpired)
		require.NotNil(t, st.TimeUntilStart)
		require.Equal(t, "1h", *st.TimeUntilStart)
		require.Nil(t, st.TimeUntilEnd)
	})

	t.Run(`available window check`, func(t *testing.T) {
		st := Evaluate(window, t0.Add(30*time.Minute))
		require.True(t, st.IsAvailable)
		require.False(t, st.IsUpcoming)
		require.False(t, st.IsExpired)
		require.NotNil(t, st.TimeUntilEnd)
		require.Equal(t, "1h30m", *st.TimeUntilEnd)
		require.Nil(t, st.TimeUntilStart)
	})

	t.Run(`expired window check`, func(t *testing.T) {
		st := Evaluate(window, t0.Add(3*time.Hour))
		require.True(t, st.IsExpired)
		require.False(t, st.IsUpcoming)
		require.False(t, st.IsAvailable)
		require.Nil(t, st.TimeUntilStart)
		require.Nil(t, st.TimeUntilEnd)
	})

	t.Run(`window boundaries check`, func(t *testing.T) {
		// открытие включительно, закрытие исключительно
		st := Evaluate(window, window.OpensAt)
		require.True(t, st.IsAvailable)
		st = Evaluate(window, window.ClosesAt)
		require.True(t, st.IsExpired)
	})

	t.Run(`exactly one state for any now`, func(t *testing.T) {
		for offset := -48 * time.Hour; offset <= 48*time.Hour; offset += 7 * time.Minute {
			st := Evaluate(window, t0.Add(offset))
			count := 0
			for _, flag := range []bool{st.IsUpcoming, st.IsAvailable, st.IsExpired} {
				if flag {
					count++
				}
			}
			require.Equal(t, 1, count, "offset %v", offset)
		}
	})

	t.Run(`monotonic forward transitions`, func(t *testing.T) {
		stateOf := func(st State) int {
			if st.IsUpcoming {
				return 0
			}
			if st.IsAvailable {
				return 1
			}
			return 2
		}
		prev := -1
		for offset := -3 * time.Hour; offset <= 6*time.Hour; offset += time.Minute {
			current := stateOf(Evaluate(window, t0.Add(offset)))
			require.GreaterOrEqual(t, current, prev)
			prev = current
		}
	})

	t.Run(`countdown decreases and never negative`, func(t *testing.T) {
		first := Evaluate(window, t0.Add(-90*time.Minute))
		second := Evaluate(window, t0.Add(-20*time.Minute))
		require.Equal(t, "1h30m", *first.TimeUntilStart)
		require.Equal(t, "20m", *second.TimeUntilStart)

		last := Evaluate(window, window.ClosesAt.Add(-30*time.Second))
		require.True(t, last.IsAvailable)
		require.Equal(t, "0m", *last.TimeUntilEnd)
	})
}

func TestFormatCountdown(t *testing.T) {
	t.Run(`coarse units check`, func(t *testing.T) {
		require.Equal(t, "2d", FormatCountdown(50*time.Hour))
		require.Equal(t, "1d", FormatCountdown(24*time.Hour))
		require.Equal(t, "23h59m", FormatCountdown(24*time.Hour-time.Minute))
		require.Equal(t, "1h", FormatCountdown(time.Hour))
		require.Equal(t, "1h30m", FormatCountdown(90*time.Minute))
		require.Equal(t, "45m", FormatCountdown(45*time.Minute))
		require.Equal(t, "0m", FormatCountdown(30*time.Second))
		require.Equal(t, "0m", FormatCountdown(-time.Hour))
	})
}
