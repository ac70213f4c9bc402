package availability

import (
	"fmt"
	"time"
)

// Window - абсолютные границы доступности теста.
// Состояние не кэшируется, а каждый раз вычисляется от "сейчас":
// между запросами текущее время меняется, а хранимые границы - нет.
type Window struct {
	OpensAt         time.Time
	ClosesAt        time.Time
	DurationMinutes int
}

// State - производное состояние окна, ровно один из признаков истинен.
type State struct {
	IsUpcoming  bool
	IsAvailable bool
	IsExpired   bool
	// отсчет до открытия, только для IsUpcoming
	TimeUntilStart *string
	// отсчет до закрытия, только для IsAvailable
	TimeUntilEnd *string
}

// Evaluate - чистая функция без побочных эффектов, безопасна на каждом чтении.
func Evaluate(w Window, now time.Time) State {
	switch {
	case now.Before(w.OpensAt):
		countdown := FormatCountdown(w.OpensAt.Sub(now))
		return State{
			IsUpcoming:     true,
			TimeUntilStart: &countdown,
		}
	case now.Before(w.ClosesAt):
		countdown := FormatCountdown(w.ClosesAt.Sub(now))
		return State{
			IsAvailable:  true,
			TimeUntilEnd: &countdown,
		}
	default:
		return State{IsExpired: true}
	}
}

// FormatCountdown - округление вниз до грубой человеческой единицы: "2d", "1h30m", "45m".
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Minute)
	days := int(d / (24 * time.Hour))
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	if hours > 0 {
		if minutes > 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", minutes)
}
