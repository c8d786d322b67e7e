// Package season maps wall-clock time onto the fixed reward epoch and its
// day-bucketed claim fee schedule.
package season

import (
	"fmt"
	"time"

	"github.com/petalforge/grovetender/internal/domain"
)

// Clock is a pure function of wall-clock time over one immutable season
// window. It never mutates its configuration.
type Clock struct {
	window   domain.SeasonWindow
	feeByDay map[int]int
}

// NewClock builds a clock from a season window and its fee schedule.
// The schedule must cover every day of the window exactly once.
func NewClock(window domain.SeasonWindow, schedule []domain.FeeScheduleEntry) (*Clock, error) {
	if window.DurationDays <= 0 {
		return nil, fmt.Errorf("season duration must be positive, got %d", window.DurationDays)
	}
	if len(schedule) != window.DurationDays {
		return nil, fmt.Errorf("fee schedule has %d entries, season has %d days", len(schedule), window.DurationDays)
	}

	feeByDay := make(map[int]int, len(schedule))
	for _, entry := range schedule {
		if entry.Day < 1 || entry.Day > window.DurationDays {
			return nil, fmt.Errorf("fee schedule day %d outside season [1,%d]", entry.Day, window.DurationDays)
		}
		if entry.FeePercent < 0 || entry.FeePercent > 100 {
			return nil, fmt.Errorf("fee percent %d for day %d outside [0,100]", entry.FeePercent, entry.Day)
		}
		if _, dup := feeByDay[entry.Day]; dup {
			return nil, fmt.Errorf("duplicate fee schedule entry for day %d", entry.Day)
		}
		feeByDay[entry.Day] = entry.FeePercent
	}

	return &Clock{window: window, feeByDay: feeByDay}, nil
}

// Window returns the configured season window
func (c *Clock) Window() domain.SeasonWindow {
	return c.window
}

// DayNumber returns the 1-indexed season day containing now, or false when
// now falls outside [startTime, startTime + durationDays).
func (c *Clock) DayNumber(now time.Time) (int, bool) {
	if now.Before(c.window.StartTime) || !now.Before(c.window.EndTime()) {
		return 0, false
	}
	return int(now.Sub(c.window.StartTime)/(24*time.Hour)) + 1, true
}

// FeePercentage returns the claim fee for a season day. Out-of-range days
// (including 0 for "no current day") cost nothing: the schedule is coarse
// whole-day buckets and is never interpolated.
func (c *Clock) FeePercentage(day int) int {
	return c.feeByDay[day]
}

// CurrentFee combines DayNumber and FeePercentage for the given instant
func (c *Clock) CurrentFee(now time.Time) (day int, feePercent int) {
	day, ok := c.DayNumber(now)
	if !ok {
		return 0, 0
	}
	return day, c.FeePercentage(day)
}
