package domain

import "time"

// SeasonWindow is an immutable reward epoch, configured once per season
type SeasonWindow struct {
	StartTime    time.Time `json:"start_time"`
	DurationDays int       `json:"duration_days"`
}

// EndTime returns the exclusive end instant of the season. Season days
// are fixed 24h buckets, not calendar days, so a DST shift never
// stretches or shrinks a day.
func (w SeasonWindow) EndTime() time.Time {
	return w.StartTime.Add(time.Duration(w.DurationDays) * 24 * time.Hour)
}

// FeeScheduleEntry maps a season day to a claim fee percentage.
// The schedule is intentionally coarse: whole-day buckets, never
// interpolated between days.
type FeeScheduleEntry struct {
	Day        int `json:"day"`
	FeePercent int `json:"fee_percent"`
}
