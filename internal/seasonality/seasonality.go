// Package seasonality models when legitimate card activity happens: weekday,
// hour-of-day and calendar-month acceptance weights for the transaction
// engine's rejection sampler.
package seasonality

import "time"

// weekdayFactor weights days of the week; Saturday shopping peaks, Sunday
// closures trough.
var weekdayFactor = map[time.Weekday]float64{
	time.Monday:    0.9,
	time.Tuesday:   0.95,
	time.Wednesday: 1.0,
	time.Thursday:  1.05,
	time.Friday:    1.3,
	time.Saturday:  1.6,
	time.Sunday:    0.7,
}

// Factor returns the acceptance weight for a timestamp as the product of
// independent weekday, hour and month factors. Pure function; consumes no
// randomness.
func Factor(t time.Time) float64 {
	return weekdayFactor[t.Weekday()] * hourFactor(t.Hour()) * monthFactor(t.Month())
}

// hourFactor peaks at lunch (12-14h) and dinner (18-21h); overnight activity
// is near-dead.
func hourFactor(hour int) float64 {
	switch {
	case hour <= 5:
		return 0.15
	case hour <= 8:
		return 0.6
	case hour <= 11:
		return 1.0
	case hour <= 14:
		return 1.4
	case hour <= 17:
		return 1.1
	case hour <= 21:
		return 1.5
	default:
		return 0.8
	}
}

// monthFactor covers Christmas, the January/July sales and the summer season.
func monthFactor(month time.Month) float64 {
	switch month {
	case time.December:
		return 1.8
	case time.January, time.July:
		return 1.5
	case time.June, time.August:
		return 1.3
	default:
		return 1.0
	}
}
