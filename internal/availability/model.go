package availability

import (
	"fmt"
	"time"
)

const (
	// DefaultRate is used for tutors or weekdays missing from the rate table.
	DefaultRate = 0.6

	// FullyBookedThreshold is the cutoff for the per-day fully booked draw.
	FullyBookedThreshold = 0.15
)

// WeeklyRates holds one availability rate per weekday, Sunday first.
// A zero entry means the weekday has no rate.
type WeeklyRates [7]float64

// RateTable maps a tutor name to its weekly rates. Lookups are case sensitive.
type RateTable map[string]WeeklyRates

// Model answers per (tutor, weekday) availability questions. It is safe for
// concurrent use; the table is never written after NewModel returns.
type Model struct {
	rates RateTable
}

func NewModel(rates RateTable) *Model {
	copied := make(RateTable, len(rates))
	for name, week := range rates {
		copied[name] = week
	}
	return &Model{rates: copied}
}

// Rate returns the probability that a given slot is open for tutor on weekday.
func (m *Model) Rate(tutor string, weekday time.Weekday) float64 {
	if m == nil || weekday < time.Sunday || weekday > time.Saturday {
		return DefaultRate
	}
	week, ok := m.rates[tutor]
	if !ok {
		return DefaultRate
	}
	if r := week[weekday]; r > 0 {
		return r
	}
	return DefaultRate
}

// IsFullyBooked reports whether the whole day is closed for tutor.
func (m *Model) IsFullyBooked(tutor string, weekday time.Weekday) bool {
	return FullyBooked(tutor, weekday)
}

// FullyBooked is drawn independently of the rate table.
func FullyBooked(tutor string, weekday time.Weekday) bool {
	return SeededRandom(fullBookSeed(tutor, weekday)) < FullyBookedThreshold
}

func fullBookSeed(tutor string, weekday time.Weekday) string {
	return fmt.Sprintf("%s-%d-fullbook", tutor, int(weekday))
}
