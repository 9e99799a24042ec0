package pricing

import (
	"errors"
	"strings"
)

var ErrUnknownDuration = errors.New("unknown session duration")

// Duration is a session length as offered in the booking form.
type Duration string

const (
	OneHour       Duration = "1 hour"
	NinetyMinutes Duration = "1.5 hours"
	TwoHours      Duration = "2 hours"
)

// Durations lists the offered options in display order.
func Durations() []Duration {
	return []Duration{OneHour, NinetyMinutes, TwoHours}
}

// Hours is the hour multiplier for d. Unrecognized values count as one hour.
func (d Duration) Hours() float64 {
	switch d {
	case NinetyMinutes:
		return 1.5
	case TwoHours:
		return 2
	default:
		return 1
	}
}

func (d Duration) Valid() bool {
	switch d {
	case OneHour, NinetyMinutes, TwoHours:
		return true
	}
	return false
}

// ParseDuration accepts the option labels, surrounding whitespace aside.
func ParseDuration(s string) (Duration, error) {
	d := Duration(strings.TrimSpace(s))
	if !d.Valid() {
		return "", ErrUnknownDuration
	}
	return d, nil
}

// SessionPrice is hourlyRate times the duration multiplier. The product is
// not rounded or clamped; negative rates give negative prices.
func SessionPrice(hourlyRate float64, d Duration) float64 {
	return hourlyRate * d.Hours()
}
