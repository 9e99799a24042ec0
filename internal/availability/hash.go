package availability

import (
	"math"
	"unicode/utf16"
)

// SeededRandom maps seed to a reproducible value in [0, 1).
//
// The accumulator is hash*31 + c over the UTF-16 code units of seed, wrapped
// to a signed 32-bit integer after every step. The result is the fractional
// part of sin(hash)*10000. Slot thresholds were tuned against this exact
// function, so it must not change.
func SeededRandom(seed string) float64 {
	var hash int32
	for _, c := range utf16.Encode([]rune(seed)) {
		hash = (hash << 5) - hash + int32(c)
	}

	x := math.Sin(float64(hash)) * 10000
	return x - math.Floor(x)
}
