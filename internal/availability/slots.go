package availability

import (
	"fmt"
	"time"
)

// TimeSlot is a label such as "9:30 AM" in the daily booking grid.
type TimeSlot string

// grid is built once and never mutated. Callers get copies from Grid.
var grid = buildGrid()

func buildGrid() []TimeSlot {
	slots := make([]TimeSlot, 0, 24)

	for hour := 8; hour <= 11; hour++ {
		slots = append(slots, TimeSlot(fmt.Sprintf("%d:00 AM", hour)))
		if hour != 11 {
			slots = append(slots, TimeSlot(fmt.Sprintf("%d:30 AM", hour)))
		}
	}

	slots = append(slots, "12:00 PM", "12:30 PM")

	for hour := 1; hour <= 8; hour++ {
		slots = append(slots, TimeSlot(fmt.Sprintf("%d:00 PM", hour)))
		if hour != 8 {
			slots = append(slots, TimeSlot(fmt.Sprintf("%d:30 PM", hour)))
		}
	}

	return slots
}

// Grid returns the ordered daily slot sequence, 8:00 AM through 8:00 PM.
func Grid() []TimeSlot {
	out := make([]TimeSlot, len(grid))
	copy(out, grid)
	return out
}

// SlotIndex returns the position of slot in the grid, or -1.
func SlotIndex(slot TimeSlot) int {
	for i, s := range grid {
		if s == slot {
			return i
		}
	}
	return -1
}

// AvailableSlots returns the members of all that are open for tutor on date,
// preserving order. Each draw is seeded with the slot's position in all, not
// its position in the result.
func AvailableSlots(tutor string, date time.Time, all []TimeSlot, rate float64) []TimeSlot {
	weekday := date.Weekday()

	var open []TimeSlot
	for index, slot := range all {
		if SeededRandom(slotSeed(tutor, weekday, slot, index)) < rate {
			open = append(open, slot)
		}
	}
	return open
}

func slotSeed(tutor string, weekday time.Weekday, slot TimeSlot, index int) string {
	return fmt.Sprintf("%s-%d-%s-%d", tutor, int(weekday), slot, index)
}
