package availability

import "time"

type SlotAvailability struct {
	Slot      TimeSlot
	Available bool
}

// DayAvailability is everything the booking UI renders for one tutor and date.
type DayAvailability struct {
	Tutor       string
	Date        time.Time
	Weekday     time.Weekday
	Rate        float64
	FullyBooked bool
	Slots       []SlotAvailability
}

// OpenCount returns how many slots in the day are available.
func (d DayAvailability) OpenCount() int {
	n := 0
	for _, s := range d.Slots {
		if s.Available {
			n++
		}
	}
	return n
}

// Planner combines the model with per-slot draws. Every call recomputes from
// its arguments; nothing is cached.
type Planner struct {
	model *Model
}

func NewPlanner(model *Model) *Planner {
	if model == nil {
		model = NewModel(nil)
	}
	return &Planner{model: model}
}

func (p *Planner) Model() *Model {
	return p.model
}

// SlotsWithAvailability flags every grid slot for tutor on date. A zero date
// is treated as not chosen yet and yields a closed grid.
func (p *Planner) SlotsWithAvailability(tutor string, date time.Time) []SlotAvailability {
	all := Grid()
	out := make([]SlotAvailability, len(all))
	for i, slot := range all {
		out[i] = SlotAvailability{Slot: slot}
	}

	if date.IsZero() {
		return out
	}

	weekday := date.Weekday()
	if p.model.IsFullyBooked(tutor, weekday) {
		return out
	}

	open := make(map[TimeSlot]struct{})
	for _, slot := range AvailableSlots(tutor, date, all, p.model.Rate(tutor, weekday)) {
		open[slot] = struct{}{}
	}
	for i := range out {
		_, out[i].Available = open[out[i].Slot]
	}
	return out
}

// OpenSlots returns only the available slots, in grid order.
func (p *Planner) OpenSlots(tutor string, date time.Time) []TimeSlot {
	var open []TimeSlot
	for _, s := range p.SlotsWithAvailability(tutor, date) {
		if s.Available {
			open = append(open, s.Slot)
		}
	}
	return open
}

// IsOpen reports whether slot can be booked with tutor on date.
func (p *Planner) IsOpen(tutor string, date time.Time, slot TimeSlot) bool {
	for _, s := range p.SlotsWithAvailability(tutor, date) {
		if s.Slot == slot {
			return s.Available
		}
	}
	return false
}

func (p *Planner) Day(tutor string, date time.Time) DayAvailability {
	day := DayAvailability{
		Tutor: tutor,
		Date:  date,
		Slots: p.SlotsWithAvailability(tutor, date),
	}
	if date.IsZero() {
		return day
	}

	day.Weekday = date.Weekday()
	day.Rate = p.model.Rate(tutor, day.Weekday)
	day.FullyBooked = p.model.IsFullyBooked(tutor, day.Weekday)
	return day
}
