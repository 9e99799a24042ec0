package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/hackgods/tutor-availability/internal/availability"
	"github.com/hackgods/tutor-availability/internal/booking"
	"github.com/hackgods/tutor-availability/internal/tutor"
)

type TutorResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Subjects    []string   `json:"subjects"`
	HourlyRate  float64    `json:"hourly_rate"`
	WeeklyRates [7]float64 `json:"weekly_rates"`
}

type SlotResponse struct {
	TimeSlot  string `json:"time_slot"`
	Available bool   `json:"available"`
}

type DayAvailabilityResponse struct {
	Tutor       string         `json:"tutor"`
	Known       bool           `json:"known_tutor"`
	Date        string         `json:"date,omitempty"`
	Weekday     *int           `json:"weekday,omitempty"`
	Rate        float64        `json:"rate,omitempty"`
	FullyBooked bool           `json:"fully_booked"`
	OpenCount   int            `json:"open_count"`
	Slots       []SlotResponse `json:"slots"`
}

type DurationResponse struct {
	Label string  `json:"label"`
	Hours float64 `json:"hours"`
}

type QuoteResponse struct {
	Tutor      string  `json:"tutor"`
	Duration   string  `json:"duration"`
	Hours      float64 `json:"hours"`
	HourlyRate float64 `json:"hourly_rate"`
	Price      float64 `json:"price"`
}

type CreateBookingRequest struct {
	StudentID string `json:"student_id"`
	TutorName string `json:"tutor_name"`
	Subject   string `json:"subject"`
	Date      string `json:"date"`
	TimeSlot  string `json:"time_slot"`
	Duration  string `json:"duration"`
	Notes     string `json:"notes"`
}

type BookingResponse struct {
	ID          uuid.UUID  `json:"id"`
	StudentID   string     `json:"student_id"`
	TutorID     uuid.UUID  `json:"tutor_id"`
	TutorName   string     `json:"tutor_name"`
	Subject     string     `json:"subject,omitempty"`
	Date        string     `json:"date"`
	TimeSlot    string     `json:"time_slot"`
	Duration    string     `json:"duration"`
	Price       float64    `json:"price"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func toTutorResponse(t tutor.Tutor) TutorResponse {
	subjects := t.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	return TutorResponse{
		ID:          t.ID,
		Name:        t.Name,
		Subjects:    subjects,
		HourlyRate:  t.HourlyRate,
		WeeklyRates: t.Rates,
	}
}

func toSlotResponses(slots []availability.SlotAvailability) []SlotResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotResponse{TimeSlot: string(s.Slot), Available: s.Available})
	}
	return out
}

func toBookingResponse(b booking.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		StudentID:   b.StudentID,
		TutorID:     b.TutorID,
		TutorName:   b.TutorName,
		Subject:     b.Subject,
		Date:        b.Date,
		TimeSlot:    string(b.Slot),
		Duration:    string(b.Duration),
		Price:       b.Price,
		Status:      string(b.Status),
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
		CancelledAt: b.CancelledAt,
	}
}
