package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/hackgods/tutor-availability/internal/availability"
	"github.com/hackgods/tutor-availability/internal/pricing"
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCancelled Status = "cancelled"
)

// DateLayout is the calendar date format used in records and query strings.
const DateLayout = "2006-01-02"

// Booking is the record the booking form saves once a slot is picked.
type Booking struct {
	ID          uuid.UUID             `json:"id"`
	StudentID   string                `json:"student_id"`
	TutorID     uuid.UUID             `json:"tutor_id"`
	TutorName   string                `json:"tutor_name"`
	Subject     string                `json:"subject,omitempty"`
	Date        string                `json:"date"`
	Slot        availability.TimeSlot `json:"time_slot"`
	Duration    pricing.Duration      `json:"duration"`
	Price       float64               `json:"price"`
	Status      Status                `json:"status"`
	Notes       string                `json:"notes,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	CancelledAt *time.Time            `json:"cancelled_at,omitempty"`
}

type CreateRequest struct {
	StudentID string
	TutorName string
	Subject   string
	Date      time.Time
	Slot      availability.TimeSlot
	Duration  pricing.Duration
	Notes     string
}
