package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hackgods/tutor-availability/internal/availability"
	"github.com/hackgods/tutor-availability/internal/pricing"
	"github.com/hackgods/tutor-availability/internal/tutor"
)

var (
	ErrStudentRequired  = errors.New("student id is required")
	ErrDateRequired     = errors.New("session date is required")
	ErrDateInPast       = errors.New("session date is in the past")
	ErrUnknownSlot      = errors.New("time slot is not part of the booking grid")
	ErrSlotUnavailable  = errors.New("time slot is not available")
	ErrDuplicateBooking = errors.New("session already booked")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
)

type Service struct {
	directory *tutor.Directory
	planner   *availability.Planner
	store     Store
	loc       *time.Location
	now       func() time.Time
}

// NewService wires the booking flow. loc decides which calendar day "today" is.
func NewService(directory *tutor.Directory, planner *availability.Planner, store Store, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		directory: directory,
		planner:   planner,
		store:     store,
		loc:       loc,
		now:       time.Now,
	}
}

// CreateBooking prices and records a session in an open slot.
func (s *Service) CreateBooking(ctx context.Context, req CreateRequest) (*Booking, error) {
	req.StudentID = strings.TrimSpace(req.StudentID)
	if req.StudentID == "" {
		return nil, ErrStudentRequired
	}

	t, err := s.directory.Get(req.TutorName)
	if err != nil {
		return nil, err
	}

	if req.Date.IsZero() {
		return nil, ErrDateRequired
	}
	date := startOfDay(req.Date, s.loc)
	if date.Before(startOfDay(s.now(), s.loc)) {
		return nil, ErrDateInPast
	}

	if !req.Duration.Valid() {
		return nil, pricing.ErrUnknownDuration
	}
	if availability.SlotIndex(req.Slot) < 0 {
		return nil, ErrUnknownSlot
	}
	if !s.planner.IsOpen(t.Name, date, req.Slot) {
		return nil, ErrSlotUnavailable
	}

	b := Booking{
		ID:        uuid.New(),
		StudentID: req.StudentID,
		TutorID:   t.ID,
		TutorName: t.Name,
		Subject:   strings.TrimSpace(req.Subject),
		Date:      date.Format(DateLayout),
		Slot:      req.Slot,
		Duration:  req.Duration,
		Price:     pricing.SessionPrice(t.HourlyRate, req.Duration),
		Status:    StatusUpcoming,
		Notes:     strings.TrimSpace(req.Notes),
		CreatedAt: s.now().UTC(),
	}

	err = s.store.Update(ctx, req.StudentID, func(list []Booking) ([]Booking, error) {
		for _, existing := range list {
			if existing.Status == StatusUpcoming &&
				existing.TutorName == b.TutorName &&
				existing.Date == b.Date &&
				existing.Slot == b.Slot {
				return nil, ErrDuplicateBooking
			}
		}
		return append(list, b), nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateBooking) {
			return nil, err
		}
		return nil, fmt.Errorf("save booking: %w", err)
	}

	log.Printf("booking created id=%s student=%s tutor=%q date=%s slot=%q price=%.2f",
		b.ID, b.StudentID, b.TutorName, b.Date, b.Slot, b.Price)

	return &b, nil
}

// ListBookings returns a student's bookings in creation order.
func (s *Service) ListBookings(ctx context.Context, studentID string) ([]Booking, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, ErrStudentRequired
	}

	list, err := s.store.List(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return list, nil
}

func (s *Service) GetBooking(ctx context.Context, studentID string, id uuid.UUID) (*Booking, error) {
	list, err := s.ListBookings(ctx, studentID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, ErrBookingNotFound
}

// CancelBooking marks an upcoming booking cancelled. The record is kept.
func (s *Service) CancelBooking(ctx context.Context, studentID string, id uuid.UUID) (*Booking, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, ErrStudentRequired
	}

	var cancelled *Booking
	err := s.store.Update(ctx, studentID, func(list []Booking) ([]Booking, error) {
		for i := range list {
			if list[i].ID != id {
				continue
			}
			if list[i].Status == StatusCancelled {
				return nil, ErrAlreadyCancelled
			}
			now := s.now().UTC()
			list[i].Status = StatusCancelled
			list[i].CancelledAt = &now
			b := list[i]
			cancelled = &b
			return list, nil
		}
		return nil, ErrBookingNotFound
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrAlreadyCancelled) {
			return nil, err
		}
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	log.Printf("booking cancelled id=%s student=%s", id, studentID)
	return cancelled, nil
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
