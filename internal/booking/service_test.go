package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hackgods/tutor-availability/internal/availability"
	"github.com/hackgods/tutor-availability/internal/pricing"
	"github.com/hackgods/tutor-availability/internal/tutor"
)

type memoryStore struct {
	mu   sync.Mutex
	data map[string][]Booking
	err  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]Booking)}
}

func (m *memoryStore) List(_ context.Context, studentID string) ([]Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]Booking(nil), m.data[studentID]...), nil
}

func (m *memoryStore) Update(_ context.Context, studentID string, fn func([]Booking) ([]Booking, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	next, err := fn(append([]Booking(nil), m.data[studentID]...))
	if err != nil {
		return err
	}
	m.data[studentID] = next
	return nil
}

var (
	wednesday = time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	monday    = time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
)

func newTestService(t *testing.T, store Store) *Service {
	t.Helper()
	dir, err := tutor.NewDirectory(tutor.SampleTutors())
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	planner := availability.NewPlanner(availability.NewModel(dir.RateTable()))
	svc := NewService(dir, planner, store, time.UTC)
	svc.now = func() time.Time { return time.Date(2026, 10, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

func validRequest() CreateRequest {
	return CreateRequest{
		StudentID: "student-1",
		TutorName: "Michael Chen",
		Subject:   "Geometry",
		Date:      wednesday,
		Slot:      "8:00 AM",
		Duration:  pricing.NinetyMinutes,
	}
}

func TestCreateBooking_Success(t *testing.T) {
	store := newMemoryStore()
	svc := newTestService(t, store)

	b, err := svc.CreateBooking(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if b.Price != 75 {
		t.Fatalf("expected price 75, got %v", b.Price)
	}
	if b.Status != StatusUpcoming || b.Date != "2026-10-14" || b.TutorID != tutor.IDForName("Michael Chen") {
		t.Fatalf("unexpected booking: %+v", b)
	}

	list, err := svc.ListBookings(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	if len(list) != 1 || list[0].ID != b.ID {
		t.Fatalf("expected the new booking in the list, got %+v", list)
	}
}

func TestCreateBooking_Validation(t *testing.T) {
	svc := newTestService(t, newMemoryStore())

	cases := []struct {
		name   string
		mutate func(*CreateRequest)
		want   error
	}{
		{"student", func(r *CreateRequest) { r.StudentID = " " }, ErrStudentRequired},
		{"tutor", func(r *CreateRequest) { r.TutorName = "Unknown Tutor" }, tutor.ErrTutorNotFound},
		{"no date", func(r *CreateRequest) { r.Date = time.Time{} }, ErrDateRequired},
		{"past", func(r *CreateRequest) { r.Date = time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC) }, ErrDateInPast},
		{"duration", func(r *CreateRequest) { r.Duration = "3 hours" }, pricing.ErrUnknownDuration},
		{"grid", func(r *CreateRequest) { r.Slot = "11:30 AM" }, ErrUnknownSlot},
		{"closed slot", func(r *CreateRequest) { r.Slot = "8:00 PM" }, ErrSlotUnavailable},
		{"fully booked", func(r *CreateRequest) { r.Date = monday }, ErrSlotUnavailable},
	}

	for _, tc := range cases {
		req := validRequest()
		tc.mutate(&req)
		if _, err := svc.CreateBooking(context.Background(), req); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestCreateBooking_SameDayAllowed(t *testing.T) {
	svc := newTestService(t, newMemoryStore())
	svc.now = func() time.Time { return time.Date(2026, 10, 14, 18, 0, 0, 0, time.UTC) }

	if _, err := svc.CreateBooking(context.Background(), validRequest()); err != nil {
		t.Fatalf("booking for today rejected: %v", err)
	}
}

func TestCreateBooking_Duplicate(t *testing.T) {
	svc := newTestService(t, newMemoryStore())

	if _, err := svc.CreateBooking(context.Background(), validRequest()); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := svc.CreateBooking(context.Background(), validRequest()); !errors.Is(err, ErrDuplicateBooking) {
		t.Fatalf("expected ErrDuplicateBooking, got %v", err)
	}

	other := validRequest()
	other.StudentID = "student-2"
	if _, err := svc.CreateBooking(context.Background(), other); err != nil {
		t.Fatalf("another student should be able to book: %v", err)
	}
}

func TestCreateBooking_StoreError(t *testing.T) {
	store := newMemoryStore()
	store.err = errors.New("redis down")
	svc := newTestService(t, store)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	if !errors.Is(err, store.err) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestCancelBooking(t *testing.T) {
	svc := newTestService(t, newMemoryStore())
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, validRequest())
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	cancelled, err := svc.CancelBooking(ctx, "student-1", b.ID)
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if cancelled.Status != StatusCancelled || cancelled.CancelledAt == nil {
		t.Fatalf("unexpected cancelled booking: %+v", cancelled)
	}

	if _, err := svc.CancelBooking(ctx, "student-1", b.ID); !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}
	if _, err := svc.CancelBooking(ctx, "student-1", uuid.New()); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}

	got, err := svc.GetBooking(ctx, "student-1", b.ID)
	if err != nil {
		t.Fatalf("GetBooking: %v", err)
	}
	if got.Status != StatusCancelled {
		t.Fatalf("stored booking not cancelled: %+v", got)
	}

	// The slot can be booked again once the earlier booking is cancelled.
	if _, err := svc.CreateBooking(ctx, validRequest()); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
}

func TestGetBooking_NotFound(t *testing.T) {
	svc := newTestService(t, newMemoryStore())
	if _, err := svc.GetBooking(context.Background(), "student-1", uuid.New()); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
	if _, err := svc.ListBookings(context.Background(), ""); !errors.Is(err, ErrStudentRequired) {
		t.Fatalf("expected ErrStudentRequired, got %v", err)
	}
}
