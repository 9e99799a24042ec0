package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hackgods/tutor-availability/internal/availability"
	"github.com/hackgods/tutor-availability/internal/booking"
	"github.com/hackgods/tutor-availability/internal/pricing"
	redisclient "github.com/hackgods/tutor-availability/internal/redis"
)

func createBookingHandler(svc *booking.Service, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		var date time.Time
		if raw := strings.TrimSpace(req.Date); raw != "" {
			d, err := time.ParseInLocation(booking.DateLayout, raw, loc)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
				return
			}
			date = d
		}

		b, err := svc.CreateBooking(r.Context(), booking.CreateRequest{
			StudentID: req.StudentID,
			TutorName: req.TutorName,
			Subject:   req.Subject,
			Date:      date,
			Slot:      availability.TimeSlot(strings.TrimSpace(req.TimeSlot)),
			Duration:  pricing.Duration(strings.TrimSpace(req.Duration)),
			Notes:     req.Notes,
		})
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toBookingResponse(*b))
	}
}

func listBookingsHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListBookings(r.Context(), r.URL.Query().Get("student_id"))
		if err != nil {
			handleBookingError(w, err)
			return
		}

		status := booking.Status(r.URL.Query().Get("status"))
		out := make([]BookingResponse, 0, len(list))
		for _, b := range list {
			if status != "" && b.Status != status {
				continue
			}
			out = append(out, toBookingResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getBookingHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := bookingIDParam(w, r)
		if !ok {
			return
		}

		b, err := svc.GetBooking(r.Context(), r.URL.Query().Get("student_id"), id)
		if err != nil {
			handleBookingError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBookingResponse(*b))
	}
}

func cancelBookingHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := bookingIDParam(w, r)
		if !ok {
			return
		}

		b, err := svc.CancelBooking(r.Context(), r.URL.Query().Get("student_id"), id)
		if err != nil {
			handleBookingError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toBookingResponse(*b))
	}
}

func bookingIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_booking_id", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func handleBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrStudentRequired):
		writeError(w, http.StatusBadRequest, "student_id_required", err.Error())
	case errors.Is(err, booking.ErrDateRequired):
		writeError(w, http.StatusBadRequest, "date_required", err.Error())
	case errors.Is(err, booking.ErrDateInPast):
		writeError(w, http.StatusBadRequest, "date_in_past", err.Error())
	case errors.Is(err, booking.ErrUnknownSlot):
		writeError(w, http.StatusBadRequest, "unknown_time_slot", err.Error())
	case errors.Is(err, pricing.ErrUnknownDuration):
		writeError(w, http.StatusBadRequest, "invalid_duration", err.Error())
	case isTutorNotFound(err):
		writeError(w, http.StatusNotFound, "tutor_not_found", err.Error())
	case errors.Is(err, booking.ErrBookingNotFound):
		writeError(w, http.StatusNotFound, "booking_not_found", err.Error())
	case errors.Is(err, booking.ErrSlotUnavailable):
		writeError(w, http.StatusConflict, "slot_unavailable", err.Error())
	case errors.Is(err, booking.ErrDuplicateBooking):
		writeError(w, http.StatusConflict, "duplicate_booking", err.Error())
	case errors.Is(err, booking.ErrAlreadyCancelled):
		writeError(w, http.StatusConflict, "already_cancelled", err.Error())
	case errors.Is(err, redisclient.ErrLockNotAcquired):
		writeError(w, http.StatusConflict, "bookings_busy", "bookings are being updated, please retry shortly")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
