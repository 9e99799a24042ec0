package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hackgods/tutor-availability/internal/availability"
	"github.com/hackgods/tutor-availability/internal/booking"
	"github.com/hackgods/tutor-availability/internal/pricing"
	"github.com/hackgods/tutor-availability/internal/tutor"
)

func listSlotsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		grid := availability.Grid()
		out := make([]string, len(grid))
		for i, s := range grid {
			out[i] = string(s)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listDurationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var out []DurationResponse
		for _, d := range pricing.Durations() {
			out = append(out, DurationResponse{Label: string(d), Hours: d.Hours()})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listTutorsHandler(dir *tutor.Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject := strings.TrimSpace(r.URL.Query().Get("subject"))

		out := make([]TutorResponse, 0, dir.Len())
		for _, t := range dir.List() {
			if subject != "" && !teaches(t, subject) {
				continue
			}
			out = append(out, toTutorResponse(t))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getTutorHandler(dir *tutor.Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := tutorNameParam(w, r)
		if !ok {
			return
		}

		t, err := dir.Get(name)
		if err != nil {
			writeError(w, http.StatusNotFound, "tutor_not_found", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, toTutorResponse(t))
	}
}

// availabilityHandler answers for any name. Unknown tutors get the fallback
// rate, matching the planner.
func availabilityHandler(dir *tutor.Directory, planner *availability.Planner, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := tutorNameParam(w, r)
		if !ok {
			return
		}

		var date time.Time
		if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
			d, err := time.ParseInLocation(booking.DateLayout, raw, loc)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
				return
			}
			date = d
		}

		day := planner.Day(name, date)
		_, err := dir.Get(name)

		resp := DayAvailabilityResponse{
			Tutor:       name,
			Known:       err == nil,
			FullyBooked: day.FullyBooked,
			OpenCount:   day.OpenCount(),
			Slots:       toSlotResponses(day.Slots),
		}
		if !date.IsZero() {
			wd := int(day.Weekday)
			resp.Date = date.Format(booking.DateLayout)
			resp.Weekday = &wd
			resp.Rate = day.Rate
		}

		if r.URL.Query().Get("only") == "open" {
			open := resp.Slots[:0]
			for _, s := range resp.Slots {
				if s.Available {
					open = append(open, s)
				}
			}
			resp.Slots = open
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func quoteHandler(dir *tutor.Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, ok := tutorNameParam(w, r)
		if !ok {
			return
		}

		t, err := dir.Get(name)
		if err != nil {
			writeError(w, http.StatusNotFound, "tutor_not_found", err.Error())
			return
		}

		raw := r.URL.Query().Get("duration")
		d := pricing.OneHour
		if raw != "" {
			d, err = pricing.ParseDuration(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_duration", err.Error())
				return
			}
		}

		writeJSON(w, http.StatusOK, QuoteResponse{
			Tutor:      t.Name,
			Duration:   string(d),
			Hours:      d.Hours(),
			HourlyRate: t.HourlyRate,
			Price:      pricing.SessionPrice(t.HourlyRate, d),
		})
	}
}

// tutorNameParam returns the decoded name segment. chi routes on RawPath when
// it is set, and only then is the captured segment still escaped.
func tutorNameParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "name")
	var err error
	if r.URL.RawPath != "" {
		name, err = url.PathUnescape(name)
	}
	if err != nil || strings.TrimSpace(name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_tutor_name", "tutor name must be a non-empty path segment")
		return "", false
	}
	return name, true
}

func teaches(t tutor.Tutor, subject string) bool {
	for _, s := range t.Subjects {
		if strings.EqualFold(s, subject) {
			return true
		}
	}
	return false
}

func isTutorNotFound(err error) bool {
	return errors.Is(err, tutor.ErrTutorNotFound)
}
