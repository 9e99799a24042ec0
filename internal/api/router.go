package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/hackgods/tutor-availability/internal/availability"
	"github.com/hackgods/tutor-availability/internal/booking"
	"github.com/hackgods/tutor-availability/internal/tutor"
)

type RouterConfig struct {
	Directory *tutor.Directory
	Planner   *availability.Planner
	Bookings  *booking.Service
	PgPool    *pgxpool.Pool // nil when the directory is not loaded from Postgres
	Redis     *redis.Client
	Location  *time.Location
	Env       string
	Version   string
}

func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(RecoverMiddleware)

	health := NewHealthHandler(readyChecks(cfg), cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Constant data
	r.Get("/slots", listSlotsHandler())
	r.Get("/durations", listDurationsHandler())

	// Tutor directory and availability
	r.Route("/tutors", func(r chi.Router) {
		r.Get("/", listTutorsHandler(cfg.Directory))
		r.Get("/{name}", getTutorHandler(cfg.Directory))
		r.Get("/{name}/availability", availabilityHandler(cfg.Directory, cfg.Planner, cfg.Location))
		r.Get("/{name}/quote", quoteHandler(cfg.Directory))
	})

	// Booking records
	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", createBookingHandler(cfg.Bookings, cfg.Location))
		r.Get("/", listBookingsHandler(cfg.Bookings))
		r.Get("/{id}", getBookingHandler(cfg.Bookings))
		r.Post("/{id}/cancel", cancelBookingHandler(cfg.Bookings))
	})

	return r
}

func readyChecks(cfg RouterConfig) []ReadyCheck {
	var checks []ReadyCheck
	if cfg.PgPool != nil {
		// The directory is already in memory, so a Postgres outage only degrades.
		checks = append(checks, ReadyCheck{
			Name:  "postgres",
			Check: cfg.PgPool.Ping,
		})
	}
	if cfg.Redis != nil {
		checks = append(checks, ReadyCheck{
			Name:     "redis",
			Critical: true,
			Check: func(ctx context.Context) error {
				return cfg.Redis.Ping(ctx).Err()
			},
		})
	}
	return checks
}
