package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hackgods/tutor-availability/internal/api"
	"github.com/hackgods/tutor-availability/internal/availability"
	"github.com/hackgods/tutor-availability/internal/booking"
	"github.com/hackgods/tutor-availability/internal/config"
	"github.com/hackgods/tutor-availability/internal/db"
	redisclient "github.com/hackgods/tutor-availability/internal/redis"
	"github.com/hackgods/tutor-availability/internal/tutor"
)

var version = "dev"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running in env=%s http_port=%s timezone=%s", cfg.Env, cfg.HTTPPort, cfg.Location)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tutor directory: Postgres when configured, built-in sample otherwise
	var (
		pgPool *pgxpool.Pool
		repo   tutor.Repository = tutor.NewStaticRepository()
	)
	if cfg.PostgresDSN != "" {
		pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
		pgPool, err = db.ConnectPostgres(pgCtx, cfg.PostgresDSN, cfg.PgMaxConns)
		cancelPg()
		if err != nil {
			log.Fatalf("postgres connection error: %v", err)
		}
		defer pgPool.Close()
		log.Println("connected to Postgres")
		repo = tutor.NewPgRepository(pgPool)
	} else {
		log.Println("POSTGRES_DSN not set, using built-in tutor directory")
	}

	loadCtx, cancelLoad := context.WithTimeout(rootCtx, 10*time.Second)
	directory, err := tutor.Load(loadCtx, repo)
	cancelLoad()
	if err != nil {
		log.Fatalf("tutor directory load error: %v", err)
	}
	log.Printf("loaded %d tutors", directory.Len())

	// Booking records live in Redis
	rdb, err := redisclient.NewRedisClient(rootCtx, redisclient.Options{
		Addr:     cfg.RedisAddr,
		Username: cfg.RedisUsername,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Fatalf("redis connection error: %v", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Printf("error closing redis: %v", err)
		}
	}()
	log.Println("connected to Redis")

	planner := availability.NewPlanner(availability.NewModel(directory.RateTable()))
	store := booking.NewRedisStore(rdb, redisclient.NewRedisLocker(rdb, cfg.LockTTL))
	svc := booking.NewService(directory, planner, store, cfg.Location)

	router := api.NewRouter(api.RouterConfig{
		Directory: directory,
		Planner:   planner,
		Bookings:  svc,
		PgPool:    pgPool,
		Redis:     rdb,
		Location:  cfg.Location,
		Env:       cfg.Env,
		Version:   version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("http server listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-rootCtx.Done():
		log.Println("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("api-server stopped")
}
