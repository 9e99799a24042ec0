package main

import (
	"context"
	"log"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/hackgods/tutor-availability/internal/availability"
	"github.com/hackgods/tutor-availability/internal/config"
	"github.com/hackgods/tutor-availability/internal/db"
	"github.com/hackgods/tutor-availability/internal/tutor"
)

var subjects = []string{
	"Arithmetic",
	"Pre-Algebra",
	"Algebra",
	"Geometry",
	"Trigonometry",
	"Pre-Calculus",
	"Calculus",
	"Statistics",
	"Probability",
	"Linear Algebra",
	"Differential Equations",
	"Discrete Math",
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	if cfg.PostgresDSN == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	count := 20
	if v := os.Getenv("SEED_TUTORS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			log.Fatalf("SEED_TUTORS must be a non-negative integer, got %q", v)
		}
		count = n
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN, cfg.PgMaxConns)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	// Zero seeds from crypto/rand.
	gofakeit.Seed(0)

	tutors := append(tutor.SampleTutors(), fakeTutors(count)...)

	// Validate the whole set before writing anything.
	if _, err := tutor.NewDirectory(tutors); err != nil {
		log.Fatalf("generated directory is invalid: %v", err)
	}

	repo := tutor.NewPgRepository(pool)
	for i, t := range tutors {
		if err := repo.UpsertTutor(ctx, t); err != nil {
			log.Fatalf("seed tutor: %v", err)
		}
		if (i+1)%10 == 0 {
			log.Printf("tutors seeded: %d/%d", i+1, len(tutors))
		}
	}

	log.Printf("seed complete: %d tutors", len(tutors))
}

// fakeTutors generates tutors whose names do not clash with the sample set.
func fakeTutors(count int) []tutor.Tutor {
	taken := make(map[string]bool)
	for _, t := range tutor.SampleTutors() {
		taken[t.Name] = true
	}

	out := make([]tutor.Tutor, 0, count)
	for len(out) < count {
		name := gofakeit.Name()
		if taken[name] {
			continue
		}
		taken[name] = true

		out = append(out, tutor.Tutor{
			ID:         tutor.IDForName(name),
			Name:       name,
			Subjects:   pickSubjects(gofakeit.Number(1, 3)),
			HourlyRate: float64(gofakeit.Number(30, 80)),
			Rates:      fakeRates(),
		})
	}
	return out
}

func pickSubjects(n int) []string {
	picked := make([]string, 0, n)
	seen := make(map[string]bool)
	for len(picked) < n {
		s := subjects[gofakeit.Number(0, len(subjects)-1)]
		if seen[s] {
			continue
		}
		seen[s] = true
		picked = append(picked, s)
	}
	return picked
}

// fakeRates leaves roughly one weekday in seven without a rate so the
// fallback path is exercised.
func fakeRates() availability.WeeklyRates {
	var week availability.WeeklyRates
	for wd := range week {
		if gofakeit.Number(0, 6) == 0 {
			continue
		}
		r := gofakeit.Float64Range(0.2, 1)
		week[wd] = math.Round(r*100) / 100
	}
	return week
}
