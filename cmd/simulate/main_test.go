package main

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOperationMetrics_Stats(t *testing.T) {
	var om OperationMetrics
	for i := 1; i <= 100; i++ {
		om.Record(time.Duration(i)*time.Millisecond, i%10 != 0, i%10 == 0 && i%20 != 0)
	}

	if om.Total != 100 || om.Success != 90 || om.Conflict != 5 || om.Error != 5 {
		t.Fatalf("unexpected counters: total=%d success=%d conflict=%d error=%d", om.Total, om.Success, om.Conflict, om.Error)
	}

	avg, min, max, p50, p95 := om.Stats()
	if min != time.Millisecond || max != 100*time.Millisecond {
		t.Fatalf("min=%s max=%s", min, max)
	}
	if p50 != 51*time.Millisecond || p95 != 96*time.Millisecond {
		t.Fatalf("p50=%s p95=%s", p50, p95)
	}
	if avg != 50500*time.Microsecond {
		t.Fatalf("avg=%s", avg)
	}
}

func TestValidateConfig(t *testing.T) {
	good := SimConfig{Duration: time.Second, Workers: 1, Students: 1, DaysAhead: 1, Location: time.UTC}
	if err := validateConfig(good); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	bad := good
	bad.Workers = 0
	if err := validateConfig(bad); err == nil {
		t.Fatal("expected error for zero workers")
	}

	noZone := good
	noZone.Location = nil
	if err := validateConfig(noZone); err == nil {
		t.Fatal("expected error for missing location")
	}
}

func TestLoadConfig_Timezone(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "UTC")
	if cfg := loadConfig(); cfg.Location == nil || cfg.Location.String() != "UTC" {
		t.Fatalf("unexpected location: %v", cfg.Location)
	}

	t.Setenv("APP_TIMEZONE", "Mars/Olympus")
	if cfg := loadConfig(); cfg.Location != nil {
		t.Fatalf("invalid zone should leave location unset, got %v", cfg.Location)
	}
}

func TestRandomDate_UsesConfiguredZone(t *testing.T) {
	// Fourteen hours ahead of UTC is a different calendar day for part of
	// every UTC day, so dates must be computed in this zone.
	loc := time.FixedZone("UTC+14", 14*60*60)
	sim := &Simulator{config: SimConfig{DaysAhead: 3, Location: loc}}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		before := time.Now().In(loc)
		got := sim.randomDate(rng)
		after := time.Now().In(loc)

		first := before.AddDate(0, 0, 1).Format("2006-01-02")
		last := after.AddDate(0, 0, 3).Format("2006-01-02")
		if got < first || got > last {
			t.Fatalf("date %s outside [%s, %s]", got, first, last)
		}
	}
}

func TestDoBooking_BadBaseURL(t *testing.T) {
	sim := &Simulator{
		config: SimConfig{APIBaseURL: "http://bad host", DaysAhead: 1, Location: time.UTC},
		pool: &DataPool{
			Tutors:   []string{"Sarah Johnson"},
			Students: []string{"student-1"},
			Slots:    []string{"8:00 AM"},
		},
		client: http.DefaultClient,
	}

	sim.doBooking(context.Background(), rand.New(rand.NewSource(1)))

	if sim.metrics.Booking.Total != 1 || sim.metrics.Booking.Error != 1 {
		t.Fatalf("expected one failed booking, got total=%d error=%d", sim.metrics.Booking.Total, sim.metrics.Booking.Error)
	}
}

func TestLoadDataPool(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tutors", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]string{{"name": "Sarah Johnson"}, {"name": "David Kim"}})
	})
	mux.HandleFunc("/slots", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]string{"8:00 AM", "8:30 AM"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := SimConfig{APIBaseURL: srv.URL, Students: 5}
	pool, err := loadDataPool(context.Background(), srv.Client(), cfg)
	if err != nil {
		t.Fatalf("loadDataPool: %v", err)
	}
	if len(pool.Tutors) != 2 || len(pool.Slots) != 2 || len(pool.Students) != 5 {
		t.Fatalf("unexpected pool: %d tutors %d slots %d students", len(pool.Tutors), len(pool.Slots), len(pool.Students))
	}
}
