package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"
)

type SimConfig struct {
	APIBaseURL   string
	Duration     time.Duration
	Workers      int
	BrowseRatio  float64
	BookingRatio float64
	ListRatio    float64
	Students     int
	DaysAhead    int
	// Location must match the server's APP_TIMEZONE so "tomorrow" means the
	// same calendar day on both sides.
	Location *time.Location
}

// DataPool holds what workers pick from. Tutors and students are fixed after
// startup; created bookings are appended concurrently.
type DataPool struct {
	Tutors   []string
	Students []string
	Slots    []string

	mu       sync.RWMutex
	bookings []createdBooking
}

type createdBooking struct {
	ID        string
	StudentID string
}

func (dp *DataPool) AddBooking(b createdBooking) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.bookings = append(dp.bookings, b)
}

func (dp *DataPool) RandomBooking(rng *rand.Rand) (createdBooking, bool) {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	if len(dp.bookings) == 0 {
		return createdBooking{}, false
	}
	return dp.bookings[rng.Intn(len(dp.bookings))], true
}

type OperationMetrics struct {
	Total     int64
	Success   int64
	Conflict  int64
	Error     int64
	Latencies []time.Duration
	mu        sync.Mutex
}

func (om *OperationMetrics) Record(latency time.Duration, success bool, conflict bool) {
	atomic.AddInt64(&om.Total, 1)
	if success {
		atomic.AddInt64(&om.Success, 1)
	} else if conflict {
		atomic.AddInt64(&om.Conflict, 1)
	} else {
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.Latencies = append(om.Latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, min, max, p50, p95 time.Duration) {
	om.mu.Lock()
	latencies := make([]time.Duration, len(om.Latencies))
	copy(latencies, om.Latencies)
	om.mu.Unlock()

	if len(latencies) == 0 {
		return 0, 0, 0, 0, 0
	}

	sort.Slice(latencies, func(i, j int) bool {
		return latencies[i] < latencies[j]
	})

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	min = latencies[0]
	max = latencies[len(latencies)-1]
	p50 = percentile(latencies, 50)
	p95 = percentile(latencies, 95)
	return avg, min, max, p50, p95
}

func percentile(sorted []time.Duration, p int) time.Duration {
	idx := len(sorted) * p / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

type Metrics struct {
	Availability OperationMetrics
	Booking      OperationMetrics
	Cancel       OperationMetrics
	List         OperationMetrics
}

type Simulator struct {
	config  SimConfig
	pool    *DataPool
	client  *http.Client
	metrics Metrics
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("simulator starting")

	cfg := loadConfig()
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	log.Printf("config: duration=%s workers=%d browse=%.2f booking=%.2f list=%.2f tz=%s",
		cfg.Duration, cfg.Workers, cfg.BrowseRatio, cfg.BookingRatio, cfg.ListRatio, cfg.Location)

	client := &http.Client{Timeout: 10 * time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dataPool, err := loadDataPool(ctx, client, cfg)
	if err != nil {
		log.Fatalf("load data pool: %v", err)
	}

	log.Printf("loaded: %d tutors, %d students, %d slots", len(dataPool.Tutors), len(dataPool.Students), len(dataPool.Slots))

	sim := &Simulator{
		config: cfg,
		pool:   dataPool,
		client: client,
	}

	sim.Run()
	sim.PrintReport()
}

func loadConfig() SimConfig {
	_ = godotenv.Load()

	cfg := SimConfig{
		APIBaseURL:   strings.TrimRight(getEnv("SIM_API_BASE_URL", "http://localhost:8080"), "/"),
		Duration:     getDuration("SIM_DURATION", 30*time.Second),
		Workers:      getInt("SIM_WORKERS", 10),
		BrowseRatio:  getFloat("SIM_BROWSE_RATIO", 0.6),
		BookingRatio: getFloat("SIM_BOOKING_RATIO", 0.25),
		ListRatio:    getFloat("SIM_LIST_RATIO", 0.15),
		Students:     getInt("SIM_STUDENTS", 200),
		DaysAhead:    getInt("SIM_DAYS_AHEAD", 28),
	}

	if loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "Local")); err == nil {
		cfg.Location = loc
	} else {
		log.Printf("invalid APP_TIMEZONE: %v", err)
	}

	// Normalize ratios
	total := cfg.BrowseRatio + cfg.BookingRatio + cfg.ListRatio
	if total > 0 {
		cfg.BrowseRatio /= total
		cfg.BookingRatio /= total
		cfg.ListRatio /= total
	}

	return cfg
}

func validateConfig(cfg SimConfig) error {
	if cfg.Workers <= 0 {
		return fmt.Errorf("SIM_WORKERS must be > 0")
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("SIM_DURATION must be > 0")
	}
	if cfg.Students <= 0 {
		return fmt.Errorf("SIM_STUDENTS must be > 0")
	}
	if cfg.DaysAhead <= 0 {
		return fmt.Errorf("SIM_DAYS_AHEAD must be > 0")
	}
	if cfg.Location == nil {
		return fmt.Errorf("APP_TIMEZONE must name a valid location")
	}
	return nil
}

// loadDataPool reads tutors and the slot grid from the API and invents
// student ids with gofakeit.
func loadDataPool(ctx context.Context, client *http.Client, cfg SimConfig) (*DataPool, error) {
	dataPool := &DataPool{}

	var tutors []struct {
		Name string `json:"name"`
	}
	if err := getJSON(ctx, client, cfg.APIBaseURL+"/tutors", &tutors); err != nil {
		return nil, fmt.Errorf("load tutors: %w", err)
	}
	for _, t := range tutors {
		dataPool.Tutors = append(dataPool.Tutors, t.Name)
	}

	if err := getJSON(ctx, client, cfg.APIBaseURL+"/slots", &dataPool.Slots); err != nil {
		return nil, fmt.Errorf("load slots: %w", err)
	}

	for i := 0; i < cfg.Students; i++ {
		dataPool.Students = append(dataPool.Students, gofakeit.Email())
	}

	if len(dataPool.Tutors) == 0 {
		return nil, fmt.Errorf("no tutors loaded")
	}
	if len(dataPool.Slots) == 0 {
		return nil, fmt.Errorf("no slots loaded")
	}

	return dataPool, nil
}

func getJSON(ctx context.Context, client *http.Client, target string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", target, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func (s *Simulator) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Duration)
	defer cancel()

	log.Printf("starting simulation for %s with %d workers", s.config.Duration, s.config.Workers)

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.worker(ctx, workerID)
		}(i)
	}

	wg.Wait()
	log.Println("simulation complete")
}

func (s *Simulator) worker(ctx context.Context, workerID int) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(workerID)))

	for {
		select {
		case <-ctx.Done():
			return
		default:
			r := rng.Float64()
			switch {
			case r < s.config.BrowseRatio:
				s.doAvailability(ctx, rng)
			case r < s.config.BrowseRatio+s.config.BookingRatio:
				s.doBooking(ctx, rng)
			default:
				if rng.Intn(4) == 0 {
					s.doCancel(ctx, rng)
				} else {
					s.doList(ctx, rng)
				}
			}
		}
	}
}

func (s *Simulator) randomDate(rng *rand.Rand) string {
	return time.Now().In(s.config.Location).AddDate(0, 0, 1+rng.Intn(s.config.DaysAhead)).Format("2006-01-02")
}

func (s *Simulator) doAvailability(ctx context.Context, rng *rand.Rand) {
	tutorName := s.pool.Tutors[rng.Intn(len(s.pool.Tutors))]
	target := fmt.Sprintf("%s/tutors/%s/availability?date=%s",
		s.config.APIBaseURL, url.PathEscape(tutorName), s.randomDate(rng))

	status, latency, err := s.send(ctx, http.MethodGet, target, nil)
	s.metrics.Availability.Record(latency, err == nil && status == http.StatusOK, false)
}

func (s *Simulator) doBooking(ctx context.Context, rng *rand.Rand) {
	studentID := s.pool.Students[rng.Intn(len(s.pool.Students))]

	body, err := json.Marshal(map[string]string{
		"student_id": studentID,
		"tutor_name": s.pool.Tutors[rng.Intn(len(s.pool.Tutors))],
		"date":       s.randomDate(rng),
		"time_slot":  s.pool.Slots[rng.Intn(len(s.pool.Slots))],
		"duration":   []string{"1 hour", "1.5 hours", "2 hours"}[rng.Intn(3)],
	})
	if err != nil {
		log.Printf("encode booking: %v", err)
		s.metrics.Booking.Record(0, false, false)
		return
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.APIBaseURL+"/bookings", bytes.NewReader(body))
	if err != nil {
		log.Printf("build booking request: %v", err)
		s.metrics.Booking.Record(0, false, false)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	latency := time.Since(start)

	success, conflict := false, false
	if err == nil {
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusCreated:
			success = true
			var created struct {
				ID string `json:"id"`
			}
			if json.NewDecoder(resp.Body).Decode(&created) == nil && created.ID != "" {
				s.pool.AddBooking(createdBooking{ID: created.ID, StudentID: studentID})
			}
		case http.StatusConflict:
			// Closed slot, duplicate or lock contention.
			conflict = true
		}
	}

	s.metrics.Booking.Record(latency, success, conflict)
}

func (s *Simulator) doCancel(ctx context.Context, rng *rand.Rand) {
	b, ok := s.pool.RandomBooking(rng)
	if !ok {
		return
	}

	target := fmt.Sprintf("%s/bookings/%s/cancel?student_id=%s",
		s.config.APIBaseURL, b.ID, url.QueryEscape(b.StudentID))

	status, latency, err := s.send(ctx, http.MethodPost, target, nil)
	s.metrics.Cancel.Record(latency, err == nil && status == http.StatusOK, err == nil && status == http.StatusConflict)
}

func (s *Simulator) doList(ctx context.Context, rng *rand.Rand) {
	studentID := s.pool.Students[rng.Intn(len(s.pool.Students))]
	target := fmt.Sprintf("%s/bookings?student_id=%s", s.config.APIBaseURL, url.QueryEscape(studentID))

	status, latency, err := s.send(ctx, http.MethodGet, target, nil)
	s.metrics.List.Record(latency, err == nil && status == http.StatusOK, false)
}

func (s *Simulator) send(ctx context.Context, method, target string, body []byte) (int, time.Duration, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
	if err != nil {
		return 0, 0, err
	}

	resp, err := s.client.Do(req)
	latency := time.Since(start)
	if err != nil {
		return 0, latency, err
	}
	resp.Body.Close()

	return resp.StatusCode, latency, nil
}

func (s *Simulator) PrintReport() {
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("SIMULATION REPORT")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Duration: %s\n", s.config.Duration)
	fmt.Printf("Workers: %d\n", s.config.Workers)
	fmt.Println()

	printOperationReport("Availability", &s.metrics.Availability)
	printOperationReport("Booking", &s.metrics.Booking)
	printOperationReport("Cancel", &s.metrics.Cancel)
	printOperationReport("List bookings", &s.metrics.List)
}

func printOperationReport(name string, om *OperationMetrics) {
	total := atomic.LoadInt64(&om.Total)
	if total == 0 {
		return
	}

	success := atomic.LoadInt64(&om.Success)
	conflict := atomic.LoadInt64(&om.Conflict)
	failed := atomic.LoadInt64(&om.Error)

	avg, min, max, p50, p95 := om.Stats()

	fmt.Printf("%s:\n", name)
	fmt.Printf("  Total: %d\n", total)
	fmt.Printf("  Success: %d (%.1f%%)\n", success, float64(success)/float64(total)*100)
	if conflict > 0 {
		fmt.Printf("  Conflicts: %d (%.1f%%)\n", conflict, float64(conflict)/float64(total)*100)
	}
	if failed > 0 {
		fmt.Printf("  Errors: %d (%.1f%%)\n", failed, float64(failed)/float64(total)*100)
	}
	fmt.Printf("  Latency: avg=%s min=%s max=%s p50=%s p95=%s\n",
		avg.Round(time.Millisecond), min.Round(time.Millisecond), max.Round(time.Millisecond),
		p50.Round(time.Millisecond), p95.Round(time.Millisecond))
	fmt.Println()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
