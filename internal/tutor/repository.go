package tutor

import (
	"context"

	"github.com/hackgods/tutor-availability/internal/availability"
)

// Repository is a source of tutor profiles.
type Repository interface {
	ListTutors(ctx context.Context) ([]Tutor, error)
}

// StaticRepository serves the built-in sample directory.
type StaticRepository struct{}

func NewStaticRepository() StaticRepository {
	return StaticRepository{}
}

func (StaticRepository) ListTutors(_ context.Context) ([]Tutor, error) {
	return SampleTutors(), nil
}

// SampleTutors returns the curated MathMaster directory.
func SampleTutors() []Tutor {
	sample := []struct {
		name     string
		subjects []string
		hourly   float64
		rates    availability.WeeklyRates
	}{
		{"Sarah Johnson", []string{"Algebra", "Calculus", "Statistics"}, 45, availability.WeeklyRates{0.4, 0.85, 0.8, 0.75, 0.85, 0.7, 0.5}},
		{"Michael Chen", []string{"Geometry", "Trigonometry", "Pre-Calculus"}, 50, availability.WeeklyRates{0.3, 0.8, 0.7, 0.9, 0.8, 0.6, 0.4}},
		{"Emily Rodriguez", []string{"Algebra", "Linear Algebra"}, 40, availability.WeeklyRates{0.5, 0.7, 0.85, 0.7, 0.8, 0.75, 0.6}},
		{"David Kim", []string{"Calculus", "Differential Equations"}, 55, availability.WeeklyRates{0.2, 0.9, 0.8, 0.85, 0.9, 0.7, 0.3}},
		{"Jessica Patel", []string{"Statistics", "Probability"}, 48, availability.WeeklyRates{0.6, 0.75, 0.7, 0.8, 0.7, 0.85, 0.65}},
		{"Robert Martinez", []string{"Arithmetic", "Pre-Algebra", "Geometry"}, 35, availability.WeeklyRates{0.35, 0.8, 0.9, 0.75, 0.85, 0.8, 0.45}},
	}

	tutors := make([]Tutor, 0, len(sample))
	for _, s := range sample {
		tutors = append(tutors, Tutor{
			ID:         IDForName(s.name),
			Name:       s.name,
			Subjects:   append([]string(nil), s.subjects...),
			HourlyRate: s.hourly,
			Rates:      s.rates,
		})
	}
	return tutors
}
