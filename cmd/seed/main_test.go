package main

import (
	"testing"

	"github.com/hackgods/tutor-availability/internal/tutor"
)

func TestFakeTutors_Valid(t *testing.T) {
	fakes := fakeTutors(50)
	if len(fakes) != 50 {
		t.Fatalf("expected 50 tutors, got %d", len(fakes))
	}

	all := append(tutor.SampleTutors(), fakes...)
	if _, err := tutor.NewDirectory(all); err != nil {
		t.Fatalf("generated tutors do not form a valid directory: %v", err)
	}

	for _, f := range fakes {
		if len(f.Subjects) < 1 || len(f.Subjects) > 3 {
			t.Fatalf("%s has %d subjects", f.Name, len(f.Subjects))
		}
		if f.HourlyRate < 30 || f.HourlyRate > 80 {
			t.Fatalf("%s hourly rate %v out of range", f.Name, f.HourlyRate)
		}
		if f.ID != tutor.IDForName(f.Name) {
			t.Fatalf("%s id not derived from name", f.Name)
		}
	}
}
