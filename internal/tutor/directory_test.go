package tutor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hackgods/tutor-availability/internal/availability"
)

type failingRepo struct{ err error }

func (f failingRepo) ListTutors(context.Context) ([]Tutor, error) { return nil, f.err }

func TestLoad_StaticDirectory(t *testing.T) {
	dir, err := Load(context.Background(), NewStaticRepository())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if dir.Len() != 6 {
		t.Fatalf("expected 6 sample tutors, got %d", dir.Len())
	}

	mc, err := dir.Get("Michael Chen")
	if err != nil {
		t.Fatalf("get Michael Chen: %v", err)
	}
	if mc.Rates[time.Wednesday] != 0.9 {
		t.Fatalf("Michael Chen wednesday rate = %v", mc.Rates[time.Wednesday])
	}
	if mc.ID != IDForName("Michael Chen") {
		t.Fatalf("unexpected id %s", mc.ID)
	}

	model := availability.NewModel(dir.RateTable())
	if got := model.Rate("Michael Chen", time.Wednesday); got != 0.9 {
		t.Fatalf("model rate = %v", got)
	}
	if got := model.Rate("Unknown Tutor", time.Wednesday); got != availability.DefaultRate {
		t.Fatalf("unknown tutor rate = %v", got)
	}
}

func TestLoad_RepositoryError(t *testing.T) {
	boom := errors.New("boom")
	if _, err := Load(context.Background(), failingRepo{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

func TestDirectory_Get(t *testing.T) {
	dir, err := NewDirectory(SampleTutors())
	if err != nil {
		t.Fatalf("new directory: %v", err)
	}
	if _, err := dir.Get("sarah johnson"); !errors.Is(err, ErrTutorNotFound) {
		t.Fatalf("expected case sensitive miss, got %v", err)
	}
	if list := dir.List(); list[0].Name != "Sarah Johnson" {
		t.Fatalf("list order changed: %s first", list[0].Name)
	}
}

func TestNewDirectory_Validation(t *testing.T) {
	cases := []struct {
		name   string
		tutors []Tutor
		want   error
	}{
		{"duplicate", []Tutor{{Name: "A"}, {Name: "A"}}, ErrDuplicateTutor},
		{"blank name", []Tutor{{Name: "  "}}, ErrInvalidTutor},
		{"rate above one", []Tutor{{Name: "A", Rates: availability.WeeklyRates{1.2}}}, ErrInvalidRate},
		{"negative rate", []Tutor{{Name: "A", Rates: availability.WeeklyRates{0, -0.1}}}, ErrInvalidRate},
	}

	for _, tc := range cases {
		if _, err := NewDirectory(tc.tutors); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	if _, err := NewDirectory([]Tutor{{Name: "A", Rates: availability.WeeklyRates{1, 0, 0.5}}}); err != nil {
		t.Fatalf("valid rates rejected: %v", err)
	}
}

func TestIDForName_Stable(t *testing.T) {
	if IDForName("David Kim") != IDForName("David Kim") {
		t.Fatal("ids differ for the same name")
	}
	if IDForName("David Kim") == IDForName("Jessica Patel") {
		t.Fatal("ids collide for different names")
	}
}
