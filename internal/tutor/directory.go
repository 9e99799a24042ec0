package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hackgods/tutor-availability/internal/availability"
)

var (
	ErrTutorNotFound  = errors.New("tutor not found")
	ErrDuplicateTutor = errors.New("duplicate tutor name")
	ErrInvalidRate    = errors.New("availability rate must be in (0, 1]")
	ErrInvalidTutor   = errors.New("tutor name is required")
)

// Directory is an immutable, validated set of tutors keyed by display name.
type Directory struct {
	tutors []Tutor
	byName map[string]int
}

func NewDirectory(tutors []Tutor) (*Directory, error) {
	d := &Directory{
		tutors: make([]Tutor, 0, len(tutors)),
		byName: make(map[string]int, len(tutors)),
	}

	for _, t := range tutors {
		if strings.TrimSpace(t.Name) == "" {
			return nil, ErrInvalidTutor
		}
		if _, dup := d.byName[t.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTutor, t.Name)
		}
		for wd, r := range t.Rates {
			if r < 0 || r > 1 {
				return nil, fmt.Errorf("%w: %s weekday %d has %v", ErrInvalidRate, t.Name, wd, r)
			}
		}

		t.Subjects = append([]string(nil), t.Subjects...)
		d.byName[t.Name] = len(d.tutors)
		d.tutors = append(d.tutors, t)
	}

	return d, nil
}

// Load reads every tutor from repo and validates the result.
func Load(ctx context.Context, repo Repository) (*Directory, error) {
	tutors, err := repo.ListTutors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tutors: %w", err)
	}
	return NewDirectory(tutors)
}

func (d *Directory) Get(name string) (Tutor, error) {
	i, ok := d.byName[name]
	if !ok {
		return Tutor{}, ErrTutorNotFound
	}
	return d.tutors[i], nil
}

// List returns tutors in load order.
func (d *Directory) List() []Tutor {
	out := make([]Tutor, len(d.tutors))
	copy(out, d.tutors)
	return out
}

func (d *Directory) Len() int {
	return len(d.tutors)
}

// RateTable builds the lookup table consumed by availability.NewModel.
func (d *Directory) RateTable() availability.RateTable {
	table := make(availability.RateTable, len(d.tutors))
	for _, t := range d.tutors {
		table[t.Name] = t.Rates
	}
	return table
}
