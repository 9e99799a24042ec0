package tutor

import (
	"github.com/google/uuid"

	"github.com/hackgods/tutor-availability/internal/availability"
)

type Tutor struct {
	ID         uuid.UUID
	Name       string
	Subjects   []string
	HourlyRate float64
	Rates      availability.WeeklyRates
}

// idNamespace scopes name-derived tutor IDs.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://mathmaster.example/tutors"))

// IDForName returns the stable ID used for a tutor with no stored ID.
func IDForName(name string) uuid.UUID {
	return uuid.NewSHA1(idNamespace, []byte(name))
}
