package workers

import "time"

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Laki-Laki"
	case GenderFemale:
		return "Perempuan"
	default:
		return string(g)
	}
}

// Worker es un pekerja de la granja.
type Worker struct {
	ID string

	Name        string
	Gender      Gender
	PhoneNumber string // solo dígitos, p.ej. 0812...
	Email       string

	CreatedAt time.Time
	UpdatedAt time.Time
}
