package cows

import "time"

// Status es el estado de salud/comercial del animal.
// @Enum healthy, sick, pregnant, quarantine, sold, dead
type Status string

const (
	StatusHealthy    Status = "healthy"
	StatusSick       Status = "sick"
	StatusPregnant   Status = "pregnant"
	StatusQuarantine Status = "quarantine"
	StatusSold       Status = "sold"
	StatusDead       Status = "dead"
)

// orden en el que se muestran en el select de filtros
var allStatuses = []Status{
	StatusHealthy,
	StatusSick,
	StatusPregnant,
	StatusQuarantine,
	StatusSold,
	StatusDead,
}

var statusLabels = map[Status]string{
	StatusHealthy:    "Sehat",
	StatusSick:       "Sakit",
	StatusPregnant:   "Bunting",
	StatusQuarantine: "Karantina",
	StatusSold:       "Terjual",
	StatusDead:       "Mati",
}

func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// StatusLabel devuelve la etiqueta para la UI; si no se conoce, el valor crudo.
func StatusLabel(s Status) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Gender: M (jantan) o F (betina).
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

func (g Gender) Label() string {
	if g == GenderMale {
		return "Jantan"
	}
	return "Betina"
}

// Cow es un animal del inventario. ID no cambia una vez asignado.
type Cow struct {
	ID string

	Name      string
	Status    Status
	Gender    Gender
	BirthDate time.Time
	Weight    float64 // kg
	Type      string  // raza, p.ej. "Sapi Bali"

	CreatedAt time.Time
	UpdatedAt time.Time
}
