package profiles

import "time"

// Profile es el perfil del usuario. Values solo contiene columnas del
// Registry con valor no vacío.
type Profile struct {
	ID     string
	UserID string
	Values map[string]string

	CreatedAt time.Time
	UpdatedAt time.Time
}
