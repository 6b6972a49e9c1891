package profiles

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/Virgo-SSS/Ternakku/internal/platform/apperr"
	"github.com/Virgo-SSS/Ternakku/internal/platform/query"
)

type Kind string

const (
	KindText   Kind = "text"
	KindDigits Kind = "digits"
	KindDate   Kind = "date"
	KindGender Kind = "gender"
	KindURL    Kind = "url"
)

// FieldDef describe una columna editable de user_profiles.
type FieldDef struct {
	Name  string `json:"name"`
	Kind  Kind   `json:"kind"`
	Max   int    `json:"max,omitempty"`
	Label string `json:"label"`
}

// Registry es la allow-list de columnas que un payload de perfil puede tocar.
// Cualquier otra key se rechaza antes de llegar al repositorio.
type Registry struct {
	defs  map[string]FieldDef
	order []string
}

func NewRegistry(defs ...FieldDef) (*Registry, error) {
	r := &Registry{defs: make(map[string]FieldDef, len(defs))}
	for _, d := range defs {
		if !query.ValidIdent(d.Name) {
			return nil, fmt.Errorf("profiles: invalid column name %q", d.Name)
		}
		if reserved[d.Name] {
			return nil, fmt.Errorf("profiles: column %q is managed by the service", d.Name)
		}
		if _, dup := r.defs[d.Name]; dup {
			return nil, fmt.Errorf("profiles: duplicate column %q", d.Name)
		}
		r.defs[d.Name] = d
		r.order = append(r.order, d.Name)
	}
	sort.Strings(r.order)
	return r, nil
}

func MustRegistry(defs ...FieldDef) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

var reserved = map[string]bool{"id": true, "user_id": true, "created_at": true, "updated_at": true}

// DefaultRegistry: columnas de user_profiles (ver schema.sql).
var DefaultRegistry = MustRegistry(
	FieldDef{Name: "full_name", Kind: KindText, Max: 100, Label: "Nama Lengkap"},
	FieldDef{Name: "phone_number", Kind: KindDigits, Max: 20, Label: "Nomor HP"},
	FieldDef{Name: "address", Kind: KindText, Max: 255, Label: "Alamat"},
	FieldDef{Name: "farm_name", Kind: KindText, Max: 100, Label: "Nama Peternakan"},
	FieldDef{Name: "bio", Kind: KindText, Max: 500, Label: "Bio"},
	FieldDef{Name: "avatar_url", Kind: KindURL, Max: 500, Label: "Foto Profil"},
	FieldDef{Name: "birth_date", Kind: KindDate, Label: "Tanggal Lahir"},
	FieldDef{Name: "gender", Kind: KindGender, Label: "Jenis Kelamin"},
)

// Fields devuelve las definiciones ordenadas por nombre.
func (r *Registry) Fields() []FieldDef {
	out := make([]FieldDef, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.defs[n])
	}
	return out
}

func (r *Registry) Columns() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Lookup(name string) (FieldDef, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Check valida payload contra la allow-list y devuelve los campos en orden
// alfabético. Keys desconocidas o valores inválidos => ValidationError.
func (r *Registry) Check(payload map[string]any) (query.Fields, error) {
	if len(payload) == 0 {
		return nil, apperr.Invalid("profile payload is empty")
	}

	var unknown []string
	bad := map[string]string{}
	clean := make(map[string]any, len(payload))

	for k, raw := range payload {
		def, ok := r.defs[k]
		if !ok {
			unknown = append(unknown, k)
			continue
		}
		s, ok := raw.(string)
		if !ok {
			if raw == nil {
				clean[k] = nil
				continue
			}
			bad[k] = k + " must be a string"
			continue
		}
		s = strings.TrimSpace(s)
		if msg := def.check(s); msg != "" {
			bad[k] = msg
			continue
		}
		if s == "" {
			clean[k] = nil // NULL: limpia la columna
		} else {
			clean[k] = s
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &apperr.ValidationError{
			Message: "unknown profile fields: " + strings.Join(unknown, ", "),
			Fields:  bad,
		}
	}
	if len(bad) > 0 {
		return nil, apperr.InvalidFields(bad)
	}
	return query.FieldsFromMap(clean), nil
}

// check: "" siempre es válido (limpia el campo).
func (d FieldDef) check(s string) string {
	if s == "" {
		return ""
	}
	if d.Max > 0 && len(s) > d.Max {
		return d.Name + " is too long"
	}
	switch d.Kind {
	case KindDigits:
		for _, c := range s {
			if !unicode.IsDigit(c) {
				return d.Name + " must contain digits only"
			}
		}
	case KindDate:
		if _, err := time.Parse(query.DateLayout, s); err != nil {
			return d.Name + " must be YYYY-MM-DD"
		}
	case KindGender:
		if s != "M" && s != "F" {
			return d.Name + " must be M or F"
		}
	case KindURL:
		u, err := url.Parse(s)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return d.Name + " must be an http(s) url"
		}
	}
	return ""
}
