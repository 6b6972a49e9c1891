package profiles

import (
	"context"
	"fmt"
	"sort"

	"github.com/Virgo-SSS/Ternakku/internal/platform/query"
)

type Repository interface {
	Create(ctx context.Context, p Profile) (string, error)
	GetByID(ctx context.Context, id string) (Profile, error)
	List(ctx context.Context, filter query.Filter, page query.Page) ([]Profile, error)
	Update(ctx context.Context, id string, changes query.Fields) error
}

var byUserSpec = query.FilterSpec{
	{Param: "user_id", Column: "user_id", Match: query.MatchEqual},
}

// NewCodec arma el codec de user_profiles para un registry dado.
func NewCodec(reg *Registry) query.Codec[Profile] {
	cols := append([]string{"id", "user_id"}, reg.Columns()...)
	cols = append(cols, "created_at", "updated_at")

	return query.Codec[Profile]{
		Table:    "user_profiles",
		Resource: "profile",
		Columns:  cols,
		OrderBy:  []string{"created_at", "id"},

		// id y user_id primero, luego las keys del payload en orden alfabético
		ToFields: func(p Profile) query.Fields {
			f := query.Fields{
				{Column: "id", Value: p.ID},
				{Column: "user_id", Value: p.UserID},
			}
			keys := make([]string, 0, len(p.Values))
			for k := range p.Values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				f = append(f, query.Field{Column: k, Value: p.Values[k]})
			}
			f = append(f,
				query.Field{Column: "created_at", Value: query.TimeValue(p.CreatedAt)},
				query.Field{Column: "updated_at", Value: query.TimeValue(p.UpdatedAt)},
			)
			return f
		},

		FromRecord: func(r query.Record) (Profile, error) {
			created, err := r.Time("created_at")
			if err != nil {
				return Profile{}, fmt.Errorf("created_at: %w", err)
			}
			updated, err := r.Time("updated_at")
			if err != nil {
				return Profile{}, fmt.Errorf("updated_at: %w", err)
			}
			p := Profile{
				ID:        r.String("id"),
				UserID:    r.String("user_id"),
				Values:    map[string]string{},
				CreatedAt: created,
				UpdatedAt: updated,
			}
			for _, c := range reg.Columns() {
				v := r.String(c)
				if def, _ := reg.Lookup(c); def.Kind == KindDate && v != "" {
					// pgx devuelve DATE como time.Time
					d, err := r.Date(c)
					if err != nil {
						return Profile{}, fmt.Errorf("%s: %w", c, err)
					}
					v = query.DateValue(d)
				}
				if v != "" {
					p.Values[c] = v
				}
			}
			return p, nil
		},
	}
}
