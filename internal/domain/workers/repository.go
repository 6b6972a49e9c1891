package workers

import (
	"context"
	"fmt"

	"github.com/Virgo-SSS/Ternakku/internal/platform/query"
)

type Repository interface {
	Create(ctx context.Context, w Worker) (string, error)
	GetByID(ctx context.Context, id string) (Worker, error)
	List(ctx context.Context, filter query.Filter, page query.Page) ([]Worker, error)
	Update(ctx context.Context, id string, changes query.Fields) error
	Delete(ctx context.Context, id string) error
}

var FilterSpec = query.FilterSpec{
	{Param: "name", Column: "name", Match: query.MatchContains},
	{Param: "gender", Column: "gender", Match: query.MatchEqual},
}

var Codec = query.Codec[Worker]{
	Table:    "workers",
	Resource: "worker",
	Columns:  []string{"id", "name", "gender", "phone_number", "email", "created_at", "updated_at"},
	OrderBy:  []string{"created_at", "id"},

	ToFields: func(w Worker) query.Fields {
		return query.Fields{
			{Column: "id", Value: w.ID},
			{Column: "name", Value: w.Name},
			{Column: "gender", Value: string(w.Gender)},
			{Column: "phone_number", Value: w.PhoneNumber},
			{Column: "email", Value: w.Email},
			{Column: "created_at", Value: query.TimeValue(w.CreatedAt)},
			{Column: "updated_at", Value: query.TimeValue(w.UpdatedAt)},
		}
	},

	FromRecord: func(r query.Record) (Worker, error) {
		created, err := r.Time("created_at")
		if err != nil {
			return Worker{}, fmt.Errorf("created_at: %w", err)
		}
		updated, err := r.Time("updated_at")
		if err != nil {
			return Worker{}, fmt.Errorf("updated_at: %w", err)
		}
		return Worker{
			ID:          r.String("id"),
			Name:        r.String("name"),
			Gender:      Gender(r.String("gender")),
			PhoneNumber: r.String("phone_number"),
			Email:       r.String("email"),
			CreatedAt:   created,
			UpdatedAt:   updated,
		}, nil
	},
}
