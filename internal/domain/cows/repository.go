package cows

import (
	"context"
	"fmt"

	"github.com/Virgo-SSS/Ternakku/internal/platform/query"
)

type Repository interface {
	Create(ctx context.Context, c Cow) (string, error)
	GetByID(ctx context.Context, id string) (Cow, error)
	List(ctx context.Context, filter query.Filter, page query.Page) ([]Cow, error)
	Update(ctx context.Context, id string, changes query.Fields) error
	Delete(ctx context.Context, id string) error
}

// FilterSpec: parámetros aceptados por GET /cow.
var FilterSpec = query.FilterSpec{
	{Param: "name", Column: "name", Match: query.MatchContains},
	{Param: "status", Column: "status", Match: query.MatchEqual},
	{Param: "birth_date", Column: "birth_date", Match: query.MatchDate},
	{Param: "gender", Column: "gender", Match: query.MatchEqual},
}

var Codec = query.Codec[Cow]{
	Table:    "cows",
	Resource: "cow",
	Columns:  []string{"id", "name", "status", "gender", "birth_date", "weight", "type", "created_at", "updated_at"},
	OrderBy:  []string{"created_at", "id"},

	ToFields: func(c Cow) query.Fields {
		return query.Fields{
			{Column: "id", Value: c.ID},
			{Column: "name", Value: c.Name},
			{Column: "status", Value: string(c.Status)},
			{Column: "gender", Value: string(c.Gender)},
			{Column: "birth_date", Value: query.DateValue(c.BirthDate)},
			{Column: "weight", Value: c.Weight},
			{Column: "type", Value: c.Type},
			{Column: "created_at", Value: query.TimeValue(c.CreatedAt)},
			{Column: "updated_at", Value: query.TimeValue(c.UpdatedAt)},
		}
	},

	FromRecord: func(r query.Record) (Cow, error) {
		bd, err := r.Date("birth_date")
		if err != nil {
			return Cow{}, fmt.Errorf("birth_date: %w", err)
		}
		w, err := r.Float("weight")
		if err != nil {
			return Cow{}, fmt.Errorf("weight: %w", err)
		}
		created, err := r.Time("created_at")
		if err != nil {
			return Cow{}, fmt.Errorf("created_at: %w", err)
		}
		updated, err := r.Time("updated_at")
		if err != nil {
			return Cow{}, fmt.Errorf("updated_at: %w", err)
		}
		return Cow{
			ID:        r.String("id"),
			Name:      r.String("name"),
			Status:    Status(r.String("status")),
			Gender:    Gender(r.String("gender")),
			BirthDate: bd,
			Weight:    w,
			Type:      r.String("type"),
			CreatedAt: created,
			UpdatedAt: updated,
		}, nil
	},
}
