package transactions

import (
	"context"
	"fmt"

	"github.com/Virgo-SSS/Ternakku/internal/platform/query"
)

type Repository interface {
	Create(ctx context.Context, t Transaction) (string, error)
	GetByID(ctx context.Context, id string) (Transaction, error)
	List(ctx context.Context, filter query.Filter, page query.Page) ([]Transaction, error)
	Update(ctx context.Context, id string, changes query.Fields) error
	Delete(ctx context.Context, id string) error
}

var FilterSpec = query.FilterSpec{
	{Param: "type", Column: "type", Match: query.MatchEqual},
	{Param: "category", Column: "category", Match: query.MatchEqual},
	{Param: "transaction_date", Column: "transaction_date", Match: query.MatchDate},
}

var Codec = query.Codec[Transaction]{
	Table:    "transactions",
	Resource: "transaction",
	Columns:  []string{"id", "type", "amount", "category", "transaction_date", "description", "created_at", "updated_at"},
	OrderBy:  []string{"transaction_date", "created_at", "id"},

	ToFields: func(t Transaction) query.Fields {
		return query.Fields{
			{Column: "id", Value: t.ID},
			{Column: "type", Value: string(t.Type)},
			{Column: "amount", Value: t.Amount},
			{Column: "category", Value: t.Category},
			{Column: "transaction_date", Value: query.DateValue(t.TransactionDate)},
			{Column: "description", Value: t.Description},
			{Column: "created_at", Value: query.TimeValue(t.CreatedAt)},
			{Column: "updated_at", Value: query.TimeValue(t.UpdatedAt)},
		}
	},

	FromRecord: func(r query.Record) (Transaction, error) {
		amount, err := r.Float("amount")
		if err != nil {
			return Transaction{}, fmt.Errorf("amount: %w", err)
		}
		td, err := r.Date("transaction_date")
		if err != nil {
			return Transaction{}, fmt.Errorf("transaction_date: %w", err)
		}
		created, err := r.Time("created_at")
		if err != nil {
			return Transaction{}, fmt.Errorf("created_at: %w", err)
		}
		updated, err := r.Time("updated_at")
		if err != nil {
			return Transaction{}, fmt.Errorf("updated_at: %w", err)
		}
		return Transaction{
			ID:              r.String("id"),
			Type:            Type(r.String("type")),
			Amount:          amount,
			Category:        r.String("category"),
			TransactionDate: td,
			Description:     r.String("description"),
			CreatedAt:       created,
			UpdatedAt:       updated,
		}, nil
	},
}
