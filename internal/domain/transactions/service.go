package transactions

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Virgo-SSS/Ternakku/internal/platform/apperr"
	"github.com/Virgo-SSS/Ternakku/internal/platform/query"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Type            Type
	Amount          float64
	Category        string
	TransactionDate time.Time
	Description     string
}

type UpdateInput struct {
	Type            *Type
	Amount          *float64
	Category        *string
	TransactionDate *time.Time
	Description     *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Transaction, error) {
	if err := checkCreate(in); err != nil {
		return Transaction{}, err
	}

	now := s.now().UTC()
	t := Transaction{
		ID:              uuid.NewString(),
		Type:            in.Type,
		Amount:          in.Amount,
		Category:        strings.ToLower(strings.TrimSpace(in.Category)),
		TransactionDate: in.TransactionDate,
		Description:     strings.TrimSpace(in.Description),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := s.repo.Create(ctx, t); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

func checkCreate(in CreateInput) error {
	bad := map[string]string{}
	if !in.Type.Valid() {
		bad["type"] = "type must be one of: income, expense"
	}
	if in.Amount <= 0 {
		bad["amount"] = "amount must be greater than 0"
	}
	if in.TransactionDate.IsZero() {
		bad["transaction_date"] = "transaction_date is required"
	}
	if len(bad) > 0 {
		return apperr.InvalidFields(bad)
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Transaction, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context, params map[string]string) ([]Transaction, error) {
	f, err := query.BuildFilter(FilterSpec, params)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, f, query.PageFromParams(params))
}

// Summary recorre todas las páginas que cumplen el filtro (limit/offset se ignoran).
func (s *Service) Summary(ctx context.Context, params map[string]string) (Summary, error) {
	f, err := query.BuildFilter(FilterSpec, params)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{ByCategory: map[string]float64{}}
	page := query.Page{Limit: query.MaxLimit}
	for {
		items, err := s.repo.List(ctx, f, page)
		if err != nil {
			return Summary{}, err
		}
		for _, t := range items {
			sum.Count++
			switch t.Type {
			case TypeIncome:
				sum.Income += t.Amount
				sum.ByCategory[t.Category] += t.Amount
			case TypeExpense:
				sum.Expense += t.Amount
				sum.ByCategory[t.Category] -= t.Amount
			}
		}
		if len(items) < page.Limit {
			break
		}
		page.Offset += page.Limit
	}
	sum.Balance = sum.Income - sum.Expense
	return sum, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Transaction, error) {
	id = strings.TrimSpace(id)
	if in.Type == nil && in.Amount == nil && in.Category == nil && in.TransactionDate == nil && in.Description == nil {
		return Transaction{}, apperr.Invalid("no fields to update")
	}

	var ch query.Fields
	bad := map[string]string{}

	if in.Type != nil {
		if !in.Type.Valid() {
			bad["type"] = "type must be one of: income, expense"
		} else {
			ch.Set("type", string(*in.Type))
		}
	}
	if in.Amount != nil {
		if *in.Amount <= 0 {
			bad["amount"] = "amount must be greater than 0"
		} else {
			ch.Set("amount", *in.Amount)
		}
	}
	if in.Category != nil {
		ch.Set("category", strings.ToLower(strings.TrimSpace(*in.Category)))
	}
	if in.TransactionDate != nil {
		ch.Set("transaction_date", query.DateValue(*in.TransactionDate))
	}
	if in.Description != nil {
		ch.Set("description", strings.TrimSpace(*in.Description))
	}
	if len(bad) > 0 {
		return Transaction{}, apperr.InvalidFields(bad)
	}

	ch.Set("updated_at", query.TimeValue(s.now()))
	if err := s.repo.Update(ctx, id, ch); err != nil {
		return Transaction{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Replace(ctx context.Context, id string, in CreateInput) (Transaction, error) {
	if err := checkCreate(in); err != nil {
		return Transaction{}, err
	}
	return s.Update(ctx, id, UpdateInput{
		Type:            &in.Type,
		Amount:          &in.Amount,
		Category:        &in.Category,
		TransactionDate: &in.TransactionDate,
		Description:     &in.Description,
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}
