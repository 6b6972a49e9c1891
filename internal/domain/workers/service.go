package workers

import (
	"context"
	"net/mail"
	"strings"
	"time"
	"unicode"

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
	Name        string
	Gender      Gender
	PhoneNumber string
	Email       string
}

type UpdateInput struct {
	Name        *string
	Gender      *Gender
	PhoneNumber *string
	Email       *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Worker, error) {
	in = normalize(in)
	if err := checkCreate(in); err != nil {
		return Worker{}, err
	}

	now := s.now().UTC()
	w := Worker{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Gender:      in.Gender,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.repo.Create(ctx, w); err != nil {
		return Worker{}, err
	}
	return w, nil
}

func normalize(in CreateInput) CreateInput {
	in.Name = strings.TrimSpace(in.Name)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	return in
}

func checkCreate(in CreateInput) error {
	bad := map[string]string{}
	if in.Name == "" {
		bad["name"] = "name is required"
	}
	if !in.Gender.Valid() {
		bad["gender"] = "gender must be M or F"
	}
	if msg := checkPhone(in.PhoneNumber); msg != "" {
		bad["phone_number"] = msg
	}
	if msg := checkEmail(in.Email); msg != "" {
		bad["email"] = msg
	}
	if len(bad) > 0 {
		return apperr.InvalidFields(bad)
	}
	return nil
}

func checkPhone(s string) string {
	if s == "" {
		return "phone_number is required"
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return "phone_number must contain digits only"
		}
	}
	return ""
}

func checkEmail(s string) string {
	if s == "" {
		return "email is required"
	}
	if a, err := mail.ParseAddress(s); err != nil || a.Address != s {
		return "email must be a valid email"
	}
	return ""
}

func (s *Service) GetByID(ctx context.Context, id string) (Worker, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context, params map[string]string) ([]Worker, error) {
	f, err := query.BuildFilter(FilterSpec, params)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, f, query.PageFromParams(params))
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Worker, error) {
	id = strings.TrimSpace(id)
	if in.Name == nil && in.Gender == nil && in.PhoneNumber == nil && in.Email == nil {
		return Worker{}, apperr.Invalid("no fields to update")
	}

	var ch query.Fields
	bad := map[string]string{}

	if in.Name != nil {
		if v := strings.TrimSpace(*in.Name); v == "" {
			bad["name"] = "name cannot be empty"
		} else {
			ch.Set("name", v)
		}
	}
	if in.Gender != nil {
		if !in.Gender.Valid() {
			bad["gender"] = "gender must be M or F"
		} else {
			ch.Set("gender", string(*in.Gender))
		}
	}
	if in.PhoneNumber != nil {
		v := strings.TrimSpace(*in.PhoneNumber)
		if msg := checkPhone(v); msg != "" {
			bad["phone_number"] = msg
		} else {
			ch.Set("phone_number", v)
		}
	}
	if in.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*in.Email))
		if msg := checkEmail(v); msg != "" {
			bad["email"] = msg
		} else {
			ch.Set("email", v)
		}
	}
	if len(bad) > 0 {
		return Worker{}, apperr.InvalidFields(bad)
	}

	ch.Set("updated_at", query.TimeValue(s.now()))
	if err := s.repo.Update(ctx, id, ch); err != nil {
		return Worker{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Replace(ctx context.Context, id string, in CreateInput) (Worker, error) {
	in = normalize(in)
	if err := checkCreate(in); err != nil {
		return Worker{}, err
	}
	return s.Update(ctx, id, UpdateInput{
		Name:        &in.Name,
		Gender:      &in.Gender,
		PhoneNumber: &in.PhoneNumber,
		Email:       &in.Email,
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(id))
}
