package profiles

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
	reg  *Registry
	now  func() time.Time
}

func NewService(repo Repository, reg *Registry) *Service {
	if reg == nil {
		reg = DefaultRegistry
	}
	return &Service{
		repo: repo,
		reg:  reg,
		now:  time.Now,
	}
}

func (s *Service) Registry() *Registry { return s.reg }

// Create valida las keys contra el registry antes de tocar el repositorio.
func (s *Service) Create(ctx context.Context, userID string, payload map[string]any) (Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Profile{}, apperr.Unauthorized("")
	}
	fields, err := s.reg.Check(payload)
	if err != nil {
		return Profile{}, err
	}

	now := s.now().UTC()
	p := Profile{
		ID:        uuid.NewString(),
		UserID:    userID,
		Values:    make(map[string]string, len(fields)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, f := range fields {
		if v, ok := f.Value.(string); ok {
			p.Values[f.Column] = v
		}
	}

	if _, err := s.repo.Create(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Profile, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

// GetByUser devuelve el perfil más antiguo del usuario.
func (s *Service) GetByUser(ctx context.Context, userID string) (Profile, error) {
	f, err := query.BuildFilter(byUserSpec, map[string]string{"user_id": userID})
	if err != nil {
		return Profile{}, err
	}
	if f.Empty() {
		return Profile{}, apperr.NotFound("profile", userID)
	}
	items, err := s.repo.List(ctx, f, query.Page{Limit: 1})
	if err != nil {
		return Profile{}, err
	}
	if len(items) == 0 {
		return Profile{}, apperr.NotFound("profile", userID)
	}
	return items[0], nil
}

// Update aplica solo las keys enviadas; "" o null limpian la columna.
func (s *Service) Update(ctx context.Context, id string, payload map[string]any) (Profile, error) {
	id = strings.TrimSpace(id)
	fields, err := s.reg.Check(payload)
	if err != nil {
		return Profile{}, err
	}

	fields.Set("updated_at", query.TimeValue(s.now()))
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return Profile{}, err
	}
	return s.repo.GetByID(ctx, id)
}
