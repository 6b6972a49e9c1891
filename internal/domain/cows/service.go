package cows

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Virgo-SSS/Ternakku/internal/platform/apperr"
	"github.com/Virgo-SSS/Ternakku/internal/platform/logger"
	"github.com/Virgo-SSS/Ternakku/internal/platform/query"
	"github.com/Virgo-SSS/Ternakku/internal/ports/blob"
)

// MaxPhotoBytes: tope para PUT /cow/{id}/photo.
const MaxPhotoBytes = 5 << 20

type Service struct {
	repo   Repository
	photos blob.Store // nil => fotos deshabilitadas
	log    logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, photos blob.Store) *Service {
	return &Service{
		repo:   repo,
		photos: photos,
		log:    logger.Nop(),
		now:    time.Now,
	}
}

// WithLogger: dónde se reportan las fallas de limpieza de fotos.
func (s *Service) WithLogger(log logger.Logger) *Service {
	if log != nil {
		s.log = log
	}
	return s
}

type CreateInput struct {
	Name      string
	Status    Status
	Gender    Gender
	BirthDate time.Time
	Weight    float64
	Type      string
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name      *string
	Status    *Status
	Gender    *Gender
	BirthDate *time.Time
	Weight    *float64
	Type      *string
}

func (in UpdateInput) empty() bool {
	return in.Name == nil && in.Status == nil && in.Gender == nil &&
		in.BirthDate == nil && in.Weight == nil && in.Type == nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Cow, error) {
	if err := checkCreate(in); err != nil {
		return Cow{}, err
	}

	now := s.now().UTC()
	c := Cow{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Status:    in.Status,
		Gender:    in.Gender,
		BirthDate: in.BirthDate,
		Weight:    in.Weight,
		Type:      strings.TrimSpace(in.Type),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.repo.Create(ctx, c); err != nil {
		return Cow{}, err
	}
	return c, nil
}

func checkCreate(in CreateInput) error {
	bad := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		bad["name"] = "name is required"
	}
	if !in.Status.Valid() {
		bad["status"] = "status is invalid"
	}
	if !in.Gender.Valid() {
		bad["gender"] = "gender must be M or F"
	}
	if in.BirthDate.IsZero() {
		bad["birth_date"] = "birth_date is required"
	}
	if in.Weight <= 0 {
		bad["weight"] = "weight must be greater than 0"
	}
	if strings.TrimSpace(in.Type) == "" {
		bad["type"] = "type is required"
	}
	if len(bad) > 0 {
		return apperr.InvalidFields(bad)
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Cow, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

// List aplica los filtros opcionales de FilterSpec más limit/offset.
func (s *Service) List(ctx context.Context, params map[string]string) ([]Cow, error) {
	f, err := query.BuildFilter(FilterSpec, params)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, f, query.PageFromParams(params))
}

// Update aplica un PATCH. Devuelve el registro ya actualizado.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Cow, error) {
	id = strings.TrimSpace(id)
	if in.empty() {
		return Cow{}, apperr.Invalid("no fields to update")
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
	if in.Status != nil {
		if !in.Status.Valid() {
			bad["status"] = "status is invalid"
		} else {
			ch.Set("status", string(*in.Status))
		}
	}
	if in.Gender != nil {
		if !in.Gender.Valid() {
			bad["gender"] = "gender must be M or F"
		} else {
			ch.Set("gender", string(*in.Gender))
		}
	}
	if in.BirthDate != nil {
		ch.Set("birth_date", query.DateValue(*in.BirthDate))
	}
	if in.Weight != nil {
		if *in.Weight <= 0 {
			bad["weight"] = "weight must be greater than 0"
		} else {
			ch.Set("weight", *in.Weight)
		}
	}
	if in.Type != nil {
		if v := strings.TrimSpace(*in.Type); v == "" {
			bad["type"] = "type cannot be empty"
		} else {
			ch.Set("type", v)
		}
	}
	if len(bad) > 0 {
		return Cow{}, apperr.InvalidFields(bad)
	}

	ch.Set("updated_at", query.TimeValue(s.now()))
	if err := s.repo.Update(ctx, id, ch); err != nil {
		return Cow{}, err
	}
	return s.repo.GetByID(ctx, id)
}

// Replace es el PUT: todos los campos requeridos, como en Create.
func (s *Service) Replace(ctx context.Context, id string, in CreateInput) (Cow, error) {
	if err := checkCreate(in); err != nil {
		return Cow{}, err
	}
	return s.Update(ctx, id, UpdateInput{
		Name:      &in.Name,
		Status:    &in.Status,
		Gender:    &in.Gender,
		BirthDate: &in.BirthDate,
		Weight:    &in.Weight,
		Type:      &in.Type,
	})
}

// Delete borra el registro y, si existe, su foto. Una vez borrada la fila
// el delete ya ocurrió: si la foto no se puede borrar solo se loguea.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.photos != nil {
		if err := s.photos.Delete(ctx, photoKey(id)); err != nil && !errors.Is(err, blob.ErrNotFound) {
			s.log.Warn("photo cleanup failed", map[string]any{
				"cow_id": id,
				"error":  err.Error(),
			})
		}
	}
	return nil
}

var ErrPhotosDisabled = errors.New("photo storage not configured")

// PutPhoto sube/reemplaza la foto del animal. La vaca debe existir.
func (s *Service) PutPhoto(ctx context.Context, id string, r io.Reader, contentType string) (blob.Info, error) {
	if s.photos == nil {
		return blob.Info{}, ErrPhotosDisabled
	}
	if !strings.HasPrefix(contentType, "image/") {
		return blob.Info{}, apperr.InvalidFields(map[string]string{"photo": "photo must be an image"})
	}
	if _, err := s.repo.GetByID(ctx, strings.TrimSpace(id)); err != nil {
		return blob.Info{}, err
	}

	// se lee un byte de más para distinguir "justo el tope" de "lo pasa"
	data, err := io.ReadAll(io.LimitReader(r, MaxPhotoBytes+1))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return blob.Info{}, errPhotoTooLarge()
		}
		return blob.Info{}, apperr.Invalid("could not read photo")
	}
	if len(data) > MaxPhotoBytes {
		return blob.Info{}, errPhotoTooLarge()
	}

	info, err := s.photos.Put(ctx, photoKey(id), bytes.NewReader(data), blob.PutOptions{ContentType: contentType})
	if err != nil {
		return blob.Info{}, apperr.Persistence("put photo", err)
	}
	return info, nil
}

func errPhotoTooLarge() error {
	return apperr.InvalidFields(map[string]string{"photo": "photo is too large"})
}

// Photo abre la foto; el caller cierra el reader.
func (s *Service) Photo(ctx context.Context, id string) (blob.Info, io.ReadCloser, error) {
	if s.photos == nil {
		return blob.Info{}, nil, ErrPhotosDisabled
	}
	info, rc, err := s.photos.Get(ctx, photoKey(id))
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return blob.Info{}, nil, apperr.NotFound("photo", id)
		}
		return blob.Info{}, nil, apperr.Persistence("get photo", err)
	}
	return info, rc, nil
}

func photoKey(id string) string {
	return "cows/" + strings.TrimSpace(id) + "/photo"
}
