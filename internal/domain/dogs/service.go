package dogs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tingrrr/internal/platform/validate"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("dog not found")
)

const DefaultPageSize = 20

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
	Name         string     `validate:"required,max=100"`
	Breed        string     `validate:"required,max=100"`
	Size         Size       `validate:"required,oneof=small medium large extra_large"`
	AgeYears     float64    `validate:"gte=0"`
	WeightLbs    float64    `validate:"gte=0"`
	Color        string     `validate:"required,max=100"`
	Sex          Sex        `validate:"required,oneof=male female"`
	CoatLength   CoatLength `validate:"required,oneof=short medium long wire hairless"`
	Description  string
	ImageURL     string
	IsRescue     bool
	GoodWithCats bool
	GoodWithKids bool
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name         *string     `validate:"omitempty,min=1,max=100"`
	Breed        *string     `validate:"omitempty,min=1,max=100"`
	Size         *Size       `validate:"omitempty,oneof=small medium large extra_large"`
	AgeYears     *float64    `validate:"omitempty,gte=0"`
	WeightLbs    *float64    `validate:"omitempty,gte=0"`
	Color        *string     `validate:"omitempty,min=1,max=100"`
	Sex          *Sex        `validate:"omitempty,oneof=male female"`
	CoatLength   *CoatLength `validate:"omitempty,oneof=short medium long wire hairless"`
	Description  *string
	ImageURL     *string
	IsRescue     *bool
	GoodWithCats *bool
	GoodWithKids *bool
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Dog, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Breed = strings.TrimSpace(in.Breed)
	in.Color = strings.TrimSpace(in.Color)
	if err := validate.Struct(in); err != nil {
		return Dog{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := s.now()
	d := Dog{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Breed:        in.Breed,
		Size:         in.Size,
		AgeYears:     in.AgeYears,
		WeightLbs:    in.WeightLbs,
		Color:        in.Color,
		Sex:          in.Sex,
		CoatLength:   in.CoatLength,
		Description:  strings.TrimSpace(in.Description),
		ImageURL:     strings.TrimSpace(in.ImageURL),
		IsRescue:     in.IsRescue,
		GoodWithCats: in.GoodWithCats,
		GoodWithKids: in.GoodWithKids,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Dog{}, err
	}
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Dog, error) {
	if strings.TrimSpace(id) == "" {
		return Dog{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// GetMany devuelve los perros existentes en el orden de ids; los ids
// desconocidos se omiten.
func (s *Service) GetMany(ctx context.Context, ids []string) ([]Dog, error) {
	if len(ids) == 0 {
		return []Dog{}, nil
	}
	return s.repo.GetMany(ctx, ids)
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]Dog, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return s.repo.List(ctx, ListFilter{Offset: skip, Limit: limit})
}

// ListAll devuelve el catálogo completo en orden de catálogo.
func (s *Service) ListAll(ctx context.Context) ([]Dog, error) {
	return s.repo.List(ctx, ListFilter{})
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Dog, error) {
	if err := validate.Struct(in); err != nil {
		return Dog{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	d, err := s.GetByID(ctx, id)
	if err != nil {
		return Dog{}, err
	}

	if in.Name != nil {
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.Breed != nil {
		d.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Size != nil {
		d.Size = *in.Size
	}
	if in.AgeYears != nil {
		d.AgeYears = *in.AgeYears
	}
	if in.WeightLbs != nil {
		d.WeightLbs = *in.WeightLbs
	}
	if in.Color != nil {
		d.Color = strings.TrimSpace(*in.Color)
	}
	if in.Sex != nil {
		d.Sex = *in.Sex
	}
	if in.CoatLength != nil {
		d.CoatLength = *in.CoatLength
	}
	if in.Description != nil {
		d.Description = strings.TrimSpace(*in.Description)
	}
	if in.ImageURL != nil {
		d.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.IsRescue != nil {
		d.IsRescue = *in.IsRescue
	}
	if in.GoodWithCats != nil {
		d.GoodWithCats = *in.GoodWithCats
	}
	if in.GoodWithKids != nil {
		d.GoodWithKids = *in.GoodWithKids
	}

	if d.Name == "" || d.Breed == "" || d.Color == "" {
		return Dog{}, ErrInvalidInput
	}

	d.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, d); err != nil {
		return Dog{}, err
	}
	return d, nil
}

// Delete quita el perro del catálogo. Los perfiles ya calculados no se
// recalculan; se actualizan en el próximo swipe right del usuario.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
