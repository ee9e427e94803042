// Package rescue da de alta perros a partir de una foto: la imagen se analiza
// y los atributos inferidos prellenan el perfil.
package rescue

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"tingrrr/internal/domain/dogs"
	"tingrrr/internal/platform/logger"
	"tingrrr/internal/ports/vision"
)

const MaxImageBytes = 10 << 20

var (
	ErrUnsupportedImage    = errors.New("unsupported image type")
	ErrImageTooLarge       = errors.New("image too large")
	ErrInvalidInput        = errors.New("invalid input")
	ErrAnalysisUnavailable = errors.New("image analysis unavailable")
)

var supportedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// DogCreator lo implementa dogs.Service.
type DogCreator interface {
	Create(ctx context.Context, in dogs.CreateInput) (dogs.Dog, error)
}

type Service struct {
	analyzer vision.Analyzer
	dogs     DogCreator
	log      logger.Logger
}

func NewService(analyzer vision.Analyzer, creator DogCreator, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		analyzer: analyzer,
		dogs:     creator,
		log:      log.With(map[string]any{"component": "rescue"}),
	}
}

// UploadInput trae la foto y lo que el refugio ya sabe del perro.
type UploadInput struct {
	Image       []byte
	ContentType string

	Name         string
	AgeYears     float64
	WeightLbs    float64 // 0 = estimar por tamaño
	Sex          dogs.Sex
	IsRescue     bool
	GoodWithCats bool
	GoodWithKids bool
}

type Result struct {
	Dog      dogs.Dog
	Analysis vision.Analysis
	Message  string
}

func (s *Service) Upload(ctx context.Context, in UploadInput) (Result, error) {
	if !supportedTypes[strings.ToLower(strings.TrimSpace(in.ContentType))] {
		return Result{}, ErrUnsupportedImage
	}
	if len(in.Image) > MaxImageBytes {
		return Result{}, ErrImageTooLarge
	}

	analysis, err := s.analyzer.Analyze(ctx, in.Image)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrAnalysisUnavailable, err)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "Unknown"
	}
	breed := analysis.Breed
	if strings.TrimSpace(breed) == "" {
		breed = "Mixed Breed"
	}
	color := analysis.Color
	if strings.TrimSpace(color) == "" {
		color = "Unknown"
	}
	weight := in.WeightLbs
	if weight <= 0 {
		weight = dogs.DefaultWeight(analysis.Size)
	}
	sex := in.Sex
	if sex == "" {
		sex = dogs.SexMale
	}

	d, err := s.dogs.Create(ctx, dogs.CreateInput{
		Name:         name,
		Breed:        breed,
		Size:         analysis.Size,
		AgeYears:     in.AgeYears,
		WeightLbs:    weight,
		Color:        color,
		Description:  analysis.Description,
		Sex:          sex,
		CoatLength:   analysis.CoatLength,
		IsRescue:     in.IsRescue,
		GoodWithCats: in.GoodWithCats,
		GoodWithKids: in.GoodWithKids,
	})
	if err != nil {
		if errors.Is(err, dogs.ErrInvalidInput) {
			return Result{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return Result{}, err
	}

	s.log.Info("rescue dog created from image", map[string]any{
		"dog_id":     d.ID,
		"breed":      d.Breed,
		"confidence": analysis.Confidence,
	})

	return Result{
		Dog:      d,
		Analysis: analysis,
		Message: fmt.Sprintf(
			"Dog analyzed with %d%% confidence. Review the pre-filled fields and PATCH /dogs/{id} to correct anything.",
			int(math.Round(analysis.Confidence*100)),
		),
	}, nil
}
