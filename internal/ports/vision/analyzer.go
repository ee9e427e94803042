package vision

import (
	"context"

	"tingrrr/internal/domain/dogs"
)

// Analysis son los atributos del perro inferidos de una foto.
type Analysis struct {
	Breed       string
	Size        dogs.Size
	Color       string
	CoatLength  dogs.CoatLength
	Description string
	Confidence  float64 // 0..1
}

// Analyzer analiza la imagen de un perro.
type Analyzer interface {
	Analyze(ctx context.Context, image []byte) (Analysis, error)
}
