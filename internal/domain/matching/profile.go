// Package matching aprende las preferencias de un usuario a partir de los
// perros que le gustaron y puntúa candidatos contra ese perfil.
//
// Es cómputo puro: no hace I/O y es seguro para uso concurrente.
// Precondición: los perros de entrada ya fueron validados (numéricos >= 0,
// enums válidos); no se revalida acá.
package matching

import (
	"time"

	"tingrrr/internal/domain/dogs"
)

// Profile es el agregado de preferencias de un usuario. Cada campo es
// opcional; nil significa "sin señal suficiente".
type Profile struct {
	UserID string

	PreferredSize       *dogs.Size
	PreferredBreed      *string
	PreferredCoatLength *dogs.CoatLength

	MinAge    *float64
	MaxAge    *float64
	MinWeight *float64
	MaxWeight *float64

	PrefersGoodWithCats *bool
	PrefersGoodWithKids *bool
	PrefersRescue       *bool

	// Lo setea quien persiste el perfil; Recompute lo deja en cero.
	UpdatedAt time.Time
}

// IsEmpty indica si ningún campo de preferencia está definido.
func (p Profile) IsEmpty() bool {
	return p.PreferredSize == nil &&
		p.PreferredBreed == nil &&
		p.PreferredCoatLength == nil &&
		p.MinAge == nil && p.MaxAge == nil &&
		p.MinWeight == nil && p.MaxWeight == nil &&
		p.PrefersGoodWithCats == nil &&
		p.PrefersGoodWithKids == nil &&
		p.PrefersRescue == nil
}

func ptr[T any](v T) *T { return &v }
