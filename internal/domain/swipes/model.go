package swipes

import (
	"time"

	"tingrrr/internal/domain/dogs"
	"tingrrr/internal/domain/matching"
)

// Direction del swipe.
// @Enum left, right
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

func (d Direction) Valid() bool {
	return d == DirectionLeft || d == DirectionRight
}

// Swipe es inmutable; hay a lo sumo uno por (usuario, perro).
type Swipe struct {
	ID        string
	UserID    string
	DogID     string
	Direction Direction
	CreatedAt time.Time
}

// Card es un perro candidato con su compatibilidad.
type Card = matching.Scored

// Recommendation agrupa el ranking con el mensaje para el usuario.
type Recommendation struct {
	Dogs       []dogs.Dog
	SwipeCount int
	Message    string
}
