package swipes

import (
	"context"

	"tingrrr/internal/domain/matching"
)

// Repository persiste swipes y el perfil derivado de cada usuario.
// El perfil vive acá porque solo se escribe como consecuencia de un swipe.
type Repository interface {
	// Create devuelve ErrAlreadySwiped si (UserID, DogID) ya existe.
	Create(ctx context.Context, s Swipe) error
	Exists(ctx context.Context, userID, dogID string) (bool, error)
	// ListByUser devuelve los swipes en orden de creación.
	ListByUser(ctx context.Context, userID string) ([]Swipe, error)
	CountByUser(ctx context.Context, userID string) (int, error)

	// GetProfile devuelve ErrNoPreferences si el usuario todavía no tiene perfil.
	GetProfile(ctx context.Context, userID string) (matching.Profile, error)
	// CreateWithProfile guarda el swipe y reemplaza el perfil completo (upsert)
	// como una sola unidad: si algo falla no queda ninguno de los dos.
	// Devuelve ErrAlreadySwiped igual que Create.
	CreateWithProfile(ctx context.Context, s Swipe, p matching.Profile) error

	// Reset borra swipes y perfil del usuario en una sola operación.
	Reset(ctx context.Context, userID string) error
}
