package dogs

import "context"

// ListFilter pagina el catálogo. Limit <= 0 => sin límite.
type ListFilter struct {
	Offset int
	Limit  int
}

// Repository persiste el catálogo. List respeta el orden de catálogo
// (created_at asc, id asc); GetMany, el orden de los ids pedidos.
type Repository interface {
	Create(ctx context.Context, d Dog) error
	Update(ctx context.Context, d Dog) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Dog, error)
	GetMany(ctx context.Context, ids []string) ([]Dog, error)
	List(ctx context.Context, f ListFilter) ([]Dog, error)
}
