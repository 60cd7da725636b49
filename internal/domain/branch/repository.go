package branch

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for branches.
type Repository interface {
	Create(ctx context.Context, b *Branch) error
	FindByID(ctx context.Context, id uuid.UUID) (*Branch, error)
	List(ctx context.Context) ([]*Branch, error)
	Save(ctx context.Context, b *Branch) error
}
