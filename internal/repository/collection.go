package repository

import "context"

// Collection is the generic CRUD surface every stored entity collection offers.
type Collection[T any] interface {
	// Add inserts a new record and fails with entity.ErrDuplicateID on id collision.
	Add(ctx context.Context, item *T) error
	// Get returns nil, nil when the id does not exist.
	Get(ctx context.Context, id string) (*T, error)
	GetAll(ctx context.Context, owner *OwnerFilter) ([]T, error)
	// Update upserts by id.
	Update(ctx context.Context, item *T) error
	// Remove is idempotent.
	Remove(ctx context.Context, id string) error
}
