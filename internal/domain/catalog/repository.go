package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pahanaedu/backend/internal/domain/shared"
)

// ItemRepository defines the interface for catalog item persistence
type ItemRepository interface {
	// FindByID finds an item by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByCode finds an item by its unique code
	FindByCode(ctx context.Context, code string) (*Item, error)

	// FindAll finds all items with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Item, error)

	// FindByCategory finds items in a category
	FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]Item, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error

	// Delete removes an item
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts all stored items
	Count(ctx context.Context) (int64, error)
}
