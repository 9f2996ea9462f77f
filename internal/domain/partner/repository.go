package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/pahanaedu/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByAccountNumber finds a customer by its unique account number
	FindByAccountNumber(ctx context.Context, accountNumber string) (*Customer, error)

	// FindAll finds all customers with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete removes a customer
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts all stored customers
	Count(ctx context.Context) (int64, error)
}
