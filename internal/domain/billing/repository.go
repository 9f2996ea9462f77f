package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pahanaedu/backend/internal/domain/shared"
)

// BillRepository defines the interface for bill persistence. Save persists
// the bill and its lines as one atomic unit.
type BillRepository interface {
	// FindByID finds a bill by ID, with its lines loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)

	// FindByNumber finds a bill by its unique bill number
	FindByNumber(ctx context.Context, billNumber string) (*Bill, error)

	// FindAll finds all bills with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Bill, error)

	// FindByCustomer finds bills for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Bill, error)

	// FindByStatus finds bills by status
	FindByStatus(ctx context.Context, status BillStatus, filter shared.Filter) ([]Bill, error)

	// FindByDateRange finds bills whose bill date falls within [from, to]
	FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]Bill, error)

	// Save creates or updates a bill together with its lines
	Save(ctx context.Context, bill *Bill) error

	// Delete removes a bill and its lines
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts all stored bills
	Count(ctx context.Context) (int64, error)
}
