package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pahanaedu/backend/internal/domain/billing"
	"github.com/pahanaedu/backend/internal/domain/catalog"
	"github.com/pahanaedu/backend/internal/domain/shared"
	"github.com/pahanaedu/backend/internal/domain/shared/valueobject"
)

// BillService builds and maintains bill aggregates. Every line on a bill is
// resolved against the catalog before anything is persisted; totals are
// always recomputed server-side.
type BillService struct {
	billRepo billing.BillRepository
	itemRepo catalog.ItemRepository
}

// NewBillService creates a new BillService
func NewBillService(billRepo billing.BillRepository, itemRepo catalog.ItemRepository) *BillService {
	return &BillService{
		billRepo: billRepo,
		itemRepo: itemRepo,
	}
}

// Create builds a new bill from the request. The bill number is generated
// from the current bill count when the request does not carry one. If any
// line references an unknown item the whole operation aborts before any
// write happens.
func (s *BillService) Create(ctx context.Context, req CreateBillRequest) (*BillResponse, error) {
	billNumber := req.BillNumber
	if billNumber == "" {
		count, err := s.billRepo.Count(ctx)
		if err != nil {
			return nil, err
		}
		billNumber = billing.NextBillNumber(count)
	}

	bill, err := billing.NewBill(billNumber, req.CustomerID, req.BillDate, req.DueDate)
	if err != nil {
		return nil, err
	}

	if err := s.addLines(ctx, bill, req.Items); err != nil {
		return nil, err
	}

	if err := bill.Validate(); err != nil {
		return nil, err
	}

	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// Update applies a partial update to a bill. Dates and status are updated
// when present. When the request carries a line set the existing lines are
// wholesale replaced: an empty set is rejected, and every line is resolved
// against the catalog before the bill is touched.
func (s *BillService) Update(ctx context.Context, billID uuid.UUID, req UpdateBillRequest) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}

	if req.Items != nil && len(*req.Items) == 0 {
		return nil, shared.NewDomainError("NO_LINE_ITEMS", "Bill must have at least one line item")
	}

	if req.BillDate != nil || req.DueDate != nil {
		billDate := bill.BillDate
		dueDate := bill.DueDate
		if req.BillDate != nil {
			billDate = *req.BillDate
		}
		if req.DueDate != nil {
			dueDate = *req.DueDate
		}
		if err := bill.Reschedule(billDate, dueDate); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		if err := bill.ChangeStatus(billing.BillStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if req.Items != nil {
		bill.ClearLines()
		if err := s.addLines(ctx, bill, *req.Items); err != nil {
			return nil, err
		}
	}

	if err := bill.Validate(); err != nil {
		return nil, err
	}

	bill.IncrementVersion()

	if err := s.billRepo.Save(ctx, bill); err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// GetByID retrieves a bill by ID
func (s *BillService) GetByID(ctx context.Context, billID uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	response := ToBillResponse(bill)
	return &response, nil
}

// GetByNumber retrieves a bill by its bill number
func (s *BillService) GetByNumber(ctx context.Context, billNumber string) (*BillResponse, error) {
	bill, err := s.billRepo.FindByNumber(ctx, billNumber)
	if err != nil {
		return nil, err
	}
	response := ToBillResponse(bill)
	return &response, nil
}

// List retrieves bills, optionally restricted to a bill date range
func (s *BillService) List(ctx context.Context, filter BillListFilter) ([]BillResponse, error) {
	domainFilter := buildFilter(filter)

	if filter.From != "" || filter.To != "" {
		from, to, err := parseDateRange(filter.From, filter.To)
		if err != nil {
			return nil, err
		}
		bills, err := s.billRepo.FindByDateRange(ctx, from, to, domainFilter)
		if err != nil {
			return nil, err
		}
		return ToBillResponses(bills), nil
	}

	bills, err := s.billRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToBillResponses(bills), nil
}

// ListByCustomer retrieves bills for a customer
func (s *BillService) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter BillListFilter) ([]BillResponse, error) {
	bills, err := s.billRepo.FindByCustomer(ctx, customerID, buildFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToBillResponses(bills), nil
}

// ListByStatus retrieves bills by status
func (s *BillService) ListByStatus(ctx context.Context, status string, filter BillListFilter) ([]BillResponse, error) {
	billStatus := billing.BillStatus(status)
	if !billStatus.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Invalid bill status: %s", status))
	}

	bills, err := s.billRepo.FindByStatus(ctx, billStatus, buildFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToBillResponses(bills), nil
}

// Delete removes a bill and its lines
func (s *BillService) Delete(ctx context.Context, billID uuid.UUID) error {
	return s.billRepo.Delete(ctx, billID)
}

// addLines resolves every requested line against the catalog and appends it
// to the bill. Item code and name are snapshotted from the catalog; the unit
// price is taken from the request so cashiers can override the list price.
func (s *BillService) addLines(ctx context.Context, bill *billing.Bill, inputs []BillLineInput) error {
	for _, input := range inputs {
		item, err := s.itemRepo.FindByID(ctx, input.ItemID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("REFERENCE_NOT_FOUND", fmt.Sprintf("Item not found: %s", input.ItemID))
			}
			return err
		}

		unitPrice := valueobject.NewMoneyLKR(input.UnitPrice)
		if _, err := bill.AddLine(item.ID, item.Code, item.Name, input.Quantity, unitPrice); err != nil {
			return err
		}
	}
	return nil
}

func buildFilter(filter BillListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	return domainFilter
}

// parseDateRange parses the from/to query values. An open end defaults to
// the far past or far future respectively; to is inclusive of the whole day.
func parseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from := time.Time{}
	to := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

	if fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_DATE_RANGE", "Invalid from date, expected YYYY-MM-DD")
		}
		from = parsed
	}
	if toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_DATE_RANGE", "Invalid to date, expected YYYY-MM-DD")
		}
		to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	if !from.IsZero() && to.Before(from) {
		return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_DATE_RANGE", "to date cannot be before from date")
	}

	return from, to, nil
}
