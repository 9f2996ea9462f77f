package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pahanaedu/backend/internal/domain/billing"
	"github.com/pahanaedu/backend/internal/domain/shared"
	"github.com/pahanaedu/backend/internal/infrastructure/persistence/models"
)

// GormBillRepository implements billing.BillRepository using GORM.
// The bill and its line items are persisted as one atomic unit.
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GORM-based bill repository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByID finds a bill by ID, with its lines loaded
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	err := r.db.WithContext(ctx).Preload("Lines").First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bill: %w", err)
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a bill by its unique bill number
func (r *GormBillRepository) FindByNumber(ctx context.Context, billNumber string) (*billing.Bill, error) {
	var model models.BillModel
	err := r.db.WithContext(ctx).Preload("Lines").First(&model, "bill_number = ?", billNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bill by number: %w", err)
	}
	return model.ToDomain(), nil
}

// FindAll finds all bills with filtering
func (r *GormBillRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Bill, error) {
	query := r.db.WithContext(ctx).Model(&models.BillModel{})
	return r.findBills(query, filter)
}

// FindByCustomer finds bills for a customer
func (r *GormBillRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]billing.Bill, error) {
	query := r.db.WithContext(ctx).Model(&models.BillModel{}).
		Where("customer_id = ?", customerID)
	return r.findBills(query, filter)
}

// FindByStatus finds bills by status
func (r *GormBillRepository) FindByStatus(ctx context.Context, status billing.BillStatus, filter shared.Filter) ([]billing.Bill, error) {
	query := r.db.WithContext(ctx).Model(&models.BillModel{}).
		Where("status = ?", status.String())
	return r.findBills(query, filter)
}

// FindByDateRange finds bills whose bill date falls within [from, to]
func (r *GormBillRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]billing.Bill, error) {
	query := r.db.WithContext(ctx).Model(&models.BillModel{})
	if !from.IsZero() {
		query = query.Where("bill_date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("bill_date <= ?", to)
	}
	return r.findBills(query, filter)
}

// Save creates or updates a bill together with its lines. The whole
// aggregate is written in one transaction so a failed line save leaves no
// partial bill behind.
func (r *GormBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	model := models.BillModelFromDomain(bill)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}

		// Remove lines dropped from the aggregate since the last save.
		lineIDs := make([]uuid.UUID, len(model.Lines))
		for i, line := range model.Lines {
			lineIDs[i] = line.ID
		}
		deleteQuery := tx.Where("bill_id = ?", model.ID)
		if len(lineIDs) > 0 {
			deleteQuery = deleteQuery.Where("id NOT IN ?", lineIDs)
		}
		if err := deleteQuery.Delete(&models.BillLineItemModel{}).Error; err != nil {
			return err
		}

		for i := range model.Lines {
			if err := tx.Save(&model.Lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return fmt.Errorf("failed to save bill: %w", err)
	}
	return nil
}

// Delete removes a bill and its lines
func (r *GormBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bill_id = ?", id).Delete(&models.BillLineItemModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete bill lines: %w", err)
		}

		result := tx.Delete(&models.BillModel{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete bill: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts all stored bills
func (r *GormBillRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BillModel{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count bills: %w", err)
	}
	return count, nil
}

// findBills applies the filter, runs the query and converts the results
func (r *GormBillRepository) findBills(query *gorm.DB, filter shared.Filter) ([]billing.Bill, error) {
	var modelList []models.BillModel

	query = r.applyFilter(query, filter)

	if err := query.Preload("Lines").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to find bills: %w", err)
	}

	bills := make([]billing.Bill, len(modelList))
	for i, model := range modelList {
		bills[i] = *model.ToDomain()
	}
	return bills, nil
}

// applyFilter applies pagination, ordering and search to the query
func (r *GormBillRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("bill_number ILIKE ?", searchPattern)
	}

	// Apply sorting with whitelist validation to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, BillSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

var _ billing.BillRepository = (*GormBillRepository)(nil)
