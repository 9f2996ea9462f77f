package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pahanaedu/backend/internal/domain/catalog"
	"github.com/pahanaedu/backend/internal/domain/shared"
	"github.com/pahanaedu/backend/internal/domain/shared/valueobject"
)

// ItemService handles catalog item operations
type ItemService struct {
	itemRepo catalog.ItemRepository
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo catalog.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// Create creates a new catalog item. The item code is generated from the
// current item count when the request does not carry one.
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	code := req.Code
	if code == "" {
		count, err := s.itemRepo.Count(ctx)
		if err != nil {
			return nil, err
		}
		code = catalog.NextItemCode(count)
	}

	item, err := catalog.NewItem(code, req.Name, valueobject.NewMoneyLKR(req.UnitPrice))
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.Category != "" {
		if err := item.UpdateDetails(req.Name, req.Description, req.Category); err != nil {
			return nil, err
		}
	}
	if req.StockQuantity != nil {
		if err := item.SetStockQuantity(*req.StockQuantity); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// Update applies a partial update to an item
func (s *ItemService) Update(ctx context.Context, itemID uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	name := item.Name
	description := item.Description
	category := item.Category
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.Category != nil {
		category = *req.Category
	}
	if err := item.UpdateDetails(name, description, category); err != nil {
		return nil, err
	}

	if req.UnitPrice != nil {
		if err := item.ChangeUnitPrice(valueobject.NewMoneyLKR(*req.UnitPrice)); err != nil {
			return nil, err
		}
	}
	if req.StockQuantity != nil {
		if err := item.SetStockQuantity(*req.StockQuantity); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// GetByID retrieves an item by ID
func (s *ItemService) GetByID(ctx context.Context, itemID uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// GetByCode retrieves an item by its unique code
func (s *ItemService) GetByCode(ctx context.Context, code string) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// List retrieves items with filtering
func (s *ItemService) List(ctx context.Context, filter ItemListFilter) ([]ItemResponse, error) {
	items, err := s.itemRepo.FindAll(ctx, buildFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToItemResponses(items), nil
}

// ListByCategory retrieves items in a category
func (s *ItemService) ListByCategory(ctx context.Context, category string, filter ItemListFilter) ([]ItemResponse, error) {
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}

	items, err := s.itemRepo.FindByCategory(ctx, category, buildFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToItemResponses(items), nil
}

// Delete removes an item from the catalog. Lines on existing bills keep
// their snapshotted code, name and price.
func (s *ItemService) Delete(ctx context.Context, itemID uuid.UUID) error {
	return s.itemRepo.Delete(ctx, itemID)
}

func buildFilter(filter ItemListFilter) shared.Filter {
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
