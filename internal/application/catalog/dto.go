package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/pahanaedu/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateItemRequest represents a request to create a catalog item
type CreateItemRequest struct {
	Code          string          `json:"item_code" binding:"omitempty,max=50"`
	Name          string          `json:"name" binding:"required,min=1,max=200"`
	Description   string          `json:"description" binding:"omitempty,max=1000"`
	UnitPrice     decimal.Decimal `json:"unit_price" binding:"required"`
	Category      string          `json:"category" binding:"omitempty,max=100"`
	StockQuantity *int            `json:"stock_quantity"`
}

// UpdateItemRequest represents a request to update a catalog item
type UpdateItemRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description   *string          `json:"description" binding:"omitempty,max=1000"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	Category      *string          `json:"category" binding:"omitempty,max=100"`
	StockQuantity *int             `json:"stock_quantity"`
}

// ItemListFilter represents filter options for item lists
type ItemListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ItemResponse represents a catalog item in API responses
type ItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"item_code"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Category      string          `json:"category,omitempty"`
	StockQuantity int             `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToItemResponse converts an Item to its API representation
func ToItemResponse(item *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:            item.ID,
		Code:          item.Code,
		Name:          item.Name,
		Description:   item.Description,
		UnitPrice:     item.UnitPrice,
		Category:      item.Category,
		StockQuantity: item.StockQuantity,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}

// ToItemResponses converts a slice of items
func ToItemResponses(items []catalog.Item) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	return responses
}
