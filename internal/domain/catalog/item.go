package catalog

import (
	"fmt"
	"strings"

	"github.com/pahanaedu/backend/internal/domain/shared"
	"github.com/pahanaedu/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Item represents a sellable item in the catalog
type Item struct {
	shared.BaseEntity
	Code          string // Unique item code, e.g. ITM000001
	Name          string
	Description   string
	UnitPrice     decimal.Decimal
	Category      string
	StockQuantity int
}

// NewItem creates a new catalog item
func NewItem(code, name string, unitPrice valueobject.Money) (*Item, error) {
	if err := validateItemCode(code); err != nil {
		return nil, err
	}
	if err := validateItemName(name); err != nil {
		return nil, err
	}
	if unitPrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &Item{
		BaseEntity: shared.NewBaseEntity(),
		Code:       strings.ToUpper(code),
		Name:       name,
		UnitPrice:  unitPrice.Amount(),
	}, nil
}

// UpdateDetails updates the item's descriptive fields
func (i *Item) UpdateDetails(name, description, category string) error {
	if err := validateItemName(name); err != nil {
		return err
	}

	i.Name = name
	i.Description = description
	i.Category = category
	i.Touch()

	return nil
}

// ChangeUnitPrice updates the catalog price. Existing bills keep the price
// snapshotted on their lines.
func (i *Item) ChangeUnitPrice(unitPrice valueobject.Money) error {
	if unitPrice.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	i.UnitPrice = unitPrice.Amount()
	i.Touch()

	return nil
}

// SetStockQuantity sets the on-hand stock count
func (i *Item) SetStockQuantity(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}

	i.StockQuantity = quantity
	i.Touch()

	return nil
}

// GetUnitPriceMoney returns the unit price as Money value object
func (i *Item) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(i.UnitPrice)
}

func validateItemCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_ITEM_CODE", "Item code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_ITEM_CODE", "Item code cannot exceed 50 characters")
	}
	return nil
}

func validateItemName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot exceed 200 characters")
	}
	return nil
}

// NextItemCode formats a sequential item code from the number of items
// already stored, e.g. count 0 yields ITM000001.
func NextItemCode(count int64) string {
	return fmt.Sprintf("ITM%06d", count+1)
}
