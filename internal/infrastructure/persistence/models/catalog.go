package models

import (
	"github.com/pahanaedu/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ItemModel is the persistence model for catalog items
type ItemModel struct {
	BaseModel
	Code          string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Category      string          `gorm:"type:varchar(100);index"`
	StockQuantity int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// ToDomain converts ItemModel to a domain Item
func (m *ItemModel) ToDomain() *catalog.Item {
	return &catalog.Item{
		BaseEntity:    m.BaseModel.ToDomain(),
		Code:          m.Code,
		Name:          m.Name,
		Description:   m.Description,
		UnitPrice:     m.UnitPrice,
		Category:      m.Category,
		StockQuantity: m.StockQuantity,
	}
}

// ItemModelFromDomain converts a domain Item to its persistence model
func ItemModelFromDomain(item *catalog.Item) *ItemModel {
	model := &ItemModel{
		Code:          item.Code,
		Name:          item.Name,
		Description:   item.Description,
		UnitPrice:     item.UnitPrice,
		Category:      item.Category,
		StockQuantity: item.StockQuantity,
	}
	model.FromDomainBaseEntity(item.BaseEntity)
	return model
}
