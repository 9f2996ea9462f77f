package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pahanaedu/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// BillModel is the persistence model for bills
type BillModel struct {
	AggregateModel
	BillNumber  string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID  uuid.UUID           `gorm:"type:uuid;not null;index"`
	BillDate    time.Time           `gorm:"not null;index"`
	DueDate     time.Time           `gorm:"not null"`
	Subtotal    decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	TaxAmount   decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	Status      string              `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Lines       []BillLineItemModel `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// BillLineItemModel is the persistence model for bill line items
type BillLineItemModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	BillID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemCode   string          `gorm:"type:varchar(50);not null"`
	ItemName   string          `gorm:"type:varchar(200);not null"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BillLineItemModel) TableName() string {
	return "bill_line_items"
}

// ToDomain converts BillModel to a domain Bill aggregate
func (m *BillModel) ToDomain() *billing.Bill {
	lines := make([]billing.BillLineItem, len(m.Lines))
	for i, line := range m.Lines {
		lines[i] = billing.BillLineItem{
			ID:         line.ID,
			BillID:     line.BillID,
			ItemID:     line.ItemID,
			ItemCode:   line.ItemCode,
			ItemName:   line.ItemName,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.TotalPrice,
			CreatedAt:  line.CreatedAt,
			UpdatedAt:  line.UpdatedAt,
		}
	}

	return &billing.Bill{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BillNumber:        m.BillNumber,
		CustomerID:        m.CustomerID,
		BillDate:          m.BillDate,
		DueDate:           m.DueDate,
		Lines:             lines,
		Subtotal:          m.Subtotal,
		TaxAmount:         m.TaxAmount,
		TotalAmount:       m.TotalAmount,
		Status:            billing.BillStatus(m.Status),
	}
}

// BillModelFromDomain converts a domain Bill aggregate to its persistence model
func BillModelFromDomain(bill *billing.Bill) *BillModel {
	model := &BillModel{
		BillNumber:  bill.BillNumber,
		CustomerID:  bill.CustomerID,
		BillDate:    bill.BillDate,
		DueDate:     bill.DueDate,
		Subtotal:    bill.Subtotal,
		TaxAmount:   bill.TaxAmount,
		TotalAmount: bill.TotalAmount,
		Status:      bill.Status.String(),
	}
	model.FromDomainAggregateRoot(bill.BaseAggregateRoot)

	model.Lines = make([]BillLineItemModel, len(bill.Lines))
	for i, line := range bill.Lines {
		model.Lines[i] = BillLineItemModel{
			ID:         line.ID,
			BillID:     bill.ID,
			ItemID:     line.ItemID,
			ItemCode:   line.ItemCode,
			ItemName:   line.ItemName,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.TotalPrice,
			CreatedAt:  line.CreatedAt,
			UpdatedAt:  line.UpdatedAt,
		}
	}

	return model
}
