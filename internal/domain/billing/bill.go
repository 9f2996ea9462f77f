package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pahanaedu/backend/internal/domain/shared"
	"github.com/pahanaedu/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TaxRate is the flat tax applied to every bill subtotal.
var TaxRate = decimal.RequireFromString("0.10")

// BillStatus represents the payment status of a bill
type BillStatus string

const (
	BillStatusPending BillStatus = "PENDING"
	BillStatusPaid    BillStatus = "PAID"
	BillStatusOverdue BillStatus = "OVERDUE"
)

// IsValid checks if the status is a valid BillStatus
func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusPending, BillStatusPaid, BillStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of BillStatus
func (s BillStatus) String() string {
	return string(s)
}

// BillLineItem represents a line on a bill. Item code, name and unit price
// are snapshotted at billing time so later catalog edits do not change
// historical bills.
type BillLineItem struct {
	ID         uuid.UUID
	BillID     uuid.UUID
	ItemID     uuid.UUID
	ItemCode   string
	ItemName   string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal // Quantity * UnitPrice
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewBillLineItem creates a new bill line item. The line total is always
// recomputed from quantity and unit price; caller-supplied totals are never
// trusted.
func NewBillLineItem(billID, itemID uuid.UUID, itemCode, itemName string, quantity decimal.Decimal, unitPrice valueobject.Money) (*BillLineItem, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if itemName == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &BillLineItem{
		ID:         uuid.New(),
		BillID:     billID,
		ItemID:     itemID,
		ItemCode:   itemCode,
		ItemName:   itemName,
		Quantity:   quantity,
		UnitPrice:  unitPrice.Amount(),
		TotalPrice: quantity.Mul(unitPrice.Amount()).Round(2),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// GetUnitPriceMoney returns the unit price as Money value object
func (i *BillLineItem) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(i.UnitPrice)
}

// GetTotalPriceMoney returns the line total as Money value object
func (i *BillLineItem) GetTotalPriceMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(i.TotalPrice)
}

// Bill represents a customer bill aggregate root. It owns its line items;
// all mutation goes through aggregate methods so the monetary totals stay
// consistent with the lines.
type Bill struct {
	shared.BaseAggregateRoot
	BillNumber  string
	CustomerID  uuid.UUID
	BillDate    time.Time
	DueDate     time.Time
	Lines       []BillLineItem
	Subtotal    decimal.Decimal // Sum of line totals
	TaxAmount   decimal.Decimal // Subtotal * TaxRate
	TotalAmount decimal.Decimal // Subtotal + TaxAmount
	Status      BillStatus
}

// NewBill creates a new bill in PENDING status with no lines
func NewBill(billNumber string, customerID uuid.UUID, billDate, dueDate time.Time) (*Bill, error) {
	if billNumber == "" {
		return nil, shared.NewDomainError("INVALID_BILL_NUMBER", "Bill number cannot be empty")
	}
	if len(billNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_BILL_NUMBER", "Bill number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if billDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_BILL_DATE", "Bill date cannot be empty")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be empty")
	}

	return &Bill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BillNumber:        billNumber,
		CustomerID:        customerID,
		BillDate:          billDate,
		DueDate:           dueDate,
		Lines:             make([]BillLineItem, 0),
		Subtotal:          decimal.Zero,
		TaxAmount:         decimal.Zero,
		TotalAmount:       decimal.Zero,
		Status:            BillStatusPending,
	}, nil
}

// AddLine appends a line to the bill and recalculates totals. The same
// catalog item may appear on multiple lines.
func (b *Bill) AddLine(itemID uuid.UUID, itemCode, itemName string, quantity decimal.Decimal, unitPrice valueobject.Money) (*BillLineItem, error) {
	line, err := NewBillLineItem(b.ID, itemID, itemCode, itemName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	b.Lines = append(b.Lines, *line)
	b.recalculateTotals()
	b.UpdatedAt = time.Now()

	return line, nil
}

// ClearLines removes all lines and resets totals to zero. Used by the
// update workflow before rebuilding the line set from a request.
func (b *Bill) ClearLines() {
	b.Lines = make([]BillLineItem, 0)
	b.recalculateTotals()
	b.UpdatedAt = time.Now()
}

// Reschedule updates the bill and due dates
func (b *Bill) Reschedule(billDate, dueDate time.Time) error {
	if billDate.IsZero() {
		return shared.NewDomainError("INVALID_BILL_DATE", "Bill date cannot be empty")
	}
	if dueDate.IsZero() {
		return shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be empty")
	}

	b.BillDate = billDate
	b.DueDate = dueDate
	b.UpdatedAt = time.Now()

	return nil
}

// ChangeStatus moves the bill to the given status
func (b *Bill) ChangeStatus(status BillStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Invalid bill status: %s", status))
	}

	b.Status = status
	b.UpdatedAt = time.Now()

	return nil
}

// Validate checks the invariants that must hold before the bill is persisted
func (b *Bill) Validate() error {
	if len(b.Lines) == 0 {
		return shared.NewDomainError("NO_LINE_ITEMS", "Bill must have at least one line item")
	}
	return nil
}

// LineCount returns the number of lines on the bill
func (b *Bill) LineCount() int {
	return len(b.Lines)
}

// GetTotalMoney returns the grand total as Money value object
func (b *Bill) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(b.TotalAmount)
}

// recalculateTotals recomputes subtotal, tax and grand total from the lines.
// Subtotal is the exact decimal sum of line totals; tax is rounded to cents.
func (b *Bill) recalculateTotals() {
	subtotal := decimal.Zero
	for _, line := range b.Lines {
		subtotal = subtotal.Add(line.TotalPrice)
	}
	b.Subtotal = subtotal
	b.TaxAmount = subtotal.Mul(TaxRate).Round(2)
	b.TotalAmount = b.Subtotal.Add(b.TaxAmount)
}

// NextBillNumber formats a sequential bill number from the number of bills
// already stored, e.g. count 0 yields BILL000001. Uniqueness is enforced by
// the store's unique index on bill_number.
func NextBillNumber(count int64) string {
	return fmt.Sprintf("BILL%06d", count+1)
}
