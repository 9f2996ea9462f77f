package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/pahanaedu/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// BillLineInput represents a line in a create or update request. The unit
// price is the price to snapshot onto the line; any client-computed line
// total is ignored and recomputed server-side.
type BillLineInput struct {
	ItemID    uuid.UUID        `json:"item_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Total     *decimal.Decimal `json:"total_price,omitempty"` // ignored, server recomputes
}

// CreateBillRequest represents a request to create a bill
type CreateBillRequest struct {
	CustomerID uuid.UUID       `json:"customer_id" binding:"required"`
	BillNumber string          `json:"bill_number" binding:"omitempty,max=50"`
	BillDate   time.Time       `json:"bill_date" binding:"required"`
	DueDate    time.Time       `json:"due_date" binding:"required"`
	Items      []BillLineInput `json:"items" binding:"required,min=1,dive"`
}

// UpdateBillRequest represents a request to update a bill. A nil Items
// pointer means the line set is untouched; an empty slice is rejected
// because a bill must keep at least one line.
type UpdateBillRequest struct {
	BillDate *time.Time       `json:"bill_date"`
	DueDate  *time.Time       `json:"due_date"`
	Status   *string          `json:"status" binding:"omitempty,oneof=PENDING PAID OVERDUE"`
	Items    *[]BillLineInput `json:"items"`
}

// BillListFilter represents filter options for bill lists
type BillListFilter struct {
	Search   string `form:"search"`
	From     string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// BillLineResponse represents a bill line in API responses
type BillLineResponse struct {
	ID         uuid.UUID       `json:"id"`
	ItemID     uuid.UUID       `json:"item_id"`
	ItemCode   string          `json:"item_code"`
	ItemName   string          `json:"item_name"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID          uuid.UUID          `json:"id"`
	BillNumber  string             `json:"bill_number"`
	CustomerID  uuid.UUID          `json:"customer_id"`
	BillDate    time.Time          `json:"bill_date"`
	DueDate     time.Time          `json:"due_date"`
	Items       []BillLineResponse `json:"items"`
	ItemCount   int                `json:"item_count"`
	Subtotal    decimal.Decimal    `json:"subtotal"`
	TaxAmount   decimal.Decimal    `json:"tax_amount"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Version     int                `json:"version"`
}

// ToBillResponse converts a Bill aggregate to its API representation
func ToBillResponse(bill *billing.Bill) BillResponse {
	items := make([]BillLineResponse, len(bill.Lines))
	for i, line := range bill.Lines {
		items[i] = BillLineResponse{
			ID:         line.ID,
			ItemID:     line.ItemID,
			ItemCode:   line.ItemCode,
			ItemName:   line.ItemName,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.TotalPrice,
		}
	}

	return BillResponse{
		ID:          bill.ID,
		BillNumber:  bill.BillNumber,
		CustomerID:  bill.CustomerID,
		BillDate:    bill.BillDate,
		DueDate:     bill.DueDate,
		Items:       items,
		ItemCount:   len(items),
		Subtotal:    bill.Subtotal,
		TaxAmount:   bill.TaxAmount,
		TotalAmount: bill.TotalAmount,
		Status:      bill.Status.String(),
		CreatedAt:   bill.CreatedAt,
		UpdatedAt:   bill.UpdatedAt,
		Version:     bill.Version,
	}
}

// ToBillResponses converts a slice of bills
func ToBillResponses(bills []billing.Bill) []BillResponse {
	responses := make([]BillResponse, len(bills))
	for i := range bills {
		responses[i] = ToBillResponse(&bills[i])
	}
	return responses
}
