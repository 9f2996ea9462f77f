package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/pahanaedu/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	AccountNumber string           `json:"account_number" binding:"omitempty,max=50"`
	Name          string           `json:"name" binding:"required,min=1,max=200"`
	Address       string           `json:"address" binding:"required,min=1,max=500"`
	Telephone     string           `json:"telephone" binding:"required,min=1,max=50"`
	Email         string           `json:"email" binding:"omitempty,email"`
	UnitsConsumed *decimal.Decimal `json:"units_consumed"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Address       *string          `json:"address" binding:"omitempty,min=1,max=500"`
	Telephone     *string          `json:"telephone" binding:"omitempty,min=1,max=50"`
	Email         *string          `json:"email"`
	UnitsConsumed *decimal.Decimal `json:"units_consumed"`
}

// CustomerListFilter represents filter options for customer lists
type CustomerListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID            uuid.UUID       `json:"id"`
	AccountNumber string          `json:"account_number"`
	Name          string          `json:"name"`
	Address       string          `json:"address"`
	Telephone     string          `json:"telephone"`
	Email         string          `json:"email,omitempty"`
	UnitsConsumed decimal.Decimal `json:"units_consumed"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToCustomerResponse converts a Customer to its API representation
func ToCustomerResponse(customer *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            customer.ID,
		AccountNumber: customer.AccountNumber,
		Name:          customer.Name,
		Address:       customer.Address,
		Telephone:     customer.Telephone,
		Email:         customer.Email,
		UnitsConsumed: customer.UnitsConsumed,
		CreatedAt:     customer.CreatedAt,
		UpdatedAt:     customer.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}
