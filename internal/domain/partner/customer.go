package partner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pahanaedu/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Customer represents a billing account holder
type Customer struct {
	shared.BaseEntity
	AccountNumber string // Unique account number, e.g. ACC000001
	Name          string
	Address       string
	Telephone     string
	Email         string
	UnitsConsumed decimal.Decimal
}

// NewCustomer creates a new customer account
func NewCustomer(accountNumber, name, address, telephone string) (*Customer, error) {
	if err := validateAccountNumber(accountNumber); err != nil {
		return nil, err
	}
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if address == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address cannot be empty")
	}
	if telephone == "" {
		return nil, shared.NewDomainError("INVALID_TELEPHONE", "Telephone cannot be empty")
	}

	return &Customer{
		BaseEntity:    shared.NewBaseEntity(),
		AccountNumber: strings.ToUpper(accountNumber),
		Name:          name,
		Address:       address,
		Telephone:     telephone,
		UnitsConsumed: decimal.Zero,
	}, nil
}

// UpdateContact updates the customer's name and contact details
func (c *Customer) UpdateContact(name, address, telephone string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}
	if address == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot be empty")
	}
	if telephone == "" {
		return shared.NewDomainError("INVALID_TELEPHONE", "Telephone cannot be empty")
	}

	c.Name = name
	c.Address = address
	c.Telephone = telephone
	c.Touch()

	return nil
}

// SetEmail sets the optional email address
func (c *Customer) SetEmail(email string) error {
	if email != "" && !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email address")
	}

	c.Email = email
	c.Touch()

	return nil
}

// SetUnitsConsumed records the customer's consumed units
func (c *Customer) SetUnitsConsumed(units decimal.Decimal) error {
	if units.IsNegative() {
		return shared.NewDomainError("INVALID_UNITS", "Units consumed cannot be negative")
	}

	c.UnitsConsumed = units
	c.Touch()

	return nil
}

func validateAccountNumber(accountNumber string) error {
	if accountNumber == "" {
		return shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Account number cannot be empty")
	}
	if len(accountNumber) > 50 {
		return shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Account number cannot exceed 50 characters")
	}
	return nil
}

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

// NextAccountNumber formats a sequential account number from the number of
// customers already stored, e.g. count 0 yields ACC000001.
func NextAccountNumber(count int64) string {
	return fmt.Sprintf("ACC%06d", count+1)
}
