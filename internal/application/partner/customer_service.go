package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/pahanaedu/backend/internal/domain/partner"
	"github.com/pahanaedu/backend/internal/domain/shared"
)

// CustomerService handles customer account operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Create creates a new customer account. The account number is generated
// from the current customer count when the request does not carry one.
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	accountNumber := req.AccountNumber
	if accountNumber == "" {
		count, err := s.customerRepo.Count(ctx)
		if err != nil {
			return nil, err
		}
		accountNumber = partner.NextAccountNumber(count)
	}

	customer, err := partner.NewCustomer(accountNumber, req.Name, req.Address, req.Telephone)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		if err := customer.SetEmail(req.Email); err != nil {
			return nil, err
		}
	}
	if req.UnitsConsumed != nil {
		if err := customer.SetUnitsConsumed(*req.UnitsConsumed); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Update applies a partial update to a customer
func (s *CustomerService) Update(ctx context.Context, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	name := customer.Name
	address := customer.Address
	telephone := customer.Telephone
	if req.Name != nil {
		name = *req.Name
	}
	if req.Address != nil {
		address = *req.Address
	}
	if req.Telephone != nil {
		telephone = *req.Telephone
	}
	if err := customer.UpdateContact(name, address, telephone); err != nil {
		return nil, err
	}

	if req.Email != nil {
		if err := customer.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.UnitsConsumed != nil {
		if err := customer.SetUnitsConsumed(*req.UnitsConsumed); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByAccountNumber retrieves a customer by account number
func (s *CustomerService) GetByAccountNumber(ctx context.Context, accountNumber string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers with filtering
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) ([]CustomerResponse, error) {
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

	customers, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToCustomerResponses(customers), nil
}

// Delete removes a customer account
func (s *CustomerService) Delete(ctx context.Context, customerID uuid.UUID) error {
	return s.customerRepo.Delete(ctx, customerID)
}
