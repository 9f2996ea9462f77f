package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pahanaedu/backend/internal/domain/partner"
	"github.com/pahanaedu/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*partner.Customer, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func testCustomer(t *testing.T) *partner.Customer {
	customer, err := partner.NewCustomer("ACC000001", "Nimal Perera", "12 Galle Road, Colombo", "0771234567")
	require.NoError(t, err)
	return customer
}

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("generates account number from count", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		repo.On("Count", ctx).Return(int64(3), nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := service.Create(ctx, CreateCustomerRequest{
			Name:      "Nimal Perera",
			Address:   "12 Galle Road, Colombo",
			Telephone: "0771234567",
			Email:     "nimal@example.com",
		})
		require.NoError(t, err)

		assert.Equal(t, "ACC000004", resp.AccountNumber)
		assert.Equal(t, "nimal@example.com", resp.Email)
		repo.AssertExpectations(t)
	})

	t.Run("uses provided account number without counting", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		units := decimal.RequireFromString("42.5")
		resp, err := service.Create(ctx, CreateCustomerRequest{
			AccountNumber: "acc009999",
			Name:          "Kamala Silva",
			Address:       "7 Temple Lane, Kandy",
			Telephone:     "0812345678",
			UnitsConsumed: &units,
		})
		require.NoError(t, err)

		assert.Equal(t, "ACC009999", resp.AccountNumber)
		assert.Equal(t, "42.5", resp.UnitsConsumed.String())
		repo.AssertNotCalled(t, "Count", mock.Anything)
	})

	t.Run("propagates duplicate account number from store", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(shared.ErrAlreadyExists)

		_, err := service.Create(ctx, CreateCustomerRequest{
			AccountNumber: "ACC000001",
			Name:          "Nimal Perera",
			Address:       "12 Galle Road",
			Telephone:     "0771234567",
		})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("applies partial update", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		customer := testCustomer(t)
		repo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		telephone := "0719876543"
		resp, err := service.Update(ctx, customer.ID, UpdateCustomerRequest{Telephone: &telephone})
		require.NoError(t, err)

		assert.Equal(t, "0719876543", resp.Telephone)
		assert.Equal(t, "Nimal Perera", resp.Name)
	})

	t.Run("returns not found for unknown customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		customerID := uuid.New()
		repo.On("FindByID", ctx, customerID).Return(nil, shared.ErrNotFound)

		_, err := service.Update(ctx, customerID, UpdateCustomerRequest{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCustomerService_Lookups(t *testing.T) {
	ctx := context.Background()

	t.Run("GetByAccountNumber", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		customer := testCustomer(t)
		repo.On("FindByAccountNumber", ctx, "ACC000001").Return(customer, nil)

		resp, err := service.GetByAccountNumber(ctx, "ACC000001")
		require.NoError(t, err)
		assert.Equal(t, customer.ID, resp.ID)
	})

	t.Run("Delete propagates not found", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		customerID := uuid.New()
		repo.On("Delete", ctx, customerID).Return(shared.ErrNotFound)

		err := service.Delete(ctx, customerID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
