package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	billingapp "github.com/pahanaedu/backend/internal/application/billing"
	"github.com/pahanaedu/backend/internal/domain/billing"
	"github.com/pahanaedu/backend/internal/domain/catalog"
	"github.com/pahanaedu/backend/internal/domain/shared"
	"github.com/pahanaedu/backend/internal/domain/shared/valueobject"
	"github.com/pahanaedu/backend/internal/interfaces/http/dto"
)

type mockBillRepository struct {
	mock.Mock
}

func (m *mockBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *mockBillRepository) FindByNumber(ctx context.Context, billNumber string) (*billing.Bill, error) {
	args := m.Called(ctx, billNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *mockBillRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Bill, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *mockBillRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]billing.Bill, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *mockBillRepository) FindByStatus(ctx context.Context, status billing.BillStatus, filter shared.Filter) ([]billing.Bill, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *mockBillRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]billing.Bill, error) {
	args := m.Called(ctx, from, to, filter)
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *mockBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *mockBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockBillRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockItemRepository struct {
	mock.Mock
}

func (m *mockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *mockItemRepository) FindByCode(ctx context.Context, code string) (*catalog.Item, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *mockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *mockItemRepository) FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]catalog.Item, error) {
	args := m.Called(ctx, category, filter)
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *mockItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockItemRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func setupBillRouter(billRepo *mockBillRepository, itemRepo *mockItemRepository) *gin.Engine {
	router := gin.New()
	service := billingapp.NewBillService(billRepo, itemRepo)
	h := NewBillHandler(service)
	api := router.Group("/api/v1")
	h.RegisterRoutes(api)
	return router
}

func newTestItem(t *testing.T) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem("ITM000001", "Grade 10 Mathematics", valueobject.NewMoneyLKR(decimal.RequireFromString("1250.00")))
	require.NoError(t, err)
	return item
}

func newStoredBill(t *testing.T, item *catalog.Item) *billing.Bill {
	t.Helper()
	bill, err := billing.NewBill("BILL000001", uuid.New(),
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = bill.AddLine(item.ID, item.Code, item.Name,
		decimal.NewFromInt(2), valueobject.NewMoneyLKR(decimal.RequireFromString("1250.00")))
	require.NoError(t, err)
	return bill
}

type billEnvelope struct {
	Success bool                    `json:"success"`
	Data    billingapp.BillResponse `json:"data"`
	Error   *dto.ErrorInfo          `json:"error"`
}

func TestBillHandlerCreate(t *testing.T) {
	billRepo := new(mockBillRepository)
	itemRepo := new(mockItemRepository)
	router := setupBillRouter(billRepo, itemRepo)

	item := newTestItem(t)
	itemRepo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	billRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Bill")).Return(nil)

	body := fmt.Sprintf(`{
		"customer_id": %q,
		"bill_number": "BILL000007",
		"bill_date": "2026-03-10T00:00:00Z",
		"due_date": "2026-04-10T00:00:00Z",
		"items": [{"item_id": %q, "quantity": "2", "unit_price": "1250.00"}]
	}`, uuid.New(), item.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/bills", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp billEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "BILL000007", resp.Data.BillNumber)
	assert.Equal(t, 1, resp.Data.ItemCount)
	assert.True(t, resp.Data.Subtotal.Equal(decimal.RequireFromString("2500.00")))
	assert.True(t, resp.Data.TaxAmount.Equal(decimal.RequireFromString("250.00")))
	assert.True(t, resp.Data.TotalAmount.Equal(decimal.RequireFromString("2750.00")))

	billRepo.AssertExpectations(t)
	itemRepo.AssertExpectations(t)
}

func TestBillHandlerCreateGeneratesBillNumber(t *testing.T) {
	billRepo := new(mockBillRepository)
	itemRepo := new(mockItemRepository)
	router := setupBillRouter(billRepo, itemRepo)

	item := newTestItem(t)
	itemRepo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	billRepo.On("Count", mock.Anything).Return(int64(41), nil)
	billRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Bill")).Return(nil)

	body := fmt.Sprintf(`{
		"customer_id": %q,
		"bill_date": "2026-03-10T00:00:00Z",
		"due_date": "2026-04-10T00:00:00Z",
		"items": [{"item_id": %q, "quantity": "1", "unit_price": "1250.00"}]
	}`, uuid.New(), item.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/bills", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp billEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "BILL000042", resp.Data.BillNumber)
}

func TestBillHandlerCreateUnknownItem(t *testing.T) {
	billRepo := new(mockBillRepository)
	itemRepo := new(mockItemRepository)
	router := setupBillRouter(billRepo, itemRepo)

	missingItemID := uuid.New()
	itemRepo.On("FindByID", mock.Anything, missingItemID).Return(nil, shared.ErrNotFound)

	body := fmt.Sprintf(`{
		"customer_id": %q,
		"bill_number": "BILL000008",
		"bill_date": "2026-03-10T00:00:00Z",
		"due_date": "2026-04-10T00:00:00Z",
		"items": [{"item_id": %q, "quantity": "1", "unit_price": "500.00"}]
	}`, uuid.New(), missingItemID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/bills", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp billEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeReferenceNotFound, resp.Error.Code)

	billRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBillHandlerCreateValidationError(t *testing.T) {
	billRepo := new(mockBillRepository)
	itemRepo := new(mockItemRepository)
	router := setupBillRouter(billRepo, itemRepo)

	// Missing customer_id and items
	body := `{"bill_date": "2026-03-10T00:00:00Z", "due_date": "2026-04-10T00:00:00Z"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/bills", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBillHandlerCreateDuplicateNumber(t *testing.T) {
	billRepo := new(mockBillRepository)
	itemRepo := new(mockItemRepository)
	router := setupBillRouter(billRepo, itemRepo)

	item := newTestItem(t)
	itemRepo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	billRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Bill")).Return(shared.ErrAlreadyExists)

	body := fmt.Sprintf(`{
		"customer_id": %q,
		"bill_number": "BILL000001",
		"bill_date": "2026-03-10T00:00:00Z",
		"due_date": "2026-04-10T00:00:00Z",
		"items": [{"item_id": %q, "quantity": "1", "unit_price": "1250.00"}]
	}`, uuid.New(), item.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/bills", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp billEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeAlreadyExists, resp.Error.Code)
}

func TestBillHandlerGetByID(t *testing.T) {
	billRepo := new(mockBillRepository)
	itemRepo := new(mockItemRepository)
	router := setupBillRouter(billRepo, itemRepo)

	item := newTestItem(t)
	bill := newStoredBill(t, item)
	billRepo.On("FindByID", mock.Anything, bill.ID).Return(bill, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/bills/"+bill.ID.String(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp billEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "BILL000001", resp.Data.BillNumber)
	assert.Len(t, resp.Data.Items, 1)
}

func TestBillHandlerGetByIDNotFound(t *testing.T) {
	billRepo := new(mockBillRepository)
	itemRepo := new(mockItemRepository)
	router := setupBillRouter(billRepo, itemRepo)

	missingID := uuid.New()
	billRepo.On("FindByID", mock.Anything, missingID).Return(nil, shared.ErrNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/bills/"+missingID.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBillHandlerGetByIDInvalidUUID(t *testing.T) {
	billRepo := new(mockBillRepository)
	itemRepo := new(mockItemRepository)
	router := setupBillRouter(billRepo, itemRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/bills/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBillHandlerGetByNumber(t *testing.T) {
	billRepo := new(mockBillRepository)
	itemRepo := new(mockItemRepository)
	router := setupBillRouter(billRepo, itemRepo)

	item := newTestItem(t)
	bill := newStoredBill(t, item)
	billRepo.On("FindByNumber", mock.Anything, "BILL000001").Return(bill, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/bills/number/BILL000001", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp billEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, bill.ID, resp.Data.ID)
}

func TestBillHandlerUpdateRejectsEmptyLineSet(t *testing.T) {
	billRepo := new(mockBillRepository)
	itemRepo := new(mockItemRepository)
	router := setupBillRouter(billRepo, itemRepo)

	item := newTestItem(t)
	bill := newStoredBill(t, item)
	billRepo.On("FindByID", mock.Anything, bill.ID).Return(bill, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/v1/bills/"+bill.ID.String(), bytes.NewBufferString(`{"items": []}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	billRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBillHandlerUpdateReplacesLines(t *testing.T) {
	billRepo := new(mockBillRepository)
	itemRepo := new(mockItemRepository)
	router := setupBillRouter(billRepo, itemRepo)

	item := newTestItem(t)
	bill := newStoredBill(t, item)

	replacement, err := catalog.NewItem("ITM000002", "A4 Exercise Book", valueobject.NewMoneyLKR(decimal.RequireFromString("180.00")))
	require.NoError(t, err)

	billRepo.On("FindByID", mock.Anything, bill.ID).Return(bill, nil)
	itemRepo.On("FindByID", mock.Anything, replacement.ID).Return(replacement, nil)
	billRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Bill")).Return(nil)

	body := fmt.Sprintf(`{"items": [{"item_id": %q, "quantity": "3", "unit_price": "180.00"}]}`, replacement.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/v1/bills/"+bill.ID.String(), bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp billEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Items, 1)
	assert.Equal(t, "ITM000002", resp.Data.Items[0].ItemCode)
	assert.True(t, resp.Data.Subtotal.Equal(decimal.RequireFromString("540.00")))
	assert.True(t, resp.Data.TaxAmount.Equal(decimal.RequireFromString("54.00")))
	assert.True(t, resp.Data.TotalAmount.Equal(decimal.RequireFromString("594.00")))
}

func TestBillHandlerListByStatus(t *testing.T) {
	billRepo := new(mockBillRepository)
	itemRepo := new(mockItemRepository)
	router := setupBillRouter(billRepo, itemRepo)

	item := newTestItem(t)
	bill := newStoredBill(t, item)
	billRepo.On("FindByStatus", mock.Anything, billing.BillStatusPending, mock.Anything).
		Return([]billing.Bill{*bill}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/bills?status=PENDING", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                      `json:"success"`
		Data    []billingapp.BillResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "PENDING", resp.Data[0].Status)
}

func TestBillHandlerListInvalidStatus(t *testing.T) {
	billRepo := new(mockBillRepository)
	itemRepo := new(mockItemRepository)
	router := setupBillRouter(billRepo, itemRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/bills?status=SHIPPED", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBillHandlerDelete(t *testing.T) {
	billRepo := new(mockBillRepository)
	itemRepo := new(mockItemRepository)
	router := setupBillRouter(billRepo, itemRepo)

	billID := uuid.New()
	billRepo.On("Delete", mock.Anything, billID).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/v1/bills/"+billID.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	billRepo.AssertExpectations(t)
}

func TestBillHandlerDeleteNotFound(t *testing.T) {
	billRepo := new(mockBillRepository)
	itemRepo := new(mockItemRepository)
	router := setupBillRouter(billRepo, itemRepo)

	missingID := uuid.New()
	billRepo.On("Delete", mock.Anything, missingID).Return(shared.ErrNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/v1/bills/"+missingID.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
