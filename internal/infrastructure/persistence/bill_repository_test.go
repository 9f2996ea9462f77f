package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pahanaedu/backend/internal/domain/billing"
	"github.com/pahanaedu/backend/internal/domain/shared"
	"github.com/pahanaedu/backend/internal/domain/shared/valueobject"
	"github.com/pahanaedu/backend/internal/infrastructure/persistence/models"
)

func setupBillTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.BillModel{}, &models.BillLineItemModel{})
	require.NoError(t, err)

	return db
}

func newTestBill(t *testing.T, billNumber string, customerID uuid.UUID) *billing.Bill {
	billDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	dueDate := billDate.AddDate(0, 1, 0)

	bill, err := billing.NewBill(billNumber, customerID, billDate, dueDate)
	require.NoError(t, err)

	_, err = bill.AddLine(uuid.New(), "ITM000001", "Grade 10 Mathematics",
		decimal.NewFromInt(2), valueobject.NewMoneyLKR(decimal.RequireFromString("1250.00")))
	require.NoError(t, err)

	return bill
}

func TestGormBillRepository_SaveAndFindByID(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewGormBillRepository(db)
	ctx := context.Background()

	t.Run("saves bill with lines and loads it back", func(t *testing.T) {
		bill := newTestBill(t, "BILL000001", uuid.New())

		err := repo.Save(ctx, bill)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, bill.ID)
		require.NoError(t, err)
		assert.Equal(t, bill.ID, found.ID)
		assert.Equal(t, "BILL000001", found.BillNumber)
		assert.Equal(t, billing.BillStatusPending, found.Status)
		require.Len(t, found.Lines, 1)
		assert.Equal(t, "ITM000001", found.Lines[0].ItemCode)
		assert.True(t, found.Subtotal.Equal(decimal.RequireFromString("2500.00")))
		assert.True(t, found.TaxAmount.Equal(decimal.RequireFromString("250.00")))
		assert.True(t, found.TotalAmount.Equal(decimal.RequireFromString("2750.00")))
	})

	t.Run("returns not found for unknown bill", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())

		assert.Nil(t, found)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormBillRepository_SaveRejectsDuplicateNumber(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewGormBillRepository(db)
	ctx := context.Background()

	first := newTestBill(t, "BILL000001", uuid.New())
	require.NoError(t, repo.Save(ctx, first))

	second := newTestBill(t, "BILL000001", uuid.New())
	err := repo.Save(ctx, second)

	assert.Error(t, err)
	assert.Equal(t, shared.ErrAlreadyExists, err)
}

func TestGormBillRepository_SaveReplacesLines(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewGormBillRepository(db)
	ctx := context.Background()

	bill := newTestBill(t, "BILL000001", uuid.New())
	require.NoError(t, repo.Save(ctx, bill))

	// Replace the single line with two new ones
	bill.ClearLines()
	_, err := bill.AddLine(uuid.New(), "ITM000002", "Grade 11 Science",
		decimal.NewFromInt(1), valueobject.NewMoneyLKR(decimal.RequireFromString("1480.00")))
	require.NoError(t, err)
	_, err = bill.AddLine(uuid.New(), "ITM000003", "Exercise Book",
		decimal.NewFromInt(10), valueobject.NewMoneyLKR(decimal.RequireFromString("120.00")))
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, bill))

	found, err := repo.FindByID(ctx, bill.ID)
	require.NoError(t, err)
	require.Len(t, found.Lines, 2)
	assert.True(t, found.Subtotal.Equal(decimal.RequireFromString("2680.00")))

	// Old line rows are gone, not orphaned
	var lineCount int64
	require.NoError(t, db.Model(&models.BillLineItemModel{}).Count(&lineCount).Error)
	assert.Equal(t, int64(2), lineCount)
}

func TestGormBillRepository_FindByNumber(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewGormBillRepository(db)
	ctx := context.Background()

	bill := newTestBill(t, "BILL000042", uuid.New())
	require.NoError(t, repo.Save(ctx, bill))

	t.Run("finds existing bill", func(t *testing.T) {
		found, err := repo.FindByNumber(ctx, "BILL000042")

		require.NoError(t, err)
		assert.Equal(t, bill.ID, found.ID)
		require.Len(t, found.Lines, 1)
	})

	t.Run("returns not found for unknown number", func(t *testing.T) {
		found, err := repo.FindByNumber(ctx, "BILL999999")

		assert.Nil(t, found)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormBillRepository_FindByCustomer(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewGormBillRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	require.NoError(t, repo.Save(ctx, newTestBill(t, "BILL000001", customerID)))
	require.NoError(t, repo.Save(ctx, newTestBill(t, "BILL000002", customerID)))
	require.NoError(t, repo.Save(ctx, newTestBill(t, "BILL000003", uuid.New())))

	bills, err := repo.FindByCustomer(ctx, customerID, shared.DefaultFilter())

	require.NoError(t, err)
	assert.Len(t, bills, 2)
	for _, b := range bills {
		assert.Equal(t, customerID, b.CustomerID)
	}
}

func TestGormBillRepository_FindByStatus(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewGormBillRepository(db)
	ctx := context.Background()

	paid := newTestBill(t, "BILL000001", uuid.New())
	require.NoError(t, paid.ChangeStatus(billing.BillStatusPaid))
	require.NoError(t, repo.Save(ctx, paid))
	require.NoError(t, repo.Save(ctx, newTestBill(t, "BILL000002", uuid.New())))

	bills, err := repo.FindByStatus(ctx, billing.BillStatusPaid, shared.DefaultFilter())

	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, "BILL000001", bills[0].BillNumber)
}

func TestGormBillRepository_FindByDateRange(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewGormBillRepository(db)
	ctx := context.Background()

	makeBillOn := func(number string, billDate time.Time) *billing.Bill {
		bill, err := billing.NewBill(number, uuid.New(), billDate, billDate.AddDate(0, 1, 0))
		require.NoError(t, err)
		_, err = bill.AddLine(uuid.New(), "ITM000001", "Grade 10 Mathematics",
			decimal.NewFromInt(1), valueobject.NewMoneyLKR(decimal.RequireFromString("1250.00")))
		require.NoError(t, err)
		return bill
	}

	require.NoError(t, repo.Save(ctx, makeBillOn("BILL000001", time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, repo.Save(ctx, makeBillOn("BILL000002", time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, repo.Save(ctx, makeBillOn("BILL000003", time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))))

	t.Run("finds bills within range", func(t *testing.T) {
		from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)

		bills, err := repo.FindByDateRange(ctx, from, to, shared.DefaultFilter())

		require.NoError(t, err)
		require.Len(t, bills, 1)
		assert.Equal(t, "BILL000002", bills[0].BillNumber)
	})

	t.Run("open-ended range with zero from", func(t *testing.T) {
		to := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)

		bills, err := repo.FindByDateRange(ctx, time.Time{}, to, shared.DefaultFilter())

		require.NoError(t, err)
		assert.Len(t, bills, 2)
	})
}

func TestGormBillRepository_Delete(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewGormBillRepository(db)
	ctx := context.Background()

	t.Run("deletes bill and its lines", func(t *testing.T) {
		bill := newTestBill(t, "BILL000001", uuid.New())
		require.NoError(t, repo.Save(ctx, bill))

		err := repo.Delete(ctx, bill.ID)
		require.NoError(t, err)

		_, err = repo.FindByID(ctx, bill.ID)
		assert.Equal(t, shared.ErrNotFound, err)

		var lineCount int64
		require.NoError(t, db.Model(&models.BillLineItemModel{}).Where("bill_id = ?", bill.ID).Count(&lineCount).Error)
		assert.Equal(t, int64(0), lineCount)
	})

	t.Run("returns not found for unknown bill", func(t *testing.T) {
		err := repo.Delete(ctx, uuid.New())

		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormBillRepository_Count(t *testing.T) {
	db := setupBillTestDB(t)
	repo := NewGormBillRepository(db)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, repo.Save(ctx, newTestBill(t, "BILL000001", uuid.New())))
	require.NoError(t, repo.Save(ctx, newTestBill(t, "BILL000002", uuid.New())))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
