package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ecocraftid/ecocraft-backend/pkg/db/models"
	"github.com/ecocraftid/ecocraft-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ordersTable := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  client_id TEXT NOT NULL,
  display_number TEXT NOT NULL,
  shipping_method TEXT NOT NULL,
  payment_method TEXT NOT NULL,
  subtotal INTEGER NOT NULL DEFAULT 0,
  shipping_cost INTEGER NOT NULL DEFAULT 0,
  tax INTEGER NOT NULL DEFAULT 0,
  total INTEGER NOT NULL DEFAULT 0,
  placed_at DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderLines := `
CREATE TABLE IF NOT EXISTS order_lines (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  unit_price INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  image TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(ordersTable).Error)
	require.NoError(t, db.Exec(orderLines).Error)
	return db
}

func newOrder(clientID, displayNumber string, placedAt time.Time) *models.Order {
	return &models.Order{
		ClientID:       clientID,
		DisplayNumber:  displayNumber,
		ShippingMethod: enums.ShippingMethodStandard,
		PaymentMethod:  enums.PaymentMethodCreditCard,
		Subtotal:       699970,
		ShippingCost:   59990,
		Tax:            76997,
		Total:          836957,
		PlacedAt:       placedAt,
		Lines: []models.OrderLine{
			{ProductID: "ec-001", Name: "Set Keranjang Serat Kelapa", UnitPrice: 299990, Quantity: 2},
			{ProductID: "ec-007", Name: "Gelas Batok Kelapa", UnitPrice: 99990, Quantity: 1},
		},
	}
}

func TestCreateAssignsIDsAndLinks(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, newOrder("c1", "AC-123456", time.Now().UTC()))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	require.Len(t, created.Lines, 2)
	for _, line := range created.Lines {
		assert.NotEqual(t, uuid.Nil, line.ID)
		assert.Equal(t, created.ID, line.OrderID)
	}
}

func TestFindByIDPreloadsLines(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, newOrder("c1", "AC-123456", time.Now().UTC()))
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "AC-123456", found.DisplayNumber)
	assert.Equal(t, int64(836957), found.Total)
	require.Len(t, found.Lines, 2)
	assert.Equal(t, "ec-001", found.Lines[0].ProductID)
}

func TestWithTxRollsBackOrderAndLines(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := repo.WithTx(tx).Create(ctx, newOrder("c1", "AC-123456", time.Now().UTC())); err != nil {
			return err
		}
		return gorm.ErrInvalidTransaction
	})
	require.Error(t, err)

	var orderCount, lineCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderLine{}).Count(&lineCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, lineCount)
}

func TestFindByIDMissing(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindByClientOrdersNewestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	older := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, newOrder("c1", "AC-000001", older))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newOrder("c1", "AC-000002", newer))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newOrder("other", "AC-000003", newer))
	require.NoError(t, err)

	found, err := repo.FindByClient(ctx, "c1")
	require.NoError(t, err)

	require.Len(t, found, 2)
	assert.Equal(t, "AC-000002", found[0].DisplayNumber)
	assert.Equal(t, "AC-000001", found[1].DisplayNumber)
}
