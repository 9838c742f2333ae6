package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	return gdb, mock
}

func sampleOrder() model.Order {
	now := time.Now()
	return model.Order{
		UserID:      10,
		FullName:    "山田 太郎",
		Address:     "1-2-3 Chuo",
		City:        "Osaka",
		PostalCode:  "530-0001",
		Status:      model.OrderStatusPending,
		TotalAmount: decimal.RequireFromString("25.00"),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func sampleItems() []model.OrderItem {
	return []model.OrderItem{
		{ProductID: 1, ProductNameSnapshot: "Product A", PriceSnapshot: decimal.RequireFromString("10.00"), Quantity: 2},
		{ProductID: 2, ProductNameSnapshot: "Product B", PriceSnapshot: decimal.RequireFromString("5.00"), Quantity: 1},
	}
}

func TestWithinTx_CommitsWhenAllWritesSucceed(t *testing.T) {
	gdb, mock := newMockDB(t)
	tm := NewTxManagerGorm(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "order_items"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)))
	mock.ExpectCommit()

	err := tm.WithinTx(context.Background(), func(r repo.TxRepos) error {
		orderID, err := r.Orders().Create(context.Background(), sampleOrder())
		if err != nil {
			return err
		}
		assert.Equal(t, int64(42), orderID)
		return r.OrderItems().CreateBulk(context.Background(), orderID, sampleItems())
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 明細の書き込みで失敗したら、既に書いた注文ヘッダごとrollbackされる
func TestWithinTx_RollsBackWhenItemInsertFails(t *testing.T) {
	gdb, mock := newMockDB(t)
	tm := NewTxManagerGorm(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "orders"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "order_items"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := tm.WithinTx(context.Background(), func(r repo.TxRepos) error {
		orderID, err := r.Orders().Create(context.Background(), sampleOrder())
		if err != nil {
			return err
		}
		return r.OrderItems().CreateBulk(context.Background(), orderID, sampleItems())
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollsBackWhenFnFails(t *testing.T) {
	gdb, mock := newMockDB(t)
	tm := NewTxManagerGorm(gdb)

	mock.ExpectBegin()
	mock.ExpectRollback()

	wantErr := errors.New("business rule failed")
	err := tm.WithinTx(context.Background(), func(r repo.TxRepos) error {
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
