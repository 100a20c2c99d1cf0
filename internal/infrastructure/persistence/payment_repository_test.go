package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/souqmarket/backend/internal/domain/checkout"
	"github.com/souqmarket/backend/internal/domain/order"
	"github.com/souqmarket/backend/internal/domain/shared"
	"github.com/souqmarket/backend/internal/domain/shared/valueobject"
)

func TestGormPaymentRepository_FindByOrderID(t *testing.T) {
	t.Run("finds payment for order", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db)

		paymentID := uuid.New()
		orderID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "order_id", "method", "status", "amount", "transaction_id", "failure_reason"}).
			AddRow(paymentID, orderID, "MADA", "PENDING", decimal.NewFromInt(125), "", "")

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE order_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnRows(rows)

		payment, err := repo.FindByOrderID(context.Background(), orderID)

		assert.NoError(t, err)
		assert.Equal(t, paymentID, payment.ID)
		assert.Equal(t, order.PaymentStatusPending, payment.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for order without payment", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db)

		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE order_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		payment, err := repo.FindByOrderID(context.Background(), orderID)

		assert.Nil(t, payment)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_Save(t *testing.T) {
	t.Run("updates existing payment", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(db)

		payment, err := order.NewPayment(uuid.New(), checkout.PaymentMethodMada, valueobject.NewMoneySAR(decimal.NewFromInt(125)))
		assert.NoError(t, err)

		mock.ExpectExec(`UPDATE "payments" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), payment)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
