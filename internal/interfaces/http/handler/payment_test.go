package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	paymentapp "github.com/souqmarket/backend/internal/application/payment"
	"github.com/souqmarket/backend/internal/domain/order"
	"github.com/souqmarket/backend/internal/domain/shared"
)

func TestPaymentHandler_Process(t *testing.T) {
	admin := newIdentity(t, shared.RoleAdmin, uuid.Nil)

	t.Run("successful reconciliation advances the order", func(t *testing.T) {
		orderID := uuid.New()
		svc := &stubReconciler{
			processFn: func(_ context.Context, input paymentapp.ProcessPaymentInput) (*paymentapp.ProcessPaymentResult, error) {
				assert.Equal(t, orderID, input.OrderID)
				assert.True(t, input.Success)
				assert.Equal(t, "txn-99", input.TransactionID)
				return &paymentapp.ProcessPaymentResult{
					OrderID:       orderID,
					OrderStatus:   order.StatusProcessing,
					PaymentStatus: order.PaymentStatusSucceeded,
					TransactionID: "txn-99",
				}, nil
			},
		}
		r := newAPIEngine(NewPaymentHandler(svc))

		body := `{"order_id":"` + orderID.String() + `","success":true,"transaction_id":"txn-99"}`
		w := doRequest(r, http.MethodPost, "/api/v1/payments/process", admin.Token, body)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.Contains(t, w.Body.String(), "SUCCEEDED")
	})

	t.Run("unknown order maps to 404", func(t *testing.T) {
		svc := &stubReconciler{
			processFn: func(_ context.Context, _ paymentapp.ProcessPaymentInput) (*paymentapp.ProcessPaymentResult, error) {
				return nil, shared.ErrNotFound
			},
		}
		r := newAPIEngine(NewPaymentHandler(svc))

		body := `{"order_id":"` + uuid.New().String() + `","success":true}`
		w := doRequest(r, http.MethodPost, "/api/v1/payments/process", admin.Token, body)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("settled payment maps to 422", func(t *testing.T) {
		svc := &stubReconciler{
			processFn: func(_ context.Context, _ paymentapp.ProcessPaymentInput) (*paymentapp.ProcessPaymentResult, error) {
				return nil, shared.NewDomainError("INVALID_TRANSITION", "Payment is already settled")
			},
		}
		r := newAPIEngine(NewPaymentHandler(svc))

		body := `{"order_id":"` + uuid.New().String() + `","success":false,"failure_reason":"card declined"}`
		w := doRequest(r, http.MethodPost, "/api/v1/payments/process", admin.Token, body)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("missing order id is rejected", func(t *testing.T) {
		svc := &stubReconciler{
			processFn: func(_ context.Context, _ paymentapp.ProcessPaymentInput) (*paymentapp.ProcessPaymentResult, error) {
				t.Fatal("service must not be called")
				return nil, nil
			},
		}
		r := newAPIEngine(NewPaymentHandler(svc))

		w := doRequest(r, http.MethodPost, "/api/v1/payments/process", admin.Token, `{"success":true}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
