package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	checkoutapp "github.com/souqmarket/backend/internal/application/checkout"
	domaincheckout "github.com/souqmarket/backend/internal/domain/checkout"
	"github.com/souqmarket/backend/internal/domain/shared"
)

func TestCheckoutHandler(t *testing.T) {
	customer := newIdentity(t, shared.RoleCustomer, uuid.Nil)

	validBody := `{"payment_method":"MADA","contact_phone":"0512345678","delivery_fee":"10","tax_rate":"0.15"}`

	t.Run("successful checkout returns 201 with per-order results", func(t *testing.T) {
		var gotCustomer uuid.UUID
		svc := &stubCheckoutService{
			checkoutFn: func(_ context.Context, customerID uuid.UUID, input checkoutapp.CheckoutInput) (*checkoutapp.CheckoutResponse, error) {
				gotCustomer = customerID
				return &checkoutapp.CheckoutResponse{
					Orders: []checkoutapp.CheckoutOrderResult{
						{
							Order: checkoutapp.OrderResponse{OrderNumber: "SM-20260901-0042", Status: "NEW"},
							Payment: checkoutapp.PaymentResultResponse{
								Status:        "SUCCEEDED",
								TransactionID: "txn-1",
							},
						},
					},
				}, nil
			},
		}
		r := newAPIEngine(NewCheckoutHandler(svc))

		w := doRequest(r, http.MethodPost, "/api/v1/checkout", customer.Token, validBody)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, customer.UserID, gotCustomer)
		assert.Contains(t, w.Body.String(), "SM-20260901-0042")
		assert.Contains(t, w.Body.String(), "txn-1")
	})

	t.Run("empty cart maps to 422", func(t *testing.T) {
		svc := &stubCheckoutService{
			checkoutFn: func(_ context.Context, _ uuid.UUID, _ checkoutapp.CheckoutInput) (*checkoutapp.CheckoutResponse, error) {
				return nil, domaincheckout.ErrEmptyCart
			},
		}
		r := newAPIEngine(NewCheckoutHandler(svc))

		w := doRequest(r, http.MethodPost, "/api/v1/checkout", customer.Token, validBody)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_EMPTY_CART")
	})

	t.Run("unavailable product maps to 422", func(t *testing.T) {
		svc := &stubCheckoutService{
			checkoutFn: func(_ context.Context, _ uuid.UUID, _ checkoutapp.CheckoutInput) (*checkoutapp.CheckoutResponse, error) {
				return nil, domaincheckout.NewProductUnavailableError("Dates 1kg")
			},
		}
		r := newAPIEngine(NewCheckoutHandler(svc))

		w := doRequest(r, http.MethodPost, "/api/v1/checkout", customer.Token, validBody)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_PRODUCT_UNAVAILABLE")
		assert.Contains(t, w.Body.String(), "Dates 1kg")
	})

	t.Run("invalid phone is rejected before the service runs", func(t *testing.T) {
		called := false
		svc := &stubCheckoutService{
			checkoutFn: func(_ context.Context, _ uuid.UUID, _ checkoutapp.CheckoutInput) (*checkoutapp.CheckoutResponse, error) {
				called = true
				return nil, nil
			},
		}
		r := newAPIEngine(NewCheckoutHandler(svc))

		body := `{"payment_method":"MADA","contact_phone":"12345"}`
		w := doRequest(r, http.MethodPost, "/api/v1/checkout", customer.Token, body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, called)
		assert.Contains(t, w.Body.String(), "contact_phone")
	})

	t.Run("missing token returns 401", func(t *testing.T) {
		svc := &stubCheckoutService{
			checkoutFn: func(_ context.Context, _ uuid.UUID, _ checkoutapp.CheckoutInput) (*checkoutapp.CheckoutResponse, error) {
				return nil, nil
			},
		}
		r := newAPIEngine(NewCheckoutHandler(svc))

		w := doRequest(r, http.MethodPost, "/api/v1/checkout", "", validBody)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
