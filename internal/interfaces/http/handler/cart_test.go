package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	cartapp "github.com/souqmarket/backend/internal/application/cart"
	domaincheckout "github.com/souqmarket/backend/internal/domain/checkout"
	"github.com/souqmarket/backend/internal/domain/shared"
)

func TestCartHandler(t *testing.T) {
	customer := newIdentity(t, shared.RoleCustomer, uuid.Nil)

	t.Run("get returns the priced cart", func(t *testing.T) {
		svc := &stubCartService{
			getFn: func(_ context.Context, customerID uuid.UUID) (*cartapp.Response, error) {
				assert.Equal(t, customer.UserID, customerID)
				return &cartapp.Response{
					Items: []cartapp.ItemResponse{
						{
							ProductName: "Dates 1kg",
							Quantity:    2,
							UnitPrice:   decimal.RequireFromString("24.50"),
							LineTotal:   decimal.RequireFromString("49.00"),
							IsAvailable: true,
						},
					},
					Subtotal: decimal.RequireFromString("49.00"),
				}, nil
			},
		}
		r := newAPIEngine(NewCartHandler(svc))

		w := doRequest(r, http.MethodGet, "/api/v1/cart", customer.Token, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Dates 1kg")
		assert.Contains(t, w.Body.String(), "49")
	})

	t.Run("upsert returns 204", func(t *testing.T) {
		productID := uuid.New()
		svc := &stubCartService{
			upsertFn: func(_ context.Context, _ uuid.UUID, input cartapp.UpsertItemInput) error {
				assert.Equal(t, productID, input.ProductID)
				assert.Equal(t, 3, input.Quantity)
				return nil
			},
		}
		r := newAPIEngine(NewCartHandler(svc))

		body := `{"product_id":"` + productID.String() + `","quantity":3}`
		w := doRequest(r, http.MethodPut, "/api/v1/cart/items", customer.Token, body)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("upsert with zero quantity is rejected", func(t *testing.T) {
		svc := &stubCartService{
			upsertFn: func(_ context.Context, _ uuid.UUID, _ cartapp.UpsertItemInput) error {
				t.Fatal("service must not be called")
				return nil
			},
		}
		r := newAPIEngine(NewCartHandler(svc))

		body := `{"product_id":"` + uuid.New().String() + `","quantity":0}`
		w := doRequest(r, http.MethodPut, "/api/v1/cart/items", customer.Token, body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("upsert of an unavailable product maps to 422", func(t *testing.T) {
		svc := &stubCartService{
			upsertFn: func(_ context.Context, _ uuid.UUID, _ cartapp.UpsertItemInput) error {
				return domaincheckout.NewProductUnavailableError("Laban 2L")
			},
		}
		r := newAPIEngine(NewCartHandler(svc))

		body := `{"product_id":"` + uuid.New().String() + `","quantity":1}`
		w := doRequest(r, http.MethodPut, "/api/v1/cart/items", customer.Token, body)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_PRODUCT_UNAVAILABLE")
	})

	t.Run("remove with malformed product id returns 400", func(t *testing.T) {
		svc := &stubCartService{
			removeFn: func(_ context.Context, _, _ uuid.UUID) error { return nil },
		}
		r := newAPIEngine(NewCartHandler(svc))

		w := doRequest(r, http.MethodDelete, "/api/v1/cart/items/not-a-uuid", customer.Token, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("remove of a missing line maps to 404", func(t *testing.T) {
		svc := &stubCartService{
			removeFn: func(_ context.Context, _, _ uuid.UUID) error { return shared.ErrNotFound },
		}
		r := newAPIEngine(NewCartHandler(svc))

		w := doRequest(r, http.MethodDelete, "/api/v1/cart/items/"+uuid.New().String(), customer.Token, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("clear returns 204", func(t *testing.T) {
		svc := &stubCartService{
			clearFn: func(_ context.Context, _ uuid.UUID) error { return nil },
		}
		r := newAPIEngine(NewCartHandler(svc))

		w := doRequest(r, http.MethodDelete, "/api/v1/cart", customer.Token, "")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
