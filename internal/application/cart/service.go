package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/souqmarket/backend/internal/domain/cart"
	"github.com/souqmarket/backend/internal/domain/catalog"
	"github.com/souqmarket/backend/internal/domain/checkout"
	"github.com/souqmarket/backend/internal/domain/shared"
)

// UpsertItemInput represents a cart item request body
type UpsertItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// ItemResponse represents one cart line with current product data
type ItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	MarketID    uuid.UUID       `json:"market_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	IsAvailable bool            `json:"is_available"`
}

// Response represents the customer's cart
type Response struct {
	Items    []ItemResponse  `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Service manages the customer's cart lines up until checkout.
type Service struct {
	cartRepo cart.Repository
	products catalog.ProductReader
}

// NewService creates a new cart Service
func NewService(cartRepo cart.Repository, products catalog.ProductReader) *Service {
	return &Service{
		cartRepo: cartRepo,
		products: products,
	}
}

// Get returns the customer's cart with current product prices
func (s *Service) Get(ctx context.Context, customerID uuid.UUID) (*Response, error) {
	lines, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	resp := &Response{Items: make([]ItemResponse, 0, len(lines)), Subtotal: decimal.Zero}
	if len(lines) == 0 {
		return resp, nil
	}

	ids := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			// Product removed from the catalog; surface the line as
			// unavailable so the client can drop it.
			resp.Items = append(resp.Items, ItemResponse{
				ProductID:   line.ProductID,
				Quantity:    line.Quantity,
				UnitPrice:   decimal.Zero,
				LineTotal:   decimal.Zero,
				IsAvailable: false,
			})
			continue
		}
		lineTotal := product.Price.Amount().Mul(decimal.NewFromInt(int64(line.Quantity)))
		resp.Items = append(resp.Items, ItemResponse{
			ProductID:   product.ID,
			ProductName: product.Name,
			MarketID:    product.MarketID,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price.Amount(),
			LineTotal:   lineTotal,
			IsAvailable: product.IsAvailable,
		})
		if product.IsAvailable {
			resp.Subtotal = resp.Subtotal.Add(lineTotal)
		}
	}

	return resp, nil
}

// UpsertItem adds a product to the cart or replaces the quantity of an
// existing line. The read-then-create race is closed by the unique
// (customer, product) constraint; a conflicting insert surfaces as
// ErrAlreadyExists and is retried as an update.
func (s *Service) UpsertItem(ctx context.Context, customerID uuid.UUID, input UpsertItemInput) error {
	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return err
	}
	if !product.IsAvailable {
		return checkout.NewProductUnavailableError(product.Name)
	}

	existing, err := s.cartRepo.FindByCustomerAndProduct(ctx, customerID, input.ProductID)
	switch {
	case err == nil:
		if err := existing.ChangeQuantity(input.Quantity); err != nil {
			return err
		}
		return s.cartRepo.Save(ctx, existing)
	case errors.Is(err, shared.ErrNotFound):
		line, err := cart.NewCartLine(customerID, input.ProductID, input.Quantity)
		if err != nil {
			return err
		}
		if err := s.cartRepo.Save(ctx, line); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				return s.updateExisting(ctx, customerID, input)
			}
			return err
		}
		return nil
	default:
		return err
	}
}

func (s *Service) updateExisting(ctx context.Context, customerID uuid.UUID, input UpsertItemInput) error {
	existing, err := s.cartRepo.FindByCustomerAndProduct(ctx, customerID, input.ProductID)
	if err != nil {
		return err
	}
	if err := existing.ChangeQuantity(input.Quantity); err != nil {
		return err
	}
	return s.cartRepo.Save(ctx, existing)
}

// RemoveItem deletes one line from the cart
func (s *Service) RemoveItem(ctx context.Context, customerID, productID uuid.UUID) error {
	return s.cartRepo.Delete(ctx, customerID, productID)
}

// Clear empties the customer's cart
func (s *Service) Clear(ctx context.Context, customerID uuid.UUID) error {
	return s.cartRepo.Clear(ctx, customerID)
}
