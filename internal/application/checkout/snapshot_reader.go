package checkout

import (
	"context"

	"github.com/google/uuid"

	"github.com/souqmarket/backend/internal/domain/cart"
	"github.com/souqmarket/backend/internal/domain/catalog"
	domaincheckout "github.com/souqmarket/backend/internal/domain/checkout"
)

// SnapshotReader loads a customer's cart and freezes it for checkout.
// Availability is checked all-or-nothing: a single unavailable product
// fails the whole checkout, nothing is silently dropped.
type SnapshotReader struct {
	cartRepo cart.Repository
	products catalog.ProductReader
}

// NewSnapshotReader creates a new SnapshotReader
func NewSnapshotReader(cartRepo cart.Repository, products catalog.ProductReader) *SnapshotReader {
	return &SnapshotReader{
		cartRepo: cartRepo,
		products: products,
	}
}

// Read builds the checkout snapshot for the customer's current cart
func (r *SnapshotReader) Read(ctx context.Context, customerID uuid.UUID) (domaincheckout.Snapshot, error) {
	lines, err := r.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return domaincheckout.Snapshot{}, err
	}
	if len(lines) == 0 {
		return domaincheckout.Snapshot{}, domaincheckout.ErrEmptyCart
	}

	productIDs := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		productIDs[i] = line.ProductID
	}
	products, err := r.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return domaincheckout.Snapshot{}, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	snapshot := domaincheckout.Snapshot{
		CustomerID: customerID,
		Lines:      make([]domaincheckout.SnapshotLine, 0, len(lines)),
	}
	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			return domaincheckout.Snapshot{}, domaincheckout.NewProductUnavailableError(line.ProductID.String())
		}
		if !product.IsAvailable {
			return domaincheckout.Snapshot{}, domaincheckout.NewProductUnavailableError(product.Name)
		}
		snapshot.Lines = append(snapshot.Lines, domaincheckout.SnapshotLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			VendorID:    product.VendorID,
			MarketID:    product.MarketID,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
		})
	}

	return snapshot, nil
}
