package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/souqmarket/backend/internal/domain/cart"
	"github.com/souqmarket/backend/internal/domain/shared"
)

// GormCartRepository implements cart.Repository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByCustomer returns all cart lines for a customer, oldest first
func (r *GormCartRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*cart.CartLine, error) {
	var lines []*cart.CartLine
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// FindByCustomerAndProduct finds the single line for a (customer, product) pair
func (r *GormCartRepository) FindByCustomerAndProduct(ctx context.Context, customerID, productID uuid.UUID) (*cart.CartLine, error) {
	var line cart.CartLine
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

// Save creates or updates a cart line. A concurrent insert for the same
// (customer, product) pair surfaces as shared.ErrAlreadyExists so the
// caller can retry as an update.
func (r *GormCartRepository) Save(ctx context.Context, line *cart.CartLine) error {
	if err := r.db.WithContext(ctx).Save(line).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes the line for a (customer, product) pair
func (r *GormCartRepository) Delete(ctx context.Context, customerID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Delete(&cart.CartLine{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Clear removes every line in a customer's cart
func (r *GormCartRepository) Clear(ctx context.Context, customerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&cart.CartLine{}).Error
}

// isUniqueViolation reports whether err is a unique constraint violation.
// Matches both the postgres error text and gorm's duplicated key error.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

var _ cart.Repository = (*GormCartRepository)(nil)
