package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCartLine(t *testing.T) {
	customerID := uuid.New()
	productID := uuid.New()

	t.Run("creates valid cart line", func(t *testing.T) {
		line, err := NewCartLine(customerID, productID, 3)
		require.NoError(t, err)
		assert.Equal(t, customerID, line.CustomerID)
		assert.Equal(t, productID, line.ProductID)
		assert.Equal(t, 3, line.Quantity)
		assert.NotEqual(t, uuid.Nil, line.ID)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewCartLine(customerID, productID, 0)
		assert.Error(t, err)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := NewCartLine(customerID, productID, -1)
		assert.Error(t, err)
	})

	t.Run("rejects missing customer", func(t *testing.T) {
		_, err := NewCartLine(uuid.Nil, productID, 1)
		assert.Error(t, err)
	})

	t.Run("rejects missing product", func(t *testing.T) {
		_, err := NewCartLine(customerID, uuid.Nil, 1)
		assert.Error(t, err)
	})
}

func TestCartLineChangeQuantity(t *testing.T) {
	line, err := NewCartLine(uuid.New(), uuid.New(), 1)
	require.NoError(t, err)

	require.NoError(t, line.ChangeQuantity(5))
	assert.Equal(t, 5, line.Quantity)

	assert.Error(t, line.ChangeQuantity(0))
	assert.Equal(t, 5, line.Quantity)
}
