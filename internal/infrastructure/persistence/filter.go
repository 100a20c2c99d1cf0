package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/souqmarket/backend/internal/domain/shared"
)

// sortableColumns lists the columns callers may order by. Anything else
// falls back to created_at to keep user input out of the ORDER BY clause.
var sortableColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"order_number": true,
	"status":       true,
	"total_amount": true,
	"name":         true,
	"price":        true,
}

// applyFilter applies ordering and pagination to a query
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := filter.OrderBy
	if !sortableColumns[orderBy] {
		orderBy = "created_at"
	}
	orderDir := "ASC"
	if strings.ToLower(filter.OrderDir) == "desc" || filter.OrderDir == "" {
		orderDir = "DESC"
	}
	query = query.Order(orderBy + " " + orderDir)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}
