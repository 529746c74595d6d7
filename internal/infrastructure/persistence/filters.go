package persistence

import (
	"strings"

	"github.com/salonops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// allowedOrderColumns guards ORDER BY input. Anything not on the list falls
// back to created_at so user input never reaches raw SQL.
var allowedOrderColumns = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"code":         true,
	"name":         true,
	"status":       true,
	"quantity":     true,
	"total_amount": true,
	"final_amount": true,
	"unit_price":   true,
	"starts_at":    true,
}

// applyFilter applies search, custom filters, ordering and pagination
func applyFilter(query *gorm.DB, filter shared.Filter, searchColumns ...string) *gorm.DB {
	query = applyFilterWithoutPagination(query, filter, searchColumns...)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := "created_at"
	if allowedOrderColumns[filter.OrderBy] {
		orderBy = filter.OrderBy
	}
	orderDir := "DESC"
	if strings.ToLower(filter.OrderDir) == "asc" {
		orderDir = "ASC"
	}
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies search and custom filters only
func applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter, searchColumns ...string) *gorm.DB {
	if filter.Search != "" && len(searchColumns) > 0 {
		pattern := "%" + filter.Search + "%"
		conditions := make([]string, 0, len(searchColumns))
		args := make([]interface{}, 0, len(searchColumns))
		for _, col := range searchColumns {
			conditions = append(conditions, col+" ILIKE ?")
			args = append(args, pattern)
		}
		query = query.Where(strings.Join(conditions, " OR "), args...)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "direction":
			query = query.Where("direction = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		}
	}

	return query
}
