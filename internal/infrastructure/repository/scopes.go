package repository

import (
	"strings"

	"github.com/sangkips/printshop-api/pkg/pagination"
	"gorm.io/gorm"
)

// SearchScope matches term case-insensitively against any of columns.
// LOWER/LIKE is used instead of ILIKE so the query runs on sqlite too.
func SearchScope(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + strings.ToLower(term) + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = pattern
		}
		return db.Where(strings.Join(clauses, " OR "), args...)
	}
}

// PageScope applies offset and limit after validating params.
func PageScope(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params == nil {
			params = &pagination.PaginationParams{}
		}
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}

// OrderScope sorts by sortBy when it is one of allowed, else by fallback.
func OrderScope(sortBy, sortOrder, fallback string, allowed ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		col := fallback
		for _, a := range allowed {
			if a == sortBy {
				col = sortBy
				break
			}
		}
		dir := "DESC"
		if strings.EqualFold(sortOrder, "asc") {
			dir = "ASC"
		}
		return db.Order(col + " " + dir)
	}
}
