package pagination

import (
	"strconv"

	"github.com/bazaarhq/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Query holds parsed pagination parameters.
type Query struct {
	Page  int
	Limit int
}

// FromContext extracts and clamps pagination params from the request.
func FromContext(c *gin.Context) Query {
	return Clamp(
		parseIntOr(c.DefaultQuery("page", "1"), DefaultPage),
		parseIntOr(c.DefaultQuery("limit", "10"), DefaultLimit),
	)
}

// Clamp normalizes raw page/limit values into a valid Query.
func Clamp(page, limit int) Query {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Query{Page: page, Limit: limit}
}

// Meta computes pagination metadata for a total row count.
func Meta(q Query, total int64) response.Pagination {
	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return response.Pagination{
		CurrentPage: q.Page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNextPage: q.Page < totalPages,
		HasPrevPage: q.Page > 1 && total > 0,
	}
}

// Paginate applies limit/offset to a GORM query and returns the pagination
// metadata. Count runs on a session clone so selected expressions (e.g. a
// relevance score) do not leak into the COUNT statement.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}

	offset := (q.Page - 1) * q.Limit
	if err := db.Offset(offset).Limit(q.Limit).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}

	return Meta(q, total), nil
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
