package post

import (
	"encoding/json"
	"strings"

	"github.com/bazaarhq/core/internal/models"
	"github.com/bazaarhq/core/internal/pkg/pagination"
	"github.com/bazaarhq/core/internal/pkg/response"
)

// ListQuery holds the post listing filters. A zero MinPrice or MaxPrice
// means that bound is open.
type ListQuery struct {
	Page       int      `json:"-"`
	Limit      int      `json:"-"`
	Search     string   `json:"search,omitempty"`
	CategoryID string   `json:"category,omitempty"`
	MinPrice   float64  `json:"minPrice,omitempty"`
	MaxPrice   float64  `json:"maxPrice,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	SortBy     string   `json:"sortBy,omitempty"`
	SortOrder  string   `json:"sortOrder,omitempty"`
	Status     string   `json:"status,omitempty"`
	Featured   *bool    `json:"featured,omitempty"`
}

var sortableColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"price":     "price",
	"views":     "views",
	"title":     "title",
}

// Normalize fills defaults and discards values the query cannot use.
func (q *ListQuery) Normalize() {
	pq := pagination.Clamp(q.Page, q.Limit)
	q.Page = pq.Page
	q.Limit = pq.Limit

	q.Search = strings.TrimSpace(q.Search)
	q.Status = strings.ToLower(strings.TrimSpace(q.Status))
	switch q.Status {
	case models.PostStatusActive, models.PostStatusInactive, models.PostStatusDeleted, "all":
	default:
		q.Status = models.PostStatusActive
	}

	if q.MinPrice < 0 {
		q.MinPrice = 0
	}
	if q.MaxPrice < 0 {
		q.MaxPrice = 0
	}

	if _, ok := sortableColumns[q.SortBy]; !ok {
		q.SortBy = "createdAt"
	}
	if strings.EqualFold(q.SortOrder, "asc") {
		q.SortOrder = "asc"
	} else {
		q.SortOrder = "desc"
	}

	q.Tags = NormalizeTags(q.Tags)
}

// NormalizeTags trims, deduplicates and drops empty entries.
func NormalizeTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

const searchMatch = "MATCH(title, body, tags_text) AGAINST (? IN NATURAL LANGUAGE MODE)"

// List runs the filtered, sorted, paginated listing.
func (s *Service) List(q ListQuery) ([]models.PostModel, response.Pagination, error) {
	q.Normalize()

	tx := s.db.Model(&models.PostModel{}).Preload("Category")

	if q.Status != "all" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.CategoryID != "" {
		tx = tx.Where("category_id = ?", q.CategoryID)
	}
	if q.MinPrice > 0 {
		tx = tx.Where("price >= ?", q.MinPrice)
	}
	if q.MaxPrice > 0 {
		tx = tx.Where("price <= ?", q.MaxPrice)
	}
	if q.Featured != nil {
		tx = tx.Where("featured = ?", *q.Featured)
	}
	if len(q.Tags) > 0 {
		tagsJSON, _ := json.Marshal(q.Tags)
		tx = tx.Where("JSON_OVERLAPS(tags, CAST(? AS JSON))", string(tagsJSON))
	}

	if q.Search != "" {
		// Relevance ordering overrides the caller's sort when searching.
		tx = tx.Select("posts.*, "+searchMatch+" AS score", q.Search).
			Where(searchMatch, q.Search).
			Order("score DESC, created_at DESC")
	} else {
		tx = tx.Order(sortableColumns[q.SortBy] + " " + strings.ToUpper(q.SortOrder))
	}

	var posts []models.PostModel
	pag, err := pagination.Paginate(tx, pagination.Query{Page: q.Page, Limit: q.Limit}, &posts)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return posts, pag, nil
}

// Search is the restricted listing variant: always active posts, always
// relevance-ordered.
func (s *Service) Search(term string, q ListQuery) ([]models.PostModel, response.Pagination, error) {
	q.Search = strings.TrimSpace(term)
	q.Status = models.PostStatusActive
	q.SortBy = ""
	q.SortOrder = ""
	return s.List(q)
}
