package post

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/bazaarhq/core/internal/models"
	"github.com/gin-gonic/gin"
)

// Multipart form fields for post create. Tags accepts either repeated
// fields or one comma-separated value.
type createPostDTO struct {
	Title      string   `form:"title" binding:"required,min=3,max=100"`
	Body       string   `form:"body" binding:"required,min=10,max=1000"`
	Price      *float64 `form:"price" binding:"required,gte=0"`
	CategoryID string   `form:"category" binding:"required"`
	Tags       []string `form:"tags"`
	Featured   *bool    `form:"featured"`
	Properties string   `form:"categoryProperties"`
}

type updatePostDTO struct {
	Title      string   `form:"title" binding:"omitempty,min=3,max=100"`
	Body       string   `form:"body" binding:"omitempty,min=10,max=1000"`
	Price      *float64 `form:"price" binding:"omitempty,gte=0"`
	CategoryID string   `form:"category"`
	Tags       []string `form:"tags"`
	Featured   *bool    `form:"featured"`
	Properties string   `form:"categoryProperties"`
}

func (d *createPostDTO) toInput() (WriteInput, error) {
	props, err := parseProperties(d.Properties)
	if err != nil {
		return WriteInput{}, err
	}
	return WriteInput{
		Title:      strings.TrimSpace(d.Title),
		Body:       strings.TrimSpace(d.Body),
		Price:      d.Price,
		CategoryID: d.CategoryID,
		Properties: props,
		Tags:       flattenTags(d.Tags),
		Featured:   d.Featured,
	}, nil
}

func (d *updatePostDTO) toInput() (WriteInput, error) {
	props, err := parseProperties(d.Properties)
	if err != nil {
		return WriteInput{}, err
	}
	input := WriteInput{
		Title:      strings.TrimSpace(d.Title),
		Body:       strings.TrimSpace(d.Body),
		Price:      d.Price,
		CategoryID: d.CategoryID,
		Properties: props,
		Featured:   d.Featured,
	}
	if d.Tags != nil {
		input.Tags = flattenTags(d.Tags)
	}
	return input, nil
}

// flattenTags merges repeated form fields and comma-separated values into
// one normalized list.
func flattenTags(raw []string) []string {
	var parts []string
	for _, item := range raw {
		parts = append(parts, strings.Split(item, ",")...)
	}
	return NormalizeTags(parts)
}

func parseProperties(raw string) (models.PropertyMap, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var props models.PropertyMap
	if err := json.Unmarshal([]byte(raw), &props); err != nil {
		return nil, fmt.Errorf("categoryProperties must be a JSON object: %w", err)
	}
	return props, nil
}

// listQueryFromContext parses the listing filters off the query string.
func listQueryFromContext(c *gin.Context) ListQuery {
	q := ListQuery{
		Search:     c.Query("search"),
		CategoryID: strings.TrimSpace(c.Query("category")),
		MinPrice:   parseFloatOr(c.Query("minPrice"), 0),
		MaxPrice:   parseFloatOr(c.Query("maxPrice"), 0),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
		Status:     c.Query("status"),
		Page:       parseIntOr(c.Query("page"), 0),
		Limit:      parseIntOr(c.Query("limit"), 0),
	}
	if tags := strings.TrimSpace(c.Query("tags")); tags != "" {
		q.Tags = NormalizeTags(strings.Split(tags, ","))
	}
	if raw := strings.TrimSpace(c.Query("featured")); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			q.Featured = &v
		}
	}
	return q
}

func parseIntOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func parseFloatOr(s string, def float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}
