package post

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestListQueryNormalizeDefaults(t *testing.T) {
	q := ListQuery{}
	q.Normalize()

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, "active", q.Status)
	assert.Equal(t, "createdAt", q.SortBy)
	assert.Equal(t, "desc", q.SortOrder)
}

func TestListQueryNormalizeClamps(t *testing.T) {
	q := ListQuery{
		Page:      -3,
		Limit:     9999,
		MinPrice:  -10,
		MaxPrice:  -1,
		Status:    "Bogus",
		SortBy:    "password",
		SortOrder: "ASC",
	}
	q.Normalize()

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 100, q.Limit)
	assert.Zero(t, q.MinPrice)
	assert.Zero(t, q.MaxPrice)
	assert.Equal(t, "active", q.Status)
	assert.Equal(t, "createdAt", q.SortBy)
	assert.Equal(t, "asc", q.SortOrder)
}

func TestListQueryNormalizeKeepsValidValues(t *testing.T) {
	q := ListQuery{
		Status:    "DELETED",
		SortBy:    "price",
		SortOrder: "asc",
		Tags:      []string{" foam ", "", "foam", "latex"},
	}
	q.Normalize()

	assert.Equal(t, "deleted", q.Status)
	assert.Equal(t, "price", q.SortBy)
	assert.Equal(t, []string{"foam", "latex"}, q.Tags)
}

func TestListQueryStatusAll(t *testing.T) {
	q := ListQuery{Status: "all"}
	q.Normalize()
	assert.Equal(t, "all", q.Status)
}

func TestNormalizeTags(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{[]string{"a", "b"}, []string{"a", "b"}},
		{[]string{" a ", "a", ""}, []string{"a"}},
		{[]string{"", "  "}, []string{}},
		{nil, []string{}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeTags(tc.in))
	}
}

func TestListQueryFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET",
		"/?page=2&limit=5&search=foam&category=cat-1&minPrice=10.5&maxPrice=99&tags=foam,latex&sortBy=price&sortOrder=asc&status=inactive&featured=true", nil)

	q := listQueryFromContext(c)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 5, q.Limit)
	assert.Equal(t, "foam", q.Search)
	assert.Equal(t, "cat-1", q.CategoryID)
	assert.Equal(t, 10.5, q.MinPrice)
	assert.Equal(t, float64(99), q.MaxPrice)
	assert.Equal(t, []string{"foam", "latex"}, q.Tags)
	assert.Equal(t, "price", q.SortBy)
	assert.Equal(t, "asc", q.SortOrder)
	assert.Equal(t, "inactive", q.Status)
	if assert.NotNil(t, q.Featured) {
		assert.True(t, *q.Featured)
	}
}

func TestListQueryFromContextFeaturedAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?featured=maybe", nil)

	q := listQueryFromContext(c)
	assert.Nil(t, q.Featured)
}
