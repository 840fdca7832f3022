package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perform(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/", nil)
	fn(c)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestOK(t *testing.T) {
	rec := perform(func(c *gin.Context) {
		OK(c, "done", gin.H{"id": "1"})
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "done", body["message"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotNil(t, body["data"])
	assert.Nil(t, body["count"])
}

func TestOKCount(t *testing.T) {
	rec := perform(func(c *gin.Context) {
		OKCount(c, "listed", []string{"a", "b"}, 2)
	})
	body := decode(t, rec)
	assert.Equal(t, float64(2), body["count"])
}

func TestPaged(t *testing.T) {
	rec := perform(func(c *gin.Context) {
		Paged(c, "listed", []string{"a"}, Pagination{
			CurrentPage: 1, TotalPages: 3, TotalCount: 25, HasNextPage: true,
		}, gin.H{"status": "active"})
	})
	body := decode(t, rec)
	data := body["data"].(map[string]interface{})
	pag := data["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pag["currentPage"])
	assert.Equal(t, float64(3), pag["totalPages"])
	assert.Equal(t, true, pag["hasNextPage"])
	assert.NotNil(t, data["filters"])
}

func TestErrorEnvelope(t *testing.T) {
	rec := perform(func(c *gin.Context) {
		Conflict(c, "already exists")
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "already exists", body["message"])
}

func TestValidationFailedFields(t *testing.T) {
	rec := perform(func(c *gin.Context) {
		ValidationFailedFields(c, []FieldError{
			{Field: "title", Message: "title must be at least 3 characters", Value: "ab"},
		})
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decode(t, rec)
	fields := body["data"].([]interface{})
	require.Len(t, fields, 1)
	first := fields[0].(map[string]interface{})
	assert.Equal(t, "title", first["field"])
	assert.Equal(t, "ab", first["value"])
}

func TestValidationFailedBinding(t *testing.T) {
	type dto struct {
		Title string `json:"title" binding:"required,min=3"`
	}
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"ab"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var d dto
	err := c.ShouldBindJSON(&d)
	require.Error(t, err)

	ValidationFailed(c, err)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decode(t, rec)
	fields := body["data"].([]interface{})
	require.Len(t, fields, 1)
	assert.Equal(t, "title", fields[0].(map[string]interface{})["field"])
}
