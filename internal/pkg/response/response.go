package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Envelope is the JSON body shape shared by every endpoint.
type Envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Count     *int64      `json:"count,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Pagination metadata returned with paginated responses.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// pagedData is the data payload for paginated list responses. Filters echoes
// the applied query filters so clients can reconcile state.
type pagedData struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
	Filters    interface{} `json:"filters,omitempty"`
}

// FieldError describes a single validation failure.
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

// OK sends a 200 response.
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// OKCount sends a 200 response with an item count.
func OKCount(c *gin.Context, message string, data interface{}, count int64) {
	c.JSON(http.StatusOK, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Count:     &count,
		Timestamp: time.Now(),
	})
}

// Paged sends a paginated 200 response with the filter echo.
func Paged(c *gin.Context, message string, items interface{}, pag Pagination, filters interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Success:   true,
		Message:   message,
		Data:      pagedData{Items: items, Pagination: pag, Filters: filters},
		Count:     &pag.TotalCount,
		Timestamp: time.Now(),
	})
}

// Created sends a 201 response.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, message, "")
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context, message string) {
	abort(c, http.StatusUnauthorized, message, "")
}

// Forbidden sends a 403 error response.
func Forbidden(c *gin.Context, message string) {
	abort(c, http.StatusForbidden, message, "")
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	abort(c, http.StatusNotFound, message, "")
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	abort(c, http.StatusConflict, message, "")
}

// UploadError sends a 422 error response for rejected file uploads.
func UploadError(c *gin.Context, message string) {
	abort(c, http.StatusUnprocessableEntity, message, "")
}

// InternalError sends a 500 error response. The underlying error detail is
// included only when gin runs in debug mode.
func InternalError(c *gin.Context, err error) {
	detail := ""
	if gin.IsDebugging() {
		detail = err.Error()
	}
	abort(c, http.StatusInternalServerError, "internal server error", detail)
}

// ValidationFailed renders binding errors as a 422 response carrying an
// array of {field, message, value} items.
func ValidationFailed(c *gin.Context, err error) {
	fields := FieldErrors(err)
	if len(fields) == 0 {
		BadRequest(c, err.Error())
		return
	}
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, Envelope{
		Success:   false,
		Message:   "validation failed",
		Data:      fields,
		Timestamp: time.Now(),
	})
}

// ValidationFailedFields renders pre-built field errors as a 422 response.
func ValidationFailedFields(c *gin.Context, fields []FieldError) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, Envelope{
		Success:   false,
		Message:   "validation failed",
		Data:      fields,
		Timestamp: time.Now(),
	})
}

// FieldErrors converts validator errors into FieldError items.
func FieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errorsAs(err, &verrs) {
		return nil
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fieldName(fe),
			Message: fieldMessage(fe),
			Value:   fe.Value(),
		})
	}
	return out
}

func abort(c *gin.Context, status int, message, detail string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success:   false,
		Message:   message,
		Error:     detail,
		Timestamp: time.Now(),
	})
}
