package activity

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	ts, ok := parseDate("2026-08-01")
	require.True(t, ok)
	assert.Equal(t, 2026, ts.Year())
	assert.Equal(t, time.August, ts.Month())

	ts, ok = parseDate("2026-08-01T12:30:00Z")
	require.True(t, ok)
	assert.Equal(t, 12, ts.Hour())

	_, ok = parseDate("")
	assert.False(t, ok)

	_, ok = parseDate("last tuesday")
	assert.False(t, ok)
}

func TestFilterFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET",
		"/?action=post_create&resource=post&from=2026-01-01&to=2026-02-01", nil)

	f := filterFromContext(c)
	assert.Equal(t, "post_create", f.Action)
	assert.Equal(t, "post", f.Resource)
	require.NotNil(t, f.From)
	require.NotNil(t, f.To)
	assert.True(t, f.From.Before(*f.To))
	assert.Empty(t, f.UserID)
}
