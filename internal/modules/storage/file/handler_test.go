package file

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func uploadsRouter(store *Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(store).RegisterRoutes(r.Group(""))
	return r
}

func TestHandlerServesStoredFile(t *testing.T) {
	store := NewStore(t.TempDir(), zap.NewNop())
	info, err := store.Save(multipartHeader(t, "photo.png", pngBytes(t, 8, 8)))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/uploads/"+info.FileName, nil)
	uploadsRouter(store).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=31536000", rec.Header().Get("Cache-Control"))
	assert.NotZero(t, rec.Body.Len())
}

func TestHandlerMissingFile(t *testing.T) {
	store := NewStore(t.TempDir(), zap.NewNop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/uploads/doesnotexist.png", nil)
	uploadsRouter(store).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "file not found")
}
