package file

import (
	"os"
	"path/filepath"

	"github.com/bazaarhq/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

// Handler serves stored uploads.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/uploads/:name", h.get)
}

func (h *Handler) get(c *gin.Context) {
	name := SafeName(c.Param("name"))
	if name == "" {
		response.NotFound(c, "file not found")
		return
	}

	path := filepath.Join(h.store.Dir(), name)
	if _, err := os.Stat(path); err != nil {
		response.NotFound(c, "file not found")
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000")
	c.File(path)
}
