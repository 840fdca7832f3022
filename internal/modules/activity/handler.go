package activity

import (
	"strings"
	"time"

	"github.com/bazaarhq/core/internal/middleware"
	"github.com/bazaarhq/core/internal/pkg/pagination"
	"github.com/bazaarhq/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, ownerMW gin.HandlerFunc) {
	g := rg.Group("/posts/activities")

	g.GET("/user", authMW, h.listUser)
	g.GET("/system", authMW, ownerMW, h.listSystem)
}

func (h *Handler) listUser(c *gin.Context) {
	q := pagination.FromContext(c)
	if c.Query("limit") == "" {
		q.Limit = UserPageLimit
	}

	records, pag, err := h.service.ListForUser(
		middleware.CurrentUserID(c),
		filterFromContext(c),
		q,
	)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, "activities retrieved", records, pag, nil)
}

func (h *Handler) listSystem(c *gin.Context) {
	f := filterFromContext(c)
	f.UserID = strings.TrimSpace(c.Query("userId"))

	q := pagination.FromContext(c)
	if c.Query("limit") == "" {
		q.Limit = SystemPageLimit
	}

	records, pag, err := h.service.ListSystem(f, q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, "activities retrieved", records, pag, nil)
}

func filterFromContext(c *gin.Context) Filter {
	f := Filter{
		Action:   strings.TrimSpace(c.Query("action")),
		Resource: strings.TrimSpace(c.Query("resource")),
	}
	if t, ok := parseDate(c.Query("from")); ok {
		f.From = &t
	}
	if t, ok := parseDate(c.Query("to")); ok {
		f.To = &t
	}
	return f
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
