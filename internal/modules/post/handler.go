package post

import (
	"errors"
	"mime/multipart"
	"strconv"

	"github.com/bazaarhq/core/internal/middleware"
	"github.com/bazaarhq/core/internal/models"
	"github.com/bazaarhq/core/internal/modules/activity"
	"github.com/bazaarhq/core/internal/modules/category"
	"github.com/bazaarhq/core/internal/modules/storage/file"
	"github.com/bazaarhq/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	service    *Service
	categories *category.Service
	activity   *activity.Service
}

func NewHandler(service *Service, categories *category.Service, activitySvc *activity.Service) *Handler {
	return &Handler{service: service, categories: categories, activity: activitySvc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, ownerMW gin.HandlerFunc) {
	g := rg.Group("/posts")

	g.GET("", h.list)
	g.GET("/search", h.search)
	g.GET("/categories", h.listCategories)
	g.GET("/statistics", authMW, ownerMW, h.statistics)
	g.GET("/:id", h.getOne)

	g.POST("", authMW, h.create)
	g.PUT("/:id", authMW, h.update)
	g.DELETE("/:id", authMW, h.delete)
	g.PATCH("/:id/restore", authMW, h.restore)
	g.PATCH("/:id/toggle-featured", authMW, h.toggleFeatured)
}

func (h *Handler) list(c *gin.Context) {
	q := listQueryFromContext(c)
	posts, pag, err := h.service.List(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	q.Normalize()
	response.Paged(c, "posts retrieved", posts, pag, q)
}

func (h *Handler) search(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		response.BadRequest(c, "search term q is required")
		return
	}

	q := listQueryFromContext(c)
	posts, pag, err := h.service.Search(term, q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, "search results", posts, pag, gin.H{"q": term})
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.categories.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OKCount(c, "categories retrieved", categories, int64(len(categories)))
}

func (h *Handler) getOne(c *gin.Context) {
	trackView, _ := strconv.ParseBool(c.DefaultQuery("trackView", "false"))
	post, err := h.service.GetOne(c.Param("id"), trackView)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c, "post not found")
		return
	}
	response.OK(c, "post retrieved", post)
}

func (h *Handler) create(c *gin.Context) {
	var dto createPostDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	input, err := dto.toInput()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := middleware.CurrentUserID(c)
	post, err := h.service.Create(input, formImage(c), userID)
	if err != nil {
		h.recordFailure(c, userID, models.ActionPostCreate, "", err)
		h.writeError(c, err)
		return
	}

	h.activity.Record(c, activity.Entry{
		UserID:     userID,
		Action:     models.ActionPostCreate,
		Resource:   "post",
		ResourceID: post.ID,
		Details:    "created post " + post.Title,
	})
	response.Created(c, "post created", post)
}

func (h *Handler) update(c *gin.Context) {
	var dto updatePostDTO
	if err := c.ShouldBind(&dto); err != nil {
		response.ValidationFailed(c, err)
		return
	}
	input, err := dto.toInput()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	id := c.Param("id")
	userID := middleware.CurrentUserID(c)
	post, err := h.service.Edit(id, input, formImage(c), userID)
	if err != nil {
		h.recordFailure(c, userID, models.ActionPostUpdate, id, err)
		h.writeError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c, "post not found")
		return
	}

	h.activity.Record(c, activity.Entry{
		UserID:     userID,
		Action:     models.ActionPostUpdate,
		Resource:   "post",
		ResourceID: post.ID,
		Details:    "updated post " + post.Title,
	})
	response.OK(c, "post updated", post)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	userID := middleware.CurrentUserID(c)
	hard, _ := strconv.ParseBool(c.DefaultQuery("hard", "false"))

	if hard {
		if !models.CapabilitiesFor(middleware.CurrentRole(c)).CanManageUsers {
			response.Forbidden(c, "hard delete requires owner access")
			return
		}
		post, err := h.service.HardDelete(id)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		if post == nil {
			response.NotFound(c, "post not found")
			return
		}
		h.activity.Record(c, activity.Entry{
			UserID:     userID,
			Action:     models.ActionPostHardDelete,
			Resource:   "post",
			ResourceID: post.ID,
			Details:    "permanently deleted post " + post.Title,
		})
		response.OK(c, "post permanently deleted", nil)
		return
	}

	post, err := h.service.Delete(id, userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c, "post not found")
		return
	}

	h.activity.Record(c, activity.Entry{
		UserID:     userID,
		Action:     models.ActionPostDelete,
		Resource:   "post",
		ResourceID: post.ID,
		Details:    "deleted post " + post.Title,
	})
	response.OK(c, "post deleted", post)
}

func (h *Handler) restore(c *gin.Context) {
	id := c.Param("id")
	userID := middleware.CurrentUserID(c)

	post, err := h.service.Restore(id, userID)
	if err != nil {
		if errors.Is(err, ErrNotDeleted) {
			response.Conflict(c, err.Error())
		} else {
			response.InternalError(c, err)
		}
		return
	}
	if post == nil {
		response.NotFound(c, "post not found")
		return
	}

	h.activity.Record(c, activity.Entry{
		UserID:     userID,
		Action:     models.ActionPostRestore,
		Resource:   "post",
		ResourceID: post.ID,
		Details:    "restored post " + post.Title,
	})
	response.OK(c, "post restored", post)
}

func (h *Handler) toggleFeatured(c *gin.Context) {
	id := c.Param("id")
	userID := middleware.CurrentUserID(c)

	post, err := h.service.ToggleFeatured(id, userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c, "post not found")
		return
	}

	h.activity.Record(c, activity.Entry{
		UserID:     userID,
		Action:     models.ActionPostFeature,
		Resource:   "post",
		ResourceID: post.ID,
		Details:    "toggled featured on post " + post.Title,
	})
	response.OK(c, "featured flag toggled", post)
}

func (h *Handler) statistics(c *gin.Context) {
	stats, err := h.service.Statistics()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, "statistics retrieved", stats)
}

// writeError maps service errors onto response shapes.
func (h *Handler) writeError(c *gin.Context, err error) {
	var propErr *PropertyError
	var uploadErr *file.ValidationError
	switch {
	case errors.As(err, &propErr):
		response.ValidationFailedFields(c, propErr.Fields)
	case errors.As(err, &uploadErr):
		response.UploadError(c, uploadErr.Reason)
	case errors.Is(err, ErrCategoryNotFound):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

func (h *Handler) recordFailure(c *gin.Context, userID, action, resourceID string, err error) {
	h.activity.Record(c, activity.Entry{
		UserID:       userID,
		Action:       action,
		Resource:     "post",
		ResourceID:   resourceID,
		Failed:       true,
		ErrorMessage: err.Error(),
	})
}

func formImage(c *gin.Context) *multipart.FileHeader {
	header, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return header
}
