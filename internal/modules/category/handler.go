package category

import (
	"errors"

	"github.com/bazaarhq/core/internal/middleware"
	"github.com/bazaarhq/core/internal/models"
	"github.com/bazaarhq/core/internal/modules/activity"
	"github.com/bazaarhq/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	service  *Service
	activity *activity.Service
}

func NewHandler(service *Service, activitySvc *activity.Service) *Handler {
	return &Handler{service: service, activity: activitySvc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, ownerMW gin.HandlerFunc) {
	g := rg.Group("/categories")

	g.GET("", h.hierarchy)
	g.GET("/slug/:slug", h.getBySlug)

	g.POST("", authMW, h.create)
	g.PUT("/:id", authMW, h.update)
	g.DELETE("/:id", authMW, h.delete)
	g.POST("/initialize-mattress", authMW, ownerMW, h.initializeMattress)
}

type propertyDTO struct {
	Name     string   `json:"name" binding:"required,max=50"`
	Type     string   `json:"type" binding:"required,oneof=text number boolean select multiselect"`
	Options  []string `json:"options"`
	Required bool     `json:"required"`
	Unit     string   `json:"unit"`
}

type createCategoryDTO struct {
	Name       string        `json:"name" binding:"required,max=100"`
	ParentID   *string       `json:"parentCategory"`
	Properties []propertyDTO `json:"properties" binding:"dive"`
	SortOrder  int           `json:"sortOrder"`
}

type updateCategoryDTO struct {
	Name        *string       `json:"name" binding:"omitempty,max=100"`
	ParentID    *string       `json:"parentCategory"`
	ClearParent bool          `json:"clearParent"`
	Properties  []propertyDTO `json:"properties" binding:"omitempty,dive"`
	SortOrder   *int          `json:"sortOrder"`
	IsActive    *bool         `json:"isActive"`
}

func (h *Handler) hierarchy(c *gin.Context) {
	categories, err := h.service.Hierarchy()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OKCount(c, "categories retrieved", categories, int64(len(categories)))
}

func (h *Handler) getBySlug(c *gin.Context) {
	category, err := h.service.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if category == nil {
		response.NotFound(c, "category not found")
		return
	}
	response.OK(c, "category retrieved", category)
}

func (h *Handler) create(c *gin.Context) {
	var dto createCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	userID := middleware.CurrentUserID(c)
	category, err := h.service.Create(CreateInput{
		Name:       dto.Name,
		ParentID:   dto.ParentID,
		Properties: toProperties(dto.Properties),
		SortOrder:  dto.SortOrder,
	}, userID)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			response.Conflict(c, err.Error())
		} else {
			response.BadRequest(c, err.Error())
		}
		return
	}

	h.activity.Record(c, activity.Entry{
		UserID:     userID,
		Action:     models.ActionCategoryCreate,
		Resource:   "category",
		ResourceID: category.ID,
		Details:    "created category " + category.Name,
	})
	response.Created(c, "category created", category)
}

func (h *Handler) update(c *gin.Context) {
	var dto updateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	userID := middleware.CurrentUserID(c)
	input := UpdateInput{
		Name:        dto.Name,
		ParentID:    dto.ParentID,
		ClearParent: dto.ClearParent,
		SortOrder:   dto.SortOrder,
		IsActive:    dto.IsActive,
	}
	if dto.Properties != nil {
		input.Properties = toProperties(dto.Properties)
	}

	category, err := h.service.Update(c.Param("id"), input, userID)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			response.Conflict(c, err.Error())
		} else {
			response.BadRequest(c, err.Error())
		}
		return
	}
	if category == nil {
		response.NotFound(c, "category not found")
		return
	}

	h.activity.Record(c, activity.Entry{
		UserID:     userID,
		Action:     models.ActionCategoryUpdate,
		Resource:   "category",
		ResourceID: category.ID,
		Details:    "updated category " + category.Name,
	})
	response.OK(c, "category updated", category)
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	category, err := h.service.Delete(c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, ErrHasSubcategories) || errors.Is(err, ErrHasPosts) {
			response.Conflict(c, err.Error())
		} else {
			response.InternalError(c, err)
		}
		return
	}
	if category == nil {
		response.NotFound(c, "category not found")
		return
	}

	h.activity.Record(c, activity.Entry{
		UserID:     userID,
		Action:     models.ActionCategoryDelete,
		Resource:   "category",
		ResourceID: category.ID,
		Details:    "deleted category " + category.Name,
	})
	response.OK(c, "category deleted", category)
}

func (h *Handler) initializeMattress(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	categories, err := h.service.SeedMattress(userID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OKCount(c, "mattress taxonomy initialized", categories, int64(len(categories)))
}

func toProperties(dtos []propertyDTO) []models.CategoryProperty {
	props := make([]models.CategoryProperty, 0, len(dtos))
	for _, p := range dtos {
		props = append(props, models.CategoryProperty{
			Name:     p.Name,
			Type:     p.Type,
			Options:  p.Options,
			Required: p.Required,
			Unit:     p.Unit,
		})
	}
	return props
}
