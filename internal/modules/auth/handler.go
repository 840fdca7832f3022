package auth

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
	g := rg.Group("/auth")

	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.GET("/profile", authMW, h.profile)
	g.GET("/dashboard/stats", authMW, ownerMW, h.dashboardStats)

	mods := g.Group("/moderators", authMW, ownerMW)
	mods.GET("", h.listModerators)
	mods.POST("", h.createModerator)
	mods.PUT("/:id", h.updateModerator)
	mods.DELETE("/:id", h.deleteModerator)
}

type loginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type createModeratorDTO struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"max=100"`
}

type updateModeratorDTO struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	FullName *string `json:"fullName" binding:"omitempty,max=100"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	IsActive *bool   `json:"isActive"`
}

func (h *Handler) register(c *gin.Context) {
	var dto createModeratorDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	user, err := h.service.RegisterOwner(ModeratorInput{
		Username: dto.Username,
		Email:    dto.Email,
		Password: dto.Password,
		FullName: dto.FullName,
	})
	if err != nil {
		if errors.Is(err, ErrOwnerExists) {
			response.Conflict(c, err.Error())
		} else {
			response.InternalError(c, err)
		}
		return
	}

	h.activity.Record(c, activity.Entry{
		UserID:     user.ID,
		Action:     models.ActionUserCreate,
		Resource:   "user",
		ResourceID: user.ID,
		Details:    "registered owner " + user.Username,
	})
	response.Created(c, "owner registered", user)
}

func (h *Handler) login(c *gin.Context) {
	var dto loginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	token, user, err := h.service.Login(dto.Username, dto.Password)
	if err != nil {
		if errors.Is(err, errUserNotFound) || errors.Is(err, errWrongPassword) {
			response.Unauthorized(c, "invalid credentials")
		} else {
			response.InternalError(c, err)
		}
		return
	}

	h.activity.Record(c, activity.Entry{
		UserID:   user.ID,
		Action:   models.ActionLogin,
		Resource: "auth",
		Details:  "user logged in",
	})
	response.OK(c, "login successful", gin.H{
		"token": token,
		"user":  user,
	})
}

func (h *Handler) profile(c *gin.Context) {
	user, err := h.service.Profile(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if user == nil {
		response.NotFound(c, "user not found")
		return
	}
	response.OK(c, "profile retrieved", gin.H{
		"user":         user,
		"capabilities": models.CapabilitiesFor(user.Role),
	})
}

func (h *Handler) dashboardStats(c *gin.Context) {
	stats, err := h.service.DashboardStats()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, "dashboard statistics retrieved", stats)
}

func (h *Handler) listModerators(c *gin.Context) {
	moderators, err := h.service.ListModerators()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OKCount(c, "moderators retrieved", moderators, int64(len(moderators)))
}

func (h *Handler) createModerator(c *gin.Context) {
	var dto createModeratorDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	ownerID := middleware.CurrentUserID(c)
	user, err := h.service.CreateModerator(ModeratorInput{
		Username: dto.Username,
		Email:    dto.Email,
		Password: dto.Password,
		FullName: dto.FullName,
	}, ownerID)
	if err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			response.Conflict(c, err.Error())
		} else {
			response.InternalError(c, err)
		}
		return
	}

	h.activity.Record(c, activity.Entry{
		UserID:     ownerID,
		Action:     models.ActionUserCreate,
		Resource:   "user",
		ResourceID: user.ID,
		Details:    "created moderator " + user.Username,
	})
	response.Created(c, "moderator created", user)
}

func (h *Handler) updateModerator(c *gin.Context) {
	var dto updateModeratorDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	ownerID := middleware.CurrentUserID(c)
	user, err := h.service.UpdateModerator(c.Param("id"), ModeratorUpdate{
		Email:    dto.Email,
		FullName: dto.FullName,
		Password: dto.Password,
		IsActive: dto.IsActive,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			response.Conflict(c, err.Error())
		} else {
			response.InternalError(c, err)
		}
		return
	}
	if user == nil {
		response.NotFound(c, "moderator not found")
		return
	}

	h.activity.Record(c, activity.Entry{
		UserID:     ownerID,
		Action:     models.ActionUserUpdate,
		Resource:   "user",
		ResourceID: user.ID,
		Details:    "updated moderator " + user.Username,
	})
	response.OK(c, "moderator updated", user)
}

func (h *Handler) deleteModerator(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)
	user, err := h.service.DeleteModerator(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if user == nil {
		response.NotFound(c, "moderator not found")
		return
	}

	h.activity.Record(c, activity.Entry{
		UserID:     ownerID,
		Action:     models.ActionUserDelete,
		Resource:   "user",
		ResourceID: user.ID,
		Details:    "deactivated moderator " + user.Username,
	})
	response.OK(c, "moderator deactivated", user)
}
