package app

import (
	"github.com/bazaarhq/core/internal/middleware"
	"github.com/bazaarhq/core/internal/modules/activity"
	"github.com/bazaarhq/core/internal/modules/auth"
	"github.com/bazaarhq/core/internal/modules/category"
	"github.com/bazaarhq/core/internal/modules/post"
	"github.com/bazaarhq/core/internal/modules/storage/file"
	"github.com/bazaarhq/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes() {
	authMW := middleware.Auth(a.db)
	ownerMW := middleware.RequireOwner()

	store := file.NewStore(a.cfg.UploadsDir(), a.logger)
	activitySvc := activity.NewService(a.db, a.logger)
	categorySvc := category.NewService(a.db)
	postSvc := post.NewService(a.db, store, categorySvc, a.logger)
	authSvc := auth.NewService(a.db)

	api := a.router.Group("/api/v1")
	api.Use(middleware.Idempotence(a.redis.Raw()))

	auth.NewHandler(authSvc, activitySvc).RegisterRoutes(api, authMW, ownerMW)
	category.NewHandler(categorySvc, activitySvc).RegisterRoutes(api, authMW, ownerMW)
	post.NewHandler(postSvc, categorySvc, activitySvc).RegisterRoutes(api, authMW, ownerMW)
	activity.NewHandler(activitySvc).RegisterRoutes(api, authMW, ownerMW)
	file.NewHandler(store).RegisterRoutes(a.router.Group(""))

	a.router.GET("/health", func(c *gin.Context) {
		response.OK(c, "ok", gin.H{"status": "healthy"})
	})

	a.router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})
}
