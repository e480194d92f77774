package routes

import (
	specialistapi "specialist-app/internal/api/specialist"
	"specialist-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, specialist *specialistapi.Handler) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	// Marketplace views need no session.
	public.GET("/specialist/all-published", specialist.GetPublished)
	public.GET("/specialist", specialist.List)

	// Dashboard operations sit behind the auth service's JWT.
	auth := r.Group("/")
	auth.Use(middleware.SanitizeAndCleanInputMiddleware(), middleware.AuthMiddleware())

	auth.POST("/specialist", specialist.Create)
	auth.POST("/specialist/publish", specialist.Publish)
	auth.GET("/specialist/:id", specialist.GetByID)
	auth.PUT("/specialist/:id", specialist.Update)
	auth.DELETE("/specialist/:id", specialist.Delete)
}
