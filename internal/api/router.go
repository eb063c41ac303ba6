package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Viper373/prompt-shelf/internal/api/v1/auth"
	"github.com/Viper373/prompt-shelf/internal/api/v1/control"
	"github.com/Viper373/prompt-shelf/internal/api/v1/prompt"
	"github.com/Viper373/prompt-shelf/internal/api/v1/status"
	"github.com/Viper373/prompt-shelf/internal/middleware"
	"github.com/Viper373/prompt-shelf/internal/settings"
)

func NewRouter(rt *settings.Runtime) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// API v1
	v1 := router.Group("/api/v1")
	{
		status.RegisterRoutes(v1)
		auth.RegisterRoutes(v1, rt)

		authorized := v1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			auth.RegisterProtectedRoutes(authorized)
			prompt.RegisterRoutes(authorized)
		}

		// Admin routes
		admin := v1.Group("/control")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			control.RegisterRoutes(admin, rt)
		}
	}

	return router
}
