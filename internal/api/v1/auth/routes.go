package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/Viper373/prompt-shelf/internal/settings"
)

func RegisterRoutes(router *gin.RouterGroup, rt *settings.Runtime) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", Signup(rt))
		authGroup.POST("/signin", Signin)
		authGroup.GET("/allow-register", AllowRegisterStatus(rt))
	}
}

// RegisterProtectedRoutes attaches the routes that require a valid token.
func RegisterProtectedRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signout", Signout)
	}
}
