package control

import (
	"github.com/gin-gonic/gin"

	"github.com/Viper373/prompt-shelf/internal/settings"
)

func RegisterRoutes(router *gin.RouterGroup, rt *settings.Runtime) {
	router.POST("/register", AllowRegister(rt))
	router.GET("/users", ListUsers)
	router.POST("/users", AddUser)
	router.PATCH("/users/:id", UpdateUser)
	router.DELETE("/users/:id", DeleteUser)
	router.POST("/users/disable", DisableUser)
	router.POST("/orgs", CreateOrg)
	router.POST("/orgs/members", AddOrgMember)
}
