package prompt

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	prompts := router.Group("/prompts")
	{
		prompts.POST("", CreatePrompt)
		prompts.GET("", QueryPrompts)
		prompts.GET("/:id", QueryPrompt)
		prompts.DELETE("/:id", DeletePrompt)
		prompts.POST("/:id/versions", CreateVersion)
		prompts.GET("/:id/versions", ListVersions)
		prompts.GET("/:id/versions/:version/commits", ListCommits)
		prompts.POST("/:id/commits", CreateCommit)
		prompts.GET("/:id/latest", Latest)
		prompts.GET("/:id/content", GetContent)
		prompts.POST("/:id/rollback", Rollback)
		prompts.POST("/:id/revert", Revert)
		prompts.POST("/:id/diff", Diff)
	}
}
