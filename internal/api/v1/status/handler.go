package status

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

type Health struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

func Status(c *gin.Context) {
	c.JSON(http.StatusOK, Health{
		Status:        "Ok",
		UptimeSeconds: int64(time.Since(startTime).Seconds()),
	})
}

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", Status)
}
