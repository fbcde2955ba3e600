package routes

import (
	"net/http"

	"vendora/utils"

	"github.com/gin-gonic/gin"
)

// RegisterHealthRoutes exposes the liveness snapshot.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}
