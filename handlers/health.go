package handlers

import (
	"net/http"

	"fotura/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the latest mongo/redis health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"deps":   utils.GetHealthStatus(),
	})
}
