package avatar_api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Healthz reports process liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
