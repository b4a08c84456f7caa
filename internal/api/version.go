package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/pokebattle/internal/version"
)

// Version returns build and VCS metadata injected at build time.
func Version(c *gin.Context) {
	c.JSON(http.StatusOK, version.Current())
}

// Health answers liveness probes.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
