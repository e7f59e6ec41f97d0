package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/customeros/bookgraph/interfaces"
)

// HealthCheck provides a simple health check endpoint
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Status returns the current number of records in the catalog
func Status(catalog interfaces.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := catalog.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"catalog": stats,
		})
	}
}
