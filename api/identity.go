package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Authentication lives in an upstream identity provider; by the time a
// request reaches this service the caller is identified by the X-User-ID
// header and the value is trusted opaquely.
const userIDHeader = "X-User-ID"

func requireUserID(c *gin.Context) (string, bool) {
	userID := c.GetHeader(userIDHeader)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing " + userIDHeader + " header"})
		return "", false
	}
	return userID, true
}
