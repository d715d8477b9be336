package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avolkoff/orderpanel/internal/server/http/middleware"
)

// CurrentAdminID extracts the authenticated admin identifier from context.
func CurrentAdminID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.AdminIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// currentActor renders the acting admin as a history actor identifier.
// An empty string lets the engine fall back to the system marker.
func currentActor(c *gin.Context) string {
	id := CurrentAdminID(c)
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
