package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/avolkoff/orderpanel/internal/server/http/handlers"
	"github.com/avolkoff/orderpanel/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PanelFacade, pageSize, maxPageSize int, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade, pageSize, maxPageSize)

	api := engine.Group("/api")
	admin := api.Group("/admin")
	admin.POST("/register", authHandler.Register)
	admin.POST("/login", authHandler.Login)

	adminAuth := admin.Group("")
	adminAuth.Use(middleware.AuthRequired(facade))
	adminAuth.GET("/orders", orderHandler.List)
	adminAuth.GET("/orders/counts", orderHandler.Counts)
	adminAuth.GET("/orders/:id", orderHandler.Get)
	adminAuth.GET("/orders/:id/history", orderHandler.History)
	adminAuth.POST("/orders/:id/status", orderHandler.UpdateStatus)

	return engine
}
