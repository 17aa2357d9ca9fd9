package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopdesk-backend/internal/shared/middleware"
	"shopdesk-backend/internal/shared/response"
	"shopdesk-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		authed := v1.Group("", middleware.TenantAuth(c.JWTManager))
		{
			setupInventoryRoutes(authed, c)
			setupAlertRoutes(authed, c)
			setupReorderRoutes(authed, c)
			setupPurchasingRoutes(authed, c)
			setupAnalyticsRoutes(authed, c)
		}
	}

	return router
}

func setupInventoryRoutes(g *gin.RouterGroup, c *container.Container) {
	items := g.Group("/inventory")
	{
		items.GET("/items", c.InventoryHandler.GetSnapshot)
		items.POST("/items", c.InventoryHandler.CreateItem)
		items.PUT("/items/:id", c.InventoryHandler.UpdateItem)
		items.DELETE("/items/:id", c.InventoryHandler.DeleteItem)
		items.POST("/items/refetch", c.InventoryHandler.RefetchSnapshot)
		items.POST("/movements", c.InventoryHandler.RecordMovement)
	}
}

func setupAlertRoutes(g *gin.RouterGroup, c *container.Container) {
	alerts := g.Group("/alerts")
	{
		alerts.GET("", c.AlertHandler.GetAlerts)
		alerts.GET("/insights", c.AlertHandler.GetInsights)
		alerts.POST("/:id/dismiss", c.AlertHandler.DismissAlert)
		alerts.POST("/restore", c.AlertHandler.RestoreDismissed)
	}
}

func setupReorderRoutes(g *gin.RouterGroup, c *container.Container) {
	reorder := g.Group("/reorder")
	{
		reorder.GET("/rules", c.ReorderHandler.ListRules)
		reorder.PUT("/rules", c.ReorderHandler.SaveRule)
		reorder.POST("/rules/refetch", c.ReorderHandler.RefetchRules)
		reorder.DELETE("/rules/:itemId", c.ReorderHandler.DeleteRule)
		reorder.POST("/execute", c.ReorderHandler.Execute)
	}
}

func setupPurchasingRoutes(g *gin.RouterGroup, c *container.Container) {
	orders := g.Group("/purchase-orders")
	{
		orders.GET("", c.PurchasingHandler.ListOrders)
		orders.GET("/:id", c.PurchasingHandler.GetOrder)
		orders.POST("/:id/submit", c.PurchasingHandler.SubmitOrder)
	}
}

func setupAnalyticsRoutes(g *gin.RouterGroup, c *container.Container) {
	g.GET("/analytics", c.AnalyticsHandler.GetAnalytics)
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := gin.H{"database": "up", "cache": "up"}
		code := http.StatusOK

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status["database"] = "down"
			code = http.StatusServiceUnavailable
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			status["cache"] = "degraded"
		}

		if code == http.StatusOK {
			response.Success(ctx, code, "healthy", status)
			return
		}
		response.Error(ctx, code, "unhealthy", "")
	}
}
