package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// RegisterRoutes registers all API routes. The meal endpoint is served at
// both /log/ and /api/v1/log. Extra middleware (rate limiting) only guards
// the meal routes.
func RegisterRoutes(router *gin.Engine, analyzer MealAnalyzer, mealMiddleware ...gin.HandlerFunc) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	mealHandler := NewMealHandler(analyzer)

	root := router.Group("/", mealMiddleware...)
	root.POST("/log/", mealHandler.LogMeal)

	v1 := router.Group("/api/v1", mealMiddleware...)
	mealHandler.RegisterRoutes(v1)
}
