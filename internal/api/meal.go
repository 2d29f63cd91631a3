package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/healthcoach/backend/internal/middleware"
	"github.com/pageza/healthcoach/backend/internal/nutrition"
	"github.com/pageza/healthcoach/backend/internal/pipeline"
	"github.com/pageza/healthcoach/backend/internal/types"
)

// MealAnalyzer runs the meal pipeline for one request
type MealAnalyzer interface {
	Run(ctx context.Context, req types.MealLogRequest) (pipeline.MealAnalysis, error)
}

// MealHandler serves the meal logging endpoint
type MealHandler struct {
	analyzer MealAnalyzer
}

// NewMealHandler creates a new meal handler
func NewMealHandler(analyzer MealAnalyzer) *MealHandler {
	return &MealHandler{analyzer: analyzer}
}

// RegisterRoutes registers the meal routes on router
func (h *MealHandler) RegisterRoutes(router gin.IRoutes) {
	router.POST("/log", h.LogMeal)
}

// LogMeal analyzes a logged meal and returns its nutrition summary,
// glucose spike risk and goal feedback
func (h *MealHandler) LogMeal(c *gin.Context) {
	var req types.MealLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	analysis, err := h.analyzer.Run(c.Request.Context(), req)
	if err != nil {
		status := StatusFor(err)
		if status >= http.StatusInternalServerError {
			slog.ErrorContext(c.Request.Context(), "meal analysis failed", "meal_name", req.MealName, "error", err)
		}
		c.JSON(status, middleware.ErrorResponse{Error: errorMessage(status, err)})
		return
	}

	c.JSON(http.StatusOK, analysis.Response())
}

// StatusFor maps a pipeline error to the HTTP status returned to the caller
func StatusFor(err error) int {
	var upstream *nutrition.UpstreamError
	switch {
	case nutrition.IsInvalidInput(err):
		return http.StatusBadRequest
	case errors.As(err, &upstream) && upstream.Timeout():
		return http.StatusGatewayTimeout
	case upstream != nil:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(status int, err error) string {
	switch status {
	case http.StatusBadRequest:
		return err.Error()
	case http.StatusGatewayTimeout:
		return "Nutrition service timed out"
	case http.StatusBadGateway:
		return "Nutrition service request failed"
	default:
		return "Internal Server Error"
	}
}
