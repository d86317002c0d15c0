package handler

import (
	"github.com/JasaIn/service-booking/internal/application"
	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/middleware"
	"github.com/JasaIn/service-booking/internal/common/response"
	"github.com/gin-gonic/gin"
)

// AnalyticsHandler serves the UMKM dashboard.
type AnalyticsHandler struct {
	service *application.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(service *application.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// RegisterRoutes registers analytics routes.
func (h *AnalyticsHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	analytics := r.Group("/api/v1/analytics")
	analytics.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleUMKM))
	{
		analytics.GET("/dashboard", h.Dashboard)
	}
}

// Dashboard handles GET /api/v1/analytics/dashboard?period=week|month|quarter|year.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	umkmID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.GetDashboard(c.Request.Context(), umkmID, c.Query("period"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
