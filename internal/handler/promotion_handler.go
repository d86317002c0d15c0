package handler

import (
	"github.com/JasaIn/service-booking/internal/application"
	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/middleware"
	"github.com/JasaIn/service-booking/internal/common/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PromotionHandler handles HTTP requests for UMKM promotions.
type PromotionHandler struct {
	service *application.PromotionService
}

// NewPromotionHandler creates a new PromotionHandler.
func NewPromotionHandler(service *application.PromotionService) *PromotionHandler {
	return &PromotionHandler{service: service}
}

// RegisterRoutes registers promotion routes. Customers see only running
// promotions; the owner manages all of its own.
func (h *PromotionHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	promotions := r.Group("/api/v1/promotions")
	promotions.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleUMKM))
	{
		promotions.GET("", h.ListMyPromotions)
		promotions.POST("", h.CreatePromotion)
		promotions.PUT("/:id", h.UpdatePromotion)
		promotions.DELETE("/:id", h.DeletePromotion)
	}

	r.GET("/api/v1/umkm/:id/promotions", h.GetRunningPromotions)
}

// CreatePromotion handles POST /api/v1/promotions.
func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	umkmID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreatePromotion(c.Request.Context(), umkmID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListMyPromotions handles GET /api/v1/promotions.
func (h *PromotionHandler) ListMyPromotions(c *gin.Context) {
	umkmID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.ListPromotions(c.Request.Context(), umkmID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetRunningPromotions handles GET /api/v1/umkm/:id/promotions.
func (h *PromotionHandler) GetRunningPromotions(c *gin.Context) {
	umkmID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UMKM ID")
		return
	}

	result, err := h.service.RunningPromotions(c.Request.Context(), umkmID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdatePromotion handles PUT /api/v1/promotions/:id.
func (h *PromotionHandler) UpdatePromotion(c *gin.Context) {
	promotionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid promotion ID")
		return
	}
	umkmID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdatePromotion(c.Request.Context(), umkmID, promotionID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeletePromotion handles DELETE /api/v1/promotions/:id.
func (h *PromotionHandler) DeletePromotion(c *gin.Context) {
	promotionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid promotion ID")
		return
	}
	umkmID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	if err := h.service.DeletePromotion(c.Request.Context(), umkmID, promotionID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
