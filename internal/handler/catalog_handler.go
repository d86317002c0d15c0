package handler

import (
	"github.com/JasaIn/service-booking/internal/application"
	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/middleware"
	"github.com/JasaIn/service-booking/internal/common/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler handles HTTP requests for UMKM service listings.
type CatalogHandler struct {
	service *application.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *application.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers catalog routes. Browsing is public; writes need an UMKM token.
func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	umkmRole := middleware.RequireRole(auth.RoleUMKM)

	services := r.Group("/api/v1/services")
	{
		services.GET("", h.SearchServices)
		services.GET("/categories", h.Categories)
		services.GET("/:id", h.GetService)
		services.POST("", authMW, umkmRole, h.CreateService)
		services.PUT("/:id", authMW, umkmRole, h.UpdateService)
		services.DELETE("/:id", authMW, umkmRole, h.DeleteService)
	}

	r.GET("/api/v1/umkm/:id/services", h.GetUMKMServices)
}

// SearchServices handles GET /api/v1/services.
func (h *CatalogHandler) SearchServices(c *gin.Context) {
	var q application.SearchServicesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	page, limit := parsePagination(c)

	result, err := h.service.SearchServices(c.Request.Context(), q, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// Categories handles GET /api/v1/services/categories.
func (h *CatalogHandler) Categories(c *gin.Context) {
	result, err := h.service.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetService handles GET /api/v1/services/:id.
func (h *CatalogHandler) GetService(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid service ID")
		return
	}

	result, err := h.service.GetService(c.Request.Context(), serviceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetUMKMServices handles GET /api/v1/umkm/:id/services.
func (h *CatalogHandler) GetUMKMServices(c *gin.Context) {
	umkmID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UMKM ID")
		return
	}

	result, err := h.service.GetUMKMServices(c.Request.Context(), umkmID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreateService handles POST /api/v1/services.
func (h *CatalogHandler) CreateService(c *gin.Context) {
	umkmID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateService(c.Request.Context(), umkmID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateService handles PUT /api/v1/services/:id.
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid service ID")
		return
	}
	umkmID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateService(c.Request.Context(), umkmID, serviceID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteService handles DELETE /api/v1/services/:id.
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid service ID")
		return
	}
	umkmID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	if err := h.service.DeleteService(c.Request.Context(), umkmID, serviceID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
