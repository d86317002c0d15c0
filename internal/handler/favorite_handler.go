package handler

import (
	"github.com/JasaIn/service-booking/internal/application"
	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/middleware"
	"github.com/JasaIn/service-booking/internal/common/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FavoriteHandler handles a customer's saved UMKMs.
type FavoriteHandler struct {
	service *application.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(service *application.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// RegisterRoutes registers favorite routes.
func (h *FavoriteHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	favorites := r.Group("/api/v1/favorites")
	favorites.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleCustomer))
	{
		favorites.GET("", h.ListFavorites)
		favorites.GET("/:umkmId", h.IsFavorite)
		favorites.POST("/:umkmId/toggle", h.ToggleFavorite)
	}
}

// ToggleFavorite handles POST /api/v1/favorites/:umkmId/toggle.
func (h *FavoriteHandler) ToggleFavorite(c *gin.Context) {
	umkmID, err := uuid.Parse(c.Param("umkmId"))
	if err != nil {
		response.BadRequest(c, "invalid UMKM ID")
		return
	}
	customerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.ToggleFavorite(c.Request.Context(), customerID, umkmID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// IsFavorite handles GET /api/v1/favorites/:umkmId.
func (h *FavoriteHandler) IsFavorite(c *gin.Context) {
	umkmID, err := uuid.Parse(c.Param("umkmId"))
	if err != nil {
		response.BadRequest(c, "invalid UMKM ID")
		return
	}
	customerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	favorited, err := h.service.IsFavorite(c.Request.Context(), customerID, umkmID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, application.ToggleResultDTO{UMKMID: umkmID, Favorited: favorited})
}

// ListFavorites handles GET /api/v1/favorites.
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	customerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.ListFavorites(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
