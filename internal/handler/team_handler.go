package handler

import (
	"github.com/JasaIn/service-booking/internal/application"
	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/middleware"
	"github.com/JasaIn/service-booking/internal/common/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TeamHandler handles HTTP requests for an UMKM's team members.
type TeamHandler struct {
	service *application.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(service *application.TeamService) *TeamHandler {
	return &TeamHandler{service: service}
}

// RegisterRoutes registers team routes. All of them act on the caller's own team.
func (h *TeamHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	members := r.Group("/api/v1/team")
	members.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleUMKM))
	{
		members.GET("", h.ListMembers)
		members.POST("", h.AddMember)
		members.GET("/:id", h.GetMember)
		members.PUT("/:id", h.UpdateMember)
		members.DELETE("/:id", h.RemoveMember)
	}
}

// AddMember handles POST /api/v1/team.
func (h *TeamHandler) AddMember(c *gin.Context) {
	umkmID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.CreateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddMember(c.Request.Context(), umkmID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListMembers handles GET /api/v1/team?status=.
func (h *TeamHandler) ListMembers(c *gin.Context) {
	umkmID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.ListMembers(c.Request.Context(), umkmID, c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetMember handles GET /api/v1/team/:id.
func (h *TeamHandler) GetMember(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid member ID")
		return
	}
	umkmID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.GetMember(c.Request.Context(), umkmID, memberID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateMember handles PUT /api/v1/team/:id.
func (h *TeamHandler) UpdateMember(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid member ID")
		return
	}
	umkmID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.UpdateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateMember(c.Request.Context(), umkmID, memberID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RemoveMember handles DELETE /api/v1/team/:id.
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	memberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid member ID")
		return
	}
	umkmID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	if err := h.service.RemoveMember(c.Request.Context(), umkmID, memberID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
