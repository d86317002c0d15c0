package handler

import (
	"github.com/JasaIn/service-booking/internal/application"
	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/middleware"
	"github.com/JasaIn/service-booking/internal/common/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ScheduleHandler handles HTTP requests for UMKM opening hours.
type ScheduleHandler struct {
	service *application.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(service *application.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// RegisterRoutes registers schedule routes. Anyone can read an UMKM's hours;
// only the UMKM edits them.
func (h *ScheduleHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	schedules := r.Group("/api/v1/schedules")
	schedules.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleUMKM))
	{
		schedules.GET("", h.ListMySchedules)
		schedules.POST("", h.CreateSchedule)
		schedules.PUT("/:id", h.UpdateSchedule)
		schedules.DELETE("/:id", h.DeleteSchedule)
	}

	r.GET("/api/v1/umkm/:id/schedules", h.GetUMKMSchedules)
}

// CreateSchedule handles POST /api/v1/schedules.
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	umkmID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateSchedule(c.Request.Context(), umkmID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListMySchedules handles GET /api/v1/schedules.
func (h *ScheduleHandler) ListMySchedules(c *gin.Context) {
	umkmID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.ListSchedules(c.Request.Context(), umkmID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetUMKMSchedules handles GET /api/v1/umkm/:id/schedules.
func (h *ScheduleHandler) GetUMKMSchedules(c *gin.Context) {
	umkmID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UMKM ID")
		return
	}

	result, err := h.service.ListSchedules(c.Request.Context(), umkmID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateSchedule handles PUT /api/v1/schedules/:id.
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid schedule ID")
		return
	}
	umkmID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateSchedule(c.Request.Context(), umkmID, scheduleID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteSchedule handles DELETE /api/v1/schedules/:id.
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid schedule ID")
		return
	}
	umkmID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	if err := h.service.DeleteSchedule(c.Request.Context(), umkmID, scheduleID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
