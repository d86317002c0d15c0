package handler

import (
	"github.com/JasaIn/service-booking/internal/application"
	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/middleware"
	"github.com/JasaIn/service-booking/internal/common/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChatHandler handles customer-UMKM conversations.
type ChatHandler struct {
	service *application.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(service *application.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// RegisterRoutes registers chat routes.
func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	chats := r.Group("/api/v1/chats")
	chats.Use(middleware.AuthMiddleware(jwtManager))
	{
		chats.GET("", h.ListChats)
		chats.POST("", middleware.RequireRole(auth.RoleCustomer), h.GetOrCreateChat)
		chats.GET("/:id/messages", h.ListMessages)
		chats.POST("/:id/messages", h.SendMessage)
		chats.POST("/:id/read", h.MarkRead)
	}
}

// GetOrCreateChat handles POST /api/v1/chats with {"umkm_id": "..."}.
func (h *ChatHandler) GetOrCreateChat(c *gin.Context) {
	customerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req struct {
		UMKMID uuid.UUID `json:"umkm_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.GetOrCreateChat(c.Request.Context(), customerID, req.UMKMID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListChats handles GET /api/v1/chats.
func (h *ChatHandler) ListChats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.ListChats(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SendMessage handles POST /api/v1/chats/:id/messages.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid chat ID")
		return
	}
	senderID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SendMessage(c.Request.Context(), chatID, senderID, req.Body)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListMessages handles GET /api/v1/chats/:id/messages.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid chat ID")
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}
	page, limit := parsePagination(c)

	result, err := h.service.ListMessages(c.Request.Context(), chatID, userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// MarkRead handles POST /api/v1/chats/:id/read.
func (h *ChatHandler) MarkRead(c *gin.Context) {
	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid chat ID")
		return
	}
	readerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	marked, err := h.service.MarkRead(c.Request.Context(), chatID, readerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"marked": marked})
}
