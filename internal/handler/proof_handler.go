package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/JasaIn/service-booking/internal/application"
	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/middleware"
	"github.com/JasaIn/service-booking/internal/common/response"
	"github.com/JasaIn/service-booking/internal/domain/proof"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProofHandler handles HTTP requests for payment proof uploads.
type ProofHandler struct {
	service *application.ProofService
}

// NewProofHandler creates a new ProofHandler.
func NewProofHandler(service *application.ProofService) *ProofHandler {
	return &ProofHandler{service: service}
}

// RegisterRoutes registers all proof routes.
func (h *ProofHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	proofs := r.Group("/api/v1/payments")
	proofs.Use(authMW)
	{
		proofs.POST("/:id/proofs", middleware.RequireRole(auth.RoleCustomer), h.UploadProof)
		proofs.GET("/:id/proofs", h.GetPaymentProofs)
	}
}

// UploadProof handles POST /api/v1/payments/:id/proofs as multipart form
// data with a "file" part. The content type is sniffed, not trusted.
func (h *ProofHandler) UploadProof(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid payment ID")
		return
	}
	customerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, proof.MaxSize+1<<20)
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if fh.Size > proof.MaxSize {
		response.BadRequest(c, fmt.Sprintf("file exceeds %d bytes", proof.MaxSize))
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, "unreadable file")
		return
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		response.BadRequest(c, "unreadable file")
		return
	}
	head = head[:n]
	contentType := mimetype.Detect(head).String()
	body := io.MultiReader(bytes.NewReader(head), f)

	result, err := h.service.UploadProof(c.Request.Context(), customerID, paymentID, contentType, fh.Size, body)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetPaymentProofs handles GET /api/v1/payments/:id/proofs.
func (h *ProofHandler) GetPaymentProofs(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid payment ID")
		return
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	result, err := h.service.GetPaymentProofs(c.Request.Context(), userID, paymentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
