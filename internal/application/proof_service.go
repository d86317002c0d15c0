package application

import (
	"context"
	"io"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/proof"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectStorage stores uploaded files and hands out temporary read URLs.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	PresignGet(ctx context.Context, key string) (string, error)
}

// ProofDTO is the API response representation of a payment proof.
type ProofDTO struct {
	ID          uuid.UUID `json:"id"`
	PaymentID   uuid.UUID `json:"payment_id"`
	UploaderID  uuid.UUID `json:"uploader_id"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProofService handles transfer receipts attached to non-cash payments.
type ProofService struct {
	store   Store
	storage ObjectStorage
	logger  *zap.Logger
}

// NewProofService creates a new ProofService.
func NewProofService(store Store, storage ObjectStorage, logger *zap.Logger) *ProofService {
	return &ProofService{store: store, storage: storage, logger: logger}
}

// UploadProof stores the receipt in object storage and links it to the payment.
func (s *ProofService) UploadProof(ctx context.Context, uploaderID, paymentID uuid.UUID, contentType string, size int64, body io.Reader) (*ProofDTO, error) {
	repos := s.store.Repositories()
	p, err := repos.Payments().FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	bk, err := repos.Bookings().FindByID(ctx, p.BookingID())
	if err != nil {
		return nil, err
	}
	if bk.CustomerID() != uploaderID {
		return nil, domain.NewForbiddenError("only the paying customer can upload a proof")
	}
	if p.Method().IsCash() {
		return nil, domain.NewValidationError("cash payments do not take a proof")
	}

	pp, err := proof.NewPaymentProof(paymentID, uploaderID, contentType, size)
	if err != nil {
		return nil, err
	}
	if err := s.storage.Upload(ctx, pp.ObjectKey(), pp.ContentType(), body, pp.Size()); err != nil {
		s.logger.Error("failed to upload payment proof",
			zap.String("payment_id", paymentID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if err := repos.Proofs().Save(ctx, pp); err != nil {
		s.logger.Error("payment proof uploaded but not recorded",
			zap.String("object_key", pp.ObjectKey()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("payment proof uploaded",
		zap.String("payment_id", paymentID.String()),
		zap.String("proof_id", pp.ID().String()),
	)
	result := s.toProofDTO(ctx, pp)
	return &result, nil
}

// GetPaymentProofs lists a payment's proofs with presigned URLs. Visible to
// the booking's customer and owning UMKM.
func (s *ProofService) GetPaymentProofs(ctx context.Context, userID, paymentID uuid.UUID) ([]ProofDTO, error) {
	repos := s.store.Repositories()
	p, err := repos.Payments().FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	bk, err := repos.Bookings().FindByID(ctx, p.BookingID())
	if err != nil {
		return nil, err
	}
	if err := ensureBookingVisible(ctx, repos, bk, userID); err != nil {
		return nil, err
	}

	proofs, err := repos.Proofs().FindByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	dtos := make([]ProofDTO, len(proofs))
	for i, pp := range proofs {
		dtos[i] = s.toProofDTO(ctx, pp)
	}
	return dtos, nil
}

func (s *ProofService) toProofDTO(ctx context.Context, pp *proof.PaymentProof) ProofDTO {
	dto := ProofDTO{
		ID:          pp.ID(),
		PaymentID:   pp.PaymentID(),
		UploaderID:  pp.UploaderID(),
		ContentType: pp.ContentType(),
		Size:        pp.Size(),
		CreatedAt:   pp.CreatedAt(),
	}
	url, err := s.storage.PresignGet(ctx, pp.ObjectKey())
	if err != nil {
		s.logger.Warn("failed to presign payment proof", zap.String("object_key", pp.ObjectKey()), zap.Error(err))
		return dto
	}
	dto.URL = url
	return dto
}
