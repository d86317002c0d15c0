package proof

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/google/uuid"
)

// MaxSize is the largest accepted upload.
const MaxSize = 10 << 20

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// ExtensionFor returns the file extension for an accepted content type.
func ExtensionFor(contentType string) (string, bool) {
	ext, ok := extensions[strings.ToLower(contentType)]
	return ext, ok
}

// PaymentProof links an uploaded transfer receipt to a payment.
type PaymentProof struct {
	id          uuid.UUID
	paymentID   uuid.UUID
	uploaderID  uuid.UUID
	objectKey   string
	contentType string
	size        int64
	createdAt   time.Time
}

// NewPaymentProof validates the upload and derives its object key.
func NewPaymentProof(paymentID, uploaderID uuid.UUID, contentType string, size int64) (*PaymentProof, error) {
	ext, ok := ExtensionFor(contentType)
	if !ok {
		return nil, domain.NewValidationError(fmt.Sprintf("unsupported content type: %s", contentType))
	}
	if size <= 0 || size > MaxSize {
		return nil, domain.NewValidationError("payment proof must be between 1 byte and 10MB")
	}

	id := uuid.New()
	return &PaymentProof{
		id:          id,
		paymentID:   paymentID,
		uploaderID:  uploaderID,
		objectKey:   path.Join("payment-proofs", paymentID.String(), id.String()+ext),
		contentType: strings.ToLower(contentType),
		size:        size,
		createdAt:   time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a PaymentProof from persistence.
func Reconstruct(id, paymentID, uploaderID uuid.UUID, objectKey, contentType string, size int64, createdAt time.Time) *PaymentProof {
	return &PaymentProof{
		id:          id,
		paymentID:   paymentID,
		uploaderID:  uploaderID,
		objectKey:   objectKey,
		contentType: contentType,
		size:        size,
		createdAt:   createdAt,
	}
}

// Getters.
func (p *PaymentProof) ID() uuid.UUID         { return p.id }
func (p *PaymentProof) PaymentID() uuid.UUID  { return p.paymentID }
func (p *PaymentProof) UploaderID() uuid.UUID { return p.uploaderID }
func (p *PaymentProof) ObjectKey() string     { return p.objectKey }
func (p *PaymentProof) ContentType() string   { return p.contentType }
func (p *PaymentProof) Size() int64           { return p.size }
func (p *PaymentProof) CreatedAt() time.Time  { return p.createdAt }
