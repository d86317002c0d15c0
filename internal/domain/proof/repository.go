package proof

import (
	"context"

	"github.com/google/uuid"
)

// ProofRepository defines persistence operations for payment proofs.
type ProofRepository interface {
	Save(ctx context.Context, proof *PaymentProof) error
	FindByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]*PaymentProof, error)
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentProof, error)
}
