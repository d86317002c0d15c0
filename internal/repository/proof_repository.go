package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/proof"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProofRepository implements ProofRepository using GORM.
type GormProofRepository struct {
	db *gorm.DB
}

// NewGormProofRepository creates a new GormProofRepository.
func NewGormProofRepository(db *gorm.DB) *GormProofRepository {
	return &GormProofRepository{db: db}
}

// Save persists a new payment proof.
func (r *GormProofRepository) Save(ctx context.Context, p *proof.PaymentProof) error {
	model := toProofModel(p)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save payment proof: %w", err)
	}
	return nil
}

// FindByPaymentID returns all proofs for a payment.
func (r *GormProofRepository) FindByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]*proof.PaymentProof, error) {
	var models []PaymentProofModel
	if err := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list payment proofs: %w", err)
	}

	proofs := make([]*proof.PaymentProof, len(models))
	for i := range models {
		proofs[i] = toProofDomain(&models[i])
	}
	return proofs, nil
}

// FindByID returns a single proof by ID.
func (r *GormProofRepository) FindByID(ctx context.Context, id uuid.UUID) (*proof.PaymentProof, error) {
	var model PaymentProofModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("PaymentProof", id.String())
		}
		return nil, fmt.Errorf("failed to find payment proof: %w", err)
	}
	return toProofDomain(&model), nil
}

func toProofModel(p *proof.PaymentProof) PaymentProofModel {
	return PaymentProofModel{
		ID:          p.ID(),
		PaymentID:   p.PaymentID(),
		UploaderID:  p.UploaderID(),
		ObjectKey:   p.ObjectKey(),
		ContentType: p.ContentType(),
		Size:        p.Size(),
		CreatedAt:   p.CreatedAt(),
	}
}

func toProofDomain(m *PaymentProofModel) *proof.PaymentProof {
	return proof.Reconstruct(
		m.ID,
		m.PaymentID,
		m.UploaderID,
		m.ObjectKey,
		m.ContentType,
		m.Size,
		m.CreatedAt,
	)
}
