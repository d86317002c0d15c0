package promotion

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PromotionRepository defines persistence operations for promotions.
type PromotionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Promotion, error)
	FindByUMKMID(ctx context.Context, umkmID uuid.UUID) ([]*Promotion, error)
	// FindRunning lists the UMKM's active promotions whose period covers at.
	FindRunning(ctx context.Context, umkmID uuid.UUID, at time.Time) ([]*Promotion, error)
	Save(ctx context.Context, p *Promotion) error
	Update(ctx context.Context, p *Promotion) error
	Delete(ctx context.Context, id uuid.UUID) error
}
