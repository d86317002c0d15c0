package application

import (
	"context"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	bookingDomain "github.com/JasaIn/service-booking/internal/domain/booking"
	"github.com/JasaIn/service-booking/internal/domain/promotion"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreatePromotionRequest is the request DTO for a new promotion. Exactly one
// of DiscountPercentage and DiscountAmount must be set.
type CreatePromotionRequest struct {
	Title              string           `json:"title" binding:"required"`
	Description        string           `json:"description"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount"`
	StartDate          string           `json:"start_date" binding:"required"`
	EndDate            string           `json:"end_date" binding:"required"`
}

// UpdatePromotionRequest edits a promotion. Nil fields are left unchanged;
// setting either discount field replaces the whole discount.
type UpdatePromotionRequest struct {
	Title              *string          `json:"title"`
	Description        *string          `json:"description"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount"`
	StartDate          *string          `json:"start_date"`
	EndDate            *string          `json:"end_date"`
	IsActive           *bool            `json:"is_active"`
}

// PromotionDTO is the API response representation of a promotion.
type PromotionDTO struct {
	ID                 uuid.UUID        `json:"id"`
	UMKMID             uuid.UUID        `json:"umkm_id"`
	Title              string           `json:"title"`
	Description        string           `json:"description,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount,omitempty"`
	StartDate          time.Time        `json:"start_date"`
	EndDate            time.Time        `json:"end_date"`
	IsActive           bool             `json:"is_active"`
	Version            int64            `json:"version"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// PromotionService manages UMKM promotions and lists the running ones to
// customers.
type PromotionService struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewPromotionService creates a new PromotionService.
func NewPromotionService(store Store, logger *zap.Logger) *PromotionService {
	return &PromotionService{store: store, logger: logger, now: time.Now}
}

// WithClock replaces the time source.
func (s *PromotionService) WithClock(now func() time.Time) *PromotionService {
	s.now = now
	return s
}

func parsePromotionDate(field, value string) (time.Time, error) {
	t, err := bookingDomain.ParseBookingDate(value)
	if err != nil {
		return time.Time{}, domain.NewValidationError("invalid " + field)
	}
	return t, nil
}

// CreatePromotion adds an active promotion for umkmID.
func (s *PromotionService) CreatePromotion(ctx context.Context, umkmID uuid.UUID, req CreatePromotionRequest) (*PromotionDTO, error) {
	start, err := parsePromotionDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parsePromotionDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}

	repos := s.store.Repositories()
	if err := ensureUMKM(ctx, repos, umkmID); err != nil {
		return nil, err
	}

	discount := promotion.Discount{Percentage: req.DiscountPercentage, Amount: req.DiscountAmount}
	p, err := promotion.NewPromotion(umkmID, req.Title, req.Description, discount, start, end, s.now())
	if err != nil {
		return nil, err
	}
	if err := repos.Promotions().Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("promotion created",
		zap.String("promotion_id", p.ID().String()),
		zap.String("umkm_id", umkmID.String()),
	)
	result := toPromotionDTO(p)
	return &result, nil
}

// ListPromotions returns every promotion of umkmID, for its owner.
func (s *PromotionService) ListPromotions(ctx context.Context, umkmID uuid.UUID) ([]PromotionDTO, error) {
	promotions, err := s.store.Repositories().Promotions().FindByUMKMID(ctx, umkmID)
	if err != nil {
		return nil, err
	}
	return toPromotionDTOs(promotions), nil
}

// RunningPromotions returns the promotions of umkmID that customers can see
// today.
func (s *PromotionService) RunningPromotions(ctx context.Context, umkmID uuid.UUID) ([]PromotionDTO, error) {
	promotions, err := s.store.Repositories().Promotions().FindRunning(ctx, umkmID, s.now())
	if err != nil {
		return nil, err
	}
	return toPromotionDTOs(promotions), nil
}

// UpdatePromotion edits a promotion owned by umkmID.
func (s *PromotionService) UpdatePromotion(ctx context.Context, umkmID, promotionID uuid.UUID, req UpdatePromotionRequest) (*PromotionDTO, error) {
	var start, end *time.Time
	if req.StartDate != nil {
		t, err := parsePromotionDate("start_date", *req.StartDate)
		if err != nil {
			return nil, err
		}
		start = &t
	}
	if req.EndDate != nil {
		t, err := parsePromotionDate("end_date", *req.EndDate)
		if err != nil {
			return nil, err
		}
		end = &t
	}
	var discount *promotion.Discount
	if req.DiscountPercentage != nil || req.DiscountAmount != nil {
		discount = &promotion.Discount{Percentage: req.DiscountPercentage, Amount: req.DiscountAmount}
	}

	repos := s.store.Repositories()
	p, err := repos.Promotions().FindByID(ctx, promotionID)
	if err != nil {
		return nil, err
	}
	if !p.IsOwnedBy(umkmID) {
		return nil, domain.NewForbiddenError("you do not own this promotion")
	}
	if err := p.Update(req.Title, req.Description, discount, start, end, req.IsActive, s.now()); err != nil {
		return nil, err
	}
	if err := repos.Promotions().Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("promotion updated",
		zap.String("promotion_id", p.ID().String()),
		zap.Bool("active", p.IsActive()),
	)
	result := toPromotionDTO(p)
	return &result, nil
}

// DeletePromotion removes a promotion owned by umkmID.
func (s *PromotionService) DeletePromotion(ctx context.Context, umkmID, promotionID uuid.UUID) error {
	return s.store.WithinTransaction(ctx, func(ctx context.Context, repos Repositories) error {
		p, err := repos.Promotions().FindByID(ctx, promotionID)
		if err != nil {
			return err
		}
		if !p.IsOwnedBy(umkmID) {
			return domain.NewForbiddenError("you do not own this promotion")
		}
		if err := repos.Promotions().Delete(ctx, promotionID); err != nil {
			return err
		}
		s.logger.Info("promotion deleted", zap.String("promotion_id", promotionID.String()))
		return nil
	})
}

func toPromotionDTO(p *promotion.Promotion) PromotionDTO {
	d := p.Discount()
	return PromotionDTO{
		ID:                 p.ID(),
		UMKMID:             p.UMKMID(),
		Title:              p.Title(),
		Description:        p.Description(),
		DiscountPercentage: d.Percentage,
		DiscountAmount:     d.Amount,
		StartDate:          p.StartDate(),
		EndDate:            p.EndDate(),
		IsActive:           p.IsActive(),
		Version:            p.Version(),
		CreatedAt:          p.CreatedAt(),
		UpdatedAt:          p.UpdatedAt(),
	}
}

func toPromotionDTOs(promotions []*promotion.Promotion) []PromotionDTO {
	dtos := make([]PromotionDTO, len(promotions))
	for i, p := range promotions {
		dtos[i] = toPromotionDTO(p)
	}
	return dtos
}
