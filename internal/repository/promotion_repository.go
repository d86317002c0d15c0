package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/promotion"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPromotionRepository implements PromotionRepository using GORM.
type GormPromotionRepository struct {
	db *gorm.DB
}

func NewGormPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

func (r *GormPromotionRepository) FindByID(ctx context.Context, id uuid.UUID) (*promotion.Promotion, error) {
	var model PromotionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Promotion", id.String())
		}
		return nil, fmt.Errorf("failed to find promotion: %w", err)
	}
	return toPromotionDomain(&model), nil
}

func (r *GormPromotionRepository) FindByUMKMID(ctx context.Context, umkmID uuid.UUID) ([]*promotion.Promotion, error) {
	var models []PromotionModel
	if err := r.db.WithContext(ctx).
		Where("umkm_id = ?", umkmID).
		Order("start_date DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	return toPromotionDomains(models), nil
}

// FindRunning narrows by is_active in SQL and by Jakarta calendar day in Go.
func (r *GormPromotionRepository) FindRunning(ctx context.Context, umkmID uuid.UUID, at time.Time) ([]*promotion.Promotion, error) {
	var models []PromotionModel
	if err := r.db.WithContext(ctx).
		Where("umkm_id = ? AND is_active = ?", umkmID, true).
		Order("end_date ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list running promotions: %w", err)
	}

	running := make([]*promotion.Promotion, 0, len(models))
	for _, p := range toPromotionDomains(models) {
		if p.IsRunningAt(at) {
			running = append(running, p)
		}
	}
	return running, nil
}

func (r *GormPromotionRepository) Save(ctx context.Context, p *promotion.Promotion) error {
	if err := r.db.WithContext(ctx).Create(toPromotionModel(p)).Error; err != nil {
		return fmt.Errorf("failed to save promotion: %w", err)
	}
	return nil
}

func (r *GormPromotionRepository) Update(ctx context.Context, p *promotion.Promotion) error {
	previousVersion := p.Version() - 1
	d := p.Discount()

	result := r.db.WithContext(ctx).
		Model(&PromotionModel{}).
		Where("id = ? AND version = ?", p.ID(), previousVersion).
		Updates(map[string]interface{}{
			"title":               p.Title(),
			"description":         p.Description(),
			"discount_percentage": d.Percentage,
			"discount_amount":     d.Amount,
			"start_date":          p.StartDate(),
			"end_date":            p.EndDate(),
			"is_active":           p.IsActive(),
			"version":             p.Version(),
			"updated_at":          p.UpdatedAt(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update promotion: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("promotion was modified by another transaction")
	}
	return nil
}

func (r *GormPromotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PromotionModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete promotion: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Promotion", id.String())
	}
	return nil
}

func toPromotionModel(p *promotion.Promotion) *PromotionModel {
	d := p.Discount()
	return &PromotionModel{
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

func toPromotionDomain(m *PromotionModel) *promotion.Promotion {
	return promotion.Reconstruct(
		m.ID, m.UMKMID,
		m.Title, m.Description,
		promotion.Discount{Percentage: m.DiscountPercentage, Amount: m.DiscountAmount},
		m.StartDate, m.EndDate,
		m.IsActive,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}

func toPromotionDomains(models []PromotionModel) []*promotion.Promotion {
	promotions := make([]*promotion.Promotion, len(models))
	for i := range models {
		promotions[i] = toPromotionDomain(&models[i])
	}
	return promotions
}
