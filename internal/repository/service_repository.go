package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/catalog"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormServiceRepository implements ServiceRepository using GORM.
type GormServiceRepository struct {
	db *gorm.DB
}

func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

func (r *GormServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	var model ServiceModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Service", id.String())
		}
		return nil, fmt.Errorf("failed to find service: %w", err)
	}
	return toServiceDomain(&model), nil
}

// LockByID selects the row FOR UPDATE. SQLite has no row locks and ignores
// the clause; its single writer connection serialises rating writes instead.
func (r *GormServiceRepository) LockByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	var model ServiceModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Service", id.String())
		}
		return nil, fmt.Errorf("failed to lock service: %w", err)
	}
	return toServiceDomain(&model), nil
}

func (r *GormServiceRepository) FindByUMKMID(ctx context.Context, umkmID uuid.UUID) ([]*catalog.Service, error) {
	var models []ServiceModel
	if err := r.db.WithContext(ctx).
		Where("umkm_id = ?", umkmID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list UMKM services: %w", err)
	}
	return toServiceDomains(models), nil
}

// Search filters the catalog. Text matching is case-insensitive over name,
// description and category.
func (r *GormServiceRepository) Search(ctx context.Context, f catalog.SearchFilter) ([]*catalog.Service, int64, error) {
	q := r.db.WithContext(ctx).Model(&ServiceModel{})
	if text := strings.TrimSpace(strings.ToLower(f.Query)); text != "" {
		like := "%" + text + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?)", like, like, like)
	}
	if f.Category != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(f.Category))
	}
	if f.UMKMID != uuid.Nil {
		q = q.Where("umkm_id = ?", f.UMKMID)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.MinRating > 0 {
		q = q.Where("rating >= ?", f.MinRating)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count services: %w", err)
	}

	switch f.Sort {
	case catalog.SortRating:
		q = q.Order("rating DESC").Order("review_count DESC")
	case catalog.SortPriceAsc:
		q = q.Order("price ASC")
	case catalog.SortPriceDesc:
		q = q.Order("price DESC")
	default:
		q = q.Order("created_at DESC")
	}

	var models []ServiceModel
	if err := q.Offset(domain.Offset(f.Page, f.Limit)).Limit(f.Limit).Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to search services: %w", err)
	}
	return toServiceDomains(models), total, nil
}

func (r *GormServiceRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.WithContext(ctx).Model(&ServiceModel{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *GormServiceRepository) Save(ctx context.Context, s *catalog.Service) error {
	if err := r.db.WithContext(ctx).Create(toServiceModel(s)).Error; err != nil {
		return fmt.Errorf("failed to save service: %w", err)
	}
	return nil
}

// Update writes the editable columns only, guarded by version.
func (r *GormServiceRepository) Update(ctx context.Context, s *catalog.Service) error {
	previousVersion := s.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&ServiceModel{}).
		Where("id = ? AND version = ?", s.ID(), previousVersion).
		Updates(map[string]interface{}{
			"name":        s.Name(),
			"description": s.Description(),
			"price":       s.Price(),
			"category":    s.Category(),
			"version":     s.Version(),
			"updated_at":  s.UpdatedAt(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update service: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("service was modified by another transaction")
	}
	return nil
}

// SetRating overwrites the derived caches. Version is not bumped.
func (r *GormServiceRepository) SetRating(ctx context.Context, id uuid.UUID, rating float64, reviewCount int64) error {
	result := r.db.WithContext(ctx).
		Model(&ServiceModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":       rating,
			"review_count": reviewCount,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to set service rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Service", id.String())
	}
	return nil
}

func (r *GormServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ServiceModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}

func (r *GormServiceRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&ServiceModel{}).Order("created_at").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list service IDs: %w", err)
	}
	return ids, nil
}

// --- Conversions ---

func toServiceModel(s *catalog.Service) *ServiceModel {
	return &ServiceModel{
		ID:          s.ID(),
		UMKMID:      s.UMKMID(),
		Name:        s.Name(),
		Description: s.Description(),
		Price:       s.Price(),
		Category:    s.Category(),
		Rating:      s.Rating(),
		ReviewCount: s.ReviewCount(),
		Version:     s.Version(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
}

func toServiceDomain(m *ServiceModel) *catalog.Service {
	return catalog.Reconstruct(
		m.ID, m.UMKMID,
		m.Name, m.Description,
		m.Price,
		m.Category,
		m.Rating,
		m.ReviewCount,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}

func toServiceDomains(models []ServiceModel) []*catalog.Service {
	services := make([]*catalog.Service, len(models))
	for i := range models {
		services[i] = toServiceDomain(&models[i])
	}
	return services
}
