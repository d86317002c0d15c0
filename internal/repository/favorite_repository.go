package repository

import (
	"context"
	"fmt"

	"github.com/JasaIn/service-booking/internal/domain/favorite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFavoriteRepository implements FavoriteRepository using GORM.
type GormFavoriteRepository struct {
	db *gorm.DB
}

func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

func (r *GormFavoriteRepository) Delete(ctx context.Context, customerID, umkmID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("customer_id = ? AND umkm_id = ?", customerID, umkmID).
		Delete(&FavoriteModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete favorite: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *GormFavoriteRepository) Insert(ctx context.Context, fav favorite.Favorite) error {
	model := FavoriteModel{CustomerID: fav.CustomerID, UMKMID: fav.UMKMID, CreatedAt: fav.CreatedAt}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to insert favorite: %w", err)
	}
	return nil
}

func (r *GormFavoriteRepository) Exists(ctx context.Context, customerID, umkmID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&FavoriteModel{}).
		Where("customer_id = ? AND umkm_id = ?", customerID, umkmID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

func (r *GormFavoriteRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]favorite.Favorite, error) {
	var models []FavoriteModel
	if err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	favs := make([]favorite.Favorite, len(models))
	for i, m := range models {
		favs[i] = favorite.Favorite{CustomerID: m.CustomerID, UMKMID: m.UMKMID, CreatedAt: m.CreatedAt}
	}
	return favs, nil
}

func (r *GormFavoriteRepository) CountByUMKMID(ctx context.Context, umkmID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&FavoriteModel{}).Where("umkm_id = ?", umkmID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}
