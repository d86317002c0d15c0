package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", id.String())
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return toUserDomain(&model), nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	email = user.NormalizeEmail(email)
	var model UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", email)
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return toUserDomain(&model), nil
}

// Save inserts a user. The unique email index makes a duplicate a no-op insert.
func (r *GormUserRepository) Save(ctx context.Context, u *user.User) error {
	model := toUserModel(u)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&model)
	if result.Error != nil {
		return fmt.Errorf("failed to save user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("email is already registered")
	}
	return nil
}

func (r *GormUserRepository) UpdateProfile(ctx context.Context, u *user.User) error {
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", u.ID()).
		Updates(map[string]interface{}{
			"name":  u.Name(),
			"phone": u.Phone(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("User", u.ID().String())
	}
	return nil
}

func (r *GormUserRepository) ListUMKM(ctx context.Context, query string, page, limit int) ([]*user.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&UserModel{}).Where("role = ?", string(auth.RoleUMKM))
	if text := strings.TrimSpace(strings.ToLower(query)); text != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+text+"%")
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count UMKM accounts: %w", err)
	}

	var models []UserModel
	if err := q.Order("name ASC").Offset(domain.Offset(page, limit)).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list UMKM accounts: %w", err)
	}

	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserDomain(&models[i])
	}
	return users, total, nil
}

func toUserModel(u *user.User) UserModel {
	return UserModel{
		ID:           u.ID(),
		Name:         u.Name(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		Phone:        u.Phone(),
		Role:         string(u.Role()),
		CreatedAt:    u.CreatedAt(),
	}
}

func toUserDomain(m *UserModel) *user.User {
	return user.Reconstruct(m.ID, m.Name, m.Email, m.PasswordHash, m.Phone, auth.Role(m.Role), m.CreatedAt)
}
