package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/team"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTeamRepository implements MemberRepository using GORM.
type GormTeamRepository struct {
	db *gorm.DB
}

func NewGormTeamRepository(db *gorm.DB) *GormTeamRepository {
	return &GormTeamRepository{db: db}
}

func (r *GormTeamRepository) FindByID(ctx context.Context, id uuid.UUID) (*team.Member, error) {
	var model TeamMemberModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("TeamMember", id.String())
		}
		return nil, fmt.Errorf("failed to find team member: %w", err)
	}
	return toMemberDomain(&model), nil
}

func (r *GormTeamRepository) FindByUMKMID(ctx context.Context, umkmID uuid.UUID, status team.Status) ([]*team.Member, error) {
	q := r.db.WithContext(ctx).Where("umkm_id = ?", umkmID)
	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	var models []TeamMemberModel
	if err := q.Order("name ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	members := make([]*team.Member, len(models))
	for i := range models {
		members[i] = toMemberDomain(&models[i])
	}
	return members, nil
}

func (r *GormTeamRepository) Save(ctx context.Context, m *team.Member) error {
	if err := r.db.WithContext(ctx).Create(toMemberModel(m)).Error; err != nil {
		return fmt.Errorf("failed to save team member: %w", err)
	}
	return nil
}

func (r *GormTeamRepository) Update(ctx context.Context, m *team.Member) error {
	previousVersion := m.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&TeamMemberModel{}).
		Where("id = ? AND version = ?", m.ID(), previousVersion).
		Updates(map[string]interface{}{
			"name":       m.Name(),
			"role":       m.Role(),
			"phone":      m.Phone(),
			"email":      m.Email(),
			"status":     string(m.Status()),
			"version":    m.Version(),
			"updated_at": m.UpdatedAt(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update team member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("team member was modified by another transaction")
	}
	return nil
}

func (r *GormTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&TeamMemberModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete team member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("TeamMember", id.String())
	}
	return nil
}

func toMemberModel(m *team.Member) *TeamMemberModel {
	return &TeamMemberModel{
		ID:        m.ID(),
		UMKMID:    m.UMKMID(),
		Name:      m.Name(),
		Role:      m.Role(),
		Phone:     m.Phone(),
		Email:     m.Email(),
		Status:    string(m.Status()),
		Version:   m.Version(),
		CreatedAt: m.CreatedAt(),
		UpdatedAt: m.UpdatedAt(),
	}
}

func toMemberDomain(m *TeamMemberModel) *team.Member {
	return team.Reconstruct(
		m.ID, m.UMKMID,
		m.Name, m.Role, m.Phone, m.Email,
		team.Status(m.Status),
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	)
}
