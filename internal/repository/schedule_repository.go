package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/schedule"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormScheduleRepository implements ScheduleRepository using GORM.
type GormScheduleRepository struct {
	db *gorm.DB
}

func NewGormScheduleRepository(db *gorm.DB) *GormScheduleRepository {
	return &GormScheduleRepository{db: db}
}

func (r *GormScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*schedule.Schedule, error) {
	var model ScheduleModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Schedule", id.String())
		}
		return nil, fmt.Errorf("failed to find schedule: %w", err)
	}
	return toScheduleDomain(&model)
}

// FindByUMKMID lists slots in week order, Sunday first.
func (r *GormScheduleRepository) FindByUMKMID(ctx context.Context, umkmID uuid.UUID) ([]*schedule.Schedule, error) {
	var models []ScheduleModel
	if err := r.db.WithContext(ctx).
		Where("umkm_id = ?", umkmID).
		Order("start_time ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	slots := make([]*schedule.Schedule, 0, len(models))
	for i := range models {
		s, err := toScheduleDomain(&models[i])
		if err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].DayOfWeek() < slots[j].DayOfWeek()
	})
	return slots, nil
}

func (r *GormScheduleRepository) Save(ctx context.Context, s *schedule.Schedule) error {
	if err := r.db.WithContext(ctx).Create(toScheduleModel(s)).Error; err != nil {
		return fmt.Errorf("failed to save schedule: %w", err)
	}
	return nil
}

func (r *GormScheduleRepository) Update(ctx context.Context, s *schedule.Schedule) error {
	previousVersion := s.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&ScheduleModel{}).
		Where("id = ? AND version = ?", s.ID(), previousVersion).
		Updates(map[string]interface{}{
			"day_of_week":  schedule.DayName(s.DayOfWeek()),
			"start_time":   s.StartTime(),
			"end_time":     s.EndTime(),
			"is_available": s.IsAvailable(),
			"version":      s.Version(),
			"updated_at":   s.UpdatedAt(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update schedule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("schedule was modified by another transaction")
	}
	return nil
}

func (r *GormScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ScheduleModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete schedule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Schedule", id.String())
	}
	return nil
}

func toScheduleModel(s *schedule.Schedule) *ScheduleModel {
	return &ScheduleModel{
		ID:          s.ID(),
		UMKMID:      s.UMKMID(),
		DayOfWeek:   schedule.DayName(s.DayOfWeek()),
		StartTime:   s.StartTime(),
		EndTime:     s.EndTime(),
		IsAvailable: s.IsAvailable(),
		Version:     s.Version(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
}

func toScheduleDomain(m *ScheduleModel) (*schedule.Schedule, error) {
	day, err := schedule.ParseDay(m.DayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("schedule %s: %w", m.ID, err)
	}
	return schedule.Reconstruct(
		m.ID, m.UMKMID,
		day,
		m.StartTime, m.EndTime,
		m.IsAvailable,
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	), nil
}
