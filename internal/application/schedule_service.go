package application

import (
	"context"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateScheduleRequest is the request DTO for adding an opening slot.
type CreateScheduleRequest struct {
	DayOfWeek string `json:"day_of_week" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// UpdateScheduleRequest edits a slot. Nil fields are left unchanged.
type UpdateScheduleRequest struct {
	DayOfWeek   *string `json:"day_of_week"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	IsAvailable *bool   `json:"is_available"`
}

// ScheduleDTO is the API response representation of an opening slot.
type ScheduleDTO struct {
	ID          uuid.UUID `json:"id"`
	UMKMID      uuid.UUID `json:"umkm_id"`
	DayOfWeek   string    `json:"day_of_week"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
	Version     int64     `json:"version"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ScheduleService manages an UMKM's weekly opening hours.
type ScheduleService struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(store Store, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{store: store, logger: logger, now: time.Now}
}

// WithClock replaces the time source.
func (s *ScheduleService) WithClock(now func() time.Time) *ScheduleService {
	s.now = now
	return s
}

// CreateSchedule adds a slot for the given UMKM.
func (s *ScheduleService) CreateSchedule(ctx context.Context, umkmID uuid.UUID, req CreateScheduleRequest) (*ScheduleDTO, error) {
	repos := s.store.Repositories()
	if err := ensureUMKM(ctx, repos, umkmID); err != nil {
		return nil, err
	}

	slot, err := schedule.NewSchedule(umkmID, req.DayOfWeek, req.StartTime, req.EndTime, s.now())
	if err != nil {
		return nil, err
	}
	if err := repos.Schedules().Save(ctx, slot); err != nil {
		return nil, err
	}

	s.logger.Info("schedule created",
		zap.String("schedule_id", slot.ID().String()),
		zap.String("umkm_id", umkmID.String()),
		zap.String("day", schedule.DayName(slot.DayOfWeek())),
	)
	result := toScheduleDTO(slot)
	return &result, nil
}

// ListSchedules returns an UMKM's slots, Sunday first.
func (s *ScheduleService) ListSchedules(ctx context.Context, umkmID uuid.UUID) ([]ScheduleDTO, error) {
	slots, err := s.store.Repositories().Schedules().FindByUMKMID(ctx, umkmID)
	if err != nil {
		return nil, err
	}
	dtos := make([]ScheduleDTO, len(slots))
	for i, slot := range slots {
		dtos[i] = toScheduleDTO(slot)
	}
	return dtos, nil
}

// UpdateSchedule edits a slot owned by umkmID.
func (s *ScheduleService) UpdateSchedule(ctx context.Context, umkmID, scheduleID uuid.UUID, req UpdateScheduleRequest) (*ScheduleDTO, error) {
	repos := s.store.Repositories()
	slot, err := repos.Schedules().FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if !slot.IsOwnedBy(umkmID) {
		return nil, domain.NewForbiddenError("you do not own this schedule")
	}
	if err := slot.Update(req.DayOfWeek, req.StartTime, req.EndTime, req.IsAvailable, s.now()); err != nil {
		return nil, err
	}
	if err := repos.Schedules().Update(ctx, slot); err != nil {
		return nil, err
	}

	s.logger.Info("schedule updated", zap.String("schedule_id", slot.ID().String()))
	result := toScheduleDTO(slot)
	return &result, nil
}

// DeleteSchedule removes a slot owned by umkmID.
func (s *ScheduleService) DeleteSchedule(ctx context.Context, umkmID, scheduleID uuid.UUID) error {
	return s.store.WithinTransaction(ctx, func(ctx context.Context, repos Repositories) error {
		slot, err := repos.Schedules().FindByID(ctx, scheduleID)
		if err != nil {
			return err
		}
		if !slot.IsOwnedBy(umkmID) {
			return domain.NewForbiddenError("you do not own this schedule")
		}
		if err := repos.Schedules().Delete(ctx, scheduleID); err != nil {
			return err
		}
		s.logger.Info("schedule deleted", zap.String("schedule_id", scheduleID.String()))
		return nil
	})
}

func toScheduleDTO(slot *schedule.Schedule) ScheduleDTO {
	return ScheduleDTO{
		ID:          slot.ID(),
		UMKMID:      slot.UMKMID(),
		DayOfWeek:   schedule.DayName(slot.DayOfWeek()),
		StartTime:   slot.StartTime(),
		EndTime:     slot.EndTime(),
		IsAvailable: slot.IsAvailable(),
		Version:     slot.Version(),
		UpdatedAt:   slot.UpdatedAt(),
	}
}
