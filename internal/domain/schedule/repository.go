package schedule

import (
	"context"

	"github.com/google/uuid"
)

// ScheduleRepository defines persistence operations for opening slots.
type ScheduleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Schedule, error)
	FindByUMKMID(ctx context.Context, umkmID uuid.UUID) ([]*Schedule, error)
	Save(ctx context.Context, s *Schedule) error
	Update(ctx context.Context, s *Schedule) error
	Delete(ctx context.Context, id uuid.UUID) error
}
