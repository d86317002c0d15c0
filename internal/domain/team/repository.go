package team

import (
	"context"

	"github.com/google/uuid"
)

// MemberRepository defines persistence operations for team members.
type MemberRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Member, error)
	// FindByUMKMID lists members, optionally narrowed to one status.
	FindByUMKMID(ctx context.Context, umkmID uuid.UUID, status Status) ([]*Member, error)
	Save(ctx context.Context, m *Member) error
	Update(ctx context.Context, m *Member) error
	Delete(ctx context.Context, id uuid.UUID) error
}
