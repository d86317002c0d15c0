package application

import (
	"context"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/team"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateTeamMemberRequest is the request DTO for adding a team member.
type CreateTeamMemberRequest struct {
	Name  string `json:"name" binding:"required"`
	Role  string `json:"role" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// UpdateTeamMemberRequest edits a member. Nil fields are left unchanged.
type UpdateTeamMemberRequest struct {
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	Phone  *string `json:"phone"`
	Email  *string `json:"email"`
	Status *string `json:"status"`
}

// TeamMemberDTO is the API response representation of a team member.
type TeamMemberDTO struct {
	ID        uuid.UUID `json:"id"`
	UMKMID    uuid.UUID `json:"umkm_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Status    string    `json:"status"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TeamService manages the staff records of an UMKM. Every operation is
// scoped to the calling UMKM.
type TeamService struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewTeamService creates a new TeamService.
func NewTeamService(store Store, logger *zap.Logger) *TeamService {
	return &TeamService{store: store, logger: logger, now: time.Now}
}

// WithClock replaces the time source.
func (s *TeamService) WithClock(now func() time.Time) *TeamService {
	s.now = now
	return s
}

// AddMember creates an active member for umkmID.
func (s *TeamService) AddMember(ctx context.Context, umkmID uuid.UUID, req CreateTeamMemberRequest) (*TeamMemberDTO, error) {
	repos := s.store.Repositories()
	if err := ensureUMKM(ctx, repos, umkmID); err != nil {
		return nil, err
	}

	m, err := team.NewMember(umkmID, req.Name, req.Role, req.Phone, req.Email, s.now())
	if err != nil {
		return nil, err
	}
	if err := repos.Team().Save(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("team member added",
		zap.String("member_id", m.ID().String()),
		zap.String("umkm_id", umkmID.String()),
	)
	result := toTeamMemberDTO(m)
	return &result, nil
}

// ListMembers returns umkmID's members, optionally filtered by status.
func (s *TeamService) ListMembers(ctx context.Context, umkmID uuid.UUID, status string) ([]TeamMemberDTO, error) {
	st := team.Status(status)
	if status != "" && !st.IsValid() {
		return nil, domain.NewValidationError("status must be active, inactive or on_leave")
	}
	members, err := s.store.Repositories().Team().FindByUMKMID(ctx, umkmID, st)
	if err != nil {
		return nil, err
	}
	dtos := make([]TeamMemberDTO, len(members))
	for i, m := range members {
		dtos[i] = toTeamMemberDTO(m)
	}
	return dtos, nil
}

// GetMember returns one member. Members of another UMKM are reported as not
// found.
func (s *TeamService) GetMember(ctx context.Context, umkmID, memberID uuid.UUID) (*TeamMemberDTO, error) {
	m, err := s.ownedMember(ctx, s.store.Repositories(), umkmID, memberID)
	if err != nil {
		return nil, err
	}
	result := toTeamMemberDTO(m)
	return &result, nil
}

// UpdateMember edits a member, including its status.
func (s *TeamService) UpdateMember(ctx context.Context, umkmID, memberID uuid.UUID, req UpdateTeamMemberRequest) (*TeamMemberDTO, error) {
	repos := s.store.Repositories()
	m, err := s.ownedMember(ctx, repos, umkmID, memberID)
	if err != nil {
		return nil, err
	}

	var status *team.Status
	if req.Status != nil {
		st := team.Status(*req.Status)
		status = &st
	}
	if err := m.Update(req.Name, req.Role, req.Phone, req.Email, status, s.now()); err != nil {
		return nil, err
	}
	if err := repos.Team().Update(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("team member updated",
		zap.String("member_id", m.ID().String()),
		zap.String("status", string(m.Status())),
	)
	result := toTeamMemberDTO(m)
	return &result, nil
}

// RemoveMember deletes a member.
func (s *TeamService) RemoveMember(ctx context.Context, umkmID, memberID uuid.UUID) error {
	return s.store.WithinTransaction(ctx, func(ctx context.Context, repos Repositories) error {
		if _, err := s.ownedMember(ctx, repos, umkmID, memberID); err != nil {
			return err
		}
		if err := repos.Team().Delete(ctx, memberID); err != nil {
			return err
		}
		s.logger.Info("team member removed", zap.String("member_id", memberID.String()))
		return nil
	})
}

func (s *TeamService) ownedMember(ctx context.Context, repos Repositories, umkmID, memberID uuid.UUID) (*team.Member, error) {
	m, err := repos.Team().FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !m.IsOwnedBy(umkmID) {
		return nil, domain.NewNotFoundError("TeamMember", memberID.String())
	}
	return m, nil
}

func toTeamMemberDTO(m *team.Member) TeamMemberDTO {
	return TeamMemberDTO{
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
