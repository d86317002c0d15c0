package team

import (
	"net/mail"
	"strings"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/google/uuid"
)

// Status is a team member's availability.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusOnLeave  Status = "on_leave"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusOnLeave:
		return true
	}
	return false
}

// Member is a staff member working for an UMKM. Members are records only and
// never authenticate.
type Member struct {
	id        uuid.UUID
	umkmID    uuid.UUID
	name      string
	role      string
	phone     string
	email     string
	status    Status
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", domain.NewValidationError("invalid email address")
	}
	return email, nil
}

// NewMember creates an active team member.
func NewMember(umkmID uuid.UUID, name, role, phone, email string, now time.Time) (*Member, error) {
	if umkmID == uuid.Nil {
		return nil, domain.NewValidationError("UMKM ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("member name is required")
	}
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, domain.NewValidationError("member role is required")
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	return &Member{
		id:        uuid.New(),
		umkmID:    umkmID,
		name:      name,
		role:      role,
		phone:     strings.TrimSpace(phone),
		email:     email,
		status:    StatusActive,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Member from persistence data (no validation).
func Reconstruct(
	id, umkmID uuid.UUID,
	name, role, phone, email string,
	status Status,
	version int64,
	createdAt, updatedAt time.Time,
) *Member {
	return &Member{
		id:        id,
		umkmID:    umkmID,
		name:      name,
		role:      role,
		phone:     phone,
		email:     email,
		status:    status,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (m *Member) ID() uuid.UUID        { return m.id }
func (m *Member) UMKMID() uuid.UUID    { return m.umkmID }
func (m *Member) Name() string         { return m.name }
func (m *Member) Role() string         { return m.role }
func (m *Member) Phone() string        { return m.phone }
func (m *Member) Email() string        { return m.email }
func (m *Member) Status() Status       { return m.status }
func (m *Member) Version() int64       { return m.version }
func (m *Member) CreatedAt() time.Time { return m.createdAt }
func (m *Member) UpdatedAt() time.Time { return m.updatedAt }

// IsOwnedBy checks if the member works for the given UMKM.
func (m *Member) IsOwnedBy(umkmID uuid.UUID) bool {
	return m.umkmID == umkmID
}

// Update applies partial updates. Nil fields are left unchanged and nothing
// is changed when any field is invalid.
func (m *Member) Update(name, role, phone, email *string, status *Status, now time.Time) error {
	newName, newRole, newEmail := m.name, m.role, m.email
	if name != nil {
		newName = strings.TrimSpace(*name)
		if newName == "" {
			return domain.NewValidationError("member name is required")
		}
	}
	if role != nil {
		newRole = strings.TrimSpace(*role)
		if newRole == "" {
			return domain.NewValidationError("member role is required")
		}
	}
	if email != nil {
		e, err := normalizeEmail(*email)
		if err != nil {
			return err
		}
		newEmail = e
	}
	if status != nil && !status.IsValid() {
		return domain.NewValidationError("status must be active, inactive or on_leave")
	}

	m.name, m.role, m.email = newName, newRole, newEmail
	if phone != nil {
		m.phone = strings.TrimSpace(*phone)
	}
	if status != nil {
		m.status = *status
	}
	m.version++
	m.updatedAt = now.UTC()
	return nil
}
