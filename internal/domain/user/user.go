package user

import (
	"net/mail"
	"strings"
	"time"

	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/google/uuid"
)

const minPasswordLength = 6

// User is a customer or an UMKM account. The role is fixed at registration.
type User struct {
	id           uuid.UUID
	name         string
	email        string
	passwordHash string
	phone        string
	role         auth.Role
	createdAt    time.Time
}

// NewUser validates the registration fields and hashes the password.
func NewUser(name, email, password, phone string, role auth.Role) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	email = NormalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.NewValidationError("invalid email address")
	}
	if len(password) < minPasswordLength {
		return nil, domain.NewValidationError("password must be at least 6 characters")
	}
	if !role.Valid() {
		return nil, domain.NewValidationError("role must be customer or umkm")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &User{
		id:           uuid.New(),
		name:         name,
		email:        email,
		passwordHash: hash,
		phone:        strings.TrimSpace(phone),
		role:         role,
		createdAt:    time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a User from persistence.
func Reconstruct(id uuid.UUID, name, email, passwordHash, phone string, role auth.Role, createdAt time.Time) *User {
	return &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		phone:        phone,
		role:         role,
		createdAt:    createdAt,
	}
}

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Phone() string        { return u.phone }
func (u *User) Role() auth.Role      { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// IsCustomer reports whether the account books services.
func (u *User) IsCustomer() bool { return u.role == auth.RoleCustomer }

// IsUMKM reports whether the account offers services.
func (u *User) IsUMKM() bool { return u.role == auth.RoleUMKM }

// CheckPassword compares password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return auth.CheckPassword(u.passwordHash, password)
}

// UpdateProfile changes the mutable profile fields. Role and email are fixed.
func (u *User) UpdateProfile(name, phone *string) error {
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return domain.NewValidationError("name is required")
		}
		u.name = n
	}
	if phone != nil {
		u.phone = strings.TrimSpace(*phone)
	}
	return nil
}
