package user

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// Save inserts a user. A duplicate email returns a ConflictError.
	Save(ctx context.Context, user *User) error
	UpdateProfile(ctx context.Context, user *User) error
	// ListUMKM returns UMKM accounts whose name matches query.
	ListUMKM(ctx context.Context, query string, page, limit int) ([]*User, int64, error)
}
