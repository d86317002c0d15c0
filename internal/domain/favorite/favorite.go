package favorite

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Favorite marks an UMKM as saved by a customer. The pair is unique.
type Favorite struct {
	CustomerID uuid.UUID
	UMKMID     uuid.UUID
	CreatedAt  time.Time
}

// FavoriteRepository defines persistence operations for favorites.
type FavoriteRepository interface {
	// Delete removes the pair and reports whether a row existed.
	Delete(ctx context.Context, customerID, umkmID uuid.UUID) (bool, error)
	// Insert adds the pair, doing nothing when it already exists.
	Insert(ctx context.Context, fav Favorite) error
	Exists(ctx context.Context, customerID, umkmID uuid.UUID) (bool, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]Favorite, error)
	CountByUMKMID(ctx context.Context, umkmID uuid.UUID) (int64, error)
}
