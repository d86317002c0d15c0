package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SortOrder selects the ordering of a search.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortRating    SortOrder = "rating"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// SearchFilter narrows a service search. Zero values mean "no constraint".
type SearchFilter struct {
	Query     string
	Category  string
	UMKMID    uuid.UUID
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	MinRating float64
	Sort      SortOrder
	Page      int
	Limit     int
}

// ServiceRepository defines persistence operations for services.
type ServiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Service, error)
	// LockByID loads a service and holds its row lock until the surrounding
	// transaction ends.
	LockByID(ctx context.Context, id uuid.UUID) (*Service, error)
	FindByUMKMID(ctx context.Context, umkmID uuid.UUID) ([]*Service, error)
	Search(ctx context.Context, filter SearchFilter) ([]*Service, int64, error)
	Categories(ctx context.Context) ([]string, error)
	Save(ctx context.Context, service *Service) error
	// Update persists user-editable fields with optimistic locking. It never
	// writes rating or review_count.
	Update(ctx context.Context, service *Service) error
	// SetRating overwrites the derived rating caches.
	SetRating(ctx context.Context, id uuid.UUID, rating float64, reviewCount int64) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}
