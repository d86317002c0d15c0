package catalog

import (
	"strings"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is an offering listed by an UMKM. Rating and ReviewCount are caches
// owned by the rating aggregator and are never set from user input.
type Service struct {
	id          uuid.UUID
	umkmID      uuid.UUID
	name        string
	description string
	price       decimal.Decimal
	category    string
	rating      float64
	reviewCount int64
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// NewService creates a service with rating 0 and no reviews.
func NewService(umkmID uuid.UUID, name, description string, price decimal.Decimal, category string) (*Service, error) {
	if umkmID == uuid.Nil {
		return nil, domain.NewValidationError("UMKM ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("service name is required")
	}
	if !price.IsPositive() {
		return nil, domain.NewValidationError("service price must be positive")
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, domain.NewValidationError("service category is required")
	}

	now := time.Now().UTC()
	return &Service{
		id:          uuid.New(),
		umkmID:      umkmID,
		name:        name,
		description: description,
		price:       price,
		category:    category,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Service from persistence data (no validation).
func Reconstruct(
	id, umkmID uuid.UUID,
	name, description string,
	price decimal.Decimal,
	category string,
	rating float64,
	reviewCount int64,
	version int64,
	createdAt, updatedAt time.Time,
) *Service {
	return &Service{
		id:          id,
		umkmID:      umkmID,
		name:        name,
		description: description,
		price:       price,
		category:    category,
		rating:      rating,
		reviewCount: reviewCount,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (s *Service) ID() uuid.UUID          { return s.id }
func (s *Service) UMKMID() uuid.UUID      { return s.umkmID }
func (s *Service) Name() string           { return s.name }
func (s *Service) Description() string    { return s.description }
func (s *Service) Price() decimal.Decimal { return s.price }
func (s *Service) Category() string       { return s.category }
func (s *Service) Rating() float64        { return s.rating }
func (s *Service) ReviewCount() int64     { return s.reviewCount }
func (s *Service) Version() int64         { return s.version }
func (s *Service) CreatedAt() time.Time   { return s.createdAt }
func (s *Service) UpdatedAt() time.Time   { return s.updatedAt }

// --- Behavior ---

// IsOwnedBy checks if the service belongs to the given UMKM.
func (s *Service) IsOwnedBy(umkmID uuid.UUID) bool {
	return s.umkmID == umkmID
}

// Update applies partial updates. A nil price leaves the price unchanged;
// existing bookings keep their own snapshot either way.
func (s *Service) Update(name, description *string, price *decimal.Decimal, category *string) error {
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return domain.NewValidationError("service name is required")
		}
		s.name = n
	}
	if description != nil {
		s.description = *description
	}
	if price != nil {
		if !price.IsPositive() {
			return domain.NewValidationError("service price must be positive")
		}
		s.price = *price
	}
	if category != nil {
		c := strings.TrimSpace(*category)
		if c == "" {
			return domain.NewValidationError("service category is required")
		}
		s.category = c
	}
	s.version++
	s.updatedAt = time.Now().UTC()
	return nil
}
