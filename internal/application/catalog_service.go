package application

import (
	"context"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/catalog"
	"github.com/JasaIn/service-booking/internal/domain/review"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateServiceRequest is the request DTO for listing a new service.
type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" binding:"required"`
}

// UpdateServiceRequest is the request DTO for editing a service. Nil fields
// are left unchanged.
type UpdateServiceRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
}

// SearchServicesQuery is bound from the search query string.
type SearchServicesQuery struct {
	Query     string   `form:"q"`
	Category  string   `form:"category"`
	UMKMID    string   `form:"umkm_id"`
	MinPrice  *float64 `form:"min_price"`
	MaxPrice  *float64 `form:"max_price"`
	MinRating float64  `form:"min_rating"`
	Sort      string   `form:"sort"`
}

// ServiceDTO is the API response representation of a service.
type ServiceDTO struct {
	ID            uuid.UUID       `json:"id"`
	UMKMID        uuid.UUID       `json:"umkm_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	Rating        float64         `json:"rating"`
	DisplayRating float64         `json:"display_rating"`
	ReviewCount   int64           `json:"review_count"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CatalogService implements use cases for UMKM service listings.
type CatalogService struct {
	store  Store
	logger *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(store Store, logger *zap.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

// CreateService lists a new service for the given UMKM.
func (s *CatalogService) CreateService(ctx context.Context, umkmID uuid.UUID, req CreateServiceRequest) (*ServiceDTO, error) {
	repos := s.store.Repositories()
	if err := ensureUMKM(ctx, repos, umkmID); err != nil {
		return nil, err
	}

	svc, err := catalog.NewService(umkmID, req.Name, req.Description, req.Price, req.Category)
	if err != nil {
		return nil, err
	}
	if err := repos.Services().Save(ctx, svc); err != nil {
		s.logger.Error("failed to create service", zap.Error(err))
		return nil, err
	}

	s.logger.Info("service created",
		zap.String("service_id", svc.ID().String()),
		zap.String("umkm_id", umkmID.String()),
	)
	result := toServiceDTO(svc)
	return &result, nil
}

// GetService returns a single service.
func (s *CatalogService) GetService(ctx context.Context, serviceID uuid.UUID) (*ServiceDTO, error) {
	svc, err := s.store.Repositories().Services().FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	result := toServiceDTO(svc)
	return &result, nil
}

// GetUMKMServices returns every service an UMKM lists.
func (s *CatalogService) GetUMKMServices(ctx context.Context, umkmID uuid.UUID) ([]ServiceDTO, error) {
	services, err := s.store.Repositories().Services().FindByUMKMID(ctx, umkmID)
	if err != nil {
		return nil, err
	}
	return toServiceDTOs(services), nil
}

// UpdateService edits a service, verifying ownership. Existing bookings keep
// the price they were created with.
func (s *CatalogService) UpdateService(ctx context.Context, umkmID, serviceID uuid.UUID, req UpdateServiceRequest) (*ServiceDTO, error) {
	repos := s.store.Repositories()
	svc, err := repos.Services().FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsOwnedBy(umkmID) {
		return nil, domain.NewForbiddenError("you do not own this service")
	}
	if err := svc.Update(req.Name, req.Description, req.Price, req.Category); err != nil {
		return nil, err
	}
	if err := repos.Services().Update(ctx, svc); err != nil {
		return nil, err
	}

	s.logger.Info("service updated", zap.String("service_id", svc.ID().String()))
	result := toServiceDTO(svc)
	return &result, nil
}

// DeleteService removes a service that has never been booked.
func (s *CatalogService) DeleteService(ctx context.Context, umkmID, serviceID uuid.UUID) error {
	return s.store.WithinTransaction(ctx, func(ctx context.Context, repos Repositories) error {
		svc, err := repos.Services().FindByID(ctx, serviceID)
		if err != nil {
			return err
		}
		if !svc.IsOwnedBy(umkmID) {
			return domain.NewForbiddenError("you do not own this service")
		}
		booked, err := repos.Bookings().ExistsForService(ctx, serviceID)
		if err != nil {
			return err
		}
		if booked {
			return domain.NewConflictError("service has bookings and cannot be deleted")
		}
		if err := repos.Services().Delete(ctx, serviceID); err != nil {
			return err
		}
		s.logger.Info("service deleted", zap.String("service_id", serviceID.String()))
		return nil
	})
}

// SearchServices runs a catalog search.
func (s *CatalogService) SearchServices(ctx context.Context, q SearchServicesQuery, page, limit int) (*domain.PaginatedResult[ServiceDTO], error) {
	filter := catalog.SearchFilter{
		Query:     q.Query,
		Category:  q.Category,
		MinRating: q.MinRating,
		Sort:      catalog.SortOrder(q.Sort),
		Page:      page,
		Limit:     limit,
	}
	if q.UMKMID != "" {
		id, err := uuid.Parse(q.UMKMID)
		if err != nil {
			return nil, domain.NewValidationError("invalid umkm_id")
		}
		filter.UMKMID = id
	}
	if q.MinPrice != nil {
		v := decimal.NewFromFloat(*q.MinPrice)
		filter.MinPrice = &v
	}
	if q.MaxPrice != nil {
		v := decimal.NewFromFloat(*q.MaxPrice)
		filter.MaxPrice = &v
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, domain.NewValidationError("min_price is greater than max_price")
	}

	services, total, err := s.store.Repositories().Services().Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toServiceDTOs(services), total, page, limit)
	return &result, nil
}

// Categories lists the distinct categories in the catalog.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.store.Repositories().Services().Categories(ctx)
}

func toServiceDTO(svc *catalog.Service) ServiceDTO {
	return ServiceDTO{
		ID:            svc.ID(),
		UMKMID:        svc.UMKMID(),
		Name:          svc.Name(),
		Description:   svc.Description(),
		Price:         svc.Price(),
		Category:      svc.Category(),
		Rating:        svc.Rating(),
		DisplayRating: review.DisplayRating(svc.Rating()),
		ReviewCount:   svc.ReviewCount(),
		CreatedAt:     svc.CreatedAt(),
		UpdatedAt:     svc.UpdatedAt(),
	}
}

func toServiceDTOs(services []*catalog.Service) []ServiceDTO {
	dtos := make([]ServiceDTO, len(services))
	for i, svc := range services {
		dtos[i] = toServiceDTO(svc)
	}
	return dtos
}
