package application

import (
	"context"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/favorite"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FavoriteDTO is one saved UMKM.
type FavoriteDTO struct {
	UMKMID    uuid.UUID `json:"umkm_id"`
	UMKMName  string    `json:"umkm_name"`
	CreatedAt time.Time `json:"created_at"`
}

// ToggleResultDTO reports the favorite state after a toggle.
type ToggleResultDTO struct {
	UMKMID    uuid.UUID `json:"umkm_id"`
	Favorited bool      `json:"favorited"`
}

// FavoriteService handles a customer's saved UMKMs.
type FavoriteService struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(store Store, logger *zap.Logger) *FavoriteService {
	return &FavoriteService{store: store, logger: logger, now: time.Now}
}

// WithClock replaces the time source.
func (s *FavoriteService) WithClock(now func() time.Time) *FavoriteService {
	s.now = now
	return s
}

// ToggleFavorite removes the pair if present and inserts it otherwise, in one
// transaction. The store's primary key keeps the pair unique under races.
func (s *FavoriteService) ToggleFavorite(ctx context.Context, customerID, umkmID uuid.UUID) (*ToggleResultDTO, error) {
	var favorited bool
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos Repositories) error {
		if err := ensureUMKM(ctx, repos, umkmID); err != nil {
			return err
		}

		deleted, err := repos.Favorites().Delete(ctx, customerID, umkmID)
		if err != nil {
			return err
		}
		if deleted {
			favorited = false
			return nil
		}

		favorited = true
		return repos.Favorites().Insert(ctx, favorite.Favorite{
			CustomerID: customerID,
			UMKMID:     umkmID,
			CreatedAt:  s.now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("favorite toggled",
		zap.String("customer_id", customerID.String()),
		zap.String("umkm_id", umkmID.String()),
		zap.Bool("favorited", favorited),
	)
	return &ToggleResultDTO{UMKMID: umkmID, Favorited: favorited}, nil
}

// IsFavorite reports whether the customer saved the UMKM.
func (s *FavoriteService) IsFavorite(ctx context.Context, customerID, umkmID uuid.UUID) (bool, error) {
	return s.store.Repositories().Favorites().Exists(ctx, customerID, umkmID)
}

// ListFavorites returns the customer's saved UMKMs, newest first.
func (s *FavoriteService) ListFavorites(ctx context.Context, customerID uuid.UUID) ([]FavoriteDTO, error) {
	repos := s.store.Repositories()
	favs, err := repos.Favorites().FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	dtos := make([]FavoriteDTO, 0, len(favs))
	for _, fav := range favs {
		owner, err := repos.Users().FindByID(ctx, fav.UMKMID)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, FavoriteDTO{UMKMID: fav.UMKMID, UMKMName: owner.Name(), CreatedAt: fav.CreatedAt})
	}
	return dtos, nil
}

// ensureUMKM fails with NotFound unless id is an UMKM account.
func ensureUMKM(ctx context.Context, repos Repositories, id uuid.UUID) error {
	u, err := repos.Users().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !u.IsUMKM() {
		return domain.NewNotFoundError("UMKM", id.String())
	}
	return nil
}
