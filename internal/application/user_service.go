package application

import (
	"context"
	"errors"
	"time"

	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/user"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterRequest holds the data needed to open an account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
}

// LoginRequest holds login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest edits the mutable profile fields.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// UserDTO is the public representation of an account.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResultDTO is returned by register and login.
type AuthResultDTO struct {
	User   UserDTO         `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// UMKMProfileDTO is an UMKM directory entry.
type UMKMProfileDTO struct {
	UserDTO
	FavoriteCount int64 `json:"favorite_count"`
	ServiceCount  int   `json:"service_count"`
}

// UserService handles accounts and sessions.
type UserService struct {
	store      Store
	jwtManager *auth.JWTManager
	logger     *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(store Store, jwtManager *auth.JWTManager, logger *zap.Logger) *UserService {
	return &UserService{store: store, jwtManager: jwtManager, logger: logger}
}

// Register creates an account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*AuthResultDTO, error) {
	u, err := user.NewUser(req.Name, req.Email, req.Password, req.Phone, auth.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if err := s.store.Repositories().Users().Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID().String()),
		zap.String("role", string(u.Role())),
	)
	return s.issue(u)
}

// Login verifies credentials. Unknown email and wrong password fail the same way.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*AuthResultDTO, error) {
	u, err := s.store.Repositories().Users().FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}
	if !u.CheckPassword(req.Password) {
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}
	return s.issue(u)
}

// Refresh issues a new token pair from a valid refresh token.
func (s *UserService) Refresh(ctx context.Context, req RefreshRequest) (*AuthResultDTO, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, domain.NewUnauthorizedError("invalid refresh token")
	}
	u, err := s.store.Repositories().Users().FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewUnauthorizedError("account no longer exists")
		}
		return nil, err
	}
	return s.issue(u)
}

// GetProfile returns the caller's account.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	u, err := s.store.Repositories().Users().FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

// UpdateProfile edits name and phone.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error) {
	repos := s.store.Repositories()
	u, err := repos.Users().FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := u.UpdateProfile(req.Name, req.Phone); err != nil {
		return nil, err
	}
	if err := repos.Users().UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

// ListUMKM returns the UMKM directory with favorite and service counts.
func (s *UserService) ListUMKM(ctx context.Context, query string, page, limit int) (*domain.PaginatedResult[UMKMProfileDTO], error) {
	repos := s.store.Repositories()
	users, total, err := repos.Users().ListUMKM(ctx, query, page, limit)
	if err != nil {
		return nil, err
	}

	items := make([]UMKMProfileDTO, len(users))
	for i, u := range users {
		favs, err := repos.Favorites().CountByUMKMID(ctx, u.ID())
		if err != nil {
			return nil, err
		}
		services, err := repos.Services().FindByUMKMID(ctx, u.ID())
		if err != nil {
			return nil, err
		}
		items[i] = UMKMProfileDTO{UserDTO: toUserDTO(u), FavoriteCount: favs, ServiceCount: len(services)}
	}
	result := domain.NewPaginatedResult(items, total, page, limit)
	return &result, nil
}

func (s *UserService) issue(u *user.User) (*AuthResultDTO, error) {
	tokens, err := s.jwtManager.GenerateTokenPair(u.ID(), u.Role())
	if err != nil {
		return nil, err
	}
	return &AuthResultDTO{User: toUserDTO(u), Tokens: tokens}, nil
}

func toUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		Phone:     u.Phone(),
		Role:      string(u.Role()),
		CreatedAt: u.CreatedAt(),
	}
}
