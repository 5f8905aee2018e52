package identity

import (
	"context"
	"errors"

	"github.com/mrtoldo/backend/internal/domain/identity"
	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/mrtoldo/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// Errors returned by AuthService
var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Usuario o contraseña incorrectos")
	ErrUserNotFound       = shared.NotFound("User not found")
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Login checks the credentials and issues a session token.
// Unknown email and wrong password return the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	email := identity.NormalizeEmail(req.Email)
	if err := identity.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := identity.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown email", zap.String("email", email))
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Failed to fetch user", zap.Error(err))
		return nil, err
	}

	if !user.CheckPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(auth.SessionUser{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	})
	if err != nil {
		s.logger.Error("Failed to generate session token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL", "Failed to generate session token")
	}

	s.logger.Info("User logged in", zap.Int64("user_id", user.ID))

	return &LoginResult{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		User:      ToUserResponse(user),
	}, nil
}

// Logout revokes the session token until it would have expired
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" || s.blacklist == nil {
		return nil
	}
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to revoke session token", zap.Int64("user_id", claims.UserID), zap.Error(err))
		return err
	}
	s.logger.Info("User logged out", zap.Int64("user_id", claims.UserID))
	return nil
}

// Me returns the signed in user
func (s *AuthService) Me(ctx context.Context, userID int64) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// CreateUser adds a login user with a bcrypt hashed password
func (s *AuthService) CreateUser(ctx context.Context, name, email, password string) (*UserResponse, error) {
	user, err := identity.NewUser(name, email, password)
	if err != nil {
		return nil, err
	}

	_, err = s.userRepo.FindByEmail(ctx, user.Email)
	switch {
	case err == nil:
		return nil, shared.NewDomainError(shared.ErrAlreadyExists.Code, "A user with this email already exists")
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}
