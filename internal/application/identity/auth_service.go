package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/pahanaedu/backend/internal/domain/identity"
	"github.com/pahanaedu/backend/internal/domain/shared"
	"github.com/pahanaedu/backend/internal/infrastructure/auth"
)

// AuthService handles login and token issuance. When mockMode is enabled
// unknown usernames are accepted and given an ephemeral identity, matching
// the behavior the frontend was built against; known users still have their
// password checked.
type AuthService struct {
	userRepo identity.UserRepository
	tokens   *auth.TokenManager
	mockMode bool
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, tokens *auth.TokenManager, mockMode bool) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		mockMode: mockMode,
	}
}

// Login authenticates a user and issues a JWT
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) && s.mockMode {
			return s.loginMockUser(username)
		}
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
		}
		return nil, err
	}

	if !user.CheckPassword(req.Password) {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
	}

	token, expiresAt, err := s.tokens.Generate(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		Username:  user.Username,
		Role:      string(user.Role),
	}, nil
}

// Logout is stateless; tokens simply expire. Kept as an explicit operation
// so clients have a logout endpoint to call.
func (s *AuthService) Logout(ctx context.Context) error {
	return nil
}

// SeedDefaultAdmin creates the default admin account when no user with that
// username exists yet.
func (s *AuthService) SeedDefaultAdmin(ctx context.Context, username, password string) error {
	_, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	user, err := identity.NewUser(username, password, identity.RoleAdmin)
	if err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

// loginMockUser builds an ephemeral identity for an unknown username. The
// admin username maps to the ADMIN role, everything else to USER.
func (s *AuthService) loginMockUser(username string) (*LoginResponse, error) {
	role := identity.RoleUser
	if username == "admin" {
		role = identity.RoleAdmin
	}

	user := identity.User{
		BaseEntity: shared.NewBaseEntity(),
		Username:   username,
		Role:       role,
	}

	token, expiresAt, err := s.tokens.Generate(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		Username:  user.Username,
		Role:      string(user.Role),
	}, nil
}
