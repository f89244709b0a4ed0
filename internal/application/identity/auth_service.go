package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/solemart/backend/internal/domain/identity"
	"github.com/solemart/backend/internal/domain/shared"
)

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	Issue(userID uuid.UUID, username string, isAdmin bool) (string, error)
}

// PasswordHasher hashes and verifies user passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) error
}

// AuthService handles registration, login and current-user lookup
type AuthService struct {
	userRepo identity.Repository
	tokens   TokenIssuer
	hasher   PasswordHasher
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.Repository, tokens TokenIssuer, hasher PasswordHasher) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
	}
}

// Register creates an account and returns it with a signed token
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	user, err := identity.NewUser(req.Username, req.Email, hash)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.withToken(user)
}

// Login verifies credentials and returns the user with a signed token.
// Wrong username and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHENTICATED", "Invalid username or password")
		}
		return nil, err
	}
	if err := s.hasher.Verify(user.PasswordHash, req.Password); err != nil {
		return nil, shared.NewDomainError("UNAUTHENTICATED", "Invalid username or password")
	}

	return s.withToken(user)
}

// CurrentUser returns the account behind an authenticated request
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

func (s *AuthService) withToken(user *identity.User) (*AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: ToUserResponse(user), Token: token}, nil
}
