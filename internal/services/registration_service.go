package services

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/zxcv616/WavHaven/internal/models"
	"github.com/zxcv616/WavHaven/internal/repositories"
	"github.com/zxcv616/WavHaven/pkg/identity"
)

// RegistrationService coordinates user creation across the external
// identity gateway and the local record store. The gateway call comes
// first; the local record reuses the id the gateway issued. The two
// steps are not transactional: if the local insert fails the remote
// identity stays behind, orphaned.
type RegistrationService struct {
	userRepo repositories.UserRepository
	gateway  identity.Gateway
	tokens   *TokenService
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(userRepo repositories.UserRepository, gateway identity.Gateway, tokens *TokenService) *RegistrationService {
	return &RegistrationService{
		userRepo: userRepo,
		gateway:  gateway,
		tokens:   tokens,
	}
}

// Register runs the two-phase signup and returns the stored user plus
// a fresh token pair.
func (s *RegistrationService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, *models.TokenPair, error) {
	if req.Email == "" || req.Password == "" || req.Username == "" {
		return nil, nil, fmt.Errorf("%w: email, password, and username are required", ErrRegistrationInvalid)
	}

	// Check the local store before touching the gateway. This narrows
	// the window in which a remote identity can be created for a user
	// that never lands locally; it does not close it.
	if existing, err := s.userRepo.GetByUsername(req.Username); err == nil && existing != nil {
		return nil, nil, fmt.Errorf("%w: username '%s' already taken", ErrRegistrationConflict, req.Username)
	}
	if existing, err := s.userRepo.GetByEmail(req.Email); err == nil && existing != nil {
		return nil, nil, fmt.Errorf("%w: email '%s' already registered", ErrRegistrationConflict, req.Email)
	}

	// Gateway next. Domain rejections and transport failures are
	// reported the same way; the caller sees the gateway's message.
	remoteID, err := s.gateway.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRegistrationInvalid, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:       remoteID,
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(user); err != nil {
		// The remote identity already exists and is now orphaned.
		// Logged for operator reconciliation; no compensation call.
		log.Printf("Local user create failed after remote signup (remote id %s): %v", remoteID, err)
		return nil, nil, ErrRegistrationConflict
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue tokens for user %s: %w", user.ID, err)
	}
	return user, pair, nil
}
