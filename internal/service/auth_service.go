package service

import (
	"github.com/Nisarga403/Family-FinanceFlow/internal/domain"
	"github.com/rs/zerolog/log"
)

// AuthService handles authentication-related business logic
type AuthService struct {
	userRepo domain.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// EnsureUser resolves an Auth0 subject to an internal user, creating the user
// on first login. Implements middleware.UserProvider.
func (s *AuthService) EnsureUser(subject, email string) (int32, error) {
	user, err := s.userRepo.CreateOrGetBySubject(subject, email)
	if err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("Failed to create or get user")
		return 0, err
	}
	return user.ID, nil
}

// GetUserByID retrieves a user by their internal ID
func (s *AuthService) GetUserByID(id int32) (*domain.User, error) {
	return s.userRepo.GetByID(id)
}

// GetUserBySubject resolves an Auth0 subject to an internal user ID without
// creating one. Implements websocket.UserLookup.
func (s *AuthService) GetUserBySubject(subject string) (int32, error) {
	user, err := s.userRepo.GetBySubject(subject)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}
