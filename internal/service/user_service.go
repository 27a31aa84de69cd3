// Package service implements the application's business rules on top of the
// repository layer.
package service

import (
	"context"

	"pulseboard/internal/auth"
	"pulseboard/internal/models"
	"pulseboard/internal/observability"
	"pulseboard/internal/repository"
	"pulseboard/internal/validation"
)

// UserService handles registration, authentication and profile updates.
type UserService struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenService
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateCredentialsInput carries optional new credentials; nil fields are
// left unchanged.
type UpdateCredentialsInput struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func NewUserService(userRepo repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Register creates a new account. The plaintext password is hashed before it
// ever reaches the repository.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:    in.Email,
		Password: digest,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies the credentials and issues a bearer token. An unknown
// email and a wrong password produce the same error, so the response never
// reveals whether the account exists.
func (s *UserService) Authenticate(ctx context.Context, in LoginInput) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		observability.AuthFailures.WithLabelValues("unknown_email").Inc()
		return "", models.NewUnauthorizedError("Invalid credentials")
	}
	if !s.hasher.Verify(in.Password, user.Password) {
		observability.AuthFailures.WithLabelValues("bad_password").Inc()
		return "", models.NewUnauthorizedError("Invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}

// GetUser returns the user with the given ID.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateCredentials changes the caller's own email and/or password.
func (s *UserService) UpdateCredentials(ctx context.Context, userID uint, in UpdateCredentialsInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = *in.Email
	}
	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		digest, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = digest
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
