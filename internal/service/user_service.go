// Package service orchestrates repositories, validation, and ownership rules
// on behalf of the HTTP handlers.
package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// PasswordHasher is the opaque one-way hash capability used by user flows.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

type UserService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
}

func NewUserService(userRepo repository.UserRepository, hasher PasswordHasher) *UserService {
	return &UserService{userRepo: userRepo, hasher: hasher}
}

type RegisterInput struct {
	Name     string
	Password string
}

type UpdateUserInput struct {
	UserID   uint
	Name     string
	Password string
}

// Register creates a new user with a hashed password. Name uniqueness is
// deliberately not enforced; duplicate names resolve to the oldest row at
// login time.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Name == "" || in.Password == "" {
		return nil, models.NewValidationError("Name and password are required")
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:           in.Name,
		HashedPassword: digest,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies name/password credentials and returns the matching user.
func (s *UserService) Authenticate(ctx context.Context, name, password string) (*models.User, error) {
	if name == "" || password == "" {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	user, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Verify(password, user.HashedPassword) {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// UpdateUser replaces the user's name and password. Any authenticated
// principal may update any user; the route only requires a session.
func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	if in.Name == "" || in.Password == "" {
		return nil, models.NewValidationError("Name and password are required")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user.Name = in.Name
	user.HashedPassword = digest
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user and cascades to all posts and comments they
// own. It returns the deleted user.
func (s *UserService) DeleteUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return user, nil
}
