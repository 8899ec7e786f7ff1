package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"wanderstay/internal/models"
)

type UserService struct {
	UserRepo UserStore
}

// Signup creates a user with a bcrypt-hashed password. Duplicate username
// or email surfaces as the matching sentinel error.
func (s *UserService) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	return s.UserRepo.CreateUser(ctx, user)
}

// Authenticate verifies credentials. Unknown user and wrong password both
// return ErrInvalidCredentials so login failures reveal nothing about
// which accounts exist.
func (s *UserService) Authenticate(ctx context.Context, req models.LoginRequest) (models.User, error) {
	user, err := s.UserRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			return models.User{}, models.ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return models.User{}, models.ErrInvalidCredentials
	}
	return user, nil
}

// GetUser resolves a user id, typically the one carried by the session.
func (s *UserService) GetUser(ctx context.Context, id int) (models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}
