package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mserrat/tienda-api/internal/hash"
	"github.com/mserrat/tienda-api/internal/models"
	"github.com/mserrat/tienda-api/internal/repo"
	"github.com/mserrat/tienda-api/internal/tokens"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email required", ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password required", ErrValidation)
	}

	if _, err := s.Repo.UserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Name: name, Email: email, PasswordHash: passwordHash}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and issues a bearer token with the user id as
// subject. Unknown email and wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := tokens.SignAccessToken(user.ID, s.JWTSecret, tokens.AccessTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
