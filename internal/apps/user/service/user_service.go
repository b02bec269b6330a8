package service

import (
	"context"

	"spam-shield/internal/apps/user/models"
	"spam-shield/internal/apps/user/repository"
	"spam-shield/internal/common/apperr"
	"spam-shield/pkg/phone"
)

// ErrUserNotFound is returned when a phone number was never verified
var ErrUserNotFound = apperr.Newf(apperr.CodeNotFound, "User not found.")

// UserService exposes the directory of verified users
type UserService interface {
	GetUserByPhone(ctx context.Context, rawPhone string) (*models.UserResponse, error)
}

// userService implements UserService
type userService struct {
	directory  repository.Directory
	normalizer phone.Normalizer
}

// NewUserService creates a new instance of UserService
func NewUserService(directory repository.Directory, normalizer phone.Normalizer) UserService {
	return &userService{directory: directory, normalizer: normalizer}
}

// GetUserByPhone retrieves the verified user for a phone number
func (s *userService) GetUserByPhone(ctx context.Context, rawPhone string) (*models.UserResponse, error) {
	info, err := s.normalizer.Parse(rawPhone)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidPhoneNumber, err)
	}

	name, found, err := s.directory.Get(ctx, info.E164)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeStorage, err)
	}
	if !found {
		return nil, ErrUserNotFound
	}
	return &models.UserResponse{Phone: info.E164, Name: name}, nil
}
