package service

import (
	"context"

	"wayfarer/internal/model"
	"wayfarer/internal/repository"
)

// UserService exposes administrative read access to user accounts.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a user service layer.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}
