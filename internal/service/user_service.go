package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"feedbackhub/internal/authz"
	"feedbackhub/internal/cache"
	errs "feedbackhub/internal/errors"
	"feedbackhub/internal/model"
	"feedbackhub/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// UserService exposes profile and team operations.
type UserService interface {
	Profile(ctx context.Context, id uint) (*model.User, error)
	Team(ctx context.Context, callerID uint) ([]model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Profile returns the user with the given id. Profiles are immutable
// after registration, so a short cache is safe.
func (s *userService) Profile(ctx context.Context, id uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), user, profileCacheTTL)
	return user, nil
}

// Team lists the caller's direct reports. Manager role required.
func (s *userService) Team(ctx context.Context, callerID uint) ([]model.User, error) {
	caller, err := s.Profile(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanViewTeam(caller); err != nil {
		return nil, err
	}
	return s.repo.TeamOf(ctx, callerID)
}
