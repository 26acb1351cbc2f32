package service

import (
	"context"

	"github.com/placement-portal/experience-service/internal/domain"
	"github.com/placement-portal/experience-service/internal/repository"
)

// Profile is a user together with the experiences they shared.
type Profile struct {
	User            *domain.User
	Experiences     []domain.Experience
	ExperienceCount int
}

// UserService serves public and personal profiles.
type UserService struct {
	users       repository.UserRepository
	experiences *ExperienceService
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, experiences *ExperienceService) *UserService {
	return &UserService{users: users, experiences: experiences}
}

// GetProfile loads userID and their experiences, newest first.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, userResource)
	}
	items, err := s.experiences.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Experiences: items, ExperienceCount: len(items)}, nil
}
