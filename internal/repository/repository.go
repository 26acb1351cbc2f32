package repository

import (
	"context"
	"errors"

	"github.com/placement-portal/experience-service/internal/domain"
)

var (
	// ErrNotFound is returned when the addressed record does not exist.
	// Identifiers the backend cannot parse are reported the same way.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a uniqueness constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines persistence access for students.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// ExperienceRepository encapsulates experience persistence.
type ExperienceRepository interface {
	Create(ctx context.Context, exp *domain.Experience) error
	GetByID(ctx context.Context, id string) (*domain.Experience, error)
	List(ctx context.Context, filter ExperienceFilter) ([]domain.Experience, error)
	Update(ctx context.Context, id string, patch ExperiencePatch) (*domain.Experience, error)
	Delete(ctx context.Context, id string) error
}

// DiscussionRepository manages company thread messages.
type DiscussionRepository interface {
	Create(ctx context.Context, d *domain.Discussion) error
	GetByID(ctx context.Context, id string) (*domain.Discussion, error)
	ListByCompany(ctx context.Context, company string) ([]domain.Discussion, error)
	UpdateMessage(ctx context.Context, id, message string) (*domain.Discussion, error)
	Delete(ctx context.Context, id string) error
}

// Pinger is implemented by backends that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store bundles the repositories of one backend.
type Store struct {
	Users       UserRepository
	Experiences ExperienceRepository
	Discussions DiscussionRepository
	Health      Pinger
}
