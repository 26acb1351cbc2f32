package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/placement-portal/experience-service/internal/domain"
)

// memoryDB keeps records in insertion order so equal timestamps sort stably.
type memoryDB struct {
	mu          sync.RWMutex
	users       []domain.User
	experiences []domain.Experience
	discussions []domain.Discussion
}

// NewMemoryStore returns repositories backed by process memory. It is used
// for local development and tests.
func NewMemoryStore() *Store {
	db := &memoryDB{}
	return &Store{
		Users:       &memoryUserRepository{db: db},
		Experiences: &memoryExperienceRepository{db: db},
		Discussions: &memoryDiscussionRepository{db: db},
		Health:      db,
	}
}

func (db *memoryDB) Ping(context.Context) error { return nil }

type memoryUserRepository struct {
	db *memoryDB
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i := range r.db.users {
		if strings.EqualFold(r.db.users[i].Email, user.Email) {
			return ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.db.users = append(r.db.users, *user)
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for i := range r.db.users {
		if domain.SameIdentity(r.db.users[i].ID, id) {
			user := r.db.users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for i := range r.db.users {
		if strings.EqualFold(r.db.users[i].Email, email) {
			user := r.db.users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

type memoryExperienceRepository struct {
	db *memoryDB
}

func (r *memoryExperienceRepository) Create(_ context.Context, exp *domain.Experience) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if exp.ID == "" {
		exp.ID = uuid.NewString()
	}
	r.db.experiences = append(r.db.experiences, cloneExperience(*exp))
	return nil
}

func (r *memoryExperienceRepository) GetByID(_ context.Context, id string) (*domain.Experience, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	exp := cloneExperience(r.db.experiences[idx])
	return &exp, nil
}

func (r *memoryExperienceRepository) List(_ context.Context, filter ExperienceFilter) ([]domain.Experience, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	result := make([]domain.Experience, 0, len(r.db.experiences))
	for i := range r.db.experiences {
		if filter.Matches(&r.db.experiences[i]) {
			result = append(result, cloneExperience(r.db.experiences[i]))
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memoryExperienceRepository) Update(_ context.Context, id string, patch ExperiencePatch) (*domain.Experience, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	patch.Apply(&r.db.experiences[idx])
	exp := cloneExperience(r.db.experiences[idx])
	return &exp, nil
}

func (r *memoryExperienceRepository) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	r.db.experiences = append(r.db.experiences[:idx], r.db.experiences[idx+1:]...)
	return nil
}

func (r *memoryExperienceRepository) indexOf(id string) int {
	for i := range r.db.experiences {
		if domain.SameIdentity(r.db.experiences[i].ID, id) {
			return i
		}
	}
	return -1
}

type memoryDiscussionRepository struct {
	db *memoryDB
}

func (r *memoryDiscussionRepository) Create(_ context.Context, d *domain.Discussion) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	stored := *d
	stored.Author = nil
	r.db.discussions = append(r.db.discussions, stored)
	return nil
}

func (r *memoryDiscussionRepository) GetByID(_ context.Context, id string) (*domain.Discussion, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	d := r.db.discussions[idx]
	return &d, nil
}

func (r *memoryDiscussionRepository) ListByCompany(_ context.Context, company string) ([]domain.Discussion, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	result := []domain.Discussion{}
	for _, d := range r.db.discussions {
		if d.Company == company {
			result = append(result, d)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memoryDiscussionRepository) UpdateMessage(_ context.Context, id, message string) (*domain.Discussion, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	r.db.discussions[idx].Message = message
	d := r.db.discussions[idx]
	return &d, nil
}

func (r *memoryDiscussionRepository) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	idx := r.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	r.db.discussions = append(r.db.discussions[:idx], r.db.discussions[idx+1:]...)
	return nil
}

func (r *memoryDiscussionRepository) indexOf(id string) int {
	for i := range r.db.discussions {
		if domain.SameIdentity(r.db.discussions[i].ID, id) {
			return i
		}
	}
	return -1
}

func cloneExperience(exp domain.Experience) domain.Experience {
	exp.Package = cloneFloat(exp.Package)
	exp.CGPA = cloneFloat(exp.CGPA)
	exp.CGPAMatters = cloneBool(exp.CGPAMatters)
	exp.Rounds = cloneInt(exp.Rounds)
	exp.DifficultyRating = cloneInt(exp.DifficultyRating)
	exp.WouldRecommend = cloneBool(exp.WouldRecommend)
	exp.GotSelected = cloneBool(exp.GotSelected)
	exp.Questions = cloneStrings(exp.Questions)
	exp.QuestionTags = cloneStrings(exp.QuestionTags)
	exp.Resources = cloneStrings(exp.Resources)
	return exp
}
