package service

import (
	"context"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/placement-portal/experience-service/internal/domain"
	"github.com/placement-portal/experience-service/internal/events"
	"github.com/placement-portal/experience-service/internal/repository"
	apperrors "github.com/placement-portal/experience-service/pkg/util/errorutil"
)

const experienceResource = "experience"

// ExperienceService coordinates experience workflows.
type ExperienceService struct {
	experiences repository.ExperienceRepository
	events      eventPublisher
	logger      *zap.Logger
	now         func() time.Time
}

// ExperienceDependencies bundles collaborators for the experience service.
type ExperienceDependencies struct {
	ExperienceRepo repository.ExperienceRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
	Clock          func() time.Time
}

// ExperienceInput describes a new experience. The owner is never part of it.
type ExperienceInput struct {
	StudentName         string
	Company             string
	Role                string
	Package             *float64
	Type                domain.ExperienceType
	Department          string
	CGPA                *float64
	CGPAMatters         *bool
	Rounds              *int
	Questions           []string
	QuestionTags        []string
	PreparationDuration string
	Resources           []string
	Timeline            string
	DifficultyRating    *int
	WouldRecommend      *bool
	GotSelected         *bool
}

// NewExperienceService constructs the service.
func NewExperienceService(deps ExperienceDependencies) *ExperienceService {
	logger := loggerOrNop(deps.Logger)
	now := clockOrNow(deps.Clock)
	return &ExperienceService{
		experiences: deps.ExperienceRepo,
		events:      eventPublisher{dispatcher: deps.Dispatcher, logger: logger, now: now},
		logger:      logger,
		now:         now,
	}
}

// ListExperiences returns experiences matching filter, newest first.
func (s *ExperienceService) ListExperiences(ctx context.Context, filter repository.ExperienceFilter) ([]domain.Experience, error) {
	items, err := s.experiences.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, experienceResource)
	}
	return items, nil
}

// ListByOwner returns the experiences created by userID, newest first.
func (s *ExperienceService) ListByOwner(ctx context.Context, userID string) ([]domain.Experience, error) {
	return s.ListExperiences(ctx, repository.ExperienceFilter{UserID: &userID})
}

// GetExperience fetches a single experience.
func (s *ExperienceService) GetExperience(ctx context.Context, id string) (*domain.Experience, error) {
	exp, err := s.experiences.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, experienceResource)
	}
	return exp, nil
}

// CreateExperience stores a new experience owned by userID.
func (s *ExperienceService) CreateExperience(ctx context.Context, userID string, input ExperienceInput) (*domain.Experience, error) {
	exp := &domain.Experience{
		UserID:              userID,
		StudentName:         strings.TrimSpace(input.StudentName),
		Company:             strings.TrimSpace(input.Company),
		Role:                strings.TrimSpace(input.Role),
		Package:             input.Package,
		Type:                input.Type,
		Department:          strings.TrimSpace(input.Department),
		CGPA:                input.CGPA,
		CGPAMatters:         input.CGPAMatters,
		Rounds:              input.Rounds,
		Questions:           trimList(input.Questions),
		QuestionTags:        trimList(input.QuestionTags),
		PreparationDuration: strings.TrimSpace(input.PreparationDuration),
		Resources:           trimList(input.Resources),
		Timeline:            strings.TrimSpace(input.Timeline),
		DifficultyRating:    input.DifficultyRating,
		WouldRecommend:      input.WouldRecommend,
		GotSelected:         input.GotSelected,
		CreatedAt:           s.now(),
	}
	if exp.Company == "" {
		return nil, apperrors.NewValidationError("company is required", map[string]any{"field": "company"})
	}
	if err := validateExperienceFields(exp.Type, exp.Package, exp.CGPA, exp.Rounds, exp.DifficultyRating); err != nil {
		return nil, err
	}

	if err := s.experiences.Create(ctx, exp); err != nil {
		return nil, storeError(err, experienceResource)
	}
	s.logger.Info("experience created", zap.String("experience_id", exp.ID), zap.String("user_id", userID))
	s.events.publish(ctx, events.Event{
		Type:     events.EventExperienceCreated,
		RecordID: exp.ID,
		ActorID:  userID,
		Payload:  events.ExperiencePayload{Company: exp.Company, Type: string(exp.Type)},
	})
	return exp, nil
}

// UpdateExperience applies patch when actorID owns the experience.
func (s *ExperienceService) UpdateExperience(ctx context.Context, actorID, id string, patch repository.ExperiencePatch) (*domain.Experience, error) {
	patch = normalizePatch(patch)
	if patch.Company != nil && *patch.Company == "" {
		return nil, apperrors.NewValidationError("company cannot be empty", map[string]any{"field": "company"})
	}
	var patchType domain.ExperienceType
	if patch.Type != nil {
		patchType = *patch.Type
	}
	if err := validateExperienceFields(patchType, patch.Package, patch.CGPA, patch.Rounds, patch.DifficultyRating); err != nil {
		return nil, err
	}

	updated, err := MutateOwned(ctx, experienceAccessor{repo: s.experiences}, actorID, id,
		func(ctx context.Context, exp *domain.Experience) (*domain.Experience, error) {
			return s.experiences.Update(ctx, exp.ID, patch)
		})
	if err != nil {
		return nil, err
	}
	s.events.publish(ctx, events.Event{
		Type:     events.EventExperienceUpdated,
		RecordID: updated.ID,
		ActorID:  actorID,
		Payload:  events.ExperiencePayload{Company: updated.Company, Type: string(updated.Type)},
	})
	return updated, nil
}

// DeleteExperience removes the experience when actorID owns it.
func (s *ExperienceService) DeleteExperience(ctx context.Context, actorID, id string) (*DeleteResult, error) {
	var company string
	result, err := MutateOwned(ctx, experienceAccessor{repo: s.experiences}, actorID, id,
		func(ctx context.Context, exp *domain.Experience) (*DeleteResult, error) {
			if err := s.experiences.Delete(ctx, exp.ID); err != nil {
				return nil, err
			}
			company = exp.Company
			return &DeleteResult{DeletedID: exp.ID}, nil
		})
	if err != nil {
		return nil, err
	}
	s.logger.Info("experience deleted", zap.String("experience_id", result.DeletedID), zap.String("user_id", actorID))
	s.events.publish(ctx, events.Event{
		Type:     events.EventExperienceDeleted,
		RecordID: result.DeletedID,
		ActorID:  actorID,
		Payload:  events.ExperiencePayload{Company: company},
	})
	return result, nil
}

type experienceAccessor struct {
	repo repository.ExperienceRepository
}

func (a experienceAccessor) Resource() string { return experienceResource }

func (a experienceAccessor) LoadByID(ctx context.Context, id string) (*domain.Experience, error) {
	return a.repo.GetByID(ctx, id)
}

func (a experienceAccessor) OwnerOf(exp *domain.Experience) string { return exp.OwnerID() }

func validateExperienceFields(t domain.ExperienceType, pkg, cgpa *float64, rounds, difficulty *int) error {
	if t != "" && !t.Valid() {
		return apperrors.NewValidationError("type must be internship or placement", map[string]any{"field": "type"})
	}
	if pkg != nil && (!finite(*pkg) || *pkg < 0) {
		return apperrors.NewValidationError("package must be a non-negative number", map[string]any{"field": "package"})
	}
	if cgpa != nil && (!finite(*cgpa) || *cgpa < 0 || *cgpa > 10) {
		return apperrors.NewValidationError("cgpa must be between 0 and 10", map[string]any{"field": "cgpa"})
	}
	if rounds != nil && *rounds < 0 {
		return apperrors.NewValidationError("rounds must be non-negative", map[string]any{"field": "rounds"})
	}
	if difficulty != nil && (*difficulty < 1 || *difficulty > 5) {
		return apperrors.NewValidationError("difficultyRating must be between 1 and 5", map[string]any{"field": "difficultyRating"})
	}
	return nil
}

func normalizePatch(p repository.ExperiencePatch) repository.ExperiencePatch {
	for _, field := range []**string{&p.StudentName, &p.Company, &p.Role, &p.Department, &p.PreparationDuration, &p.Timeline} {
		if *field != nil {
			trimmed := strings.TrimSpace(**field)
			*field = &trimmed
		}
	}
	for _, list := range []**[]string{&p.Questions, &p.QuestionTags, &p.Resources} {
		if *list != nil {
			trimmed := trimList(**list)
			*list = &trimmed
		}
	}
	return p
}

func trimList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
