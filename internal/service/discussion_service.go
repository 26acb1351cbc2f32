package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/placement-portal/experience-service/internal/domain"
	"github.com/placement-portal/experience-service/internal/events"
	"github.com/placement-portal/experience-service/internal/repository"
	apperrors "github.com/placement-portal/experience-service/pkg/util/errorutil"
)

const discussionResource = "discussion"

// DiscussionService manages company discussion threads.
type DiscussionService struct {
	discussions repository.DiscussionRepository
	users       repository.UserRepository
	events      eventPublisher
	logger      *zap.Logger
	now         func() time.Time
}

// DiscussionDependencies bundles collaborators for the discussion service.
type DiscussionDependencies struct {
	DiscussionRepo repository.DiscussionRepository
	UserRepo       repository.UserRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
	Clock          func() time.Time
}

// NewDiscussionService constructs the service.
func NewDiscussionService(deps DiscussionDependencies) *DiscussionService {
	logger := loggerOrNop(deps.Logger)
	now := clockOrNow(deps.Clock)
	return &DiscussionService{
		discussions: deps.DiscussionRepo,
		users:       deps.UserRepo,
		events:      eventPublisher{dispatcher: deps.Dispatcher, logger: logger, now: now},
		logger:      logger,
		now:         now,
	}
}

// ListByCompany returns the thread for company, newest first, with authors attached.
func (s *DiscussionService) ListByCompany(ctx context.Context, company string) ([]domain.Discussion, error) {
	thread, err := s.discussions.ListByCompany(ctx, normalizeCompany(company))
	if err != nil {
		return nil, storeError(err, discussionResource)
	}
	if err := s.attachAuthors(ctx, thread); err != nil {
		return nil, err
	}
	return thread, nil
}

// Post adds a message to company's thread on behalf of userID.
func (s *DiscussionService) Post(ctx context.Context, userID, company, message string) (*domain.Discussion, error) {
	company = normalizeCompany(company)
	if company == "" {
		return nil, apperrors.NewValidationError("company is required", map[string]any{"field": "company"})
	}
	message, err := normalizeMessage(message)
	if err != nil {
		return nil, err
	}

	d := &domain.Discussion{
		UserID:    userID,
		Company:   company,
		Message:   message,
		CreatedAt: s.now(),
	}
	if err := s.discussions.Create(ctx, d); err != nil {
		return nil, storeError(err, discussionResource)
	}
	if err := s.attachAuthor(ctx, d); err != nil {
		return nil, err
	}
	s.events.publish(ctx, events.Event{
		Type:     events.EventDiscussionPosted,
		RecordID: d.ID,
		ActorID:  userID,
		Payload:  events.DiscussionPayload{Company: d.Company, BodyPreview: stringPreview(d.Message, 120)},
	})
	return d, nil
}

// Update replaces the message text when actorID owns the discussion.
func (s *DiscussionService) Update(ctx context.Context, actorID, id, message string) (*domain.Discussion, error) {
	message, err := normalizeMessage(message)
	if err != nil {
		return nil, err
	}
	updated, err := MutateOwned(ctx, discussionAccessor{repo: s.discussions}, actorID, id,
		func(ctx context.Context, d *domain.Discussion) (*domain.Discussion, error) {
			return s.discussions.UpdateMessage(ctx, d.ID, message)
		})
	if err != nil {
		return nil, err
	}
	if err := s.attachAuthor(ctx, updated); err != nil {
		return nil, err
	}
	s.events.publish(ctx, events.Event{
		Type:     events.EventDiscussionUpdated,
		RecordID: updated.ID,
		ActorID:  actorID,
		Payload:  events.DiscussionPayload{Company: updated.Company, BodyPreview: stringPreview(updated.Message, 120)},
	})
	return updated, nil
}

// Delete removes the discussion when actorID owns it.
func (s *DiscussionService) Delete(ctx context.Context, actorID, id string) (*DeleteResult, error) {
	var company string
	result, err := MutateOwned(ctx, discussionAccessor{repo: s.discussions}, actorID, id,
		func(ctx context.Context, d *domain.Discussion) (*DeleteResult, error) {
			if err := s.discussions.Delete(ctx, d.ID); err != nil {
				return nil, err
			}
			company = d.Company
			return &DeleteResult{DeletedID: d.ID}, nil
		})
	if err != nil {
		return nil, err
	}
	s.logger.Info("discussion deleted", zap.String("discussion_id", result.DeletedID), zap.String("user_id", actorID))
	s.events.publish(ctx, events.Event{
		Type:     events.EventDiscussionDeleted,
		RecordID: result.DeletedID,
		ActorID:  actorID,
		Payload:  events.DiscussionPayload{Company: company},
	})
	return result, nil
}

func (s *DiscussionService) attachAuthor(ctx context.Context, d *domain.Discussion) error {
	thread := []domain.Discussion{*d}
	if err := s.attachAuthors(ctx, thread); err != nil {
		return err
	}
	d.Author = thread[0].Author
	return nil
}

// attachAuthors looks up each distinct author once. Authors that no longer
// exist are left empty.
func (s *DiscussionService) attachAuthors(ctx context.Context, thread []domain.Discussion) error {
	if s.users == nil {
		return nil
	}
	authors := map[string]*domain.Author{}
	for i := range thread {
		key := domain.NormalizeID(thread[i].UserID)
		author, seen := authors[key]
		if !seen {
			user, err := s.users.GetByID(ctx, thread[i].UserID)
			switch {
			case err == nil:
				author = &domain.Author{ID: user.ID, Name: user.Name, Email: user.Email}
			case errors.Is(err, repository.ErrNotFound):
				author = nil
			default:
				return apperrors.NewStoreUnavailable(err)
			}
			authors[key] = author
		}
		thread[i].Author = author
	}
	return nil
}

type discussionAccessor struct {
	repo repository.DiscussionRepository
}

func (a discussionAccessor) Resource() string { return discussionResource }

func (a discussionAccessor) LoadByID(ctx context.Context, id string) (*domain.Discussion, error) {
	return a.repo.GetByID(ctx, id)
}

func (a discussionAccessor) OwnerOf(d *domain.Discussion) string { return d.OwnerID() }

// normalizeCompany derives the thread key from a company name. Posting and
// listing both go through it.
func normalizeCompany(company string) string {
	return strings.TrimSpace(company)
}

// normalizeMessage trims message and enforces the length bound in characters.
func normalizeMessage(message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", apperrors.NewValidationError("message is required", map[string]any{"field": "message"})
	}
	if n := utf8.RuneCountInString(message); n > domain.MaxDiscussionMessageLength {
		return "", apperrors.NewValidationError(
			fmt.Sprintf("message must be %d characters or less", domain.MaxDiscussionMessageLength),
			map[string]any{"field": "message", "length": n},
		)
	}
	return message, nil
}
