package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/placement-portal/experience-service/internal/config"
	"github.com/placement-portal/experience-service/internal/events"
)

// EventForwarder delivers events outside the process.
type EventForwarder interface {
	Handle(ctx context.Context, event events.Event) error
}

// NotificationService logs domain events and forwards them when configured.
type NotificationService struct {
	forwarder EventForwarder
	logger    *zap.Logger
	cfg       config.NotificationConfig
}

// NewNotificationService creates the service. forwarder may be nil.
func NewNotificationService(forwarder EventForwarder, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		forwarder: forwarder,
		logger:    loggerOrNop(logger),
		cfg:       cfg,
	}
}

// HandleExperienceEvent reacts to experience created/updated/deleted events.
func (n *NotificationService) HandleExperienceEvent(ctx context.Context, event events.Event) error {
	fields := eventFields(event)
	if p, ok := event.Payload.(events.ExperiencePayload); ok {
		fields = append(fields, zap.String("company", p.Company), zap.String("experience_type", p.Type))
	}
	n.logger.Info(string(event.Type), fields...)
	return n.forward(ctx, event)
}

// HandleDiscussionEvent reacts to discussion posted/updated/deleted events.
func (n *NotificationService) HandleDiscussionEvent(ctx context.Context, event events.Event) error {
	fields := eventFields(event)
	if p, ok := event.Payload.(events.DiscussionPayload); ok {
		fields = append(fields, zap.String("company", p.Company), zap.String("preview", p.BodyPreview))
	}
	n.logger.Info(string(event.Type), fields...)
	return n.forward(ctx, event)
}

func (n *NotificationService) forward(ctx context.Context, event events.Event) error {
	if n.forwarder == nil || !n.cfg.PublishToRedis {
		return nil
	}
	return n.forwarder.Handle(ctx, event)
}

func eventFields(event events.Event) []zap.Field {
	return []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("record_id", event.RecordID),
		zap.String("actor_id", event.ActorID),
	}
}
