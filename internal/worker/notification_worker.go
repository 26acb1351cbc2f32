package worker

import (
	"go.uber.org/zap"

	"github.com/placement-portal/experience-service/internal/events"
	"github.com/placement-portal/experience-service/internal/service"
)

// Subscription binds one handler to the event types of a record kind.
type Subscription struct {
	Kind    string
	Types   []events.EventType
	Handler events.EventHandler
}

// NotificationSubscriptions groups the notification handlers by record kind.
func NotificationSubscriptions(n *service.NotificationService) []Subscription {
	return []Subscription{
		{Kind: "experience", Types: events.ExperienceEventTypes, Handler: n.HandleExperienceEvent},
		{Kind: "discussion", Types: events.DiscussionEventTypes, Handler: n.HandleDiscussionEvent},
	}
}

// StartNotificationWorker subscribes the notification handlers on dispatcher
// and returns how many event types were bound.
func StartNotificationWorker(dispatcher events.Dispatcher, n *service.NotificationService, logger *zap.Logger) int {
	if dispatcher == nil || n == nil {
		return 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	bound := 0
	for _, sub := range NotificationSubscriptions(n) {
		for _, eventType := range sub.Types {
			dispatcher.Subscribe(eventType, sub.Handler)
		}
		bound += len(sub.Types)
		logger.Debug("notification subscription", zap.String("kind", sub.Kind), zap.Int("event_types", len(sub.Types)))
	}
	return bound
}
