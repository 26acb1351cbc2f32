package worker

import (
	"context"
	"testing"

	"github.com/placement-portal/experience-service/internal/config"
	"github.com/placement-portal/experience-service/internal/events"
	"github.com/placement-portal/experience-service/internal/service"
)

type recordingForwarder struct {
	types []events.EventType
}

func (f *recordingForwarder) Handle(_ context.Context, event events.Event) error {
	f.types = append(f.types, event.Type)
	return nil
}

func TestNotificationSubscriptionsCoverEveryEventTypeOnce(t *testing.T) {
	n := service.NewNotificationService(nil, nil, config.NotificationConfig{})
	seen := map[events.EventType]string{}
	for _, sub := range NotificationSubscriptions(n) {
		if sub.Handler == nil {
			t.Fatalf("%s subscription has no handler", sub.Kind)
		}
		for _, eventType := range sub.Types {
			if kind, dup := seen[eventType]; dup {
				t.Fatalf("%s bound by both %s and %s", eventType, kind, sub.Kind)
			}
			seen[eventType] = sub.Kind
		}
	}
	for _, eventType := range events.AllEventTypes {
		if _, ok := seen[eventType]; !ok {
			t.Fatalf("%s has no subscription", eventType)
		}
	}
}

func TestStartNotificationWorkerRoutesEventsByKind(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	forwarder := &recordingForwarder{}
	n := service.NewNotificationService(forwarder, nil, config.NotificationConfig{PublishToRedis: true})

	if bound := StartNotificationWorker(dispatcher, n, nil); bound != len(events.AllEventTypes) {
		t.Fatalf("bound %d event types, want %d", bound, len(events.AllEventTypes))
	}
	for _, eventType := range events.AllEventTypes {
		if err := dispatcher.Publish(context.Background(), events.Event{Type: eventType}); err != nil {
			t.Fatalf("publish %s: %v", eventType, err)
		}
	}
	if len(forwarder.types) != len(events.AllEventTypes) {
		t.Fatalf("forwarded %v", forwarder.types)
	}
	for i, eventType := range events.AllEventTypes {
		if forwarder.types[i] != eventType {
			t.Fatalf("forwarded[%d] = %s, want %s", i, forwarder.types[i], eventType)
		}
	}
}

func TestStartNotificationWorkerWithoutDispatcher(t *testing.T) {
	n := service.NewNotificationService(nil, nil, config.NotificationConfig{})
	if bound := StartNotificationWorker(nil, n, nil); bound != 0 {
		t.Fatalf("bound = %d, want 0", bound)
	}
}
