package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherDeliversToSubscribersOfType(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []string
	d.Subscribe(EventExperienceCreated, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.RecordID)
		return nil
	})
	d.Subscribe(EventExperienceCreated, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.RecordID)
		return nil
	})
	d.Subscribe(EventDiscussionPosted, func(_ context.Context, e Event) error {
		got = append(got, "other")
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventExperienceCreated, RecordID: "x"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(got) != 2 || got[0] != "first:x" || got[1] != "second:x" {
		t.Fatalf("delivered = %v", got)
	}
}

func TestDispatcherRunsAllHandlersAndJoinsErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")
	ran := false
	d.Subscribe(EventDiscussionDeleted, func(context.Context, Event) error { return boom })
	d.Subscribe(EventDiscussionDeleted, func(context.Context, Event) error {
		ran = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventDiscussionDeleted})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error to contain boom, got %v", err)
	}
	if !ran {
		t.Fatal("later handler skipped after earlier failure")
	}
}
