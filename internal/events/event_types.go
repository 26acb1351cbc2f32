package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventExperienceCreated EventType = "experience_created"
	EventExperienceUpdated EventType = "experience_updated"
	EventExperienceDeleted EventType = "experience_deleted"
	EventDiscussionPosted  EventType = "discussion_posted"
	EventDiscussionUpdated EventType = "discussion_updated"
	EventDiscussionDeleted EventType = "discussion_deleted"
)

// ExperienceEventTypes are emitted for experience records.
var ExperienceEventTypes = []EventType{
	EventExperienceCreated,
	EventExperienceUpdated,
	EventExperienceDeleted,
}

// DiscussionEventTypes are emitted for discussion messages.
var DiscussionEventTypes = []EventType{
	EventDiscussionPosted,
	EventDiscussionUpdated,
	EventDiscussionDeleted,
}

// AllEventTypes lists every event the services emit.
var AllEventTypes = []EventType{
	EventExperienceCreated,
	EventExperienceUpdated,
	EventExperienceDeleted,
	EventDiscussionPosted,
	EventDiscussionUpdated,
	EventDiscussionDeleted,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RecordID  string      `json:"record_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// ExperiencePayload summarizes an experience for subscribers.
type ExperiencePayload struct {
	Company string `json:"company"`
	Type    string `json:"type,omitempty"`
}

// DiscussionPayload summarizes a discussion message for subscribers.
type DiscussionPayload struct {
	Company     string `json:"company"`
	BodyPreview string `json:"body_preview,omitempty"`
}
