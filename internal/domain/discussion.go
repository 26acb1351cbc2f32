package domain

import "time"

// MaxDiscussionMessageLength bounds a discussion message, counted in characters.
const MaxDiscussionMessageLength = 500

// Discussion is one message in a company-scoped thread.
type Discussion struct {
	ID        string
	UserID    string
	Company   string
	Message   string
	CreatedAt time.Time

	// Author is populated on reads for display; it is never persisted.
	Author *Author
}

// Author is the public projection of a user shown next to their messages.
type Author struct {
	ID    string
	Name  string
	Email string
}

// OwnerID returns the identity allowed to mutate the message.
func (d *Discussion) OwnerID() string { return d.UserID }
