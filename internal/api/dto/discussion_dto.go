package dto

import (
	"time"

	"github.com/placement-portal/experience-service/internal/domain"
)

// DiscussionRequest is the body for posting or editing a message.
type DiscussionRequest struct {
	Message string `json:"message"`
}

// AuthorResponse identifies who wrote a message.
type AuthorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DiscussionResponse is the public view of a message.
type DiscussionResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Company   string          `json:"company"`
	Message   string          `json:"message"`
	Author    *AuthorResponse `json:"author"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewDiscussionResponse maps a domain discussion.
func NewDiscussionResponse(d *domain.Discussion) DiscussionResponse {
	resp := DiscussionResponse{
		ID:        d.ID,
		UserID:    d.UserID,
		Company:   d.Company,
		Message:   d.Message,
		CreatedAt: d.CreatedAt,
	}
	if d.Author != nil {
		resp.Author = &AuthorResponse{ID: d.Author.ID, Name: d.Author.Name, Email: d.Author.Email}
	}
	return resp
}

// NewDiscussionList maps a thread, never returning nil.
func NewDiscussionList(thread []domain.Discussion) []DiscussionResponse {
	out := make([]DiscussionResponse, 0, len(thread))
	for i := range thread {
		out = append(out, NewDiscussionResponse(&thread[i]))
	}
	return out
}
