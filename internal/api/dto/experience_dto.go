package dto

import (
	"time"

	"github.com/placement-portal/experience-service/internal/domain"
	"github.com/placement-portal/experience-service/internal/repository"
)

// ExperienceRequest is the body of POST /api/experiences. Any owner field a
// client sends is ignored.
type ExperienceRequest struct {
	StudentName         string                `json:"studentName"`
	Company             string                `json:"company"`
	Role                string                `json:"role"`
	Package             *float64              `json:"package"`
	Type                domain.ExperienceType `json:"type"`
	Department          string                `json:"department"`
	CGPA                *float64              `json:"cgpa"`
	CGPAMatters         *bool                 `json:"cgpaMatters"`
	Rounds              *int                  `json:"rounds"`
	Questions           []string              `json:"questions"`
	QuestionTags        []string              `json:"questionTags"`
	PreparationDuration string                `json:"preparationDuration"`
	Resources           []string              `json:"resources"`
	Timeline            string                `json:"timeline"`
	DifficultyRating    *int                  `json:"difficultyRating"`
	WouldRecommend      *bool                 `json:"wouldRecommend"`
	GotSelected         *bool                 `json:"gotSelected"`
}

// ExperiencePatchRequest is the body of PUT /api/experiences/:id. Absent
// fields are left untouched.
type ExperiencePatchRequest struct {
	StudentName         *string                `json:"studentName"`
	Company             *string                `json:"company"`
	Role                *string                `json:"role"`
	Package             *float64               `json:"package"`
	Type                *domain.ExperienceType `json:"type"`
	Department          *string                `json:"department"`
	CGPA                *float64               `json:"cgpa"`
	CGPAMatters         *bool                  `json:"cgpaMatters"`
	Rounds              *int                   `json:"rounds"`
	Questions           *[]string              `json:"questions"`
	QuestionTags        *[]string              `json:"questionTags"`
	PreparationDuration *string                `json:"preparationDuration"`
	Resources           *[]string              `json:"resources"`
	Timeline            *string                `json:"timeline"`
	DifficultyRating    *int                   `json:"difficultyRating"`
	WouldRecommend      *bool                  `json:"wouldRecommend"`
	GotSelected         *bool                  `json:"gotSelected"`
}

// Patch converts the request into a repository patch.
func (r ExperiencePatchRequest) Patch() repository.ExperiencePatch {
	return repository.ExperiencePatch{
		StudentName:         r.StudentName,
		Company:             r.Company,
		Role:                r.Role,
		Package:             r.Package,
		Type:                r.Type,
		Department:          r.Department,
		CGPA:                r.CGPA,
		CGPAMatters:         r.CGPAMatters,
		Rounds:              r.Rounds,
		Questions:           r.Questions,
		QuestionTags:        r.QuestionTags,
		PreparationDuration: r.PreparationDuration,
		Resources:           r.Resources,
		Timeline:            r.Timeline,
		DifficultyRating:    r.DifficultyRating,
		WouldRecommend:      r.WouldRecommend,
		GotSelected:         r.GotSelected,
	}
}

// ExperienceResponse is the public view of an experience.
type ExperienceResponse struct {
	ID                  string                `json:"id"`
	UserID              string                `json:"userId"`
	StudentName         string                `json:"studentName,omitempty"`
	Company             string                `json:"company"`
	Role                string                `json:"role,omitempty"`
	Package             *float64              `json:"package,omitempty"`
	Type                domain.ExperienceType `json:"type,omitempty"`
	Department          string                `json:"department,omitempty"`
	CGPA                *float64              `json:"cgpa,omitempty"`
	CGPAMatters         *bool                 `json:"cgpaMatters,omitempty"`
	Rounds              *int                  `json:"rounds,omitempty"`
	Questions           []string              `json:"questions"`
	QuestionTags        []string              `json:"questionTags"`
	PreparationDuration string                `json:"preparationDuration,omitempty"`
	Resources           []string              `json:"resources"`
	Timeline            string                `json:"timeline,omitempty"`
	DifficultyRating    *int                  `json:"difficultyRating,omitempty"`
	WouldRecommend      *bool                 `json:"wouldRecommend,omitempty"`
	GotSelected         *bool                 `json:"gotSelected,omitempty"`
	CreatedAt           time.Time             `json:"createdAt"`
}

// DeleteResponse acknowledges a deletion.
type DeleteResponse struct {
	Message   string `json:"msg"`
	DeletedID string `json:"deletedId"`
}

// NewExperienceResponse maps a domain experience.
func NewExperienceResponse(e *domain.Experience) ExperienceResponse {
	return ExperienceResponse{
		ID:                  e.ID,
		UserID:              e.UserID,
		StudentName:         e.StudentName,
		Company:             e.Company,
		Role:                e.Role,
		Package:             e.Package,
		Type:                e.Type,
		Department:          e.Department,
		CGPA:                e.CGPA,
		CGPAMatters:         e.CGPAMatters,
		Rounds:              e.Rounds,
		Questions:           nonNil(e.Questions),
		QuestionTags:        nonNil(e.QuestionTags),
		PreparationDuration: e.PreparationDuration,
		Resources:           nonNil(e.Resources),
		Timeline:            e.Timeline,
		DifficultyRating:    e.DifficultyRating,
		WouldRecommend:      e.WouldRecommend,
		GotSelected:         e.GotSelected,
		CreatedAt:           e.CreatedAt,
	}
}

// NewExperienceList maps a slice, never returning nil.
func NewExperienceList(items []domain.Experience) []ExperienceResponse {
	out := make([]ExperienceResponse, 0, len(items))
	for i := range items {
		out = append(out, NewExperienceResponse(&items[i]))
	}
	return out
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
