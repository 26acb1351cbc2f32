package domain

import "time"

// ExperienceType enumerates the kind of hiring process an experience describes.
type ExperienceType string

const (
	ExperienceTypeInternship ExperienceType = "internship"
	ExperienceTypePlacement  ExperienceType = "placement"
)

// Valid reports whether t is one of the known experience types.
func (t ExperienceType) Valid() bool {
	return t == ExperienceTypeInternship || t == ExperienceTypePlacement
}

// Experience is a student's account of one placement or internship process.
// UserID is set once on creation and decides who may mutate the record.
type Experience struct {
	ID                  string
	UserID              string
	StudentName         string
	Company             string
	Role                string
	Package             *float64
	Type                ExperienceType
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
	CreatedAt           time.Time
}

// OwnerID returns the identity allowed to mutate the experience.
func (e *Experience) OwnerID() string { return e.UserID }
