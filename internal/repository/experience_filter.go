package repository

import (
	"strings"

	"github.com/placement-portal/experience-service/internal/domain"
)

// ExperienceFilter is a conjunction of optional criteria. A nil field places
// no constraint on the result.
type ExperienceFilter struct {
	UserID     *string
	Company    *string
	Department *string
	Type       *domain.ExperienceType
	MinPackage *float64
	MaxPackage *float64
	Selected   *bool
}

// Matches reports whether exp satisfies every supplied criterion.
func (f ExperienceFilter) Matches(exp *domain.Experience) bool {
	if f.UserID != nil && !domain.SameIdentity(*f.UserID, exp.UserID) {
		return false
	}
	if f.Company != nil && !strings.Contains(strings.ToLower(exp.Company), strings.ToLower(*f.Company)) {
		return false
	}
	if f.Department != nil && exp.Department != *f.Department {
		return false
	}
	if f.Type != nil && exp.Type != *f.Type {
		return false
	}
	if f.MinPackage != nil || f.MaxPackage != nil {
		if exp.Package == nil {
			return false
		}
		if f.MinPackage != nil && *exp.Package < *f.MinPackage {
			return false
		}
		if f.MaxPackage != nil && *exp.Package > *f.MaxPackage {
			return false
		}
	}
	if f.Selected != nil && (exp.GotSelected == nil || *exp.GotSelected != *f.Selected) {
		return false
	}
	return true
}

// IsEmpty reports whether the filter imposes no constraint.
func (f ExperienceFilter) IsEmpty() bool {
	return f == ExperienceFilter{}
}

// ExperiencePatch carries a partial update. Nil fields are left untouched.
// The owner is deliberately absent: it never changes after creation.
type ExperiencePatch struct {
	StudentName         *string
	Company             *string
	Role                *string
	Package             *float64
	Type                *domain.ExperienceType
	Department          *string
	CGPA                *float64
	CGPAMatters         *bool
	Rounds              *int
	Questions           *[]string
	QuestionTags        *[]string
	PreparationDuration *string
	Resources           *[]string
	Timeline            *string
	DifficultyRating    *int
	WouldRecommend      *bool
	GotSelected         *bool
}

// Apply copies the supplied fields onto exp.
func (p ExperiencePatch) Apply(exp *domain.Experience) {
	if p.StudentName != nil {
		exp.StudentName = *p.StudentName
	}
	if p.Company != nil {
		exp.Company = *p.Company
	}
	if p.Role != nil {
		exp.Role = *p.Role
	}
	if p.Package != nil {
		exp.Package = cloneFloat(p.Package)
	}
	if p.Type != nil {
		exp.Type = *p.Type
	}
	if p.Department != nil {
		exp.Department = *p.Department
	}
	if p.CGPA != nil {
		exp.CGPA = cloneFloat(p.CGPA)
	}
	if p.CGPAMatters != nil {
		exp.CGPAMatters = cloneBool(p.CGPAMatters)
	}
	if p.Rounds != nil {
		exp.Rounds = cloneInt(p.Rounds)
	}
	if p.Questions != nil {
		exp.Questions = cloneStrings(*p.Questions)
	}
	if p.QuestionTags != nil {
		exp.QuestionTags = cloneStrings(*p.QuestionTags)
	}
	if p.PreparationDuration != nil {
		exp.PreparationDuration = *p.PreparationDuration
	}
	if p.Resources != nil {
		exp.Resources = cloneStrings(*p.Resources)
	}
	if p.Timeline != nil {
		exp.Timeline = *p.Timeline
	}
	if p.DifficultyRating != nil {
		exp.DifficultyRating = cloneInt(p.DifficultyRating)
	}
	if p.WouldRecommend != nil {
		exp.WouldRecommend = cloneBool(p.WouldRecommend)
	}
	if p.GotSelected != nil {
		exp.GotSelected = cloneBool(p.GotSelected)
	}
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneStrings(v []string) []string {
	if v == nil {
		return nil
	}
	return append([]string(nil), v...)
}
