package dto

import (
	"time"

	"github.com/placement-portal/experience-service/internal/domain"
)

// UserRegisterRequest payload for new students.
type UserRegisterRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Department     string `json:"department"`
	GraduationYear *int   `json:"graduationYear"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserResponse is the public view of a student. The password hash is never
// part of it.
type UserResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Department     string    `json:"department,omitempty"`
	GraduationYear *int      `json:"graduationYear,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	IsVerified     bool      `json:"isVerified"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ProfileResponse bundles a user with their shared experiences.
type ProfileResponse struct {
	User            UserResponse         `json:"user"`
	Experiences     []ExperienceResponse `json:"experiences"`
	ExperienceCount int                  `json:"experienceCount"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Department:     u.Department,
		GraduationYear: u.GraduationYear,
		ProfilePicture: u.ProfilePicture,
		IsVerified:     u.IsVerified,
		CreatedAt:      u.CreatedAt,
	}
}
