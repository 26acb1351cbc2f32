package domain

import "time"

// User is a registered student.
type User struct {
	ID             string
	Email          string
	PasswordHash   string
	Name           string
	Department     string
	GraduationYear *int
	ProfilePicture string
	IsVerified     bool
	CreatedAt      time.Time
}
