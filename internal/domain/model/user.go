package model

import (
	"time"

	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
)

// CollegeBinding is the permanent association between a user and the one
// college they belong to. All three fields are written together; a partial
// binding is never persisted.
type CollegeBinding struct {
	CollegeID   string `json:"college_id"   db:"college_id"`
	CollegeSlug string `json:"college_slug" db:"college_slug"`
	EmailDomain string `json:"email_domain" db:"email_domain"`
}

// User is the durable record for one authenticated person, independent of
// college. Candidates are created on first successful college bind or at
// onboarding completion; staff and admin users are created on first login.
type User struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	Username    string          `json:"username"`
	Role        domainauth.Role `json:"role"`
	College     *CollegeBinding `json:"college,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	LastLoginAt time.Time       `json:"last_login_at"`
}

// Bound reports whether the user carries a college binding.
func (u *User) Bound() bool { return u.College != nil }

// BoundTo reports whether the user is bound to the given college id.
func (u *User) BoundTo(collegeID string) bool {
	return u.College != nil && u.College.CollegeID == collegeID
}

// EmailDomain returns the lowercase domain part of the user's email.
func (u *User) EmailDomain() string {
	return domainauth.EmailDomain(u.Email)
}
