//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const maxCollegeNameLen = 255

// slugPattern restricts slugs to URL-safe lowercase identifiers.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// CollegeStatus controls whether a college login surface is open.
type CollegeStatus string

const (
	CollegeStatusActive   CollegeStatus = "active"
	CollegeStatusInactive CollegeStatus = "inactive"
)

// Valid reports whether the college status is supported.
func (s CollegeStatus) Valid() bool {
	switch s {
	case CollegeStatusActive, CollegeStatusInactive:
		return true
	default:
		return false
	}
}

// ParseCollegeStatus normalizes a status string and reports whether it is supported.
func ParseCollegeStatus(value string) (CollegeStatus, bool) {
	status := CollegeStatus(strings.ToLower(strings.TrimSpace(value)))
	if status.Valid() {
		return status, true
	}
	return "", false
}

// College represents one organization with its own login surface and
// required email domain. College records are owned by the admin surface;
// the auth core treats them as read-only.
type College struct {
	ID          string        `json:"id"           db:"id"`
	Name        string        `json:"name"         db:"name"`
	Slug        string        `json:"slug"         db:"slug"`
	EmailDomain string        `json:"email_domain" db:"email_domain"`
	Status      CollegeStatus `json:"status"       db:"status"`
	CreatedAt   time.Time     `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"   db:"updated_at"`
}

// Active reports whether the college accepts logins.
func (c *College) Active() bool { return c.Status == CollegeStatusActive }

// CollegeResource is an opaque reference to a resource (e.g. an assessment
// track) made available to a college's members.
type CollegeResource struct {
	ID        string    `json:"id"         db:"id"`
	CollegeID string    `json:"college_id" db:"college_id"`
	Name      string    `json:"name"       db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateCollegeRequest represents parameters to create a College.
// Used by the admin CLI; the auth core never creates colleges.
type CreateCollegeRequest struct {
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	EmailDomain string        `json:"email_domain"`
	Status      CollegeStatus `json:"status,omitempty"`
}

// Validate validates CreateCollegeRequest and normalizes slug, domain, and status.
func (r *CreateCollegeRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Name) > maxCollegeNameLen {
		return errors.New("name cannot exceed 255 characters")
	}

	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
	if r.Slug == "" {
		return errors.New("slug is required")
	}
	if !slugPattern.MatchString(r.Slug) {
		return errors.New("slug must contain only lowercase letters, digits, and hyphens")
	}

	r.EmailDomain = strings.ToLower(strings.TrimSpace(r.EmailDomain))
	if r.EmailDomain == "" {
		return errors.New("email_domain is required")
	}
	if strings.ContainsAny(r.EmailDomain, "@ ") || !strings.Contains(r.EmailDomain, ".") {
		return errors.New("email_domain must be a bare domain such as acme.edu")
	}

	if r.Status == "" {
		r.Status = CollegeStatusActive
	}
	if !r.Status.Valid() {
		return errors.New("status must be active or inactive")
	}
	return nil
}
