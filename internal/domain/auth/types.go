package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an application authorization role.
// Keep string form for easy persistence and token claims.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleStaff     Role = "staff"
	RoleCandidate Role = "candidate"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleCandidate:
		return true
	}
	return false
}

// Profile represents the authenticated principal returned by an IdP.
// Adapters map provider-specific claims into this shape.
type Profile struct {
	Email       string
	DisplayName string
	ExpiresAt   time.Time // absolute expiry from IdP token
}

// EmailDomain returns the lowercase domain part of the profile email,
// or "" when the email has no domain part.
func (p Profile) EmailDomain() string {
	return EmailDomain(p.Email)
}

// EmailDomain extracts the lowercase domain part of an email address.
// Returns "" for addresses without exactly one usable domain part.
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// RoleClassification is the immutable rule set used to classify an email
// into a role. It is passed in at call time rather than read from ambient
// configuration so classification stays deterministic and testable.
type RoleClassification struct {
	// StaffDomainSuffix marks organizational accounts, e.g. "@devxconsultancy.com".
	StaffDomainSuffix string
	// AdminEmails is the exact-match admin allow-list.
	AdminEmails map[string]struct{}
	// StaffEmails is the exact-match staff/HR allow-list.
	StaffEmails map[string]struct{}
}

// Claims is the content of a signed session token. It is an immutable value:
// any state change is expressed as minting a new token, never as patching
// the one in flight.
type Claims struct {
	// UserID is empty while the identity has no durable record yet
	// (a candidate mid-onboarding).
	UserID      string `json:"uid,omitempty"`
	Email       string `json:"email"`
	DisplayName string `json:"name,omitempty"`
	Role        Role   `json:"role"`

	// College binding; all three are set together or not at all.
	CollegeID   string `json:"college_id,omitempty"`
	CollegeSlug string `json:"college_slug,omitempty"`
	EmailDomain string `json:"email_domain,omitempty"`
}

// Incomplete reports whether the claims describe an identity that has not
// finished onboarding (no durable record behind it).
func (c Claims) Incomplete() bool { return c.UserID == "" }

// Bound reports whether the claims carry a college binding.
func (c Claims) Bound() bool { return c.CollegeID != "" }
