package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailDomain(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{name: "simple", email: "bob@acme.edu", want: "acme.edu"},
		{name: "uppercase domain", email: "bob@ACME.EDU", want: "acme.edu"},
		{name: "plus address", email: "bob+exam@acme.edu", want: "acme.edu"},
		{name: "no at sign", email: "bob.acme.edu", want: ""},
		{name: "trailing at", email: "bob@", want: ""},
		{name: "empty", email: "", want: ""},
		{name: "multiple at signs uses last", email: `"a@b"@acme.edu`, want: "acme.edu"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EmailDomain(tt.email))
		})
	}
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleStaff.Valid())
	assert.True(t, RoleCandidate.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}

func TestClaims_IncompleteAndBound(t *testing.T) {
	c := Claims{Email: "bob@acme.edu", Role: RoleCandidate}
	assert.True(t, c.Incomplete())
	assert.False(t, c.Bound())

	c.UserID = "user-1"
	assert.False(t, c.Incomplete())

	c.CollegeID = "college-1"
	c.CollegeSlug = "acme"
	c.EmailDomain = "acme.edu"
	assert.True(t, c.Bound())
}
