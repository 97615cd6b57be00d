package service

import "fmt"

// DomainMismatchError rejects a login whose email domain does not match the
// claimed college's required domain. The message is user-facing and names
// both the college and the domain it requires.
type DomainMismatchError struct {
	CollegeSlug    string
	CollegeName    string
	RequiredDomain string
}

func (e *DomainMismatchError) Error() string {
	return fmt.Sprintf("please use your %s email address ending in @%s", e.CollegeName, e.RequiredDomain)
}

// CollegeConflictError rejects a bind attempt for a user already bound to a
// different college. Bindings are immutable; the user must sign out before
// switching login surfaces.
type CollegeConflictError struct {
	// RequestedSlug is the login surface the user attempted to enter.
	RequestedSlug string
	// ExistingSlug is the college the user is already bound to.
	ExistingSlug string
}

func (e *CollegeConflictError) Error() string {
	return fmt.Sprintf("this account is already registered with %s; sign out before logging in to a different college", e.ExistingSlug)
}
