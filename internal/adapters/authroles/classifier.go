package authroles

import (
	"strings"

	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
)

// StaticClassifier classifies emails by the precedence rules of the
// platform: organizational domain suffix wins, then the admin allow-list,
// then the staff allow-list, and everyone else is a candidate.
type StaticClassifier struct{}

func (StaticClassifier) Classify(email string, rules domainauth.RoleClassification) domainauth.Role {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return domainauth.RoleCandidate
	}

	if rules.StaffDomainSuffix != "" &&
		strings.HasSuffix(normalized, strings.ToLower(rules.StaffDomainSuffix)) {
		return domainauth.RoleStaff
	}
	if _, ok := rules.AdminEmails[normalized]; ok {
		return domainauth.RoleAdmin
	}
	if _, ok := rules.StaffEmails[normalized]; ok {
		return domainauth.RoleStaff
	}
	return domainauth.RoleCandidate
}

// ClassificationFromLists builds a RoleClassification from raw config
// values, normalizing entries to lowercase and dropping blanks.
func ClassificationFromLists(suffix string, adminEmails, staffEmails []string) domainauth.RoleClassification {
	return domainauth.RoleClassification{
		StaffDomainSuffix: strings.ToLower(strings.TrimSpace(suffix)),
		AdminEmails:       toSet(adminEmails),
		StaffEmails:       toSet(staffEmails),
	}
}

func toSet(emails []string) map[string]struct{} {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		if trimmed := strings.ToLower(strings.TrimSpace(e)); trimmed != "" {
			set[trimmed] = struct{}{}
		}
	}
	return set
}
