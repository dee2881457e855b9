// Package validation holds small input validation helpers shared by
// services and handlers.
package validation

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s looks like an email address. Demo
// requests arrive from a public form, so employer logins are only
// created when this passes.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// HasSpecialChar reports whether s contains at least one special character.
func HasSpecialChar(s string) bool {
	specialChars := "!@#$%^&*()_+-=[]{}|;:,.<>?`~"
	for _, char := range s {
		if strings.ContainsRune(specialChars, char) {
			return true
		}
	}
	return false
}

// IsValidPassword enforces the minimum password policy.
func IsValidPassword(s string) bool {
	return len(s) >= 8 && HasSpecialChar(s)
}

// IsValidDocument checks the metadata the onboarding client reports
// about the uploaded document: pdf or image, at most 5MB.
func IsValidDocument(contentType string, sizeBytes int64) bool {
	if sizeBytes <= 0 || sizeBytes > 5*1024*1024 {
		return false
	}
	return contentType == "application/pdf" || strings.HasPrefix(contentType, "image/")
}
