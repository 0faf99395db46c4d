// Package normalize provides canonical forms for user-supplied strings
// before they are validated or written to the database.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam trims a free-form query or form value.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role value ("student", "faculty").
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// StudentType lowercases and trims a student category ("ug", "pg", "masters").
func StudentType(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// RegistrationNumber trims and uppercases a registration number.
func RegistrationNumber(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
