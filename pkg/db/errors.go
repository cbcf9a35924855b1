package db

import "strings"

// IsUniqueViolation reports whether err references a unique constraint
// violation. Pass a constraint name to require that specific constraint in
// the error text; without one any postgres or sqlite duplicate-key error
// matches.
func IsUniqueViolation(err error, constraint ...string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if len(constraint) > 0 && constraint[0] != "" {
		return strings.Contains(msg, constraint[0])
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
