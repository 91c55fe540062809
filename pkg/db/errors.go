package db

import "strings"

// IsUniqueViolation reports whether the provided error references a unique
// constraint violation. Constraint names, when given, are matched against the
// error message. The sqlite fallback matters for the test driver, which words
// its violations differently than Postgres.
func IsUniqueViolation(err error, constraintNames ...string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, name := range constraintNames {
		if name != "" && strings.Contains(msg, name) {
			return true
		}
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
