package ticket

import "github.com/google/uuid"

// newID returns a time-ordered UUID so rows created in the same instant keep insertion order
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}
