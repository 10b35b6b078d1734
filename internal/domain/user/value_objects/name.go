package value_objects

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	minNameLength = 2
	maxNameLength = 100
)

// Name is a person's display name, NFC normalized
type Name struct {
	value string
}

// NewName creates a new Name value object with validation
func NewName(value string) (*Name, error) {
	normalized := norm.NFC.String(strings.TrimSpace(value))

	length := utf8.RuneCountInString(normalized)
	if length < minNameLength {
		return nil, fmt.Errorf("name must be at least %d characters long", minNameLength)
	}
	if length > maxNameLength {
		return nil, fmt.Errorf("name cannot exceed %d characters", maxNameLength)
	}

	for _, r := range normalized {
		if unicode.IsControl(r) {
			return nil, fmt.Errorf("name contains invalid characters")
		}
	}

	if strings.Contains(normalized, "  ") {
		return nil, fmt.Errorf("name cannot contain consecutive spaces")
	}

	return &Name{value: normalized}, nil
}

func (n *Name) String() string {
	return n.value
}
