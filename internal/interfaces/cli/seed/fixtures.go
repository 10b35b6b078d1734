package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var builtinFixtures []byte

// Fixtures is the demo data set written by the seed command
type Fixtures struct {
	Password string          `yaml:"password"`
	Users    []UserFixture   `yaml:"users"`
	Tickets  []TicketFixture `yaml:"tickets"`
}

// UserFixture is one demo account. Key is how tickets refer to it.
type UserFixture struct {
	Key   string `yaml:"key"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Role  string `yaml:"role"`
}

// TicketFixture describes a ticket and the state it should end up in. The
// activity trail is derived from walking the lifecycle up to Status.
type TicketFixture struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Priority    string   `yaml:"priority"`
	Status      string   `yaml:"status"`
	Tenant      string   `yaml:"tenant"`
	Assignee    string   `yaml:"assignee"`
	AssignedBy  string   `yaml:"assigned_by"`
	ImageURLs   []string `yaml:"image_urls"`
}

// LoadFixtures reads fixtures from path, or the built-in demo set when path is empty.
func LoadFixtures(path string) (*Fixtures, error) {
	data := builtinFixtures
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read fixtures: %w", err)
		}
		data = raw
	}
	return ParseFixtures(data)
}

// ParseFixtures decodes and checks cross references between users and tickets.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	if f.Password == "" {
		return nil, fmt.Errorf("fixtures: password is required")
	}

	keys := make(map[string]struct{}, len(f.Users))
	for _, u := range f.Users {
		if u.Key == "" {
			return nil, fmt.Errorf("fixtures: user %q has no key", u.Email)
		}
		if _, dup := keys[u.Key]; dup {
			return nil, fmt.Errorf("fixtures: duplicate user key %q", u.Key)
		}
		keys[u.Key] = struct{}{}
	}

	for _, t := range f.Tickets {
		for _, ref := range []string{t.Tenant, t.Assignee, t.AssignedBy} {
			if ref == "" {
				continue
			}
			if _, ok := keys[ref]; !ok {
				return nil, fmt.Errorf("fixtures: ticket %q references unknown user %q", t.Title, ref)
			}
		}
	}

	return &f, nil
}
