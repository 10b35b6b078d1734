package value_objects

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "normalizes case and spaces", input: "  Alice@Example.COM ", want: "alice@example.com"},
		{name: "empty", input: "   ", wantErr: true},
		{name: "missing domain", input: "alice@", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 250) + "@example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, err := NewEmail(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, email.String())
		})
	}
}

func TestEmail_Equals(t *testing.T) {
	a, _ := NewEmail("bob@example.com")
	b, _ := NewEmail("BOB@example.com")
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(nil))
}

func TestNewName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "trims", input: "  Bob Builder ", want: "Bob Builder"},
		{name: "unicode letters", input: "José Núñez", want: "José Núñez"},
		{name: "composes decomposed accents", input: "Jose\u0301", want: "Jos\u00e9"},
		{name: "single character", input: "B", wantErr: true},
		{name: "consecutive spaces", input: "Bob  Builder", wantErr: true},
		{name: "control character", input: "Bob\x00", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 101), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.String())
		})
	}
}
