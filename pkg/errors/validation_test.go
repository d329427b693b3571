package errors

import (
	"strings"
	"testing"
)

func TestValidateProblemName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "knapsack", false},
		{"valid with dash", "twisted-cubic", false},
		{"valid with underscore", "my_problem", false},
		{"valid with dot", "transport.v2", false},
		{"valid with digits", "a3x3", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"path traversal ..", "foo..bar", true},
		{"path separator", "foo/bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"leading dot", ".hidden", true},
		{"space", "foo bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProblemName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateProblemName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			// Every rejection carries INVALID_INPUT.
			if err != nil && GetCode(err) != ErrCodeInvalidInput {
				t.Errorf("GetCode = %q, want %q", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}
