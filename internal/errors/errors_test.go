package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestToolError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ToolError
		expected []string // Expected strings that should be in the output
	}{
		{
			name: "Complete error with all fields",
			err: &ToolError{
				Category:    Persistence,
				Operation:   "Writing settings file",
				Component:   "file system",
				Issue:       "Permission denied",
				Context:     "Target path: /home/user/.config/cline_mcp_settings.json",
				Suggestions: []string{"Check permissions", "Free disk space"},
				Cause:       fmt.Errorf("underlying error"),
			},
			expected: []string{
				"ERROR: Writing settings file failed in file system",
				"Issue: Permission denied",
				"Context: Target path: /home/user/.config/cline_mcp_settings.json",
				"Cause: underlying error",
				"Suggestions:",
				"1. Check permissions",
				"2. Free disk space",
			},
		},
		{
			name: "Minimal error with just operation",
			err: &ToolError{
				Operation: "Token rotation",
			},
			expected: []string{
				"ERROR: Token rotation failed",
			},
		},
		{
			name: "Error without operation but with component",
			err: &ToolError{
				Component: "settings file",
				Issue:     "Invalid JSON",
			},
			expected: []string{
				"ERROR: Operation failed",
				"Issue: Invalid JSON",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()

			for _, expected := range tt.expected {
				if !strings.Contains(result, expected) {
					t.Errorf("Expected error message to contain %q, but got:\n%s", expected, result)
				}
			}
		})
	}
}

func TestCategoryOf(t *testing.T) {
	fetchErr := CredentialFetchError("Fetching credentials", "idp-bedrock-mcp/cognito/credentials", fmt.Errorf("timeout"))
	if got := CategoryOf(fetchErr); got != CredentialFetch {
		t.Errorf("Expected category %q, got %q", CredentialFetch, got)
	}

	wrapped := Wrap(fetchErr, "Refreshing token", "cli")
	if got := CategoryOf(wrapped); got != CredentialFetch {
		t.Errorf("Expected wrapped error to keep category %q, got %q", CredentialFetch, got)
	}

	if got := CategoryOf(fmt.Errorf("plain")); got != "" {
		t.Errorf("Expected empty category for plain error, got %q", got)
	}
}

func TestConstructorCategories(t *testing.T) {
	tests := []struct {
		name     string
		err      *ToolError
		category Category
	}{
		{"credential fetch", CredentialFetchError("op", "secret-id", nil), CredentialFetch},
		{"credential format", CredentialFormatError("op", "secret-id", "empty token", nil), CredentialFormat},
		{"malformed config", MalformedConfigError("op", "/tmp/settings.json", "bad JSON", nil), MalformedConfig},
		{"server not found", ServerNotFoundError("op", "/tmp/settings.json", []string{"other-service"}), ServerNotFound},
		{"persistence", PersistenceError("op", "/tmp/settings.json", "rename failed", nil), Persistence},
		{"auth", AuthError("op", "user", "bad password", nil), Auth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Category != tt.category {
				t.Errorf("Expected category %q, got %q", tt.category, tt.err.Category)
			}
		})
	}
}

func TestServerNotFoundError_ListsEntries(t *testing.T) {
	err := ServerNotFoundError("Locating server entry", "/tmp/settings.json", []string{"other-service", "filesystem"})
	msg := err.Error()

	if !strings.Contains(msg, "other-service") || !strings.Contains(msg, "filesystem") {
		t.Errorf("Expected message to list existing entries, got:\n%s", msg)
	}
}
