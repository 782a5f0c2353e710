package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Category classifies a failure for exit reporting and tests. Every error
// produced by this tool carries exactly one category.
type Category string

const (
	CredentialFetch  Category = "credential-fetch"
	CredentialFormat Category = "credential-format"
	MalformedConfig  Category = "malformed-config"
	ServerNotFound   Category = "server-not-found"
	Persistence      Category = "persistence"
	Auth             Category = "auth"
	Discovery        Category = "discovery"
)

// ToolError represents a structured error with context and suggestions
type ToolError struct {
	Category    Category // Failure classification
	Operation   string   // What operation was being performed
	Component   string   // Which component failed (secretstore, mcpconfig, etc.)
	Issue       string   // The core issue description
	Context     string   // Additional context about the failure
	Suggestions []string // List of actionable suggestions to fix the issue
	Cause       error    // Underlying error that caused this
}

func (e *ToolError) Error() string {
	var parts []string

	if e.Operation != "" && e.Component != "" {
		parts = append(parts, fmt.Sprintf("ERROR: %s failed in %s", e.Operation, e.Component))
	} else if e.Operation != "" {
		parts = append(parts, fmt.Sprintf("ERROR: %s failed", e.Operation))
	} else {
		parts = append(parts, "ERROR: Operation failed")
	}

	if e.Issue != "" {
		parts = append(parts, fmt.Sprintf("  Issue: %s", e.Issue))
	}

	if e.Context != "" {
		parts = append(parts, fmt.Sprintf("  Context: %s", e.Context))
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("  Cause: %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		parts = append(parts, "")
		parts = append(parts, "  Suggestions:")
		for i, suggestion := range e.Suggestions {
			parts = append(parts, fmt.Sprintf("  %d. %s", i+1, suggestion))
		}
	}

	return strings.Join(parts, "\n")
}

func (e *ToolError) Unwrap() error {
	return e.Cause
}

// CategoryOf returns the category of the first ToolError in err's chain,
// or the empty string if there is none.
func CategoryOf(err error) Category {
	var te *ToolError
	if errors.As(err, &te) {
		return te.Category
	}
	return ""
}

// Error constructors, one per failure category

// CredentialFetchError covers secret store access failures: the store is
// unreachable, the secret does not exist, or the caller lacks permission.
func CredentialFetchError(operation, secretID string, cause error) *ToolError {
	return &ToolError{
		Category:  CredentialFetch,
		Operation: operation,
		Component: "secret store",
		Issue:     "Failed to read the credentials secret",
		Context:   fmt.Sprintf("Secret: %s", secretID),
		Suggestions: []string{
			"Check AWS credentials: aws sts get-caller-identity",
			fmt.Sprintf("Verify the secret exists: aws secretsmanager describe-secret --secret-id %s", secretID),
			"Ensure the caller has secretsmanager:GetSecretValue on the secret",
		},
		Cause: cause,
	}
}

// AWSConfigError covers failures to assemble an AWS client at all, before
// any store call is made. Classified as a fetch failure: the store is
// unreachable either way.
func AWSConfigError(operation string, cause error) *ToolError {
	return &ToolError{
		Category:  CredentialFetch,
		Operation: operation,
		Component: "aws sdk",
		Issue:     "Cannot load AWS configuration",
		Suggestions: []string{
			"Check AWS credentials: aws sts get-caller-identity",
			"Set a region via -region, AWS_REGION, or your AWS profile",
		},
		Cause: cause,
	}
}

// CredentialFormatError covers a secret that was fetched successfully but
// whose payload cannot yield a usable bearer token.
func CredentialFormatError(operation, secretID, issue string, cause error) *ToolError {
	return &ToolError{
		Category:  CredentialFormat,
		Operation: operation,
		Component: "secret store",
		Issue:     issue,
		Context:   fmt.Sprintf("Secret: %s", secretID),
		Suggestions: []string{
			"The payload must be a JSON object with a non-empty \"bearer_token\" field",
			"Run 'idpmcp login' to store fresh credentials",
		},
		Cause: cause,
	}
}

// MalformedConfigError covers settings documents that cannot be patched:
// unparseable JSON, a missing mcpServers object, or a matched entry with
// no headers object to rotate.
func MalformedConfigError(operation, path, issue string, cause error) *ToolError {
	return &ToolError{
		Category:  MalformedConfig,
		Operation: operation,
		Component: "settings file",
		Issue:     issue,
		Context:   fmt.Sprintf("Settings file: %s", path),
		Suggestions: []string{
			fmt.Sprintf("Check the file is valid JSON: jq . '%s'", path),
			"The document needs a top-level \"mcpServers\" object",
			"Run 'idpmcp configure' to write a complete server entry",
		},
		Cause: cause,
	}
}

// ServerNotFoundError is returned when no server key in the settings
// document matches the expected naming pattern.
func ServerNotFoundError(operation, path string, keys []string) *ToolError {
	context := fmt.Sprintf("Settings file: %s (no server entries)", path)
	if len(keys) > 0 {
		context = fmt.Sprintf("Settings file: %s (entries: %s)", path, strings.Join(keys, ", "))
	}
	return &ToolError{
		Category:  ServerNotFound,
		Operation: operation,
		Component: "settings file",
		Issue:     "No MCP server entry matches the expected name",
		Context:   context,
		Suggestions: []string{
			"Server names are matched case-insensitively and must mention both \"idp\" and \"bedrock\"",
			"Run 'idpmcp configure' to add the idp-bedrock-agentcore entry",
		},
	}
}

// PersistenceError covers backup or write failures. The original settings
// file is guaranteed intact when this is returned.
func PersistenceError(operation, path, issue string, cause error) *ToolError {
	suggestions := []string{
		fmt.Sprintf("Check write permissions on '%s' and its directory", path),
	}
	if cause != nil && strings.Contains(cause.Error(), "no space") {
		suggestions = append(suggestions, "Check available disk space: df -h")
	}
	suggestions = append(suggestions, "The original settings file has not been modified")

	return &ToolError{
		Category:    Persistence,
		Operation:   operation,
		Component:   "file system",
		Issue:       issue,
		Context:     fmt.Sprintf("Target path: %s", path),
		Suggestions: suggestions,
		Cause:       cause,
	}
}

// DiscoveryError covers failures to look up deployed infrastructure,
// such as the agent ARN parameter written by the deployment tooling.
func DiscoveryError(operation, resource string, cause error) *ToolError {
	return &ToolError{
		Category:  Discovery,
		Operation: operation,
		Component: "infrastructure discovery",
		Issue:     fmt.Sprintf("Cannot find %s", resource),
		Suggestions: []string{
			"Make sure the IDP project and its MCP server are deployed",
			"Check the region matches the deployment",
		},
		Cause: cause,
	}
}

// AuthError covers Cognito authentication failures during token minting.
func AuthError(operation, username, issue string, cause error) *ToolError {
	return &ToolError{
		Category:  Auth,
		Operation: operation,
		Component: "authentication",
		Issue:     issue,
		Context:   fmt.Sprintf("User: %s", username),
		Suggestions: []string{
			"Check the password, or reset it in the Cognito console",
			"Verify the user pool client allows the USER_PASSWORD_AUTH flow",
		},
		Cause: cause,
	}
}

// Wrap provides a simple way to wrap existing errors with tool context.
// The wrapped error keeps the category of its cause, if any.
func Wrap(err error, operation, component string) error {
	if err == nil {
		return nil
	}

	return &ToolError{
		Category:  CategoryOf(err),
		Operation: operation,
		Component: component,
		Issue:     err.Error(),
		Cause:     err,
	}
}
