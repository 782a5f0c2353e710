package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{"empty token", "", "(none)"},
		{"long token truncated", "eyJraWQiOiJabc123456789", "eyJraWQi..."},
		{"exactly preview length", "12345678", "1234..."},
		{"short token halved", "abcd", "ab..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.token); got != tt.expected {
				t.Errorf("Preview(%q) = %q, want %q", tt.token, got, tt.expected)
			}
		})
	}
}

func TestPreviewNeverReturnsFullToken(t *testing.T) {
	tokens := []string{"eyJraWQiOiJabc123456789", "12345678", "secret", "ab"}
	for _, token := range tokens {
		if got := Preview(token); strings.Contains(got, token) {
			t.Errorf("Preview(%q) = %q leaks the full token", token, got)
		}
	}
}

func TestReporterOutputOmitsFullTokens(t *testing.T) {
	var buf bytes.Buffer
	r := &Reporter{Out: &buf}

	change := Change{
		File:      "/home/user/cline_mcp_settings.json",
		ServerKey: "idp-bedrock-agentcore",
		OldToken:  "eyJOLDTOKENOLDTOKENOLDTOKEN",
		NewToken:  "eyJNEWTOKENNEWTOKENNEWTOKEN",
	}

	r.DryRun(change)
	r.Applied(change, "/home/user/cline_mcp_settings.json.backup.20260827120000")
	out := buf.String()

	for _, token := range []string{change.OldToken, change.NewToken} {
		if strings.Contains(out, token) {
			t.Errorf("Reporter output contains full token %q:\n%s", token, out)
		}
	}

	if !strings.Contains(out, "DRY RUN") {
		t.Errorf("Expected dry-run marker in output:\n%s", out)
	}
	if !strings.Contains(out, "idp-bedrock-agentcore") {
		t.Errorf("Expected server key in output:\n%s", out)
	}
	if !strings.Contains(out, ".backup.20260827120000") {
		t.Errorf("Expected backup path in output:\n%s", out)
	}
}
