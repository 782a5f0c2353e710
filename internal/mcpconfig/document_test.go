package mcpconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/errors"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cline_mcp_settings.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write settings file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeSettings(t, `{
        "mcpServers": {
            "idp-bedrock-agentcore": {
                "url": "https://example.com/mcp",
                "headers": {"Authorization": "Bearer OLD"}
            }
        }
    }`)

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}

	names := doc.ServerNames()
	if len(names) != 1 || names[0] != "idp-bedrock-agentcore" {
		t.Errorf("Expected one server entry idp-bedrock-agentcore, got %v", names)
	}

	if url := doc.ServerURL("idp-bedrock-agentcore"); url != "https://example.com/mcp" {
		t.Errorf("Expected server URL https://example.com/mcp, got %q", url)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if got := errors.CategoryOf(err); got != errors.MalformedConfig {
		t.Errorf("Expected category %q, got %q", errors.MalformedConfig, got)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeSettings(t, `{"mcpServers": `)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
	if got := errors.CategoryOf(err); got != errors.MalformedConfig {
		t.Errorf("Expected category %q, got %q", errors.MalformedConfig, got)
	}
}

func TestLoadMissingServersKey(t *testing.T) {
	path := writeSettings(t, `{"servers": {}}`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Expected error for missing mcpServers key")
	}
	if got := errors.CategoryOf(err); got != errors.MalformedConfig {
		t.Errorf("Expected category %q, got %q", errors.MalformedConfig, got)
	}
}

func TestLoadOrInitMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh", "cline_mcp_settings.json")

	doc, err := LoadOrInit(path)
	if err != nil {
		t.Fatalf("Failed to init document: %v", err)
	}
	if len(doc.ServerNames()) != 0 {
		t.Errorf("Expected empty document, got entries %v", doc.ServerNames())
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("Failed to resolve default path: %v", err)
	}
	if !strings.HasSuffix(path, "cline_mcp_settings.json") {
		t.Errorf("Expected default path to end in cline_mcp_settings.json, got %q", path)
	}
	if !filepath.IsAbs(path) {
		t.Errorf("Expected absolute default path, got %q", path)
	}
}
