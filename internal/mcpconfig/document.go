// Package mcpconfig reads and rewrites the MCP client settings file
// (Cline / Amazon Q) that carries the idp-bedrock server entry.
//
// The document is held as layers of raw JSON so that a patch touches only
// the field it targets: every unrelated key, server entry and nested
// structure round-trips with its value intact. The serializer normalises
// whitespace and key order, nothing else.
//
// Known limitation: two concurrent runs against the same settings file
// race, last writer wins, and the second-granularity backup suffix may
// collide. Runs are expected to be manual and one at a time.
package mcpconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/errors"
)

const (
	// ServersKey is the fixed top-level key of the settings document.
	ServersKey = "mcpServers"

	// DefaultServerName is the entry key written by configure, matching
	// the name the deployment tooling registers.
	DefaultServerName = "idp-bedrock-agentcore"

	fileMode = os.FileMode(0600)
)

// Document is a parsed settings file. Unrecognised content is kept as raw
// JSON and written back untouched.
type Document struct {
	path     string
	exists   bool
	original []byte
	mode     os.FileMode

	root    map[string]json.RawMessage
	servers map[string]json.RawMessage
}

// Load reads and parses a settings document. The file must exist, parse
// as a JSON object, and contain the mcpServers object.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.MalformedConfigError(
			"Loading settings",
			path,
			"Cannot read settings file",
			err,
		)
	}

	mode := fileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	doc := &Document{
		path:     path,
		exists:   true,
		original: data,
		mode:     mode,
	}

	if err := json.Unmarshal(data, &doc.root); err != nil {
		return nil, errors.MalformedConfigError(
			"Loading settings",
			path,
			"Settings file is not a valid JSON object",
			err,
		)
	}

	rawServers, ok := doc.root[ServersKey]
	if !ok {
		return nil, errors.MalformedConfigError(
			"Loading settings",
			path,
			"Top-level \"mcpServers\" object is missing",
			nil,
		)
	}

	if err := json.Unmarshal(rawServers, &doc.servers); err != nil {
		return nil, errors.MalformedConfigError(
			"Loading settings",
			path,
			"\"mcpServers\" is not a JSON object",
			err,
		)
	}

	return doc, nil
}

// LoadOrInit behaves like Load, but a missing file yields an empty
// document instead of an error. Used by configure, which is allowed to
// bootstrap; refresh always goes through Load.
func LoadOrInit(path string) (*Document, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Document{
			path:    path,
			mode:    fileMode,
			root:    map[string]json.RawMessage{},
			servers: map[string]json.RawMessage{},
		}, nil
	}
	return Load(path)
}

// Path returns the settings file location this document was read from.
func (d *Document) Path() string { return d.path }

// ServerNames returns all server entry keys in sorted order. Sorting is
// what makes "first match wins" deterministic; Go map iteration is not.
func (d *Document) ServerNames() []string {
	names := make([]string, 0, len(d.servers))
	for name := range d.servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarshalIndent serializes the document with the patched servers object
// folded back into the otherwise untouched root. MarshalIndent reformats
// nested raw values, so the whole file comes out uniformly indented; key
// order in JSON objects is not semantic and the contract only protects
// values.
func (d *Document) MarshalIndent() ([]byte, error) {
	rawServers, err := json.Marshal(d.servers)
	if err != nil {
		return nil, err
	}
	d.root[ServersKey] = rawServers

	data, err := json.MarshalIndent(d.root, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// DefaultPath returns the platform-conventional Cline settings location.
func DefaultPath() (string, error) {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "Code", "User", "globalStorage",
			"saoudrizwan.claude-dev", "settings", "cline_mcp_settings.json"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", "Code", "User",
			"globalStorage", "saoudrizwan.claude-dev", "settings", "cline_mcp_settings.json"), nil
	}

	return filepath.Join(home, ".config", "Code", "User",
		"globalStorage", "saoudrizwan.claude-dev", "settings", "cline_mcp_settings.json"), nil
}
