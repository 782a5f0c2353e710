package mcpconfig

import (
	"strings"

	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/errors"
)

// nameTerms must both appear in a server name, in either order, for it to
// be treated as the idp-bedrock entry. Matching is case-insensitive.
var nameTerms = [...]string{"idp", "bedrock"}

// MatchesServerName reports whether a server entry key names the
// idp-bedrock MCP server.
func MatchesServerName(name string) bool {
	lower := strings.ToLower(name)
	for _, term := range nameTerms {
		if !strings.Contains(lower, term) {
			return false
		}
	}
	return true
}

// Locate returns the server entry key to patch. Names are checked in
// sorted order and the first match wins; when several entries match, the
// choice is deterministic but otherwise arbitrary.
func (d *Document) Locate() (string, error) {
	names := d.ServerNames()
	for _, name := range names {
		if MatchesServerName(name) {
			return name, nil
		}
	}
	return "", errors.ServerNotFoundError("Locating server entry", d.path, names)
}
