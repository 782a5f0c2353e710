package mcpconfig

import (
	"encoding/json"
	"strings"

	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/errors"
)

const (
	authorizationHeader = "Authorization"

	// BearerPrefix is the literal scheme prefix of the rotated header.
	BearerPrefix = "Bearer "
)

// BearerToken extracts the token from an Authorization header value, or
// returns "" when the value does not carry the Bearer scheme.
func BearerToken(header string) string {
	if !strings.HasPrefix(header, BearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(header, BearerPrefix)
}

// Authorization returns the current Authorization header value of the
// named server entry, or "" when the entry has no such header. Structural
// problems (entry or headers object missing) are MalformedConfig errors.
func (d *Document) Authorization(name string) (string, error) {
	headers, _, err := d.serverHeaders(name)
	if err != nil {
		return "", err
	}

	raw, ok := headers[authorizationHeader]
	if !ok {
		return "", nil
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", errors.MalformedConfigError(
			"Reading Authorization header",
			d.path,
			"Authorization header is not a string",
			err,
		)
	}
	return value, nil
}

// SetAuthorization rewrites the Authorization header of the named server
// entry to "Bearer " + token and returns the previous token, if any.
// Everything else in the entry is untouched. A missing headers object is
// an error: this operation rotates an existing credential, it never
// bootstraps a server entry.
func (d *Document) SetAuthorization(name, token string) (oldToken string, err error) {
	headers, entry, err := d.serverHeaders(name)
	if err != nil {
		return "", err
	}

	if raw, ok := headers[authorizationHeader]; ok {
		var value string
		if jsonErr := json.Unmarshal(raw, &value); jsonErr == nil {
			oldToken = BearerToken(value)
		}
	}

	newValue, err := json.Marshal(BearerPrefix + token)
	if err != nil {
		return "", err
	}
	headers[authorizationHeader] = newValue

	rawHeaders, err := json.Marshal(headers)
	if err != nil {
		return "", err
	}
	entry["headers"] = rawHeaders

	rawEntry, err := json.Marshal(entry)
	if err != nil {
		return "", err
	}
	d.servers[name] = rawEntry

	return oldToken, nil
}

// SetServer replaces or creates a whole server entry. Used by configure;
// token rotation goes through SetAuthorization.
func (d *Document) SetServer(name string, entry interface{}) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return errors.MalformedConfigError(
			"Writing server entry",
			d.path,
			"Cannot serialize server entry",
			err,
		)
	}
	d.servers[name] = raw
	return nil
}

// ServerURL returns the url field of the named entry, or "" if absent.
func (d *Document) ServerURL(name string) string {
	raw, ok := d.servers[name]
	if !ok {
		return ""
	}
	var entry struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &entry); err != nil {
		return ""
	}
	return entry.URL
}

// serverHeaders decodes the named entry and its headers object, each as a
// raw-preserving map so sibling fields survive re-serialization verbatim.
func (d *Document) serverHeaders(name string) (map[string]json.RawMessage, map[string]json.RawMessage, error) {
	rawEntry, ok := d.servers[name]
	if !ok {
		return nil, nil, errors.ServerNotFoundError("Reading server entry", d.path, d.ServerNames())
	}

	var entry map[string]json.RawMessage
	if err := json.Unmarshal(rawEntry, &entry); err != nil {
		return nil, nil, errors.MalformedConfigError(
			"Reading server entry",
			d.path,
			"Server entry \""+name+"\" is not a JSON object",
			err,
		)
	}

	rawHeaders, ok := entry["headers"]
	if !ok {
		return nil, nil, errors.MalformedConfigError(
			"Reading server entry",
			d.path,
			"Server entry \""+name+"\" has no \"headers\" object to rotate",
			nil,
		)
	}

	var headers map[string]json.RawMessage
	if err := json.Unmarshal(rawHeaders, &headers); err != nil {
		return nil, nil, errors.MalformedConfigError(
			"Reading server entry",
			d.path,
			"\"headers\" of server entry \""+name+"\" is not a JSON object",
			err,
		)
	}

	return headers, entry, nil
}
