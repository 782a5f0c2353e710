package mcpconfig

// ServerEntry is the full idp-bedrock-agentcore entry written by
// configure. Field set and defaults match what the deployment tooling
// generates for Cline / Amazon Q.
type ServerEntry struct {
	Disabled    bool              `json:"disabled"`
	Timeout     int               `json:"timeout"`
	Type        string            `json:"type"`
	AutoApprove []string          `json:"autoApprove"`
	URL         string            `json:"url"`
	Headers     map[string]string `json:"headers"`
	Debug       bool              `json:"debug"`
}

// NewAgentCoreEntry builds a streamable-HTTP entry pointing at the
// AgentCore invocation URL with the bearer token already set.
func NewAgentCoreEntry(url, token string) ServerEntry {
	return ServerEntry{
		Disabled:    false,
		Timeout:     30000,
		Type:        "streamableHttp",
		AutoApprove: []string{},
		URL:         url,
		Headers: map[string]string{
			"Authorization": BearerPrefix + token,
			"Content-Type":  "application/json",
			"Accept":        "application/json, text/event-stream",
		},
		Debug: true,
	}
}
