package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/errors"
	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/mcpconfig"
	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/report"
	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/secretstore"
)

type checkCommand struct {
	fs         *flag.FlagSet
	configFile string
	url        string
	secretID   string
	region     string
	timeout    time.Duration
}

func newCheckCommand() *checkCommand {
	cc := &checkCommand{
		fs: flag.NewFlagSet("check", flag.ExitOnError),
	}

	cc.fs.StringVar(&cc.configFile, "config", "", "Path to the MCP settings file (default: Cline settings location)")
	cc.fs.StringVar(&cc.url, "url", "", "MCP server URL (default: the configured entry's url)")
	cc.fs.StringVar(&cc.secretID, "secret-id", secretstore.DefaultSecretID, "Secrets Manager secret holding the credentials")
	cc.fs.StringVar(&cc.region, "region", "", "AWS region (default: SDK credential chain)")
	cc.fs.DurationVar(&cc.timeout, "timeout", 30*time.Second, "Overall probe timeout")

	cc.fs.Usage = func() {
		fmt.Fprintf(cc.fs.Output(), "Usage: idpmcp check [options]\n\n")
		fmt.Fprintf(cc.fs.Output(), "Connect to the idp-bedrock MCP server with the configured bearer\n")
		fmt.Fprintf(cc.fs.Output(), "token and list the tools it exposes\n\n")
		fmt.Fprintf(cc.fs.Output(), "Options:\n")
		cc.fs.PrintDefaults()
	}

	return cc
}

func (c *checkCommand) Name() string { return c.fs.Name() }

func (c *checkCommand) Init(args []string) error {
	return c.fs.Parse(args)
}

func (c *checkCommand) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	reporter := report.New()

	url, token, err := c.resolveTarget(ctx)
	if err != nil {
		return err
	}

	reporter.Header("Probing MCP server")
	reporter.Infof("URL:   %s", url)
	reporter.Infof("Token: %s", report.Preview(token))

	mcpClient, err := client.NewStreamableHttpClient(url, transport.WithHTTPHeaders(map[string]string{
		"Authorization": mcpconfig.BearerPrefix + token,
	}))
	if err != nil {
		return errors.Wrap(err, "Connecting to MCP server", "mcp client")
	}
	defer func() {
		_ = mcpClient.Close()
	}()

	if err := mcpClient.Start(ctx); err != nil {
		return errors.Wrap(err, "Connecting to MCP server", "mcp client")
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.Capabilities = mcp.ClientCapabilities{}
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "idpmcp",
		Version: version,
	}

	initResult, err := mcpClient.Initialize(ctx, initReq)
	if err != nil {
		return errors.Wrap(err, "Initializing MCP session", "mcp client")
	}
	reporter.Successf("Connected to %s %s", initResult.ServerInfo.Name, initResult.ServerInfo.Version)

	toolsResult, err := mcpClient.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return errors.Wrap(err, "Listing tools", "mcp client")
	}

	if len(toolsResult.Tools) == 0 {
		reporter.Warnf("Server exposes no tools")
		return nil
	}
	reporter.Infof("Tools (%d):", len(toolsResult.Tools))
	for _, tool := range toolsResult.Tools {
		reporter.Infof("  - %s", tool.Name)
	}
	return nil
}

// resolveTarget picks the URL and token, preferring the settings entry
// and falling back to the flag plus the secret store.
func (c *checkCommand) resolveTarget(ctx context.Context) (url, token string, err error) {
	if c.url == "" {
		cfgPath, err := settingsPath(c.configFile)
		if err != nil {
			return "", "", err
		}
		doc, err := mcpconfig.Load(cfgPath)
		if err != nil {
			return "", "", err
		}
		key, err := doc.Locate()
		if err != nil {
			return "", "", err
		}
		url = doc.ServerURL(key)
		if url == "" {
			return "", "", errors.MalformedConfigError(
				"Resolving probe target",
				cfgPath,
				"Server entry \""+key+"\" has no \"url\" field",
				nil,
			)
		}
		auth, err := doc.Authorization(key)
		if err != nil {
			return "", "", err
		}
		token = mcpconfig.BearerToken(auth)
	} else {
		url = c.url
	}

	if token == "" {
		store, err := secretstore.NewClient(ctx, c.region)
		if err != nil {
			return "", "", err
		}
		creds, err := store.Fetch(ctx, c.secretID)
		if err != nil {
			return "", "", err
		}
		token = creds.BearerToken
	}

	return url, token, nil
}
