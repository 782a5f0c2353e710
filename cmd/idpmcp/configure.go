package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/agentcore"
	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/mcpconfig"
	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/report"
	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/secretstore"
)

type configureCommand struct {
	fs         *flag.FlagSet
	configFile string
	secretID   string
	region     string
	serverName string
	print      bool
}

func newConfigureCommand() *configureCommand {
	cc := &configureCommand{
		fs: flag.NewFlagSet("configure", flag.ExitOnError),
	}

	cc.fs.StringVar(&cc.configFile, "config", "", "Path to the MCP settings file (default: Cline settings location)")
	cc.fs.StringVar(&cc.secretID, "secret-id", secretstore.DefaultSecretID, "Secrets Manager secret holding the credentials")
	cc.fs.StringVar(&cc.region, "region", "", "AWS region (default: SDK credential chain)")
	cc.fs.StringVar(&cc.serverName, "server-name", mcpconfig.DefaultServerName, "Server entry key to write")
	cc.fs.BoolVar(&cc.print, "print", false, "Print the entry as JSON instead of writing the settings file")

	cc.fs.Usage = func() {
		fmt.Fprintf(cc.fs.Output(), "Usage: idpmcp configure [options]\n\n")
		fmt.Fprintf(cc.fs.Output(), "Discover the deployed AgentCore runtime and write a complete\n")
		fmt.Fprintf(cc.fs.Output(), "idp-bedrock server entry into the MCP settings file\n\n")
		fmt.Fprintf(cc.fs.Output(), "Options:\n")
		cc.fs.PrintDefaults()
	}

	return cc
}

func (c *configureCommand) Name() string { return c.fs.Name() }

func (c *configureCommand) Init(args []string) error {
	return c.fs.Parse(args)
}

func (c *configureCommand) Run() error {
	ctx := context.Background()
	reporter := report.New()

	ac, err := agentcore.NewClient(ctx, c.region)
	if err != nil {
		return err
	}
	arn, err := ac.AgentARN(ctx)
	if err != nil {
		return err
	}
	url := agentcore.InvocationURL(arn, ac.Region())

	store, err := secretstore.NewClient(ctx, c.region)
	if err != nil {
		return err
	}
	creds, err := store.Fetch(ctx, c.secretID)
	if err != nil {
		return err
	}

	entry := mcpconfig.NewAgentCoreEntry(url, creds.BearerToken)

	if c.print {
		out := map[string]map[string]mcpconfig.ServerEntry{
			mcpconfig.ServersKey: {c.serverName: entry},
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	cfgPath, err := settingsPath(c.configFile)
	if err != nil {
		return err
	}

	doc, err := mcpconfig.LoadOrInit(cfgPath)
	if err != nil {
		return err
	}
	if err := doc.SetServer(c.serverName, entry); err != nil {
		return err
	}

	backupPath, err := doc.Save(time.Now())
	if err != nil {
		return err
	}

	reporter.Successf("Server entry written")
	reporter.Infof("Settings file: %s", cfgPath)
	reporter.Infof("Server entry:  %s", c.serverName)
	reporter.Infof("URL:           %s", url)
	reporter.Infof("Token:         %s", report.Preview(creds.BearerToken))
	if backupPath != "" {
		reporter.Infof("Backup:        %s", backupPath)
	}
	return nil
}
