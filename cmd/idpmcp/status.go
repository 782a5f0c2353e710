package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/mcpconfig"
	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/report"
	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/secretstore"
)

type statusCommand struct {
	fs         *flag.FlagSet
	configFile string
	secretID   string
	region     string
	offline    bool
}

func newStatusCommand() *statusCommand {
	sc := &statusCommand{
		fs: flag.NewFlagSet("status", flag.ExitOnError),
	}

	sc.fs.StringVar(&sc.configFile, "config", "", "Path to the MCP settings file (default: Cline settings location)")
	sc.fs.StringVar(&sc.secretID, "secret-id", secretstore.DefaultSecretID, "Secrets Manager secret holding the credentials")
	sc.fs.StringVar(&sc.region, "region", "", "AWS region (default: SDK credential chain)")
	sc.fs.BoolVar(&sc.offline, "offline", false, "Skip the secret store comparison")

	sc.fs.Usage = func() {
		fmt.Fprintf(sc.fs.Output(), "Usage: idpmcp status [options]\n\n")
		fmt.Fprintf(sc.fs.Output(), "Show the configured idp-bedrock server entry and whether its token\n")
		fmt.Fprintf(sc.fs.Output(), "matches the one in Secrets Manager. Never writes anything\n\n")
		fmt.Fprintf(sc.fs.Output(), "Options:\n")
		sc.fs.PrintDefaults()
	}

	return sc
}

func (s *statusCommand) Name() string { return s.fs.Name() }

func (s *statusCommand) Init(args []string) error {
	return s.fs.Parse(args)
}

func (s *statusCommand) Run() error {
	reporter := report.New()

	cfgPath, err := settingsPath(s.configFile)
	if err != nil {
		return err
	}

	doc, err := mcpconfig.Load(cfgPath)
	if err != nil {
		return err
	}

	key, err := doc.Locate()
	if err != nil {
		return err
	}

	auth, err := doc.Authorization(key)
	if err != nil {
		return err
	}
	configured := mcpconfig.BearerToken(auth)

	reporter.Header("MCP server entry")
	reporter.Infof("Settings file: %s", cfgPath)
	reporter.Infof("Server entry:  %s", key)
	reporter.Infof("URL:           %s", doc.ServerURL(key))
	reporter.Infof("Token:         %s", report.Preview(configured))

	if s.offline {
		return nil
	}

	ctx := context.Background()
	store, err := secretstore.NewClient(ctx, s.region)
	if err != nil {
		return err
	}
	creds, err := store.Fetch(ctx, s.secretID)
	if err != nil {
		return err
	}

	if creds.BearerToken == configured {
		reporter.Successf("Token matches the secret store")
	} else {
		reporter.Warnf("Token is stale: secret store holds %s. Run 'idpmcp refresh'", report.Preview(creds.BearerToken))
	}
	return nil
}
