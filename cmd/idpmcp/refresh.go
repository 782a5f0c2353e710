package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/mcpconfig"
	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/report"
	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/secretstore"
)

type refreshCommand struct {
	fs         *flag.FlagSet
	configFile string
	secretID   string
	region     string
	dryRun     bool
}

func newRefreshCommand() *refreshCommand {
	rc := &refreshCommand{
		fs: flag.NewFlagSet("refresh", flag.ExitOnError),
	}

	rc.fs.StringVar(&rc.configFile, "config", "", "Path to the MCP settings file (default: Cline settings location)")
	rc.fs.StringVar(&rc.secretID, "secret-id", secretstore.DefaultSecretID, "Secrets Manager secret holding the credentials")
	rc.fs.StringVar(&rc.region, "region", "", "AWS region (default: SDK credential chain)")
	rc.fs.BoolVar(&rc.dryRun, "dry-run", false, "Report the would-be change without writing anything")

	rc.fs.Usage = func() {
		fmt.Fprintf(rc.fs.Output(), "Usage: idpmcp refresh [options]\n\n")
		fmt.Fprintf(rc.fs.Output(), "Fetch the current bearer token from Secrets Manager and rotate the\n")
		fmt.Fprintf(rc.fs.Output(), "Authorization header of the idp-bedrock server entry\n\n")
		fmt.Fprintf(rc.fs.Output(), "Options:\n")
		rc.fs.PrintDefaults()
	}

	return rc
}

func (r *refreshCommand) Name() string { return r.fs.Name() }

func (r *refreshCommand) Init(args []string) error {
	return r.fs.Parse(args)
}

func (r *refreshCommand) Run() error {
	ctx := context.Background()
	reporter := report.New()

	cfgPath, err := settingsPath(r.configFile)
	if err != nil {
		return err
	}

	store, err := secretstore.NewClient(ctx, r.region)
	if err != nil {
		return err
	}
	creds, err := store.Fetch(ctx, r.secretID)
	if err != nil {
		return err
	}

	return rotateToken(cfgPath, creds.BearerToken, r.dryRun, reporter)
}

// rotateToken runs the locate-patch-report pipeline against one settings
// file. Dry run goes through the identical detection and validation steps
// and diverges only at the write.
func rotateToken(cfgPath, token string, dryRun bool, reporter *report.Reporter) error {
	doc, err := mcpconfig.Load(cfgPath)
	if err != nil {
		return err
	}

	key, err := doc.Locate()
	if err != nil {
		return err
	}

	oldToken, err := doc.SetAuthorization(key, token)
	if err != nil {
		return err
	}

	change := report.Change{
		File:      cfgPath,
		ServerKey: key,
		OldToken:  oldToken,
		NewToken:  token,
	}

	if dryRun {
		reporter.DryRun(change)
		return nil
	}

	backupPath, err := doc.Save(time.Now())
	if err != nil {
		return err
	}

	reporter.Applied(change, backupPath)
	return nil
}

// settingsPath applies the platform default when no override is given.
func settingsPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return mcpconfig.DefaultPath()
}
