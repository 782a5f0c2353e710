package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/cognito"
	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/errors"
	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/report"
	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/secretstore"
)

type loginCommand struct {
	fs            *flag.FlagSet
	username      string
	projectConfig string
	configFile    string
	secretID      string
	region        string
	refreshConfig bool
}

// projectConfigFile mirrors the deployment's config.yml, which names the
// Cognito users of the stack.
type projectConfigFile struct {
	Authentication struct {
		Users []string `yaml:"users"`
	} `yaml:"authentication"`
}

func newLoginCommand() *loginCommand {
	lc := &loginCommand{
		fs: flag.NewFlagSet("login", flag.ExitOnError),
	}

	lc.fs.StringVar(&lc.username, "username", "", "Cognito username (default: first user in config.yml)")
	lc.fs.StringVar(&lc.projectConfig, "config-yml", "config.yml", "Project config.yml to read the username from")
	lc.fs.StringVar(&lc.configFile, "config", "", "Path to the MCP settings file (default: Cline settings location)")
	lc.fs.StringVar(&lc.secretID, "secret-id", secretstore.DefaultSecretID, "Secrets Manager secret holding the credentials")
	lc.fs.StringVar(&lc.region, "region", "", "AWS region (default: SDK credential chain)")
	lc.fs.BoolVar(&lc.refreshConfig, "refresh-config", false, "Also rotate the token in the MCP settings file")

	lc.fs.Usage = func() {
		fmt.Fprintf(lc.fs.Output(), "Usage: idpmcp login [options]\n\n")
		fmt.Fprintf(lc.fs.Output(), "Authenticate against the deployment's Cognito user pool, mint a\n")
		fmt.Fprintf(lc.fs.Output(), "fresh bearer token, and store it in Secrets Manager\n\n")
		fmt.Fprintf(lc.fs.Output(), "Options:\n")
		lc.fs.PrintDefaults()
	}

	return lc
}

func (l *loginCommand) Name() string { return l.fs.Name() }

func (l *loginCommand) Init(args []string) error {
	return l.fs.Parse(args)
}

func (l *loginCommand) Run() error {
	ctx := context.Background()
	reporter := report.New()

	username, err := l.resolveUsername()
	if err != nil {
		return err
	}

	store, err := secretstore.NewClient(ctx, l.region)
	if err != nil {
		return err
	}
	creds, err := store.Fetch(ctx, l.secretID)
	if err != nil {
		return err
	}
	if creds.ClientID == "" {
		return errors.CredentialFormatError(
			"Preparing login",
			l.secretID,
			"\"client_id\" field is missing; cannot authenticate without the user pool client",
			nil,
		)
	}

	password, err := promptPassword(username)
	if err != nil {
		return err
	}

	idp, err := cognito.NewClient(ctx, l.region)
	if err != nil {
		return err
	}
	token, err := idp.Authenticate(ctx, creds.ClientID, username, password)
	if err != nil {
		return err
	}

	creds.BearerToken = token
	creds.Username = username
	if err := store.Store(ctx, l.secretID, creds); err != nil {
		return err
	}

	reporter.Successf("New bearer token stored")
	reporter.Infof("Secret: %s", l.secretID)
	reporter.Infof("User:   %s", username)
	reporter.Infof("Token:  %s", report.Preview(token))

	if !l.refreshConfig {
		reporter.Infof("Run 'idpmcp refresh' to update the MCP settings file")
		return nil
	}

	cfgPath, err := settingsPath(l.configFile)
	if err != nil {
		return err
	}
	return rotateToken(cfgPath, token, false, reporter)
}

// resolveUsername prefers the flag, then falls back to the deployment's
// config.yml the way the deploy tooling does.
func (l *loginCommand) resolveUsername() (string, error) {
	if l.username != "" {
		return l.username, nil
	}

	data, err := os.ReadFile(l.projectConfig)
	if err != nil {
		return "", fmt.Errorf("no username: pass -username or provide %s: %w", l.projectConfig, err)
	}

	var cfg projectConfigFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return "", fmt.Errorf("parsing %s: %w", l.projectConfig, err)
	}
	if len(cfg.Authentication.Users) == 0 {
		return "", fmt.Errorf("no users under authentication.users in %s; pass -username", l.projectConfig)
	}
	return cfg.Authentication.Users[0], nil
}

func promptPassword(username string) (string, error) {
	fmt.Fprintf(os.Stderr, "Password for %s: ", username)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}

	password := strings.TrimSpace(string(raw))
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}
