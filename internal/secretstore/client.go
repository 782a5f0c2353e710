// Package secretstore reads and writes the MCP credentials secret held in
// AWS Secrets Manager.
package secretstore

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/errors"
)

// DefaultSecretID is where the deployment tooling stores the Cognito
// credentials for the MCP server.
const DefaultSecretID = "idp-bedrock-mcp/cognito/credentials"

// Credentials is the JSON payload of the credentials secret.
type Credentials struct {
	BearerToken  string `json:"bearer_token"`
	Username     string `json:"username,omitempty"`
	ClientID     string `json:"client_id,omitempty"`
	DiscoveryURL string `json:"discovery_url,omitempty"`
}

// api is the slice of the Secrets Manager client this package uses.
type api interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	PutSecretValue(ctx context.Context, params *secretsmanager.PutSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.PutSecretValueOutput, error)
}

type Client struct {
	sm api
}

// NewClient builds a client from the default AWS credential chain. An
// empty region defers to the chain's region resolution.
func NewClient(ctx context.Context, region string) (*Client, error) {
	var opts []func(*awscfg.LoadOptions) error
	if region != "" {
		opts = append(opts, awscfg.WithRegion(region))
	}
	cfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.AWSConfigError("Connecting to secret store", err)
	}
	return &Client{sm: secretsmanager.NewFromConfig(cfg)}, nil
}

// Fetch retrieves the credentials secret and validates that it carries a
// usable bearer token.
func (c *Client) Fetch(ctx context.Context, secretID string) (*Credentials, error) {
	out, err := c.sm.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return nil, errors.CredentialFetchError("Fetching credentials", secretID, err)
	}

	payload := aws.ToString(out.SecretString)
	if payload == "" {
		return nil, errors.CredentialFormatError(
			"Parsing credentials",
			secretID,
			"Secret has no string payload",
			nil,
		)
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(payload), &creds); err != nil {
		return nil, errors.CredentialFormatError(
			"Parsing credentials",
			secretID,
			"Secret payload is not a valid JSON object",
			err,
		)
	}

	if strings.TrimSpace(creds.BearerToken) == "" {
		return nil, errors.CredentialFormatError(
			"Parsing credentials",
			secretID,
			"\"bearer_token\" field is missing or empty",
			nil,
		)
	}

	return &creds, nil
}

// Store writes the credentials back as a new secret version. Used after
// login mints a fresh token; the rotation path never writes to the store.
func (c *Client) Store(ctx context.Context, secretID string, creds *Credentials) error {
	payload, err := json.Marshal(creds)
	if err != nil {
		return errors.PersistenceError("Storing credentials", secretID, "Cannot serialize credentials payload", err)
	}

	_, err = c.sm.PutSecretValue(ctx, &secretsmanager.PutSecretValueInput{
		SecretId:     aws.String(secretID),
		SecretString: aws.String(string(payload)),
	})
	if err != nil {
		return errors.PersistenceError("Storing credentials", secretID, "Secret store rejected the new version", err)
	}
	return nil
}
