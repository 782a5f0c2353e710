// Package cognito mints bearer tokens for the MCP server by running the
// USER_PASSWORD_AUTH flow against the deployment's user pool client.
package cognito

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	ciptypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/errors"
)

type api interface {
	InitiateAuth(ctx context.Context, params *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
}

type Client struct {
	idp api
}

// NewClient builds a client from the default AWS credential chain.
func NewClient(ctx context.Context, region string) (*Client, error) {
	var opts []func(*awscfg.LoadOptions) error
	if region != "" {
		opts = append(opts, awscfg.WithRegion(region))
	}
	cfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.AWSConfigError("Authenticating user", err)
	}
	return &Client{idp: cip.NewFromConfig(cfg)}, nil
}

// Authenticate runs USER_PASSWORD_AUTH and returns the access token the
// MCP server accepts as a bearer credential.
func (c *Client) Authenticate(ctx context.Context, clientID, username, password string) (string, error) {
	out, err := c.idp.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: ciptypes.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(clientID),
		AuthParameters: map[string]string{
			"USERNAME": username,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return "", errors.AuthError("Authenticating user", username, "Cognito rejected the credentials", err)
	}

	if out.AuthenticationResult == nil || aws.ToString(out.AuthenticationResult.AccessToken) == "" {
		// A challenge response (MFA, forced password change) lands here;
		// this tool only supports the plain password flow.
		return "", errors.AuthError(
			"Authenticating user",
			username,
			"Authentication did not produce an access token (pending challenge?)",
			nil,
		)
	}

	return aws.ToString(out.AuthenticationResult.AccessToken), nil
}
