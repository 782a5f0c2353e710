// Package agentcore locates the deployed AgentCore runtime and builds its
// MCP invocation URL.
package agentcore

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/errors"
)

// AgentARNParameter is the SSM parameter the deployment tooling writes
// the runtime ARN to.
const AgentARNParameter = "/idp-bedrock-mcp/runtime/agent_arn"

type api interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type Client struct {
	ssm    api
	region string
}

// NewClient builds a client from the default AWS credential chain.
func NewClient(ctx context.Context, region string) (*Client, error) {
	var opts []func(*awscfg.LoadOptions) error
	if region != "" {
		opts = append(opts, awscfg.WithRegion(region))
	}
	cfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.AWSConfigError("Discovering AgentCore runtime", err)
	}
	return &Client{ssm: ssm.NewFromConfig(cfg), region: cfg.Region}, nil
}

// Region returns the resolved AWS region.
func (c *Client) Region() string { return c.region }

// AgentARN reads the runtime ARN from Parameter Store.
func (c *Client) AgentARN(ctx context.Context) (string, error) {
	out, err := c.ssm.GetParameter(ctx, &ssm.GetParameterInput{
		Name: aws.String(AgentARNParameter),
	})
	if err != nil {
		return "", errors.DiscoveryError("Discovering AgentCore runtime", "parameter "+AgentARNParameter, err)
	}

	arn := aws.ToString(out.Parameter.Value)
	if arn == "" {
		return "", errors.DiscoveryError("Discovering AgentCore runtime", "a non-empty agent ARN in "+AgentARNParameter, nil)
	}
	return arn, nil
}

// arnEncoder percent-encodes the characters AgentCore requires escaped in
// the runtime path segment.
var arnEncoder = strings.NewReplacer(":", "%3A", "/", "%2F")

// InvocationURL builds the streamable-HTTP MCP endpoint for a runtime
// ARN. An empty region is taken from the ARN itself.
func InvocationURL(agentARN, region string) string {
	if region == "" {
		region = regionFromARN(agentARN)
	}
	return fmt.Sprintf(
		"https://bedrock-agentcore.%s.amazonaws.com/runtimes/%s/invocations?qualifier=DEFAULT",
		region,
		arnEncoder.Replace(agentARN),
	)
}

// regionFromARN extracts the region field of an ARN
// (arn:aws:bedrock-agentcore:REGION:account:runtime/...).
func regionFromARN(arn string) string {
	parts := strings.SplitN(arn, ":", 5)
	if len(parts) < 4 {
		return ""
	}
	return parts[3]
}
