package secretstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/aws-samples/idp-bedrock-mcp-cli/internal/errors"
)

// Mock Secrets Manager for testing
type mockSecretsManager struct {
	payload string
	getErr  error
	putErr  error

	stored string
}

func (m *mockSecretsManager) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(m.payload)}, nil
}

func (m *mockSecretsManager) PutSecretValue(ctx context.Context, params *secretsmanager.PutSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.PutSecretValueOutput, error) {
	if m.putErr != nil {
		return nil, m.putErr
	}
	m.stored = aws.ToString(params.SecretString)
	return &secretsmanager.PutSecretValueOutput{}, nil
}

func TestFetch(t *testing.T) {
	client := &Client{sm: &mockSecretsManager{
		payload: `{"bearer_token":"eyJTOKEN","username":"ops","client_id":"abc123","discovery_url":"https://cognito-idp.us-east-1.amazonaws.com/pool/.well-known/openid-configuration"}`,
	}}

	creds, err := client.Fetch(context.Background(), DefaultSecretID)
	if err != nil {
		t.Fatalf("Failed to fetch credentials: %v", err)
	}

	if creds.BearerToken != "eyJTOKEN" {
		t.Errorf("Expected bearer token eyJTOKEN, got %q", creds.BearerToken)
	}
	if creds.ClientID != "abc123" {
		t.Errorf("Expected client id abc123, got %q", creds.ClientID)
	}
}

func TestFetchStoreError(t *testing.T) {
	client := &Client{sm: &mockSecretsManager{getErr: fmt.Errorf("AccessDeniedException")}}

	_, err := client.Fetch(context.Background(), DefaultSecretID)
	if err == nil {
		t.Fatal("Expected error when store call fails")
	}
	if got := errors.CategoryOf(err); got != errors.CredentialFetch {
		t.Errorf("Expected category %q, got %q", errors.CredentialFetch, got)
	}
}

func TestFetchBadPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty payload", ""},
		{"not JSON", "just-a-raw-token"},
		{"missing field", `{"username":"ops"}`},
		{"empty token", `{"bearer_token":"   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &Client{sm: &mockSecretsManager{payload: tt.payload}}

			_, err := client.Fetch(context.Background(), DefaultSecretID)
			if err == nil {
				t.Fatal("Expected error for bad payload")
			}
			if got := errors.CategoryOf(err); got != errors.CredentialFormat {
				t.Errorf("Expected category %q, got %q", errors.CredentialFormat, got)
			}
		})
	}
}

func TestStore(t *testing.T) {
	mock := &mockSecretsManager{}
	client := &Client{sm: mock}

	creds := &Credentials{
		BearerToken: "eyJNEW",
		Username:    "ops",
		ClientID:    "abc123",
	}
	if err := client.Store(context.Background(), DefaultSecretID, creds); err != nil {
		t.Fatalf("Failed to store credentials: %v", err)
	}

	expected := `{"bearer_token":"eyJNEW","username":"ops","client_id":"abc123"}`
	if mock.stored != expected {
		t.Errorf("Stored payload mismatch:\ngot  %s\nwant %s", mock.stored, expected)
	}
}

func TestStoreError(t *testing.T) {
	client := &Client{sm: &mockSecretsManager{putErr: fmt.Errorf("ThrottlingException")}}

	err := client.Store(context.Background(), DefaultSecretID, &Credentials{BearerToken: "x"})
	if err == nil {
		t.Fatal("Expected error when store write fails")
	}
	if got := errors.CategoryOf(err); got != errors.Persistence {
		t.Errorf("Expected category %q, got %q", errors.Persistence, got)
	}
}
