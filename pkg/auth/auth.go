package auth

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

const (
	// ManagementScope is the audience for Azure Resource Manager calls.
	ManagementScope = "https://management.azure.com/.default"
	// SynapseDevScope is the audience for Synapse workspace data-plane calls.
	SynapseDevScope = "https://dev.azuresynapse.net/.default"
)

// Provider is a simple factory for Azure credentials
type Provider struct{}

// NewProvider creates a new authentication provider
func NewProvider() *Provider {
	return &Provider{}
}

// Credential returns the default Azure credential chain (environment,
// managed identity, Azure CLI).
func (p *Provider) Credential() (azcore.TokenCredential, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create default credential: %w", err)
	}
	return cred, nil
}

// AccessToken retrieves an access token for the given credential and scope
func (p *Provider) AccessToken(ctx context.Context, cred azcore.TokenCredential, scope string) (string, error) {
	tokenRequestOptions := policy.TokenRequestOptions{
		Scopes: []string{scope},
	}

	accessToken, err := cred.GetToken(ctx, tokenRequestOptions)
	if err != nil {
		return "", fmt.Errorf("failed to get access token: %w", err)
	}

	return accessToken.Token, nil
}
