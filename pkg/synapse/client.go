package synapse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/synapse/armsynapse"
	"github.com/sirupsen/logrus"

	"go.goms.io/synapse/spark-inventory/pkg/auth"
)

const (
	managementEndpoint = "https://management.azure.com"
	devEndpointFormat  = "https://%s.dev.azuresynapse.net"

	bigDataPoolsAPIVersion = "2021-06-01"
	dataPlaneAPIVersion    = "2020-12-01"
)

// HTTPClient is the subset of http.Client used for the REST listings.
// It exists to allow lightweight mocking in unit tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WorkspacesClient is the subset of the Azure SDK workspaces client we need.
type WorkspacesClient interface {
	NewListPager(options *armsynapse.WorkspacesClientListOptions) *runtime.Pager[armsynapse.WorkspacesClientListResponse]
}

// Client performs the per-subscription Synapse listings: workspaces via the
// resource manager SDK, big data pools via the management REST API, notebooks
// and Spark job definitions via the per-workspace data-plane endpoint.
type Client struct {
	subscriptionID string
	cred           azcore.TokenCredential
	workspaces     WorkspacesClient
	httpClient     HTTPClient
	authProvider   *auth.Provider
	logger         *logrus.Logger
}

// NewClient creates a Synapse client for one subscription.
func NewClient(subscriptionID string, cred azcore.TokenCredential, logger *logrus.Logger) (*Client, error) {
	wsClient, err := armsynapse.NewWorkspacesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create workspaces client: %w", err)
	}

	return &Client{
		subscriptionID: subscriptionID,
		cred:           cred,
		workspaces:     wsClient,
		httpClient:     &http.Client{},
		authProvider:   auth.NewProvider(),
		logger:         logger,
	}, nil
}

// NewClientWith allows injecting the workspaces client and HTTP client
// (primarily for tests).
func NewClientWith(subscriptionID string, cred azcore.TokenCredential, workspaces WorkspacesClient, httpClient HTTPClient, logger *logrus.Logger) *Client {
	return &Client{
		subscriptionID: subscriptionID,
		cred:           cred,
		workspaces:     workspaces,
		httpClient:     httpClient,
		authProvider:   auth.NewProvider(),
		logger:         logger,
	}
}

// SubscriptionID returns the subscription this client is scoped to.
func (c *Client) SubscriptionID() string {
	return c.subscriptionID
}

// ListWorkspaces lists all Synapse workspaces in the subscription. Unlike the
// child listings, a failure here is an error: it fails the whole subscription.
func (c *Client) ListWorkspaces(ctx context.Context) ([]*armsynapse.Workspace, error) {
	var workspaces []*armsynapse.Workspace

	pager := c.workspaces.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list workspaces in subscription %s: %w", c.subscriptionID, err)
		}
		workspaces = append(workspaces, page.Value...)
	}

	return workspaces, nil
}

// ListBigDataPools lists all Spark pools in a workspace via the management
// plane. A non-success response is logged and yields an empty result.
func (c *Client) ListBigDataPools(ctx context.Context, resourceGroup, workspaceName string) ([]BigDataPool, error) {
	url := fmt.Sprintf("%s/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Synapse/workspaces/%s/bigDataPools?api-version=%s",
		managementEndpoint, c.subscriptionID, resourceGroup, workspaceName, bigDataPoolsAPIVersion)

	var envelope listEnvelope[BigDataPool]
	ok, err := c.getJSON(ctx, url, auth.ManagementScope, "Big Data pools", workspaceName, &envelope)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []BigDataPool{}, nil
	}
	return envelope.Value, nil
}

// ListNotebooks lists all notebooks in a workspace via the data plane. A
// non-success response is logged and yields an empty result.
func (c *Client) ListNotebooks(ctx context.Context, workspaceName string) ([]Notebook, error) {
	url := fmt.Sprintf(devEndpointFormat+"/notebooks?api-version=%s", workspaceName, dataPlaneAPIVersion)

	var envelope listEnvelope[Notebook]
	ok, err := c.getJSON(ctx, url, auth.SynapseDevScope, "notebooks", workspaceName, &envelope)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Notebook{}, nil
	}
	return envelope.Value, nil
}

// ListSparkJobDefinitions lists all Spark job definitions in a workspace via
// the data plane. A non-success response is logged and yields an empty result.
func (c *Client) ListSparkJobDefinitions(ctx context.Context, workspaceName string) ([]SparkJobDefinition, error) {
	url := fmt.Sprintf(devEndpointFormat+"/sparkJobDefinitions?api-version=%s", workspaceName, dataPlaneAPIVersion)

	var envelope listEnvelope[SparkJobDefinition]
	ok, err := c.getJSON(ctx, url, auth.SynapseDevScope, "Spark Job Definitions", workspaceName, &envelope)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []SparkJobDefinition{}, nil
	}
	return envelope.Value, nil
}

// getJSON performs an authenticated GET and decodes the response into out.
// It returns false (with no error) for non-success status codes; transport
// and token errors are returned and propagate to the caller.
func (c *Client) getJSON(ctx context.Context, url, scope, resourceKind, workspaceName string, out any) (bool, error) {
	token, err := c.authProvider.AccessToken(ctx, c.cred, scope)
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to fetch %s for workspace %s: %w", resourceKind, workspaceName, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warnf("Failed to fetch %s for workspace %s: status %d: %s", resourceKind, workspaceName, resp.StatusCode, string(body))
		return false, nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("failed to parse %s response for workspace %s: %w", resourceKind, workspaceName, err)
	}

	return true, nil
}
