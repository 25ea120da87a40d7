package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"program-catalog/internal/auth"
	"program-catalog/internal/common/errors"
	"program-catalog/internal/config"
	"program-catalog/internal/storage"
)

// Client is an HTTP client bound to the catalog service's base URL,
// carrying a signed bearer token for the service user.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// tokenScopes are the scopes carried by every catalog API token.
var tokenScopes = []string{"email", "profile"}

// NewClient returns an API client which can be used to make catalog API
// requests as the given user. Token signing failures propagate; there is
// no retry.
func NewClient(user *storage.User, integration *config.CatalogIntegration, builder *auth.TokenBuilder, httpClient *http.Client) (*Client, error) {
	token, err := builder.Build(user.Username, user.Email, tokenScopes, integration.TokenExpiry)
	if err != nil {
		return nil, err
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimRight(integration.InternalAPIURL, "/"),
		token:      token,
		httpClient: httpClient,
	}, nil
}

// Get fetches a resource, optionally by id, with the given query values.
func (c *Client) Get(ctx context.Context, resource, resourceID string, query url.Values) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/%s/", c.baseURL, resource)
	if resourceID != "" {
		endpoint = fmt.Sprintf("%s%s/", endpoint, resourceID)
	}
	if len(query) > 0 {
		endpoint = endpoint + "?" + query.Encode()
	}

	return c.GetURL(ctx, endpoint)
}

// GetURL fetches an absolute URL, used to follow pagination links.
func (c *Client) GetURL(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.InternalError("failed to create catalog request", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.ConnectionError("catalog request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.InternalError("failed to read catalog response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.ConnectionError(
			fmt.Sprintf("catalog returned HTTP %d for %s", resp.StatusCode, endpoint), nil)
	}

	return body, nil
}
