// Package catalog integrates with the external catalog service that stores
// program metadata. It fetches program listings, program types and
// instructor details with cache-or-fetch semantics, and composes fully
// enriched programs by marketing slug.
package catalog

import (
	"context"
	"net/http"
	"time"

	"program-catalog/internal/auth"
	"program-catalog/internal/cache"
	cerrors "program-catalog/internal/common/errors"
	"program-catalog/internal/common/logging"
	"program-catalog/internal/config"
	"program-catalog/internal/modulestore"
	"program-catalog/internal/storage"
)

// IntegrationProvider yields the current catalog integration configuration.
// It is called on every operation so configuration changes take effect
// without restarts.
type IntegrationProvider func() *config.CatalogIntegration

// Service composes the catalog collaborators: the integration
// configuration, the service-user store, the course store, the shared
// cache and the token builder. All dependencies are injected explicitly.
type Service struct {
	integration IntegrationProvider
	users       storage.Storage
	courses     modulestore.Store
	cache       cache.Cache
	builder     *auth.TokenBuilder
	httpClient  *http.Client
	logger      logging.Logger
}

// New creates a catalog service. httpClient may be nil to use a default
// client with a 30 second timeout.
func New(
	integration IntegrationProvider,
	users storage.Storage,
	courses modulestore.Store,
	c cache.Cache,
	builder *auth.TokenBuilder,
	httpClient *http.Client,
	logger logging.Logger,
) *Service {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}

	return &Service{
		integration: integration,
		users:       users,
		courses:     courses,
		cache:       c,
		builder:     builder,
		httpClient:  httpClient,
		logger:      logger,
	}
}

// instructorCacheTTL bounds the instructor cache entries when the
// integration's own cache TTL is disabled.
const instructorCacheTTL = 5 * time.Minute

// apiClient resolves the current integration and an authenticated client
// for it. It returns a nil client when the integration is disabled or the
// configured service user does not exist; both are treated as "catalog
// unavailable", not as errors. Any other user-store failure propagates.
func (s *Service) apiClient(ctx context.Context) (*Client, *config.CatalogIntegration, error) {
	integration := s.integration()
	if !integration.Enabled {
		return nil, integration, nil
	}

	user, err := s.users.GetUserByUsername(ctx, integration.ServiceUsername)
	if err != nil {
		if cerrors.IsType(err, cerrors.ErrTypeNotFound) {
			s.logger.Warn("catalog service user missing",
				logging.String("username", integration.ServiceUsername))
			return nil, integration, nil
		}
		return nil, integration, err
	}

	client, err := NewClient(user, integration, s.builder, s.httpClient)
	if err != nil {
		return nil, integration, err
	}

	return client, integration, nil
}
