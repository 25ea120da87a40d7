package catalog

import (
	"context"
	"encoding/json"
	"net/url"

	"program-catalog/internal/common/errors"
	"program-catalog/internal/common/logging"
	"program-catalog/internal/config"
)

// page is the catalog service's paginated list envelope.
type page struct {
	Count    int               `json:"count"`
	Next     string            `json:"next"`
	Previous string            `json:"previous"`
	Results  []json.RawMessage `json:"results"`
}

// getAPIData is the shared fetch-with-cache utility. With a non-empty
// cacheKey it returns the cached payload when present and stores fresh
// responses under it with the integration's TTL; an empty cacheKey bypasses
// the cache entirely. List responses are depaginated by following next
// links and concatenating the results pages. When resourceID is given the
// cache key is suffixed with it and the raw detail payload is returned.
func (s *Service) getAPIData(
	ctx context.Context,
	client *Client,
	integration *config.CatalogIntegration,
	resource, resourceID string,
	query url.Values,
	cacheKey string,
) (json.RawMessage, error) {
	if cacheKey != "" && resourceID != "" {
		cacheKey = cacheKey + "." + resourceID
	}

	if cacheKey != "" {
		if data, ok := s.cache.Get(ctx, cacheKey); ok {
			s.logger.Debug("catalog cache hit", logging.String("key", cacheKey))
			return data, nil
		}
	}

	var payload json.RawMessage
	if resourceID != "" {
		body, err := client.Get(ctx, resource, resourceID, query)
		if err != nil {
			return nil, err
		}
		payload = body
	} else {
		results, err := s.fetchAllPages(ctx, client, resource, query)
		if err != nil {
			return nil, err
		}
		payload = results
	}

	if cacheKey != "" {
		if err := s.cache.Set(ctx, cacheKey, payload, integration.CacheTTL); err != nil {
			// A cache write failure degrades to uncached operation
			s.logger.Warn("failed to cache catalog response",
				logging.String("key", cacheKey), logging.Err(err))
		}
	}

	return payload, nil
}

// fetchAllPages fetches a list resource, following pagination links, and
// returns the concatenated results as a JSON array.
func (s *Service) fetchAllPages(ctx context.Context, client *Client, resource string, query url.Values) (json.RawMessage, error) {
	body, err := client.Get(ctx, resource, "", query)
	if err != nil {
		return nil, err
	}

	var collected []json.RawMessage
	for {
		var p page
		if err := json.Unmarshal(body, &p); err != nil || p.Results == nil {
			if collected == nil {
				// Unpaginated list endpoint: the body is the payload
				return body, nil
			}
			return nil, errors.InternalError("unexpected page in paginated catalog response", err)
		}

		collected = append(collected, p.Results...)

		if p.Next == "" {
			break
		}
		body, err = client.GetURL(ctx, p.Next)
		if err != nil {
			return nil, err
		}
	}

	aggregate, err := json.Marshal(collected)
	if err != nil {
		return nil, errors.InternalError("failed to combine catalog pages", err)
	}
	return aggregate, nil
}
