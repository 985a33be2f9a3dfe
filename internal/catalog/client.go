package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"showroom/internal/config"
	"showroom/internal/logging"
)

const maxResponseBytes = 4 << 20

// HTTPDoer describes the HTTP client used by the catalog client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches experience listings from the catalog service.
type Client struct {
	endpoint string
	client   HTTPDoer
	logger   *slog.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// NewClient constructs a catalog client from configuration.
func NewClient(cfg *config.Config, logger *slog.Logger, opts ...Option) *Client {
	timeout := time.Duration(cfg.Catalog.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		endpoint: cfg.Catalog.Endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logging.NewComponentLogger(logger, "catalog"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type listingResponse struct {
	Products []AssetReference `json:"products"`
}

// FetchCatalog returns the asset references for a collection. Failures are
// logged and returned as errors with no partial data; the scene layer is
// responsible for substituting placeholders.
func (c *Client) FetchCatalog(ctx context.Context, collection Collection) ([]AssetReference, error) {
	endpoint := fmt.Sprintf("%s/%s", c.endpoint, url.PathEscape(string(collection)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logFailure(collection, err)
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.logFailure(collection, err)
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("catalog service returned status %d", resp.StatusCode)
		c.logFailure(collection, err)
		return nil, err
	}

	var decoded listingResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		c.logFailure(collection, err)
		return nil, fmt.Errorf("decode response: %w", err)
	}

	references := make([]AssetReference, 0, len(decoded.Products))
	for _, ref := range decoded.Products {
		ref.ProductID = strings.TrimSpace(ref.ProductID)
		ref.ModelURL = strings.TrimSpace(ref.ModelURL)
		if ref.ProductID == "" {
			c.logger.Warn("skipping catalog entry without product id",
				logging.String(logging.FieldCollection, string(collection)),
				logging.String(logging.FieldEventType, "catalog_entry_invalid"),
			)
			continue
		}
		references = append(references, ref)
	}

	c.logger.Debug("catalog fetched",
		logging.String(logging.FieldCollection, string(collection)),
		logging.Int("products", len(references)),
	)
	return references, nil
}

func (c *Client) logFailure(collection Collection, err error) {
	c.logger.Warn("catalog fetch failed",
		logging.Error(err),
		logging.String(logging.FieldCollection, string(collection)),
		logging.String(logging.FieldEventType, "catalog_fetch_failed"),
		logging.String(logging.FieldErrorHint, "check catalog endpoint availability"),
	)
}
