package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"showroom/internal/config"
	"showroom/internal/logging"
)

const userAgent = "Showroom-Go/0.1.0"

// EventType enumerates the interaction events the engine emits.
type EventType string

const (
	EventView       EventType = "view"
	EventImpression EventType = "impression"
	EventEngagement EventType = "engagement"
)

// Service defines the tracking surface exposed to scene components.
type Service interface {
	TrackView(ctx context.Context, productID string) error
	TrackImpression(ctx context.Context, productID string) error
	TrackEngagement(ctx context.Context, productID string, duration time.Duration) error
}

// NewService builds a tracker backed by the configured endpoint. When no
// endpoint is configured, a noop implementation is returned.
func NewService(cfg *config.Config, logger *slog.Logger) Service {
	endpoint := strings.TrimSpace(cfg.Analytics.Endpoint)
	if endpoint == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Analytics.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &httpService{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logging.NewComponentLogger(logger, "analytics"),
	}
}

type event struct {
	EventID    string `json:"event_id"`
	EventType  string `json:"event_type"`
	ProductID  string `json:"product_id"`
	DurationMS int64  `json:"duration_ms,omitempty"`
	Timestamp  string `json:"timestamp"`
}

type httpService struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

func (s *httpService) TrackView(ctx context.Context, productID string) error {
	return s.send(ctx, event{EventType: string(EventView), ProductID: productID})
}

func (s *httpService) TrackImpression(ctx context.Context, productID string) error {
	return s.send(ctx, event{EventType: string(EventImpression), ProductID: productID})
}

func (s *httpService) TrackEngagement(ctx context.Context, productID string, duration time.Duration) error {
	return s.send(ctx, event{
		EventType:  string(EventEngagement),
		ProductID:  productID,
		DurationMS: duration.Milliseconds(),
	})
}

// send posts one event. Errors are logged and swallowed: tracking must never
// surface into the render path.
func (s *httpService) send(ctx context.Context, data event) error {
	data.EventID = uuid.NewString()
	data.Timestamp = time.Now().UTC().Format(time.RFC3339)

	body, err := json.Marshal(data)
	if err != nil {
		s.logDrop(data, err)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		s.logDrop(data, err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logDrop(data, err)
		return nil
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logDrop(data, fmt.Errorf("tracking endpoint returned status %d", resp.StatusCode))
	}
	return nil
}

func (s *httpService) logDrop(data event, err error) {
	s.logger.Debug("analytics event dropped",
		logging.Error(err),
		logging.String("event_type", data.EventType),
		logging.String(logging.FieldProductID, data.ProductID),
	)
}

// NewNoop returns a tracker that records nothing. Useful when a caller has
// no configuration in hand.
func NewNoop() Service { return noopService{} }

type noopService struct{}

func (noopService) TrackView(context.Context, string) error { return nil }

func (noopService) TrackImpression(context.Context, string) error { return nil }

func (noopService) TrackEngagement(context.Context, string, time.Duration) error { return nil }
