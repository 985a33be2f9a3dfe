package fidelity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"showroom/internal/config"
	"showroom/internal/logging"
)

const maxResponseBytes = 1 << 20

// HTTPDoer describes the HTTP client used by the validator.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Validator gates asset display on the remote fidelity score.
type Validator struct {
	endpoint string
	client   HTTPDoer
	logger   *slog.Logger
	store    *Store

	mu    sync.Mutex
	cache map[string]Verdict
}

// Option customizes the validator.
type Option func(*Validator)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(v *Validator) {
		if client != nil {
			v.client = client
		}
	}
}

// WithStore attaches a persistent verdict store consulted before the network.
func WithStore(store *Store) Option {
	return func(v *Validator) {
		v.store = store
	}
}

// NewValidator constructs a validator from configuration. The session cache
// lives and dies with the validator; discard the validator at dispose.
func NewValidator(cfg *config.Config, logger *slog.Logger, opts ...Option) *Validator {
	timeout := time.Duration(cfg.Fidelity.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	v := &Validator{
		endpoint: cfg.Fidelity.Endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logging.NewComponentLogger(logger, "fidelity"),
		cache:    make(map[string]Verdict),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type verifyRequest struct {
	ModelURL string `json:"model_url"`
}

type verifyResponse struct {
	FidelityScore *float64       `json:"fidelity_score"`
	Report        map[string]any `json:"report"`
}

// Validate returns the verdict for assetURL, consulting the session cache
// first, then the persistent store when attached, then the scoring service.
// Transport and service failures yield a failing score-zero verdict that is
// not cached.
func (v *Validator) Validate(ctx context.Context, assetURL string) Verdict {
	assetURL = strings.TrimSpace(assetURL)
	if assetURL == "" {
		return errorVerdict(assetURL, errors.New("empty asset url"))
	}

	if verdict, ok := v.cached(assetURL); ok {
		return verdict
	}

	if v.store != nil {
		if verdict, ok, err := v.store.Lookup(ctx, assetURL); err != nil {
			v.logger.Warn("verdict store lookup failed",
				logging.Error(err),
				logging.String(logging.FieldAssetURL, assetURL),
				logging.String(logging.FieldEventType, "verdict_store_lookup_failed"),
				logging.String(logging.FieldErrorHint, "check fidelity.cache_path access"),
			)
		} else if ok {
			v.remember(verdict)
			return verdict
		}
	}

	verdict, err := v.verify(ctx, assetURL)
	if err != nil {
		v.logger.Warn("fidelity verification failed; failing closed",
			logging.Error(err),
			logging.String(logging.FieldAssetURL, assetURL),
			logging.String(logging.FieldEventType, "fidelity_verify_failed"),
			logging.String(logging.FieldErrorHint, "check fidelity endpoint availability"),
		)
		return errorVerdict(assetURL, err)
	}

	v.remember(verdict)
	if v.store != nil {
		if err := v.store.Save(ctx, verdict); err != nil {
			v.logger.Warn("verdict store save failed",
				logging.Error(err),
				logging.String(logging.FieldAssetURL, assetURL),
				logging.String(logging.FieldEventType, "verdict_store_save_failed"),
			)
		}
	}
	v.logger.Debug("verdict cached",
		logging.String(logging.FieldAssetURL, assetURL),
		logging.Float64("score", verdict.Score),
		logging.Bool("passed", verdict.Passed),
	)
	return verdict
}

// CachedCount reports how many verdicts the session cache holds.
func (v *Validator) CachedCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.cache)
}

func (v *Validator) cached(assetURL string) (Verdict, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	verdict, ok := v.cache[assetURL]
	return verdict, ok
}

func (v *Validator) remember(verdict Verdict) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cache[verdict.AssetURL] = verdict
}

func (v *Validator) verify(ctx context.Context, assetURL string) (Verdict, error) {
	body, err := json.Marshal(verifyRequest{ModelURL: assetURL})
	if err != nil {
		return Verdict{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(body))
	if err != nil {
		return Verdict{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return Verdict{}, fmt.Errorf("fidelity request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Verdict{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Verdict{}, fmt.Errorf("fidelity service returned status %d", resp.StatusCode)
	}

	var decoded verifyResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return Verdict{}, fmt.Errorf("decode response: %w", err)
	}
	if decoded.FidelityScore == nil {
		return Verdict{}, errors.New("response missing fidelity_score")
	}

	return newVerdict(assetURL, *decoded.FidelityScore, decoded.Report), nil
}
