package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"showroom/internal/catalog"
	"showroom/internal/config"
	"showroom/internal/logging"
	"showroom/internal/render"
)

const maxModelBytes = 64 << 20

// ErrDracoUnavailable reports a compressed asset with no decoder configured.
// It is a load failure like any other: the caller falls back to a placeholder.
var ErrDracoUnavailable = errors.New("asset declares draco compression but no decoder is enabled")

// ProgressFunc receives advisory download fractions in [0, 1]. It may be nil.
type ProgressFunc func(fraction float64)

// Model is a decoded, scene-ready asset.
type Model struct {
	ProductID       string
	Name            string
	Node            render.Node
	MeshCount       int
	MaterialCount   int
	DracoCompressed bool
}

// HTTPDoer describes the HTTP client used for model downloads.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Loader fetches and decodes model payloads.
type Loader struct {
	client       HTTPDoer
	timeout      time.Duration
	dracoEnabled bool
	logger       *slog.Logger
}

// Option customizes the loader.
type Option func(*Loader)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(l *Loader) {
		if client != nil {
			l.client = client
		}
	}
}

// NewLoader constructs a loader from configuration.
func NewLoader(cfg *config.Config, logger *slog.Logger, opts ...Option) *Loader {
	timeout := time.Duration(cfg.Assets.DownloadTimeout) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	l := &Loader{
		client:       &http.Client{Timeout: timeout},
		timeout:      timeout,
		dracoEnabled: cfg.Assets.DracoEnabled,
		logger:       logging.NewComponentLogger(logger, "assets"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches and decodes the model behind ref. The caller must already
// hold a passing fidelity verdict for ref.ModelURL; the gate is enforced
// upstream by the scene manager, not here. Every surface in the returned
// node casts and receives shadows.
func (l *Loader) Load(ctx context.Context, ref catalog.AssetReference, progress ProgressFunc) (*Model, error) {
	modelURL := strings.TrimSpace(ref.ModelURL)
	if modelURL == "" {
		return nil, errors.New("asset reference has no model url")
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	payload, err := l.fetch(ctx, modelURL, progress)
	if err != nil {
		return nil, err
	}

	doc, err := decodeContainer(payload)
	if err != nil {
		return nil, err
	}

	draco := doc.declaresDraco()
	if draco && !l.dracoEnabled {
		return nil, ErrDracoUnavailable
	}

	model := &Model{
		ProductID: ref.ProductID,
		Name:      ref.Name,
		Node: render.Node{
			Kind: render.KindModel,
			Tags: render.Tags{
				ProductID: ref.ProductID,
				Name:      ref.Name,
			},
			Position: ref.Slot(),
			Geometry: render.Geometry{
				MeshCount: len(doc.Meshes),
			},
			CastShadow:    true,
			ReceiveShadow: true,
		},
		MeshCount:       len(doc.Meshes),
		MaterialCount:   len(doc.Materials),
		DracoCompressed: draco,
	}

	l.logger.Debug("model decoded",
		logging.String(logging.FieldProductID, ref.ProductID),
		logging.String(logging.FieldAssetURL, modelURL),
		logging.Int("meshes", model.MeshCount),
		logging.Bool("draco", draco),
	)
	return model, nil
}

func (l *Loader) fetch(ctx context.Context, modelURL string, progress ProgressFunc) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, modelURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("model download returned status %d", resp.StatusCode)
	}

	emit(progress, 0)
	payload, err := readWithProgress(resp.Body, resp.ContentLength, progress)
	if err != nil {
		return nil, fmt.Errorf("read model payload: %w", err)
	}
	if resp.ContentLength > 0 && int64(len(payload)) < resp.ContentLength {
		return nil, fmt.Errorf("partial download: expected %d bytes, got %d", resp.ContentLength, len(payload))
	}
	emit(progress, 1)
	return payload, nil
}

func readWithProgress(body io.Reader, total int64, progress ProgressFunc) ([]byte, error) {
	limited := io.LimitReader(body, maxModelBytes)
	if progress == nil || total <= 0 {
		return io.ReadAll(limited)
	}

	var payload []byte
	buf := make([]byte, 32*1024)
	for {
		n, err := limited.Read(buf)
		if n > 0 {
			payload = append(payload, buf[:n]...)
			fraction := float64(len(payload)) / float64(total)
			if fraction > 1 {
				fraction = 1
			}
			progress(fraction)
		}
		if err == io.EOF {
			return payload, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func emit(progress ProgressFunc, fraction float64) {
	if progress != nil {
		progress(fraction)
	}
}
