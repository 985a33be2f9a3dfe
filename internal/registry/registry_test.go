package registry_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"showroom/internal/assets"
	"showroom/internal/catalog"
	"showroom/internal/config"
	"showroom/internal/fidelity"
	"showroom/internal/logging"
	"showroom/internal/registry"
	"showroom/internal/render"
	"showroom/internal/scene"
)

type offlineValidator struct{}

func (offlineValidator) Validate(_ context.Context, assetURL string) fidelity.Verdict {
	return fidelity.Verdict{AssetURL: assetURL}
}

type offlineLoader struct{}

func (offlineLoader) Load(context.Context, catalog.AssetReference, assets.ProgressFunc) (*assets.Model, error) {
	return nil, errors.New("offline")
}

type offlineCatalog struct{}

func (offlineCatalog) FetchCatalog(context.Context, catalog.Collection) ([]catalog.AssetReference, error) {
	return nil, errors.New("offline")
}

func offlineDeps() registry.Deps {
	return registry.Deps{
		Backend:      render.NewHeadless(),
		NewValidator: func() scene.Validator { return offlineValidator{} },
		Loader:       offlineLoader{},
		Catalog:      offlineCatalog{},
		Logger:       logging.NewNop(),
	}
}

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()

	reg, err := registry.New(&cfg, offlineDeps(), logging.NewNop())
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	t.Cleanup(func() { _ = reg.Close() })
	return reg
}

func waitPopulated(t *testing.T, instance *registry.Instance) {
	t.Helper()
	select {
	case <-instance.Manager().Populated():
	case <-time.After(5 * time.Second):
		t.Fatal("population did not settle")
	}
}

func TestInitAndGet(t *testing.T) {
	reg := newRegistry(t)

	instance, err := reg.Init(context.Background(), "hero-embed", registry.EmbedConfig{Collection: "black_rose"})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	waitPopulated(t, instance)

	got, ok := reg.Get("hero-embed")
	if !ok || got != instance {
		t.Fatal("expected to get back the initialized instance")
	}
	if reg.Count() != 1 {
		t.Fatalf("expected 1 tracked container, got %d", reg.Count())
	}
	// Offline collaborators mean the demo placeholders settle.
	if entities := instance.Manager().Entities(); len(entities) != 3 {
		t.Fatalf("expected 3 demo entities, got %d", len(entities))
	}
}

func TestInitRejectsOccupiedContainer(t *testing.T) {
	reg := newRegistry(t)

	if _, err := reg.Init(context.Background(), "embed", registry.EmbedConfig{}); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := reg.Init(context.Background(), "embed", registry.EmbedConfig{}); !errors.Is(err, registry.ErrContainerInUse) {
		t.Fatalf("expected container-in-use error, got %v", err)
	}
}

func TestInitRejectsUnknownCollection(t *testing.T) {
	reg := newRegistry(t)

	if _, err := reg.Init(context.Background(), "embed", registry.EmbedConfig{Collection: "couture"}); err == nil {
		t.Fatal("unknown collection must be rejected")
	}
	if reg.Count() != 0 {
		t.Fatal("failed init must not register an instance")
	}
}

func TestDispose(t *testing.T) {
	reg := newRegistry(t)

	instance, err := reg.Init(context.Background(), "embed", registry.EmbedConfig{})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	waitPopulated(t, instance)

	if !reg.Dispose("embed") {
		t.Fatal("dispose should report the removed session")
	}
	if reg.Dispose("embed") {
		t.Fatal("second dispose should report nothing to remove")
	}
	if instance.Manager().State() != scene.StateDisposed {
		t.Fatal("disposal must reach the session")
	}
	if _, ok := reg.Get("embed"); ok {
		t.Fatal("disposed container must not resolve")
	}
}

type singleProductCatalog struct {
	ref catalog.AssetReference
}

func (c singleProductCatalog) FetchCatalog(context.Context, catalog.Collection) ([]catalog.AssetReference, error) {
	return []catalog.AssetReference{c.ref}, nil
}

// Verdict caches are session-scoped: disposing a container and initializing
// a new one must re-verify the same asset against the scoring service.
func TestVerdictCacheDiesWithSession(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{"fidelity_score": 97.0})
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	cfg.Fidelity.Endpoint = srv.URL

	deps := offlineDeps()
	deps.NewValidator = func() scene.Validator {
		return fidelity.NewValidator(&cfg, logging.NewNop())
	}
	deps.Catalog = singleProductCatalog{ref: catalog.AssetReference{
		ProductID: "rose-hoodie",
		ModelURL:  "https://cdn.example/rose-hoodie.glb",
	}}

	reg, err := registry.New(&cfg, deps, logging.NewNop())
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	defer reg.Close()

	for session := 0; session < 2; session++ {
		instance, err := reg.Init(context.Background(), "embed", registry.EmbedConfig{})
		if err != nil {
			t.Fatalf("init session %d: %v", session, err)
		}
		waitPopulated(t, instance)
		if !reg.Dispose("embed") {
			t.Fatalf("dispose session %d: nothing removed", session)
		}
	}

	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 verification calls across 2 sessions, got %d", got)
	}
}

func TestCloseReleasesLock(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	deps := offlineDeps()

	first, err := registry.New(&cfg, deps, logging.NewNop())
	if err != nil {
		t.Fatalf("first registry: %v", err)
	}
	if _, err := registry.New(&cfg, deps, logging.NewNop()); err == nil {
		t.Fatal("second registry must not share the data directory")
	}

	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	second, err := registry.New(&cfg, deps, logging.NewNop())
	if err != nil {
		t.Fatalf("registry after close: %v", err)
	}
	_ = second.Close()
}
