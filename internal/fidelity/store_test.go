package fidelity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"showroom/internal/fidelity"
	"showroom/internal/logging"
)

func openStore(t *testing.T) *fidelity.Store {
	t.Helper()
	store, err := fidelity.OpenStore(filepath.Join(t.TempDir(), "verdicts.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	saved := fidelity.Verdict{
		AssetURL: "https://cdn.example/rose.glb",
		Passed:   true,
		Score:    97.25,
		Report:   map[string]any{"geometry": "ok"},
	}
	if err := store.Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := store.Lookup(ctx, saved.AssetURL)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !ok {
		t.Fatal("expected a stored verdict")
	}
	if got.Score != saved.Score || !got.Passed {
		t.Fatalf("stored verdict mismatch: %+v", got)
	}
	if got.Report["geometry"] != "ok" {
		t.Fatalf("report not preserved: %+v", got.Report)
	}
}

func TestStoreLookupMiss(t *testing.T) {
	store := openStore(t)
	_, ok, err := store.Lookup(context.Background(), "https://cdn.example/absent.glb")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if ok {
		t.Fatal("expected a miss")
	}
}

func TestStoreListAndClear(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for _, url := range []string{"https://cdn.example/a.glb", "https://cdn.example/b.glb"} {
		if err := store.Save(ctx, fidelity.Verdict{AssetURL: url, Score: 96}); err != nil {
			t.Fatalf("save %s: %v", url, err)
		}
	}

	listed, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 verdicts, got %d", len(listed))
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	listed, err = store.List(ctx)
	if err != nil {
		t.Fatalf("list after clear: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected empty store, got %d", len(listed))
	}
}

func TestValidatorConsultsStoreBeforeNetwork(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	url := "https://cdn.example/persisted.glb"
	if err := store.Save(ctx, fidelity.Verdict{AssetURL: url, Score: 98.5}); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	validator := fidelity.NewValidator(newTestConfig(srv.URL), logging.NewNop(), fidelity.WithStore(store))
	verdict := validator.Validate(ctx, url)

	if calls.Load() != 0 {
		t.Fatalf("persisted verdict should skip the network, got %d calls", calls.Load())
	}
	if !verdict.Passed || verdict.Score != 98.5 {
		t.Fatalf("unexpected verdict from store: %+v", verdict)
	}
}
