package render_test

import (
	"errors"
	"testing"

	"showroom/internal/render"
)

func TestHeadlessLifecycle(t *testing.T) {
	backend := render.NewHeadless()
	if !backend.Available() {
		t.Fatal("headless backend should be available")
	}

	surface, err := backend.NewSurface(800, 600)
	if err != nil {
		t.Fatalf("new surface: %v", err)
	}

	handle, err := surface.AddNode(render.Node{Kind: render.KindModel, Tags: render.Tags{ProductID: "p1"}})
	if err != nil {
		t.Fatalf("add node: %v", err)
	}
	if err := surface.RenderFrame(); err != nil {
		t.Fatalf("render frame: %v", err)
	}

	inspector := surface.(render.Inspector)
	if got := len(inspector.Snapshot()); got != 1 {
		t.Fatalf("expected 1 node, got %d", got)
	}
	if inspector.FrameCount() != 1 {
		t.Fatalf("expected 1 frame, got %d", inspector.FrameCount())
	}

	surface.SetViewport(1024, 768)
	if w, h := inspector.Viewport(); w != 1024 || h != 768 {
		t.Fatalf("viewport not updated: %dx%d", w, h)
	}

	surface.RemoveNode(handle)
	if got := len(inspector.Snapshot()); got != 0 {
		t.Fatalf("expected empty graph after removal, got %d nodes", got)
	}
}

func TestHeadlessUnavailable(t *testing.T) {
	backend := render.NewUnavailable()
	if backend.Available() {
		t.Fatal("backend should report unavailable")
	}
	if _, err := backend.NewSurface(10, 10); !errors.Is(err, render.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestHeadlessContextLoss(t *testing.T) {
	backend := render.NewHeadless()
	surface, err := backend.NewSurface(10, 10)
	if err != nil {
		t.Fatalf("new surface: %v", err)
	}

	surface.(render.LossSimulator).SimulateContextLoss()

	select {
	case <-surface.Lost():
	default:
		t.Fatal("Lost channel should be closed after simulated loss")
	}
	if err := surface.RenderFrame(); !errors.Is(err, render.ErrContextLost) {
		t.Fatalf("expected ErrContextLost, got %v", err)
	}
}

func TestHeadlessReleasedSurfaceRejectsUse(t *testing.T) {
	backend := render.NewHeadless()
	surface, err := backend.NewSurface(10, 10)
	if err != nil {
		t.Fatalf("new surface: %v", err)
	}
	surface.Release()
	if _, err := surface.AddNode(render.Node{}); !errors.Is(err, render.ErrSurfaceReleased) {
		t.Fatalf("expected ErrSurfaceReleased, got %v", err)
	}
	if err := surface.RenderFrame(); !errors.Is(err, render.ErrSurfaceReleased) {
		t.Fatalf("expected ErrSurfaceReleased on render, got %v", err)
	}
}
