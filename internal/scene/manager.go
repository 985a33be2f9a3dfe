package scene

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"showroom/internal/analytics"
	"showroom/internal/ar"
	"showroom/internal/assets"
	"showroom/internal/catalog"
	"showroom/internal/fidelity"
	"showroom/internal/logging"
	"showroom/internal/render"
)

// State is the session lifecycle position. No state is re-enterable and
// Disposed is terminal.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateMounted       State = "mounted"
	StateFailed        State = "failed"
	StateDisposed      State = "disposed"
)

var (
	// ErrAlreadyMounted reports a second Mount on a live session.
	ErrAlreadyMounted = errors.New("scene already mounted")
	// ErrDisposed reports use of a disposed session.
	ErrDisposed = errors.New("scene disposed")
)

// Validator gates assets on their fidelity verdict.
type Validator interface {
	Validate(ctx context.Context, assetURL string) fidelity.Verdict
}

// Loader fetches and decodes verified models.
type Loader interface {
	Load(ctx context.Context, ref catalog.AssetReference, progress assets.ProgressFunc) (*assets.Model, error)
}

// CatalogClient lists the products for a collection.
type CatalogClient interface {
	FetchCatalog(ctx context.Context, collection catalog.Collection) ([]catalog.AssetReference, error)
}

// Deps bundles the collaborators a Manager orchestrates.
type Deps struct {
	Backend   render.Backend
	Validator Validator
	Loader    Loader
	Catalog   CatalogClient
	Analytics analytics.Service
	ARProbe   ar.Probe
	Logger    *slog.Logger
}

// camera is the session view state; resize recomputes the aspect.
type camera struct {
	position render.Vec3
	fov      float64
	aspect   float64
}

// Manager owns one scene session.
type Manager struct {
	cfg       Config
	deps      Deps
	logger    *slog.Logger
	sessionID string
	handoff   *ar.Handoff

	mu       sync.Mutex
	state    State
	fatalErr error
	surface  render.Surface
	camera   camera
	entities map[string]PlacedEntity

	running   bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	populated chan struct{}
	mountedAt time.Time

	disposeOnce sync.Once
}

// NewManager constructs an unmounted session.
func NewManager(cfg Config, deps Deps) *Manager {
	if deps.Analytics == nil {
		deps.Analytics = analytics.NewNoop()
	}
	sessionID := uuid.NewString()
	logger := logging.NewComponentLogger(deps.Logger, "scene").With(
		logging.String(logging.FieldSessionID, sessionID),
		logging.String(logging.FieldCollection, string(cfg.Collection)),
	)
	return &Manager{
		cfg:       cfg.withDefaults(),
		deps:      deps,
		logger:    logger,
		sessionID: sessionID,
		handoff:   ar.NewHandoff(deps.ARProbe),
		state:     StateUninitialized,
		entities:  make(map[string]PlacedEntity),
		populated: make(chan struct{}),
	}
}

// SessionID returns the session's UUID.
func (m *Manager) SessionID() string { return m.sessionID }

// State reports the current lifecycle position.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// FatalError returns the platform failure behind StateFailed, nil otherwise.
// This is the only error class meant for user-visible presentation.
func (m *Manager) FatalError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fatalErr
}

// ErrorPanel renders the user-facing message for a failed session.
func (m *Manager) ErrorPanel() string {
	err := m.FatalError()
	if err == nil {
		return ""
	}
	return fmt.Sprintf("3D experience unavailable: %v. Reload the page to retry.", err)
}

// Mount validates platform capability, builds the environment, starts the
// render loop, and kicks off asynchronous population. A missing render
// backend is fatal and user-visible; everything below the manager degrades
// to placeholders instead.
func (m *Manager) Mount(ctx context.Context) error {
	m.mu.Lock()
	switch m.state {
	case StateMounted:
		m.mu.Unlock()
		return ErrAlreadyMounted
	case StateDisposed:
		m.mu.Unlock()
		return ErrDisposed
	case StateFailed:
		m.mu.Unlock()
		return m.FatalError()
	}

	if m.deps.Backend == nil || !m.deps.Backend.Available() {
		m.state = StateFailed
		m.fatalErr = render.ErrBackendUnavailable
		m.mu.Unlock()
		m.logger.Error("render backend unavailable; showing error panel",
			logging.String(logging.FieldEventType, "mount_failed"),
			logging.String(logging.FieldErrorHint, "platform has no 3D support"),
		)
		return render.ErrBackendUnavailable
	}

	surface, err := m.deps.Backend.NewSurface(m.cfg.Width, m.cfg.Height)
	if err != nil {
		m.state = StateFailed
		m.fatalErr = err
		m.mu.Unlock()
		m.logger.Error("render surface creation failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "mount_failed"),
		)
		return err
	}

	m.surface = surface
	m.camera = camera{
		position: render.Vec3{X: 0, Y: 1.5, Z: 4},
		fov:      45,
		aspect:   float64(m.cfg.Width) / float64(m.cfg.Height),
	}
	if err := m.buildEnvironmentLocked(); err != nil {
		m.state = StateFailed
		m.fatalErr = err
		surface.Release()
		m.mu.Unlock()
		return err
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	m.cancel = cancel
	m.state = StateMounted
	m.running = true
	m.mountedAt = time.Now()
	m.mu.Unlock()

	m.logger.Info("scene mounted",
		logging.String(logging.FieldEventType, "mount"),
		logging.Int("width", m.cfg.Width),
		logging.Int("height", m.cfg.Height),
		logging.Int("particles", m.cfg.ParticleCount),
	)

	m.wg.Add(2)
	go m.renderLoop(runCtx)
	go m.populate(runCtx)
	return nil
}

// buildEnvironmentLocked stages the lighting rig, floor, and particle field.
// Caller holds m.mu.
func (m *Manager) buildEnvironmentLocked() error {
	preset := catalog.PresetFor(m.cfg.Collection)
	for _, light := range preset.Lighting {
		l := light
		if _, err := m.surface.AddNode(render.Node{Kind: render.KindLight, Light: &l}); err != nil {
			return fmt.Errorf("stage %s light: %w", light.Role, err)
		}
	}

	if _, err := m.surface.AddNode(render.Node{
		Kind:          render.KindFloor,
		Material:      render.Material{Color: m.cfg.BackgroundColor},
		ReceiveShadow: true,
	}); err != nil {
		return fmt.Errorf("stage floor: %w", err)
	}

	if m.cfg.ParticleCount > 0 {
		if _, err := m.surface.AddNode(render.Node{
			Kind:     render.KindParticles,
			Material: render.Material{Color: preset.AccentColor},
			Geometry: render.Geometry{ParticleCount: m.cfg.ParticleCount},
		}); err != nil {
			return fmt.Errorf("stage particles: %w", err)
		}
	}
	return nil
}

// renderLoop ticks at the configured frame rate, standing in for vsync. It
// keeps rendering whatever subset of entities has settled so far; a context
// loss is fatal to the session.
func (m *Manager) renderLoop(ctx context.Context) {
	defer m.wg.Done()

	interval := time.Second / time.Duration(m.cfg.FrameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.surface.Lost():
			m.failFromContextLoss()
			return
		case <-ticker.C:
		}

		m.mu.Lock()
		running := m.running && m.state == StateMounted
		surface := m.surface
		m.mu.Unlock()
		if !running {
			continue
		}

		if err := surface.RenderFrame(); err != nil {
			if errors.Is(err, render.ErrContextLost) {
				m.failFromContextLoss()
				return
			}
			if errors.Is(err, render.ErrSurfaceReleased) {
				return
			}
			m.logger.Warn("frame render failed",
				logging.Error(err),
				logging.String(logging.FieldEventType, "frame_failed"),
			)
		}
	}
}

func (m *Manager) failFromContextLoss() {
	m.mu.Lock()
	if m.state == StateMounted {
		m.state = StateFailed
		m.fatalErr = render.ErrContextLost
		m.running = false
	}
	m.mu.Unlock()
	m.logger.Error("render context lost; session failed",
		logging.String(logging.FieldEventType, "context_lost"),
		logging.String(logging.FieldErrorHint, "reload to start a new session"),
	)
}

// Resize recomputes the camera aspect and viewport from the container's
// current dimensions. Idempotent and safe to call every layout frame.
func (m *Manager) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateMounted {
		return
	}
	m.cfg.Width = width
	m.cfg.Height = height
	m.camera.aspect = float64(width) / float64(height)
	m.surface.SetViewport(width, height)
}

// Start resumes the render loop after Stop. No-op unless mounted.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateMounted {
		m.running = true
	}
}

// Stop pauses the render loop without tearing the session down.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = false
}

// Populated is closed once the initial population settles, including the
// demo-placeholder path.
func (m *Manager) Populated() <-chan struct{} {
	return m.populated
}

// ARLaunchURL returns the URL to hand to the platform AR viewer for a
// product, or ok=false when AR is disabled for this embed or the session
// settled on the embedded viewer. The viewer decision is made once per
// session and never revisited.
func (m *Manager) ARLaunchURL(ref catalog.AssetReference) (string, bool) {
	if !m.cfg.EnableAR {
		return "", false
	}
	url, ok := m.handoff.LaunchURL(ref)
	if ok {
		_ = m.deps.Analytics.TrackView(context.Background(), ref.ProductID)
	}
	return url, ok
}

// Camera reports the session camera placement and projection.
func (m *Manager) Camera() (position render.Vec3, fov, aspect float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.camera.position, m.camera.fov, m.camera.aspect
}

// Inspect exposes the surface's node graph when the backend supports it.
func (m *Manager) Inspect() (render.Inspector, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inspector, ok := m.surface.(render.Inspector)
	return inspector, ok
}

// Entities returns a snapshot of the placed entities.
func (m *Manager) Entities() []PlacedEntity {
	m.mu.Lock()
	defer m.mu.Unlock()
	entities := make([]PlacedEntity, 0, len(m.entities))
	for _, e := range m.entities {
		entities = append(entities, e)
	}
	return entities
}

// Dispose stops the render loop, releases every entity and the surface, and
// ends the session. Safe to call multiple times; only the first has effect.
func (m *Manager) Dispose() {
	m.disposeOnce.Do(func() {
		m.mu.Lock()
		wasMounted := m.state == StateMounted || m.state == StateFailed
		m.state = StateDisposed
		m.running = false
		cancel := m.cancel
		surface := m.surface
		entities := m.entities
		m.entities = make(map[string]PlacedEntity)
		sessionAge := time.Since(m.mountedAt)
		m.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		m.wg.Wait()

		if surface != nil {
			for _, e := range entities {
				surface.RemoveNode(e.Handle)
			}
			surface.Release()
		}

		if wasMounted {
			ctx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			for _, e := range entities {
				_ = m.deps.Analytics.TrackEngagement(ctx, e.ProductID, sessionAge)
			}
			m.logger.Info("scene disposed",
				logging.String(logging.FieldEventType, "dispose"),
				logging.Int("entities", len(entities)),
				logging.Duration("session_age", sessionAge),
			)
		}
	})
}
