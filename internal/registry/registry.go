package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"showroom/internal/analytics"
	"showroom/internal/ar"
	"showroom/internal/config"
	"showroom/internal/logging"
	"showroom/internal/render"
	"showroom/internal/scene"
)

var (
	// ErrContainerInUse reports an Init against a container that already
	// holds a live session. Dispose it first.
	ErrContainerInUse = errors.New("container already holds a session")
	// ErrClosed reports use of a closed registry.
	ErrClosed = errors.New("registry closed")
)

// Instance pairs a live session with the embed options that created it.
type Instance struct {
	manager *scene.Manager
	embed   EmbedConfig
}

// Manager returns the session behind this instance.
func (i *Instance) Manager() *scene.Manager { return i.manager }

// Options returns the embed options the host page supplied.
func (i *Instance) Options() EmbedConfig { return i.embed }

// Deps bundles the collaborators shared by every session the registry
// creates. The validator is a factory, not an instance: verdict caches live
// and die with one session, so each Init builds its own validator. The
// loader, catalog client, and analytics service are stateless and shared.
type Deps struct {
	Backend      render.Backend
	NewValidator func() scene.Validator
	Loader       scene.Loader
	Catalog      scene.CatalogClient
	Analytics    analytics.Service
	ARProbe      ar.Probe
	Logger       *slog.Logger
}

// Registry tracks the scene sessions created for embed containers and
// enforces single-process ownership of the data directory.
type Registry struct {
	deps     Deps
	defaults config.Scene
	logger   *slog.Logger
	lockPath string
	lock     *flock.Flock

	mu        sync.Mutex
	closed    bool
	instances map[string]*Instance
}

// New acquires the data-directory lock and returns an empty registry.
func New(cfg *config.Config, deps Deps, logger *slog.Logger) (*Registry, error) {
	if cfg == nil {
		return nil, errors.New("registry requires configuration")
	}
	if deps.NewValidator == nil {
		return nil, errors.New("registry requires a validator factory")
	}

	lockPath := filepath.Join(cfg.Paths.DataDir, "showroom.lock")
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire registry lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another showroom process holds %s", lockPath)
	}

	return &Registry{
		deps:      deps,
		defaults:  cfg.Scene,
		logger:    logging.NewComponentLogger(logger, "registry"),
		lockPath:  lockPath,
		lock:      lock,
		instances: make(map[string]*Instance),
	}, nil
}

// Init creates and mounts a session for the container. When the mount fails
// on platform capability the instance is still registered so the host page
// can read the error panel; the mount error is returned alongside it.
func (r *Registry) Init(ctx context.Context, containerID string, embed EmbedConfig) (*Instance, error) {
	containerID = strings.TrimSpace(containerID)
	if containerID == "" {
		return nil, errors.New("container id is required")
	}

	sceneCfg, err := embed.sceneConfig(r.defaults)
	if err != nil {
		return nil, fmt.Errorf("resolve embed options: %w", err)
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrClosed
	}
	if _, exists := r.instances[containerID]; exists {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrContainerInUse, containerID)
	}
	instance := &Instance{
		manager: scene.NewManager(sceneCfg, scene.Deps{
			Backend:   r.deps.Backend,
			Validator: r.deps.NewValidator(),
			Loader:    r.deps.Loader,
			Catalog:   r.deps.Catalog,
			Analytics: r.deps.Analytics,
			ARProbe:   r.deps.ARProbe,
			Logger:    r.deps.Logger,
		}),
		embed: embed,
	}
	r.instances[containerID] = instance
	r.mu.Unlock()

	mountErr := instance.manager.Mount(ctx)
	r.logger.Info("container initialized",
		logging.String("container_id", containerID),
		logging.String(logging.FieldCollection, string(sceneCfg.Collection)),
		logging.String(logging.FieldSessionID, instance.manager.SessionID()),
		logging.Bool("mounted", mountErr == nil),
	)
	return instance, mountErr
}

// Get looks up the instance bound to a container.
func (r *Registry) Get(containerID string) (*Instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	instance, ok := r.instances[containerID]
	return instance, ok
}

// Count reports how many containers hold sessions.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}

// Dispose tears down the container's session. Reports whether a session
// existed.
func (r *Registry) Dispose(containerID string) bool {
	r.mu.Lock()
	instance, ok := r.instances[containerID]
	delete(r.instances, containerID)
	r.mu.Unlock()

	if !ok {
		return false
	}
	instance.manager.Dispose()
	r.logger.Info("container disposed", logging.String("container_id", containerID))
	return true
}

// DisposeAll tears down every tracked session.
func (r *Registry) DisposeAll() {
	r.mu.Lock()
	instances := r.instances
	r.instances = make(map[string]*Instance)
	r.mu.Unlock()

	for containerID, instance := range instances {
		instance.manager.Dispose()
		r.logger.Info("container disposed", logging.String("container_id", containerID))
	}
}

// Close disposes every session and releases the data-directory lock. The
// registry cannot be reused afterwards.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	r.DisposeAll()
	if err := r.lock.Unlock(); err != nil {
		return fmt.Errorf("release registry lock: %w", err)
	}
	return nil
}
