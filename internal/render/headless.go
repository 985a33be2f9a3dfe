package render

import (
	"sync"
)

// Headless is the default backend. It keeps the full node graph in memory
// and honors the surface lifecycle without drawing anything.
type Headless struct {
	unavailable bool
}

// NewHeadless returns an always-available headless backend.
func NewHeadless() *Headless {
	return &Headless{}
}

// NewUnavailable returns a backend that reports no render capability,
// standing in for a platform without WebGL support.
func NewUnavailable() *Headless {
	return &Headless{unavailable: true}
}

func (h *Headless) Name() string { return "headless" }

func (h *Headless) Available() bool { return !h.unavailable }

func (h *Headless) NewSurface(width, height int) (Surface, error) {
	if h.unavailable {
		return nil, ErrBackendUnavailable
	}
	return &headlessSurface{
		width:  width,
		height: height,
		nodes:  make(map[Handle]Node),
		lost:   make(chan struct{}),
	}, nil
}

type headlessSurface struct {
	mu       sync.Mutex
	width    int
	height   int
	nodes    map[Handle]Node
	nextID   Handle
	frames   uint64
	released bool
	lostOnce sync.Once
	lost     chan struct{}
}

func (s *headlessSurface) AddNode(node Node) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return 0, ErrSurfaceReleased
	}
	s.nextID++
	s.nodes[s.nextID] = node
	return s.nextID, nil
}

func (s *headlessSurface) RemoveNode(handle Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.nodes, handle)
}

func (s *headlessSurface) SetViewport(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *headlessSurface) RenderFrame() error {
	select {
	case <-s.lost:
		return ErrContextLost
	default:
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return ErrSurfaceReleased
	}
	s.frames++
	return nil
}

func (s *headlessSurface) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.released = true
	s.nodes = make(map[Handle]Node)
}

func (s *headlessSurface) Lost() <-chan struct{} { return s.lost }

// SimulateContextLoss makes every later RenderFrame fail and signals Lost.
// Test hook mirroring a webglcontextlost event.
func (s *headlessSurface) SimulateContextLoss() {
	s.lostOnce.Do(func() { close(s.lost) })
}

// Snapshot returns a copy of the current node graph.
func (s *headlessSurface) Snapshot() []Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	nodes := make([]Node, 0, len(s.nodes))
	for _, node := range s.nodes {
		nodes = append(nodes, node)
	}
	return nodes
}

// FrameCount reports how many frames have been rendered.
func (s *headlessSurface) FrameCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Viewport reports the current viewport dimensions.
func (s *headlessSurface) Viewport() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Inspector is implemented by surfaces that expose their node graph for
// inspection. The headless surface implements it; tests and the CLI summary
// rely on it.
type Inspector interface {
	Snapshot() []Node
	FrameCount() uint64
	Viewport() (int, int)
}

// LossSimulator is implemented by surfaces that can fake a context loss.
type LossSimulator interface {
	SimulateContextLoss()
}

var (
	_ Inspector     = (*headlessSurface)(nil)
	_ LossSimulator = (*headlessSurface)(nil)
)
