package render

import "errors"

var (
	// ErrBackendUnavailable reports that the platform cannot render at all.
	// This is the one failure class that is surfaced to the user.
	ErrBackendUnavailable = errors.New("render backend unavailable")
	// ErrContextLost reports that the drawing context died mid-session.
	ErrContextLost = errors.New("render context lost")
	// ErrSurfaceReleased reports use of a surface after Release.
	ErrSurfaceReleased = errors.New("render surface released")
)

// Vec3 is a position or direction in scene space.
type Vec3 struct {
	X, Y, Z float64
}

// Tags identify the product a node belongs to for lookup and disposal.
type Tags struct {
	ProductID     string
	Name          string
	IsPlaceholder bool
}

// NodeKind distinguishes the structural roles a node can play.
type NodeKind string

const (
	KindModel       NodeKind = "model"
	KindPlaceholder NodeKind = "placeholder"
	KindLight       NodeKind = "light"
	KindFloor       NodeKind = "floor"
	KindParticles   NodeKind = "particles"
)

// LightRole names the slots in the lighting rig.
type LightRole string

const (
	LightAmbient LightRole = "ambient"
	LightKey     LightRole = "key"
	LightFill    LightRole = "fill"
	LightRim     LightRole = "rim"
)

// Light describes one light in the rig.
type Light struct {
	Role      LightRole
	Intensity float64
	Position  Vec3
}

// Geometry describes what a node draws. Model nodes carry mesh counts from
// the decoded asset; placeholder nodes carry primitive dimensions.
type Geometry struct {
	Primitive     string
	MeshCount     int
	PrimitiveDims Vec3
	ParticleCount int
}

// Material describes surface appearance.
type Material struct {
	Color     string
	Metalness float64
	Roughness float64
}

// Node is the declarative description handed to a Surface.
type Node struct {
	Kind          NodeKind
	Tags          Tags
	Position      Vec3
	Geometry      Geometry
	Material      Material
	Light         *Light
	CastShadow    bool
	ReceiveShadow bool
}

// Handle references a node placed on a surface.
type Handle uint64

// Surface owns the live node graph for one mounted session.
type Surface interface {
	AddNode(node Node) (Handle, error)
	RemoveNode(handle Handle)
	SetViewport(width, height int)
	RenderFrame() error
	Release()
	// Lost is closed when the drawing context dies; the session treats this
	// as fatal and does not attempt recreation.
	Lost() <-chan struct{}
}

// Backend reports platform capability and creates surfaces.
type Backend interface {
	Name() string
	Available() bool
	NewSurface(width, height int) (Surface, error)
}
