package scene

import "showroom/internal/render"

// EntityKind records how a product slot was filled.
type EntityKind string

const (
	// EntityVerified marks a slot holding a validated, decoded model.
	EntityVerified EntityKind = "verified"
	// EntityPlaceholder marks a slot holding the branded stand-in.
	EntityPlaceholder EntityKind = "placeholder"
)

// PlacedEntity is one product slot in the scene. The manager exclusively
// owns the collection; external code only ever sees copies.
type PlacedEntity struct {
	ProductID string
	Kind      EntityKind
	Handle    render.Handle
}
