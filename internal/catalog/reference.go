package catalog

import "showroom/internal/render"

// AssetReference identifies one placeable 3D item. Immutable once received
// from the catalog.
type AssetReference struct {
	ProductID string       `json:"product_id"`
	ModelURL  string       `json:"model_url"`
	Name      string       `json:"name"`
	Position  *render.Vec3 `json:"position,omitempty"`
}

// Slot returns the declared placement, defaulting to the origin.
func (r AssetReference) Slot() render.Vec3 {
	if r.Position == nil {
		return render.Vec3{}
	}
	return *r.Position
}
