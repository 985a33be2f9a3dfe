package placeholder

import (
	"showroom/internal/render"
)

// Brand material for every stand-in: rose gold, satin finish.
const (
	brandColor     = "#B76E79"
	brandMetalness = 0.8
	brandRoughness = 0.35
)

// Capsule dimensions in scene units.
var capsuleDims = render.Vec3{X: 0.4, Y: 1.2, Z: 0.4}

// Create returns a deterministic branded stand-in for productID at the given
// slot. Pure and always succeeds.
func Create(productID string, position render.Vec3) render.Node {
	return CreateNamed(productID, "", position)
}

// CreateNamed is Create with a display name carried on the node tags.
func CreateNamed(productID, name string, position render.Vec3) render.Node {
	return render.Node{
		Kind: render.KindPlaceholder,
		Tags: render.Tags{
			ProductID:     productID,
			Name:          name,
			IsPlaceholder: true,
		},
		Position: position,
		Geometry: render.Geometry{
			Primitive:     "capsule",
			PrimitiveDims: capsuleDims,
		},
		Material: render.Material{
			Color:     brandColor,
			Metalness: brandMetalness,
			Roughness: brandRoughness,
		},
		CastShadow:    true,
		ReceiveShadow: true,
	}
}

// DemoProduct is one entry of the fixed fallback set.
type DemoProduct struct {
	ProductID string
	Name      string
	Position  render.Vec3
}

// DemoSet is the fixed labeled set staged when the catalog itself is
// unreachable. The scene is never left empty.
func DemoSet() []DemoProduct {
	return []DemoProduct{
		{ProductID: "demo-signature", Name: "Signature Piece", Position: render.Vec3{X: -2}},
		{ProductID: "demo-black-rose", Name: "Black Rose Piece", Position: render.Vec3{}},
		{ProductID: "demo-love-hurts", Name: "Love Hurts Piece", Position: render.Vec3{X: 2}},
	}
}
