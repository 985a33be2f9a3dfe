// Package assets fetches and decodes verified 3D models into scene-ready
// descriptors.
//
// Load assumes the fidelity gate already passed upstream; it performs no
// validation of its own. Decode handles both glTF JSON and the GLB binary
// container, honoring the Draco rule: an asset that declares compressed
// geometry must go through the Draco path first, and a missing decoder is a
// load failure, never a crash. Progress callbacks are advisory only.
package assets
