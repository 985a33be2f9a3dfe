// Package catalog fetches the product/asset listing for a collection and
// defines the closed set of collections the engine knows how to stage.
//
// Collections are a fixed enum with an exhaustive preset mapping (lighting
// rig, particle count, background) rather than open string keys, so adding a
// collection forces every dispatch site to be revisited. The client never
// invents data: a listing failure returns an error and the scene layer
// decides what to show instead.
package catalog
