// Package scene owns the render surface and its lifecycle.
//
// A Manager walks one session through Uninitialized -> Mounted -> Disposed
// and is the only component that mutates the live node graph. Population
// runs per product, concurrently: validate, then load or fall back to a
// placeholder, then place. A product's failure never blocks another's
// success, and every failure below the manager is absorbed into a
// placeholder; only platform-capability failures (no render backend, context
// loss) surface to the embedding page.
package scene
