// Package render abstracts the 3D drawing surface behind a small interface
// so the scene manager never touches a concrete graphics library.
//
// Backend reports platform capability and hands out Surfaces; a Surface owns
// the node graph for one mounted session. The headless implementation is the
// default: it tracks the same lifecycle a WebGL surface would (viewport,
// frames, context loss, release) without a GPU, which keeps the engine
// runnable server-side and fully testable.
package render
