// Package fidelity decides whether a 3D asset is trustworthy enough to
// display.
//
// Validate consults the remote scoring service and converts every transport
// or service failure into a failing verdict with score zero: an unreachable
// verification service is never interpreted as trusted. Real verdicts are
// cached per asset URL for the session; synthetic failure verdicts are not,
// so a later render attempt retries the network call.
//
// An optional SQLite-backed store persists real verdicts across sessions
// when configured; it is off by default.
package fidelity
