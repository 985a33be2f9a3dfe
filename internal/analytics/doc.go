// Package analytics delivers interaction events via a pluggable tracker.
//
// The default implementation posts to the configured tracking endpoint and
// degrades to a no-op when no endpoint is set. Delivery is fire-and-forget:
// failures are logged and swallowed, and must never affect rendering or the
// user flow. All scene code depends only on the Service interface.
package analytics
