// Package registry implements the embedding contract for host pages.
//
// Each embed container maps to at most one live scene session. The registry
// translates raw embed options into resolved scene configuration, tracks the
// instances it created, and tears them down on page teardown. A flock on the
// data directory keeps concurrent processes from sharing the verdict cache.
package registry
