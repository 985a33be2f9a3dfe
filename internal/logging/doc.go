// Package logging wraps log/slog with the attribute helpers and handler
// construction used across showroom.
//
// Components receive a *slog.Logger and decorate it with NewComponentLogger;
// standardized field names live in fields.go so scene, fidelity, and catalog
// logs stay queryable with the same keys. Console output is the default when
// attached to a terminal, JSON otherwise.
package logging
