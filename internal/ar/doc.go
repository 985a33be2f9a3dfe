// Package ar decides, once per viewing session, whether product assets are
// handed to a platform-native AR viewer or shown in the embedded 3D viewer.
//
// The decision is made on first use and never revisited for the session.
// The availability probe is injected; the default reports unavailable, which
// keeps the embedded viewer as the baseline everywhere the native viewer
// cannot be detected.
package ar
