// Command showroom is the operational CLI for the 3D product experience
// engine. It exercises the same components the embed surface uses: fidelity
// validation, catalog listing, headless scene rendering, and the persistent
// verdict cache.
package main
