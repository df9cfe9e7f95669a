// Package file provides TOML-backed configuration for the overlay and
// its bundled data sources.
package file
