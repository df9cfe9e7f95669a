// Package sqlite provides a SQLite-backed selection history store. It
// records which items the user commits and serves them back as a
// newest-first data source, so a "Recents" section survives restarts.
package sqlite
