// Package stationprefs provides a scoped preference store for a broadcast station.
//
// Preferences are plain string values stored either system-wide or as per-identity
// overrides. Writes are atomic upserts against a pluggable storage backend
// (PostgreSQL, SQLite, DynamoDB, in-memory), reads can be served from an optional
// cache (Redis, in-memory), and the current identity travels in the context.
// Every named station setting is declared once in a settings table and exposed
// through typed accessors.
package stationprefs
