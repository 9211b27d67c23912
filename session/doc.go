// Package session tracks per-user sessions and their document indexes.
//
// Each session owns an immutable vector index that is replaced as a
// whole on ingest, so queries never observe a partially built index.
// Sessions are fully isolated from each other and can be bounded by
// capacity and idle TTL.
package session
