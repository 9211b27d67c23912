// Package storage provides the conversation-history storage abstraction.
//
// The HistoryRepository interface decouples the pipeline and session layers
// from the storage implementation. The only shipped backend is storage/badger,
// which runs BadgerDB in memory: history survives for the process lifetime,
// never across restarts.
//
// Public constructors in backend packages return the storage interfaces to
// prevent coupling to backend specifics; all implementations must be safe for
// concurrent use, and all methods accept a context for cancellation.
package storage
