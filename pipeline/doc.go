// Package pipeline wires the ingestion and query flows together.
//
// Ingestion takes raw documents through extraction, chunking, batch
// embedding on a worker pool, and indexing, then swaps the session's
// index atomically. Querying embeds the question, retrieves the most
// similar chunks, and asks the generator for an answer grounded in
// them, recording the exchange in the session's conversation history.
package pipeline
