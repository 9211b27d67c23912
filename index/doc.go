// Package index provides an immutable in-memory vector index.
//
// Similarity is cosine similarity over the raw vectors. Results are ordered
// by descending score with ties broken by insertion order, so searches are
// deterministic for a fixed index and query.
package index
