package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Role identifies the author of a conversation turn.
type Role int

const (
	// RoleUser represents the human asking questions.
	RoleUser Role = iota + 1
	// RoleAssistant represents the generated answers.
	RoleAssistant
)

// String returns the wire/prompt representation of the role.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAssistant:
		return "assistant"
	default:
		return "unknown"
	}
}

// Turn is a single message in a session's conversation history.
// Turns are append-only and never mutated after being stored.
type Turn struct {
	Id        ID
	Role      Role
	Contents  string
	CreatedAt time.Time // When the turn was appended to the history
}

// Document is a raw uploaded payload. The format is inferred from Name's
// extension; Data is consumed during extraction and not retained.
type Document struct {
	Name string
	Data []byte
}

// Chunk is a bounded text segment used as the unit of retrieval.
// Position is the chunk's creation order within its source document set.
// Chunks are immutable once created.
type Chunk struct {
	Id       ID
	Position int
	Text     string
}

// RetrievedChunk pairs a chunk with its similarity score for one query.
type RetrievedChunk struct {
	Chunk Chunk
	Score float32
}
