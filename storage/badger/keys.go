package badger

import (
	"encoding/binary"

	"github.com/docsight/docsight/core"
)

// Key prefixes for different data types
const (
	turnPrefix      = "histurn"
	turnCountPrefix = "histcnt"
)

// sessionHash maps an opaque session identifier to a fixed-width key segment.
// Hashing keeps keys bounded and free of delimiter ambiguity regardless of
// what characters the caller puts in the identifier.
func sessionHash(sessionID string) [8]byte {
	var out [8]byte
	binary.BigEndian.PutUint64(out[:], uint64(core.IDFromContent(sessionID)))
	return out
}

// makeTurnKey generates a composite key for one turn.
// Format: prefix:sessionHash:seq, with seq in BigEndian so lexicographic
// iteration yields chronological order.
func makeTurnKey(sessionID string, seq uint64) []byte {
	prefix := []byte(turnPrefix + ":")
	hash := sessionHash(sessionID)
	buf := make([]byte, len(prefix)+8+8)
	offset := copy(buf, prefix)
	offset += copy(buf[offset:], hash[:])
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makeTurnPrefix generates the iteration prefix for one session's turns.
func makeTurnPrefix(sessionID string) []byte {
	prefix := []byte(turnPrefix + ":")
	hash := sessionHash(sessionID)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	copy(buf[offset:], hash[:])
	return buf
}

// makeTurnCountKey generates the key holding a session's turn count.
func makeTurnCountKey(sessionID string) []byte {
	prefix := []byte(turnCountPrefix + ":")
	hash := sessionHash(sessionID)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	copy(buf[offset:], hash[:])
	return buf
}
