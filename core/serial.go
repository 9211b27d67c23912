package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers. The persisted schema is a single small struct,
// so the serializers are maintained by hand instead of generated.

// IDMUS serializes ID values.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (id ID, n int, err error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

// TurnMUS serializes Turn values. Timestamps are stored as Unix microseconds.
var TurnMUS = turnMUS{}

type turnMUS struct{}

func (turnMUS) Marshal(t Turn, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(t.Id), bs)
	n += varint.Int.Marshal(int(t.Role), bs[n:])
	n += ord.String.Marshal(t.Contents, bs[n:])
	n += varint.Int64.Marshal(t.CreatedAt.UnixMicro(), bs[n:])
	return n
}

func (turnMUS) Unmarshal(bs []byte) (t Turn, n int, err error) {
	id, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return t, n, err
	}
	t.Id = ID(id)

	role, n1, err := varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return t, n, err
	}
	t.Role = Role(role)

	t.Contents, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return t, n, err
	}

	micros, n1, err := varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return t, n, err
	}
	t.CreatedAt = time.UnixMicro(micros).UTC()
	return t, n, nil
}

func (turnMUS) Size(t Turn) int {
	size := varint.Uint64.Size(uint64(t.Id))
	size += varint.Int.Size(int(t.Role))
	size += ord.String.Size(t.Contents)
	size += varint.Int64.Size(t.CreatedAt.UnixMicro())
	return size
}
