package index

import "errors"

var (
	// ErrCountMismatch is returned when chunk and vector counts differ.
	ErrCountMismatch = errors.New("chunk and vector counts differ")

	// ErrDimensionMismatch is returned when vectors have inconsistent dimensions.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrModelRequired is returned when an index is built without an embedding model id.
	ErrModelRequired = errors.New("embedding model identifier required")

	// ErrModelMismatch is returned when a query embedding comes from a
	// different model than the index was built with. Vectors from different
	// models are not comparable even at equal dimensions.
	ErrModelMismatch = errors.New("query embedding model does not match index model")
)
