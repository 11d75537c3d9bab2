package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch signals a query or text vector whose dimension
	// differs from the configured index dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrInvalidFilter signals a malformed or unsatisfiable filter set.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidRequest signals a malformed search request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrIndexUnavailable signals that the vector index backend failed after
	// the retry budget was exhausted.
	ErrIndexUnavailable = errors.New("index unavailable")
	// ErrTimeout signals that the end-to-end request deadline elapsed.
	ErrTimeout = errors.New("search deadline exceeded")
	// ErrProfileNotFound signals a missing tenant ranking profile.
	ErrProfileNotFound = errors.New("ranking profile not found")
	// ErrInvalidRule signals a business rule that failed validation or
	// compilation.
	ErrInvalidRule = errors.New("invalid business rule")
	// ErrInvalidSignal signals a malformed feedback signal.
	ErrInvalidSignal = errors.New("invalid feedback signal")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrEmbeddingQuotaExceeded signals that the embedding token budget
	// is spent for the current window.
	ErrEmbeddingQuotaExceeded = errors.New("embedding token budget exceeded")
)

// PartitionError wraps ErrIndexUnavailable with the failing partition key.
type PartitionError struct {
	Partition string
	Err       error
}

func (e *PartitionError) Error() string {
	return fmt.Sprintf("partition %s: %v", e.Partition, e.Err)
}

func (e *PartitionError) Unwrap() error { return ErrIndexUnavailable }

// NewPartitionError creates a partition failure error.
func NewPartitionError(partition string, err error) error {
	return &PartitionError{Partition: partition, Err: err}
}
