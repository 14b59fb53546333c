package domain

import "errors"

var (
	// ErrAuthorNotFound signals that an author lookup matched zero rows.
	ErrAuthorNotFound = errors.New("author not found")
	// ErrValidation signals malformed request parameters.
	ErrValidation = errors.New("validation failed")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrStoreUnavailable signals that the vector store is unreachable or errored.
	ErrStoreUnavailable = errors.New("vector store unavailable")
)
