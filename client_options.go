package facultysearch

import (
	"context"
	"time"
)

// EmbeddingResult is the outcome of embedding one text.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder turns query text into a vector. Implementations must return
// normalized embeddings matching the vectors stored in the index.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs            []string
	password         string
	embedder         Embedder
	readinessTimeout time.Duration
}

// WithRedis sets the Redis addresses to connect to.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
	}
}

// WithPassword sets the database password.
func WithPassword(password string) Option {
	return func(c *clientConfig) {
		c.password = password
	}
}

// WithEmbedder sets the query embedder. Required.
func WithEmbedder(e Embedder) Option {
	return func(c *clientConfig) {
		c.embedder = e
	}
}

// WithReadinessTimeout overrides how long New waits for the database.
func WithReadinessTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.readinessTimeout = d
	}
}
