package visearch

import "time"

const (
	defaultDimension        = 512
	defaultReadinessTimeout = 10 * time.Second
)

type clientConfig struct {
	addrs            []string
	password         string
	dimension        int
	hnswM            int
	hnswEFConstruct  int
	readinessTimeout time.Duration
}

// Option configures the Client.
type Option func(*clientConfig)

// WithRedis sets the Redis/Valkey addresses to connect to.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) { c.addrs = addrs }
}

// WithPassword sets the database password.
func WithPassword(password string) Option {
	return func(c *clientConfig) { c.password = password }
}

// WithDimension sets the embedding dimensionality for partition indexes
// and entry validation. Defaults to 512 (CLIP ViT-B/32).
func WithDimension(dim int) Option {
	return func(c *clientConfig) { c.dimension = dim }
}

// WithHNSW overrides the HNSW build parameters for new partition indexes.
func WithHNSW(m, efConstruct int) Option {
	return func(c *clientConfig) {
		c.hnswM = m
		c.hnswEFConstruct = efConstruct
	}
}

// WithReadinessTimeout bounds the initial connectivity wait.
func WithReadinessTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.readinessTimeout = d }
}
