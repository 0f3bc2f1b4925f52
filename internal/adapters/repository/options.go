package repository

// RedisOption applies a configuration option to the RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix namespaces every key, e.g. "blindcmp:".
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// WithMaxTxRetries bounds how often CompareAndSwap re-runs a transaction
// aborted by a concurrent write to the watched key.
func WithMaxTxRetries(n int) RedisOption {
	return func(s *RedisStore) {
		if n > 0 {
			s.maxTxRetries = n
		}
	}
}
