package resilience

import "time"

const (
	DefaultFailureThreshold = 5
	DefaultOpenTimeout      = 15 * time.Second
	DefaultHalfOpenMaxReq   = 2
)

// CircuitBreakerConfig tunes a breaker. Zero limits fall back to the
// Default* constants. Enabled is for callers deciding whether to wrap a
// dependency at all.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
	OnStateChange    StateChangeFunc
}

func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = DefaultFailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = DefaultOpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = DefaultHalfOpenMaxReq
	}
	return c
}
