package resilience

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// StateChangeFunc observes breaker transitions. It runs outside the breaker lock.
type StateChangeFunc func(name string, from, to CircuitState)

// CircuitBreaker guards one dependency. It opens after a run of consecutive
// failures and lets a bounded number of trial requests through once the open
// timeout has passed.
type CircuitBreaker struct {
	name string
	cfg  CircuitBreakerConfig

	mu                  sync.Mutex
	state               CircuitState
	consecutiveFailures int
	openedAt            time.Time
	halfOpenInFlight    int
	halfOpenSuccesses   int
	now                 func() time.Time
}

func NewCircuitBreaker(name string, cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		name:  name,
		cfg:   cfg.withDefaults(),
		state: CircuitStateClosed,
		now:   time.Now,
	}
}

func (b *CircuitBreaker) Name() string {
	return b.name
}

// Allow reserves a call slot. It returns ErrCircuitOpen while the breaker
// rejects calls.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	from := b.state
	if b.state == CircuitStateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			b.mu.Unlock()
			return errors.Wrapf(ErrCircuitOpen, "breaker %s", b.name)
		}
		b.toHalfOpen()
	}

	if b.state == CircuitStateHalfOpen && b.halfOpenInFlight >= b.cfg.HalfOpenMaxReq {
		b.mu.Unlock()
		b.notify(from, CircuitStateHalfOpen)
		return errors.Wrapf(ErrCircuitOpen, "breaker %s is probing", b.name)
	}
	if b.state == CircuitStateHalfOpen {
		b.halfOpenInFlight++
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	from := b.state
	switch b.state {
	case CircuitStateClosed:
		b.consecutiveFailures = 0
	case CircuitStateHalfOpen:
		if b.halfOpenInFlight > 0 {
			b.halfOpenInFlight--
		}
		b.halfOpenSuccesses++
		if b.halfOpenSuccesses >= b.cfg.HalfOpenMaxReq && b.halfOpenInFlight == 0 {
			b.toClosed()
		}
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	from := b.state
	switch b.state {
	case CircuitStateClosed:
		b.consecutiveFailures++
		if b.consecutiveFailures >= b.cfg.FailureThreshold {
			b.toOpen()
		}
	case CircuitStateHalfOpen:
		if b.halfOpenInFlight > 0 {
			b.halfOpenInFlight--
		}
		b.toOpen()
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
	to := b.state
	b.mu.Unlock()

	b.notify(from, to)
}

// State reports half-open for an open breaker whose timeout has elapsed,
// even before the next call moves it there.
func (b *CircuitBreaker) State() CircuitState {
	return b.Snapshot().State
}

type BreakerSnapshot struct {
	Name                string       `json:"name"`
	State               CircuitState `json:"state"`
	ConsecutiveFailures int          `json:"consecutive_failures"`
	OpenedAt            *time.Time   `json:"opened_at,omitempty"`
}

func (b *CircuitBreaker) Snapshot() BreakerSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := BreakerSnapshot{
		Name:                b.name,
		State:               b.state,
		ConsecutiveFailures: b.consecutiveFailures,
	}
	if b.state == CircuitStateOpen {
		openedAt := b.openedAt
		out.OpenedAt = &openedAt
		if b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
			out.State = CircuitStateHalfOpen
		}
	}
	return out
}

func (b *CircuitBreaker) notify(from, to CircuitState) {
	if from == to || b.cfg.OnStateChange == nil {
		return
	}
	b.cfg.OnStateChange(b.name, from, to)
}

func (b *CircuitBreaker) toClosed() {
	b.state = CircuitStateClosed
	b.consecutiveFailures = 0
	b.halfOpenInFlight = 0
	b.halfOpenSuccesses = 0
	b.openedAt = time.Time{}
}

func (b *CircuitBreaker) toOpen() {
	b.state = CircuitStateOpen
	b.openedAt = b.now()
	b.halfOpenInFlight = 0
	b.halfOpenSuccesses = 0
}

func (b *CircuitBreaker) toHalfOpen() {
	b.state = CircuitStateHalfOpen
	b.halfOpenInFlight = 0
	b.halfOpenSuccesses = 0
}
