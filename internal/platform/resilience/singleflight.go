package resilience

import "sync"

// SingleFlight deduplicates concurrent calls for the same key. Callers that
// arrive while a call is running share its result.
type SingleFlight struct {
	mu       sync.Mutex
	inflight map[string]*flight
}

type flight struct {
	done  chan struct{}
	value any
	err   error
	dups  int
}

func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.inflight == nil {
		g.inflight = make(map[string]*flight)
	}
	if f, ok := g.inflight[key]; ok {
		f.dups++
		g.mu.Unlock()
		<-f.done
		return f.value, f.err, true
	}

	f := &flight{done: make(chan struct{})}
	g.inflight[key] = f
	g.mu.Unlock()

	f.value, f.err = fn()
	close(f.done)

	g.mu.Lock()
	if g.inflight[key] == f {
		delete(g.inflight, key)
	}
	shared := f.dups > 0
	g.mu.Unlock()

	return f.value, f.err, shared
}

// Forget detaches the running call for key so the next Do starts a fresh one.
// Callers already waiting still receive the detached result.
func (g *SingleFlight) Forget(key string) {
	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()
}
