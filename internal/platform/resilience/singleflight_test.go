package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			_, err, _ := g.Do("weekly-key", func() (any, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_Forget(t *testing.T) {
	var g SingleFlight
	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_, _, _ = g.Do("upcoming", func() (any, error) {
			close(started)
			<-release
			return "stale", nil
		})
	}()
	<-started

	g.Forget("upcoming")
	v, err, shared := g.Do("upcoming", func() (any, error) {
		return "fresh", nil
	})
	close(release)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "fresh" || shared {
		t.Fatalf("expected a fresh unshared call, got value=%v shared=%v", v, shared)
	}
}
