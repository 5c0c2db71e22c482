package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlightSharesInflightResult(t *testing.T) {
	var flight SingleFlight
	var calls atomic.Int32

	const callers = 16
	gate := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(callers)

	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			<-gate
			val, err, _ := flight.Do("elevation:36.567,-121.950", func() (any, error) {
				calls.Add(1)
				time.Sleep(10 * time.Millisecond)
				return 52.0, nil
			})
			if err != nil {
				t.Errorf("flight failed: %v", err)
			}
			if val != 52.0 {
				t.Errorf("unexpected shared value: %v", val)
			}
		}()
	}

	close(gate)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single upstream call, got %d", got)
	}
}

func TestSingleFlightRunsAgainAfterCompletion(t *testing.T) {
	var flight SingleFlight
	var calls int

	for i := 0; i < 2; i++ {
		if _, err, shared := flight.Do("forecast:pebble", func() (any, error) {
			calls++
			return nil, nil
		}); err != nil || shared {
			t.Fatalf("unexpected result: err=%v shared=%t", err, shared)
		}
	}

	if calls != 2 {
		t.Fatalf("sequential calls must not be deduplicated, got %d", calls)
	}
}
