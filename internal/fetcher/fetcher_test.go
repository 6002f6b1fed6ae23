package fetcher

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/albqueque12/FitIA/internal/refresh"
)

func TestGetCachesUntilBusSignals(t *testing.T) {
	bus := refresh.NewBus()
	calls := 0
	f := New(bus, func(_ context.Context, key string) (string, error) {
		calls++
		return "value for " + key, nil
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		got, err := f.Get(ctx, "7")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got != "value for 7" {
			t.Fatalf("unexpected value %q", got)
		}
	}
	if calls != 1 {
		t.Fatalf("expected a single fetch while fresh, got %d", calls)
	}

	bus.Signal()

	if _, err := f.Get(ctx, "7"); err != nil {
		t.Fatalf("Get after signal: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected a refetch after the bus moved, got %d calls", calls)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	bus := refresh.NewBus()
	calls := 0
	f := New(bus, func(_ context.Context, _ string) (int, error) {
		calls++
		return calls, nil
	})

	ctx := context.Background()
	if v, _ := f.Get(ctx, "a"); v != 1 {
		t.Fatalf("expected 1, got %d", v)
	}
	f.Invalidate("a")
	if v, _ := f.Get(ctx, "a"); v != 2 {
		t.Fatalf("expected refetched value 2, got %d", v)
	}
}

func TestErrorIsNotCached(t *testing.T) {
	bus := refresh.NewBus()
	calls := 0
	f := New(bus, func(_ context.Context, _ string) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("transient")
		}
		return "recovered", nil
	})

	ctx := context.Background()
	if _, err := f.Get(ctx, "k"); err == nil {
		t.Fatal("expected first fetch to fail")
	}
	got, err := f.Get(ctx, "k")
	if err != nil {
		t.Fatalf("expected recovery, got %v", err)
	}
	if got != "recovered" {
		t.Fatalf("unexpected value %q", got)
	}
}

// The in-flight race of the resource contract: request A is issued, then
// request B for the same key; A resolves after B. B's result must stay in
// the cache and A's late response must be discarded.
func TestLateResponseFromEarlierRequestIsDiscarded(t *testing.T) {
	bus := refresh.NewBus()

	gate := make(chan struct{})
	started := make(chan struct{}, 2)
	mu := sync.Mutex{}
	call := 0
	f := New(bus, func(_ context.Context, _ string) (string, error) {
		mu.Lock()
		call++
		mine := call
		mu.Unlock()
		started <- struct{}{}
		if mine == 1 {
			<-gate // A parks until B has fully resolved
			return "stale A", nil
		}
		return "fresh B", nil
	})

	ctx := context.Background()
	var wg sync.WaitGroup
	resultA := ""
	wg.Add(1)
	go func() {
		defer wg.Done()
		resultA, _ = f.Refetch(ctx, "7")
	}()
	<-started // A is in flight

	got, err := f.Refetch(ctx, "7") // B issues and resolves first
	if err != nil {
		t.Fatalf("Refetch B: %v", err)
	}
	if got != "fresh B" {
		t.Fatalf("expected B's result, got %q", got)
	}

	close(gate) // now let A's response arrive late
	wg.Wait()

	if resultA != "fresh B" {
		t.Fatalf("late caller should see the authoritative value, got %q", resultA)
	}
	snap := f.Snapshot("7")
	if !snap.OK || snap.Data != "fresh B" {
		t.Fatalf("cache should hold B's result, got %+v", snap)
	}
	if snap.Loading {
		t.Fatal("no request should be in flight")
	}
}

func TestSnapshotReportsLoadingWhileInFlight(t *testing.T) {
	bus := refresh.NewBus()
	gate := make(chan struct{})
	entered := make(chan struct{})
	f := New(bus, func(_ context.Context, _ string) (string, error) {
		close(entered)
		<-gate
		return "done", nil
	})

	go f.Get(context.Background(), "x")
	<-entered

	if snap := f.Snapshot("x"); !snap.Loading {
		t.Fatal("expected loading state while the request is in flight")
	}
	close(gate)
}

func TestKeysAreIndependent(t *testing.T) {
	bus := refresh.NewBus()
	f := New(bus, func(_ context.Context, key string) (string, error) {
		return "v:" + key, nil
	})

	ctx := context.Background()
	a, _ := f.Get(ctx, "a")
	b, _ := f.Get(ctx, "b")
	if a != "v:a" || b != "v:b" {
		t.Fatalf("cross-key contamination: %q %q", a, b)
	}

	f.InvalidateAll()
	if snap := f.Snapshot("a"); !snap.OK {
		t.Fatal("invalidation should keep the last data for rendering")
	}
}
