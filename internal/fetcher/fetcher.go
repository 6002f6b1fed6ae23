// Package fetcher implements the read side of the resource contract: a
// per-entity cache filled by request/response cycles against the API.
// Views read through it; mutations elsewhere signal the refresh bus, which
// marks every cached value stale the next time it is read.
//
// Responses carry per-key sequence numbers so overlapping calls cannot
// race: the last initiated request is authoritative and an earlier
// in-flight response never overwrites a cache a later one already filled.
package fetcher

import (
	"context"
	"sync"

	"github.com/albqueque12/FitIA/internal/refresh"
)

type FetchFunc[T any] func(ctx context.Context, key string) (T, error)

// State is the snapshot a view renders from: loading and error are
// per-entity, never fatal to the shell.
type State[T any] struct {
	Loading bool
	OK      bool
	Data    T
	Err     error
}

type Fetcher[T any] struct {
	mu      sync.Mutex
	fetch   FetchFunc[T]
	bus     *refresh.Bus
	entries map[string]*entry[T]
}

type entry[T any] struct {
	nextSeq  uint64
	applied  uint64
	inflight int
	data     T
	ok       bool
	stale    bool
	err      error
	busSeen  uint64
}

func New[T any](bus *refresh.Bus, fetch FetchFunc[T]) *Fetcher[T] {
	return &Fetcher[T]{
		fetch:   fetch,
		bus:     bus,
		entries: make(map[string]*entry[T]),
	}
}

// Get returns the cached value when it is still fresh (no error, not
// invalidated, and the refresh bus has not moved since it was fetched);
// otherwise it refetches.
func (f *Fetcher[T]) Get(ctx context.Context, key string) (T, error) {
	f.mu.Lock()
	e := f.entry(key)
	if e.ok && e.err == nil && !e.stale && e.busSeen == f.bus.Value() {
		data := e.data
		f.mu.Unlock()
		return data, nil
	}
	f.mu.Unlock()
	return f.Refetch(ctx, key)
}

// Refetch always issues a request. When a later-initiated request has
// already filled the cache by the time this one returns, the stale result
// is discarded and the authoritative cached value is returned instead.
func (f *Fetcher[T]) Refetch(ctx context.Context, key string) (T, error) {
	f.mu.Lock()
	e := f.entry(key)
	e.nextSeq++
	seq := e.nextSeq
	e.inflight++
	busSeen := f.bus.Value()
	f.mu.Unlock()

	data, err := f.fetch(ctx, key)

	f.mu.Lock()
	defer f.mu.Unlock()
	e.inflight--

	if seq > e.applied {
		e.applied = seq
		if err != nil {
			e.err = err
		} else {
			e.data = data
			e.ok = true
			e.stale = false
			e.err = nil
			e.busSeen = busSeen
		}
		return data, err
	}

	// A request initiated after this one already resolved; its value wins.
	if e.ok && e.err == nil {
		return e.data, nil
	}
	return data, err
}

// Snapshot exposes the view-facing state without touching the network.
func (f *Fetcher[T]) Snapshot(key string) State[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := f.entry(key)
	return State[T]{
		Loading: e.inflight > 0,
		OK:      e.ok,
		Data:    e.data,
		Err:     e.err,
	}
}

// Invalidate marks one key stale so the next Get refetches.
func (f *Fetcher[T]) Invalidate(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entry(key).stale = true
}

// InvalidateAll marks every cached key stale.
func (f *Fetcher[T]) InvalidateAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		e.stale = true
	}
}

func (f *Fetcher[T]) entry(key string) *entry[T] {
	e, ok := f.entries[key]
	if !ok {
		e = &entry[T]{}
		f.entries[key] = e
	}
	return e
}
