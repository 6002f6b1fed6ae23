// Package refresh carries the cross-view "server state changed, refetch"
// signal. The bus is a monotonic counter: mutations call Signal, views that
// cache server data compare against the value they last observed. No payload
// travels with the signal; subscribers always refetch in full.
package refresh

import "sync"

type Bus struct {
	mu   sync.Mutex
	seq  uint64
	subs map[*Subscription]struct{}
}

// Subscription delivers change notifications on C. The channel is buffered
// with capacity one and coalesces: a burst of signals may surface as a
// single receive carrying the latest counter value.
type Subscription struct {
	bus *Bus
	C   chan uint64
}

func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

// Signal increments the counter and notifies every live subscription.
func (b *Bus) Signal() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	for sub := range b.subs {
		// Replace a pending notification instead of blocking.
		select {
		case sub.C <- b.seq:
		default:
			select {
			case <-sub.C:
			default:
			}
			sub.C <- b.seq
		}
	}
}

// Value returns the current counter. It never decreases.
func (b *Bus) Value() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seq
}

// Subscribe registers a new subscription. The caller must Close it when the
// observing view goes away.
func (b *Bus) Subscribe() *Subscription {
	sub := &Subscription{bus: b, C: make(chan uint64, 1)}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Close detaches the subscription from the bus. Signals raised after Close
// are not delivered; C is left open so a pending receive stays valid.
func (s *Subscription) Close() {
	s.bus.mu.Lock()
	delete(s.bus.subs, s)
	s.bus.mu.Unlock()
}
