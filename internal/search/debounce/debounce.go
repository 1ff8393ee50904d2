// Package debounce delays propagation of a rapidly-changing value until it
// has been stable for a configured interval. The primitive is pure value
// bookkeeping: callers schedule their own timer (a tea.Tick in the UI) for
// each Bump and resolve the sequence when it fires. A tick whose sequence is
// no longer the latest resolves to nothing, so every intermediate change
// restarts the countdown — trailing edge only, no leading emission.
package debounce

import "time"

// Debouncer coalesces a stream of values of type T
type Debouncer[T any] struct {
	interval time.Duration
	seq      uint64
	latest   T
}

// New creates a debouncer with the given stability interval
func New[T any](interval time.Duration) *Debouncer[T] {
	return &Debouncer[T]{interval: interval}
}

// Interval returns the configured stability interval
func (d *Debouncer[T]) Interval() time.Duration {
	return d.interval
}

// Bump records a new input value and returns its sequence number.
// Any previously issued sequence becomes stale.
func (d *Debouncer[T]) Bump(v T) uint64 {
	d.seq++
	d.latest = v
	return d.seq
}

// Resolve returns the debounced value if seq is still the latest issued
// sequence. A stale sequence resolves to the zero value and false.
func (d *Debouncer[T]) Resolve(seq uint64) (T, bool) {
	if seq != d.seq || seq == 0 {
		var zero T
		return zero, false
	}
	return d.latest, true
}

// Latest returns the most recently bumped value regardless of stability
func (d *Debouncer[T]) Latest() T {
	return d.latest
}
