// Package pool keeps released objects around for reuse, keyed by kind.
package pool

// Registry is an object pool keyed by K. It is not safe for concurrent use.
type Registry[K comparable, T any] struct {
	newFn       func(K) T
	idle        map[K][]T
	outstanding map[K]int
}

// New returns a registry that builds fresh objects with newFn.
func New[K comparable, T any](newFn func(K) T) *Registry[K, T] {
	return &Registry[K, T]{
		newFn:       newFn,
		idle:        make(map[K][]T),
		outstanding: make(map[K]int),
	}
}

// Acquire hands out the most recently released object of kind k, or a
// new one when none is idle.
func (r *Registry[K, T]) Acquire(k K) T {
	r.outstanding[k]++
	free := r.idle[k]
	if n := len(free); n > 0 {
		v := free[n-1]
		var zero T
		free[n-1] = zero
		r.idle[k] = free[:n-1]
		return v
	}
	return r.newFn(k)
}

// Release puts v back for later reuse.
func (r *Registry[K, T]) Release(k K, v T) {
	if r.outstanding[k] > 0 {
		r.outstanding[k]--
	}
	r.idle[k] = append(r.idle[k], v)
}

// Idle reports how many objects of kind k wait for reuse.
func (r *Registry[K, T]) Idle(k K) int { return len(r.idle[k]) }

// Outstanding reports how many objects of kind k are handed out.
func (r *Registry[K, T]) Outstanding(k K) int { return r.outstanding[k] }
