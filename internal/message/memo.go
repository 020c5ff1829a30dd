package message

// memo is a computed-on-first-access value holder.  Derived message fields
// are pure functions of the raw record and its conversation context, so each
// is computed at most once per owning Message.  Safe under single-threaded
// execution only; the pipeline never shares a Message between goroutines
// while it is being normalized.
type memo[T any] struct {
	done bool
	v    T
}

func (m *memo[T]) get(fn func() T) T {
	if !m.done {
		m.v = fn()
		m.done = true
	}
	return m.v
}
