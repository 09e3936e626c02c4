package event

// Signal is a synchronous, ordered multicast of values of type T.
// Handlers run on the emitting goroutine before Emit returns.
// The zero value is ready to use.
type Signal[T any] struct {
	nextID   uint64
	handlers []handler[T]
}

type handler[T any] struct {
	id uint64
	fn func(T)
}

// Connection identifies one handler registered on a Signal.
type Connection struct {
	disconnect func()
}

// Disconnect removes the handler. Calling it more than once, or on the
// zero Connection, does nothing.
func (c Connection) Disconnect() {
	if c.disconnect != nil {
		c.disconnect()
	}
}

// Connect registers fn to run on every Emit, after the handlers already connected.
func (s *Signal[T]) Connect(fn func(T)) Connection {
	s.nextID++
	id := s.nextID
	s.handlers = append(s.handlers, handler[T]{id: id, fn: fn})
	return Connection{disconnect: func() { s.remove(id) }}
}

func (s *Signal[T]) remove(id uint64) {
	for i, h := range s.handlers {
		if h.id == id {
			// Copy so a snapshot held by an in-flight Emit is not mutated.
			next := make([]handler[T], 0, len(s.handlers)-1)
			next = append(next, s.handlers[:i]...)
			s.handlers = append(next, s.handlers[i+1:]...)
			return
		}
	}
}

// Emit calls every handler connected at the moment of the call, in order.
// Handlers connected during emission first run on the next Emit.
func (s *Signal[T]) Emit(v T) {
	snapshot := s.handlers
	for _, h := range snapshot {
		h.fn(v)
	}
}

// Clear drops every handler. Outstanding Connections become no-ops.
func (s *Signal[T]) Clear() {
	s.handlers = nil
}

// Len reports the number of connected handlers.
func (s *Signal[T]) Len() int {
	return len(s.handlers)
}
