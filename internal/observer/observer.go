// Package observer implements named-channel publish/subscribe for
// components living on the UI goroutine. Delivery is synchronous and in
// subscription order.
package observer

// Subject fans values of type T out to handlers subscribed by channel name.
type Subject[T any] struct {
	nextID   int
	channels map[string][]subscription[T]
}

type subscription[T any] struct {
	id int
	fn func(T)
}

// Subscription detaches a handler when canceled.
type Subscription struct {
	cancel func()
}

// Cancel removes the handler. Calling it more than once is harmless.
func (s Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}

// New returns an empty subject.
func New[T any]() *Subject[T] {
	return &Subject[T]{channels: make(map[string][]subscription[T])}
}

// On registers fn for values emitted on channel.
func (s *Subject[T]) On(channel string, fn func(T)) Subscription {
	if fn == nil {
		return Subscription{}
	}
	s.nextID++
	id := s.nextID
	s.channels[channel] = append(s.channels[channel], subscription[T]{id: id, fn: fn})
	return Subscription{cancel: func() { s.off(channel, id) }}
}

// Emit delivers v to every handler on channel and returns how many ran.
func (s *Subject[T]) Emit(channel string, v T) int {
	subs := append([]subscription[T](nil), s.channels[channel]...)
	for _, sub := range subs {
		sub.fn(v)
	}
	return len(subs)
}

func (s *Subject[T]) off(channel string, id int) {
	subs := s.channels[channel]
	for i, sub := range subs {
		if sub.id == id {
			s.channels[channel] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}
