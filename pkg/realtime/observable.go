package realtime

import "sync"

// Value is the read side of an Observable: the current value plus change
// subscriptions.
type Value[T any] interface {
	Get() T
	Subscribe(fn func(T)) (unsubscribe func())
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// Observable holds a value and pushes it to subscribers synchronously when it
// is set. Notifications run through a Serializer, so subscribers see values in
// the order they were written and may safely call back into the writer.
type Observable[T comparable] struct {
	mu     sync.Mutex
	value  T
	nextID uint64
	subs   []subscriber[T]
	exec   *Serializer
	owned  bool
}

// NewObservable creates an observable with its own serializer. Set and Emit
// deliver notifications before returning (unless another goroutine is already
// delivering).
func NewObservable[T comparable](initial T) *Observable[T] {
	return &Observable[T]{value: initial, exec: NewSerializer(), owned: true}
}

// NewObservableOn creates an observable that queues notifications on a shared
// serializer. Set and Emit only queue; the owner of exec calls Drain once it
// has released its own locks.
func NewObservableOn[T comparable](exec *Serializer, initial T) *Observable[T] {
	return &Observable[T]{value: initial, exec: exec}
}

// Get returns the current value.
func (o *Observable[T]) Get() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Subscribe registers fn for future notifications. The current value is not
// replayed; call Get for the initial render.
func (o *Observable[T]) Subscribe(fn func(T)) func() {
	o.mu.Lock()
	o.nextID++
	id := o.nextID
	o.subs = append(o.subs, subscriber[T]{id: id, fn: fn})
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { o.unsubscribe(id) })
	}
}

func (o *Observable[T]) unsubscribe(id uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i, sub := range o.subs {
		if sub.id == id {
			o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
			return
		}
	}
}

// Subscribers returns the number of registered subscribers.
func (o *Observable[T]) Subscribers() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.subs)
}

// Set stores v and notifies subscribers if it differs from the current value.
func (o *Observable[T]) Set(v T) {
	o.mu.Lock()
	if o.value == v {
		o.mu.Unlock()
		return
	}
	o.value = v
	o.exec.Enqueue(o.notify(v))
	o.mu.Unlock()
	if o.owned {
		o.exec.Drain()
	}
}

// Emit stores v and notifies subscribers even if the value is unchanged.
// Used for values that are events as much as state, such as a repeated cue.
func (o *Observable[T]) Emit(v T) {
	o.mu.Lock()
	o.value = v
	o.exec.Enqueue(o.notify(v))
	o.mu.Unlock()
	if o.owned {
		o.exec.Drain()
	}
}

// notify builds the delivery for v. Subscribers are read at delivery time so
// an unsubscribe that lands before delivery is honoured.
func (o *Observable[T]) notify(v T) func() {
	return func() {
		o.mu.Lock()
		subs := make([]subscriber[T], len(o.subs))
		copy(subs, o.subs)
		o.mu.Unlock()
		for _, sub := range subs {
			sub.fn(v)
		}
	}
}
