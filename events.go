package registry

import "go.uber.org/zap"

// Event names a notification kind. The structural kinds below are emitted
// by the registry itself; any other name may be published through Emit.
type Event string

const (
	EventRegistered   Event = "registered"
	EventUnregistered Event = "unregistered"
	EventUpdated      Event = "updated"
	EventCleared      Event = "cleared"
	EventReindexed    Event = "reindexed"
)

// Notification carries one event to listeners. Record is a snapshot of the
// affected ticket for registered/unregistered/updated and nil otherwise;
// Data carries the payload of custom Emit calls.
type Notification[V comparable] struct {
	Type   Event
	Record *Record[V]
	Data   any
}

// Handler receives notifications. Handlers run synchronously on the
// mutating caller's stack, in subscription order, strictly after the
// triggering operation's bookkeeping has completed. The channel does not
// recover panics: a panicking handler unwinds through the operation that
// emitted the event.
type Handler[V comparable] func(Notification[V])

// Subscription identifies a registered handler. The zero value is inert.
type Subscription struct {
	event Event
	id    uint64
}

type subscriber[V comparable] struct {
	id uint64
	fn Handler[V]
}

// On subscribes a handler to an event. On an events-disabled instance this
// is a no-op and logs a warning so the misconfiguration is noticed.
func (r *Registry[V]) On(event Event, fn Handler[V]) Subscription {
	if !r.eventsOn {
		r.logger.Warn("registry: event channel disabled, listener ignored",
			zap.String("event", string(event)))
		return Subscription{}
	}
	if fn == nil {
		return Subscription{}
	}
	r.nextSub++
	sub := Subscription{event: event, id: r.nextSub}
	r.listeners[event] = append(r.listeners[event], subscriber[V]{id: sub.id, fn: fn})
	return sub
}

// Off removes a previously registered handler. Unknown or zero
// subscriptions are a silent no-op; on an events-disabled instance a
// warning is logged.
func (r *Registry[V]) Off(sub Subscription) {
	if !r.eventsOn {
		r.logger.Warn("registry: event channel disabled, unsubscribe ignored",
			zap.String("event", string(sub.event)))
		return
	}
	if sub.id == 0 {
		return
	}
	subs := r.listeners[sub.event]
	for i, s := range subs {
		if s.id == sub.id {
			// Copy-on-write so an in-flight dispatch keeps iterating its
			// own snapshot.
			next := make([]subscriber[V], 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			if len(next) == 0 {
				delete(r.listeners, sub.event)
			} else {
				r.listeners[sub.event] = next
			}
			return
		}
	}
}

// Emit publishes a custom event through the channel. While a batch is open
// the notification is queued and flushed, in order, after the batch
// completes. Without the event channel enabled this does nothing.
func (r *Registry[V]) Emit(event Event, data any) {
	r.notify(Notification[V]{Type: event, Data: data})
}

// notify queues the notification while a batch is open and dispatches it
// immediately otherwise.
func (r *Registry[V]) notify(n Notification[V]) {
	if !r.eventsOn {
		return
	}
	if r.batching {
		r.queue = append(r.queue, n)
		return
	}
	r.dispatch(n)
}

func (r *Registry[V]) notifyRecord(event Event, rec *Record[V]) {
	if !r.eventsOn {
		return
	}
	snapshot := *rec
	r.notify(Notification[V]{Type: event, Record: &snapshot})
}

func (r *Registry[V]) dispatch(n Notification[V]) {
	for _, s := range r.listeners[n.Type] {
		s.fn(n)
	}
}
