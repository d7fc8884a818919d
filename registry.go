package registry

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/loomkit/registry/internal/id"
)

// Options configures a registry instance. The zero value is valid: events
// disabled, no-op logging, no metrics, ULID id generation and the built-in
// position-to-value conversion.
type Options[V comparable] struct {
	// Events enables the notification channel. Disabled by default so
	// instances that never subscribe pay no listener storage.
	Events bool

	// Logger receives diagnostic warnings (duplicate registrations,
	// listener calls on an events-disabled instance). Defaults to a no-op
	// logger.
	Logger *zap.Logger

	// Metrics, when set, is updated on every structural mutation.
	Metrics *Metrics

	// GenerateID supplies ids for seeds that omit one. Defaults to
	// prefixed ULIDs.
	GenerateID func() string

	// PositionValue derives a ticket's value from its position when the
	// seed or patch omits an explicit value. The default handles integer
	// kinds, floats and string; any other value type defaults to its zero
	// value.
	PositionValue func(position int) V
}

// Registry is an ordered collection of uniquely identified tickets with
// O(1) id and position lookup, reverse lookup by value, memoized derived
// views and an opt-in event channel.
//
// A Registry is not safe for concurrent use.
type Registry[V comparable] struct {
	// arena holds records in insertion order; removal leaves a nil slot
	// until the next reindex pass compacts it away.
	arena   []*Record[V]
	byID    map[string]int // id -> arena handle
	byPos   map[int]string // position -> id
	catalog map[V]*bucket

	views viewCache[V]

	logger   *zap.Logger
	metrics  *Metrics
	generate func() string
	posValue func(int) V

	eventsOn  bool
	listeners map[Event][]subscriber[V]
	nextSub   uint64

	dirty     bool
	watermark int // minimum dirty arena handle; meaningful only while dirty
	derived   int // live records with ValueIsPosition set

	batching bool
	queue    []Notification[V]
}

// New creates an empty registry. At most one Options value is honored;
// New() without arguments uses the defaults.
func New[V comparable](opts ...Options[V]) *Registry[V] {
	var o Options[V]
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.GenerateID == nil {
		o.GenerateID = id.Default().TicketID
	}
	if o.PositionValue == nil {
		o.PositionValue = positionDefault[V]
	}

	r := &Registry[V]{
		byID:      make(map[string]int),
		byPos:     make(map[int]string),
		catalog:   make(map[V]*bucket),
		logger:    o.Logger,
		metrics:   o.Metrics,
		generate:  o.GenerateID,
		posValue:  o.PositionValue,
		eventsOn:  o.Events,
		watermark: -1,
	}
	if o.Events {
		r.listeners = make(map[Event][]subscriber[V])
	}
	return r
}

// positionDefault converts a position into a value of type V for the
// common value kinds. Unknown kinds get the zero value.
func positionDefault[V comparable](pos int) V {
	var v V
	switch p := any(&v).(type) {
	case *int:
		*p = pos
	case *int32:
		*p = int32(pos)
	case *int64:
		*p = int64(pos)
	case *uint:
		*p = uint(pos)
	case *uint32:
		*p = uint32(pos)
	case *uint64:
		*p = uint64(pos)
	case *float32:
		*p = float32(pos)
	case *float64:
		*p = float64(pos)
	case *string:
		*p = strconv.Itoa(pos)
	}
	return v
}

// Size returns the live ticket count, regardless of pending reindex state.
func (r *Registry[V]) Size() int {
	return len(r.byID)
}

// Has reports whether a ticket with the given id exists.
func (r *Registry[V]) Has(ticketID string) bool {
	_, ok := r.byID[ticketID]
	return ok
}

// Get returns a snapshot of the ticket with the given id.
func (r *Registry[V]) Get(ticketID string) (Record[V], bool) {
	h, ok := r.byID[ticketID]
	if !ok {
		return Record[V]{}, false
	}
	return *r.arena[h], true
}

// Lookup resolves an ordinal position to a ticket id, reindexing first if
// removals left the position index stale.
func (r *Registry[V]) Lookup(position int) (string, bool) {
	r.ensureIndexed()
	ticketID, ok := r.byPos[position]
	return ticketID, ok
}

// Browse returns the ids of every ticket carrying the given value, in
// insertion order, or nil when none do. When position-derived values are
// pending renumbering a reindex runs first so the catalog is accurate.
func (r *Registry[V]) Browse(value V) []string {
	if r.dirty && r.derived > 0 {
		r.ensureIndexed()
	}
	b, ok := r.catalog[value]
	if !ok {
		return nil
	}
	return b.ids()
}

// BrowseOne resolves a value carried by exactly one ticket. It reports
// false when the value is absent or shared.
func (r *Registry[V]) BrowseOne(value V) (string, bool) {
	if r.dirty && r.derived > 0 {
		r.ensureIndexed()
	}
	b, ok := r.catalog[value]
	if !ok {
		return "", false
	}
	return b.single()
}

// Register adds a ticket and returns its snapshot. Registering an id that
// already exists is rejected non-fatally: a warning is logged and the
// existing record is returned unchanged.
func (r *Registry[V]) Register(seed Seed[V]) Record[V] {
	if seed.ID != "" {
		if h, ok := r.byID[seed.ID]; ok {
			r.logger.Warn("registry: duplicate ticket id rejected",
				zap.String("id", seed.ID))
			return *r.arena[h]
		}
	}

	ticketID := seed.ID
	if ticketID == "" {
		ticketID = r.generate()
	}

	pos := len(r.byID)
	if seed.Position != nil {
		pos = *seed.Position
	}

	rec := &Record[V]{ID: ticketID, Position: pos}
	if seed.Value != nil {
		rec.Value = *seed.Value
	} else {
		rec.Value = r.posValue(pos)
		rec.ValueIsPosition = true
		r.derived++
	}

	r.arena = append(r.arena, rec)
	r.byID[ticketID] = len(r.arena) - 1
	r.byPos[pos] = ticketID
	r.assign(rec.Value, ticketID)
	r.invalidate()

	if r.metrics != nil {
		r.metrics.Registered.Inc()
		r.metrics.TicketsLive.Set(float64(len(r.byID)))
	}
	r.notifyRecord(EventRegistered, rec)
	return *rec
}

// Upsert creates the ticket when absent (exactly like Register) or patches
// the existing one. ID and position are immutable through this call; see
// Patch for the value semantics.
func (r *Registry[V]) Upsert(ticketID string, patch Patch[V]) Record[V] {
	h, ok := r.byID[ticketID]
	if !ok {
		seed := Seed[V]{ID: ticketID}
		if !patch.Reset {
			seed.Value = patch.Value
		}
		return r.Register(seed)
	}

	rec := r.arena[h]
	switch {
	case patch.Reset:
		if !rec.ValueIsPosition {
			next := r.posValue(rec.Position)
			if next != rec.Value {
				r.unassign(rec.Value, ticketID)
				rec.Value = next
				r.assign(rec.Value, ticketID)
			}
			rec.ValueIsPosition = true
			r.derived++
		}
	case patch.Value != nil:
		if rec.ValueIsPosition {
			rec.ValueIsPosition = false
			r.derived--
		}
		if *patch.Value != rec.Value {
			r.unassign(rec.Value, ticketID)
			rec.Value = *patch.Value
			r.assign(rec.Value, ticketID)
		}
	}

	r.invalidate()
	if r.metrics != nil {
		r.metrics.Updated.Inc()
	}
	r.notifyRecord(EventUpdated, rec)
	return *rec
}

// Unregister removes a ticket. Absent ids are a silent no-op. Removal
// marks the position index dirty at the removed slot; when position-derived
// records remain past the removal point the reindex runs immediately so
// their values never go observably stale, otherwise it is deferred until a
// position-dependent read.
func (r *Registry[V]) Unregister(ticketID string) {
	rec, removed, cascaded := r.remove(ticketID, true)
	if !removed {
		return
	}
	r.invalidate()
	if r.metrics != nil {
		r.metrics.Unregistered.Inc()
		r.metrics.TicketsLive.Set(float64(len(r.byID)))
	}
	r.notifyRecord(EventUnregistered, rec)
	if cascaded {
		r.notify(Notification[V]{Type: EventReindexed})
	}
}

// remove deletes a ticket from all three indices. When eager is true and
// position-derived records remain beyond the removal point, the reindex
// pass runs before returning (cascaded reports that). Event emission and
// cache invalidation are left to the caller.
func (r *Registry[V]) remove(ticketID string, eager bool) (rec *Record[V], removed, cascaded bool) {
	h, ok := r.byID[ticketID]
	if !ok {
		return nil, false, false
	}
	rec = r.arena[h]

	delete(r.byID, ticketID)
	delete(r.byPos, rec.Position)
	r.unassign(rec.Value, ticketID)
	if rec.ValueIsPosition {
		r.derived--
	}

	if h == len(r.arena)-1 {
		// Tail removal keeps the prefix contiguous; just drop the slot
		// along with any tombstones now trailing.
		r.arena = r.arena[:h]
		for n := len(r.arena); n > 0 && r.arena[n-1] == nil; n = len(r.arena) {
			r.arena = r.arena[:n-1]
		}
	} else {
		r.arena[h] = nil
		if !r.dirty || h < r.watermark {
			r.watermark = h
		}
		r.dirty = true
	}

	if eager && !r.batching && r.dirty && r.derived > 0 {
		r.reindexNow()
		cascaded = true
	}
	return rec, true, cascaded
}

// Clear empties the registry in one step and resets reindexer state. Safe
// to call on an already-empty instance.
func (r *Registry[V]) Clear() {
	r.arena = nil
	r.byID = make(map[string]int)
	r.byPos = make(map[int]string)
	r.catalog = make(map[V]*bucket)
	r.views.invalidate()
	r.dirty = false
	r.watermark = -1
	r.derived = 0
	if r.metrics != nil {
		r.metrics.TicketsLive.Set(0)
	}
	r.notify(Notification[V]{Type: EventCleared})
}

// Dispose clears the registry and drops every event listener. Intended for
// teardown; the instance remains usable afterwards.
func (r *Registry[V]) Dispose() {
	r.Clear()
	if r.eventsOn {
		r.listeners = make(map[Event][]subscriber[V])
	}
	r.queue = nil
}

// Stats returns a counts snapshot.
func (r *Registry[V]) Stats() Stats {
	var subs int
	for _, s := range r.listeners {
		subs += len(s)
	}
	return Stats{
		Size:            len(r.byID),
		PositionDerived: r.derived,
		PendingReindex:  r.dirty,
		Listeners:       subs,
	}
}

// invalidate clears the derived-view cache unless a batch is open, in
// which case the batch end performs the single invalidation.
func (r *Registry[V]) invalidate() {
	if r.batching {
		return
	}
	r.views.invalidate()
}
