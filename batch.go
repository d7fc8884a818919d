package registry

// Batch runs fn with cache invalidation suppressed and event emission
// queued. However many mutations fn performs, the derived-view cache is
// cleared exactly once afterwards and the queued notifications fire in
// their original emission order. Nested Batch calls run their function
// inline without opening a second scope. The batch completes even when fn
// panics.
func (r *Registry[V]) Batch(fn func()) {
	if r.batching {
		fn()
		return
	}
	r.batching = true
	defer func() {
		r.batching = false
		r.views.invalidate()
		queued := r.queue
		r.queue = nil
		for _, n := range queued {
			r.dispatch(n)
		}
	}()
	fn()
}

// Onboard registers a batch of seeds and returns the resulting records in
// input order. Duplicate ids follow the Register contract: the existing
// record is returned and no event fires for it.
func (r *Registry[V]) Onboard(seeds []Seed[V]) []Record[V] {
	out := make([]Record[V], 0, len(seeds))
	r.Batch(func() {
		for _, seed := range seeds {
			out = append(out, r.Register(seed))
		}
	})
	return out
}

// Offboard removes several tickets in one pass. The reindex cost is always
// deferred, the cache is invalidated once, and the unregistered events fire
// after every removal's bookkeeping is complete. Absent ids are skipped.
func (r *Registry[V]) Offboard(ids ...string) {
	removedRecs := make([]*Record[V], 0, len(ids))
	for _, ticketID := range ids {
		if rec, removed, _ := r.remove(ticketID, false); removed {
			removedRecs = append(removedRecs, rec)
		}
	}
	if len(removedRecs) == 0 {
		return
	}
	r.invalidate()
	if r.metrics != nil {
		r.metrics.Unregistered.Add(float64(len(removedRecs)))
		r.metrics.TicketsLive.Set(float64(len(r.byID)))
	}
	for _, rec := range removedRecs {
		r.notifyRecord(EventUnregistered, rec)
	}
}
