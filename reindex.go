package registry

// The reindexer restores position contiguity and catalog correctness after
// removals. Instead of renumbering every surviving record on each removal,
// removals record the minimum dirty arena slot (the watermark) and the
// O(n) pass runs once, on demand, from that slot onward. Slots below the
// watermark are untouched: their positions and catalog entries are already
// correct.

// Reindex eagerly renumbers positions, recomputes position-derived values
// and rebuilds the position index and catalog entries from the dirty
// watermark onward. A no-op when nothing is pending.
func (r *Registry[V]) Reindex() {
	if !r.dirty {
		return
	}
	r.reindexNow()
	r.notify(Notification[V]{Type: EventReindexed})
}

// ensureIndexed runs the pending reindex pass, if any, before a read that
// depends on exact contiguous positions.
func (r *Registry[V]) ensureIndexed() {
	if !r.dirty {
		return
	}
	r.reindexNow()
	r.notify(Notification[V]{Type: EventReindexed})
}

// reindexNow performs the pass without emitting; callers emit EventReindexed
// once their own bookkeeping is complete.
func (r *Registry[V]) reindexNow() {
	w := r.watermark
	if w > len(r.arena) {
		// Tail removals popped the tombstoned slots themselves.
		w = len(r.arena)
	}

	// Every live position at or beyond the watermark is about to be
	// rewritten; stale index entries past the new tail must not survive.
	for pos := range r.byPos {
		if pos >= w {
			delete(r.byPos, pos)
		}
	}

	next := w
	for h := w; h < len(r.arena); h++ {
		rec := r.arena[h]
		if rec == nil {
			continue
		}
		if h != next {
			r.arena[next] = rec
		}
		if rec.Position != next {
			if rec.ValueIsPosition {
				r.unassign(rec.Value, rec.ID)
				rec.Value = r.posValue(next)
				r.assign(rec.Value, rec.ID)
			}
			rec.Position = next
		}
		r.byPos[next] = rec.ID
		r.byID[rec.ID] = next
		next++
	}
	r.arena = r.arena[:next]

	r.dirty = false
	r.watermark = -1
	r.invalidate()
	if r.metrics != nil {
		r.metrics.ReindexPasses.Inc()
	}
}
