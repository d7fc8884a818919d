package registry

// viewCache memoizes the three derived views. Each slot is either absent
// (rebuild on next read) or a valid snapshot returned as-is, same slice
// instance, until the next invalidating mutation. Callers must treat the
// returned slices as read-only.
type viewCache[V comparable] struct {
	ids     []string
	records []Record[V]
	entries []Entry[V]

	idsOK     bool
	recordsOK bool
	entriesOK bool
}

func (c *viewCache[V]) invalidate() {
	*c = viewCache[V]{}
}

// Keys returns every ticket id in store order. Memoized until the next
// structural mutation.
func (r *Registry[V]) Keys() []string {
	if !r.views.idsOK {
		ids := make([]string, 0, len(r.byID))
		for _, rec := range r.arena {
			if rec != nil {
				ids = append(ids, rec.ID)
			}
		}
		r.views.ids = ids
		r.views.idsOK = true
	}
	return r.views.ids
}

// Values returns a snapshot of every record in store order. Memoized until
// the next structural mutation.
func (r *Registry[V]) Values() []Record[V] {
	if !r.views.recordsOK {
		records := make([]Record[V], 0, len(r.byID))
		for _, rec := range r.arena {
			if rec != nil {
				records = append(records, *rec)
			}
		}
		r.views.records = records
		r.views.recordsOK = true
	}
	return r.views.records
}

// Entries returns id/record pairs in store order. Memoized until the next
// structural mutation.
func (r *Registry[V]) Entries() []Entry[V] {
	if !r.views.entriesOK {
		entries := make([]Entry[V], 0, len(r.byID))
		for _, rec := range r.arena {
			if rec != nil {
				entries = append(entries, Entry[V]{ID: rec.ID, Record: *rec})
			}
		}
		r.views.entries = entries
		r.views.entriesOK = true
	}
	return r.views.entries
}
