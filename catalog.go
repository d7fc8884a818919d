package registry

// bucket holds the ids carrying one catalog value. A bucket starts out
// holding a single id and upgrades to a list on the first collision;
// removal collapses it back to single form when exactly one id remains.
// Ids keep insertion order throughout.
type bucket struct {
	one  string
	many []string
}

func (b *bucket) add(ticketID string) {
	if b.many == nil {
		b.many = []string{b.one, ticketID}
		b.one = ""
		return
	}
	b.many = append(b.many, ticketID)
}

// remove drops an id and reports whether the bucket is now empty. Unknown
// ids are ignored.
func (b *bucket) remove(ticketID string) bool {
	if b.many == nil {
		return b.one == ticketID
	}
	for i, existing := range b.many {
		if existing == ticketID {
			b.many = append(b.many[:i], b.many[i+1:]...)
			break
		}
	}
	if len(b.many) == 1 {
		b.one = b.many[0]
		b.many = nil
	}
	return false
}

// ids returns a copy of the bucket contents in insertion order.
func (b *bucket) ids() []string {
	if b.many == nil {
		return []string{b.one}
	}
	out := make([]string, len(b.many))
	copy(out, b.many)
	return out
}

// single returns the sole id when the bucket holds exactly one.
func (b *bucket) single() (string, bool) {
	if b.many == nil {
		return b.one, true
	}
	return "", false
}

// assign adds an id to the catalog bucket for value, creating the bucket
// when needed.
func (r *Registry[V]) assign(value V, ticketID string) {
	if b, ok := r.catalog[value]; ok {
		b.add(ticketID)
		return
	}
	r.catalog[value] = &bucket{one: ticketID}
}

// unassign removes an id from its bucket, deleting the bucket once empty.
func (r *Registry[V]) unassign(value V, ticketID string) {
	b, ok := r.catalog[value]
	if !ok {
		return
	}
	if b.remove(ticketID) {
		delete(r.catalog, value)
	}
}
