package registry

// Direction selects which end of the ordered view a seek starts from.
type Direction int

const (
	// Forward walks positions 0..size-1.
	Forward Direction = iota
	// Backward walks positions size-1..0.
	Backward
)

// Seek scans the ordered view from its natural start for the direction
// until predicate matches. A nil predicate matches immediately, so
// Seek(Forward, nil) and Seek(Backward, nil) are O(1) first/last. Runs a
// pending reindex first; reports false on an empty registry or no match.
func (r *Registry[V]) Seek(dir Direction, predicate func(Record[V]) bool) (Record[V], bool) {
	return r.seek(dir, -1, predicate)
}

// SeekFrom scans like Seek but starts at the given position, clamped into
// [0, size-1].
func (r *Registry[V]) SeekFrom(dir Direction, from int, predicate func(Record[V]) bool) (Record[V], bool) {
	if from < 0 {
		from = 0
	}
	return r.seek(dir, from, predicate)
}

func (r *Registry[V]) seek(dir Direction, from int, predicate func(Record[V]) bool) (Record[V], bool) {
	r.ensureIndexed()
	n := len(r.arena)
	if n == 0 {
		return Record[V]{}, false
	}

	// After ensureIndexed the arena is compact, so slot == position.
	pos := from
	if pos < 0 {
		if dir == Backward {
			pos = n - 1
		} else {
			pos = 0
		}
	} else if pos > n-1 {
		pos = n - 1
	}

	step := 1
	if dir == Backward {
		step = -1
	}
	for ; pos >= 0 && pos < n; pos += step {
		rec := *r.arena[pos]
		if predicate == nil || predicate(rec) {
			return rec, true
		}
	}
	return Record[V]{}, false
}
