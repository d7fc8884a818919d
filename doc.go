// Package registry provides a generic indexed collection of uniquely
// identified records ("tickets").
//
// A Registry keeps three views of its tickets consistent at all times:
//   - Primary store: id -> record, the source of truth
//   - Position index: ordinal position -> id, for "the Nth ticket" queries
//   - Value catalog: value -> id(s), for reverse lookup and duplicate
//     detection
//
// On top of those it layers memoized snapshots of the derived views
// (Keys, Values, Entries), an opt-in synchronous event channel, batch
// coordination that coalesces cache invalidation and event delivery, and
// a lazy reindexer that restores position contiguity after removals
// without paying O(n) per removal.
//
// Components:
//   - Registry: the façade composing store, indices, cache and events
//   - Record: a ticket snapshot (id, position, value, value-is-position)
//   - Seed / Patch: registration and upsert inputs
//   - Metrics: optional Prometheus instrumentation
//
// Features:
//   - O(1) id lookup, position lookup and size
//   - Insertion-ordered reverse lookup by value
//   - Dirty-watermark reindexing: bulk removal costs one deferred pass
//   - Batched mutation with a single cache rebuild and ordered event flush
//
// Example Usage:
//
//	reg := registry.New(registry.Options[string]{Events: true})
//	reg.On(registry.EventRegistered, func(n registry.Notification[string]) {
//		fmt.Println("registered", n.Record.ID)
//	})
//	t := reg.Register(registry.Seed[string]{ID: "primary"})
//	id, ok := reg.Lookup(t.Position)
//
// A Registry has no internal locking. Every operation runs synchronously to
// completion; callers in concurrent programs must wrap instances in their
// own mutex or single-writer loop.
package registry
