package registry

// Record is the unit of storage: a registered ticket. Identity is the ID;
// Position is registry-owned after registration and only changes through
// reindexing. ValueIsPosition is true exactly when the value was not
// supplied by the caller, in which case Value tracks the position.
//
// Accessors hand out copies. Mutating a copy has no effect on the registry;
// changes go through Upsert.
type Record[V comparable] struct {
	ID              string
	Position        int
	Value           V
	ValueIsPosition bool
}

// Entry pairs a ticket id with its record, mirroring Entries output.
type Entry[V comparable] struct {
	ID     string
	Record Record[V]
}

// Seed describes a ticket to register. Every field is optional: an empty
// ID asks the registry to generate one, a nil Position appends at the
// current size, and a nil Value derives the value from the position and
// marks the record position-derived.
type Seed[V comparable] struct {
	ID       string
	Position *int
	Value    *V
}

// Patch describes an upsert against an existing ticket. Value semantics
// are tri-state: nil leaves the value untouched, a non-nil pointer sets it
// (clearing the position-derived flag), and Reset reverts the value to the
// position-derived default. Reset wins when both are set.
type Patch[V comparable] struct {
	Value *V
	Reset bool
}

// Stats is a point-in-time counts snapshot.
type Stats struct {
	Size            int  `json:"size"`
	PositionDerived int  `json:"position_derived"`
	PendingReindex  bool `json:"pending_reindex"`
	Listeners       int  `json:"listeners"`
}
