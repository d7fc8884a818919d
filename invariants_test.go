package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Random operation sequences must keep the store, the position index and
// the value catalog in agreement.
func TestRegistryInvariants(t *testing.T) {
	idPool := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	rapid.Check(t, func(rt *rapid.T) {
		reg := New[int]()

		steps := rapid.IntRange(1, 80).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			ticketID := rapid.SampledFrom(idPool).Draw(rt, "id")
			switch rapid.IntRange(0, 6).Draw(rt, "op") {
			case 0:
				reg.Register(Seed[int]{ID: ticketID})
			case 1:
				v := rapid.IntRange(0, 5).Draw(rt, "value")
				reg.Register(Seed[int]{ID: ticketID, Value: &v})
			case 2:
				reg.Unregister(ticketID)
			case 3:
				v := rapid.IntRange(0, 5).Draw(rt, "patch")
				reg.Upsert(ticketID, Patch[int]{Value: &v})
			case 4:
				reg.Upsert(ticketID, Patch[int]{Reset: true})
			case 5:
				reg.Reindex()
			case 6:
				reg.Offboard(ticketID, rapid.SampledFrom(idPool).Draw(rt, "second"))
			}

			// Reachable states, never mid-batch: counts agree.
			require.Equal(rt, reg.Size(), len(reg.Keys()))
			require.Equal(rt, reg.Size(), len(reg.Values()))
			require.Equal(rt, reg.Size(), len(reg.Entries()))
		}

		reg.Reindex()

		seen := make(map[int]bool)
		for _, rec := range reg.Values() {
			// Positions form 0..size-1 with no duplicates.
			require.GreaterOrEqual(rt, rec.Position, 0)
			require.Less(rt, rec.Position, reg.Size())
			require.False(rt, seen[rec.Position], "duplicate position %d", rec.Position)
			seen[rec.Position] = true

			// Index and catalog agree with the store.
			id, ok := reg.Lookup(rec.Position)
			require.True(rt, ok)
			require.Equal(rt, rec.ID, id)
			require.Contains(rt, reg.Browse(rec.Value), rec.ID)

			if rec.ValueIsPosition {
				require.Equal(rt, rec.Position, rec.Value)
			}
		}
	})
}

// Batched sequences flush every queued event exactly once, in call order.
func TestBatchEventDeliveryProperty(t *testing.T) {
	idPool := []string{"a", "b", "c", "d", "e"}

	rapid.Check(t, func(rt *rapid.T) {
		reg := New(Options[int]{Events: true})
		var want, got []string
		reg.On(EventRegistered, func(n Notification[int]) {
			got = append(got, "reg:"+n.Record.ID)
		})
		reg.On(EventUnregistered, func(n Notification[int]) {
			got = append(got, "unreg:"+n.Record.ID)
		})

		steps := rapid.IntRange(1, 30).Draw(rt, "steps")
		reg.Batch(func() {
			for i := 0; i < steps; i++ {
				ticketID := rapid.SampledFrom(idPool).Draw(rt, "id")
				if rapid.Bool().Draw(rt, "add") {
					if !reg.Has(ticketID) {
						want = append(want, "reg:"+ticketID)
					}
					reg.Register(Seed[int]{ID: ticketID})
				} else {
					if reg.Has(ticketID) {
						want = append(want, "unreg:"+ticketID)
					}
					reg.Unregister(ticketID)
				}
			}
			require.Empty(rt, got, "nothing fires while the batch is open")
		})

		require.Equal(rt, want, got)
	})
}
