package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCollapseOnRemoval(t *testing.T) {
	reg := New[string]()
	reg.Register(Seed[string]{ID: "b", Value: sptr("x")})
	reg.Register(Seed[string]{ID: "c", Value: sptr("x")})

	reg.Unregister("b")

	// The surviving id is back in single form, not a one-element list.
	assert.Equal(t, []string{"c"}, reg.Browse("x"))
	id, ok := reg.BrowseOne("x")
	require.True(t, ok)
	assert.Equal(t, "c", id)

	reg.Unregister("c")
	assert.Nil(t, reg.Browse("x"), "empty buckets are deleted outright")
}

func TestBucketUpgradeAndCollapse(t *testing.T) {
	b := &bucket{one: "a"}

	_, single := b.single()
	assert.True(t, single)

	b.add("b")
	b.add("c")
	_, single = b.single()
	assert.False(t, single)
	assert.Equal(t, []string{"a", "b", "c"}, b.ids())

	assert.False(t, b.remove("b"))
	assert.Equal(t, []string{"a", "c"}, b.ids())

	assert.False(t, b.remove("c"))
	id, single := b.single()
	assert.True(t, single, "one survivor collapses back to single form")
	assert.Equal(t, "a", id)

	assert.False(t, b.remove("unknown"))
	assert.True(t, b.remove("a"), "removing the last id empties the bucket")
}

func TestBrowseInsertionOrder(t *testing.T) {
	reg := New[string]()
	for _, id := range []string{"w", "x", "y", "z"} {
		reg.Register(Seed[string]{ID: id, Value: sptr("shared")})
	}

	assert.Equal(t, []string{"w", "x", "y", "z"}, reg.Browse("shared"))

	reg.Unregister("x")
	assert.Equal(t, []string{"w", "y", "z"}, reg.Browse("shared"))
}

func TestBrowseReturnsCopies(t *testing.T) {
	reg := New[string]()
	reg.Register(Seed[string]{ID: "a", Value: sptr("x")})
	reg.Register(Seed[string]{ID: "b", Value: sptr("x")})

	ids := reg.Browse("x")
	ids[0] = "tampered"

	assert.Equal(t, []string{"a", "b"}, reg.Browse("x"))
}

func TestUpsertMovesCatalogBucket(t *testing.T) {
	reg := New[string]()
	reg.Register(Seed[string]{ID: "a", Value: sptr("old")})
	reg.Register(Seed[string]{ID: "b", Value: sptr("old")})

	reg.Upsert("a", Patch[string]{Value: sptr("new")})

	assert.Equal(t, []string{"b"}, reg.Browse("old"))
	assert.Equal(t, []string{"a"}, reg.Browse("new"))
}
