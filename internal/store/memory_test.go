// AngelaMos | 2026
// memory_test.go

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, m.Set(ctx, "k", []byte(`[1,2,3]`)))

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2,3]`), got)

	require.NoError(t, m.Delete(ctx, "k"))

	_, err = m.Get(ctx, "k")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "k", []byte("abc")))

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	got[0] = 'x'

	again, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestCollectionAbsentKeyReadsEmpty(t *testing.T) {
	ctx := context.Background()
	col := NewCollection[int](NewMemory(), "numbers")

	items, err := col.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestCollectionRoundTrip(t *testing.T) {
	type entry struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	ctx := context.Background()
	col := NewCollection[entry](NewMemory(), "entries")

	want := []entry{{ID: "1", Name: "one"}, {ID: "2", Name: "two"}}
	require.NoError(t, col.PutAll(ctx, want))

	got, err := col.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// Two sessions that each read the collection, modify their copy, and
// write back do not merge: the second write wins wholesale. This is the
// documented concurrency model, not a bug.
func TestCollectionLastWriteWins(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	col := NewCollection[string](m, "names")

	require.NoError(t, col.PutAll(ctx, []string{"base"}))

	sessionA, err := col.GetAll(ctx)
	require.NoError(t, err)
	sessionB, err := col.GetAll(ctx)
	require.NoError(t, err)

	sessionA = append(sessionA, "from-a")
	sessionB = append(sessionB, "from-b")

	require.NoError(t, col.PutAll(ctx, sessionA))
	require.NoError(t, col.PutAll(ctx, sessionB))

	got, err := col.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "from-b"}, got)
	assert.NotContains(t, got, "from-a")
}

func TestCollectionDecodeFailure(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "broken", []byte("not json")))

	_, err := NewCollection[int](m, "broken").GetAll(ctx)
	require.Error(t, err)
}
