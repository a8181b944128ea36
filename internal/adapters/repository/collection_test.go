package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/journalkeep/core/internal/domain/entities"
)

func TestAccessorInsertGeneratesUniqueIDs(t *testing.T) {
	records := []entities.Record{}
	acc := NewAccessor(&records)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		stored := acc.Insert(entities.Record{"title": "x"})
		id := stored.ID()
		require.NotEmpty(t, id)
		require.False(t, seen[id], "generated id %q repeated", id)
		seen[id] = true
	}

	assert.Len(t, records, 10)
}

func TestAccessorInsertKeepsExplicitID(t *testing.T) {
	records := []entities.Record{}
	acc := NewAccessor(&records)

	stored := acc.Insert(entities.Record{"id": "fixed", "title": "x"})
	assert.Equal(t, "fixed", stored.ID())
}

func TestAccessorUpdatePreservesUntouchedFields(t *testing.T) {
	records := []entities.Record{
		{"id": "g1", "title": "X", "status": "open"},
	}
	acc := NewAccessor(&records)

	merged, err := acc.UpdateByID("g1", entities.Record{"status": "done"})
	require.NoError(t, err)

	assert.Equal(t, "X", merged.StringField("title"))
	assert.Equal(t, "done", merged.StringField("status"))
	assert.Equal(t, "g1", merged.ID())
}

func TestAccessorUpdateMissingID(t *testing.T) {
	records := []entities.Record{{"id": "g1"}}
	acc := NewAccessor(&records)

	_, err := acc.UpdateByID("nope", entities.Record{"status": "done"})
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestAccessorDeleteMissingIDLeavesCollectionIntact(t *testing.T) {
	records := []entities.Record{{"id": "a"}, {"id": "b"}}
	acc := NewAccessor(&records)

	err := acc.DeleteByID("nope")
	assert.ErrorIs(t, err, entities.ErrNotFound)
	assert.Len(t, records, 2)
}

func TestAccessorDeleteByID(t *testing.T) {
	records := []entities.Record{{"id": "a"}, {"id": "b"}, {"id": "c"}}
	acc := NewAccessor(&records)

	require.NoError(t, acc.DeleteByID("b"))
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].ID())
	assert.Equal(t, "c", records[1].ID())
}

func TestAccessorListPreservesInsertionOrder(t *testing.T) {
	records := []entities.Record{}
	acc := NewAccessor(&records)
	acc.Insert(entities.Record{"id": "1", "userId": "u1"})
	acc.Insert(entities.Record{"id": "2", "userId": "u2"})
	acc.Insert(entities.Record{"id": "3", "userId": "u1"})

	all := acc.List(nil)
	require.Len(t, all, 3)
	assert.Equal(t, "1", all[0].ID())
	assert.Equal(t, "3", all[2].ID())

	mine := acc.List(ownerFilter("u1"))
	require.Len(t, mine, 2)
	assert.Equal(t, "1", mine[0].ID())
	assert.Equal(t, "3", mine[1].ID())
}
