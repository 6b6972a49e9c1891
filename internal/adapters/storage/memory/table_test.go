package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virgo-SSS/Ternakku/internal/platform/apperr"
	"github.com/Virgo-SSS/Ternakku/internal/platform/query"
)

type note struct {
	ID, Body, Day string
}

var noteCodec = query.Codec[note]{
	Table:    "notes",
	Resource: "note",
	Columns:  []string{"id", "body", "day"},
	OrderBy:  []string{"day", "id"},
	ToFields: func(n note) query.Fields {
		return query.Fields{{Column: "id", Value: n.ID}, {Column: "body", Value: n.Body}, {Column: "day", Value: n.Day}}
	},
	FromRecord: func(r query.Record) (note, error) {
		return note{ID: r.String("id"), Body: r.String("body"), Day: r.String("day")}, nil
	},
}

var noteSpec = query.FilterSpec{
	{Param: "body", Column: "body", Match: query.MatchContains},
	{Param: "day", Column: "day", Match: query.MatchDate},
}

func TestTable_ListOrdersAndFilters(t *testing.T) {
	tbl := NewTable(noteCodec)
	ctx := context.Background()

	for _, n := range []note{
		{"n1", "Pakan pagi", "2024-03-02"},
		{"n2", "vaksin", "2024-03-01"},
		{"n3", "pakan sore", "2024-03-03"},
	} {
		_, err := tbl.Create(ctx, n)
		require.NoError(t, err)
	}

	all, err := tbl.List(ctx, query.Filter{}, query.Page{})
	require.NoError(t, err)
	assert.Equal(t, "n2", all[0].ID)

	f, err := query.BuildFilter(noteSpec, map[string]string{"body": "PAKAN", "day": "2024-03-01 to 2024-03-02"})
	require.NoError(t, err)
	got, err := tbl.List(ctx, f, query.Page{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "n1", got[0].ID)

	page, err := tbl.List(ctx, query.Filter{}, query.Page{Limit: 1, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, "n3", page[0].ID)
}

func TestTable_Errors(t *testing.T) {
	tbl := NewTable(noteCodec)
	ctx := context.Background()

	_, err := tbl.Create(ctx, note{ID: "n1"})
	require.NoError(t, err)

	_, err = tbl.Create(ctx, note{ID: "n1"})
	var pe *apperr.PersistenceError
	assert.ErrorAs(t, err, &pe)

	var ch query.Fields
	ch.Set("id", "other")
	assert.ErrorAs(t, tbl.Update(ctx, "n1", ch), &pe)

	assert.True(t, apperr.IsNotFound(tbl.Delete(ctx, "zz")))
	require.NoError(t, tbl.Delete(ctx, "n1"))
	_, err = tbl.GetByID(ctx, "n1")
	assert.True(t, apperr.IsNotFound(err))
}

func TestTable_UpdateRejectedLeavesRowUntouched(t *testing.T) {
	tbl := NewTable(noteCodec)
	ctx := context.Background()

	_, err := tbl.Create(ctx, note{ID: "n1", Body: "pakan", Day: "2024-03-01"})
	require.NoError(t, err)

	var ch query.Fields
	ch.Set("body", "vaksin")
	ch.Set("id", "other")
	var pe *apperr.PersistenceError
	require.ErrorAs(t, tbl.Update(ctx, "n1", ch), &pe)

	got, err := tbl.GetByID(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "pakan", got.Body)
}
