package sqlrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virgo-SSS/Ternakku/internal/adapters/storage/sqlite"
	"github.com/Virgo-SSS/Ternakku/internal/adapters/storage/sqlrepo"
	"github.com/Virgo-SSS/Ternakku/internal/domain/cows"
	"github.com/Virgo-SSS/Ternakku/internal/domain/profiles"
	"github.com/Virgo-SSS/Ternakku/internal/platform/apperr"
	"github.com/Virgo-SSS/Ternakku/internal/platform/query"
)

func newStore(t *testing.T) *sqlrepo.Store {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))
	return sqlrepo.NewStore(db, query.SQLite)
}

func mustDate(s string) time.Time {
	d, _ := time.Parse(query.DateLayout, s)
	return d
}

func seedCows(t *testing.T, tbl *sqlrepo.Table[cows.Cow]) {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []struct {
		id, name, bd string
		status       cows.Status
	}{
		{"c1", "Bessie", "2023-01-01", cows.StatusHealthy},
		{"c2", "Daisy", "2023-01-31", cows.StatusSick},
		{"c3", "BESSIE jr", "2023-02-01", cows.StatusHealthy},
		{"c4", "100%_Bali", "2022-12-31", cows.StatusHealthy},
	}
	for i, r := range rows {
		_, err := tbl.Create(context.Background(), cows.Cow{
			ID:        r.id,
			Name:      r.name,
			Status:    r.status,
			Gender:    cows.GenderFemale,
			BirthDate: mustDate(r.bd),
			Weight:    300 + float64(i),
			Type:      "Sapi Bali",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
}

func ids(items []cows.Cow) []string {
	out := make([]string, 0, len(items))
	for _, c := range items {
		out = append(out, c.ID)
	}
	return out
}

func list(t *testing.T, tbl *sqlrepo.Table[cows.Cow], params map[string]string) []string {
	t.Helper()
	f, err := query.BuildFilter(cows.FilterSpec, params)
	require.NoError(t, err)
	items, err := tbl.List(context.Background(), f, query.PageFromParams(params))
	require.NoError(t, err)
	return ids(items)
}

func TestTable_RoundTrip(t *testing.T) {
	tbl := sqlrepo.NewTable(newStore(t), cows.Codec)
	seedCows(t, tbl)

	got, err := tbl.GetByID(context.Background(), "c2")
	require.NoError(t, err)
	assert.Equal(t, "Daisy", got.Name)
	assert.Equal(t, "2023-01-31", query.DateValue(got.BirthDate))
	assert.InDelta(t, 301, got.Weight, 0.001)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 1, 0, 0, time.UTC), got.CreatedAt)
}

func TestTable_Filters(t *testing.T) {
	tbl := sqlrepo.NewTable(newStore(t), cows.Codec)
	seedCows(t, tbl)

	assert.Equal(t, []string{"c1", "c2", "c3", "c4"}, list(t, tbl, map[string]string{}))
	assert.Equal(t, []string{"c1", "c3"}, list(t, tbl, map[string]string{"name": "bessie"}))
	assert.Equal(t, []string{"c1", "c2"}, list(t, tbl, map[string]string{"birth_date": "2023-01-01 to 2023-01-31"}))
	assert.Equal(t, []string{"c1", "c2"}, list(t, tbl, map[string]string{"birth_date": "2023-01-31 - 2023-01-01"}))
	assert.Equal(t, []string{"c2"}, list(t, tbl, map[string]string{"birth_date": "2023-01-31"}))
	assert.Equal(t, []string{"c1", "c3"}, list(t, tbl, map[string]string{"status": "healthy", "name": "ess"}))
	assert.Equal(t, []string{"c2", "c3"}, list(t, tbl, map[string]string{"limit": "2", "offset": "1"}))

	// % y _ son literales, no comodines
	assert.Equal(t, []string{"c4"}, list(t, tbl, map[string]string{"name": "0%_b"}))
	assert.Equal(t, []string{"c4"}, list(t, tbl, map[string]string{"name": "%"}))
}

func TestTable_UpdateDeleteNotFound(t *testing.T) {
	tbl := sqlrepo.NewTable(newStore(t), cows.Codec)
	seedCows(t, tbl)
	ctx := context.Background()

	var ch query.Fields
	ch.Set("status", string(cows.StatusSold))
	require.NoError(t, tbl.Update(ctx, "c1", ch))

	got, err := tbl.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, cows.StatusSold, got.Status)

	assert.True(t, apperr.IsNotFound(tbl.Update(ctx, "nope", ch)))
	require.NoError(t, tbl.Delete(ctx, "c1"))
	assert.True(t, apperr.IsNotFound(tbl.Delete(ctx, "c1")))

	_, err = tbl.GetByID(ctx, "c1")
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "cow not found", nf.Error())
}

func TestTable_DriverRejectionIsPersistenceError(t *testing.T) {
	tbl := sqlrepo.NewTable(newStore(t), cows.Codec)
	seedCows(t, tbl)

	_, err := tbl.Create(context.Background(), cows.Cow{ID: "c1", Name: "dup", Gender: cows.GenderMale, Weight: 1})
	var pe *apperr.PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "insert cows", pe.Op)
}

func TestStore_InsertWithoutIDUsesLastInsertID(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()
	_, err = db.ExecContext(ctx, `CREATE TABLE notes (id INTEGER PRIMARY KEY AUTOINCREMENT, body TEXT NOT NULL)`)
	require.NoError(t, err)

	s := sqlrepo.NewStore(db, query.SQLite)
	id, err := s.Insert(ctx, "notes", query.Fields{{Column: "body", Value: "hello"}})
	require.NoError(t, err)
	assert.Equal(t, "1", id)

	n, err := s.Delete(ctx, "notes", "1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestTable_ProfilesDynamicColumns(t *testing.T) {
	codec := profiles.NewCodec(profiles.DefaultRegistry)
	tbl := sqlrepo.NewTable(newStore(t), codec)
	ctx := context.Background()
	now := time.Date(2024, 5, 5, 5, 5, 5, 0, time.UTC)

	_, err := tbl.Create(ctx, profiles.Profile{
		ID:        "p1",
		UserID:    "u1",
		Values:    map[string]string{"farm_name": "Sapi Makmur", "birth_date": "1990-02-03"},
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)

	var ch query.Fields
	ch.Set("farm_name", nil)
	ch.Set("bio", "hi")
	require.NoError(t, tbl.Update(ctx, "p1", ch))

	got, err := tbl.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"birth_date": "1990-02-03", "bio": "hi"}, got.Values)
}
