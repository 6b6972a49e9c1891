package query

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virgo-SSS/Ternakku/internal/platform/apperr"
)

var cowSpec = FilterSpec{
	{Param: "name", Column: "name", Match: MatchContains},
	{Param: "status", Column: "status", Match: MatchEqual},
	{Param: "birth_date", Column: "birth_date", Match: MatchDate},
	{Param: "gender", Column: "gender", Match: MatchEqual},
}

func TestInsert_PlaceholdersFollowFieldOrder(t *testing.T) {
	var f Fields
	f.Set("name", "Sapi A")
	f.Set("weight", 120.0)
	f.Set("gender", "M")

	st, err := Insert(Postgres, "cows", f)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO cows (name, weight, gender) VALUES ($1, $2, $3)", st.SQL)
	assert.Equal(t, []any{"Sapi A", 120.0, "M"}, st.Args)

	st, err = Insert(SQLite, "cows", f)
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO cows (name, weight, gender) VALUES (?, ?, ?)", st.SQL)
	assert.Equal(t, len(f), strings.Count(st.SQL, "?"))
}

func TestInsert_PlaceholderCountMatchesFieldCount(t *testing.T) {
	for n := 1; n <= 12; n++ {
		m := map[string]any{}
		for i := 0; i < n; i++ {
			m[string(rune('a'+i))+"_col"] = i
		}
		f := FieldsFromMap(m)
		st, err := Insert(SQLite, "user_profiles", f)
		require.NoError(t, err)
		assert.Equal(t, n, strings.Count(st.SQL, "?"))
		assert.Equal(t, f.Values(), st.Args)
		for i, k := range f.Keys() {
			assert.Equal(t, m[k], st.Args[i])
		}
	}
}

func TestInsert_RejectsBadIdentifiers(t *testing.T) {
	_, err := Insert(Postgres, "cows", Fields{{Column: "name; DROP TABLE cows", Value: 1}})
	require.Error(t, err)

	_, err = Insert(Postgres, "cows", nil)
	require.ErrorIs(t, err, ErrNoFields)
}

func TestUpdate_IDIsLastArg(t *testing.T) {
	st, err := Update(Postgres, "workers", "w-1", Fields{{"name", "Komang"}, {"email", "k@x.id"}})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE workers SET name = $1, email = $2 WHERE id = $3", st.SQL)
	assert.Equal(t, []any{"Komang", "k@x.id", "w-1"}, st.Args)

	_, err = Update(Postgres, "workers", "w-1", Fields{{"id", "other"}})
	require.Error(t, err)
}

func TestBuildFilter_DateRange(t *testing.T) {
	f, err := BuildFilter(cowSpec, map[string]string{"birth_date": "2023-01-01 to 2023-01-31"})
	require.NoError(t, err)

	pred, args := f.SQL(Postgres, 1)
	assert.Equal(t, "birth_date BETWEEN $1 AND $2", pred)
	assert.Equal(t, []any{"2023-01-01", "2023-01-31"}, args)
}

func TestBuildFilter_RewrittenRangeSeparator(t *testing.T) {
	f, err := BuildFilter(cowSpec, map[string]string{"birth_date": "2023-01-01 - 2023-01-31"})
	require.NoError(t, err)
	require.Len(t, f.Conditions, 1)
	assert.True(t, f.Conditions[0].IsRange())
	assert.Equal(t, []string{"2023-01-01", "2023-01-31"}, f.Conditions[0].Values)
}

func TestBuildFilter_SingleDateIsEquality(t *testing.T) {
	f, err := BuildFilter(cowSpec, map[string]string{"birth_date": "2023-05-01"})
	require.NoError(t, err)
	pred, args := f.SQL(SQLite, 1)
	assert.Equal(t, "birth_date = ?", pred)
	assert.Equal(t, []any{"2023-05-01"}, args)
}

func TestBuildFilter_BadDate(t *testing.T) {
	_, err := BuildFilter(cowSpec, map[string]string{"birth_date": "01/05/2023"})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestBuildFilter_EmptyAndUnknownKeys(t *testing.T) {
	f, err := BuildFilter(cowSpec, map[string]string{
		"name": "", "status": "  ", "birth_date": "", "gender": "", "color": "black",
	})
	require.NoError(t, err)
	assert.True(t, f.Empty())

	pred, args := f.SQL(Postgres, 1)
	assert.Empty(t, pred)
	assert.Empty(t, args)

	st, err := Select(Postgres, "cows", []string{"id", "name"}, f, []string{"created_at"}, Page{})
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM cows ORDER BY created_at LIMIT $1 OFFSET $2", st.SQL)
	assert.Equal(t, []any{DefaultLimit, 0}, st.Args)
}

func TestBuildFilter_ArgsFollowSpecOrder(t *testing.T) {
	f, err := BuildFilter(cowSpec, map[string]string{
		"gender": "F", "name": "Sa_pi", "status": "healthy",
	})
	require.NoError(t, err)

	st, err := Select(Postgres, "cows", []string{"id"}, f, []string{"created_at DESC"}, Page{Limit: 500, Offset: 10})
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT id FROM cows WHERE LOWER(name) LIKE LOWER($1) ESCAPE '\' AND status = $2 AND gender = $3 ORDER BY created_at DESC LIMIT $4 OFFSET $5`,
		st.SQL)
	assert.Equal(t, []any{`%Sa\_pi%`, "healthy", "F", MaxLimit, 10}, st.Args)
}

func TestFilter_MatchInMemory(t *testing.T) {
	f, err := BuildFilter(cowSpec, map[string]string{
		"name":       "sapi",
		"birth_date": "2023-01-31 to 2023-01-01", // invertido: se normaliza
		"gender":     "M",
	})
	require.NoError(t, err)

	in := Record{"name": "Sapi Bali A", "gender": "M", "birth_date": "2023-01-15"}
	out := Record{"name": "Sapi Bali B", "gender": "M", "birth_date": "2023-02-01"}
	withTime := Record{"name": "SAPI C", "gender": "M", "birth_date": time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)}

	assert.True(t, f.Match(in))
	assert.False(t, f.Match(out))
	assert.True(t, f.Match(withTime))
	assert.True(t, Filter{}.Match(out))
}

func TestRecord_Conversions(t *testing.T) {
	r := Record{"w": []byte("12.5"), "d": "2023-05-01", "n": int64(3)}

	w, err := r.Float("w")
	require.NoError(t, err)
	assert.Equal(t, 12.5, w)

	n, err := r.Float("n")
	require.NoError(t, err)
	assert.Equal(t, 3.0, n)

	d, err := r.Date("d")
	require.NoError(t, err)
	assert.Equal(t, "2023-05-01", DateValue(d))
}
