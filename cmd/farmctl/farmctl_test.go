package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virgo-SSS/Ternakku/internal/client/api"
	"github.com/Virgo-SSS/Ternakku/internal/ports/auth"
	"github.com/Virgo-SSS/Ternakku/internal/router"
)

// tokens aceptados -> user id
type tokenVerifier map[string]string

func (v tokenVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if uid, ok := v[token]; ok {
		return auth.Claims{UserID: uid}, nil
	}
	return auth.Claims{}, errors.New("invalid token")
}

type countingRefresher struct{ calls int }

func (r *countingRefresher) Refresh(_ context.Context, rt string) (auth.TokenPair, error) {
	r.calls++
	if rt != "r-1" {
		return auth.TokenPair{}, auth.ErrInvalidRefreshToken
	}
	return auth.TokenPair{AccessToken: "t-farmer", RefreshToken: "r-2"}, nil
}

func newAPI(t *testing.T) (*httptest.Server, *countingRefresher) {
	t.Helper()
	ref := &countingRefresher{}
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: tokenVerifier{"t-farmer": "farmer-1"},
		Refresher:    ref,
	}))
	t.Cleanup(ts.Close)
	return ts, ref
}

func run(t *testing.T, baseURL, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(append([]string{"--api-url", baseURL, "--token", "t-farmer"}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func seedCow(t *testing.T, baseURL string) api.Cow {
	t.Helper()
	c, err := api.New(api.NewSession("t-farmer", ""), api.Options{BaseURL: baseURL})
	require.NoError(t, err)
	cow, _, err := c.Cows().Create(context.Background(), api.Cow{
		Name: "Sapi A", Status: "healthy", Gender: "M", BirthDate: "2023-05-01", Weight: 120, Type: "Sapi Bali",
	})
	require.NoError(t, err)
	return cow
}

func TestCowCreate_ShowsMessageAndList(t *testing.T) {
	ts, _ := newAPI(t)

	out, errOut, err := run(t, ts.URL, "", "cow", "create",
		"--name", "Sapi A", "--gender", "M", "--birth-date", "2023-05-01",
		"--weight", "120", "--type", "Sapi Bali")
	require.NoError(t, err, errOut)

	assert.Contains(t, out, "Success: cow created")
	// navega a /ternak: la lista ya incluye el alta
	assert.Contains(t, out, "Sapi A")
	assert.Contains(t, out, "Sehat")
}

func TestCowList_DateRangeFilter(t *testing.T) {
	ts, _ := newAPI(t)
	seedCow(t, ts.URL)

	out, _, err := run(t, ts.URL, "", "cow", "list", "--born-from", "2023-01-01", "--born-to", "2023-12-31")
	require.NoError(t, err)
	assert.Contains(t, out, "Sapi A")

	out, _, err = run(t, ts.URL, "", "cow", "list", "--born-from", "2024-01-01", "--born-to", "2024-12-31")
	require.NoError(t, err)
	assert.NotContains(t, out, "Sapi A")

	_, _, err = run(t, ts.URL, "", "cow", "list", "--born-from", "01/01/2024")
	assert.Error(t, err)
}

func TestCowDelete_RequiresConfirmation(t *testing.T) {
	ts, _ := newAPI(t)
	cow := seedCow(t, ts.URL)

	out, _, err := run(t, ts.URL, "n\n", "cow", "delete", cow.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Apakah anda yakin ingin menghapus data ini?")
	assert.NotContains(t, out, "berhasil dihapus")

	out, _, err = run(t, ts.URL, "y\n", "cow", "delete", cow.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Data sapi berhasil dihapus")

	_, errOut, err := run(t, ts.URL, "", "--yes", "cow", "delete", cow.ID)
	var se *shownError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, errOut, "Error: cow not found")
}

func TestWorkerCreate_ValidationErrorIsShown(t *testing.T) {
	ts, _ := newAPI(t)

	out, errOut, err := run(t, ts.URL, "", "worker", "create", "--name", "Budi", "--gender", "M", "--phone", "08123")
	var se *shownError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, errOut, "Error: email is required")
	assert.NotContains(t, out, "Success")
}

func TestExpiredTokenRefreshesOnce(t *testing.T) {
	ts, ref := newAPI(t)

	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(""), &out, &errOut)
	cmd.SetArgs([]string{"--api-url", ts.URL, "--token", "expired", "--refresh-token", "r-1", "worker", "list"})
	require.NoError(t, cmd.Execute(), errOut.String())

	assert.Contains(t, out.String(), "EMAIL")
	assert.Equal(t, 1, ref.calls)
}

func TestExpiredSessionStopsAfterRefresh(t *testing.T) {
	ts, ref := newAPI(t)

	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(""), &out, &errOut)
	cmd.SetArgs([]string{"--api-url", ts.URL, "--token", "expired", "--refresh-token", "revoked", "cow", "list"})
	err := cmd.Execute()

	require.Error(t, err)
	assert.True(t, api.IsAuth(err))
	assert.Contains(t, errOut.String(), "Error: unauthorized")
	assert.Equal(t, 1, ref.calls)
}

func TestPatchFrom_OnlyChangedFlags(t *testing.T) {
	cmd := newRootCmd(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	upd, _, err := cmd.Find([]string{"cow", "update"})
	require.NoError(t, err)
	require.NoError(t, upd.ParseFlags([]string{"--status", "sick", "--weight", "130.5"}))

	patch, err := patchFrom(upd, cowPatchKeys)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"status": "sick", "weight": 130.5}, patch)
}
