package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virgo-SSS/Ternakku/internal/platform/httpclient"
)

// fakeAPI acepta solo el token "fresh"; /auth/refresh canjea "r-1" por "fresh".
type fakeAPI struct {
	calls     atomic.Int32 // requests a /cow
	refresh   atomic.Int32
	validTok  string
	refreshOK bool
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.URL.Path == "/auth/refresh" {
		f.refresh.Add(1)
		var in struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		if !f.refreshOK || in.RefreshToken != "r-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"session expired, please log in again"}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":{"access_token":"fresh","refresh_token":"r-2"}}`))
		return
	}

	f.calls.Add(1)
	if r.Header.Get("Authorization") != "Bearer "+f.validTok {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
		return
	}
	_, _ = w.Write([]byte(`{"data":[{"id":"c1","name":"Sapi A","status":"healthy","gender":"M","birth_date":"2023-05-01","weight":120,"type":"Sapi Bali"}]}`))
}

func newTestClient(t *testing.T, f *fakeAPI, access string) *Client {
	t.Helper()
	ts := httptest.NewServer(f)
	t.Cleanup(ts.Close)

	c, err := New(NewSession(access, "r-1"), Options{BaseURL: ts.URL})
	require.NoError(t, err)
	return c
}

func TestDo_AttachesBearer(t *testing.T) {
	f := &fakeAPI{validTok: "fresh"}
	c := newTestClient(t, f, "fresh")

	cows, err := c.Cows().List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, cows, 1)
	assert.Equal(t, "Sapi A", cows[0].Name)
	assert.Equal(t, int32(1), f.calls.Load())
	assert.Zero(t, f.refresh.Load())
}

func TestDo_RefreshOnceThenRetry(t *testing.T) {
	f := &fakeAPI{validTok: "fresh", refreshOK: true}
	c := newTestClient(t, f, "stale")

	cows, err := c.Cows().List(context.Background(), map[string]string{"name": "sapi"})
	require.NoError(t, err)
	assert.Len(t, cows, 1)

	assert.Equal(t, int32(2), f.calls.Load())
	assert.Equal(t, int32(1), f.refresh.Load())
	assert.Equal(t, "fresh", c.Session().AccessToken())
	assert.Equal(t, "r-2", c.Session().RefreshToken())
}

func TestDo_SecondUnauthorizedStops(t *testing.T) {
	// el refresh funciona pero el servidor sigue rechazando
	f := &fakeAPI{validTok: "never", refreshOK: true}
	c := newTestClient(t, f, "stale")

	_, err := c.Cows().List(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, IsAuth(err))
	assert.Equal(t, "token expired", ErrorMessage(err))

	assert.Equal(t, int32(2), f.calls.Load())
	assert.Equal(t, int32(1), f.refresh.Load())
}

func TestDo_RefreshFailureKeepsOriginalError(t *testing.T) {
	f := &fakeAPI{validTok: "fresh", refreshOK: false}
	c := newTestClient(t, f, "stale")

	_, err := c.Cows().List(context.Background(), nil)
	var ae *AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "token expired", ae.Message)

	// el 401 original sigue siendo la causa visible
	assert.Equal(t, http.StatusUnauthorized, httpclient.StatusOf(err))
	var he *httpclient.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "token expired", he.Message)

	assert.Equal(t, int32(1), f.calls.Load())
	assert.Equal(t, int32(1), f.refresh.Load())
}

func TestDo_ConcurrentUnauthorizedRefreshOnce(t *testing.T) {
	f := &fakeAPI{validTok: "fresh", refreshOK: true}
	c := newTestClient(t, f, "stale")

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Cows().List(context.Background(), nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), f.refresh.Load())
}

// gatedRefresher bloquea hasta release y falla si su ctx fue cancelado.
type gatedRefresher struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (g *gatedRefresher) Refresh(ctx context.Context, _ string) (Tokens, error) {
	g.calls.Add(1)
	g.started <- struct{}{}
	<-g.release
	if err := ctx.Err(); err != nil {
		return Tokens{}, err
	}
	return Tokens{AccessToken: "fresh", RefreshToken: "r-2"}, nil
}

func TestRefresh_CancelledCallerDoesNotCancelSharedRefresh(t *testing.T) {
	g := &gatedRefresher{started: make(chan struct{}, 2), release: make(chan struct{})}
	c, err := New(NewSession("stale", "r-1"), Options{BaseURL: "http://api.invalid", Refresher: g})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := c.refresh(ctx, "stale")
		first <- err
	}()

	<-g.started
	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	close(g.release)
	tok, err := c.refresh(context.Background(), "stale")
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
	assert.Equal(t, int32(1), g.calls.Load())
	assert.Equal(t, "fresh", c.Session().AccessToken())
}

type stubRefresher struct{ calls int }

func (s *stubRefresher) Refresh(context.Context, string) (Tokens, error) {
	s.calls++
	return Tokens{}, errors.New("unreachable")
}

func TestDo_NoRefreshToken(t *testing.T) {
	f := &fakeAPI{validTok: "fresh"}
	ts := httptest.NewServer(f)
	defer ts.Close()

	stub := &stubRefresher{}
	c, err := New(NewSession("stale", ""), Options{BaseURL: ts.URL, Refresher: stub})
	require.NoError(t, err)

	err = c.Do(context.Background(), http.MethodGet, "/cow", nil, nil, nil)
	assert.True(t, IsAuth(err))
	assert.ErrorIs(t, err, ErrNoRefreshToken)
	assert.Zero(t, stub.calls)
}

func TestNew_RequiresSessionAndBaseURL(t *testing.T) {
	_, err := New(nil, Options{BaseURL: "http://localhost"})
	assert.Error(t, err)

	_, err = New(NewSession("a", "r"), Options{})
	assert.Error(t, err)
}
