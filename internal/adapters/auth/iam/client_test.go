package iam

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virgo-SSS/Ternakku/internal/ports/auth"
)

func newIAM(t *testing.T) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "secret" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)

		switch r.URL.Path {
		case verifyPath:
			if body["token"] != "good" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"user_id": " u-1 ", "email": "a@b.c"})
		case refreshPath:
			switch body["refresh_token"] {
			case "r-ok":
				_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "new", "expires_in": 900})
			case "r-boom":
				w.WriteHeader(http.StatusBadGateway)
			default:
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"refresh token expired"}`))
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "secret"})
	require.NoError(t, err)
	return c, srv
}

func TestVerifier(t *testing.T) {
	c, _ := newIAM(t)
	v := NewVerifier(c)

	claims, err := v.Verify(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)

	_, err = v.Verify(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = v.Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)
}

func TestRefresher(t *testing.T) {
	c, _ := newIAM(t)
	r := NewRefresher(c)

	pair, err := r.Refresh(context.Background(), "r-ok")
	require.NoError(t, err)
	assert.Equal(t, "new", pair.AccessToken)
	assert.Equal(t, 900, pair.ExpiresIn)

	_, err = r.Refresh(context.Background(), "r-expired")
	assert.ErrorIs(t, err, auth.ErrInvalidRefreshToken)

	_, err = r.Refresh(context.Background(), "r-boom")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestNotConfigured(t *testing.T) {
	c, err := NewClient(Config{})
	require.NoError(t, err)
	assert.False(t, c.IsConfigured())

	_, err = c.VerifyToken(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
