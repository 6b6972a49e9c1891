package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Virgo-SSS/Ternakku/internal/platform/httpclient"
)

func TestErrorMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"envelope message", &httpclient.HTTPError{StatusCode: 400, Message: "email is required"}, "email is required"},
		{"no envelope", &httpclient.HTTPError{StatusCode: 502, Body: "<html>bad gateway</html>"}, GenericMessage},
		{"transport", errors.New("dial tcp: connection refused"), "dial tcp: connection refused"},
		{"auth keeps server text", &AuthError{Message: "token expired", Err: errors.New("x")}, "token expired"},
		{"auth without text", &AuthError{Err: errors.New("refresh failed")}, "unauthorized"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ErrorMessage(tc.err))
		})
	}
}
