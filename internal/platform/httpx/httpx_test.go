package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virgo-SSS/Ternakku/internal/platform/apperr"
	"github.com/Virgo-SSS/Ternakku/internal/platform/logger"
)

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", apperr.InvalidFields(map[string]string{"email": "email is required"}), http.StatusBadRequest, "email is required"},
		{"auth", apperr.Unauthorized(""), http.StatusUnauthorized, "unauthorized"},
		{"not found", apperr.NotFound("cow", "x"), http.StatusNotFound, "cow not found"},
		{"persistence", apperr.Persistence("insert", errors.New("duplicate key")), http.StatusInternalServerError, "failed to process data"},
		{"other", errors.New("raw driver text"), http.StatusInternalServerError, "internal error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, logger.Nop(), tc.err)

			require.Equal(t, tc.status, rec.Code)
			var env Envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.Equal(t, tc.msg, env.Message)
			assert.NotContains(t, rec.Body.String(), "raw driver text")
		})
	}
}

func TestWriteError_PersistenceDetailIsSanitized(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, nil, apperr.Persistence("open", errors.New("failed to connect to `host=db user=farm password=hunter2 database=ternak`")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")
	assert.Contains(t, rec.Body.String(), "password=***")
}

func TestSanitize_URLCredentials(t *testing.T) {
	assert.Equal(t, "dial postgres://farm:***@db:5432/ternak", Sanitize("dial postgres://farm:s3cret@db:5432/ternak"))
}

func TestWriteData_EmptyListKeepsDataKey(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, http.StatusOK, []string{})
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}
