package s3

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Virgo-SSS/Ternakku/internal/ports/blob"
)

// fakeS3 atiende Put/Get/Head/Delete con path-style: /<bucket>/<key>.
type fakeS3 struct {
	mu   sync.Mutex
	objs map[string][]byte
	ct   map[string]string
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	resp := func(code int, body []byte, h http.Header) *http.Response {
		if h == nil {
			h = http.Header{}
		}
		return &http.Response{StatusCode: code, Body: io.NopCloser(bytes.NewReader(body)), Header: h, Request: req}
	}
	noSuchKey := []byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)

	switch req.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		if dec, ok := decodeChunked(body); ok {
			body = dec
		}
		f.objs[key] = body
		f.ct[key] = req.Header.Get("Content-Type")
		return resp(http.StatusOK, nil, http.Header{"Etag": {`"e"`}}), nil
	case http.MethodHead:
		b, ok := f.objs[key]
		if !ok {
			return resp(http.StatusNotFound, nil, nil), nil
		}
		return resp(http.StatusOK, nil, http.Header{"Content-Length": {strconv.Itoa(len(b))}}), nil
	case http.MethodGet:
		b, ok := f.objs[key]
		if !ok {
			return resp(http.StatusNotFound, noSuchKey, http.Header{"Content-Type": {"application/xml"}}), nil
		}
		return resp(http.StatusOK, b, http.Header{
			"Content-Length": {strconv.Itoa(len(b))},
			"Content-Type":   {f.ct[key]},
		}), nil
	case http.MethodDelete:
		delete(f.objs, key)
		return resp(http.StatusNoContent, nil, nil), nil
	}
	return resp(http.StatusNotImplemented, nil, nil), nil
}

// decodeChunked: payload aws-chunked de un solo chunk (<hex>\r\n<body>\r\n0\r\n...).
func decodeChunked(b []byte) ([]byte, bool) {
	parts := strings.Split(string(b), "\r\n")
	if len(parts) < 3 || parts[2] != "0" {
		return nil, false
	}
	n, err := strconv.ParseInt(strings.SplitN(parts[0], ";", 2)[0], 16, 64)
	if err != nil || int64(len(parts[1])) != n {
		return nil, false
	}
	return []byte(parts[1]), true
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(context.Background(), Config{
		Bucket:          "ternakku",
		Region:          "ap-southeast-3",
		Endpoint:        "https://s3.test.local",
		PathStyle:       true,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		HTTPClient:      &http.Client{Transport: &fakeS3{objs: map[string][]byte{}, ct: map[string]string{}}},
	})
	require.NoError(t, err)
	return s
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}

func TestStore_PutGetDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	info, err := s.Put(ctx, "cows/1/photo", strings.NewReader("jpegdata"), blob.PutOptions{ContentType: "image/jpeg"})
	require.NoError(t, err)
	assert.Equal(t, int64(8), info.Size)

	got, rc, err := s.Get(ctx, "cows/1/photo")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "jpegdata", string(b))
	assert.Equal(t, "image/jpeg", got.ContentType)

	require.NoError(t, s.Delete(ctx, "cows/1/photo"))
	assert.ErrorIs(t, s.Delete(ctx, "cows/1/photo"), blob.ErrNotFound)

	_, _, err = s.Get(ctx, "cows/1/photo")
	assert.ErrorIs(t, err, blob.ErrNotFound)
}
