package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_RawBodyAndQuery(t *testing.T) {
	var (
		gotCT    string
		gotBody  []byte
		gotQuery url.Values
		gotKey   string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		gotKey = r.Header.Get("X-Key")
		gotQuery = r.URL.Query()
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL+"/", time.Second)
	require.NoError(t, err)

	var out struct {
		OK bool `json:"ok"`
	}
	err = c.Do(context.Background(), Request{
		Method:  http.MethodPost,
		Path:    "analyze",
		Query:   url.Values{"features": {"tags"}},
		Headers: map[string]string{"X-Key": "secret"},
		Body:    []byte{0xff, 0xd8},
	}, &out)
	require.NoError(t, err)

	assert.True(t, out.OK)
	assert.Equal(t, "application/octet-stream", gotCT)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "tags", gotQuery.Get("features"))
	assert.Equal(t, []byte{0xff, 0xd8}, gotBody)
}

func TestDo_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer ts.Close()

	err := New(time.Second).Do(context.Background(), Request{Path: ts.URL}, nil)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, "nope", httpErr.Body)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

type brokenBody struct{}

func (brokenBody) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }
func (brokenBody) Close() error             { return nil }

func TestDo_TruncatedBody(t *testing.T) {
	c := NewWithTransport(time.Second, roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{},
			Body:       brokenBody{},
			Request:    r,
		}, nil
	}))

	var out map[string]any
	err := c.Do(context.Background(), Request{Path: "https://vision.example.com/analyze"}, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "read body")
}

func TestResolveURL(t *testing.T) {
	c := New(0)
	_, err := c.resolveURL("/relative")
	assert.Error(t, err)

	u, err := c.resolveURL("https://example.com/x")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/x", u)

	_, err = NewWithBaseURL("::bad", time.Second)
	assert.Error(t, err)
}
