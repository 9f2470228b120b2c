package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neuradocs/internal/platform/backend"
	"neuradocs/internal/platform/id"
)

func TestPostJSONSendsHeadersAndBody(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/ask", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		assert.True(t, strings.HasPrefix(r.Header.Get("User-Agent"), "neuradocs/"))
		payload := map[string]string{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "what?", payload["query"])
		_, _ = io.WriteString(w, `{"answer":"ok"}`)
	}))
	defer srv.Close()

	client, err := backend.New(srv.URL+"/api/", time.Second)
	require.NoError(t, err)
	ctx := id.WithRequestID(context.Background(), "req-1")
	resp, err := client.PostJSON(ctx, "/ask", map[string]string{"query": "what?"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"answer":"ok"}`, string(resp.Body))
}

func TestPostFileBuildsMultipartForm(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "report.pdf", header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))
		assert.Equal(t, "%PDF-1.4 body", string(data))
		_, _ = io.WriteString(w, `{"chunks":[]}`)
	}))
	defer srv.Close()

	client, err := backend.New(srv.URL, time.Second)
	require.NoError(t, err)
	_, err = client.PostFile(context.Background(), "/extract", "file", "report.pdf", strings.NewReader("%PDF-1.4 body"))
	require.NoError(t, err)
}

func TestNonSuccessStatusBecomesStatusError(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		body    string
		message string
	}{
		{name: "json error field", body: `{"error":"pinecone down"}`, message: "pinecone down"},
		{name: "fastapi detail", body: `{"detail":[{"msg":"field required"}]}`, message: `[{"msg":"field required"}]`},
		{name: "plain text", body: "  Internal Server Error \n", message: "Internal Server Error"},
		{name: "empty", body: "", message: ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			client, err := backend.New(srv.URL, time.Second)
			require.NoError(t, err)
			_, err = client.PostJSON(context.Background(), "/ask", map[string]string{})
			var statusErr *backend.StatusError
			require.True(t, errors.As(err, &statusErr), "expected StatusError, got %v", err)
			assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
			assert.Equal(t, tc.message, statusErr.Message)
		})
	}
}

func TestLongErrorTextIsCutOnARuneBoundary(t *testing.T) {
	t.Parallel()
	body := "x" + strings.Repeat("é", 400)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, body)
	}))
	defer srv.Close()

	client, err := backend.New(srv.URL, time.Second)
	require.NoError(t, err)
	_, err = client.PostJSON(context.Background(), "/ask", map[string]string{})
	var statusErr *backend.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.True(t, utf8.ValidString(statusErr.Message), "message is not valid UTF-8")
	assert.True(t, strings.HasSuffix(statusErr.Message, "…"))
	assert.Less(t, len(statusErr.Message), len(body))
	assert.True(t, strings.HasPrefix(body, strings.TrimSuffix(statusErr.Message, "…")))
}

func TestTransportFailureAndCancellation(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client, err := backend.New(srv.URL, 5*time.Second)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.PostJSON(ctx, "/ask", map[string]string{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	unreachable, err := backend.New("http://127.0.0.1:1", time.Second)
	require.NoError(t, err)
	_, err = unreachable.PostJSON(context.Background(), "/ask", map[string]string{})
	require.Error(t, err)
	var statusErr *backend.StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestNewRejectsRelativeURL(t *testing.T) {
	t.Parallel()
	_, err := backend.New("localhost:8000", time.Second)
	assert.Error(t, err)
}
