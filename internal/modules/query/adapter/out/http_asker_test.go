package out_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	queryout "neuradocs/internal/modules/query/adapter/out"
	"neuradocs/internal/modules/query/domain"
	"neuradocs/internal/platform/backend"
)

func askServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ask", r.URL.Path)
		var payload map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, map[string]any{"query": "what is 6x7?"}, payload)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
}

func TestHTTPAskerDecodesReplies(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		body string
		want domain.Reply
	}{
		{name: "answer", body: `{"answer":"42"}`, want: domain.Reply{Answer: "42", Found: true}},
		{name: "empty answer", body: `{"answer":""}`, want: domain.Reply{}},
		{name: "absent", body: `{}`, want: domain.Reply{}},
		{name: "null", body: `{"answer":null}`, want: domain.Reply{}},
		{name: "not a string", body: `{"answer":{"text":"42"}}`, want: domain.Reply{}},
		{name: "not json", body: `42`, want: domain.Reply{Degraded: true}},
		{name: "error field", body: `{"error":"index not ready"}`, want: domain.Reply{Notice: "index not ready"}},
		{name: "error next to answer", body: `{"answer":"42","error":"partial"}`, want: domain.Reply{Answer: "42", Found: true, Notice: "partial"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := askServer(t, http.StatusOK, tc.body)
			defer srv.Close()
			client, err := backend.New(srv.URL, time.Second)
			require.NoError(t, err)
			got, err := queryout.NewHTTPAsker(client, "/ask").Ask(context.Background(), "what is 6x7?")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHTTPAskerFailures(t *testing.T) {
	t.Parallel()
	t.Run("status 500", func(t *testing.T) {
		t.Parallel()
		srv := askServer(t, http.StatusInternalServerError, "Internal Server Error")
		defer srv.Close()
		client, err := backend.New(srv.URL, time.Second)
		require.NoError(t, err)
		_, err = queryout.NewHTTPAsker(client, "/ask").Ask(context.Background(), "what is 6x7?")
		var statusErr *backend.StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, "Internal Server Error", statusErr.Message)
	})
}
