package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/natman/internal/client/api"
)

// newAPI starts a fake backend routed by mux and returns a client for it.
func newAPI(t *testing.T, register func(r *mux.Router)) *api.Client {
	t.Helper()
	r := mux.NewRouter()
	register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	c, err := api.NewClient(srv.URL)
	require.NoError(t, err)
	return c
}

type failingDoer struct{ err error }

func (f failingDoer) Do(*http.Request) (*http.Response, error) { return nil, f.err }

var errDial = errors.New("dial tcp 217.114.14.77:8002: connect: connection refused")

// unreachableAPI is a client whose every request fails before a response.
func unreachableAPI(t *testing.T) *api.Client {
	t.Helper()
	c, err := api.NewClient("http://natman.invalid", api.WithHTTPClient(failingDoer{err: errDial}))
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// fakeTransport records calls and answers from canned funcs.
type fakeTransport struct {
	post func(path string, body, out any) error
	get  func(path string, out any) error

	posts []string
	gets  []string
}

func (f *fakeTransport) PostJSON(_ context.Context, path string, body, out any, _ ...api.CallOption) error {
	f.posts = append(f.posts, path)
	if f.post == nil {
		return errors.New("unexpected POST " + path)
	}
	return f.post(path, body, out)
}

func (f *fakeTransport) GetJSON(_ context.Context, path string, out any, _ ...api.CallOption) error {
	f.gets = append(f.gets, path)
	if f.get == nil {
		return errors.New("unexpected GET " + path)
	}
	return f.get(path, out)
}
