package localdump

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/toothbrush/tk-dump/tavernkeeper"
)

type response struct {
	status int
	body   string
}

// fakeTK stands in for the Tavern Keeper API.  Routes are keyed on the request URI, query
// included; anything unknown is a 404.
type fakeTK struct {
	mu     sync.Mutex
	routes map[string]response
	hits   map[string]int
}

func newFakeTK() *fakeTK {
	return &fakeTK{
		routes: make(map[string]response),
		hits:   make(map[string]int),
	}
}

func (f *fakeTK) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	uri := r.URL.RequestURI()
	f.hits[uri]++
	resp, ok := f.routes[uri]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(resp.status)
	fmt.Fprint(w, resp.body)
}

func (f *fakeTK) doc(uri, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[uri] = response{http.StatusOK, body}
}

func (f *fakeTK) fail(uri string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[uri] = response{status, ""}
}

// list registers a paged collection; each page is the comma-separated JSON objects it holds.
func (f *fakeTK) list(path, field string, pages ...string) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	for i, items := range pages {
		f.doc(fmt.Sprintf("%s%spage=%d", path, sep, i+1),
			fmt.Sprintf(`{"%s":[%s],"page":%d,"pages":%d}`, field, items, i+1, len(pages)))
	}
}

func (f *fakeTK) hitCount(uri string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[uri]
}

func newTestExporter(t *testing.T, f *fakeTK) *Exporter {
	t.Helper()

	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	api, err := tavernkeeper.NewAPI(srv.URL, "sekrit")
	require.NoError(t, err)
	api.Delay = 0

	sink, err := NewSink(filepath.Join(t.TempDir(), RootName(time.Date(2024, 1, 31, 15, 45, 2, 0, time.UTC))))
	require.NoError(t, err)

	e, err := NewExporter(api, sink, "42")
	require.NoError(t, err)
	e.Logger = log.New(io.Discard, "", 0)

	return e
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// recordingTransport notes the URI of every request before passing it on.
func recordingTransport(uris *[]string) http.RoundTripper {
	return roundTripFunc(func(r *http.Request) (*http.Response, error) {
		*uris = append(*uris, r.URL.RequestURI())
		return http.DefaultTransport.RoundTrip(r)
	})
}
