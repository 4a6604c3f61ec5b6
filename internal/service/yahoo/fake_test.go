package yahoo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	xhttp "QuotePull/pkg/http"
)

const (
	testCookie     = "A3=d=AQABBKx; Path=/; Domain=.yahoo.com; Secure"
	testCookiePair = "A3=d=AQABBKx"

	pathCookie    = "/fc"
	pathHome      = "/home"
	pathCrumbQ1   = "/q1" + crumbPath
	pathCrumbQ2   = "/q2" + crumbPath
	pathQuoteQ1   = "/q1" + quotePath
	pathQuoteQ2   = "/q2" + quotePath
	chartPrefixQ1 = "/q1/v8/finance/chart/"
)

// fakeYahoo imitates the provider hosts behind one httptest server:
// /fc issues the cookie, /home is the homepage, /q1 and /q2 are the data hosts.
type fakeYahoo struct {
	srv *httptest.Server

	mu       sync.Mutex
	calls    map[string]int
	crumbs   map[string]string
	homepage string
	noCookie bool
	quote    http.HandlerFunc
	chart    http.HandlerFunc
}

func newFakeYahoo(t *testing.T) *fakeYahoo {
	t.Helper()
	f := &fakeYahoo{
		calls:    map[string]int{},
		crumbs:   map[string]string{"/q1": "crumb-q1", "/q2": "crumb-q2"},
		homepage: "<html><body>no token here</body></html>",
		quote:    echoQuotes,
		chart:    writeChart(nil),
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeYahoo) serve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	f.mu.Lock()
	f.calls[path]++
	noCookie, homepage := f.noCookie, f.homepage
	quote, chart := f.quote, f.chart
	f.mu.Unlock()

	switch {
	case path == pathCookie:
		if !noCookie {
			w.Header().Add("Set-Cookie", testCookie)
		}
		w.WriteHeader(http.StatusNotFound)
	case path == pathHome:
		if !noCookie {
			w.Header().Add("Set-Cookie", testCookie)
		}
		_, _ = w.Write([]byte(homepage))
	case strings.HasSuffix(path, crumbPath):
		f.mu.Lock()
		crumb, ok := f.crumbs[strings.TrimSuffix(path, crumbPath)]
		f.mu.Unlock()
		if !ok || r.Header.Get("Cookie") != testCookiePair {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Unauthorized"))
			return
		}
		_, _ = w.Write([]byte(crumb + "\n"))
	case strings.HasSuffix(path, quotePath):
		quote(w, r)
	case strings.Contains(path, "/v8/finance/chart/"):
		chart(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeYahoo) set(fn func(f *fakeYahoo)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeYahoo) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *fakeYahoo) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeYahoo) config() Config {
	cfg := DefaultConfig()
	cfg.Endpoints = Endpoints{
		CookieURL:   f.srv.URL + pathCookie,
		HomepageURL: f.srv.URL + pathHome,
		Query1URL:   f.srv.URL + "/q1",
		Query2URL:   f.srv.URL + "/q2",
	}
	return cfg
}

func (f *fakeYahoo) client(opts ...Option) *Client {
	return New(xhttp.NewClient(xhttp.WithTimeout(5*time.Second)), f.config(), opts...)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func quoteBody(entries ...map[string]any) map[string]any {
	if entries == nil {
		entries = []map[string]any{}
	}
	return map[string]any{"quoteResponse": map[string]any{"result": entries, "error": nil}}
}

// echoQuotes answers every requested symbol with a minimal quote.
func echoQuotes(w http.ResponseWriter, r *http.Request) {
	var entries []map[string]any
	for _, s := range strings.Split(r.URL.Query().Get("symbols"), ",") {
		entries = append(entries, map[string]any{"symbol": s, "regularMarketPrice": 100.0})
	}
	writeJSON(w, quoteBody(entries...))
}

func writeChart(dividends map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events := map[string]any{}
		if dividends != nil {
			events["dividends"] = dividends
		}
		writeJSON(w, map[string]any{"chart": map[string]any{
			"result": []map[string]any{{"meta": map[string]any{}, "events": events}},
			"error":  nil,
		}})
	}
}

func withStatus(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type recordingMetrics struct {
	mu    sync.Mutex
	auth  []string
	calls []string
	hits  map[bool]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{hits: map[bool]int{}}
}

func (m *recordingMetrics) RecordAuthAttempt(strategy, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auth = append(m.auth, strategy+":"+outcome)
}

func (m *recordingMetrics) RecordUpstreamRequest(endpoint, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, endpoint+":"+outcome)
}

func (m *recordingMetrics) RecordCacheLookup(_ string, hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits[hit]++
}

func (m *recordingMetrics) RecordLatency(string, float64) {}
