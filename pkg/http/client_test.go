package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchMergesRedirectCookies(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Set-Cookie", "A1=hop; Path=/")
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Set-Cookie", "A3=final; Path=/")
		_, _ = w.Write([]byte("ok"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient()
	resp, err := c.Fetch(context.Background(), &RequestOptions{URL: srv.URL + "/start", FollowRedirects: true})
	require.NoError(t, err)
	assert.True(t, resp.Success())
	assert.Equal(t, "ok", string(resp.Body))
	assert.Equal(t, []string{"A1=hop; Path=/", "A3=final; Path=/"}, resp.SetCookies())
}

func TestFetchWithoutRedirects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Set-Cookie", "A1=hop")
		http.Redirect(w, r, "/elsewhere", http.StatusFound)
	}))
	defer srv.Close()

	c := NewClient()
	resp, err := c.Fetch(context.Background(), &RequestOptions{URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.False(t, resp.Success())
	assert.Equal(t, []string{"A1=hop"}, resp.SetCookies())
}

func TestFetchSendsHeadersAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "quotepull-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "c=1", r.Header.Get("Cookie"))
		assert.Equal(t, "AAPL,MSFT", r.URL.Query().Get("symbols"))
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	c := NewClient(WithUserAgent("quotepull-test"))
	resp, err := c.Fetch(context.Background(), &RequestOptions{
		URL:         srv.URL,
		Headers:     map[string]string{"Cookie": "c=1"},
		QueryParams: map[string][]string{"symbols": {"AAPL,MSFT"}},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
}

func TestJoinURL(t *testing.T) {
	u, err := JoinURL("https://query1.finance.yahoo.com", "/v8/finance/chart/^GSPC")
	require.NoError(t, err)
	assert.Equal(t, "https://query1.finance.yahoo.com/v8/finance/chart/%5EGSPC", u)
}
