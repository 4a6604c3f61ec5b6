package yahoo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	xhttp "QuotePull/pkg/http"
)

const crumbPath = "/v1/test/getcrumb"

var (
	errNoCookie     = errors.New("no cookie issued")
	errInvalidCrumb = errors.New("crumb rejected")
	errNoCrumb      = errors.New("no crumb in homepage")
)

// Doer is the outbound transport.
type Doer interface {
	Fetch(ctx context.Context, opts *xhttp.RequestOptions) (*xhttp.Response, error)
}

// Strategy acquires a complete set of credentials or fails without side effects.
type Strategy interface {
	Name() string
	Acquire(ctx context.Context) (Credentials, error)
}

// DefaultStrategies returns the fallback chain: fc cookie against query1,
// homepage scrape, then fc cookie against query2.
func DefaultStrategies(doer Doer, cfg Config) []Strategy {
	cfg = cfg.withDefaults()
	ep := cfg.Endpoints
	return []Strategy{
		&fcCookieStrategy{name: "fc_cookie_query1", doer: doer, userAgent: cfg.UserAgent, cookieURL: ep.CookieURL, baseURL: ep.Query1URL},
		&homepageStrategy{doer: doer, userAgent: cfg.UserAgent, homepageURL: ep.HomepageURL, baseURL: ep.Query1URL},
		&fcCookieStrategy{name: "fc_cookie_query2", doer: doer, userAgent: cfg.UserAgent, cookieURL: ep.CookieURL, baseURL: ep.Query2URL},
	}
}

func browserHeaders(userAgent string) map[string]string {
	return map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "text/html,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
	}
}

// fcCookieStrategy takes a cookie from the cookie host and exchanges it for a
// crumb on baseURL.
type fcCookieStrategy struct {
	name      string
	doer      Doer
	userAgent string
	cookieURL string
	baseURL   string
}

func (s *fcCookieStrategy) Name() string { return s.name }

func (s *fcCookieStrategy) Acquire(ctx context.Context) (Credentials, error) {
	resp, err := s.doer.Fetch(ctx, &xhttp.RequestOptions{
		URL:             s.cookieURL,
		Headers:         browserHeaders(s.userAgent),
		FollowRedirects: true,
	})
	if err != nil {
		return Credentials{}, fmt.Errorf("cookie request: %w", err)
	}
	cookie := cookieHeader(resp.SetCookies())
	if cookie == "" {
		return Credentials{}, errNoCookie
	}

	crumbURL, err := xhttp.JoinURL(s.baseURL, crumbPath)
	if err != nil {
		return Credentials{}, err
	}
	headers := browserHeaders(s.userAgent)
	headers["Cookie"] = cookie
	resp, err = s.doer.Fetch(ctx, &xhttp.RequestOptions{URL: crumbURL, Headers: headers})
	if err != nil {
		return Credentials{}, fmt.Errorf("crumb request: %w", err)
	}
	if !resp.Success() {
		return Credentials{}, fmt.Errorf("crumb request: status %d", resp.StatusCode)
	}

	crumb := strings.TrimSpace(string(resp.Body))
	if !ValidCrumb(crumb) {
		return Credentials{}, errInvalidCrumb
	}
	return Credentials{Cookie: cookie, Crumb: crumb, BaseURL: s.baseURL}, nil
}

// homepageStrategy scrapes the crumb out of the provider homepage.
type homepageStrategy struct {
	doer        Doer
	userAgent   string
	homepageURL string
	baseURL     string
}

func (s *homepageStrategy) Name() string { return "homepage_scrape" }

func (s *homepageStrategy) Acquire(ctx context.Context) (Credentials, error) {
	resp, err := s.doer.Fetch(ctx, &xhttp.RequestOptions{
		URL:             s.homepageURL,
		Headers:         browserHeaders(s.userAgent),
		FollowRedirects: true,
	})
	if err != nil {
		return Credentials{}, fmt.Errorf("homepage request: %w", err)
	}
	if !resp.Success() {
		return Credentials{}, fmt.Errorf("homepage request: status %d", resp.StatusCode)
	}

	cookie := cookieHeader(resp.SetCookies())
	if cookie == "" {
		return Credentials{}, errNoCookie
	}
	crumb, ok := ExtractCrumb(string(resp.Body))
	if !ok {
		return Credentials{}, errNoCrumb
	}
	return Credentials{Cookie: cookie, Crumb: crumb, BaseURL: s.baseURL}, nil
}
