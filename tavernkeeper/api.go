package tavernkeeper

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultHost is the public Tavern Keeper site.
	DefaultHost = "https://www.tavern-keeper.com"

	// DefaultDelay is slept before every request we make.  It's a courtesy to the service, not a
	// retry mechanism.
	DefaultDelay = 500 * time.Millisecond

	// DefaultMaxPages bounds a single paged fetch, in case the service reports a bogus page count.
	DefaultMaxPages = 10000

	sessionCookie = "tavern-keeper"
)

func NewAPI(host string, session string) (*API, error) {
	if host == "" {
		host = DefaultHost
	}
	if session == "" {
		return nil, fmt.Errorf("tavernkeeper: session token is empty, please set --session-id or --session-cmd")
	}

	u, err := url.ParseRequestURI(host)
	if err != nil {
		return nil, fmt.Errorf("tavernkeeper: couldn't parse host URL: %w", err)
	}

	a := &API{
		BaseURI:  u,
		Delay:    DefaultDelay,
		MaxPages: DefaultMaxPages,
		session:  session,
	}
	a.Client = &http.Client{}

	return a, nil
}

type API struct {
	// Where the API lives, e.g. https://www.tavern-keeper.com
	BaseURI *url.URL

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client

	// Fixed pause before each request.
	Delay time.Duration

	// Upper bound on pages requested by one GetPaged call.
	MaxPages int

	// Sent as User-Agent with every request when set, e.g. "tk-dump/v1.2.0".
	UserAgent string

	// Value of the tavern-keeper session cookie.
	session string
}

// Headers returns the headers sent with every API request.
func (api *API) Headers() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("Content-Type", "application/json")
	h.Set("Cookie", fmt.Sprintf("%s=%s", sessionCookie, api.session))
	// The service only checks that the header is there.
	h.Set("X-CSRF-Token", "something")
	if api.UserAgent != "" {
		h.Set("User-Agent", api.UserAgent)
	}
	return h
}
