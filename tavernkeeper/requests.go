package tavernkeeper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// wait sleeps for the configured delay, or until ctx is done.
func (api *API) wait(ctx context.Context) error {
	if api.Delay <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(api.Delay)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return context.Cause(ctx)
	}
}

// request performs one authenticated GET.  A non-200 status is not an error here; callers decide
// what it means.
func (api *API) request(ctx context.Context, url *url.URL) (int, []byte, error) {
	if err := api.wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("tavernkeeper: interrupted before request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), nil)
	if err != nil {
		return 0, nil, fmt.Errorf("tavernkeeper: couldn't instantiate http request: %w", err)
	}
	req.Header = api.Headers()

	response, err := api.Client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("tavernkeeper: couldn't perform http request: %w", err)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		response.Body.Close()
		return response.StatusCode, nil, fmt.Errorf("tavernkeeper: couldn't read http response body: %w", err)
	}

	if err := response.Body.Close(); err != nil {
		return response.StatusCode, nil, fmt.Errorf("tavernkeeper: couldn't close response body: %w", err)
	}

	return response.StatusCode, body, nil
}

// Download fetches a binary resource such as a character portrait.  The URL may be absolute or
// relative to the API host.  No session headers are sent, only the User-Agent.  The caller must close the body.
func (api *API) Download(ctx context.Context, rawURL string) (*http.Response, error) {
	u, err := api.BaseURI.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("tavernkeeper: couldn't parse download URL %q: %w", rawURL, err)
	}

	if err := api.wait(ctx); err != nil {
		return nil, fmt.Errorf("tavernkeeper: interrupted before download: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("tavernkeeper: couldn't instantiate http request: %w", err)
	}
	if api.UserAgent != "" {
		req.Header.Set("User-Agent", api.UserAgent)
	}

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavernkeeper: couldn't download %s: %w", u.String(), err)
	}

	return response, nil
}
