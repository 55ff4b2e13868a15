package tavernkeeper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Get fetches one document.
func (api *API) Get(ctx context.Context, resource string) Result {
	ep, err := api.resolveEndpoint(resource)
	if err != nil {
		return Result{Outcome: Failed, Err: err}
	}

	status, body, err := api.request(ctx, ep)
	if err != nil {
		return Result{Outcome: Failed, StatusCode: status, Err: err}
	}
	if status != http.StatusOK {
		return Result{Outcome: Failed, StatusCode: status}
	}

	value, err := decode(body)
	if err != nil {
		return Result{Outcome: Failed, StatusCode: status, Err: err}
	}

	if isEmpty(value) {
		return Result{Outcome: Empty, StatusCode: status}
	}

	m, ok := value.(map[string]any)
	if !ok {
		return Result{
			Outcome:    Failed,
			StatusCode: status,
			Err:        fmt.Errorf("tavernkeeper: expected a JSON object from %s, got %T", resource, value),
		}
	}

	return Result{Outcome: OK, StatusCode: status, Record: Record(m)}
}

// GetPaged fetches every page of a collection and concatenates the list found under field.  If a
// page fails, the items from earlier pages are still returned, with Outcome set to Failed.
func (api *API) GetPaged(ctx context.Context, resource string, field string, opts PageQuery) PagedResult {
	result := PagedResult{Items: []Record{}}

	maxPages := api.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	for page := 1; ; page++ {
		opts.Page = page
		ep, err := api.pagedEndpoint(resource, opts)
		if err != nil {
			result.Outcome = Failed
			result.Err = err
			return result
		}

		status, body, err := api.request(ctx, ep)
		result.Pages = page
		result.StatusCode = status
		if err != nil {
			result.Outcome = Failed
			result.Err = err
			return result
		}
		if status != http.StatusOK {
			result.Outcome = Failed
			return result
		}

		value, err := decode(body)
		if err != nil {
			result.Outcome = Failed
			result.Err = fmt.Errorf("tavernkeeper: page %d of %s: %w", page, resource, err)
			return result
		}
		doc, _ := value.(map[string]any)

		list, _ := doc[field].([]any)
		for i, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				result.Outcome = Failed
				result.Err = fmt.Errorf("tavernkeeper: page %d of %s: %s[%d] is not an object", page, resource, field, i)
				return result
			}
			result.Items = append(result.Items, Record(m))
		}

		total := Record(doc).Int("pages")
		if total < 1 {
			total = 1
		}
		if int64(page) >= total {
			break
		}
		if page >= maxPages {
			result.Truncated = true
			break
		}
	}

	result.Outcome = OK
	return result
}

func decode(body []byte) (any, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}

	d := json.NewDecoder(bytes.NewReader(body))
	d.UseNumber()

	var value any
	if err := d.Decode(&value); err != nil {
		return nil, fmt.Errorf("tavernkeeper: couldn't parse json response: %w", err)
	}
	return value, nil
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case string:
		return v == ""
	}
	return false
}
