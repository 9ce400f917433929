package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// linkPattern matches one entry of a Link-style continuation header,
// e.g. `<https://host/api/orders?page=2>; rel="next"`.
var linkPattern = regexp.MustCompile(`<([^>]+)>;\s*rel="([^"]+)"`)

// nextLink extracts the rel="next" URL from a Link header value, or "" when
// the chain is exhausted.
func nextLink(header string) string {
	if header == "" {
		return ""
	}

	for _, entry := range strings.Split(header, ",") {
		m := linkPattern.FindStringSubmatch(strings.TrimSpace(entry))
		if m != nil && m[2] == "next" {
			return m[1]
		}
	}

	return ""
}

// pages is a pull iterator over a Link-header paginated collection. Each page
// is fetched fresh from the network; the iterator is not restartable.
type pages struct {
	c        *Client
	endpoint string
	query    url.Values
	next     string
	started  bool
}

// HasNext reports whether another page can be fetched.
func (p *pages) HasNext() bool {
	return !p.started || p.next != ""
}

// Next fetches the next page and returns its raw JSON body. The first call
// issues the initial request with max=10 merged into the caller's query; later
// calls follow the continuation URL verbatim, which is self-contained.
func (p *pages) Next(ctx context.Context) ([]byte, error) {
	var (
		body []byte
		link string
		err  error
	)

	if !p.started {
		p.started = true

		query := url.Values{"max": []string{"10"}}
		for k, vs := range p.query {
			query[k] = vs
		}

		body, link, err = p.c.get(ctx, p.endpoint, query)
	} else {
		body, link, err = p.c.getURL(ctx, p.next)
	}

	if err != nil {
		return nil, err
	}

	p.next = nextLink(link)

	return body, nil
}

// collectionAt extracts the JSON array found under key (optionally narrowed to
// nested) from a response body. A missing key is treated as an empty
// collection, never an error.
func collectionAt(body []byte, key, nested string) ([]json.RawMessage, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, fmt.Errorf("decoding response body: %w", err)
	}

	raw, ok := root[key]
	if !ok {
		return nil, nil
	}

	if nested != "" {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("decoding nested %q object: %w", key, err)
		}

		raw, ok = inner[nested]
		if !ok {
			return nil, nil
		}
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decoding %q collection: %w", key, err)
	}

	return records, nil
}

// fetchPaginated aggregates a paginated collection in server order. It stops
// when no rel="next" link is present, or when a followed page comes back empty
// in case the server hands out a next link past the end.
func (c *Client) fetchPaginated(ctx context.Context, key, nested, endpoint string, query url.Values) ([]json.RawMessage, error) {
	p := &pages{c: c, endpoint: endpoint, query: query}

	body, err := p.Next(ctx)
	if err != nil {
		return nil, err
	}

	agg, err := collectionAt(body, key, nested)
	if err != nil {
		return nil, err
	}

	for p.HasNext() {
		body, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}

		records, err := collectionAt(body, key, nested)
		if err != nil {
			return nil, err
		}

		if len(records) == 0 {
			break
		}

		agg = append(agg, records...)
	}

	return agg, nil
}
