package github

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

// searchResponse is the common envelope of the search endpoints. Items stay
// loosely typed here so callers can inspect raw keys before decoding.
type searchResponse struct {
	TotalCount        int              `json:"total_count"`
	IncompleteResults bool             `json:"incomplete_results"`
	Items             []map[string]any `json:"items"`
}

// searchItems fetches all pages of one search query, capped at
// maxSearchPages, and returns the raw items plus the reported total count.
func (c *Client) searchItems(path, query string, params url.Values) ([]map[string]any, int, error) {
	perPage := maxPerPage
	if v := params.Get("per_page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid per_page %q: %w", v, err)
		}
		perPage = n
	}

	var (
		items []map[string]any
		total int
	)

	for page := 1; page <= maxSearchPages; page++ {
		values := url.Values{}
		for key := range params {
			values.Set(key, params.Get(key))
		}
		values.Set("q", query)
		values.Set("per_page", strconv.Itoa(perPage))
		values.Set("page", strconv.Itoa(page))

		resp, err := c.getSearchPage(path, values)
		if err != nil {
			return nil, 0, err
		}

		total = resp.TotalCount
		items = append(items, resp.Items...)

		c.logger.Debug("fetched search page",
			zap.String("path", path),
			zap.Int("page", page),
			zap.Int("page_items", len(resp.Items)),
			zap.Int("total_count", resp.TotalCount),
		)

		if len(items) >= total || len(resp.Items) < perPage {
			break
		}
	}

	return items, total, nil
}

func (c *Client) getSearchPage(path string, values url.Values) (*searchResponse, error) {
	endpoint := c.APIURL + path + "?" + values.Encode()

	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}

	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", c.UserAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search %s returned %s: %s", path, resp.Status, string(body))
	}

	result := &searchResponse{}
	if err := json.Unmarshal(body, result); err != nil {
		return nil, fmt.Errorf("unmarshaling %s response: %w", path, err)
	}

	return result, nil
}
